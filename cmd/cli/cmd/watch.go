package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/mediasort/pkg/core/history"
	"github.com/angelospk/mediasort/pkg/processor"
)

var (
	watchLibrary   string
	watchSettle    time.Duration
	watchSweep     time.Duration
	watchFranch    []string
	watchDefSeason int
)

// watchCmd runs the organizer as a long-lived watcher on a drop folder.
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and sort files into the library as they arrive",
	Long: `Watches the given directory for new files, classifies each one as it
settles, and moves it into the library. A periodic sweep re-plans the
whole directory so files the watcher missed still drain.

Example:
  mediasort watch --library /mnt/media ~/Downloads/incoming`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchLibrary, "library", "", "library root directory (required)")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 2*time.Second, "wait for a new file to stop growing before classifying")
	watchCmd.Flags().DurationVar(&watchSweep, "sweep", 5*time.Minute, "interval for full directory sweeps")
	watchCmd.Flags().StringArrayVar(&watchFranch, "franchise", nil, "known franchise base title (repeatable)")
	watchCmd.Flags().IntVar(&watchDefSeason, "default-season", 0, "season to assume for lone episode numbers")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	libraryRoot := watchLibrary
	if libraryRoot == "" {
		libraryRoot = viper.GetString(CfgKeyLibraryRoot)
	}
	if libraryRoot == "" {
		return fmt.Errorf("a library root is required (--library flag or %s config key)", CfgKeyLibraryRoot)
	}
	sourceDir := args[0]
	if _, err := os.Stat(sourceDir); err != nil {
		return fmt.Errorf("source directory not accessible: %w", err)
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	opLog, err := history.NewLog(dir, logger)
	if err != nil {
		return fmt.Errorf("failed to open operation history: %w", err)
	}
	proc := processor.NewProcessor(newEngine(logger), logger,
		processor.WithHints(baseHints(watchFranch, watchDefSeason)),
		processor.WithHistory(opLog),
	)

	ctx := cmd.Context()

	// Drain whatever is already there before watching.
	if err := sweep(ctx, proc, sourceDir, libraryRoot); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(sourceDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", sourceDir, err)
	}

	logger.Infof("Watching %s (library: %s)", sourceDir, libraryRoot)
	ticker := time.NewTicker(watchSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sweep(ctx, proc, sourceDir, libraryRoot); err != nil {
				logger.Errorf("Sweep failed: %v", err)
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			handleArrival(ctx, proc, logger, event.Name, libraryRoot)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watcher error: %v", err)
		}
	}
}

// handleArrival waits for the file to stop growing, then plans and
// applies its placement.
func handleArrival(ctx context.Context, proc *processor.Processor, logger *logrus.Logger, path, libraryRoot string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if !waitForSettle(ctx, path) {
		return
	}

	moves, err := proc.Plan(ctx, filepath.Dir(path), false)
	if err != nil {
		logger.Warnf("Failed to plan %s: %v", path, err)
		return
	}
	for _, move := range moves {
		if move.Source != path {
			continue
		}
		if err := proc.Apply(ctx, libraryRoot, []processor.PlannedMove{move}); err != nil {
			logger.Warnf("Failed to place %s: %v", path, err)
		}
		return
	}
}

// waitForSettle polls the file size until it stops changing.
func waitForSettle(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(watchSettle):
		}
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize {
			return true
		}
		lastSize = info.Size()
	}
}

func sweep(ctx context.Context, proc *processor.Processor, sourceDir, libraryRoot string) error {
	moves, err := proc.Plan(ctx, sourceDir, true)
	if err != nil {
		return err
	}
	return proc.Apply(ctx, libraryRoot, moves)
}

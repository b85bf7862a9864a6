package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/mediasort/pkg/core/history"
	"github.com/angelospk/mediasort/pkg/processor"
)

var (
	scanRecursive bool
	scanApply     bool
	scanLibrary   string
	scanFranch    []string
	scanDefSeason int
)

// scanCmd plans (and optionally applies) moves for a whole directory.
var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Classify every file under a directory and plan its placement",
	Long: `Walks the given directory, classifies every file, and prints the
planned source -> destination moves. With --apply the moves are
executed against the library root and recorded in the operation
history.

Examples:
  mediasort scan ~/Downloads/incoming
  mediasort scan --apply --library /mnt/media ~/Downloads/incoming`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	RootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", true, "descend into subdirectories")
	scanCmd.Flags().BoolVar(&scanApply, "apply", false, "execute the planned moves")
	scanCmd.Flags().StringVar(&scanLibrary, "library", "", "library root directory (required with --apply)")
	scanCmd.Flags().StringArrayVar(&scanFranch, "franchise", nil, "known franchise base title (repeatable)")
	scanCmd.Flags().IntVar(&scanDefSeason, "default-season", 0, "season to assume for lone episode numbers")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	libraryRoot := scanLibrary
	if libraryRoot == "" {
		libraryRoot = viper.GetString(CfgKeyLibraryRoot)
	}
	if scanApply && libraryRoot == "" {
		return fmt.Errorf("--apply requires a library root (--library flag or %s config key)", CfgKeyLibraryRoot)
	}

	opts := []processor.Option{
		processor.WithHints(baseHints(scanFranch, scanDefSeason)),
	}
	if scanApply {
		dir, err := configDir()
		if err != nil {
			return err
		}
		opLog, err := history.NewLog(dir, logger)
		if err != nil {
			return fmt.Errorf("failed to open operation history: %w", err)
		}
		opts = append(opts, processor.WithHistory(opLog))
	}
	proc := processor.NewProcessor(newEngine(logger), logger, opts...)

	moves, err := proc.Plan(cmd.Context(), args[0], scanRecursive)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, move := range moves {
		if move.Skipped != "" {
			fmt.Fprintf(out, "SKIP  %s -> %s/%s (%s)\n", move.Source, move.DestDir, move.DestName, move.Skipped)
			continue
		}
		fmt.Fprintf(out, "MOVE  %s -> %s/%s\n", move.Source, move.DestDir, move.DestName)
	}

	if scanApply {
		if err := proc.Apply(cmd.Context(), libraryRoot, moves); err != nil {
			return fmt.Errorf("apply failed: %w", err)
		}
	}
	return nil
}

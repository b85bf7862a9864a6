// Package processor orchestrates classification over real directories:
// it scans for candidate files, classifies each one, and plans (or
// applies) the resulting library placements.
package processor

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/angelospk/mediasort/internal/constants"
	"github.com/angelospk/mediasort/pkg/core/classify"
	"github.com/angelospk/mediasort/pkg/core/fileops"
	"github.com/angelospk/mediasort/pkg/core/history"
)

// ProcessorInterface defines the planning entry point, kept as an
// interface so commands can be tested against a fake.
type ProcessorInterface interface {
	Plan(ctx context.Context, rootPath string, recursive bool) ([]PlannedMove, error)
}

var _ ProcessorInterface = (*Processor)(nil)

const defaultConcurrency = 4

// PlannedMove pairs a source file with its classified destination.
// DestDir is library-relative; DestName is the final file name.
type PlannedMove struct {
	Source   string           `json:"source"`
	Record   *classify.Record `json:"record,omitempty"`
	DestDir  string           `json:"dest_dir"`
	DestName string           `json:"dest_name"`
	Skipped  string           `json:"skipped,omitempty"` // reason, when not planned
}

// Processor scans directories and turns files into planned moves.
type Processor struct {
	engine      *classify.Engine
	hints       classify.Hints
	probe       func(string) classify.Hints
	logger      *log.Logger
	history     *history.Log
	concurrency int
}

// Option configures a Processor.
type Option func(*Processor)

// WithHints supplies the base hints (franchise registry, default season)
// merged into every classification.
func WithHints(hints classify.Hints) Option {
	return func(p *Processor) { p.hints = hints }
}

// WithHistory records every applied operation in the given log.
func WithHistory(h *history.Log) Option {
	return func(p *Processor) { p.history = h }
}

// WithConcurrency bounds how many files are classified in parallel.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithProbe overrides the embedded-metadata probe, mainly for tests.
func WithProbe(probe func(string) classify.Hints) Option {
	return func(p *Processor) { p.probe = probe }
}

// NewProcessor creates a Processor around a classification engine.
func NewProcessor(engine *classify.Engine, logger *log.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}
	p := &Processor{
		engine:      engine,
		probe:       fileops.ProbeHints,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScanDirectory collects regular files under rootPath. Unreadable
// entries are logged and skipped, never fatal.
func (p *Processor) ScanDirectory(ctx context.Context, rootPath string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			p.logger.Warnf("Error accessing path %q: %v", filePath, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if filePath != rootPath && !recursive {
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") && filePath != rootPath {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.logger.Infof("Scan complete. Found %d files in %s (recursive: %t)", len(files), rootPath, recursive)
	return files, nil
}

// Plan scans rootPath and classifies every file, with bounded
// concurrency. Results come back in scan order. Classification of each
// file is independent, so a failure on one never affects the rest.
func (p *Processor) Plan(ctx context.Context, rootPath string, recursive bool) ([]PlannedMove, error) {
	files, err := p.ScanDirectory(ctx, rootPath, recursive)
	if err != nil {
		return nil, err
	}

	moves := make([]PlannedMove, len(files))
	semaphore := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	for i, file := range files {
		semaphore <- struct{}{}
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			moves[i] = p.planFile(ctx, file)
		}(i, file)
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return moves, nil
}

// planFile classifies one file and shapes its destination.
func (p *Processor) planFile(ctx context.Context, file string) PlannedMove {
	move := PlannedMove{Source: file}
	ext := strings.ToLower(filepath.Ext(file))

	// Standalone subtitles cannot be placed without their video; they go
	// to the junk subtitle pile for manual review.
	if constants.SubtitleExtensions[ext] {
		move.DestDir = path.Join(constants.JunkDir, "subtitles")
		move.DestName = filepath.Base(file)
		move.Skipped = "standalone subtitle"
		return move
	}

	hints := p.hints
	if constants.AudioExtensions[ext] || constants.AudiobookExtensions[ext] {
		probed := p.probe(file)
		hints.Artist = probed.Artist
		hints.Album = probed.Album
		hints.TrackNumber = probed.TrackNumber
		hints.FileSize = probed.FileSize
	}

	record, err := p.engine.Classify(ctx, file, hints)
	if err != nil {
		p.logger.Warnf("Skipping %s: %v", file, err)
		move.DestDir = constants.JunkDir
		move.DestName = filepath.Base(file)
		move.Skipped = err.Error()
		return move
	}

	move.Record = record
	move.DestDir = record.DestDir
	move.DestName = destFileName(record, file)
	return move
}

// destFileName renders the destination file name: the canonical name
// plus the source extension. Books keep their original file name, the
// canonical naming lives in their directory structure.
func destFileName(record *classify.Record, source string) string {
	if record.Kind.IsBook() {
		return filepath.Base(source)
	}
	name := record.CanonicalName
	if name == "" {
		return filepath.Base(source)
	}
	// Series book names carry a directory component; only the leaf is a
	// file name.
	name = path.Base(name)
	return name + strings.ToLower(filepath.Ext(source))
}

// Apply executes planned moves under libraryRoot, creating directories
// as needed. Skipped entries are still moved (to junk) so the source
// tree drains. Each failure is logged and recorded; processing always
// continues with the next move.
func (p *Processor) Apply(ctx context.Context, libraryRoot string, moves []PlannedMove) error {
	for _, move := range moves {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		destDir := filepath.Join(libraryRoot, filepath.FromSlash(move.DestDir))
		if err := os.MkdirAll(destDir, 0755); err != nil {
			p.logger.Errorf("Failed to create %s: %v", destDir, err)
			continue
		}
		dest := filepath.Join(destDir, move.DestName)
		if err := os.Rename(move.Source, dest); err != nil {
			p.logger.Errorf("Failed to move %s to %s: %v", move.Source, dest, err)
			p.record(history.Operation{Type: history.OpSkip, Source: move.Source, Info: err.Error()})
			continue
		}
		opType := history.OpMove
		info := ""
		if move.Skipped != "" {
			opType = history.OpJunk
			info = move.Skipped
		}
		p.logger.Infof("Moved %s -> %s", move.Source, dest)
		p.record(history.Operation{Type: opType, Source: move.Source, Destination: dest, Info: info})
	}
	return nil
}

func (p *Processor) record(op history.Operation) {
	if p.history == nil {
		return
	}
	if err := p.history.Record(op); err != nil {
		p.logger.Warnf("Failed to record operation: %v", err)
	}
}

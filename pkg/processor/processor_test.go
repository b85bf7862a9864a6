package processor_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelospk/mediasort/pkg/core/classify"
	"github.com/angelospk/mediasort/pkg/core/history"
	"github.com/angelospk/mediasort/pkg/processor"
)

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	}
}

func newTestProcessor(t *testing.T, opts ...processor.Option) *processor.Processor {
	t.Helper()
	engine := classify.NewEngine(testLogger())
	opts = append(opts, processor.WithProbe(func(string) classify.Hints { return classify.Hints{} }))
	return processor.NewProcessor(engine, testLogger(), opts...)
}

func findMove(t *testing.T, moves []processor.PlannedMove, base string) processor.PlannedMove {
	t.Helper()
	for _, m := range moves {
		if filepath.Base(m.Source) == base {
			return m
		}
	}
	t.Fatalf("no planned move for %s", base)
	return processor.PlannedMove{}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"a.mkv",
		"sub/b.mkv",
		".hidden.mkv",
		filepath.Join(".stash", "c.mkv"),
	)

	p := newTestProcessor(t)

	files, err := p.ScanDirectory(context.Background(), dir, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.mkv", filepath.Base(files[0]))
	assert.Equal(t, "b.mkv", filepath.Base(files[1]))
}

func TestScanDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mkv", "sub/b.mkv")

	p := newTestProcessor(t)

	files, err := p.ScanDirectory(context.Background(), dir, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.mkv", filepath.Base(files[0]))
}

func TestPlanClassifiesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"The.Matrix.1999.1080p.mkv",
		"Breaking.Bad.S02E05.Breakage.mkv",
		"Mistborn.Book.2.The.Well.of.Ascension.epub",
		"orphan.srt",
	)

	p := newTestProcessor(t)

	moves, err := p.Plan(context.Background(), dir, true)
	require.NoError(t, err)
	require.Len(t, moves, 4)

	movie := findMove(t, moves, "The.Matrix.1999.1080p.mkv")
	assert.Equal(t, "Movies", movie.DestDir)
	assert.Equal(t, "The Matrix (1999).mkv", movie.DestName)
	assert.Empty(t, movie.Skipped)

	episode := findMove(t, moves, "Breaking.Bad.S02E05.Breakage.mkv")
	assert.Equal(t, "TV Shows/Breaking Bad/Season 02", episode.DestDir)
	assert.Equal(t, "Breaking Bad - S02E05 - Breakage.mkv", episode.DestName)

	// Books keep their original file name; the canonical naming lives in
	// the directory structure.
	book := findMove(t, moves, "Mistborn.Book.2.The.Well.of.Ascension.epub")
	assert.Equal(t, "Books/Mistborn/Ebooks", book.DestDir)
	assert.Equal(t, "Mistborn.Book.2.The.Well.of.Ascension.epub", book.DestName)

	subtitle := findMove(t, moves, "orphan.srt")
	assert.Equal(t, "junk/subtitles", subtitle.DestDir)
	assert.Equal(t, "standalone subtitle", subtitle.Skipped)
}

func TestPlanUsesProbeForAudio(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "07.Money.mp3")

	var probed []string
	engine := classify.NewEngine(testLogger())
	p := processor.NewProcessor(engine, testLogger(), processor.WithProbe(func(path string) classify.Hints {
		probed = append(probed, path)
		return classify.Hints{Artist: "Pink Floyd", Album: "The Dark Side of the Moon", TrackNumber: 7}
	}))

	moves, err := p.Plan(context.Background(), dir, true)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	require.Len(t, probed, 1)

	move := moves[0]
	require.NotNil(t, move.Record)
	assert.Equal(t, classify.MusicTrack, move.Record.Kind)
	assert.Equal(t, "Music", move.DestDir)
	assert.Equal(t, "Pink Floyd - Money.mp3", move.DestName)
}

func TestPlanWithFranchiseHints(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "The.Matrix.Reloaded.2003.mkv")

	p := newTestProcessor(t, processor.WithHints(classify.Hints{Franchises: []string{"The Matrix"}}))

	moves, err := p.Plan(context.Background(), dir, true)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "Movies/The Matrix", moves[0].DestDir)
}

func TestApplyMovesFiles(t *testing.T) {
	source := t.TempDir()
	library := t.TempDir()
	writeFiles(t, source, "The.Matrix.1999.1080p.mkv", "orphan.srt")

	historyLog, err := history.NewLog(t.TempDir(), testLogger())
	require.NoError(t, err)
	p := newTestProcessor(t, processor.WithHistory(historyLog))

	moves, err := p.Plan(context.Background(), source, true)
	require.NoError(t, err)
	require.NoError(t, p.Apply(context.Background(), library, moves))

	assert.FileExists(t, filepath.Join(library, "Movies", "The Matrix (1999).mkv"))
	assert.FileExists(t, filepath.Join(library, "junk", "subtitles", "orphan.srt"))
	assert.NoFileExists(t, filepath.Join(source, "The.Matrix.1999.1080p.mkv"))

	entries := historyLog.Entries()
	require.Len(t, entries, 2)
	types := map[history.OperationType]int{}
	for _, e := range entries {
		types[e.Type]++
	}
	assert.Equal(t, 1, types[history.OpMove])
	assert.Equal(t, 1, types[history.OpJunk])
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	source := t.TempDir()
	library := t.TempDir()
	writeFiles(t, source, "The.Matrix.1999.mkv")

	p := newTestProcessor(t)

	moves, err := p.Plan(context.Background(), source, true)
	require.NoError(t, err)

	// A vanished source must not abort the rest of the batch.
	missing := processor.PlannedMove{
		Source:   filepath.Join(source, "gone.mkv"),
		DestDir:  "Movies",
		DestName: "gone.mkv",
	}
	require.NoError(t, p.Apply(context.Background(), library, append([]processor.PlannedMove{missing}, moves...)))
	assert.FileExists(t, filepath.Join(library, "Movies", "The Matrix (1999).mkv"))
}

func TestPlanCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mkv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProcessor(t)
	_, err := p.Plan(ctx, dir, true)
	assert.Error(t, err)
}

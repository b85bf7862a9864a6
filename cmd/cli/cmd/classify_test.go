package cmd_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clicmd "github.com/angelospk/mediasort/cmd/cli/cmd"
	"github.com/angelospk/mediasort/pkg/core/classify"
)

// executeCommand runs the root command with the given args and captures
// its output. Flag values persist on the command between executions, so
// tests that flip flags run after the ones relying on defaults.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outBuf := bytes.NewBufferString("")
	clicmd.RootCmd.SetOut(outBuf)
	clicmd.RootCmd.SetErr(outBuf)
	clicmd.RootCmd.SetArgs(args)

	err := clicmd.RootCmd.Execute()
	return outBuf.String(), err
}

func TestClassifyCommand(t *testing.T) {
	output, err := executeCommand(t, "classify", "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv")
	require.NoError(t, err)

	assert.Contains(t, output, "kind:      movie")
	// Attributes print in sorted order so output is stable run to run.
	assert.Contains(t, output, "attrs:     codec=x264 quality=1080p release_group=GROUP source=BluRay year=1999")
	assert.Contains(t, output, "canonical: The Matrix (1999)")
	assert.Contains(t, output, "dest:      Movies")
}

func TestClassifyCommandFranchiseFlag(t *testing.T) {
	output, err := executeCommand(t, "classify", "--franchise", "The Matrix", "The.Matrix.Reloaded.2003.mkv")
	require.NoError(t, err)

	assert.Contains(t, output, "dest:      Movies/The Matrix")
}

func TestClassifyCommandJSON(t *testing.T) {
	output, err := executeCommand(t, "classify", "--json", "Breaking.Bad.S02E05.Breakage.720p.HDTV.mkv")
	require.NoError(t, err)

	var record classify.Record
	require.NoError(t, json.Unmarshal([]byte(output), &record))
	assert.Equal(t, classify.TVEpisode, record.Kind)
	assert.Equal(t, "Breaking Bad - S02E05 - Breakage", record.CanonicalName)
	assert.Equal(t, "TV Shows/Breaking Bad/Season 02", record.DestDir)
}

func TestClassifyCommandRequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "classify")
	assert.Error(t, err)
}

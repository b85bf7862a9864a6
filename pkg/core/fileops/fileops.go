// Package fileops reads embedded metadata from media files to supply
// classification hints. Probing is strictly best-effort: a file that
// cannot be opened or carries no tags simply contributes no evidence.
package fileops

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"github.com/angelospk/mediasort/pkg/core/classify"
)

// TagInfo holds the embedded metadata fields relevant to classification.
type TagInfo struct {
	Title       string
	Album       string
	Artist      string
	AlbumArtist string
	Genre       string
	Year        int
	TrackNumber int
	TotalTracks int
}

// ReadTags reads embedded tags from an audio container (MP4, MP3, FLAC,
// Ogg). Unsupported or tagless files return an error.
func ReadTags(filePath string) (*TagInfo, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata from '%s': %w", filePath, err)
	}

	info := &TagInfo{
		Title:       metadata.Title(),
		Album:       metadata.Album(),
		Artist:      metadata.Artist(),
		AlbumArtist: metadata.AlbumArtist(),
		Genre:       metadata.Genre(),
		Year:        metadata.Year(),
	}
	info.TrackNumber, info.TotalTracks = metadata.Track()
	return info, nil
}

// ProbeHints builds classification hints for a path from its file size
// and embedded tags. Every failure degrades to an empty hint set; the
// rule engine works from the path alone in that case.
func ProbeHints(filePath string) classify.Hints {
	hints := classify.Hints{}
	if stat, err := os.Stat(filePath); err == nil {
		hints.FileSize = stat.Size()
	}
	tags, err := ReadTags(filePath)
	if err != nil {
		return hints
	}
	hints.Artist = tags.Artist
	if hints.Artist == "" {
		hints.Artist = tags.AlbumArtist
	}
	hints.Album = tags.Album
	hints.TrackNumber = tags.TrackNumber
	return hints
}

// Package classify turns tokenized paths into typed, canonical
// classification records. The rule engine is fully deterministic;
// external candidate classifiers contribute votes that can only fill
// fields the rules left unknown.
package classify

import (
	"regexp"

	"github.com/angelospk/mediasort/internal/constants"
	"github.com/angelospk/mediasort/pkg/core/attributes"
	"github.com/angelospk/mediasort/pkg/core/resolve"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// MediaKind is the primary content type of a classified file.
type MediaKind string

const (
	Movie      MediaKind = "movie"
	TVEpisode  MediaKind = "tv_episode"
	MusicTrack MediaKind = "music"
	Software   MediaKind = "software"
	Ebook      MediaKind = "ebook"
	Audiobook  MediaKind = "audiobook"
)

// IsBook reports whether the kind is one of the two book formats.
func (k MediaKind) IsBook() bool { return k == Ebook || k == Audiobook }

// Hints carries caller-supplied context that sharpens classification:
// the franchise registry for movie grouping, a default season for lone
// episode numbers, and embedded-metadata evidence from a file probe.
// All fields are optional; the zero value is a valid empty hint set.
type Hints struct {
	Franchises    []string
	DefaultSeason int
	Artist        string
	Album         string
	TrackNumber   int
	FileSize      int64
}

var trackNumberRe = regexp.MustCompile(`^\d{1,2}$`)

// musicWords are title tokens that suggest an album track.
var musicWords = map[string]bool{
	"track": true, "album": true, "single": true, "ost": true,
	"soundtrack": true, "feat": true, "ft": true, "remix": true,
	"live": true, "demo": true, "ep": true,
}

// ClassifyKind decides the primary media kind. The checks run in fixed
// priority order and the first match wins:
//
//  1. book/audiobook extension (unambiguous regardless of title),
//  2. season/episode pattern (the strongest title signal),
//  3. audio extension backed by track/album evidence,
//  4. software/installer extension,
//  5. default: movie.
//
// The second return value reports genuinely contradictory evidence
// (more than one check would have matched); the caller logs it as a
// low-confidence decision but the kind is always returned.
func ClassifyKind(words []tokenize.Token, attrs attributes.Set, ext string, hints Hints) (MediaKind, bool) {
	isEbook := constants.EbookExtensions[ext]
	isAudiobook := constants.AudiobookExtensions[ext]
	_, hasEpisode := resolve.FindEpisodeMarker(words)
	isMusic := constants.AudioExtensions[ext] && !hasEpisode && hasTrackEvidence(words, hints)
	isSoftware := constants.SoftwareExtensions[ext]

	signals := 0
	for _, s := range []bool{isEbook || isAudiobook, hasEpisode, isMusic, isSoftware} {
		if s {
			signals++
		}
	}
	ambiguous := signals > 1

	switch {
	case isAudiobook:
		return Audiobook, ambiguous
	case isEbook:
		return Ebook, ambiguous
	case hasEpisode:
		return TVEpisode, ambiguous
	case isMusic:
		return MusicTrack, ambiguous
	case isSoftware:
		return Software, ambiguous
	}
	return Movie, ambiguous
}

// hasTrackEvidence reports track/album-like signals: a leading track
// number, music vocabulary in the title, or artist/album tags read from
// the file itself.
func hasTrackEvidence(words []tokenize.Token, hints Hints) bool {
	if hints.Artist != "" || hints.Album != "" || hints.TrackNumber > 0 {
		return true
	}
	if len(words) > 0 && trackNumberRe.MatchString(words[0].Normalized) {
		return true
	}
	for _, w := range words {
		if musicWords[w.Normalized] {
			return true
		}
	}
	return false
}

package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// EpisodeLink identifies an episode's place within its show. Zero values
// mean the field is unknown; Season 0 is treated as "no season" and the
// caller may substitute a default.
type EpisodeLink struct {
	Show         string `json:"show"`
	ShowYear     int    `json:"show_year,omitempty"`
	Season       int    `json:"season,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
}

var (
	// seMarkerRe matches combined forms inside a single token: S02E05, 2x05.
	seMarkerRe = regexp.MustCompile(`^(?i)s(\d{1,2})e(\d{1,3})$`)
	xMarkerRe  = regexp.MustCompile(`^(\d{1,2})x(\d{1,3})$`)
)

// EpisodeMarker locates season/episode information within title tokens.
type EpisodeMarker struct {
	Start   int // index of the first marker token
	End     int // index one past the last marker token
	Season  int // 0 when the marker carried no season
	Episode int
}

// FindEpisodeMarker scans title words for a season/episode pattern:
// S02E05, 2x05, or the spelled-out "Episode 5" (optionally preceded by
// "Season 2"). Returns the marker and true, or a zero marker and false.
func FindEpisodeMarker(words []tokenize.Token) (EpisodeMarker, bool) {
	for i, w := range words {
		if m := seMarkerRe.FindStringSubmatch(w.Normalized); m != nil {
			season, _ := strconv.Atoi(m[1])
			episode, _ := strconv.Atoi(m[2])
			return EpisodeMarker{Start: i, End: i + 1, Season: season, Episode: episode}, true
		}
		if m := xMarkerRe.FindStringSubmatch(w.Normalized); m != nil {
			season, _ := strconv.Atoi(m[1])
			episode, _ := strconv.Atoi(m[2])
			return EpisodeMarker{Start: i, End: i + 1, Season: season, Episode: episode}, true
		}
	}
	// Spelled-out form: "Season 2 Episode 5" or a standalone "Episode 5".
	for i, w := range words {
		if w.Normalized != "episode" && w.Normalized != "ep" {
			continue
		}
		if i+1 >= len(words) {
			continue
		}
		episode, err := strconv.Atoi(words[i+1].Normalized)
		if err != nil {
			continue
		}
		marker := EpisodeMarker{Start: i, End: i + 2, Episode: episode}
		if i >= 2 && words[i-2].Normalized == "season" {
			if season, err := strconv.Atoi(words[i-1].Normalized); err == nil {
				marker.Start = i - 2
				marker.Season = season
			}
		}
		return marker, true
	}
	return EpisodeMarker{}, false
}

// Episode splits title words at the season/episode marker: the left side
// becomes the show name, the right side the episode title. A marker with
// no season number leaves Season at zero unless defaultSeason is positive;
// the resolver itself never guesses. showYear, when known from the
// attribute pass, is carried through for disambiguation.
func Episode(words []tokenize.Token, showYear, defaultSeason int) EpisodeLink {
	link := EpisodeLink{ShowYear: showYear}
	marker, ok := FindEpisodeMarker(words)
	if !ok {
		link.Show = JoinWords(words)
		return link
	}
	link.Season = marker.Season
	link.Episode = marker.Episode
	if link.Season == 0 && defaultSeason > 0 {
		link.Season = defaultSeason
	}
	link.Show = JoinWords(words[:marker.Start])
	if marker.End < len(words) {
		link.EpisodeTitle = JoinWords(words[marker.End:])
	}
	return link
}

// JoinWords renders word tokens back into display text, preserving the
// original casing.
func JoinWords(words []tokenize.Token) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Raw)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

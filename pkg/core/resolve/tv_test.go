package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelospk/mediasort/pkg/core/resolve"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

func words(path string) []tokenize.Token {
	return tokenize.Words(tokenize.Tokenize(path))
}

func TestFindEpisodeMarker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		found   bool
		season  int
		episode int
	}{
		{"combined marker", "Breaking Bad S02E05 Breakage", true, 2, 5},
		{"lowercase marker", "show s01e01", true, 1, 1},
		{"x notation", "Show 2x05 Title", true, 2, 5},
		{"spelled out with season", "Show Season 2 Episode 5", true, 2, 5},
		{"episode only", "Show Episode 5", true, 0, 5},
		{"ep abbreviation", "Show ep 3", true, 0, 3},
		{"no marker", "Just A Movie Title", false, 0, 0},
		{"episode word without number", "The Final Episode", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, found := resolve.FindEpisodeMarker(words(tt.input))
			require.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.season, marker.Season)
				assert.Equal(t, tt.episode, marker.Episode)
			}
		})
	}
}

func TestEpisodeSplitsAtMarker(t *testing.T) {
	link := resolve.Episode(words("Breaking Bad S02E05 Breakage"), 0, 0)

	assert.Equal(t, "Breaking Bad", link.Show)
	assert.Equal(t, 2, link.Season)
	assert.Equal(t, 5, link.Episode)
	assert.Equal(t, "Breakage", link.EpisodeTitle)
}

func TestEpisodeWithoutMarker(t *testing.T) {
	link := resolve.Episode(words("Some Show"), 0, 0)

	assert.Equal(t, "Some Show", link.Show)
	assert.Zero(t, link.Season)
	assert.Zero(t, link.Episode)
	assert.Empty(t, link.EpisodeTitle)
}

func TestEpisodeDefaultSeason(t *testing.T) {
	// A marker with no season stays at zero unless a default is supplied.
	link := resolve.Episode(words("Show Episode 5"), 0, 0)
	assert.Zero(t, link.Season)

	link = resolve.Episode(words("Show Episode 5"), 0, 1)
	assert.Equal(t, 1, link.Season)

	// An explicit season is never overridden by the default.
	link = resolve.Episode(words("Show S03E05"), 0, 1)
	assert.Equal(t, 3, link.Season)
}

func TestEpisodeCarriesShowYear(t *testing.T) {
	link := resolve.Episode(words("Show S01E01"), 2008, 0)
	assert.Equal(t, 2008, link.ShowYear)
}

func TestJoinWordsPreservesCasing(t *testing.T) {
	assert.Equal(t, "The IT Crowd", resolve.JoinWords(words("The IT Crowd")))
	assert.Empty(t, resolve.JoinWords(nil))
}

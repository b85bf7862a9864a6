package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelospk/mediasort/pkg/core/naming"
	"github.com/angelospk/mediasort/pkg/core/resolve"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"What? A: Movie/Name", "What_ A_ Movie_Name"},
		{"plain name", "plain name"},
		{"  spaced   out  ", "spaced out"},
		{`back\slash|pipe`, "back_slash_pipe"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, naming.Sanitize(tt.in), tt.in)
	}
}

func TestMovieName(t *testing.T) {
	assert.Equal(t, "The Matrix (1999)", naming.Movie(resolve.MovieLink{Title: "The Matrix", Year: 1999}))
	assert.Equal(t, "The Matrix", naming.Movie(resolve.MovieLink{Title: "The Matrix"}))
}

func TestMovieExtraName(t *testing.T) {
	assert.Equal(t, "The Matrix (1999) - Deleted Scenes", naming.MovieExtra("The Matrix", 1999, "Deleted Scenes"))
	assert.Equal(t, "The Matrix - Deleted Scenes", naming.MovieExtra("The Matrix", 0, "Deleted Scenes"))
	assert.Equal(t, "The Matrix", naming.MovieExtra("The Matrix", 0, ""))
}

func TestEpisodeName(t *testing.T) {
	tests := []struct {
		name string
		link resolve.EpisodeLink
		want string
	}{
		{
			"full",
			resolve.EpisodeLink{Show: "Breaking Bad", Season: 2, Episode: 5, EpisodeTitle: "Breakage"},
			"Breaking Bad - S02E05 - Breakage",
		},
		{
			"no episode title",
			resolve.EpisodeLink{Show: "Breaking Bad", Season: 2, Episode: 5},
			"Breaking Bad - S02E05",
		},
		{
			"no season",
			resolve.EpisodeLink{Show: "Some Show", Episode: 7, EpisodeTitle: "Title"},
			"Some Show - E07 - Title",
		},
		{
			"show only",
			resolve.EpisodeLink{Show: "Some Show"},
			"Some Show",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Episode(tt.link))
		})
	}
}

func TestEpisodeExtraName(t *testing.T) {
	link := resolve.EpisodeLink{Show: "The Office", Season: 3}
	assert.Equal(t, "The Office - Gag Reel - Special", naming.EpisodeExtra(link, "Gag Reel"))

	link.EpisodeTitle = "Outtakes"
	assert.Equal(t, "The Office - Gag Reel - Outtakes", naming.EpisodeExtra(link, "Gag Reel"))
}

func TestBookName(t *testing.T) {
	series := resolve.BookLink{Series: "Mistborn", SeriesIndex: 2}
	assert.Equal(t, "Mistborn/02 - The Well of Ascension", naming.Book(series, "The Well of Ascension", nil))

	standalone := resolve.BookLink{Standalone: true}
	assert.Equal(t, "The Hobbit (J R R Tolkien)", naming.Book(standalone, "The Hobbit", []string{"J R R Tolkien"}))
	assert.Equal(t, "The Hobbit", naming.Book(standalone, "The Hobbit", nil))
}

func TestTrackName(t *testing.T) {
	assert.Equal(t, "Pink Floyd - Money", naming.Track("Pink Floyd", "Money"))
	assert.Equal(t, "Money", naming.Track("", "Money"))
}

func TestDirectories(t *testing.T) {
	assert.Equal(t, "Movies", naming.MovieDir(""))
	assert.Equal(t, "Movies/The Matrix", naming.MovieDir("The Matrix"))

	episode := resolve.EpisodeLink{Show: "Breaking Bad", Season: 2}
	assert.Equal(t, "TV Shows/Breaking Bad/Season 02", naming.EpisodeDir(episode))
	assert.Equal(t, "TV Shows/Breaking Bad", naming.EpisodeDir(resolve.EpisodeLink{Show: "Breaking Bad"}))

	assert.Equal(t, "Extras/Movies", naming.ExtraMovieDir(""))
	assert.Equal(t, "Extras/Movies/The Matrix", naming.ExtraMovieDir("The Matrix"))
	assert.Equal(t, "Extras/TV Shows/The Office/Season 03", naming.ExtraEpisodeDir(resolve.EpisodeLink{Show: "The Office", Season: 3}))

	assert.Equal(t, "Music", naming.MusicDir())
	assert.Equal(t, "Software", naming.SoftwareDir())
	assert.Equal(t, "junk", naming.JunkDir())
}

func TestBookDir(t *testing.T) {
	series := resolve.BookLink{Series: "Mistborn", SeriesIndex: 2}
	assert.Equal(t, "Books/Mistborn/Ebooks", naming.BookDir(series, "The Well of Ascension", nil, false))
	assert.Equal(t, "Books/Mistborn/Audiobooks", naming.BookDir(series, "The Well of Ascension", nil, true))

	standalone := resolve.BookLink{Standalone: true}
	assert.Equal(t, "Books/The Hobbit - J R R Tolkien", naming.BookDir(standalone, "The Hobbit", []string{"J R R Tolkien"}, false))
	assert.Equal(t, "Books/[Audiobook] The Hobbit", naming.BookDir(standalone, "The Hobbit", nil, true))
}

func TestSeasonFolder(t *testing.T) {
	assert.Equal(t, "Season 02", naming.SeasonFolder(2))
	assert.Equal(t, "Season 12", naming.SeasonFolder(12))
}

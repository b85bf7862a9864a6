// Package naming renders canonical display names and library-relative
// destination directories for classified media. Every formatter is a
// total function: absent fields are omitted together with their adjacent
// punctuation, never rendered as empty placeholders.
package naming

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/angelospk/mediasort/internal/constants"
	"github.com/angelospk/mediasort/pkg/core/resolve"
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// Sanitize removes characters that are unsafe in file names and collapses
// runs of whitespace.
func Sanitize(name string) string {
	clean := invalidChars.ReplaceAllString(name, "_")
	clean = multiSpace.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}

// Movie renders "{Title} ({Year})", dropping the parenthesis when the
// year is unknown.
func Movie(link resolve.MovieLink) string {
	if link.Year > 0 {
		return Sanitize(fmt.Sprintf("%s (%d)", link.Title, link.Year))
	}
	return Sanitize(link.Title)
}

// MovieExtra renders "{Title} ({Year}) - {ExtraType}" for bonus content
// attributed to a parent movie.
func MovieExtra(parentTitle string, year int, extraType string) string {
	name := parentTitle
	if year > 0 {
		name = fmt.Sprintf("%s (%d)", name, year)
	}
	if extraType != "" {
		name = name + " - " + extraType
	}
	return Sanitize(name)
}

// Episode renders "{Show} - S{NN}E{NN} - {EpisodeTitle}". Missing pieces
// shorten the name: no episode title drops the trailing segment, no
// season renders a bare E{NN}, no numbers at all leave just the show.
func Episode(link resolve.EpisodeLink) string {
	parts := []string{}
	if link.Show != "" {
		parts = append(parts, link.Show)
	}
	if code := episodeCode(link); code != "" {
		parts = append(parts, code)
	}
	if link.EpisodeTitle != "" {
		parts = append(parts, link.EpisodeTitle)
	}
	return Sanitize(strings.Join(parts, " - "))
}

// EpisodeExtra renders "{Show} - S{NN}E{NN} - {ExtraType} - {Title}",
// falling back to "Special" when the extra has no title of its own.
func EpisodeExtra(link resolve.EpisodeLink, extraType string) string {
	title := link.EpisodeTitle
	if title == "" {
		title = "Special"
	}
	parts := []string{}
	if link.Show != "" {
		parts = append(parts, link.Show)
	}
	if code := episodeCode(link); code != "" {
		parts = append(parts, code)
	}
	if extraType != "" {
		parts = append(parts, extraType)
	}
	parts = append(parts, title)
	return Sanitize(strings.Join(parts, " - "))
}

func episodeCode(link resolve.EpisodeLink) string {
	switch {
	case link.Season > 0 && link.Episode > 0:
		return fmt.Sprintf("S%02dE%02d", link.Season, link.Episode)
	case link.Episode > 0:
		return fmt.Sprintf("E%02d", link.Episode)
	}
	return ""
}

// Book renders the canonical book name: series entries become
// "{Series}/{NN} - {Title}", standalone books "{Title} ({Author})" with
// the author clause dropped when unknown.
func Book(link resolve.BookLink, title string, authors []string) string {
	if !link.Standalone {
		entry := title
		if link.SeriesIndex > 0 {
			entry = fmt.Sprintf("%02d - %s", link.SeriesIndex, title)
		}
		return path.Join(Sanitize(link.Series), Sanitize(entry))
	}
	if len(authors) > 0 && authors[0] != "" {
		return Sanitize(fmt.Sprintf("%s (%s)", title, authors[0]))
	}
	return Sanitize(title)
}

// Track renders "{Artist} - {Title}" for music, shortening to the bare
// title when no artist is known.
func Track(artist, title string) string {
	if artist != "" && title != "" {
		return Sanitize(artist + " - " + title)
	}
	return Sanitize(title)
}

// SeasonFolder renders the conventional "Season NN" folder name.
func SeasonFolder(season int) string {
	return fmt.Sprintf("Season %02d", season)
}

// MovieDir returns the library-relative directory for a movie, placing
// franchise members in their franchise subfolder.
func MovieDir(franchise string) string {
	if franchise != "" {
		return path.Join(constants.MoviesDir, Sanitize(franchise))
	}
	return constants.MoviesDir
}

// EpisodeDir returns "TV Shows/{Show}/Season NN", omitting the season
// folder when the season is unknown.
func EpisodeDir(link resolve.EpisodeLink) string {
	dir := path.Join(constants.TVShowsDir, Sanitize(link.Show))
	if link.Season > 0 {
		dir = path.Join(dir, SeasonFolder(link.Season))
	}
	return dir
}

// ExtraMovieDir returns the extras subtree for movie bonus content.
func ExtraMovieDir(franchise string) string {
	if franchise != "" {
		return path.Join(constants.ExtrasDir, constants.MoviesDir, Sanitize(franchise))
	}
	return path.Join(constants.ExtrasDir, constants.MoviesDir)
}

// ExtraEpisodeDir returns the extras subtree for TV bonus content.
func ExtraEpisodeDir(link resolve.EpisodeLink) string {
	dir := path.Join(constants.ExtrasDir, constants.TVShowsDir)
	if link.Show != "" {
		dir = path.Join(dir, Sanitize(link.Show))
	}
	if link.Season > 0 {
		dir = path.Join(dir, SeasonFolder(link.Season))
	}
	return dir
}

// BookDir returns the library-relative directory for a book. Series
// entries get a per-format subfolder under the series; standalone books
// sit directly under Books, audiobooks carrying an "[Audiobook]" prefix
// on their folder name.
func BookDir(link resolve.BookLink, title string, authors []string, audiobook bool) string {
	if !link.Standalone {
		format := constants.EbooksSubdir
		if audiobook {
			format = constants.AudiobooksSubdir
		}
		return path.Join(constants.BooksDir, Sanitize(link.Series), format)
	}
	folder := title
	if len(authors) > 0 && authors[0] != "" {
		folder = folder + " - " + authors[0]
	}
	if audiobook {
		folder = "[Audiobook] " + folder
	}
	return path.Join(constants.BooksDir, Sanitize(folder))
}

// MusicDir returns the library-relative music directory.
func MusicDir() string { return constants.MusicDir }

// SoftwareDir returns the library-relative software directory.
func SoftwareDir() string { return constants.SoftwareDir }

// JunkDir returns the library-relative junk directory for files the
// classifier could not place.
func JunkDir() string { return constants.JunkDir }

package resolve

import (
	"regexp"
	"strconv"

	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// BookLink places a book either inside a numbered series or marks it
// standalone. Exactly one of the two holds: Standalone implies Series and
// SeriesIndex are both absent, and series info implies not Standalone.
type BookLink struct {
	Series      string `json:"series,omitempty"`
	SeriesIndex int    `json:"series_index,omitempty"`
	Standalone  bool   `json:"standalone"`
}

// hashIndexRe matches an inline series index like "#2".
var hashIndexRe = regexp.MustCompile(`^#(\d{1,3})$`)

// seriesMarkers introduce a series index when followed by a number.
var seriesMarkers = map[string]bool{"book": true, "vol": true, "volume": true, "no": true}

// Book looks for an explicit series marker ("Book 2", "#2", "Vol. 3")
// among title words. When found, the words before the marker become the
// series name and the words after it the book title; otherwise the book
// is standalone and all words form the title. The returned link always
// satisfies the standalone invariant.
func Book(words []tokenize.Token) (BookLink, string) {
	for i, w := range words {
		if m := hashIndexRe.FindStringSubmatch(w.Normalized); m != nil {
			index, _ := strconv.Atoi(m[1])
			return seriesLink(words, i, i+1, index)
		}
		if seriesMarkers[w.Normalized] && i+1 < len(words) {
			index, err := strconv.Atoi(words[i+1].Normalized)
			if err != nil || index <= 0 || index > 999 {
				continue
			}
			return seriesLink(words, i, i+2, index)
		}
	}
	return BookLink{Standalone: true}, JoinWords(words)
}

func seriesLink(words []tokenize.Token, markerStart, markerEnd, index int) (BookLink, string) {
	series := JoinWords(words[:markerStart])
	title := ""
	if markerEnd < len(words) {
		title = JoinWords(words[markerEnd:])
	}
	if title == "" {
		// Marker at the end ("The Well of Ascension - Mistborn Book 2"
		// fully consumed): the left side is the best title we have.
		title = series
	}
	if series == "" {
		// A bare "Book 2.epub" carries an index but no usable series
		// name; without one the series info cannot stand.
		return BookLink{Standalone: true}, title
	}
	return BookLink{Series: series, SeriesIndex: index, Standalone: false}, title
}

// Authors extracts an author clause introduced by "by": words after the
// marker become the authors, words before it remain the title. Returns
// the trimmed title words and the author names (possibly empty).
func Authors(words []tokenize.Token) ([]tokenize.Token, []string) {
	for i, w := range words {
		if w.Normalized != "by" || i == 0 || i+1 >= len(words) {
			continue
		}
		return words[:i], []string{JoinWords(words[i+1:])}
	}
	return words, nil
}

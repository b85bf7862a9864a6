package resolve

import (
	"strings"

	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// MovieLink groups a movie under its franchise, when one is known.
// Franchise is only ever set from the caller-supplied registry; it is
// never fabricated from the title alone.
type MovieLink struct {
	Franchise string `json:"franchise,omitempty"`
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
}

// Movie builds the movie link from residual title words and the release
// year extracted by the attribute pass. Franchise attribution is a
// best-effort substring match against the registry of known franchise
// base titles; no match leaves Franchise empty.
func Movie(words []tokenize.Token, year int, franchises []string) MovieLink {
	link := MovieLink{
		Title: JoinWords(words),
		Year:  year,
	}
	link.Franchise = MatchFranchise(link.Title, franchises)
	return link
}

// MatchFranchise returns the first registry entry whose base title is
// contained in the given title (case-insensitive), or empty string.
func MatchFranchise(title string, franchises []string) string {
	lower := strings.ToLower(title)
	for _, f := range franchises {
		base := strings.ToLower(strings.TrimSpace(f))
		if base == "" {
			continue
		}
		if strings.Contains(lower, base) {
			return strings.TrimSpace(f)
		}
	}
	return ""
}

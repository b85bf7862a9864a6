package classify

import (
	"strings"

	"github.com/angelospk/mediasort/pkg/core/resolve"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// extraPhrases are multi-word extra-content markers, matched as
// consecutive normalized words. Longer phrases are listed first so they
// win over any single-word subset.
var extraPhrases = [][]string{
	{"behind", "the", "scenes"},
	{"special", "features"},
	{"deleted", "scenes"},
	{"deleted", "scene"},
	{"making", "of"},
	{"gag", "reel"},
	{"bonus", "content"},
}

// extraWords are single-token extra markers.
var extraWords = map[string]bool{
	"bts": true, "extra": true, "extras": true, "bonus": true,
	"interview": true, "interviews": true, "featurette": true,
	"featurettes": true, "commentary": true, "blooper": true,
	"bloopers": true,
}

// extraDisplay maps a matched marker to the display form used in
// canonical extra names.
var extraDisplay = map[string]string{
	"behind the scenes": "Behind the Scenes",
	"bts":               "Behind the Scenes",
	"special features":  "Special Features",
	"deleted scenes":    "Deleted Scenes",
	"deleted scene":     "Deleted Scenes",
	"making of":         "Making Of",
	"gag reel":          "Gag Reel",
	"blooper":           "Bloopers",
	"bloopers":          "Bloopers",
	"interview":         "Interview",
	"interviews":        "Interviews",
	"featurette":        "Featurette",
	"featurettes":       "Featurettes",
	"commentary":        "Commentary",
}

const defaultExtraType = "Bonus Content"

// DetectExtras scans title words for extra-content markers. When found it
// returns the display form of the extra type and the parent-work hint:
// the longest contiguous run of non-marker words, preferring runs before
// the first marker since parents are conventionally named first. An
// all-marker title yields an empty hint; the caller falls back to
// directory context.
func DetectExtras(words []tokenize.Token) (isExtra bool, extraType, parentHint string) {
	marker := make([]bool, len(words))

	for i := 0; i < len(words); i++ {
		if matched := matchPhrase(words, i); matched > 0 {
			phrase := normalizedPhrase(words[i : i+matched])
			if extraType == "" {
				extraType = displayFor(phrase)
			}
			for j := i; j < i+matched; j++ {
				marker[j] = true
			}
			isExtra = true
			i += matched - 1
			continue
		}
		if extraWords[words[i].Normalized] {
			if extraType == "" {
				extraType = displayFor(words[i].Normalized)
			}
			marker[i] = true
			isExtra = true
		}
	}
	if !isExtra {
		return false, "", ""
	}

	parentHint = longestCleanRun(words, marker)
	return true, extraType, parentHint
}

// matchPhrase returns the length of the extra phrase starting at index i,
// or 0 when none matches.
func matchPhrase(words []tokenize.Token, i int) int {
	for _, phrase := range extraPhrases {
		if i+len(phrase) > len(words) {
			continue
		}
		match := true
		for j, p := range phrase {
			if words[i+j].Normalized != p {
				match = false
				break
			}
		}
		if match {
			return len(phrase)
		}
	}
	return 0
}

func normalizedPhrase(words []tokenize.Token) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Normalized
	}
	return strings.Join(parts, " ")
}

func displayFor(marker string) string {
	if display, ok := extraDisplay[marker]; ok {
		return display
	}
	return defaultExtraType
}

// longestCleanRun finds the longest contiguous run of non-marker words.
// Runs that start before the first marker take precedence over longer
// runs after it.
func longestCleanRun(words []tokenize.Token, marker []bool) string {
	firstMarker := len(words)
	for i, m := range marker {
		if m {
			firstMarker = i
			break
		}
	}

	type run struct{ start, end int }
	var runs []run
	start := -1
	for i := range words {
		if marker[i] {
			if start >= 0 {
				runs = append(runs, run{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		runs = append(runs, run{start, len(words)})
	}
	if len(runs) == 0 {
		return ""
	}

	best := run{}
	bestBefore := false
	for _, r := range runs {
		before := r.start < firstMarker
		length := r.end - r.start
		switch {
		case before && !bestBefore:
			best, bestBefore = r, true
		case before == bestBefore && length > best.end-best.start:
			best = r
		}
	}
	return resolve.JoinWords(words[best.start:best.end])
}

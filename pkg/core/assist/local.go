package assist

import (
	"context"
	"path/filepath"

	ptn "github.com/razsteinmetz/go-ptn"

	"github.com/angelospk/mediasort/pkg/core/classify"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// Local is the deterministic fallback candidate: it parses the filename
// with go-ptn and needs no network, so the engine's behavior stays fully
// defined when the model-backed classifier is slow or unavailable.
type Local struct{}

// Propose implements classify.CandidateClassifier. A name go-ptn cannot
// parse yields no opinion rather than an error.
func (Local) Propose(_ context.Context, path string, _ []tokenize.Token) (*classify.Candidate, error) {
	parsed, err := ptn.Parse(filepath.Base(path))
	if err != nil {
		return nil, nil
	}
	candidate := &classify.Candidate{
		Title:   parsed.Title,
		Year:    parsed.Year,
		Season:  parsed.Season,
		Episode: parsed.Episode,
	}
	if parsed.Season > 0 || parsed.Episode > 0 {
		candidate.Kind = classify.TVEpisode
		candidate.Show = parsed.Title
	} else {
		candidate.Kind = classify.Movie
	}
	return candidate, nil
}

package classify

import (
	"github.com/angelospk/mediasort/pkg/core/attributes"
	"github.com/angelospk/mediasort/pkg/core/resolve"
)

// Record is the final, immutable classification result: one per input
// path, safe to serialize and hand to whatever performs the actual file
// placement. Exactly one of Episode, Movie, Book is set, matching Kind.
type Record struct {
	Path  string    `json:"path"`
	Title string    `json:"title"`
	Kind  MediaKind `json:"kind"`

	IsExtra    bool   `json:"is_extra,omitempty"`
	ExtraType  string `json:"extra_type,omitempty"`
	ParentHint string `json:"parent_hint,omitempty"`

	Attributes attributes.Set `json:"attributes,omitempty"`

	Episode *resolve.EpisodeLink `json:"episode,omitempty"`
	Movie   *resolve.MovieLink   `json:"movie,omitempty"`
	Book    *resolve.BookLink    `json:"book,omitempty"`

	// Book-only fields.
	Authors         []string `json:"authors,omitempty"`
	PublicationYear int      `json:"publication_year,omitempty"`

	// CanonicalName is the deterministic display name; DestDir the
	// library-relative directory the caller appends to its own root.
	CanonicalName string `json:"canonical_name"`
	DestDir       string `json:"dest_dir"`

	// LowConfidence marks decisions forced through contradictory
	// evidence by the fixed priority order.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

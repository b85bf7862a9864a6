package classify

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/angelospk/mediasort/pkg/core/attributes"
	"github.com/angelospk/mediasort/pkg/core/naming"
	"github.com/angelospk/mediasort/pkg/core/resolve"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
	log "github.com/sirupsen/logrus"
)

// ErrMalformedInput is returned when a path is empty or not readable as
// text. It is the only condition under which classification declines to
// produce a record; every other input yields a best-effort result.
var ErrMalformedInput = errors.New("malformed input path")

// Candidate is a proposed classification from an external or auxiliary
// classifier. Zero values mean "no opinion" for that field.
type Candidate struct {
	Kind         MediaKind
	Title        string
	Year         int
	Show         string
	Season       int
	Episode      int
	EpisodeTitle string
	Authors      []string
	Series       string
	SeriesIndex  int
	Franchise    string
	ExtraType    string
}

// CandidateClassifier proposes a candidate classification for a path.
// Implementations may consult anything from a local release-name parser
// to a remote model; the engine treats the result as one vote among its
// own heuristics, never an unconditional override, and tolerates nil
// results and errors.
type CandidateClassifier interface {
	Propose(ctx context.Context, path string, titleWords []tokenize.Token) (*Candidate, error)
}

// DefaultCandidateTimeout bounds each candidate consultation so a slow
// collaborator can never stall classification.
const DefaultCandidateTimeout = 5 * time.Second

// Engine runs the full classification pipeline. It holds no mutable
// state across calls: every classification is independent and the same
// Engine may be used from any number of goroutines.
type Engine struct {
	candidates []CandidateClassifier
	timeout    time.Duration
	logger     *log.Logger
}

// NewEngine builds an engine with the given candidate classifiers, in
// consultation order. A nil logger falls back to the standard one.
func NewEngine(logger *log.Logger, candidates ...CandidateClassifier) *Engine {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Engine{
		candidates: candidates,
		timeout:    DefaultCandidateTimeout,
		logger:     logger,
	}
}

// SetCandidateTimeout overrides the per-candidate time budget.
func (e *Engine) SetCandidateTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Classify produces the classification record for one path. Only a
// malformed path yields an error; ambiguity is resolved by the fixed
// priority order and flagged on the record instead.
func (e *Engine) Classify(ctx context.Context, path string, hints Hints) (*Record, error) {
	if strings.TrimSpace(path) == "" || !utf8.ValidString(path) {
		return nil, ErrMalformedInput
	}

	tokens := tokenize.Tokenize(path)
	if len(tokens) == 0 {
		return nil, ErrMalformedInput
	}
	ext := extensionOf(tokens)
	attrs, titleTokens, beforeYear := attributes.Extract(tokens)
	words := tokenize.Words(titleTokens)

	kind, ambiguous := ClassifyKind(words, attrs, ext, hints)
	if ambiguous {
		e.logger.WithFields(log.Fields{
			"path": path,
			"kind": kind,
		}).Warn("Contradictory type evidence; priority order decided")
	}

	record := &Record{
		Path:          path,
		Kind:          kind,
		Attributes:    attrs,
		LowConfidence: ambiguous,
	}

	if kind == Movie || kind == TVEpisode {
		var extraType, parentHint string
		record.IsExtra, extraType, parentHint = DetectExtras(words)
		if record.IsExtra {
			record.ExtraType = extraType
			record.ParentHint = parentHint
			words = withoutExtraMarkers(words)
		}
	}

	e.resolve(record, words, beforeYear, hints)
	e.consultCandidates(ctx, path, titleTokens, record)
	e.format(record, hints)
	return record, nil
}

// resolve runs the kind-specific resolver and fills title and links.
func (e *Engine) resolve(record *Record, words []tokenize.Token, beforeYear int, hints Hints) {
	switch record.Kind {
	case TVEpisode:
		link := resolve.Episode(words, record.Attributes.YearValue(), hints.DefaultSeason)
		record.Episode = &link
		record.Title = link.EpisodeTitle
		if record.Title == "" {
			record.Title = link.Show
		}
	case Movie:
		// The movie base title is everything before the year token;
		// trailing edition tags never join it. A leading year leaves
		// nothing before it, so the full residual stays as the title.
		// Extras resolve from the parent hint instead, where the marker
		// words are already gone.
		movieWords := words
		if !record.IsExtra && beforeYear > 0 && beforeYear < len(movieWords) {
			movieWords = movieWords[:beforeYear]
		}
		link := resolve.Movie(movieWords, record.Attributes.YearValue(), hints.Franchises)
		if record.IsExtra && record.ParentHint != "" {
			link.Title = record.ParentHint
			link.Franchise = resolve.MatchFranchise(record.ParentHint, hints.Franchises)
		}
		record.Movie = &link
		record.Title = link.Title
	case Ebook, Audiobook:
		trimmed, authors := resolve.Authors(words)
		link, title := resolve.Book(trimmed)
		record.Book = &link
		record.Title = title
		record.Authors = authors
		record.PublicationYear = record.Attributes.YearValue()
	case MusicTrack:
		record.Title = trackTitle(words, hints)
	default:
		record.Title = resolve.JoinWords(words)
	}
}

// consultCandidates lets each candidate classifier fill fields the rule
// engine left unknown. Candidates never change the kind and never
// replace a field the rules already decided.
func (e *Engine) consultCandidates(ctx context.Context, path string, titleTokens []tokenize.Token, record *Record) {
	for _, classifier := range e.candidates {
		candidateCtx, cancel := context.WithTimeout(ctx, e.timeout)
		candidate, err := classifier.Propose(candidateCtx, path, titleTokens)
		cancel()
		if err != nil {
			e.logger.WithError(err).WithField("path", path).Debug("Candidate classifier unavailable")
			continue
		}
		if candidate == nil {
			continue
		}
		e.merge(record, candidate)
	}
}

func (e *Engine) merge(record *Record, candidate *Candidate) {
	if record.Title == "" && candidate.Title != "" {
		record.Title = candidate.Title
	}
	if record.ExtraType == "" && record.IsExtra && candidate.ExtraType != "" {
		record.ExtraType = candidate.ExtraType
	}
	switch record.Kind {
	case TVEpisode:
		link := record.Episode
		if link.Show == "" && candidate.Show != "" {
			link.Show = candidate.Show
		}
		if link.Season == 0 && candidate.Season > 0 {
			link.Season = candidate.Season
		}
		if link.Episode == 0 && candidate.Episode > 0 {
			link.Episode = candidate.Episode
		}
		if link.EpisodeTitle == "" && candidate.EpisodeTitle != "" {
			link.EpisodeTitle = candidate.EpisodeTitle
		}
	case Movie:
		link := record.Movie
		if link.Title == "" && candidate.Title != "" {
			link.Title = candidate.Title
			record.Title = candidate.Title
		}
		if link.Year == 0 && candidate.Year > 0 {
			link.Year = candidate.Year
		}
		if link.Franchise == "" && candidate.Franchise != "" {
			link.Franchise = candidate.Franchise
		}
	case Ebook, Audiobook:
		if len(record.Authors) == 0 && len(candidate.Authors) > 0 {
			record.Authors = candidate.Authors
		}
		if record.PublicationYear == 0 && candidate.Year > 0 {
			record.PublicationYear = candidate.Year
		}
		link := record.Book
		if link.Standalone && candidate.Series != "" && candidate.SeriesIndex > 0 {
			link.Series = candidate.Series
			link.SeriesIndex = candidate.SeriesIndex
			link.Standalone = false
		}
	}
}

// format renders the canonical name and destination directory.
func (e *Engine) format(record *Record, hints Hints) {
	switch record.Kind {
	case TVEpisode:
		link := *record.Episode
		if record.IsExtra {
			record.CanonicalName = naming.EpisodeExtra(link, record.ExtraType)
			record.DestDir = naming.ExtraEpisodeDir(link)
		} else {
			record.CanonicalName = naming.Episode(link)
			record.DestDir = naming.EpisodeDir(link)
		}
	case Movie:
		link := *record.Movie
		if record.IsExtra {
			record.CanonicalName = naming.MovieExtra(link.Title, link.Year, record.ExtraType)
			record.DestDir = naming.ExtraMovieDir(link.Franchise)
		} else {
			record.CanonicalName = naming.Movie(link)
			record.DestDir = naming.MovieDir(link.Franchise)
		}
	case Ebook, Audiobook:
		audiobook := record.Kind == Audiobook
		record.CanonicalName = naming.Book(*record.Book, record.Title, record.Authors)
		record.DestDir = naming.BookDir(*record.Book, record.Title, record.Authors, audiobook)
	case MusicTrack:
		record.CanonicalName = naming.Track(hints.Artist, record.Title)
		record.DestDir = naming.MusicDir()
	case Software:
		record.CanonicalName = naming.Sanitize(record.Title)
		record.DestDir = naming.SoftwareDir()
	}
}

func extensionOf(tokens []tokenize.Token) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Kind == tokenize.Extension {
			return tokens[i].Normalized
		}
	}
	return ""
}

// withoutExtraMarkers strips marker words so resolvers see only the
// parent-work fragment.
func withoutExtraMarkers(words []tokenize.Token) []tokenize.Token {
	var clean []tokenize.Token
	for i := 0; i < len(words); i++ {
		if matched := matchPhrase(words, i); matched > 0 {
			i += matched - 1
			continue
		}
		if extraWords[words[i].Normalized] {
			continue
		}
		clean = append(clean, words[i])
	}
	return clean
}

// trackTitle drops a leading track number from a music title.
func trackTitle(words []tokenize.Token, hints Hints) string {
	if len(words) > 1 {
		if _, err := strconv.Atoi(words[0].Normalized); err == nil {
			words = words[1:]
		}
	}
	title := resolve.JoinWords(words)
	if title == "" {
		title = hints.Album
	}
	return title
}

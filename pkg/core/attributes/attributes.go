package attributes

import (
	"strconv"
	"strings"

	"github.com/angelospk/mediasort/internal/constants"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// Kind names a recognized attribute category.
type Kind string

const (
	Quality          Kind = "quality"
	Source           Kind = "source"
	Codec            Kind = "codec"
	Language         Kind = "language"
	SubtitleLanguage Kind = "subtitle_language"
	Year             Kind = "year"
	ReleaseGroup     Kind = "release_group"
)

// Set maps attribute kinds to their extracted values. Absent keys mean
// "unknown"; no sentinel values are ever stored.
type Set map[Kind]string

// Get returns the value for kind, or empty string when absent.
func (s Set) Get(kind Kind) string {
	if s == nil {
		return ""
	}
	return s[kind]
}

// YearValue returns the extracted year as an int, or 0 when absent.
func (s Set) YearValue() int {
	y, err := strconv.Atoi(s.Get(Year))
	if err != nil {
		return 0
	}
	return y
}

// qualityValues canonicalizes resolution tokens.
var qualityValues = map[string]string{
	"2160p": "2160p", "1080p": "1080p", "1080i": "1080i", "720p": "720p",
	"576p": "576p", "480p": "480p", "4k": "2160p", "uhd": "2160p",
}

// sourceValues canonicalizes single-token source tags.
var sourceValues = map[string]string{
	"bluray": "BluRay", "blu-ray": "BluRay", "bdrip": "BDRip",
	"brrip": "BRRip", "bdremux": "Remux", "remux": "Remux",
	"webdl": "WEB-DL", "web-dl": "WEB-DL", "webrip": "WEBRip",
	"web": "WEB", "hdtv": "HDTV", "hdrip": "HDRip", "dvdrip": "DVDRip",
	"dvd": "DVD", "cam": "CAM", "telesync": "TS",
}

// codecValues canonicalizes codec tokens, video and audio.
var codecValues = map[string]string{
	"x264": "x264", "x265": "x265", "h264": "H.264", "h265": "H.265",
	"hevc": "HEVC", "avc": "AVC", "av1": "AV1", "xvid": "XviD",
	"divx": "DivX", "aac": "AAC", "ac3": "AC3", "eac3": "EAC3",
	"dts": "DTS", "truehd": "TrueHD", "atmos": "Atmos", "flac": "FLAC",
}

// languageValues maps language names and ISO 639-2 codes to a display name.
// Two-letter codes are deliberately excluded here: inside a title they are
// indistinguishable from ordinary words ("it", "in", "no").
var languageValues = map[string]string{
	"english": "English", "eng": "English",
	"french": "French", "fre": "French", "fra": "French",
	"german": "German", "ger": "German", "deu": "German",
	"spanish": "Spanish", "spa": "Spanish",
	"italian": "Italian", "ita": "Italian",
	"greek": "Greek", "gre": "Greek",
	"japanese": "Japanese", "jpn": "Japanese",
	"korean": "Korean", "kor": "Korean",
	"russian": "Russian", "rus": "Russian",
	"polish": "Polish", "pol": "Polish",
	"portuguese": "Portuguese", "por": "Portuguese",
	"hindi": "Hindi", "hin": "Hindi",
	"dutch": "Dutch", "nld": "Dutch",
	"vostfr": "French",
}

// subtitleMarkers follow a language token to flip it into a subtitle tag.
var subtitleMarkers = map[string]bool{
	"subs": true, "sub": true, "subbed": true, "subtitles": true,
}

// noiseValues are release flags stripped from titles without becoming
// attributes: they carry no information the library layout needs.
var noiseValues = map[string]bool{
	"proper": true, "repack": true, "internal": true, "limited": true,
	"extended": true, "unrated": true, "uncut": true, "remastered": true,
	"complete": true, "retail": true, "multi": true, "dual": true,
	"dubbed": true, "10bit": true, "8bit": true, "hdr": true,
	"hdr10": true, "dovi": true, "sdr": true, "readnfo": true,
}

// Extract scans a token sequence with an ordered list of recognizers
// (quality, source, codec, year, language, subtitle language, release
// group) and returns the recognized attributes, the residual title
// tokens, and how many of those residual words sit before the consumed
// year token (all of them when no year was recognized). A token consumed
// by one recognizer is invisible to all later ones; when the same
// attribute kind matches more than once, the last occurrence in source
// order wins. Extraction never fails.
func Extract(tokens []tokenize.Token) (Set, []tokenize.Token, int) {
	set := Set{}
	consumed := make([]bool, len(tokens))

	recognizeQuality(tokens, consumed, set)
	recognizeSource(tokens, consumed, set)
	recognizeCodec(tokens, consumed, set)
	yearAt := recognizeYear(tokens, consumed, set)
	recognizeLanguage(tokens, consumed, set)
	recognizeReleaseGroup(tokens, consumed, set)
	consumeNoise(tokens, consumed)

	var title []tokenize.Token
	beforeYear := 0
	for i, tok := range tokens {
		if consumed[i] || tok.Kind != tokenize.Word {
			continue
		}
		if yearAt < 0 || i < yearAt {
			beforeYear++
		}
		title = append(title, tok)
	}
	return set, title, beforeYear
}

// matchable returns the normalized strings a token offers for attribute
// matching: the token itself for words, the child words for brackets.
func matchable(tok tokenize.Token) []string {
	switch tok.Kind {
	case tokenize.Word:
		return []string{tok.Normalized}
	case tokenize.Bracket:
		var values []string
		for _, child := range tokenize.Words(tok.Children) {
			values = append(values, child.Normalized)
		}
		if len(values) == 0 && tok.Normalized != "" {
			values = []string{tok.Normalized}
		}
		return values
	}
	return nil
}

func recognizeQuality(tokens []tokenize.Token, consumed []bool, set Set) {
	recognizeByTable(tokens, consumed, set, Quality, qualityValues)
}

func recognizeSource(tokens []tokenize.Token, consumed []bool, set Set) {
	// Two-word forms first: "WEB-DL" and "Blu-ray" split on the dash.
	for i := 0; i < len(tokens); i++ {
		if consumed[i] || tokens[i].Kind != tokenize.Word {
			continue
		}
		j := nextWord(tokens, consumed, i)
		if j == -1 {
			continue
		}
		pair := tokens[i].Normalized + "-" + tokens[j].Normalized
		if pair == "web-dl" || pair == "blu-ray" {
			set[Source] = sourceValues[pair]
			consumed[i], consumed[j] = true, true
		}
	}
	recognizeByTable(tokens, consumed, set, Source, sourceValues)
}

func recognizeCodec(tokens []tokenize.Token, consumed []bool, set Set) {
	// "H.264" splits into "h" + "264".
	for i := 0; i < len(tokens); i++ {
		if consumed[i] || tokens[i].Kind != tokenize.Word || tokens[i].Normalized != "h" {
			continue
		}
		j := nextWord(tokens, consumed, i)
		if j == -1 {
			continue
		}
		if v, ok := codecValues["h"+tokens[j].Normalized]; ok {
			set[Codec] = v
			consumed[i], consumed[j] = true, true
		}
	}
	recognizeByTable(tokens, consumed, set, Codec, codecValues)
}

func recognizeLanguage(tokens []tokenize.Token, consumed []bool, set Set) {
	// Plain words only count in the tag region at or after the first
	// recognized attribute, so "The English Patient" keeps its title
	// intact. Runs after the year recognizer: the year anchors the tag
	// region in the common "Title.YEAR.LANG.1080p" layout. Bracketed
	// tags count anywhere.
	firstAttr := len(tokens)
	for i := range tokens {
		if consumed[i] {
			firstAttr = i
			break
		}
	}
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		if tok.Kind == tokenize.Word && i < firstAttr {
			continue
		}
		for _, value := range matchable(tok) {
			lang, ok := languageValues[value]
			if !ok {
				continue
			}
			consumed[i] = true
			// A following "subs"/"subbed" marker turns the language into
			// a subtitle-language tag instead.
			if j := nextWord(tokens, consumed, i); j != -1 && subtitleMarkers[tokens[j].Normalized] {
				set[SubtitleLanguage] = lang
				consumed[j] = true
			} else {
				set[Language] = lang
			}
			break
		}
	}
}

// recognizeYear consumes every plausible year token, keeps the rightmost
// value, and returns that token's index, or -1 when none matched.
func recognizeYear(tokens []tokenize.Token, consumed []bool, set Set) int {
	yearAt := -1
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		for _, value := range matchable(tok) {
			if len(value) != 4 {
				continue
			}
			year, err := strconv.Atoi(value)
			if err != nil || year < constants.MinReleaseYear || year > constants.MaxReleaseYear {
				continue
			}
			// Rightmost year wins: titles sometimes contain a year of
			// their own, the release year conventionally comes last.
			set[Year] = value
			consumed[i] = true
			yearAt = i
			break
		}
	}
	return yearAt
}

func recognizeReleaseGroup(tokens []tokenize.Token, consumed []bool, set Set) {
	// Trailing bracket tag, e.g. "[YTS]".
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.Kind == tokenize.Extension || tok.Kind == tokenize.Separator {
			continue
		}
		if consumed[i] {
			return
		}
		if tok.Kind == tokenize.Bracket && tok.Normalized != "" && len(tok.Children) == 1 {
			set[ReleaseGroup] = strings.TrimSpace(tok.Children[0].Raw)
			consumed[i] = true
			return
		}
		// Dash-suffixed group, e.g. "x264-GROUP": final word preceded by
		// a bare dash. A spaced dash is a title separator, not a group
		// delimiter.
		if tok.Kind == tokenize.Word && i > 0 {
			sep := tokens[i-1]
			if sep.Kind == tokenize.Separator && sep.Raw == "-" {
				set[ReleaseGroup] = tok.Raw
				consumed[i] = true
			}
		}
		return
	}
}

func recognizeByTable(tokens []tokenize.Token, consumed []bool, set Set, kind Kind, table map[string]string) {
	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		for _, value := range matchable(tok) {
			if canonical, ok := table[value]; ok {
				set[kind] = canonical
				consumed[i] = true
				break
			}
		}
	}
}

// consumeNoise drops release flags that are neither attributes nor title.
func consumeNoise(tokens []tokenize.Token, consumed []bool) {
	for i, tok := range tokens {
		if consumed[i] || tok.Kind != tokenize.Word {
			continue
		}
		if noiseValues[tok.Normalized] {
			consumed[i] = true
		}
	}
}

// nextWord returns the index of the next unconsumed Word token after i,
// or -1 when none follows before a non-separator token intervenes.
func nextWord(tokens []tokenize.Token, consumed []bool, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case tokenize.Separator:
			continue
		case tokenize.Word:
			if consumed[j] {
				return -1
			}
			return j
		default:
			return -1
		}
	}
	return -1
}

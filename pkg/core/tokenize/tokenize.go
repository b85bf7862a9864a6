package tokenize

import (
	"path/filepath"
	"strings"
)

// Kind identifies the role a token plays in a parsed filename.
type Kind int

const (
	Word Kind = iota
	Bracket
	Separator
	Extension
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Bracket:
		return "bracket"
	case Separator:
		return "separator"
	case Extension:
		return "extension"
	}
	return "unknown"
}

// Token is an atomic unit of a parsed path. Raw preserves the original
// casing for display; Normalized is the case-folded form used for matching.
// Bracket tokens additionally carry the recursive tokenization of their
// contents in Children.
type Token struct {
	Kind       Kind
	Raw        string
	Normalized string
	Children   []Token
}

// IsWord reports whether the token carries title-like text.
func (t Token) IsWord() bool { return t.Kind == Word }

var separators = map[rune]bool{'.': true, '_': true, '-': true, ' ': true, '\t': true}

var closers = map[rune]rune{'[': ']', '(': ')', '{': '}'}

// Tokenize splits a raw path or filename into an ordered token sequence.
// It never fails: any input, however degenerate, yields a sequence. The
// final dot-suffix is emitted as an Extension token; bracketed groups
// become single Bracket tokens with recursively tokenized children; the
// rest is split into Word tokens on '.', '_', '-' and whitespace, with
// separator runs kept as Separator tokens so source order is preserved.
func Tokenize(path string) []Token {
	name := filepath.Base(strings.TrimSpace(path))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}

	base, ext := splitExtension(name)
	tokens := scan(base)
	if ext != "" {
		tokens = append(tokens, Token{
			Kind:       Extension,
			Raw:        ext,
			Normalized: strings.ToLower(ext),
		})
	}
	return tokens
}

// Words returns the top-level Word tokens of a sequence, in order.
func Words(tokens []Token) []Token {
	var words []Token
	for _, t := range tokens {
		if t.Kind == Word {
			words = append(words, t)
		}
	}
	return words
}

// scan tokenizes text without extension handling. Used for both the main
// filename body and, recursively, for bracket contents.
func scan(s string) []Token {
	var tokens []Token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		if closer, ok := closers[r]; ok {
			end := indexRune(runes, i+1, closer)
			if end == -1 {
				end = len(runes)
			}
			inner := string(runes[i+1 : end])
			raw := string(r) + inner
			if end < len(runes) {
				raw += string(closer)
			}
			tokens = append(tokens, Token{
				Kind:       Bracket,
				Raw:        raw,
				Normalized: strings.ToLower(inner),
				Children:   scan(inner),
			})
			i = end + 1
			continue
		}
		if separators[r] {
			start := i
			for i < len(runes) && separators[runes[i]] {
				i++
			}
			tokens = append(tokens, Token{Kind: Separator, Raw: string(runes[start:i])})
			continue
		}
		start := i
		for i < len(runes) && !separators[runes[i]] {
			if _, open := closers[runes[i]]; open {
				break
			}
			i++
		}
		raw := string(runes[start:i])
		tokens = append(tokens, Token{
			Kind:       Word,
			Raw:        raw,
			Normalized: strings.ToLower(raw),
		})
	}
	return tokens
}

// splitExtension separates a trailing dot-suffix of 1 to 5 alphanumeric
// characters containing at least one letter. Anything else (trailing dots,
// long suffixes, bare numbers like "Book.2", bare names) stays part of the
// body.
func splitExtension(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	suffix := name[idx+1:]
	if len(suffix) > 5 {
		return name, ""
	}
	hasLetter := false
	for _, r := range suffix {
		if !isAlphanumeric(r) {
			return name, ""
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLetter = true
		}
	}
	if !hasLetter {
		return name, ""
	}
	return name[:idx], name[idx:]
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

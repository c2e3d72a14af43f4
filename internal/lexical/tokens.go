// Package lexical compares the wording of generated responses.
package lexical

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinTokenRunes is the shortest token kept; shorter words are mostly
// articles and prepositions.
const MinTokenRunes = 3

// Tokenize lower-cases text and splits it into alphanumeric word tokens,
// dropping tokens shorter than MinTokenRunes. Any other rune separates
// tokens, apostrophes included: "don't" yields "don".
func Tokenize(text string) []string {
	lower := cases.Lower(language.Und).String(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Set is the distinct token vocabulary of a text.
type Set map[string]struct{}

// NewSet tokenizes text into a Set.
func NewSet(text string) Set {
	s := make(Set)
	for _, tok := range Tokenize(text) {
		s[tok] = struct{}{}
	}
	return s
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

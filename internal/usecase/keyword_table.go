package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// keywordRule maps one phrase to a tag.
type keywordRule[T any] struct {
	Phrase string
	Tag    T
}

type compiledRule[T any] struct {
	keywordRule[T]
	re *regexp.Regexp
}

// keywordTable matches whole-word phrases, longest phrase first. Phrases of
// equal length keep their declaration order.
type keywordTable[T any] struct {
	rules []compiledRule[T]
}

func newKeywordTable[T any](rules []keywordRule[T]) keywordTable[T] {
	sorted := make([]keywordRule[T], len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Phrase) > len(sorted[j].Phrase)
	})

	compiled := make([]compiledRule[T], len(sorted))
	for i, r := range sorted {
		compiled[i] = compiledRule[T]{keywordRule: r, re: phrasePattern(r.Phrase)}
	}
	return keywordTable[T]{rules: compiled}
}

// wordBoundary is any rune that cannot be part of a word. Go's \b only knows
// ASCII word characters, so "harga" would match inside "hargaé".
const wordBoundary = `[^\p{L}\p{N}_]`

// phrasePattern matches phrase as whole words, any run of whitespace between
// them. Submatch 1 is the phrase itself.
func phrasePattern(phrase string) *regexp.Regexp {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?:^|` + wordBoundary + `)(` + strings.Join(words, `\s+`) + `)(?:$|` + wordBoundary + `)`)
}

// find returns the byte span of the leftmost occurrence of r's phrase.
func (r compiledRule[T]) find(text string) (int, int, bool) {
	loc := r.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[2], loc[3], true
}

// match returns the first rule (in priority order) found in text and the
// byte offset right after its leftmost occurrence.
func (t keywordTable[T]) match(text string) (keywordRule[T], int, bool) {
	for _, r := range t.rules {
		if _, end, ok := r.find(text); ok {
			return r.keywordRule, end, true
		}
	}
	var zero keywordRule[T]
	return zero, 0, false
}

// strip deletes every phrase of the table from text until none is left and
// returns the cleaned text with collapsed whitespace.
func (t keywordTable[T]) strip(text string) string {
	for removed := true; removed; {
		removed = false
		for _, r := range t.rules {
			for {
				start, end, ok := r.find(text)
				if !ok {
					break
				}
				text = text[:start] + " " + text[end:]
				removed = true
			}
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

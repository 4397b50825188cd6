package sentence

import (
	"strings"
	"unicode"
)

// Language bundles the preprocessing state for one summarization call:
// sentence delimiters, the stopword set, and case folding. Construct it
// explicitly and pass it down; there is no package-level default.
type Language struct {
	Delimiters string
	Stopwords  map[string]struct{}
	Lowercase  bool
}

// English returns the default preprocessing configuration for English text.
func English() Language {
	return Language{
		Delimiters: ".!?\n",
		Stopwords:  englishStopwords(),
		Lowercase:  true,
	}
}

// Split breaks raw text into sentences on the configured delimiters.
// Delimiters stay attached to their sentence; empty segments are dropped.
func (l Language) Split(text string) []string {
	var sentences []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}
	for _, r := range text {
		if strings.ContainsRune(l.Delimiters, r) {
			if r != '\n' {
				b.WriteRune(r)
			}
			flush()
			continue
		}
		b.WriteRune(r)
	}
	flush()
	return sentences
}

// Tokenize splits a sentence into terms, folding case and dropping
// stopwords according to the configuration.
func (l Language) Tokenize(sent string) []string {
	fields := strings.FieldsFunc(sent, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var tokens []string
	for _, f := range fields {
		if l.Lowercase {
			f = strings.ToLower(f)
		}
		if _, skip := l.Stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func englishStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "of",
		"at", "by", "for", "with", "about", "against", "between", "into",
		"through", "during", "before", "after", "above", "below", "to",
		"from", "up", "down", "in", "out", "on", "off", "over", "under",
		"again", "further", "once", "here", "there", "all", "any", "both",
		"each", "few", "more", "most", "other", "some", "such", "no", "nor",
		"not", "only", "own", "same", "so", "than", "too", "very", "can",
		"will", "just", "is", "am", "are", "was", "were", "be", "been",
		"being", "have", "has", "had", "do", "does", "did", "it", "its",
		"this", "that", "these", "those", "i", "you", "he", "she", "we",
		"they", "them", "his", "her", "their", "what", "which", "who",
		"as", "until", "while",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

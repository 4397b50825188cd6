package vectorizer

import (
	"context"
	"errors"
	"math"
	"sort"

	"lexsum/internal/sentence"
)

// ErrEmptyVocabulary signals that no sentence produced a single usable term,
// e.g. input made entirely of stopwords or punctuation.
var ErrEmptyVocabulary = errors.New("empty vocabulary: no terms survived preprocessing")

// TFIDF vectorizes sentences with term-frequency inverse-document-frequency
// weights, treating each sentence as its own document. Rows are l2-normalized
// and idf uses the smoothed form ln((1+n)/(1+df)) + 1.
type TFIDF struct {
	lang sentence.Language
}

// NewTFIDF creates a TF-IDF vectorizer with the given preprocessing config.
func NewTFIDF(lang sentence.Language) *TFIDF {
	return &TFIDF{lang: lang}
}

func (t *TFIDF) FitTransform(_ context.Context, sentences []string) ([][]float64, error) {
	tokenized := make([][]string, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		tokenized[i] = t.lang.Tokenize(s)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, tok := range tokenized[i] {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Sorted vocabulary keeps column order deterministic across runs.
	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	column := make(map[string]int, len(vocab))
	for i, term := range vocab {
		column[term] = i
	}

	n := float64(len(sentences))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(sentences))
	for i, tokens := range tokenized {
		row := make([]float64, len(vocab))
		for _, tok := range tokens {
			j := column[tok]
			row[j] += idf[j]
		}
		normalize(row)
		vectors[i] = row
	}
	return vectors, nil
}

func normalize(row []float64) {
	var sq float64
	for _, v := range row {
		sq += v * v
	}
	if sq == 0 {
		return
	}
	norm := math.Sqrt(sq)
	for i := range row {
		row[i] /= norm
	}
}

package vectorizer

import "context"

// Vectorizer turns a sequence of sentences into fixed-length numeric vectors,
// one row per sentence. TF-IDF is the default implementation; any provider
// satisfying this contract can replace it.
type Vectorizer interface {
	FitTransform(ctx context.Context, sentences []string) ([][]float64, error)
}

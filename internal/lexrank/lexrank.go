// Package lexrank scores sentences by graph-based lexical centrality.
// Sentences become nodes of a similarity graph and importance is the
// stationary distribution of a damped random walk over it, following
// Erkan & Radev, "LexRank: graph-based lexical centrality as salience
// in text summarization".
package lexrank

import (
	"context"

	"lexsum/internal/vectorizer"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultSimThreshold  = 0.1
	DefaultAlpha         = 0.9
	DefaultDivRankAlpha  = 0.25
	DefaultMaxIterations = 1000
)

// Options configures the scoring pipeline. The zero value selects binary
// linking with the default threshold and the standard centrality ranker.
type Options struct {
	// Continuous carries raw similarities as edge weights instead of
	// thresholded weight-1 links.
	Continuous bool
	// SimThreshold is the binary-linking cutoff; ignored when Continuous.
	SimThreshold float64
	// Alpha is the damping factor of the random walk.
	Alpha float64
	// UseDivRank swaps in the diversity-promoting ranker.
	UseDivRank bool
	// DivRankAlpha is the DivRank self-link strength, distinct from Alpha.
	DivRankAlpha float64
	// MaxIterations caps the power iteration; the best iterate is kept on
	// overrun.
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.SimThreshold == 0 {
		o.SimThreshold = DefaultSimThreshold
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.DivRankAlpha == 0 {
		o.DivRankAlpha = DefaultDivRankAlpha
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

func (o Options) validate() error {
	if o.Alpha < 0 || o.Alpha > 1 {
		return configError("rank", "damping factor %v outside [0,1]", o.Alpha)
	}
	if o.DivRankAlpha < 0 || o.DivRankAlpha > 1 {
		return configError("rank", "self-link strength %v outside [0,1]", o.DivRankAlpha)
	}
	if o.MaxIterations < 0 {
		return configError("rank", "negative iteration cap %d", o.MaxIterations)
	}
	return nil
}

// Result carries the per-sentence centrality scores together with the
// similarity matrix they were derived from.
type Result struct {
	// Scores maps sentence index to a non-negative centrality score,
	// covering every sentence.
	Scores map[int]float64
	// Similarity is the N×N cosine similarity matrix.
	Similarity [][]float64
	// Converged is false when the ranker hit MaxIterations and returned its
	// best estimate. That is a warning condition, not an error.
	Converged bool
}

// Rank vectorizes sentences, builds the similarity graph and scores every
// sentence by centrality. Vectorizer failures propagate as dependency errors.
func Rank(ctx context.Context, sentences []string, vec vectorizer.Vectorizer, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if len(sentences) == 0 {
		return Result{}, inputError("vectorize", "no sentences")
	}

	vectors, err := vec.FitTransform(ctx, sentences)
	if err != nil {
		return Result{}, NewDependencyError("vectorize", err)
	}
	if len(vectors) != len(sentences) {
		return Result{}, inputError("vectorize", "vectorizer returned %d rows for %d sentences", len(vectors), len(sentences))
	}

	sim, err := Similarity(vectors)
	if err != nil {
		return Result{}, err
	}

	graph := BuildGraph(sim, opts.Continuous, opts.SimThreshold)

	var ranks []float64
	var converged bool
	if opts.UseDivRank {
		ranks, converged = divRank(graph, opts.DivRankAlpha, opts.Alpha, opts.MaxIterations)
	} else {
		ranks, converged = pageRank(graph, opts.Alpha, opts.MaxIterations)
	}

	scores := make(map[int]float64, len(ranks))
	for i, s := range ranks {
		scores[i] = s
	}
	return Result{Scores: scores, Similarity: sim, Converged: converged}, nil
}

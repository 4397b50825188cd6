// Package summarizer selects an extractive summary from centrality-ranked
// sentences under optional length constraints.
package summarizer

import (
	"context"
	"log/slog"

	"lexsum/internal/lexrank"
	"lexsum/internal/vectorizer"
)

// Variant names accepted by the CLI and API.
const (
	VariantLexRank    = "lexrank"
	VariantContinuous = "clexrank"
	VariantDivRank    = "divrank"
)

// VariantOptions maps a variant name to ranking options. The empty string
// means the default variant.
func VariantOptions(name string) (lexrank.Options, error) {
	switch name {
	case "", VariantLexRank:
		return lexrank.Options{}, nil
	case VariantContinuous:
		return lexrank.Options{Continuous: true}, nil
	case VariantDivRank:
		return lexrank.Options{UseDivRank: true}, nil
	default:
		return lexrank.Options{}, lexrank.NewConfigError("rank", "unknown variant %q", name)
	}
}

// Options configures one summarization call.
type Options struct {
	Ranking     lexrank.Options
	Constraints Constraints
}

// Summarizer runs the full pipeline: vectorize, rank, select. It is
// stateless across calls; one instance can serve concurrent requests.
type Summarizer struct {
	vec vectorizer.Vectorizer
	log *slog.Logger
}

// New creates a Summarizer backed by the given vectorizer.
func New(vec vectorizer.Vectorizer, log *slog.Logger) *Summarizer {
	return &Summarizer{vec: vec, log: log}
}

// Summarize scores the sentences and selects a subset under the constraints.
// A ranker that runs out of iterations is logged and its best estimate used.
func (s *Summarizer) Summarize(ctx context.Context, sentences []string, opts Options) (Summary, error) {
	res, err := lexrank.Rank(ctx, sentences, s.vec, opts.Ranking)
	if err != nil {
		return Summary{}, err
	}
	if !res.Converged {
		s.log.Warn("ranker hit the iteration cap; using best estimate",
			"sentences", len(sentences), "max_iterations", opts.Ranking.MaxIterations)
	}
	return Select(sentences, res.Scores, opts.Constraints)
}

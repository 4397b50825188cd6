package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lexsum/internal/app"
	"lexsum/internal/httputil"
	"lexsum/internal/lexrank"
	"lexsum/internal/queue"
	"lexsum/internal/store"
	"lexsum/internal/summarizer"
)

type summarizeTaskPayload struct {
	DocumentID    uuid.UUID `json:"document_id"`
	Filename      string    `json:"filename"`
	Text          string    `json:"text"`
	Variant       string    `json:"variant"`
	SentenceLimit *int      `json:"sentence_limit,omitempty"`
	CharLimit     *int      `json:"char_limit,omitempty"`
	Importance    *float64  `json:"importance,omitempty"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("summarize worker starting")

	g, ctx := errgroup.WithContext(context.Background())

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeSummarize, func(ctx context.Context, task queue.Task) error {
			var payload summarizeTaskPayload
			if err := json.Unmarshal(task.Payload, &payload); err != nil {
				return err
			}
			return handleSummarize(ctx, deps, payload)
		})
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.Port, "worker")
	})

	// Wait for either to fail
	if err := g.Wait(); err != nil {
		deps.Log.Error("worker stopped", "err", err)
	}
}

func handleSummarize(ctx context.Context, deps app.Deps, payload summarizeTaskPayload) error {
	log := deps.Log.With("document_id", payload.DocumentID)

	variant := payload.Variant
	if variant == "" {
		variant = summarizer.VariantLexRank
	}
	ranking, err := summarizer.VariantOptions(variant)
	if err != nil {
		// Bad variant names never heal on redelivery; park the document.
		markFailed(ctx, deps, payload.DocumentID)
		log.Error("rejecting task with unknown variant", "variant", variant, "err", err)
		return nil
	}
	ranking.SimThreshold = deps.Config.SimThreshold
	ranking.Alpha = deps.Config.Damping
	ranking.MaxIterations = deps.Config.MaxIterations

	sentences := deps.Lang.Split(payload.Text)
	sum, err := deps.Summarizer.Summarize(ctx, sentences, summarizer.Options{
		Ranking: ranking,
		Constraints: summarizer.Constraints{
			SentenceLimit: payload.SentenceLimit,
			CharLimit:     payload.CharLimit,
			Importance:    payload.Importance,
		},
	})
	if err != nil {
		markFailed(ctx, deps, payload.DocumentID)
		switch lexrank.KindOf(err) {
		case lexrank.KindInput, lexrank.KindConfig:
			// Deterministic failures never heal on redelivery.
			log.Error("document cannot be summarized", "err", err)
			return nil
		default:
			return err
		}
	}

	if err := deps.Store.SaveSummary(ctx, payload.DocumentID, store.Summary{
		Sentences: sum.Sentences,
		Indices:   sum.Indices,
		Variant:   variant,
	}); err != nil {
		return err
	}

	return deps.Store.UpdateDocumentStatus(ctx, payload.DocumentID, store.StatusReady)
}

func markFailed(ctx context.Context, deps app.Deps, docID uuid.UUID) {
	if err := deps.Store.UpdateDocumentStatus(ctx, docID, store.StatusFailed); err != nil {
		deps.Log.Error("failed to mark document failed", "document_id", docID, "err", err)
	}
}

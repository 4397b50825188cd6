package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"lexsum/internal/app"
	"lexsum/internal/cache"
	"lexsum/internal/httputil"
	"lexsum/internal/lexrank"
	"lexsum/internal/queue"
	"lexsum/internal/store"
	"lexsum/internal/summarizer"
)

type summarizeRequest struct {
	Text          string   `json:"text" validate:"required,min=1"`
	Variant       string   `json:"variant" validate:"omitempty,oneof=lexrank clexrank divrank"`
	SentenceLimit *int     `json:"sentence_limit" validate:"omitempty,gte=0"`
	CharLimit     *int     `json:"char_limit" validate:"omitempty,gte=0"`
	Importance    *float64 `json:"importance" validate:"omitempty,gte=0,lte=1"`
}

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
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/summarize", summarizeHandler(deps))
	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Get("/api/documents/{id}/summary", summaryHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("api listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req summarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		key := cache.Key(req.Text, req.Variant, req.SentenceLimit, req.CharLimit, req.Importance)
		if cached, err := deps.Cache.GetSummary(ctx, key); err == nil && cached != nil {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{
				"sentences": cached.Sentences,
				"indices":   cached.Indices,
				"variant":   cached.Variant,
				"cached":    true,
			})
			return
		} else if err != nil {
			deps.Log.Warn("cache lookup failed", "err", err)
		}

		sum, variant, err := runPipeline(ctx, deps, req)
		if err != nil {
			httputil.Fail(deps.Log, w, "summarization failed", err, statusFor(err))
			return
		}

		entry := &cache.Entry{Sentences: sum.Sentences, Indices: sum.Indices, Variant: variant}
		if err := deps.Cache.SetSummary(ctx, key, entry, deps.Config.CacheTTL); err != nil {
			deps.Log.Warn("cache store failed", "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"sentences": sum.Sentences,
			"indices":   sum.Indices,
			"variant":   variant,
			"cached":    false,
		})
	}
}

func runPipeline(ctx context.Context, deps app.Deps, req summarizeRequest) (summarizer.Summary, string, error) {
	variant := req.Variant
	if variant == "" {
		variant = summarizer.VariantLexRank
	}
	ranking, err := summarizer.VariantOptions(variant)
	if err != nil {
		return summarizer.Summary{}, variant, err
	}
	ranking.SimThreshold = deps.Config.SimThreshold
	ranking.Alpha = deps.Config.Damping
	ranking.MaxIterations = deps.Config.MaxIterations

	sentences := deps.Lang.Split(req.Text)
	sum, err := deps.Summarizer.Summarize(ctx, sentences, summarizer.Options{
		Ranking: ranking,
		Constraints: summarizer.Constraints{
			SentenceLimit: req.SentenceLimit,
			CharLimit:     req.CharLimit,
			Importance:    req.Importance,
		},
	})
	return sum, variant, err
}

// statusFor maps pipeline error kinds onto HTTP statuses: caller mistakes are
// 400s, collaborator failures 502, anything else 500.
func statusFor(err error) int {
	switch lexrank.KindOf(err) {
	case lexrank.KindInput, lexrank.KindConfig:
		return http.StatusBadRequest
	case lexrank.KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			switch strings.ToLower(filepath.Ext(header.Filename)) {
			case ".txt":
				contentType = "text/plain"
			case ".pdf":
				contentType = "application/pdf"
			}
		}
		allowedTypes := map[string]bool{
			"text/plain":      true,
			"application/pdf": true,
		}
		if !allowedTypes[contentType] {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}
		text := extractText(header.Filename, content, deps)

		doc, err := deps.Store.CreateDocument(ctx, header.Filename)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to persist document", err, http.StatusInternalServerError)
			return
		}

		payload := summarizeTaskPayload{
			DocumentID:    doc.ID,
			Filename:      header.Filename,
			Text:          text,
			Variant:       r.FormValue("variant"),
			SentenceLimit: formIntLimit(r, "sentence_limit"),
			CharLimit:     formIntLimit(r, "char_limit"),
			Importance:    formFloatLimit(r, "importance"),
		}
		body, err := json.Marshal(payload)
		if err != nil {
			fail(deps, ctx, w, "marshal payload failed", err, doc.ID, http.StatusInternalServerError, true)
			return
		}
		task := queue.Task{Type: queue.TaskTypeSummarize, Payload: body}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			fail(deps, ctx, w, "failed to enqueue document; please retry", err, doc.ID, http.StatusInternalServerError, true)
			return
		}

		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
			"document_id": doc.ID.String(),
			"status":      doc.Status,
		})
	}
}

// formIntLimit parses an optional numeric form field; absent or malformed
// values mean "unbounded".
func formIntLimit(r *http.Request, field string) *int {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func formFloatLimit(r *http.Request, field string) *float64 {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// fail is an api-specific error handler that can mark documents as failed.
func fail(deps app.Deps, ctx context.Context, w http.ResponseWriter, message string, err error, docID uuid.UUID, status int, markFailed bool) {
	log := deps.Log.With("document_id", docID)
	if markFailed && docID != uuid.Nil {
		if upErr := deps.Store.UpdateDocumentStatus(ctx, docID, store.StatusFailed); upErr != nil {
			log.Error("failed to mark document failed", "err", upErr)
		}
	}

	httputil.Fail(log, w, message, err, status)
}

func summaryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		docID, err := uuid.Parse(idStr)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid document id", err, http.StatusBadRequest)
			return
		}
		sum, err := deps.Store.GetSummary(r.Context(), docID)
		if errors.Is(err, store.ErrSummaryNotFound) {
			doc, docErr := deps.Store.GetDocument(r.Context(), docID)
			if docErr == nil && doc.Status == store.StatusProcessing {
				httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
					"document_id": docID,
					"status":      doc.Status,
				})
				return
			}
			httputil.Fail(deps.Log, w, "summary not ready", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load summary", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"document_id": docID,
			"sentences":   sum.Sentences,
			"indices":     sum.Indices,
			"variant":     sum.Variant,
		})
	}
}

// extractText extracts text from uploaded files, with PDF support.
func extractText(filename string, content []byte, deps app.Deps) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		text, err := extractPDF(content)
		if err != nil {
			deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", filename)
			return string(content)
		}
		return text
	}
	// Treat other files as plain text
	return string(content)
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

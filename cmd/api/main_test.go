package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lexsum/internal/app"
	"lexsum/internal/cache"
	"lexsum/internal/config"
	"lexsum/internal/lexrank"
	"lexsum/internal/queue"
	"lexsum/internal/sentence"
	"lexsum/internal/store"
	"lexsum/internal/summarizer"
	"lexsum/internal/vectorizer"
)

func newTestDeps(st store.Store, q queue.Queue, c cache.Cache) app.Deps {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.Deps{
		Store: st,
		Queue: q,
		Cache: c,
		Config: config.Config{
			MaxUploadSize: 1024 * 1024, // 1MB for tests
			SimThreshold:  0.1,
			Damping:       0.9,
			MaxIterations: 1000,
		},
		Log:        log,
		Lang:       sentence.English(),
		Summarizer: summarizer.New(vectorizer.NewTFIDF(sentence.English()), log),
	}
}

func TestSummarizeHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		setup         func(*cache.MockCache)
		wantStatus    int
		checkResponse func(*testing.T, *http.Response)
	}{
		{
			name: "successful summarize with sentence limit",
			body: `{"text":"A cat sat. A cat sat on a mat. Stocks fell today.","sentence_limit":1}`,
			setup: func(c *cache.MockCache) {
				c.On("GetSummary", mock.Anything, mock.Anything).Return(nil, nil).Once()
				c.On("SetSummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					Sentences []string `json:"sentences"`
					Indices   []int    `json:"indices"`
					Cached    bool     `json:"cached"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(result.Sentences) != 1 {
					t.Errorf("expected a one-sentence summary, got %v", result.Sentences)
				}
				if result.Cached {
					t.Error("expected a cache miss")
				}
			},
		},
		{
			name: "cache hit skips the pipeline",
			body: `{"text":"Anything at all."}`,
			setup: func(c *cache.MockCache) {
				c.On("GetSummary", mock.Anything, mock.Anything).
					Return(&cache.Entry{Sentences: []string{"cached sentence"}, Indices: []int{0}, Variant: "lexrank"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					Sentences []string `json:"sentences"`
					Cached    bool     `json:"cached"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !result.Cached || len(result.Sentences) != 1 || result.Sentences[0] != "cached sentence" {
					t.Errorf("expected the cached entry, got %+v", result)
				}
			},
		},
		{
			name:       "malformed json",
			body:       `{"text": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing text",
			body:       `{"variant":"lexrank"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown variant",
			body:       `{"text":"Some text.","variant":"textrank"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "importance above one",
			body:       `{"text":"Some text.","importance":1.5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "stopword-only input is a bad gateway",
			body: `{"text":"The of and."}`,
			setup: func(c *cache.MockCache) {
				c.On("GetSummary", mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(cache.MockCache)
			if tt.setup != nil {
				tt.setup(mockCache)
			}
			deps := newTestDeps(new(store.MockStore), new(queue.MockQueue), mockCache)

			req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			summarizeHandler(deps)(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
			mockCache.AssertExpectations(t)
		})
	}
}

func createMultipartRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	validDocID := uuid.New()

	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		setup       func(*store.MockStore, *queue.MockQueue)
		wantStatus  int
	}{
		{
			name:        "successful upload",
			filename:    "test.txt",
			contentType: "text/plain",
			content:     []byte("A cat sat. Stocks fell today."),
			setup: func(s *store.MockStore, q *queue.MockQueue) {
				s.On("CreateDocument", mock.Anything, "test.txt").
					Return(store.Document{ID: validDocID, Status: store.StatusProcessing}, nil).Once()
				q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:        "missing Content-Type detects from extension",
			filename:    "test.txt",
			contentType: "",
			content:     []byte("content"),
			setup: func(s *store.MockStore, q *queue.MockQueue) {
				s.On("CreateDocument", mock.Anything, "test.txt").
					Return(store.Document{ID: validDocID, Status: store.StatusProcessing}, nil).Once()
				q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:        "unsupported extension",
			filename:    "test.docx",
			contentType: "",
			content:     []byte("content"),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "file too large",
			filename:    "large.txt",
			contentType: "text/plain",
			content:     make([]byte, 2*1024*1024), // 2MB
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "CreateDocument failure",
			filename:    "test.txt",
			contentType: "text/plain",
			content:     []byte("content"),
			setup: func(s *store.MockStore, q *queue.MockQueue) {
				s.On("CreateDocument", mock.Anything, "test.txt").
					Return(store.Document{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:        "Enqueue failure marks doc failed",
			filename:    "test.txt",
			contentType: "text/plain",
			content:     []byte("content"),
			setup: func(s *store.MockStore, q *queue.MockQueue) {
				s.On("CreateDocument", mock.Anything, "test.txt").
					Return(store.Document{ID: validDocID, Status: store.StatusProcessing}, nil).Once()
				q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("nats down")).Times(3)
				s.On("UpdateDocumentStatus", mock.Anything, validDocID, store.StatusFailed).Return(nil).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(store.MockStore)
			mockQueue := new(queue.MockQueue)
			if tt.setup != nil {
				tt.setup(mockStore, mockQueue)
			}
			deps := newTestDeps(mockStore, mockQueue, new(cache.MockCache))

			req := createMultipartRequest(t, tt.filename, tt.contentType, tt.content)
			rec := httptest.NewRecorder()

			uploadHandler(deps)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			mockStore.AssertExpectations(t)
			mockQueue.AssertExpectations(t)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input error", &lexrank.Error{Kind: lexrank.KindInput, Stage: "rank", Err: errors.New("empty")}, http.StatusBadRequest},
		{"config error", &lexrank.Error{Kind: lexrank.KindConfig, Stage: "options", Err: errors.New("bad alpha")}, http.StatusBadRequest},
		{"dependency error", &lexrank.Error{Kind: lexrank.KindDependency, Stage: "vectorize", Err: errors.New("down")}, http.StatusBadGateway},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func newSummaryRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/summary", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSummaryHandler(t *testing.T) {
	docID := uuid.New()

	tests := []struct {
		name       string
		id         string
		setup      func(*store.MockStore)
		wantStatus int
	}{
		{
			name: "ready summary",
			id:   docID.String(),
			setup: func(s *store.MockStore) {
				s.On("GetSummary", mock.Anything, docID).
					Return(store.Summary{DocumentID: docID, Sentences: []string{"A cat sat."}, Indices: []int{0}, Variant: "lexrank"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "still processing",
			id:   docID.String(),
			setup: func(s *store.MockStore) {
				s.On("GetSummary", mock.Anything, docID).Return(store.Summary{}, store.ErrSummaryNotFound).Once()
				s.On("GetDocument", mock.Anything, docID).
					Return(store.Document{ID: docID, Status: store.StatusProcessing}, nil).Once()
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "failed document has no summary",
			id:   docID.String(),
			setup: func(s *store.MockStore) {
				s.On("GetSummary", mock.Anything, docID).Return(store.Summary{}, store.ErrSummaryNotFound).Once()
				s.On("GetDocument", mock.Anything, docID).
					Return(store.Document{ID: docID, Status: store.StatusFailed}, nil).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid document id",
			id:         "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			id:   docID.String(),
			setup: func(s *store.MockStore) {
				s.On("GetSummary", mock.Anything, docID).
					Return(store.Summary{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(store.MockStore)
			if tt.setup != nil {
				tt.setup(mockStore)
			}
			deps := newTestDeps(mockStore, new(queue.MockQueue), new(cache.MockCache))

			rec := httptest.NewRecorder()
			summaryHandler(deps)(rec, newSummaryRequest(tt.id))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			mockStore.AssertExpectations(t)
		})
	}
}

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores summarization results keyed by request hash. Summarization is
// deterministic for a given input and options, so entries never go stale;
// the TTL only bounds memory.
type Cache interface {
	// GetSummary retrieves a cached result by key. Returns nil on a miss.
	GetSummary(ctx context.Context, key string) (*Entry, error)

	// SetSummary stores a result with TTL.
	SetSummary(ctx context.Context, key string, entry *Entry, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Entry is a cached summarization result.
type Entry struct {
	Sentences []string `json:"sentences"`
	Indices   []int    `json:"indices"`
	Variant   string   `json:"variant"`
}

// Key hashes the request text and options into a stable cache key.
// Limits are formatted with a nil marker so "unset" and "zero" hash apart.
func Key(text, variant string, sentenceLimit, charLimit *int, importance *float64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", text, variant,
		formatIntLimit(sentenceLimit), formatIntLimit(charLimit), formatFloatLimit(importance))
	return hex.EncodeToString(h.Sum(nil))
}

func formatIntLimit(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloatLimit(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

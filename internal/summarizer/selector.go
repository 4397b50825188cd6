package summarizer

import (
	"sort"
	"unicode/utf8"

	"lexsum/internal/lexrank"
)

// Constraints bounds the summary length. Nil fields are unbounded; an
// explicit zero is honored literally (it stops the walk before the first
// candidate, which fail-opens to the full document).
type Constraints struct {
	// SentenceLimit caps the number of selected sentences.
	SentenceLimit *int
	// CharLimit caps the running character count of visited sentences.
	CharLimit *int
	// Importance stops selection once the accepted sentences hold this
	// fraction of the total score mass, in [0,1].
	Importance *float64
}

func (c Constraints) validate() error {
	if c.SentenceLimit != nil && *c.SentenceLimit < 0 {
		return lexrank.NewConfigError("select", "negative sentence limit %d", *c.SentenceLimit)
	}
	if c.CharLimit != nil && *c.CharLimit < 0 {
		return lexrank.NewConfigError("select", "negative character limit %d", *c.CharLimit)
	}
	if c.Importance != nil && (*c.Importance < 0 || *c.Importance > 1) {
		return lexrank.NewConfigError("select", "importance fraction %v outside [0,1]", *c.Importance)
	}
	return nil
}

// Summary is the selected subset of sentences in document order.
type Summary struct {
	Sentences []string
	Indices   []int
}

// Select walks candidates in descending score order (ties by ascending index)
// and accepts them until a constraint trips. The visited-sentence and
// visited-character counters increment before every check, on every visited
// sentence, and the importance check reads the fraction accumulated before
// the current candidate; this ordering is kept bit-for-bit for compatibility.
// When nothing survives, the whole document is returned rather than an empty
// summary.
func Select(sentences []string, scores map[int]float64, c Constraints) (Summary, error) {
	if err := c.validate(); err != nil {
		return Summary{}, err
	}

	order := make([]int, 0, len(scores))
	for i := range scores {
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	var total float64
	for _, s := range scores {
		total += s
	}

	var (
		picked       []int
		accepted     float64
		visitedSents int
		visitedChars int
	)
	for _, i := range order {
		visitedSents++
		visitedChars += utf8.RuneCountInString(sentences[i])
		if c.SentenceLimit != nil && visitedSents > *c.SentenceLimit {
			break
		}
		if c.CharLimit != nil && visitedChars > *c.CharLimit {
			break
		}
		if c.Importance != nil && total > 0 && accepted/total >= *c.Importance {
			break
		}
		picked = append(picked, i)
		accepted += scores[i]
	}

	if len(picked) == 0 {
		// Fail open: a summarizer never returns nothing. The index list stays
		// empty to mark that no sentence was actually selected.
		return Summary{Sentences: append([]string(nil), sentences...)}, nil
	}

	sort.Ints(picked)
	out := Summary{Indices: picked, Sentences: make([]string, len(picked))}
	for k, i := range picked {
		out.Sentences[k] = sentences[i]
	}
	return out, nil
}

package lexrank

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Similarity computes the pairwise cosine similarity matrix for the given
// sentence vectors. The result is symmetric by construction; values can drift
// marginally outside [0,1] from floating-point error and are not clipped.
// Rows are computed in parallel chunks since every cell is written exactly once.
func Similarity(vectors [][]float64) ([][]float64, error) {
	n := len(vectors)
	if n < 1 {
		return nil, inputError("similarity", "no vectors")
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, inputError("similarity", "vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	norms := make([]float64, n)
	for i, v := range vectors {
		var sq float64
		for _, x := range v {
			sq += x * x
		}
		norms[i] = math.Sqrt(sq)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				sim[i][i] = cosine(vectors[i], vectors[i], norms[i], norms[i])
				for j := 0; j < i; j++ {
					s := cosine(vectors[i], vectors[j], norms[i], norms[j])
					sim[i][j] = s
					sim[j][i] = s
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return sim, nil
}

// cosine is 1 - cosine_distance. Zero-magnitude vectors (all-stopword
// sentences) compare as 0 against everything.
func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for k := range a {
		dot += a[k] * b[k]
	}
	return dot / (normA * normB)
}

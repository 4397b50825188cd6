package lexrank

import "math"

const convergenceTol = 1e-6

// pageRank runs damped power iteration over the weighted graph and returns
// the stationary distribution estimate plus whether it converged within
// maxIter. Hitting the cap is not fatal; the best iterate is returned as-is.
// Dangling nodes spread their mass uniformly, so isolated sentences still
// collect the damping residual.
func pageRank(g *Graph, alpha float64, maxIter int) ([]float64, bool) {
	n := g.Len()
	if n == 1 {
		return []float64{1}, true
	}

	outWeight := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, e := range g.out[i] {
			outWeight[i] += e.weight
		}
	}

	inv := 1 / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = inv
	}
	next := make([]float64, n)

	for iter := 0; iter < maxIter; iter++ {
		var dangling float64
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				dangling += x[i]
			}
		}
		base := (1-alpha)*inv + alpha*dangling*inv
		for j := range next {
			next[j] = base
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				continue
			}
			share := alpha * x[i] / outWeight[i]
			for _, e := range g.out[i] {
				next[e.to] += share * e.weight
			}
		}

		var diff float64
		for i := range x {
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < float64(n)*convergenceTol {
			return x, true
		}
	}
	return x, false
}

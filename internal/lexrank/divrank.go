package lexrank

import "math"

// divRank runs the diversity-promoting centrality walk (DivRank). Each node
// keeps a self-link of strength selfLink; the remaining (1-selfLink) mass
// follows the organic similarity transitions, reweighted at every step by the
// current score so that already-visited neighborhoods pull rank away from
// their lookalikes. damping plays the same role as in pageRank.
//
// Like pageRank, running out of iterations returns the best iterate rather
// than failing.
func divRank(g *Graph, selfLink, damping float64, maxIter int) ([]float64, bool) {
	n := g.Len()
	if n == 1 {
		return []float64{1}, true
	}

	// Organic transition matrix: row-stochastic over out-edges, uniform for
	// dangling rows, with the self-link folded onto the diagonal.
	w := make([][]float64, n)
	inv := 1 / float64(n)
	for i := 0; i < n; i++ {
		w[i] = make([]float64, n)
		var total float64
		for _, e := range g.out[i] {
			total += e.weight
		}
		if total == 0 {
			for j := 0; j < n; j++ {
				w[i][j] = (1 - selfLink) * inv
			}
		} else {
			for _, e := range g.out[i] {
				w[i][e.to] = (1 - selfLink) * e.weight / total
			}
		}
		w[i][i] += selfLink
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = inv
	}
	next := make([]float64, n)

	for iter := 0; iter < maxIter; iter++ {
		for j := range next {
			next[j] = (1 - damping) * inv
		}
		for i := 0; i < n; i++ {
			var d float64
			for j := 0; j < n; j++ {
				d += w[i][j] * x[j]
			}
			if d == 0 {
				continue
			}
			share := damping * x[i] / d
			for j := 0; j < n; j++ {
				if w[i][j] != 0 {
					next[j] += share * w[i][j] * x[j]
				}
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

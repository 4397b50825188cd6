package lexrank

// Graph is a directed weighted graph over the dense node set {0..n-1}.
// Nodes are sentence indices, so adjacency is indexed by integer rather than
// built from linked node objects. Every node is present even when isolated.
type Graph struct {
	n   int
	out [][]edge
}

type edge struct {
	to     int
	weight float64
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.n
}

// Weight returns the weight of edge (from, to) and whether it exists.
func (g *Graph) Weight(from, to int) (float64, bool) {
	for _, e := range g.out[from] {
		if e.to == to {
			return e.weight, true
		}
	}
	return 0, false
}

func (g *Graph) addEdge(from, to int, weight float64) {
	g.out[from] = append(g.out[from], edge{to: to, weight: weight})
}

// BuildGraph links sentences whose pairwise similarity clears the policy.
// Binary linking adds weight-1 edges where sim >= simThreshold; continuous
// linking carries the raw similarity for every positive pair. Self-loops are
// excluded unconditionally.
func BuildGraph(sim [][]float64, continuous bool, simThreshold float64) *Graph {
	n := len(sim)
	g := &Graph{n: n, out: make([][]edge, n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if continuous {
				if sim[i][j] > 0 {
					g.addEdge(i, j, sim[i][j])
				}
			} else if sim[i][j] >= simThreshold {
				g.addEdge(i, j, 1.0)
			}
		}
	}
	return g
}

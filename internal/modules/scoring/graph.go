package scoring

import (
	"container/heap"

	"github.com/aristath/daebak/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// GraphCentrality scores numbers by their position in the co-occurrence
// graph: nodes are numbers, edge weights count joint appearances across
// history. The final score blends PageRank with an approximate betweenness
// centrality.
type GraphCentrality struct{}

// NewGraphCentrality creates the model.
func NewGraphCentrality() *GraphCentrality { return &GraphCentrality{} }

// Name implements Model.
func (m *GraphCentrality) Name() string { return "graph_centrality" }

const (
	pagerankDamping    = 0.85
	pagerankIterations = 30
	pagerankWeight     = 0.7
	betweennessWeight  = 0.3
)

// Score implements Model.
func (m *GraphCentrality) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	adjacency := coOccurrenceMatrix(draws)
	pagerank := pageRank(adjacency)
	betweenness := approximateBetweenness(adjacency)

	prNorm := pagerank.Normalized()
	bcNorm := betweenness.Normalized()

	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		scores[n] = pagerankWeight*prNorm[n] + betweennessWeight*bcNorm[n]
	}
	return scores
}

// coOccurrenceMatrix counts joint appearances of every number pair.
func coOccurrenceMatrix(draws []domain.DrawRecord) *mat.SymDense {
	adjacency := mat.NewSymDense(domain.MaxNumber, nil)
	for _, draw := range draws {
		for i := 0; i < len(draw.Numbers); i++ {
			for j := i + 1; j < len(draw.Numbers); j++ {
				a, b := draw.Numbers[i]-1, draw.Numbers[j]-1
				adjacency.SetSym(a, b, adjacency.At(a, b)+1)
			}
		}
	}
	return adjacency
}

// pageRank runs fixed-iteration power iteration with damping 0.85. Rows with
// no edges distribute uniformly (random restart for isolated nodes).
func pageRank(adjacency *mat.SymDense) domain.ScoreVector {
	const size = domain.MaxNumber

	rank := make([]float64, size)
	next := make([]float64, size)
	for i := range rank {
		rank[i] = 1.0 / size
	}

	rowTotals := make([]float64, size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			rowTotals[i] += adjacency.At(i, j)
		}
	}

	for iter := 0; iter < pagerankIterations; iter++ {
		for i := range next {
			next[i] = (1 - pagerankDamping) / size
		}
		for i := 0; i < size; i++ {
			if rowTotals[i] == 0 {
				// Isolated node: restart uniformly.
				share := pagerankDamping * rank[i] / size
				for j := 0; j < size; j++ {
					next[j] += share
				}
				continue
			}
			for j := 0; j < size; j++ {
				if w := adjacency.At(i, j); w > 0 {
					next[j] += pagerankDamping * rank[i] * w / rowTotals[i]
				}
			}
		}
		copy(rank, next)
	}

	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		scores[n] = rank[n-1]
	}
	return scores
}

// approximateBetweenness runs Brandes' algorithm over Dijkstra shortest
// paths with edge weight 1/(coOccurrence+1): strongly co-occurring pairs are
// "closer", so betweenness surfaces numbers bridging otherwise distant
// regions of the graph.
func approximateBetweenness(adjacency *mat.SymDense) domain.ScoreVector {
	const size = domain.MaxNumber
	centrality := make([]float64, size)

	for source := 0; source < size; source++ {
		dist := make([]float64, size)
		sigma := make([]float64, size)
		delta := make([]float64, size)
		predecessors := make([][]int, size)
		var stack []int

		for i := range dist {
			dist[i] = -1
		}
		dist[source] = 0
		sigma[source] = 1

		pq := &distanceQueue{}
		heap.Init(pq)
		heap.Push(pq, distanceEntry{node: source, dist: 0})
		visited := make([]bool, size)

		for pq.Len() > 0 {
			entry := heap.Pop(pq).(distanceEntry)
			v := entry.node
			if visited[v] {
				continue
			}
			visited[v] = true
			stack = append(stack, v)

			for w := 0; w < size; w++ {
				co := adjacency.At(v, w)
				if co == 0 || w == v {
					continue
				}
				weight := 1.0 / (co + 1)
				alt := dist[v] + weight
				if dist[w] < 0 || alt < dist[w]-1e-12 {
					dist[w] = alt
					sigma[w] = sigma[v]
					predecessors[w] = []int{v}
					heap.Push(pq, distanceEntry{node: w, dist: alt})
				} else if alt <= dist[w]+1e-12 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Dependency back-propagation in reverse visitation order.
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				if sigma[w] > 0 {
					delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
				}
			}
			if w != source {
				centrality[w] += delta[w]
			}
		}
	}

	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		scores[n] = centrality[n-1]
	}
	return scores
}

// distanceEntry is a node with its tentative distance for Dijkstra.
type distanceEntry struct {
	node int
	dist float64
}

type distanceQueue []distanceEntry

func (q distanceQueue) Len() int            { return len(q) }
func (q distanceQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q distanceQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x interface{}) { *q = append(*q, x.(distanceEntry)) }
func (q *distanceQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}

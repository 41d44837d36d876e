package meshseg

import (
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/splaytree"
	"gonum.org/v1/gonum/mat"
)

// DefaultDijkstraBatches is the default number of disjoint source
// partitions run in parallel by shortestPaths.
const DefaultDijkstraBatches = 6

// frontierNode is one entry in a Dijkstra frontier, ordered by
// tentative distance (ties broken by insertion sequence so the
// search stays deterministic). Only Max/Insert/Delete are used
// against the backing splaytree.Tree; Compare is inverted relative to
// a "natural" ascending order so that Max always yields the smallest
// tentative distance.
type frontierNode struct {
	dist float64
	seq  int
	face int
}

func (n *frontierNode) Compare(other *frontierNode) int {
	if n.dist < other.dist {
		return 1
	} else if n.dist > other.dist {
		return -1
	}
	if n.seq < other.seq {
		return 1
	} else if n.seq > other.seq {
		return -1
	}
	return 0
}

// shortestPaths computes the dense, symmetric face x face distance
// matrix over the dual graph. Sources are partitioned into numBatches
// disjoint groups and processed concurrently; within
// a batch, a source i only ever writes cells (i, t) for t >= i, so
// every symmetric cell is written by exactly one source, and every
// source belongs to exactly one batch — there is no cell contended
// by two goroutines at once.
func shortestPaths(faces []*Face, numBatches int) *mat.SymDense {
	n := len(faces)
	D := mat.NewSymDense(n, nil)
	if n == 0 {
		return D
	}
	if numBatches < 1 {
		numBatches = 1
	}
	if numBatches > n {
		numBatches = n
	}

	batchOf := func(batch int) []int {
		var sources []int
		for s := batch; s < n; s += numBatches {
			sources = append(sources, s)
		}
		return sources
	}

	essentials.ConcurrentMap(numBatches, numBatches, func(batch int) {
		for _, s := range batchOf(batch) {
			dist := dijkstraFrom(s, faces)
			for t := s; t < n; t++ {
				D.SetSym(s, t, dist[t])
			}
		}
	})

	return D
}

// dijkstraFrom runs single-source Dijkstra from face s over the
// dual graph, returning the distance to every face (math.Inf(1) if
// unreachable).
func dijkstraFrom(s int, faces []*Face) []float64 {
	n := len(faces)
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[s] = 0

	visited := make([]bool, n)
	frontier := map[int]*frontierNode{}
	tree := &splaytree.Tree[*frontierNode]{}
	seq := 0

	relax := func(face int, d float64) {
		seq++
		node := &frontierNode{dist: d, seq: seq, face: face}
		if old, ok := frontier[face]; ok {
			tree.Delete(old)
		}
		frontier[face] = node
		tree.Insert(node)
	}

	relax(s, 0)
	for {
		node := tree.Max()
		if node == nil {
			break
		}
		tree.Delete(node)
		delete(frontier, node.face)
		if visited[node.face] {
			continue
		}
		visited[node.face] = true

		for _, nb := range faces[node.face].Neighbors {
			if visited[nb.FaceID] {
				continue
			}
			newDist := dist[node.face] + nb.Dis
			if newDist < dist[nb.FaceID] {
				dist[nb.FaceID] = newDist
				relax(nb.FaceID, newDist)
			}
		}
	}

	return dist
}

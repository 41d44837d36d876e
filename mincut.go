package meshseg

import "math"

// role classifies a face's part in the fuzzy-region min-cut: 0
// untouched, 1 source-side crisp border, 2 sink-side crisp border, 3
// fuzzy.
type role int

const (
	roleNone role = iota
	roleSource
	roleSink
	roleFuzzy
)

// fnEdge is one arc of the max-flow capacity graph, paired with its
// reverse arc via rev for O(1) residual updates, rather than scanning
// the reverse node's edge list on every push.
type fnEdge struct {
	to   int
	cap  float64
	flow float64
	rev  int
}

type flowGraph struct {
	adj [][]fnEdge
}

func newFlowGraph(n int) *flowGraph {
	return &flowGraph{adj: make([][]fnEdge, n)}
}

// addArcPair adds arc u->v with capacity capUV and its paired arc
// v->u with capacity capVU, each linked to the other's index so a
// push along one can update the other's residual in O(1).
func (g *flowGraph) addArcPair(u, v int, capUV, capVU float64) {
	iu := len(g.adj[u])
	g.adj[u] = append(g.adj[u], fnEdge{to: v, cap: capUV})
	iv := len(g.adj[v])
	g.adj[v] = append(g.adj[v], fnEdge{to: u, cap: capVU})
	g.adj[u][iu].rev = iv
	g.adj[v][iv].rev = iu
}

// residual returns the remaining residual capacity of arc (u,ei).
func (g *flowGraph) residual(u, ei int) float64 {
	e := g.adj[u][ei]
	return e.cap - e.flow
}

// push sends f units of flow along arc (u,ei), and cancels the same
// amount from its paired reverse arc.
func (g *flowGraph) push(u, ei int, f float64) {
	e := &g.adj[u][ei]
	e.flow += f
	rev := &g.adj[e.to][e.rev]
	rev.flow -= f
}

// bfsAugment runs one Edmonds-Karp BFS from s, restricted to nodes
// with roles[v] != roleNone (always true for t), and pushes the
// bottleneck residual along the discovered path to t. It reports the
// bottleneck flow pushed (0 if no augmenting path exists) and the
// set of nodes reached by the BFS.
func (g *flowGraph) bfsAugment(s, t int, roles []role) (pushed float64, reached []bool) {
	n := len(g.adj)
	parentNode := make([]int, n)
	parentEdge := make([]int, n)
	bottleneck := make([]float64, n)
	for i := range parentNode {
		parentNode[i] = -1
	}
	parentNode[s] = s
	bottleneck[s] = math.Inf(1)

	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for ei, e := range g.adj[u] {
			v := e.to
			if parentNode[v] != -1 {
				continue
			}
			if v != t && roles[v] == roleNone {
				continue
			}
			res := g.residual(u, ei)
			if res <= 0 {
				continue
			}
			parentNode[v] = u
			parentEdge[v] = ei
			if res < bottleneck[u] {
				bottleneck[v] = res
			} else {
				bottleneck[v] = bottleneck[u]
			}
			queue = append(queue, v)
		}
	}

	reached = make([]bool, n)
	for i, p := range parentNode {
		reached[i] = p != -1
	}

	if parentNode[t] == -1 {
		return 0, reached
	}

	amount := bottleneck[t]
	cur := t
	for cur != s {
		p := parentNode[cur]
		g.push(p, parentEdge[cur], amount)
		cur = p
	}
	return amount, reached
}

// maxFlow runs Edmonds-Karp to completion, returning the total flow
// pushed and the final BFS-reachable set from s (the min-cut's
// source side).
func (g *flowGraph) maxFlow(s, t int, roles []role) (total float64, sourceSide []bool) {
	for {
		pushed, reached := g.bfsAugment(s, t, roles)
		if pushed == 0 {
			return total, reached
		}
		total += pushed
	}
}

// resolveFuzzy resolves the fuzzy boundary for one unordered pair of
// cluster slots (i,j): it classifies every face's role over the
// global face set, runs max-flow on the induced capacity graph, and
// relabels every face that was fuzzy between i and j to whichever
// side of the min-cut it fell on.
func resolveFuzzy(model *Model, offset, fuzzyBase, num, i, j int) {
	n := len(model.Faces)
	roles := make([]role, n)

	fuzzyLabelIJ := fuzzyBase + i*num + j
	fuzzyLabelJI := fuzzyBase + j*num + i

	for fid, f := range model.Faces {
		if f.Label == fuzzyLabelIJ || f.Label == fuzzyLabelJI {
			roles[fid] = roleFuzzy
		}
	}
	for fid, f := range model.Faces {
		if roles[fid] != roleFuzzy {
			continue
		}
		for _, nb := range f.Neighbors {
			nf := model.Faces[nb.FaceID]
			if nf.Label == offset+i {
				roles[nb.FaceID] = roleSource
			} else if nf.Label == offset+j {
				roles[nb.FaceID] = roleSink
			}
		}
	}

	s, t := n, n+1
	g := newFlowGraph(n + 2)

	for u := 0; u < n; u++ {
		for _, nb := range model.Faces[u].Neighbors {
			v := nb.FaceID
			if v <= u {
				continue // process each undirected adjacency once
			}
			if roles[u] == roleNone && roles[v] == roleNone {
				continue
			}
			cap := 1 / (1 + nb.AngDis/model.AvgAngDis)
			g.addArcPair(u, v, cap, cap)
		}
	}
	for fid, r := range roles {
		switch r {
		case roleSource:
			g.addArcPair(s, fid, math.Inf(1), 0)
		case roleSink:
			g.addArcPair(fid, t, math.Inf(1), 0)
		}
	}

	_, sourceSide := g.maxFlow(s, t, roles)

	for fid, f := range model.Faces {
		if f.Label == fuzzyLabelIJ || f.Label == fuzzyLabelJI {
			if sourceSide[fid] {
				f.Label = offset + i
			} else {
				f.Label = offset + j
			}
		}
	}
}

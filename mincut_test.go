package meshseg

import "testing"

func TestFlowGraphPushUpdatesPairedReverseArc(t *testing.T) {
	g := newFlowGraph(2)
	g.addArcPair(0, 1, 5, 3)

	g.push(0, 0, 2)
	if got := g.residual(0, 0); got != 3 {
		t.Errorf("forward residual after pushing 2 of 5: got %v, want 3", got)
	}
	// The paired reverse arc's flow is cancelled by the same amount,
	// so its residual capacity grows rather than shrinks.
	if got := g.residual(1, 0); got != 5 {
		t.Errorf("reverse residual after pushing 2 forward: got %v, want 5 (3 base cap + 2 cancelled)", got)
	}
}

func TestMaxFlowSimpleChain(t *testing.T) {
	// s -(cap 3)-> a -(cap 2)-> t : max flow is bottlenecked at 2.
	g := newFlowGraph(3)
	s, a, tnode := 0, 1, 2
	g.addArcPair(s, a, 3, 0)
	g.addArcPair(a, tnode, 2, 0)
	roles := []role{roleSource, roleFuzzy, roleSink}

	total, sourceSide := g.maxFlow(s, tnode, roles)
	if total != 2 {
		t.Errorf("expected max flow 2, got %v", total)
	}
	if !sourceSide[s] || !sourceSide[a] {
		t.Errorf("expected s and a on the source side of the min-cut, got %v", sourceSide)
	}
	if sourceSide[tnode] {
		t.Errorf("expected t not on the source side of the min-cut")
	}
}

func TestMaxFlowUniformCapacityBand(t *testing.T) {
	// A band of 4 fuzzy faces fed directly by s and drained directly
	// into t (no separate border nodes), uniform capacities. The cut
	// value should equal the minimum edge-capacity count across the
	// band (here, 2: the two parallel paths source->fuzzy->sink).
	//
	// Graph: s -> f0 -> f2 -> t
	//        s -> f1 -> f3 -> t
	// all real edges capacity 1.
	s, f0, f1, f2, f3, tnode := 0, 1, 2, 3, 4, 5
	g := newFlowGraph(6)
	g.addArcPair(s, f0, 1e18, 0)
	g.addArcPair(s, f1, 1e18, 0)
	g.addArcPair(f0, f2, 1, 1)
	g.addArcPair(f1, f3, 1, 1)
	g.addArcPair(f2, tnode, 1e18, 0)
	g.addArcPair(f3, tnode, 1e18, 0)

	roles := make([]role, 6)
	roles[s], roles[tnode] = roleSource, roleSink
	roles[f0], roles[f1], roles[f2], roles[f3] = roleFuzzy, roleFuzzy, roleFuzzy, roleFuzzy

	total, _ := g.maxFlow(s, tnode, roles)
	if total != 2 {
		t.Errorf("expected max flow 2 across the uniform-capacity band, got %v", total)
	}
}

func TestResolveFuzzyRelabelsToCrispSides(t *testing.T) {
	verts, faces := cube()
	m, err := NewModel(verts, faces)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	offset, fuzzyBase, num := 0, 2, 2
	// Split the cube's faces into thirds: two crisp labels and the
	// fuzzy pair (0,1), then resolve it: every fuzzy face
	// should end up crisply labeled offset+0 or offset+1, never fuzzy.
	for i, f := range m.Faces {
		if i < 4 {
			f.Label = offset + 0
		} else if i < 8 {
			f.Label = offset + 1
		} else {
			f.Label = fuzzyBase + 0*num + 1
		}
	}

	resolveFuzzy(m, offset, fuzzyBase, num, 0, 1)

	for i, f := range m.Faces {
		if f.Label != offset && f.Label != offset+1 {
			t.Errorf("face %d still has an unresolved label %d after resolveFuzzy", i, f.Label)
		}
	}
}

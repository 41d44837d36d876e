package meshseg

import "testing"

func TestRunTetrahedronTwoLabels(t *testing.T) {
	verts, faces := tetrahedron()
	m, err := NewModel(verts, faces)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	Run(m, false)

	labels := map[int]int{}
	for _, f := range m.Faces {
		if f.Label >= m.LabelNums {
			t.Fatalf("face has unresolved fuzzy label %d (label_nums=%d)", f.Label, m.LabelNums)
		}
		labels[f.Label]++
	}
	if len(labels) != 2 {
		t.Fatalf("expected exactly 2 labels on a regular tetrahedron, got %d: %v", len(labels), labels)
	}
	for label, count := range labels {
		if count != 2 {
			t.Errorf("label %d covers %d faces, want 2", label, count)
		}
	}
}

func TestRunCubeTwoContiguousHalves(t *testing.T) {
	verts, faces := cube()
	m, err := NewModel(verts, faces)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	Run(m, false)

	labels := map[int]int{}
	for _, f := range m.Faces {
		if f.Label >= m.LabelNums {
			t.Fatalf("face has unresolved fuzzy label %d (label_nums=%d)", f.Label, m.LabelNums)
		}
		labels[f.Label]++
	}
	if len(labels) != 2 {
		t.Fatalf("expected exactly 2 labels on a cube, got %d: %v", len(labels), labels)
	}
	for label, count := range labels {
		if count != 6 {
			t.Errorf("label %d covers %d faces, want 6", label, count)
		}
	}
}

func TestRunLabelNumsMatchesNum(t *testing.T) {
	verts, faces := cube()
	m, err := NewModel(verts, faces)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	Run(m, false)
	if m.LabelNums != 2 {
		t.Errorf("top-level Run does exactly one Seg() call with num=2, expected label_nums=2, got %d", m.LabelNums)
	}
}

package meshseg

import (
	"log"

	"gonum.org/v1/gonum/mat"
)

// Run builds the top-level Segment over the whole mesh and performs
// one full segmentation pass. The driver starts at level=2, so the
// as-written recursion gate in Seg means this single pass is also the
// only one that ever executes at the top level.
func Run(m *Model, verbose bool) {
	s := NewSegment(m, 2, nil)
	s.Verbose = verbose
	s.Seg()
}

// Seg runs the k-medoid refinement to a fixed point, resolves every
// fuzzy boundary via max-flow, and then recurses into sub-regions
// under the size/variation thresholds that gate further splitting.
func (s *Segment) Seg() {
	offset := s.model.LabelNums
	fuzzyBase := offset + s.num
	n := s.d.Symmetric()
	prob := mat.NewDense(s.num, n, nil)

	const maxRounds = 20
	for round := 0; round < maxRounds; round++ {
		s.computeProb(prob)
		newReps, cost := s.recomputeReps(prob, offset, fuzzyBase)

		changed := false
		for k := 0; k < s.num; k++ {
			newCost := cost.At(k, newReps[k])
			oldCost := cost.At(k, s.reps[k])
			if newCost < oldCost-1e-12 && newReps[k] != s.reps[k] {
				changed = true
			}
		}
		if s.Verbose {
			log.Printf("level %d: round %d/%d", s.level, round+1, maxRounds)
		}
		if !changed {
			break
		}
		s.reps = newReps
		s.uniques = uniqueFirstIndices(s.reps)
	}

	s.recomputeReps(prob, offset, fuzzyBase)
	s.assign(prob, offset, fuzzyBase)

	for _, i := range s.uniques {
		for _, j := range s.uniques {
			if j <= i {
				continue
			}
			resolveFuzzy(s.model, offset, fuzzyBase, s.num, i, j)
		}
	}

	s.model.LabelNums += s.num

	localMaxPatchDis := 0.0
	for _, a := range s.reps {
		for _, b := range s.reps {
			if d := s.d.At(a, b); d > localMaxPatchDis {
				localMaxPatchDis = d
			}
		}
	}
	if s.level > 0 || localMaxPatchDis/s.globalMaxDis < 0.1 {
		return
	}

	var children []*Segment
	for sid := 0; sid < s.num; sid++ {
		if !isUnique(s.uniques, sid) {
			continue
		}
		var fids []int
		for _, fid := range s.fids {
			if s.model.Faces[fid].Label%s.num == sid {
				fids = append(fids, fid)
			}
		}
		children = append(children, NewSegment(s.model, s.level+1, fids))
	}
	for _, child := range children {
		if child.angDiff > 0.3 && child.localAvgDis/child.globalAvgDis > 0.2 {
			child.Verbose = s.Verbose
			child.Seg()
		}
	}
}

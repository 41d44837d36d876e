package meshseg

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Segment is one work unit of the hierarchical decomposition: a
// subset of face ids considered in isolation via their local
// distance submatrix.
type Segment struct {
	model *Model
	fids  []int
	level int

	d   *mat.SymDense // local submatrix D' = D[fids, fids]
	num int           // fixed at 2

	reps    []int // local indices into fids/d, one per slot
	uniques []int // slot indices (0..num-1) with a distinct rep value

	globalMaxDis float64
	globalAvgDis float64
	localAvgDis  float64
	angDiff      float64

	// Verbose enables a one-line-per-round progress log during Seg
	// without the core algorithm depending on logging by default.
	Verbose bool
}

// NewSegment builds a Segment over fids (all faces if fids is nil),
// selecting num=2 representatives via farthest-point sampling with a
// max-mutual-distance override.
func NewSegment(model *Model, level int, fids []int) *Segment {
	if fids == nil {
		fids = make([]int, len(model.Faces))
		for i := range fids {
			fids[i] = i
		}
	}

	s := &Segment{
		model: model,
		fids:  fids,
		level: level,
		num:   2,
	}
	s.d = localSubmatrix(model.D, fids)

	gMax, gMin := matrixMaxMin(model.D)
	s.globalMaxDis = gMax - gMin
	s.globalAvgDis = averageOffDiagonal(model.D)
	s.localAvgDis = averageOffDiagonal(s.d)

	s.reps, s.uniques = s.seedReps()
	s.angDiff = s.computeAngDiff()

	return s
}

// localSubmatrix extracts D[fids, fids] from the global distance
// matrix into a fresh symmetric matrix.
func localSubmatrix(D *mat.SymDense, fids []int) *mat.SymDense {
	n := len(fids)
	local := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			local.SetSym(i, j, D.At(fids[i], fids[j]))
		}
	}
	return local
}

// matrixMaxMin returns the maximum and minimum entries of a square
// symmetric matrix, including the (zero) diagonal.
func matrixMaxMin(m *mat.SymDense) (max, min float64) {
	n := m.Symmetric()
	max, min = math.Inf(-1), math.Inf(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			if v > max {
				max = v
			}
			if v < min {
				min = v
			}
		}
	}
	return max, min
}

// averageOffDiagonal divides the sum of all entries (including the
// zero diagonal) by n*(n-1).
func averageOffDiagonal(m *mat.SymDense) float64 {
	n := m.Symmetric()
	if n <= 1 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += m.At(i, j)
		}
	}
	return sum / float64(n*(n-1))
}

// seedReps performs farthest-point seed sampling followed by the
// num=2 max-mutual-distance override.
func (s *Segment) seedReps() (reps, uniques []int) {
	n := s.d.Symmetric()

	rowSum := func(i int) float64 {
		var sum float64
		for j := 0; j < n; j++ {
			sum += s.d.At(i, j)
		}
		return sum
	}
	initial := argminBy(n, rowSum)

	reps = []int{initial}
	for trial := 0; trial < 20; trial++ {
		rep, maxDis := 0, 0.0
		for j := 0; j < n; j++ {
			minDis := math.Inf(1)
			for _, r := range reps {
				if d := s.d.At(j, r); d < minDis {
					minDis = d
				}
			}
			if minDis > maxDis {
				maxDis = minDis
				rep = j
			}
		}
		reps = append(reps, rep)
	}

	reps = reps[:s.num]
	uniques = uniqueFirstIndices(reps)

	if s.num == 2 {
		bi, bj, best := 0, 0, math.Inf(-1)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if v := s.d.At(i, j); v > best {
					best, bi, bj = v, i, j
				}
			}
		}
		if bi > bj {
			bi, bj = bj, bi
		}
		reps[0], reps[1] = bi, bj
	}

	return reps, uniques
}

// argminBy returns the lowest index i in [0,n) minimizing f(i).
func argminBy(n int, f func(int) float64) int {
	best, bestV := 0, math.Inf(1)
	for i := 0; i < n; i++ {
		if v := f(i); v < bestV {
			bestV, best = v, i
		}
	}
	return best
}

// uniqueFirstIndices returns, in ascending order, the index of the
// first occurrence of every distinct value in vals.
func uniqueFirstIndices(vals []int) []int {
	firstIdx := map[int]int{}
	for i, v := range vals {
		if _, ok := firstIdx[v]; !ok {
			firstIdx[v] = i
		}
	}
	idxs := make([]int, 0, len(firstIdx))
	for _, i := range firstIdx {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	return idxs
}

// computeAngDiff returns the range (max-min) of dihedral angles on
// edges between same-label adjacent faces inside the segment, used
// by the recursion gate in hierarchy.go.
func (s *Segment) computeAngDiff() float64 {
	maxAng, minAng := 0.0, math.Pi
	for _, fid := range s.fids {
		face := s.model.Faces[fid]
		for _, nb := range face.Neighbors {
			if s.model.Faces[nb.FaceID].Label == face.Label {
				if nb.Angle < minAng {
					minAng = nb.Angle
				}
				if nb.Angle > maxAng {
					maxAng = nb.Angle
				}
			}
		}
	}
	return maxAng - minAng
}

const (
	fuzzyEps      = 0.04
	fuzzyEpsWide  = 0.02
	repDisEpsilon = 1e-12
)

// computeProb fills prob (num x n): a face that is itself a
// representative collapses to a one-hot row; all others get an
// inverse-distance-weighted blend over uniques.
func (s *Segment) computeProb(prob *mat.Dense) {
	n := s.d.Symmetric()
	for fid := 0; fid < n; fid++ {
		if slot, ok := repSlot(s.reps, fid); ok {
			for k := 0; k < s.num; k++ {
				if k == slot {
					prob.Set(k, fid, 1)
				} else {
					prob.Set(k, fid, 0)
				}
			}
			continue
		}
		var sumProb float64
		for _, u := range s.uniques {
			sumProb += 1 / s.d.At(fid, s.reps[u])
		}
		for k := 0; k < s.num; k++ {
			prob.Set(k, fid, (1/s.d.At(fid, s.reps[k]))/sumProb)
		}
	}
}

// repSlot returns the first slot index whose rep equals fid.
func repSlot(reps []int, fid int) (int, bool) {
	for k, r := range reps {
		if r == fid {
			return k, true
		}
	}
	return 0, false
}

// isUnique reports whether slot k is present in uniques.
func isUnique(uniques []int, k int) bool {
	for _, u := range uniques {
		if u == k {
			return true
		}
	}
	return false
}

// assign performs fuzzy-margin hard labeling: faces get a crisp label
// when their top-two probabilities differ by more than eps, else a
// fuzzy label encoding the ordered pair of contending slots.
func (s *Segment) assign(prob *mat.Dense, offset, fuzzy int) {
	eps := fuzzyEps
	if s.num > 3 {
		eps = fuzzyEpsWide
	}
	for k := 0; k < s.num; k++ {
		if !isUnique(s.uniques, k) {
			n := s.d.Symmetric()
			for fid := 0; fid < n; fid++ {
				prob.Set(k, fid, 0)
			}
		}
	}

	n := s.d.Symmetric()
	for fid := 0; fid < n; fid++ {
		var label1, label2 int
		var p1, p2 float64
		if len(s.uniques) > 1 {
			label1, label2, p1, p2 = topTwoSlots(s.uniques, func(k int) float64 {
				return prob.At(k, fid)
			})
		} else {
			label1, label2, p1, p2 = s.uniques[0], -1, 1.0, 0.0
		}
		if p1-p2 > eps {
			s.model.Faces[s.fids[fid]].Label = offset + label1
		} else {
			s.model.Faces[s.fids[fid]].Label = fuzzy + label1*s.num + label2
		}
	}
}

// topTwoSlots returns the two slots in uniques with the highest
// probRow values, highest first, ties broken by lowest slot index.
func topTwoSlots(uniques []int, probRow func(int) float64) (best, second int, bestP, secondP float64) {
	best, second = -1, -1
	bestP, secondP = math.Inf(-1), math.Inf(-1)
	for _, u := range uniques {
		p := probRow(u)
		if p > bestP {
			second, secondP = best, bestP
			best, bestP = u, p
		} else if p > secondP {
			second, secondP = u, p
		}
	}
	return best, second, bestP, secondP
}

// recomputeReps runs a rough assign to gather per-cluster mean
// distances, re-derives a probability field from those means, and
// picks new representatives minimizing expected cost under that
// field.
func (s *Segment) recomputeReps(prob *mat.Dense, offset, fuzzy int) (newReps []int, cost *mat.Dense) {
	s.assign(prob, offset, fuzzy)

	n := s.d.Symmetric()
	repDis := mat.NewDense(s.num, n, nil)
	counts := make([]float64, s.num)
	for kf := 0; kf < n; kf++ {
		k := s.model.Faces[s.fids[kf]].Label - offset
		if k >= 0 && k < s.num {
			counts[k]++
			for i := 0; i < n; i++ {
				repDis.Set(k, i, repDis.At(k, i)+s.d.At(kf, i))
			}
		}
	}
	for k := 0; k < s.num; k++ {
		if counts[k] == 0 {
			for i := 0; i < n; i++ {
				repDis.Set(k, i, math.Inf(1))
			}
		} else {
			for i := 0; i < n; i++ {
				repDis.Set(k, i, repDis.At(k, i)/counts[k])
			}
		}
	}

	for i := 0; i < n; i++ {
		var sumInv float64
		for k := 0; k < s.num; k++ {
			sumInv += 1 / (repDis.At(k, i) + repDisEpsilon)
		}
		for k := 0; k < s.num; k++ {
			prob.Set(k, i, (1/(repDis.At(k, i)+repDisEpsilon))/sumInv)
		}
	}

	cost = mat.NewDense(s.num, n, nil)
	cost.Mul(prob, s.d)

	newReps = make([]int, s.num)
	for k := 0; k < s.num; k++ {
		newReps[k] = argminBy(n, func(i int) float64 { return cost.At(k, i) })
	}
	return newReps, cost
}

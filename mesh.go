package meshseg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const convexityEpsilon = 1e-12

// NeighborInfo describes one of a Face's three dual-graph edges: the
// neighboring face, the two mesh vertices the shared edge spans, and
// the angular/geodesic/blended distance metrics across that edge.
type NeighborInfo struct {
	FaceID int
	V0     int
	V1     int

	Angle  float64 // dihedral angle, radians, in [0, pi]
	AngDis float64
	GeoDis float64
	Dis    float64
}

// Face is a single triangle of the mesh plus its dual-graph
// adjacency, once built. VertexIDs are indices into the owning
// Model's Vertices slice.
type Face struct {
	VertexIDs [3]int
	Centroid  Coord3D
	Normal    Coord3D
	Label     int

	Neighbors []NeighborInfo
}

// Model owns the mesh, its dual-graph metrics, and the running label
// budget shared by every Segment carved out of it. It is built once
// by NewModel and never mutated thereafter except for face labels
// (written by the segmenter) and LabelNums (bumped once per Seg call).
type Model struct {
	Vertices []Coord3D
	Faces    []*Face

	D *mat.SymDense

	AvgAngDis float64
	AvgGeoDis float64

	LabelNums int
}

type edgeKey struct {
	lo, hi int
}

func canonicalEdge(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// NewModel builds the dual graph and the all-pairs shortest-face-
// distance matrix for the given mesh. The mesh is rejected with a
// *MeshError if it is not manifold (every
// face must end up with exactly three neighbors) or if any face has
// a zero-length normal.
func NewModel(vertices []Coord3D, faces [][3]int) (*Model, error) {
	m := &Model{
		Vertices: vertices,
		Faces:    make([]*Face, len(faces)),
	}
	for i, f := range faces {
		v0, v1, v2 := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		centroid := v0.Add(v1).Add(v2).Scale(1.0 / 3.0)
		raw := v1.Sub(v0).Cross(v2.Sub(v0))
		n := raw.Norm()
		normal := Coord3D{}
		if n >= convexityEpsilon {
			normal = raw.Scale(1 / n)
		}
		m.Faces[i] = &Face{
			VertexIDs: f,
			Centroid:  centroid,
			Normal:    normal,
		}
		if n < convexityEpsilon {
			return nil, newErr(DegenerateFace, "face has zero-length normal")
		}
	}

	if err := m.buildAdjacency(); err != nil {
		return nil, err
	}

	m.D = shortestPaths(m.Faces, DefaultDijkstraBatches)
	return m, nil
}

// buildAdjacency enumerates directed edges, pairs them up by their
// canonical (min,max) vertex ids, and computes the angular/geodesic/
// blended distance for every adjacent face pair.
func (m *Model) buildAdjacency() error {
	type edgeOwner struct {
		faceID int
		v0, v1 int // in original (non-canonical) order, as seen on the owning face
	}
	firstSeen := map[edgeKey]edgeOwner{}

	var angSum, geoSum float64
	var count int

	for fid, face := range m.Faces {
		vids := face.VertexIDs
		edges := [3][2]int{
			{vids[0], vids[1]},
			{vids[1], vids[2]},
			{vids[2], vids[0]},
		}
		for _, e := range edges {
			key := canonicalEdge(e[0], e[1])
			if owner, ok := firstSeen[key]; ok {
				f0, f1 := m.Faces[owner.faceID], face
				angle, angDis, geoDis := computeEdgeMetrics(f0, f1, m.Vertices[e[0]], m.Vertices[e[1]])

				f0.Neighbors = append(f0.Neighbors, NeighborInfo{
					FaceID: fid, V0: e[0], V1: e[1],
					Angle: angle, AngDis: angDis, GeoDis: geoDis,
				})
				f1.Neighbors = append(f1.Neighbors, NeighborInfo{
					FaceID: owner.faceID, V0: e[0], V1: e[1],
					Angle: angle, AngDis: angDis, GeoDis: geoDis,
				})
				angSum += 2 * angDis
				geoSum += 2 * geoDis
				count += 2
				delete(firstSeen, key)
			} else {
				firstSeen[key] = edgeOwner{faceID: fid, v0: e[0], v1: e[1]}
			}
		}
	}

	for _, face := range m.Faces {
		if len(face.Neighbors) != 3 {
			return newErr(NonManifold, "face does not have exactly three neighbors")
		}
	}

	if count == 0 {
		return newErr(NonManifold, "mesh has no adjacent face pairs")
	}
	m.AvgAngDis = angSum / float64(count)
	m.AvgGeoDis = geoSum / float64(count)

	delta := 0.8
	for _, face := range m.Faces {
		for i := range face.Neighbors {
			n := &face.Neighbors[i]
			n.Dis = (1-delta)*n.AngDis/m.AvgAngDis + delta*n.GeoDis/m.AvgGeoDis
		}
	}
	return nil
}

// computeEdgeMetrics computes the dihedral angle, angular distance,
// and geodesic distance between two faces sharing the edge (e0, e1).
// geoDis is left as a squared magnitude (no final square root):
// flattening the two triangles across their shared edge and measuring
// straight-line distance in that plane is the geodesic approximation;
// whether the original intended a square root here is ambiguous, so
// the squared form is kept rather than guessed at.
func computeEdgeMetrics(f0, f1 *Face, e0, e1 Coord3D) (angle, angDis, geoDis float64) {
	dot := clamp(f0.Normal.Dot(f1.Normal), -1, 1)
	angle = math.Acos(dot)

	convex := f0.Normal.Dot(f1.Centroid.Sub(f0.Centroid)) < convexityEpsilon
	eta := 1.0
	if convex {
		eta = 0.2
	}
	angDis = eta * (1 - dot)

	axis := e1.Sub(e0)
	d0 := f0.Centroid.Sub(e0)
	d1 := f1.Centroid.Sub(e0)
	axisLen, d0Len, d1Len := axis.Norm(), d0.Norm(), d1.Norm()
	theta0 := math.Acos(clamp(d0.Dot(axis)/(d0Len*axisLen), -1, 1))
	theta1 := math.Acos(clamp(d1.Dot(axis)/(d1Len*axisLen), -1, 1))
	geoDis = d0Len*d0Len + d1Len*d1Len - 2*d0Len*d1Len*math.Cos(theta0+theta1)

	return angle, angDis, geoDis
}

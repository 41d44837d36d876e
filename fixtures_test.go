package meshseg

// tetrahedron returns a regular tetrahedron: 4 vertices, 4 faces, each
// face adjacent to all three others (the dual graph is K4).
func tetrahedron() ([]Coord3D, [][3]int) {
	verts := []Coord3D{
		XYZ(1, 1, 1),
		XYZ(1, -1, -1),
		XYZ(-1, 1, -1),
		XYZ(-1, -1, 1),
	}
	faces := [][3]int{
		{1, 3, 2},
		{0, 2, 3},
		{0, 3, 1},
		{0, 1, 2},
	}
	return verts, faces
}

// cube returns a unit cube with each of its six square sides split
// into two triangles, 8 vertices and 12 faces, all normals outward.
func cube() ([]Coord3D, [][3]int) {
	verts := []Coord3D{
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		XYZ(1, 1, 0),
		XYZ(0, 1, 0),
		XYZ(0, 0, 1),
		XYZ(1, 0, 1),
		XYZ(1, 1, 1),
		XYZ(0, 1, 1),
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{3, 6, 2}, {3, 7, 6}, // back
		{0, 7, 3}, {0, 4, 7}, // left
		{1, 2, 6}, {1, 6, 5}, // right
	}
	return verts, faces
}

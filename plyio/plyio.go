// Package plyio reads and writes a minimal ASCII point-list mesh
// format: a small header, a flat vertex list, and a flat triangle
// list, with an optional per-face color triple on write.
package plyio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yujie-tao/meshseg"
)

// Mesh is the plain vertex/face data read from or written to a file,
// independent of any segmentation state.
type Mesh struct {
	Vertices []meshseg.Coord3D
	Faces    [][3]int
}

// Read parses the ASCII point-list format from r: a header declaring
// `element vertex N` and `element face M` and ending with
// `endheader`, N whitespace-separated `x y z` lines, then M lines
// beginning with `3` followed by three vertex indices (any further
// tokens on a face line, such as previously written color bytes, are
// ignored).
func Read(r io.Reader) (*Mesh, error) {
	return readMesh(r)
}

func readMesh(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)

	numVerts, numFaces := -1, -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "endheader" {
			break
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 3 && fields[0] == "element" && fields[1] == "vertex":
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, wrapFormat(err, "vertex count")
			}
			numVerts = n
		case len(fields) == 3 && fields[0] == "element" && fields[1] == "face":
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, wrapFormat(err, "face count")
			}
			numFaces = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, newFormat("reading header: " + err.Error())
	}
	if numVerts < 0 || numFaces < 0 {
		return nil, newFormat("missing element vertex/face declaration")
	}

	mesh := &Mesh{
		Vertices: make([]meshseg.Coord3D, numVerts),
		Faces:    make([][3]int, numFaces),
	}

	for i := 0; i < numVerts; i++ {
		if !scanner.Scan() {
			return nil, newFormat(fmt.Sprintf("expected %d vertices, found %d", numVerts, i))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, newFormat(fmt.Sprintf("vertex line %d has fewer than 3 fields", i))
		}
		var xyz [3]float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, wrapFormat(err, fmt.Sprintf("vertex %d", i))
			}
			xyz[k] = v
		}
		mesh.Vertices[i] = meshseg.XYZ(xyz[0], xyz[1], xyz[2])
	}

	for i := 0; i < numFaces; i++ {
		if !scanner.Scan() {
			return nil, newFormat(fmt.Sprintf("expected %d faces, found %d", numFaces, i))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != "3" {
			return nil, newFormat(fmt.Sprintf("face line %d is not a triangle record", i))
		}
		var face [3]int
		for k := 0; k < 3; k++ {
			v, err := strconv.Atoi(fields[k+1])
			if err != nil {
				return nil, wrapFormat(err, fmt.Sprintf("face %d", i))
			}
			if v < 0 || v >= numVerts {
				return nil, newFormat(fmt.Sprintf("face %d references out-of-range vertex %d", i, v))
			}
			face[k] = v
		}
		mesh.Faces[i] = face
	}

	return mesh, nil
}

// Write emits the ASCII point-list format for model, appending one
// color triple per face derived from labelOf: color for label L is
// (60*(L%4+1), 80*((L+1)%3+1), 50*((L+2)%5+1)).
func Write(w io.Writer, model *meshseg.Model, labelOf func(faceIdx int) int) error {
	if err := writeMesh(w, model, labelOf); err != nil {
		return meshseg.WrapError(meshseg.OutputIO, err, "write mesh")
	}
	return nil
}

func writeMesh(w io.Writer, model *meshseg.Model, labelOf func(faceIdx int) int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "element vertex %d\n", len(model.Vertices))
	fmt.Fprintf(bw, "element face %d\n", len(model.Faces))
	fmt.Fprintln(bw, "endheader")

	for _, v := range model.Vertices {
		fmt.Fprintf(bw, "%g %g %g\n", v.X, v.Y, v.Z)
	}

	for i, face := range model.Faces {
		l := labelOf(i)
		r, g, b := faceColor(l)
		fmt.Fprintf(bw, "3 %d %d %d %d %d %d\n",
			face.VertexIDs[0], face.VertexIDs[1], face.VertexIDs[2], r, g, b)
	}

	return bw.Flush()
}

// faceColor derives the write-time color triple for label L.
func faceColor(label int) (r, g, b int) {
	mod := func(a, n int) int {
		m := a % n
		if m < 0 {
			m += n
		}
		return m
	}
	r = 60 * (mod(label, 4) + 1)
	g = 80 * (mod(label+1, 3) + 1)
	b = 50 * (mod(label+2, 5) + 1)
	return r, g, b
}

func newFormat(msg string) error {
	return meshseg.NewError(meshseg.InputFormat, msg)
}

func wrapFormat(err error, msg string) error {
	return meshseg.WrapError(meshseg.InputFormat, err, msg)
}

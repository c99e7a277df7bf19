// Package testmesh provides small meshes with known topology for tests.
package testmesh

import (
	"github.com/philipparndt/stlcheck/pkg/geometry"
	"github.com/philipparndt/stlcheck/pkg/mesh"
)

// cubeFaces are the twelve triangles of a unit cube, wound counter-clockwise
// when viewed from outside.
var cubeFaces = []mesh.Face{
	{0, 2, 1}, {0, 3, 2}, // bottom
	{4, 5, 6}, {4, 6, 7}, // top
	{0, 1, 5}, {0, 5, 4}, // front
	{3, 7, 6}, {3, 6, 2}, // back
	{0, 4, 7}, {0, 7, 3}, // left
	{1, 2, 6}, {1, 6, 5}, // right
}

// TopFace is the index of the cube face that OpenCube removes and
// ReversedCube flips.
const TopFace = 3

func cubeVertices(offset geometry.Vector3) []geometry.Vector3 {
	corners := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	vertices := make([]geometry.Vector3, len(corners))
	for i, c := range corners {
		vertices[i] = geometry.NewVector3(c[0]+offset.X, c[1]+offset.Y, c[2]+offset.Z)
	}
	return vertices
}

// Cube returns a closed, consistently oriented unit cube
func Cube() *mesh.Model {
	faces := make([]mesh.Face, len(cubeFaces))
	copy(faces, cubeFaces)
	m := mesh.New(cubeVertices(geometry.Vector3{}), faces)
	m.Name = "cube"
	return m
}

// OpenCube returns the cube without its TopFace triangle
func OpenCube() *mesh.Model {
	m := Cube()
	m.Faces = append(m.Faces[:TopFace:TopFace], m.Faces[TopFace+1:]...)
	return m
}

// ReversedCube returns the cube with the winding of face fi reversed
func ReversedCube(fi int) *mesh.Model {
	m := Cube()
	m.Faces[fi] = m.Faces[fi].Flipped()
	return m
}

// TwoCubes returns two disjoint cubes; the second one is shifted along X
func TwoCubes() *mesh.Model {
	vertices := append(cubeVertices(geometry.Vector3{}), cubeVertices(geometry.NewVector3(3, 0, 0))...)
	faces := make([]mesh.Face, 0, 2*len(cubeFaces))
	faces = append(faces, cubeFaces...)
	for _, f := range cubeFaces {
		faces = append(faces, mesh.Face{f[0] + 8, f[1] + 8, f[2] + 8})
	}
	return mesh.New(vertices, faces)
}

// Fin returns three triangles hinged on the edge (0, 1)
func Fin() *mesh.Model {
	return mesh.New(
		[]geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0.5, 1, 0),
			geometry.NewVector3(0.5, -1, 0),
			geometry.NewVector3(0.5, 0, 1),
		},
		[]mesh.Face{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}},
	)
}

// Strip returns n triangles in a row, each sharing an edge with the next, with
// all windings consistent
func Strip(n int) *mesh.Model {
	vertices := make([]geometry.Vector3, 0, n+2)
	for i := 0; i < n+2; i++ {
		vertices = append(vertices, geometry.NewVector3(float64(i/2), float64(i%2), 0))
	}
	faces := make([]mesh.Face, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			faces = append(faces, mesh.Face{i, i + 2, i + 1})
		} else {
			faces = append(faces, mesh.Face{i, i + 1, i + 2})
		}
	}
	return mesh.New(vertices, faces)
}

// WithDegenerate returns the cube plus one face that repeats a vertex index.
// The new face is the last one.
func WithDegenerate() *mesh.Model {
	m := Cube()
	m.Faces = append(m.Faces, mesh.Face{0, 0, 6})
	return m
}

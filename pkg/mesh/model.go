// Package mesh holds the indexed triangle surface that the topology checks
// consume: a vertex position list and a list of index triples.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/stlcheck/pkg/geometry"
)

var (
	// ErrEmptyMesh is returned when a model has no faces or no vertices.
	ErrEmptyMesh = errors.New("mesh is empty")
	// ErrVertexIndex is returned when a face references a vertex that does not exist.
	ErrVertexIndex = errors.New("vertex index out of range")
)

// Face is an ordered triple of vertex indices. The order is the winding.
type Face [3]int

// Edges returns the three directed edges of the face in winding order
func (f Face) Edges() [3][2]int {
	return [3][2]int{
		{f[0], f[1]},
		{f[1], f[2]},
		{f[2], f[0]},
	}
}

// Flipped returns the face with its second and third index swapped
func (f Face) Flipped() Face {
	return Face{f[0], f[2], f[1]}
}

// HasRepeatedIndex reports whether two corners of the face share a vertex
func (f Face) HasRepeatedIndex() bool {
	return f[0] == f[1] || f[1] == f[2] || f[0] == f[2]
}

// IndexError describes the first face that references a missing vertex.
type IndexError struct {
	Face        int
	Index       int
	NumVertices int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face %d references vertex %d, mesh has %d vertices", e.Face, e.Index, e.NumVertices)
}

func (e *IndexError) Unwrap() error {
	return ErrVertexIndex
}

// Model is an immutable indexed triangle mesh
type Model struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// New creates a model from vertex positions and faces
func New(vertices []geometry.Vector3, faces []Face) *Model {
	return &Model{
		Vertices: vertices,
		Faces:    faces,
	}
}

// NumVertices returns the number of vertex positions
func (m *Model) NumVertices() int {
	return len(m.Vertices)
}

// NumFaces returns the number of faces
func (m *Model) NumFaces() int {
	return len(m.Faces)
}

// Validate rejects models the analysis must never see: empty ones and ones
// with a face index outside the vertex array.
func (m *Model) Validate() error {
	if m == nil || len(m.Faces) == 0 || len(m.Vertices) == 0 {
		return ErrEmptyMesh
	}
	n := len(m.Vertices)
	for fi, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= n {
				return &IndexError{Face: fi, Index: idx, NumVertices: n}
			}
		}
	}
	return nil
}

// FaceArea returns the area of face fi
func (m *Model) FaceArea(fi int) float64 {
	f := m.Faces[fi]
	return geometry.TriangleArea(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// CloneFaces returns a copy of the face list that can be modified freely
func (m *Model) CloneFaces() []Face {
	faces := make([]Face, len(m.Faces))
	copy(faces, m.Faces)
	return faces
}

// WithFaces returns a model sharing the vertices of m but using faces
func (m *Model) WithFaces(faces []Face) *Model {
	return &Model{
		Name:     m.Name,
		Vertices: m.Vertices,
		Faces:    faces,
	}
}

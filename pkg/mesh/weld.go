package mesh

import (
	"github.com/philipparndt/stlcheck/pkg/geometry"
)

// FromTriangles welds a triangle soup into an indexed model. Corners with
// identical coordinates become one vertex; indices are assigned in the order
// positions are first seen, so the result is deterministic.
func FromTriangles(name string, triangles []geometry.Triangle) *Model {
	index := make(map[[3]uint64]int, len(triangles))
	vertices := make([]geometry.Vector3, 0, len(triangles))
	faces := make([]Face, 0, len(triangles))

	lookup := func(v geometry.Vector3) int {
		key := v.Key()
		if idx, ok := index[key]; ok {
			return idx
		}
		idx := len(vertices)
		index[key] = idx
		vertices = append(vertices, v)
		return idx
	}

	for _, tri := range triangles {
		faces = append(faces, Face{lookup(tri.V1), lookup(tri.V2), lookup(tri.V3)})
	}

	return &Model{
		Name:     name,
		Vertices: vertices,
		Faces:    faces,
	}
}

// Triangles expands the model back into a triangle soup. Normals are derived
// from the winding.
func (m *Model) Triangles() []geometry.Triangle {
	triangles := make([]geometry.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		if l := normal.Length(); l > 0 {
			normal = geometry.NewVector3(normal.X/l, normal.Y/l, normal.Z/l)
		}
		triangles = append(triangles, geometry.NewTriangle(normal, a, b, c))
	}
	return triangles
}

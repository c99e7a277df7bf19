package topology

import (
	"github.com/philipparndt/stlcheck/pkg/mesh"
)

// DefaultAreaEpsilon is the area below which a face counts as degenerate
const DefaultAreaEpsilon = 1e-10

// DegenerateFaces returns the indices of faces whose area is below epsilon.
// A face with a repeated vertex index has zero area and is always included.
func DegenerateFaces(m *mesh.Model, epsilon float64) []int {
	var faces []int
	for fi, face := range m.Faces {
		if face.HasRepeatedIndex() || m.FaceArea(fi) < epsilon {
			faces = append(faces, fi)
		}
	}
	return faces
}

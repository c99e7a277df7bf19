package geometry

// Triangle represents a triangular facet in 3D space as stored in an STL file
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return TriangleArea(t.V1, t.V2, t.V3)
}

// TriangleArea returns the area spanned by three points.
// Coincident or collinear points give zero.
func TriangleArea(a, b, c Vector3) float64 {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	return edge1.Cross(edge2).Length() / 2.0
}

package geometry

import "math"

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Key returns the exact bit pattern of the coordinates. Two positions weld
// into one vertex only when their keys are equal.
func (v Vector3) Key() [3]uint64 {
	return [3]uint64{
		math.Float64bits(normalizeZero(v.X)),
		math.Float64bits(normalizeZero(v.Y)),
		math.Float64bits(normalizeZero(v.Z)),
	}
}

// Array returns the coordinates as a fixed-size array, the shape used on the wire
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// -0 and +0 are the same position
func normalizeZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

package turtle

import "math"

// Vec3 is a point or direction in turtle space
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * k
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// Len returns the Euclidean length
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Mat3 is a rotation stored as its basis columns: Right (local X), Up (local Y)
// and Forward (local Z) expressed in world space.
type Mat3 struct {
	Right, Up, Forward Vec3
}

// Identity returns the world-aligned frame
func Identity() Mat3 {
	return Mat3{
		Right:   Vec3{X: 1},
		Up:      Vec3{Y: 1},
		Forward: Vec3{Z: 1},
	}
}

// Apply maps a local vector to world space
func (m Mat3) Apply(v Vec3) Vec3 {
	return m.Right.Scale(v.X).Add(m.Up.Scale(v.Y)).Add(m.Forward.Scale(v.Z))
}

// Mul returns m * o, applying o in m's local frame
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{
		Right:   m.Apply(o.Right),
		Up:      m.Apply(o.Up),
		Forward: m.Apply(o.Forward),
	}
}

// yaw rotates about the local up axis
func yaw(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{
		Right:   Vec3{X: c, Z: -s},
		Up:      Vec3{Y: 1},
		Forward: Vec3{X: s, Z: c},
	}
}

// pitch rotates about the local right axis
func pitch(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{
		Right:   Vec3{X: 1},
		Up:      Vec3{Y: c, Z: s},
		Forward: Vec3{Y: -s, Z: c},
	}
}

// roll rotates about the local forward axis
func roll(deg float64) Mat3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat3{
		Right:   Vec3{X: c, Y: s},
		Up:      Vec3{X: -s, Y: c},
		Forward: Vec3{Z: 1},
	}
}

// Pose is a turtle position and orientation
type Pose struct {
	Position    Vec3
	Orientation Mat3
}

// Origin is the identity pose at the origin
func Origin() Pose {
	return Pose{Orientation: Identity()}
}

// Upright returns a pose at position whose forward axis points up (+Y)
func Upright(position Vec3) Pose {
	return Pose{
		Position: position,
		Orientation: Mat3{
			Right:   Vec3{X: -1},
			Up:      Vec3{Z: 1},
			Forward: Vec3{Y: 1},
		},
	}
}

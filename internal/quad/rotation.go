package quad

import "math"

// Vec3 is a 3-vector in either the body or world frame.
type Vec3 struct {
	X, Y, Z float64
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// Apply multiplies the matrix by a column vector.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// RotationZYX builds the body-to-world rotation matrix from ZYX Euler
// angles: yaw about world z, then pitch about the intermediate y, then
// roll about the body x.
func RotationZYX(roll, pitch, yaw float64) Mat3 {
	cr, sr := math.Cos(roll), math.Sin(roll)
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cy, sy := math.Cos(yaw), math.Sin(yaw)

	return Mat3{
		{cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr},
		{sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr},
		{-sp, cp * sr, cp * cr},
	}
}

// BodyToWorld transforms a body-frame vector into the world frame.
func BodyToWorld(v Vec3, roll, pitch, yaw float64) Vec3 {
	return RotationZYX(roll, pitch, yaw).Apply(v)
}

// WrapAngle maps an angle into (-pi, pi] with a single closed-form modulo,
// so it terminates in O(1) for any input magnitude.
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package vmath

// Vec3F is a float64 3D vector for interpolation-heavy paths
type Vec3F struct {
	X, Y, Z float64
}

// V3FLerp interpolates componentwise; p outside [0,1] extrapolates,
// which overshooting eases rely on
func V3FLerp(a, b Vec3F, p float64) Vec3F {
	return Vec3F{
		X: a.X + (b.X-a.X)*p,
		Y: a.Y + (b.Y-a.Y)*p,
		Z: a.Z + (b.Z-a.Z)*p,
	}
}

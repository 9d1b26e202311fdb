package adapter

import (
	"math"

	"github.com/kinetre/motive/vmath"
)

// Float interpolates float64 endpoints. Progress outside [0,1] extrapolates,
// carrying easing overshoot through to the output.
type Float struct{}

func (Float) Evaluate(start, end float64, _ struct{}, progress float64) float64 {
	return start + (end-start)*progress
}

// RoundingMode selects how interpolated integers are rounded
type RoundingMode uint8

const (
	RoundToEven RoundingMode = iota
	RoundAwayFromZero
	RoundFloor
	RoundCeil
	RoundTruncate
)

// IntOptions is the options payload for integer motions
type IntOptions struct {
	Rounding RoundingMode
}

// Int interpolates int64 endpoints through float space and rounds per the
// record's options payload
type Int struct{}

func (Int) Evaluate(start, end int64, opts IntOptions, progress float64) int64 {
	v := float64(start) + float64(end-start)*progress
	switch opts.Rounding {
	case RoundAwayFromZero:
		return int64(math.Round(v))
	case RoundFloor:
		return int64(math.Floor(v))
	case RoundCeil:
		return int64(math.Ceil(v))
	case RoundTruncate:
		return int64(math.Trunc(v))
	default:
		return int64(math.RoundToEven(v))
	}
}

// Vec3 interpolates vmath vectors componentwise
type Vec3 struct{}

func (Vec3) Evaluate(start, end vmath.Vec3F, _ struct{}, progress float64) vmath.Vec3F {
	return vmath.V3FLerp(start, end, progress)
}

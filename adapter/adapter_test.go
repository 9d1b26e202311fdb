package adapter

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kinetre/motive/vmath"
)

func TestFloatLerp(t *testing.T) {
	var a Float
	if got := a.Evaluate(10, 20, struct{}{}, 0.5); got != 15 {
		t.Errorf("Expected 15, got %v", got)
	}
	// Overshoot extrapolates past the end value
	if got := a.Evaluate(0, 10, struct{}{}, 1.1); math.Abs(got-11) > 1e-12 {
		t.Errorf("Expected 11, got %v", got)
	}
}

func TestIntRoundingModes(t *testing.T) {
	var a Int
	cases := []struct {
		mode RoundingMode
		want int64
	}{
		{RoundToEven, 2},       // 2.5 -> 2
		{RoundAwayFromZero, 3}, // 2.5 -> 3
		{RoundFloor, 2},
		{RoundCeil, 3},
		{RoundTruncate, 2},
	}
	for _, c := range cases {
		// midpoint of [0,5] is 2.5
		if got := a.Evaluate(0, 5, IntOptions{Rounding: c.mode}, 0.5); got != c.want {
			t.Errorf("Mode %d: Expected %d, got %d", c.mode, c.want, got)
		}
	}
}

func TestVec3Lerp(t *testing.T) {
	var a Vec3
	got := a.Evaluate(vmath.Vec3F{X: 0, Y: 2, Z: -4}, vmath.Vec3F{X: 10, Y: 4, Z: 4}, struct{}{}, 0.25)
	want := vmath.Vec3F{X: 2.5, Y: 2.5, Z: -2}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestColorBlendEndpointsAndClamp(t *testing.T) {
	var a Color
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	for _, space := range []ColorSpace{ColorSpaceRGB, ColorSpaceLab, ColorSpaceHCL} {
		opts := ColorOptions{Space: space}
		if got := a.Evaluate(red, blue, opts, 0); got != red {
			t.Errorf("Space %d: Expected start color at 0, got %+v", space, got)
		}
		if got := a.Evaluate(red, blue, opts, 1); got != blue {
			t.Errorf("Space %d: Expected end color at 1, got %+v", space, got)
		}
		// Overshooting progress clamps instead of producing invalid channels
		if got := a.Evaluate(red, blue, opts, 1.3); got != blue {
			t.Errorf("Space %d: Expected clamp to end color, got %+v", space, got)
		}
	}

	mid := a.Evaluate(red, blue, ColorOptions{}, 0.5)
	if math.Abs(mid.R-0.5) > 1e-12 || math.Abs(mid.B-0.5) > 1e-12 {
		t.Errorf("Expected RGB midpoint 0.5/0/0.5, got %+v", mid)
	}
}

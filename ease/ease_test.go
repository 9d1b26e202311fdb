package ease

import (
	"math"
	"testing"
)

const epsilon = 1e-9

var allKinds = []Kind{
	Linear,
	InSine, OutSine, InOutSine,
	InQuad, OutQuad, InOutQuad,
	InCubic, OutCubic, InOutCubic,
	InQuart, OutQuart, InOutQuart,
	InQuint, OutQuint, InOutQuint,
	InExpo, OutExpo, InOutExpo,
	InCirc, OutCirc, InOutCirc,
	InBack, OutBack, InOutBack,
	InElastic, OutElastic, InOutElastic,
	InBounce, OutBounce, InOutBounce,
}

// Every kind must anchor at 0 and 1 so loop boundaries are exact
func TestEndpoints(t *testing.T) {
	for _, k := range allKinds {
		if v := Eval(k, 0); math.Abs(v) > epsilon {
			t.Errorf("Kind %d: Expected Eval(0) = 0, got %v", k, v)
		}
		if v := Eval(k, 1); math.Abs(v-1) > epsilon {
			t.Errorf("Kind %d: Expected Eval(1) = 1, got %v", k, v)
		}
	}
}

func TestLinearIsIdentity(t *testing.T) {
	for _, v := range []float64{0, 0.125, 0.25, 0.5, 0.75, 1} {
		if got := Eval(Linear, v); got != v {
			t.Errorf("Expected identity at %v, got %v", v, got)
		}
	}
}

// Back overshoots below zero near the start, Elastic oscillates above one
// near the end; downstream interpolation relies on tolerating both
func TestOvershootLeavesUnitRange(t *testing.T) {
	if v := Eval(InBack, 0.2); v >= 0 {
		t.Errorf("Expected InBack to undershoot at 0.2, got %v", v)
	}
	overshot := false
	for u := 0.55; u < 1.0; u += 0.01 {
		if Eval(OutElastic, u) > 1 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("Expected OutElastic to overshoot above 1")
	}
}

func TestInOutSymmetry(t *testing.T) {
	pairs := []struct{ in, out Kind }{
		{InQuad, OutQuad},
		{InCubic, OutCubic},
		{InQuart, OutQuart},
		{InQuint, OutQuint},
		{InSine, OutSine},
		{InCirc, OutCirc},
	}
	for _, p := range pairs {
		for u := 0.0; u <= 1.0; u += 0.125 {
			in := Eval(p.in, u)
			out := Eval(p.out, 1-u)
			if math.Abs(in-(1-out)) > 1e-12 {
				t.Errorf("Kinds %d/%d: Expected mirror symmetry at %v, got %v vs %v", p.in, p.out, u, in, 1-out)
			}
		}
	}
}

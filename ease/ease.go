package ease

import "math"

// Kind selects a named easing formula. The In/Out/InOut variants of the
// overshooting families (Back, Elastic) produce values outside [0,1];
// interpolation downstream must tolerate that.
type Kind uint8

const (
	Linear Kind = iota
	InSine
	OutSine
	InOutSine
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InQuint
	OutQuint
	InOutQuint
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	InBack
	OutBack
	InOutBack
	InElastic
	OutElastic
	InOutElastic
	InBounce
	OutBounce
	InOutBounce
)

// Curve is a caller-supplied easing function. A non-nil Curve on a motion
// record takes precedence over its named Kind.
type Curve func(t float64) float64

const (
	backS         = 1.70158
	backS2        = backS * 1.525
	elasticPeriod = 0.3
)

// Eval maps normalized time t through the named easing formula.
// t is expected in [0,1]; callers clamp before easing.
func Eval(k Kind, t float64) float64 {
	switch k {
	case Linear:
		return t
	case InSine:
		return 1 - math.Cos(t*math.Pi/2)
	case OutSine:
		return math.Sin(t * math.Pi / 2)
	case InOutSine:
		return -(math.Cos(math.Pi*t) - 1) / 2
	case InQuad:
		return t * t
	case OutQuad:
		return t * (2 - t)
	case InOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case InCubic:
		return t * t * t
	case OutCubic:
		u := t - 1
		return u*u*u + 1
	case InOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := 2*t - 2
		return 1 + u*u*u/2
	case InQuart:
		return t * t * t * t
	case OutQuart:
		u := t - 1
		return 1 - u*u*u*u
	case InOutQuart:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		u := t - 1
		return 1 - 8*u*u*u*u
	case InQuint:
		return t * t * t * t * t
	case OutQuint:
		u := t - 1
		return u*u*u*u*u + 1
	case InOutQuint:
		if t < 0.5 {
			return 16 * t * t * t * t * t
		}
		u := 2*t - 2
		return 1 + u*u*u*u*u/2
	case InExpo:
		if t <= 0 {
			return 0
		}
		return math.Pow(2, 10*(t-1))
	case OutExpo:
		if t >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	case InOutExpo:
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		if t < 0.5 {
			return math.Pow(2, 20*t-10) / 2
		}
		return 1 - math.Pow(2, -20*t+10)/2
	case InCirc:
		return 1 - math.Sqrt(1-t*t)
	case OutCirc:
		u := t - 1
		return math.Sqrt(1 - u*u)
	case InOutCirc:
		if t < 0.5 {
			return (1 - math.Sqrt(1-4*t*t)) / 2
		}
		u := 2*t - 2
		return (math.Sqrt(1-u*u) + 1) / 2
	case InBack:
		return t * t * ((backS+1)*t - backS)
	case OutBack:
		u := t - 1
		return u*u*((backS+1)*u+backS) + 1
	case InOutBack:
		u := t * 2
		if u < 1 {
			return u * u * ((backS2+1)*u - backS2) / 2
		}
		u -= 2
		return (u*u*((backS2+1)*u+backS2) + 2) / 2
	case InElastic:
		return 1 - elasticOut(1-t)
	case OutElastic:
		return elasticOut(t)
	case InOutElastic:
		if t < 0.5 {
			return (1 - elasticOut(1-2*t)) / 2
		}
		return (elasticOut(2*t-1) + 1) / 2
	case InBounce:
		return 1 - bounceOut(1-t)
	case OutBounce:
		return bounceOut(t)
	case InOutBounce:
		if t < 0.5 {
			return (1 - bounceOut(1-2*t)) / 2
		}
		return (bounceOut(2*t-1) + 1) / 2
	}
	return t
}

func elasticOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t-elasticPeriod/4)*(2*math.Pi)/elasticPeriod) + 1
}

func bounceOut(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}

package adapter

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSpace selects the blending space for color motions
type ColorSpace uint8

const (
	// ColorSpaceRGB blends channels linearly; cheap, can desaturate midway
	ColorSpaceRGB ColorSpace = iota

	// ColorSpaceLab blends perceptually
	ColorSpaceLab

	// ColorSpaceHCL blends perceptually while keeping hue transitions clean
	ColorSpaceHCL
)

// ColorOptions is the options payload for color motions
type ColorOptions struct {
	Space ColorSpace
}

// Color blends colors in the configured space. Blending is undefined outside
// [0,1], so easing overshoot is clamped at the color boundary.
type Color struct{}

func (Color) Evaluate(start, end colorful.Color, opts ColorOptions, progress float64) colorful.Color {
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	switch opts.Space {
	case ColorSpaceLab:
		return start.BlendLab(end, progress)
	case ColorSpaceHCL:
		return start.BlendHcl(end, progress)
	default:
		return start.BlendRgb(end, progress)
	}
}

package kinematics

import "math"

// Easing selects the interpolation curve used for smoothing.
type Easing int

const (
	// EaseCubic accelerates from rest and decelerates into the target.
	EaseCubic Easing = iota
	// EaseLinear interpolates at constant speed.
	EaseLinear
)

// ParseEasing maps a config string to an Easing mode. Unknown names fall
// back to linear, matching how an executor would treat a bad hint.
func ParseEasing(name string) Easing {
	switch name {
	case "cubic":
		return EaseCubic
	default:
		return EaseLinear
	}
}

func (e Easing) String() string {
	if e == EaseCubic {
		return "cubic"
	}
	return "linear"
}

// Value maps progress t in [0,1] through the easing curve.
func (e Easing) Value(t float64) float64 {
	if e == EaseCubic {
		return easeInOutCubic(t)
	}
	return t
}

// easeInOutCubic is the standard ease-in-out cubic curve.
// See https://easings.net/#easeInOutCubic
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

package tracking

import "math"

// Position3D is a camera-relative position in meters:
// X grows to the image right, Y up, Z forward (depth).
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// bboxWidthFloor guards the depth division against degenerate boxes.
const bboxWidthFloor = 1e-6

// PositionEstimator converts a track's 2D bounding box into an estimated 3D
// position using a pinhole camera model with an assumed physical face width.
// Depth accuracy is inherently approximate: real face width varies, so the
// estimate is good to roughly ±30% and is clamped to a plausible range.
//
// The estimator is stateless; Estimate is safe for concurrent use.
type PositionEstimator struct {
	cfg Config
}

// NewPositionEstimator creates an estimator with the given configuration.
func NewPositionEstimator(cfg Config) *PositionEstimator {
	return &PositionEstimator{cfg: cfg}
}

// FocalLength returns the focal length in pixels for the given frame width.
func (e *PositionEstimator) FocalLength(frameWidth float64) float64 {
	fov := e.cfg.HorizontalFOV * math.Pi / 180
	return frameWidth / (2 * math.Tan(fov/2))
}

// Estimate returns the track's position relative to the camera. The result
// is always finite: depth is clamped to [DepthMin, DepthMax] before the
// lateral and vertical offsets are derived from it.
func (e *PositionEstimator) Estimate(track Track, frameWidth, frameHeight float64) Position3D {
	focal := e.FocalLength(frameWidth)

	depth := focal * e.cfg.AssumedHeadWidth / math.Max(track.Detection.Width, bboxWidthFloor)
	depth = clampRange(depth, e.cfg.DepthMin, e.cfg.DepthMax)

	// Image y grows downward, so the vertical offset flips sign.
	x := (track.CentroidX - frameWidth/2) / focal * depth
	y := -(track.CentroidY - frameHeight/2) / focal * depth

	return Position3D{X: x, Y: y, Z: depth}
}

func clampRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

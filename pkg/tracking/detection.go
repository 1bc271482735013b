// Package tracking turns per-frame face detections into persistent tracks,
// estimated 3D positions and a single primary gaze target.
//
// The pipeline per frame is: Tracker.Update associates detections with
// tracks, PositionEstimator converts each track's bounding box into a
// camera-relative position, and TargetSelector picks the track the head
// should look at.
package tracking

import (
	"math"
	"time"
)

// Detection is one observed face in one frame. Coordinates are pixels with
// the origin at the top-left corner, x growing right and y growing down.
type Detection struct {
	X, Y       float64 // Bounding box top-left
	Width      float64
	Height     float64
	Confidence float64 // 0-1
	Timestamp  time.Time
}

// Centroid returns the center point of the bounding box.
func (d Detection) Centroid() (x, y float64) {
	return d.X + d.Width/2, d.Y + d.Height/2
}

// Area returns the bounding box area in square pixels.
func (d Detection) Area() float64 {
	return d.Width * d.Height
}

// Valid reports whether the detection has usable geometry. Boxes with
// non-positive size or non-finite coordinates cannot be matched and are
// dropped by the tracker.
func (d Detection) Valid() bool {
	if d.Width <= 0 || d.Height <= 0 {
		return false
	}
	for _, v := range [4]float64{d.X, d.Y, d.Width, d.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

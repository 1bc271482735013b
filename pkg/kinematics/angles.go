// Package kinematics converts 3D gaze targets into safe, smoothed head
// orientation commands.
//
// Coordinate convention (standard robotics frame):
//   - X: forward (positive = forward)
//   - Y: left (positive = left)
//   - Z: up (positive = up)
//
// Angles are in degrees: positive yaw looks left, positive pitch looks up,
// positive roll tilts left. Yaw lives on the [-180, 180) wrap-around domain.
package kinematics

import "math"

// Orientation is a head orientation in degrees.
type Orientation struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// Target is a gaze target position in the robot frame, in meters.
type Target struct {
	Forward float64
	Left    float64
	Up      float64
}

// minHorizontalDistance guards the pitch computation when the target is
// directly above or below the head.
const minHorizontalDistance = 1e-3

// LookAt returns the orientation that points the head at the target.
// Roll stays level; it is reserved for future tilt behaviors.
func LookAt(target Target) Orientation {
	yaw := degrees(math.Atan2(target.Left, target.Forward))

	horizontal := math.Hypot(target.Forward, target.Left)
	var pitch float64
	if horizontal > minHorizontalDistance {
		pitch = degrees(math.Atan2(target.Up, horizontal))
	} else if target.Up >= 0 {
		// Directly above
		pitch = 90
	} else {
		pitch = -90
	}

	return Orientation{Yaw: yaw, Pitch: pitch, Roll: 0}
}

// WrapAngle normalizes an angle in degrees to [-180, 180).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians, for executors that speak radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

package pipeline

import (
	"time"

	"github.com/teslashibe/go-gaze/pkg/tracking"
)

// TrackState is one active track with its estimated position, as published
// to the control loop and external readers.
type TrackState struct {
	ID            int64               `json:"id"`
	Confidence    float64             `json:"confidence"`
	FramesTracked int                 `json:"frames_tracked"`
	Position      tracking.Position3D `json:"position"`
}

// Snapshot is the state the sensing loop publishes after each frame. It is
// immutable once stored: readers observe either the previous snapshot or
// this one in full, never a partial update. Primary is nil when no track is
// selected as the gaze target.
type Snapshot struct {
	Generation  uint64       `json:"generation"`
	Taken       time.Time    `json:"taken"`
	FrameWidth  float64      `json:"frame_width"`
	FrameHeight float64      `json:"frame_height"`
	Tracks      []TrackState `json:"tracks"`
	Primary     *TrackState  `json:"primary,omitempty"`
}

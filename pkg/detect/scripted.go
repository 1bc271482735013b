package detect

import (
	"sync"
	"time"

	"github.com/teslashibe/go-gaze/pkg/pipeline"
	"github.com/teslashibe/go-gaze/pkg/tracking"
)

// ScriptedSource replays a fixed sequence of frames. After the script runs
// out it keeps returning the last frame, which makes it useful both for
// deterministic tests and for demoing the pipeline without a camera.
type ScriptedSource struct {
	mu     sync.Mutex
	frames []pipeline.Frame
	next   int
}

// NewScripted creates a source that replays the given frames in order.
func NewScripted(frames ...pipeline.Frame) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

// StaticFace returns a single-frame script with one face of the given
// bounding box, centered confidence 0.9, in a frameW x frameH frame.
func StaticFace(frameW, frameH, x, y, w, h float64) *ScriptedSource {
	return NewScripted(pipeline.Frame{
		Width:  frameW,
		Height: frameH,
		Taken:  time.Now(),
		Detections: []tracking.Detection{{
			X: x, Y: y, Width: w, Height: h,
			Confidence: 0.9,
			Timestamp:  time.Now(),
		}},
	})
}

// Detect returns the next scripted frame.
func (s *ScriptedSource) Detect() (pipeline.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return pipeline.Frame{Width: 640, Height: 480, Taken: time.Now()}, nil
	}

	frame := s.frames[s.next]
	if s.next < len(s.frames)-1 {
		s.next++
	}
	if frame.Taken.IsZero() {
		frame.Taken = time.Now()
	}
	return frame, nil
}

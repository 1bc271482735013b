// Package detect provides DetectionSource implementations for the gaze
// pipeline: a gocv-backed YuNet face detector for live cameras and a
// scripted source for tests and demos.
package detect

import (
	"image"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-gaze/pkg/pipeline"
	"github.com/teslashibe/go-gaze/pkg/tracking"
)

// Camera produces JPEG frames from whatever transport the platform uses.
type Camera interface {
	CaptureJPEG() ([]byte, error)
}

// Config holds YuNet detector configuration.
type Config struct {
	ModelPath        string  // Path to the ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// YuNetSource captures frames from a Camera and runs OpenCV's FaceDetectorYN
// on them, producing pixel-space detections for the pipeline.
type YuNetSource struct {
	cam      Camera
	detector gocv.FaceDetectorYN
	cfg      Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a YuNet-backed detection source.
func NewYuNet(cam Camera, cfg Config) (*YuNetSource, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, errors.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetSource{
		cam:      cam,
		detector: detector,
		cfg:      cfg,
	}, nil
}

// Detect captures one frame and returns the faces found in it.
func (s *YuNetSource) Detect() (pipeline.Frame, error) {
	jpeg, err := s.cam.CaptureJPEG()
	if err != nil {
		return pipeline.Frame{}, errors.Wrap(err, "capture frame")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return pipeline.Frame{}, errors.Wrap(err, "decode image")
	}
	defer img.Close()

	if img.Empty() {
		return pipeline.Frame{}, errors.New("empty image")
	}

	taken := time.Now()
	frame := pipeline.Frame{
		Width:  float64(img.Cols()),
		Height: float64(img.Rows()),
		Taken:  taken,
	}

	s.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()
	s.detector.Detect(img, &faces)

	// YuNet output format (15 columns):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-13: 5 facial landmarks (x,y pairs)
	// 14: face score
	for r := 0; r < faces.Rows(); r++ {
		frame.Detections = append(frame.Detections, tracking.Detection{
			X:          float64(faces.GetFloatAt(r, 0)),
			Y:          float64(faces.GetFloatAt(r, 1)),
			Width:      float64(faces.GetFloatAt(r, 2)),
			Height:     float64(faces.GetFloatAt(r, 3)),
			Confidence: float64(faces.GetFloatAt(r, 14)),
			Timestamp:  taken,
		})
	}

	return frame, nil
}

// Close releases the detector resources.
func (s *YuNetSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector.Close()
	return nil
}

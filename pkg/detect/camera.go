package detect

import (
	"io"

	"github.com/pkg/errors"

	"github.com/teslashibe/go-gaze/internal/httpc"
)

// HTTPCamera fetches JPEG frames from an HTTP endpoint, typically the robot
// daemon's camera frame URL.
type HTTPCamera struct {
	URL string
}

// CaptureJPEG fetches one frame.
func (c *HTTPCamera) CaptureJPEG() ([]byte, error) {
	resp, err := httpc.Get(c.URL)
	if err != nil {
		return nil, errors.Wrap(err, "fetch camera frame")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, errors.Errorf("camera endpoint returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read camera frame")
	}
	if len(data) == 0 {
		return nil, errors.New("empty camera frame")
	}
	return data, nil
}

// Package executor delivers orientation commands to an actuator. The HTTP
// controller talks to the robot daemon; the Recorder keeps commands in
// memory for tests and camera-less runs.
package executor

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/teslashibe/go-gaze/internal/httpc"
	"github.com/teslashibe/go-gaze/pkg/kinematics"
	"github.com/teslashibe/go-gaze/pkg/pipeline"
)

// httpClient is shared by all HTTPController instances. The short timeout
// keeps a stalled daemon from blocking the control loop.
var httpClient = httpc.NewClient(2 * time.Second)

// HTTPController sends head pose commands to the robot daemon's HTTP API.
// The daemon speaks radians with the Reachy motor convention (negative
// pitch looks up), so the conversion happens here at the transport
// boundary, not in the planner.
type HTTPController struct {
	BaseURL string
}

// NewHTTPController creates a controller for the daemon at robotIP.
func NewHTTPController(robotIP string) *HTTPController {
	return &HTTPController{
		BaseURL: "http://" + robotIP + ":8000",
	}
}

// Apply posts the command to the daemon's move endpoint.
func (c *HTTPController) Apply(cmd kinematics.Command, _ *pipeline.Snapshot) error {
	payload := map[string]interface{}{
		"target_head_pose": map[string]float64{
			"roll":  kinematics.Radians(cmd.Roll),
			"pitch": -kinematics.Radians(cmd.Pitch),
			"yaw":   kinematics.Radians(cmd.Yaw),
		},
		"target_antennas": nil,
		"target_body_yaw": nil,
		"duration":        cmd.Duration,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode move payload")
	}

	resp, err := httpClient.Post(c.BaseURL+"/api/move/goto", "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "post move")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return errors.Errorf("daemon returned %s", resp.Status)
	}
	return nil
}

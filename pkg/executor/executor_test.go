package executor

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/teslashibe/go-gaze/pkg/kinematics"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	if _, ok := r.Last(); ok {
		t.Error("Last() reported a command before any Apply")
	}

	cmds := []kinematics.Command{
		{Yaw: 10, Duration: 0.3},
		{Yaw: 20, Pitch: 5, Duration: 0.3},
	}
	for _, c := range cmds {
		if err := r.Apply(c, nil); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}

	got := r.Commands()
	if len(got) != 2 {
		t.Fatalf("Commands() returned %d, want 2", len(got))
	}
	last, ok := r.Last()
	if !ok || last.Yaw != 20 {
		t.Errorf("Last() = (%+v, %v), want yaw 20", last, ok)
	}
}

func TestRecorder_Err(t *testing.T) {
	r := NewRecorder()
	r.Err = errors.New("actuator offline")

	if err := r.Apply(kinematics.Command{}, nil); err == nil {
		t.Fatal("Apply() = nil, want the configured error")
	}
	if len(r.Commands()) != 0 {
		t.Error("failed Apply still recorded the command")
	}
}

func TestHTTPController_Apply(t *testing.T) {
	var got struct {
		TargetHeadPose map[string]float64 `json:"target_head_pose"`
		Duration       float64            `json:"duration"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/move/goto" {
			t.Errorf("path = %q, want /api/move/goto", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &HTTPController{BaseURL: srv.URL}
	cmd := kinematics.Command{Yaw: 90, Pitch: 30, Roll: -10, Duration: 0.3}
	if err := c.Apply(cmd, nil); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	// The daemon speaks radians and flips pitch.
	if math.Abs(got.TargetHeadPose["yaw"]-math.Pi/2) > 1e-9 {
		t.Errorf("yaw = %v rad, want pi/2", got.TargetHeadPose["yaw"])
	}
	if math.Abs(got.TargetHeadPose["pitch"]+kinematics.Radians(30)) > 1e-9 {
		t.Errorf("pitch = %v rad, want %v (sign flipped)", got.TargetHeadPose["pitch"], -kinematics.Radians(30))
	}
	if got.Duration != 0.3 {
		t.Errorf("duration = %v, want 0.3", got.Duration)
	}
}

func TestHTTPController_ApplyDaemonError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "joint fault", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &HTTPController{BaseURL: srv.URL}
	if err := c.Apply(kinematics.Command{}, nil); err == nil {
		t.Fatal("Apply() = nil, want error on 500")
	}
}

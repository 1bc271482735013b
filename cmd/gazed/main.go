// gazed runs the gaze control daemon: it tracks faces from the robot's
// camera and keeps the head oriented toward the primary target, serving a
// telemetry dashboard on the side.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-gaze/internal/config"
	applog "github.com/teslashibe/go-gaze/internal/log"
	"github.com/teslashibe/go-gaze/pkg/detect"
	"github.com/teslashibe/go-gaze/pkg/executor"
	"github.com/teslashibe/go-gaze/pkg/pipeline"
	"github.com/teslashibe/go-gaze/pkg/tracking"
	"github.com/teslashibe/go-gaze/pkg/web"
)

func main() {
	robotIP := flag.String("robot", config.RobotIP(), "Robot IP address (overrides ROBOT_IP env var)")
	port := flag.String("port", config.DashboardPort(), "Dashboard HTTP port")
	model := flag.String("model", config.ModelPath(), "Path to the YuNet ONNX model")
	preset := flag.String("preset", "default", "Tracking preset: default, patient, responsive")
	demo := flag.Bool("demo", false, "Run on a scripted detection source instead of the camera")
	flag.Parse()

	applog.Init(config.LogLevel())

	cfg := pipeline.DefaultConfig()
	switch *preset {
	case "patient":
		cfg.Tracking = tracking.PatientConfig()
	case "responsive":
		cfg.Tracking = tracking.ResponsiveConfig()
	}

	source, err := buildSource(*robotIP, *model, *demo)
	if err != nil {
		log.Fatalf("detection source: %v", err)
	}

	var exec pipeline.Executor
	if *robotIP != "" && !*demo {
		exec = executor.NewHTTPController(*robotIP)
	} else {
		exec = &executor.Recorder{}
	}

	pipe := pipeline.New(cfg, source, exec)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := web.NewServer(*port, pipe)
	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Fatalf("dashboard: %v", err)
		}
	}()

	applog.Info("gazed starting", "session", pipe.Session().String(), "demo", *demo)
	pipe.Run(ctx)
	applog.Info("gazed stopped")
}

// buildSource wires the detection source. Live runs need both a robot and a
// YuNet model; demo runs replay a synthetic wandering face.
func buildSource(robotIP, model string, demo bool) (pipeline.DetectionSource, error) {
	if demo || robotIP == "" {
		return demoScript(), nil
	}

	cam := &detect.HTTPCamera{URL: "http://" + robotIP + ":8000/api/camera/frame"}
	cfg := detect.DefaultConfig()
	cfg.ModelPath = model
	return detect.NewYuNet(cam, cfg)
}

// demoScript produces a face sweeping sinusoidally across a 640x480 frame,
// enough to watch the planner work without a camera attached.
func demoScript() *detect.ScriptedSource {
	const (
		frames = 600
		w, h   = 640.0, 480.0
	)
	script := make([]pipeline.Frame, 0, frames)
	for i := 0; i < frames; i++ {
		t := float64(i) / frames
		cx := w/2 + (w/3)*math.Sin(2*math.Pi*t)
		cy := h/2 + (h/6)*math.Sin(4*math.Pi*t)
		script = append(script, pipeline.Frame{
			Width:  w,
			Height: h,
			Taken:  time.Now(),
			Detections: []tracking.Detection{{
				X: cx - 40, Y: cy - 40, Width: 80, Height: 80,
				Confidence: 0.9,
				Timestamp:  time.Now(),
			}},
		})
	}
	return detect.NewScripted(script...)
}

// Package config provides environment configuration for gazed.
package config

import "os"

// Defaults for the gazed process.
const (
	DefaultDashboardPort = "8088"
	DefaultModelPath     = "models/face_detection_yunet.onnx"
	DefaultRobotPort     = "8000"
)

// RobotIP returns the robot IP from the ROBOT_IP env var.
// Empty means no robot attached: commands go to the recording executor.
func RobotIP() string {
	return os.Getenv("ROBOT_IP")
}

// DashboardPort returns the dashboard listen port from GAZE_DASHBOARD_PORT.
func DashboardPort() string {
	if port := os.Getenv("GAZE_DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// ModelPath returns the face detector model path from YUNET_MODEL.
func ModelPath() string {
	if path := os.Getenv("YUNET_MODEL"); path != "" {
		return path
	}
	return DefaultModelPath
}

// LogLevel returns the log level from LOG_LEVEL ("debug", "info", "warn", "error").
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

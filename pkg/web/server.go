// Package web provides a live telemetry dashboard for a gaze pipeline:
// the current tracks, the primary target and the last orientation command,
// served as JSON and pushed over websocket.
package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-gaze/pkg/kinematics"
	"github.com/teslashibe/go-gaze/pkg/pipeline"
)

// State is the dashboard view of the pipeline.
type State struct {
	Session     string               `json:"session"`
	Snapshot    *pipeline.Snapshot   `json:"snapshot"`
	Command     kinematics.Command   `json:"command"`
	BodyYaw     float64              `json:"body_yaw"`
	Diagnostics pipeline.Diagnostics `json:"diagnostics"`
	Clients     int                  `json:"clients"`
}

// Server serves the dashboard for one pipeline.
type Server struct {
	app  *fiber.App
	port string
	pipe *pipeline.Pipeline
	hub  *hub

	// PushInterval controls how often state is broadcast to websocket
	// clients. Defaults to the control-loop cadence.
	PushInterval time.Duration
}

// NewServer creates a dashboard server for the given pipeline.
func NewServer(port string, pipe *pipeline.Pipeline) *Server {
	s := &Server{
		app:          fiber.New(fiber.Config{DisableStartupMessage: true}),
		port:         port,
		pipe:         pipe,
		hub:          newHub(),
		PushInterval: 100 * time.Millisecond,
	}

	s.app.Get("/api/state", s.handleState)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/state", websocket.New(s.handleWS))

	return s
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.pushLoop(ctx)
	go func() {
		<-ctx.Done()
		s.app.Shutdown()
	}()
	return s.app.Listen(":" + s.port)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) state() State {
	return State{
		Session:     s.pipe.Session().String(),
		Snapshot:    s.pipe.Snapshot(),
		Command:     s.pipe.LastCommand(),
		BodyYaw:     s.pipe.BodyYaw(),
		Diagnostics: s.pipe.Diagnostics(),
		Clients:     s.hub.clientCount(),
	}
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.state())
}

func (s *Server) handleWS(c *websocket.Conn) {
	ch := s.hub.register()
	defer s.hub.unregister(ch)

	for msg := range ch {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (s *Server) pushLoop(ctx context.Context) {
	ticker := time.NewTicker(s.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.hub.clientCount() == 0 {
				continue
			}
			data, err := json.Marshal(s.state())
			if err != nil {
				continue
			}
			s.hub.broadcast(data)
		}
	}
}

// Package pipeline runs the gaze core: a sensing loop that turns detector
// frames into tracks, positions and a primary target, and a lower-rate
// control loop that turns the primary target into orientation commands.
//
// The two loops share a single atomically swapped Snapshot. The sensing
// loop is the sole writer; the control loop and external readers only load.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-gaze/internal/log"
	"github.com/teslashibe/go-gaze/pkg/kinematics"
	"github.com/teslashibe/go-gaze/pkg/tracking"
)

// Frame is one detector result: the detections plus the frame geometry
// they were measured in.
type Frame struct {
	Detections []tracking.Detection
	Width      float64
	Height     float64
	Taken      time.Time
}

// DetectionSource produces per-frame detections. Confidence filtering is
// the source's responsibility; the pipeline accepts whatever it is given
// and drops only individually malformed boxes.
type DetectionSource interface {
	// Detect returns the next frame's detections. An empty slice is a
	// normal result. An error means the frame is dropped for this tick;
	// processing resumes on the next tick.
	Detect() (Frame, error)
}

// Executor receives the orientation command planned each control tick,
// together with the snapshot it was planned from. The executor owns
// transport to the physical actuator.
type Executor interface {
	Apply(cmd kinematics.Command, snap *Snapshot) error
}

// Config holds the pipeline's loop rates and component configurations.
type Config struct {
	SensorInterval  time.Duration // Sensing loop tick (detector rate)
	ControlInterval time.Duration // Control loop tick (command rate)
	Tracking        tracking.Config
	Planner         kinematics.Config
}

// DefaultConfig returns a 30 Hz sensing / 10 Hz control configuration.
func DefaultConfig() Config {
	return Config{
		SensorInterval:  33 * time.Millisecond,
		ControlInterval: 100 * time.Millisecond,
		Tracking:        tracking.DefaultConfig(),
		Planner:         kinematics.DefaultConfig(),
	}
}

// Pipeline owns the tracker, estimator, selector and planner and runs the
// two loops. Construct one per camera; instances are independent.
type Pipeline struct {
	session uuid.UUID
	cfg     Config
	source  DetectionSource
	exec    Executor

	tracker   *tracking.Tracker
	estimator *tracking.PositionEstimator
	selector  *tracking.TargetSelector
	planner   *kinematics.Planner

	snap atomic.Pointer[Snapshot]

	// Sensing-loop-only state
	generation uint64
	primaryID  int64
	misses     int

	// State shared with external readers
	mu      sync.RWMutex
	current kinematics.Orientation
	bodyYaw float64
	lastCmd kinematics.Command

	dropped atomic.Uint64 // Frames the source failed to deliver
}

// New creates a pipeline. source and exec must be non-nil.
func New(cfg Config, source DetectionSource, exec Executor) *Pipeline {
	return &Pipeline{
		session:   uuid.New(),
		cfg:       cfg,
		source:    source,
		exec:      exec,
		tracker:   tracking.NewTracker(cfg.Tracking),
		estimator: tracking.NewPositionEstimator(cfg.Tracking),
		selector:  tracking.NewTargetSelector(cfg.Tracking),
		planner:   kinematics.NewPlanner(cfg.Planner),
	}
}

// Session returns the pipeline's session identifier.
func (p *Pipeline) Session() uuid.UUID {
	return p.session
}

// Run starts the sensing and control loops and blocks until ctx is
// cancelled. Both loops observe the stop signal between ticks and exit
// without leaving the snapshot inconsistent.
func (p *Pipeline) Run(ctx context.Context) {
	log.Info("gaze pipeline started",
		"session", p.session,
		"sensor_interval", p.cfg.SensorInterval,
		"control_interval", p.cfg.ControlInterval)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.runSensing(ctx)
	}()
	go func() {
		defer wg.Done()
		p.runControl(ctx)
	}()
	wg.Wait()

	log.Info("gaze pipeline stopped", "session", p.session)
}

func (p *Pipeline) runSensing(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.SensorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.senseTick()
		}
	}
}

func (p *Pipeline) runControl(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.ControlInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.controlTick()
		}
	}
}

// senseTick runs one Detector → Tracker → PositionEstimator →
// TargetSelector pass and publishes the result.
func (p *Pipeline) senseTick() {
	frame, err := p.source.Detect()
	if err != nil {
		n := p.dropped.Add(1)
		p.misses++
		if p.misses == 5 {
			log.Warn("detector failing", "consecutive_misses", p.misses, "total_dropped", n)
		}
		return
	}
	p.misses = 0

	tracks := p.tracker.Update(frame.Detections)

	states := make([]TrackState, len(tracks))
	for i, tr := range tracks {
		states[i] = TrackState{
			ID:            tr.ID,
			Confidence:    tr.Confidence,
			FramesTracked: tr.FramesTracked,
			Position:      p.estimator.Estimate(tr, frame.Width, frame.Height),
		}
	}

	primaryID, hasPrimary := p.selector.Select(tracks, p.primaryID, frame.Width, frame.Height)
	if hasPrimary {
		if primaryID != p.primaryID {
			log.Info("primary target switched", "from", p.primaryID, "to", primaryID)
		}
		p.primaryID = primaryID
	} else {
		p.primaryID = 0
	}

	p.generation++
	snap := &Snapshot{
		Generation:  p.generation,
		Taken:       frame.Taken,
		FrameWidth:  frame.Width,
		FrameHeight: frame.Height,
		Tracks:      states,
	}
	if hasPrimary {
		for i := range states {
			if states[i].ID == primaryID {
				primary := states[i]
				snap.Primary = &primary
				break
			}
		}
	}

	p.snap.Store(snap)
}

// controlTick plans one orientation command from the latest snapshot and
// hands it to the executor.
func (p *Pipeline) controlTick() {
	snap := p.snap.Load()

	var target *kinematics.Target
	if snap != nil && snap.Primary != nil {
		pos := snap.Primary.Position
		// Camera frame (x right, y up, z forward) to robot frame
		// (x forward, y left, z up).
		target = &kinematics.Target{
			Forward: pos.Z,
			Left:    -pos.X,
			Up:      pos.Y,
		}
	}

	p.mu.Lock()
	cmd := p.planner.Plan(target, p.current, p.bodyYaw, p.cfg.Planner.Progress)
	p.current = cmd.Orientation()
	p.lastCmd = cmd
	p.mu.Unlock()

	if err := p.exec.Apply(cmd, snap); err != nil {
		log.Warn("executor rejected command", "error", err)
	}
}

// Snapshot returns the latest published snapshot, or nil before the first
// sensing tick completes.
func (p *Pipeline) Snapshot() *Snapshot {
	return p.snap.Load()
}

// LastCommand returns the most recent orientation command.
func (p *Pipeline) LastCommand() kinematics.Command {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastCmd
}

// Orientation returns the head orientation implied by the last command.
func (p *Pipeline) Orientation() kinematics.Orientation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetBodyYaw updates the body yaw (degrees) used for the body-relative
// safety clamp. Called by whoever rotates the body.
func (p *Pipeline) SetBodyYaw(yaw float64) {
	p.mu.Lock()
	p.bodyYaw = yaw
	p.mu.Unlock()
}

// BodyYaw returns the body yaw the planner currently assumes.
func (p *Pipeline) BodyYaw() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bodyYaw
}

// Diagnostics summarizes the pipeline's health counters.
type Diagnostics struct {
	DroppedFrames     uint64 `json:"dropped_frames"`
	DroppedDetections uint64 `json:"dropped_detections"`
	ClampEvents       uint64 `json:"clamp_events"`
}

// Diagnostics returns the current diagnostic counters.
func (p *Pipeline) Diagnostics() Diagnostics {
	return Diagnostics{
		DroppedFrames:     p.dropped.Load(),
		DroppedDetections: p.tracker.DroppedDetections(),
		ClampEvents:       p.planner.ClampEvents(),
	}
}

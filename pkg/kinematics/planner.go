package kinematics

import (
	"sync/atomic"

	"github.com/teslashibe/go-gaze/internal/log"
)

// Command is the orientation intent handed to the executor once per control
// tick. It is always the result of clamping plus smoothing, never raw
// geometry.
type Command struct {
	Yaw      float64 `json:"yaw"`      // degrees
	Pitch    float64 `json:"pitch"`    // degrees
	Roll     float64 `json:"roll"`     // degrees
	Duration float64 `json:"duration"` // seconds, interpolation hint for the executor
}

// Orientation returns the command's angles.
func (c Command) Orientation() Orientation {
	return Orientation{Yaw: c.Yaw, Pitch: c.Pitch, Roll: c.Roll}
}

// Config holds the planner's tunable parameters.
type Config struct {
	Limits  Limits
	Neutral Orientation // Pose to drive toward when there is no target
	Easing  Easing
	// Progress is the fraction of the remaining angular distance covered
	// per control tick, before easing. Clamped to [0,1].
	Progress float64
	// Duration is the executor interpolation hint attached to every command.
	Duration float64 // seconds
}

// DefaultConfig returns the recommended planner configuration.
func DefaultConfig() Config {
	return Config{
		Limits:   DefaultLimits(),
		Neutral:  Orientation{},
		Easing:   EaseCubic,
		Progress: 0.3,
		Duration: 0.3,
	}
}

// Planner turns the primary target's position into one safe, smoothed
// orientation command per control tick. With no target it drives the head
// toward the configured neutral pose along the same smoothing path.
//
// Plan is called from a single control loop; the clamp counter may be read
// concurrently.
type Planner struct {
	cfg         Config
	clampEvents atomic.Uint64
}

// NewPlanner creates a planner with the given configuration.
func NewPlanner(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// Plan computes the next command. target is nil when there is no gaze
// target. current is the head's present orientation, bodyYaw the body's yaw
// in degrees, and progress the fraction of the remaining distance to cover
// this tick (defensively clamped to [0,1]).
func (p *Planner) Plan(target *Target, current Orientation, bodyYaw, progress float64) Command {
	want := p.cfg.Neutral
	if target != nil {
		want = LookAt(*target)
	}

	want, clamped := p.cfg.Limits.Apply(want, bodyYaw)
	if clamped {
		n := p.clampEvents.Add(1)
		log.Debug("safety clamp applied",
			"yaw", want.Yaw, "pitch", want.Pitch, "roll", want.Roll,
			"body_yaw", bodyYaw, "total", n)
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	eased := p.cfg.Easing.Value(progress)

	next := Orientation{
		Yaw:   interpolateAngle(current.Yaw, want.Yaw, eased),
		Pitch: interpolateAngle(current.Pitch, want.Pitch, eased),
		Roll:  interpolateAngle(current.Roll, want.Roll, eased),
	}

	// The smoothed pose is re-clamped so every emitted command satisfies
	// the limits even when the body turned between ticks.
	next, _ = p.cfg.Limits.Apply(next, bodyYaw)

	return Command{
		Yaw:      next.Yaw,
		Pitch:    next.Pitch,
		Roll:     next.Roll,
		Duration: p.cfg.Duration,
	}
}

// ClampEvents returns how many planning ticks required a safety clamp.
func (p *Planner) ClampEvents() uint64 {
	return p.clampEvents.Load()
}

// interpolateAngle moves from current toward target by the eased fraction
// of the shortest angular path, so a 190° turn becomes a -170° turn.
func interpolateAngle(current, target, eased float64) float64 {
	diff := WrapAngle(target - current)
	return WrapAngle(current + diff*eased)
}

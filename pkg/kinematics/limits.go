package kinematics

// Limits are the head safety limits in degrees. Each field bounds the
// corresponding angle symmetrically (±value).
type Limits struct {
	Pitch           float64 // ±degrees
	Roll            float64 // ±degrees
	Yaw             float64 // ±degrees, absolute
	BodyRelativeYaw float64 // ±degrees relative to the body's yaw
}

// DefaultLimits returns the Reachy Mini head limits.
func DefaultLimits() Limits {
	return Limits{
		Pitch:           40,
		Roll:            40,
		Yaw:             180,
		BodyRelativeYaw: 65,
	}
}

// Apply clamps the orientation to the limits and reports whether any clamp
// fired. The body-relative yaw constraint is applied last and overrides the
// absolute yaw clamp whenever the two disagree.
func (l Limits) Apply(o Orientation, bodyYaw float64) (Orientation, bool) {
	clamped := false

	if o.Pitch > l.Pitch {
		o.Pitch = l.Pitch
		clamped = true
	} else if o.Pitch < -l.Pitch {
		o.Pitch = -l.Pitch
		clamped = true
	}

	if o.Roll > l.Roll {
		o.Roll = l.Roll
		clamped = true
	} else if o.Roll < -l.Roll {
		o.Roll = -l.Roll
		clamped = true
	}

	if o.Yaw > l.Yaw {
		o.Yaw = l.Yaw
		clamped = true
	} else if o.Yaw < -l.Yaw {
		o.Yaw = -l.Yaw
		clamped = true
	}

	if diff := o.Yaw - bodyYaw; diff > l.BodyRelativeYaw {
		o.Yaw = bodyYaw + l.BodyRelativeYaw
		clamped = true
	} else if diff < -l.BodyRelativeYaw {
		o.Yaw = bodyYaw - l.BodyRelativeYaw
		clamped = true
	}

	return o, clamped
}

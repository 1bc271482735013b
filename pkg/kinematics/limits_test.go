package kinematics

import "testing"

func TestLimitsApply_WithinLimits(t *testing.T) {
	l := DefaultLimits()

	in := Orientation{Yaw: 30, Pitch: 20, Roll: -10}
	got, clamped := l.Apply(in, 0)
	if clamped {
		t.Error("Apply() reported a clamp for an in-range orientation")
	}
	if got != in {
		t.Errorf("Apply() = %+v, want unchanged %+v", got, in)
	}
}

func TestLimitsApply_ClampsEachAxis(t *testing.T) {
	l := DefaultLimits()

	tests := []struct {
		name string
		in   Orientation
		want Orientation
	}{
		{"pitch high", Orientation{Pitch: 75}, Orientation{Pitch: 40}},
		{"pitch low", Orientation{Pitch: -75}, Orientation{Pitch: -40}},
		{"roll high", Orientation{Roll: 60}, Orientation{Roll: 40}},
		{"roll low", Orientation{Roll: -60}, Orientation{Roll: -40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := l.Apply(tt.in, 0)
			if !clamped {
				t.Error("Apply() did not report the clamp")
			}
			if got != tt.want {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLimitsApply_BodyRelativeYaw(t *testing.T) {
	l := DefaultLimits()

	// Body at 0: a 80° head yaw exceeds the ±65° body-relative window.
	got, clamped := l.Apply(Orientation{Yaw: 80}, 0)
	if !clamped || got.Yaw != 65 {
		t.Errorf("Apply(yaw=80, body=0) = (%v, %v), want (65, true)", got.Yaw, clamped)
	}

	// Body at 50: the same head yaw is fine relative to the body.
	got, clamped = l.Apply(Orientation{Yaw: 80}, 50)
	if clamped || got.Yaw != 80 {
		t.Errorf("Apply(yaw=80, body=50) = (%v, %v), want (80, false)", got.Yaw, clamped)
	}

	// Negative side of the window.
	got, clamped = l.Apply(Orientation{Yaw: -100}, -20)
	if !clamped || got.Yaw != -85 {
		t.Errorf("Apply(yaw=-100, body=-20) = (%v, %v), want (-85, true)", got.Yaw, clamped)
	}
}

func TestLimitsApply_BodyRelativeOverridesAbsolute(t *testing.T) {
	l := Limits{Pitch: 40, Roll: 40, Yaw: 90, BodyRelativeYaw: 65}

	// The absolute clamp pulls 120 down to 90, then the body window
	// around 10 pulls it further to 75. The tighter constraint wins.
	got, clamped := l.Apply(Orientation{Yaw: 120}, 10)
	if !clamped || got.Yaw != 75 {
		t.Errorf("Apply(yaw=120, body=10) = (%v, %v), want (75, true)", got.Yaw, clamped)
	}
}

package tracking

import (
	"math"
	"testing"
)

func trackAt(cx, cy, w, h float64) Track {
	return Track{
		Detection: Detection{X: cx - w/2, Y: cy - h/2, Width: w, Height: h},
		CentroidX: cx,
		CentroidY: cy,
	}
}

func TestEstimate_CenteredFaceHasNoLateralOffset(t *testing.T) {
	e := NewPositionEstimator(DefaultConfig())

	pos := e.Estimate(trackAt(320, 240, 100, 100), 640, 480)
	if math.Abs(pos.X) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Errorf("centered face: X=%v Y=%v, want both 0", pos.X, pos.Y)
	}
	if pos.Z <= 0 {
		t.Errorf("Z = %v, want positive depth", pos.Z)
	}
}

func TestEstimate_DepthFromBoxWidth(t *testing.T) {
	cfg := DefaultConfig()
	e := NewPositionEstimator(cfg)

	// focal = 640 / (2 tan 30°) ≈ 554.26 px; a 110px face sits at
	// 554.26 * 0.2 / 110 ≈ 1.008m, comfortably inside the clamp range.
	pos := e.Estimate(trackAt(320, 240, 110, 110), 640, 480)
	want := e.FocalLength(640) * cfg.AssumedHeadWidth / 110
	if math.Abs(pos.Z-want) > 1e-9 {
		t.Errorf("Z = %v, want %v", pos.Z, want)
	}
	if pos.Z < cfg.DepthMin || pos.Z > cfg.DepthMax {
		t.Errorf("Z = %v outside [%v, %v]", pos.Z, cfg.DepthMin, cfg.DepthMax)
	}
}

func TestEstimate_DepthClampedFar(t *testing.T) {
	cfg := DefaultConfig()
	e := NewPositionEstimator(cfg)

	// A tiny 10px face implies ~11m of raw depth.
	pos := e.Estimate(trackAt(320, 240, 10, 10), 640, 480)
	if pos.Z != cfg.DepthMax {
		t.Errorf("Z = %v, want clamp to DepthMax %v", pos.Z, cfg.DepthMax)
	}
}

func TestEstimate_DepthClampedNear(t *testing.T) {
	cfg := DefaultConfig()
	e := NewPositionEstimator(cfg)

	// A face filling most of the frame implies ~0.19m of raw depth.
	pos := e.Estimate(trackAt(320, 240, 600, 400), 640, 480)
	if pos.Z != cfg.DepthMin {
		t.Errorf("Z = %v, want clamp to DepthMin %v", pos.Z, cfg.DepthMin)
	}
}

func TestEstimate_NearZeroWidthStaysFinite(t *testing.T) {
	cfg := DefaultConfig()
	e := NewPositionEstimator(cfg)

	pos := e.Estimate(trackAt(320, 240, 1e-12, 1e-12), 640, 480)
	if math.IsNaN(pos.Z) || math.IsInf(pos.Z, 0) {
		t.Fatalf("Z = %v, want finite", pos.Z)
	}
	// The implied depth explodes, so the clamp lands on the far bound.
	if pos.Z != cfg.DepthMax {
		t.Errorf("Z = %v, want DepthMax %v", pos.Z, cfg.DepthMax)
	}
}

func TestEstimate_VerticalAxisPointsUp(t *testing.T) {
	e := NewPositionEstimator(DefaultConfig())

	// Face above frame center (smaller pixel y) is physically up.
	above := e.Estimate(trackAt(320, 100, 100, 100), 640, 480)
	if above.Y <= 0 {
		t.Errorf("face above center: Y = %v, want positive", above.Y)
	}

	right := e.Estimate(trackAt(500, 240, 100, 100), 640, 480)
	if right.X <= 0 {
		t.Errorf("face right of center: X = %v, want positive", right.X)
	}
}

func TestFocalLength(t *testing.T) {
	e := NewPositionEstimator(DefaultConfig())

	got := e.FocalLength(640)
	want := 640 / (2 * math.Tan(30*math.Pi/180))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("FocalLength(640) = %v, want %v", got, want)
	}
}

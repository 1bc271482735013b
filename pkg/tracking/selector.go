package tracking

import "math"

// TargetSelector scores active tracks and picks the one the head should
// look at. Selection is sticky: once a track is primary it keeps the role
// until a challenger beats its score by more than SwitchMargin, which
// prevents flicker between similarly scored faces.
//
// Scoring weighs how central the face is in the frame, how large it is
// (larger means closer) and how stable its track is. The selector itself is
// stateless; the caller carries the current primary ID between ticks.
type TargetSelector struct {
	cfg Config
}

// NewTargetSelector creates a selector with the given configuration.
func NewTargetSelector(cfg Config) *TargetSelector {
	return &TargetSelector{cfg: cfg}
}

// Select returns the persistent ID of the primary track. currentPrimary is
// the previous tick's choice (0 = none). ok is false only when tracks is
// empty: a single track is always selected.
func (s *TargetSelector) Select(tracks []Track, currentPrimary int64, frameWidth, frameHeight float64) (id int64, ok bool) {
	if len(tracks) == 0 {
		return 0, false
	}

	bestID := int64(0)
	bestScore := math.Inf(-1)
	currentScore := math.Inf(-1)
	currentAlive := false

	for i := range tracks {
		score := s.Score(tracks[i], frameWidth, frameHeight)
		// Ties break toward the lowest ID for determinism.
		if score > bestScore || (score == bestScore && tracks[i].ID < bestID) {
			bestScore = score
			bestID = tracks[i].ID
		}
		if tracks[i].ID == currentPrimary {
			currentScore = score
			currentAlive = true
		}
	}

	if !currentAlive {
		return bestID, true
	}

	// Hysteresis: the incumbent keeps the role unless clearly beaten.
	if bestID != currentPrimary && bestScore > currentScore+s.cfg.SwitchMargin {
		return bestID, true
	}
	return currentPrimary, true
}

// Score computes the selection score for one track. Exposed for telemetry.
func (s *TargetSelector) Score(track Track, frameWidth, frameHeight float64) float64 {
	centerX := frameWidth / 2
	centerY := frameHeight / 2
	maxDistance := math.Hypot(centerX, centerY)

	centrality := 0.0
	if maxDistance > 0 {
		d := math.Hypot(track.CentroidX-centerX, track.CentroidY-centerY)
		centrality = 1 - d/maxDistance
	}

	size := 0.0
	if area := frameWidth * frameHeight; area > 0 {
		// Sqrt keeps very large faces from dominating the score.
		size = math.Sqrt(track.Detection.Area() / area)
	}

	return s.cfg.CentralityWeight*centrality +
		s.cfg.SizeWeight*size +
		s.cfg.ConfidenceWeight*track.Confidence
}

package tracking

import (
	"math"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/teslashibe/go-gaze/internal/log"
)

// Track is a face identity maintained across frames. The ID is assigned
// monotonically and never reused within a process lifetime.
type Track struct {
	ID            int64
	Detection     Detection // Latest associated detection
	CentroidX     float64   // Cached for matching
	CentroidY     float64
	LastSeen      time.Time
	Confidence    float64 // 0-1, grows with consecutive matches
	FramesTracked int
}

// Tracker maintains persistent face identities using greedy nearest-centroid
// matching. A single sensing loop owns it; only the diagnostic counter may
// be read from other goroutines.
type Tracker struct {
	cfg    Config
	nextID int64
	order  []int64 // Track IDs in creation order, for deterministic matching
	tracks map[int64]*Track

	dropped atomic.Uint64 // Malformed detections rejected

	now func() time.Time
}

// NewTracker creates a tracker with the given configuration.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:    cfg,
		nextID: 1,
		tracks: make(map[int64]*Track),
		now:    time.Now,
	}
}

// Update associates the frame's detections with existing tracks, creates
// tracks for unmatched detections and expires stale tracks. It returns
// copies of all active tracks in creation order.
//
// Malformed detections (non-positive size, NaN/Inf coordinates) are dropped
// with a diagnostic; the rest of the frame is processed normally. An empty
// detection list still runs expiration.
func (t *Tracker) Update(detections []Detection) []Track {
	now := t.now()

	valid := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if !d.Valid() {
			n := t.dropped.Add(1)
			log.Warn("dropped malformed detection",
				"width", d.Width, "height", d.Height, "total_dropped", n)
			continue
		}
		valid = append(valid, d)
	}

	matched := t.match(valid, now)

	// Unmatched detections become new tracks, in original detection order.
	for j, det := range valid {
		if _, ok := matched[j]; ok {
			continue
		}
		cx, cy := det.Centroid()
		track := &Track{
			ID:            t.nextID,
			Detection:     det,
			CentroidX:     cx,
			CentroidY:     cy,
			LastSeen:      now,
			Confidence:    clamp01(det.Confidence),
			FramesTracked: 1,
		}
		t.tracks[track.ID] = track
		t.order = append(t.order, track.ID)
		t.nextID++
		log.Debug("new track created", "id", track.ID)
	}

	t.expire(now)

	result := make([]Track, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, *t.tracks[id])
	}
	return result
}

// match binds detections to tracks by repeatedly taking the globally
// smallest centroid distance below the threshold. Returns the set of
// matched detection indices.
func (t *Tracker) match(detections []Detection, now time.Time) map[int]struct{} {
	matched := make(map[int]struct{})
	if len(t.order) == 0 || len(detections) == 0 {
		return matched
	}

	dist := mat.NewDense(len(t.order), len(detections), nil)
	for i, id := range t.order {
		track := t.tracks[id]
		for j := range detections {
			cx, cy := detections[j].Centroid()
			dist.Set(i, j, math.Hypot(track.CentroidX-cx, track.CentroidY-cy))
		}
	}

	for {
		i, j, d := argmin(dist)
		if d > t.cfg.MaxMatchDistance {
			break
		}

		track := t.tracks[t.order[i]]
		det := detections[j]
		cx, cy := det.Centroid()
		track.Detection = det
		track.CentroidX = cx
		track.CentroidY = cy
		track.LastSeen = now
		track.FramesTracked++
		track.Confidence = math.Min(1.0, track.Confidence+t.cfg.ConfidenceGain)
		matched[j] = struct{}{}

		// Remove the matched pair from further consideration.
		for c := 0; c < len(detections); c++ {
			dist.Set(i, c, math.Inf(1))
		}
		for r := 0; r < len(t.order); r++ {
			dist.Set(r, j, math.Inf(1))
		}
	}

	return matched
}

// argmin returns the row, column and value of the smallest matrix entry.
// The row-major scan with a strict comparison makes ties deterministic:
// the earliest track, then the earliest detection, wins.
func argmin(m *mat.Dense) (row, col int, min float64) {
	rows, cols := m.Dims()
	min = math.Inf(1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := m.At(r, c); v < min {
				min = v
				row, col = r, c
			}
		}
	}
	return row, col, min
}

func (t *Tracker) expire(now time.Time) {
	kept := t.order[:0]
	for _, id := range t.order {
		if now.Sub(t.tracks[id].LastSeen) > t.cfg.TrackTimeout {
			log.Debug("track expired", "id", id)
			delete(t.tracks, id)
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
}

// Count returns the number of active tracks.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Get returns a copy of the track with the given ID.
func (t *Tracker) Get(id int64) (Track, bool) {
	track, ok := t.tracks[id]
	if !ok {
		return Track{}, false
	}
	return *track, true
}

// DroppedDetections returns how many malformed detections were rejected.
// Safe to call concurrently with Update.
func (t *Tracker) DroppedDetections() uint64 {
	return t.dropped.Load()
}

// Reset clears all tracks. ID assignment continues from where it left off
// so identities are never reused.
func (t *Tracker) Reset() {
	t.tracks = make(map[int64]*Track)
	t.order = nil
	log.Info("tracker reset")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

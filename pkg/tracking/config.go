package tracking

import "time"

// Config holds all tunable parameters for track association, depth
// estimation and primary target selection. Values are fixed at
// construction; callers own the instance they configure.
type Config struct {
	// Association
	MaxMatchDistance float64       // Maximum centroid distance for a match (pixels)
	TrackTimeout     time.Duration // Remove tracks not seen for this long
	ConfidenceGain   float64       // Confidence added per successful match, capped at 1.0

	// Depth model
	AssumedHeadWidth float64 // Assumed physical face width (meters)
	HorizontalFOV    float64 // Camera horizontal field of view (degrees)
	DepthMin         float64 // Depth clamp lower bound (meters)
	DepthMax         float64 // Depth clamp upper bound (meters)

	// Primary selection
	CentralityWeight float64 // Weight of distance-to-frame-center score
	SizeWeight       float64 // Weight of bounding-box size score
	ConfidenceWeight float64 // Weight of tracking confidence score
	SwitchMargin     float64 // A challenger must beat the primary by this much
}

// DefaultConfig returns the recommended configuration for face tracking.
func DefaultConfig() Config {
	return Config{
		// Association - matches typical face movement at 30 fps
		MaxMatchDistance: 100.0,
		TrackTimeout:     2 * time.Second,
		ConfidenceGain:   0.05,

		// Depth model - average human head is ~0.2m wide
		AssumedHeadWidth: 0.2,
		HorizontalFOV:    60.0,
		DepthMin:         0.3,
		DepthMax:         5.0,

		// Selection - centrality and size dominate, confidence breaks ties
		CentralityWeight: 0.4,
		SizeWeight:       0.4,
		ConfidenceWeight: 0.2,
		SwitchMargin:     0.1,
	}
}

// PatientConfig returns a configuration that holds onto targets longer:
// slower to expire tracks and harder to steal the primary.
func PatientConfig() Config {
	cfg := DefaultConfig()
	cfg.TrackTimeout = 4 * time.Second
	cfg.SwitchMargin = 0.2
	return cfg
}

// ResponsiveConfig returns a configuration that reacts quickly to scene
// changes at the cost of more primary switching.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.TrackTimeout = time.Second
	cfg.SwitchMargin = 0.05
	cfg.MaxMatchDistance = 150.0
	return cfg
}

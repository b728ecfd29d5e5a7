package param

import "github.com/nichesounds/algo-delay/dsp/core"

// Snapshot is the full parameter state the engine reads at block start.
// Delay times are in seconds; the normalized host value is used as-is.
type Snapshot struct {
	Bypass     bool
	LeftDelay  float64
	RightDelay float64
	Mix        float64
}

// DefaultSnapshot returns the registered defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		LeftDelay:  0.2,
		RightDelay: 0.2,
		Mix:        1,
	}
}

// Sanitized clamps every field to [0, 1]. Non-finite values fall back to 0.
func (s Snapshot) Sanitized() Snapshot {
	s.LeftDelay = core.Sanitize(s.LeftDelay, 0, 1, 0)
	s.RightDelay = core.Sanitize(s.RightDelay, 0, 1, 0)
	s.Mix = core.Sanitize(s.Mix, 0, 1, 0)
	return s
}

// Set applies a normalized host value to the field identified by id and
// reports whether id is known.
func (s *Snapshot) Set(id uint32, normalized float64) bool {
	switch id {
	case BypassID:
		s.Bypass = normalized > 0.5
	case LeftDelayID:
		s.LeftDelay = normalized
	case RightDelayID:
		s.RightDelay = normalized
	case MixID:
		s.Mix = normalized
	default:
		return false
	}
	return true
}

// Value returns the normalized value of the field identified by id.
func (s Snapshot) Value(id uint32) (float64, bool) {
	switch id {
	case BypassID:
		if s.Bypass {
			return 1, true
		}
		return 0, true
	case LeftDelayID:
		return s.LeftDelay, true
	case RightDelayID:
		return s.RightDelay, true
	case MixID:
		return s.Mix, true
	}
	return 0, false
}

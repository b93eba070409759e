package scene

import (
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
)

// GravityMapper turns a motion sample into a world gravity vector in m/s².
// The mapping is a plain linear scale with no filtering.
type GravityMapper struct {
	Source config.TiltSource
	Scale  float64
}

// NewGravityMapper builds a mapper from a tilt config.
func NewGravityMapper(cfg config.TiltConfig) GravityMapper {
	return GravityMapper{Source: cfg.Source, Scale: cfg.Scale}
}

// Map returns the gravity for a sample. ok is false when the sample does not
// carry the part this mapper reads or holds non-finite values; callers must
// then leave gravity as it was.
func (m GravityMapper) Map(s core.MotionSample) (Vec, bool) {
	if !s.Finite() {
		return Vec{}, false
	}
	switch m.Source {
	case config.TiltAttitude:
		if !s.HasAttitude {
			return Vec{}, false
		}
		return Vec{m.Scale * s.Attitude.Roll, m.Scale * s.Attitude.Pitch}, true
	case config.TiltGravity:
		if !s.HasGravity {
			return Vec{}, false
		}
		return Vec{m.Scale * s.Gravity.X, m.Scale * s.Gravity.Y}, true
	default:
		return Vec{}, false
	}
}

package pmesh

const (
	// DefaultSewDelta is the distance under which freshly projected UVs are
	// sewn back together by ProjectFacesAuto.
	DefaultSewDelta = 0.001
	// DefaultAlignErrorThreshold is the residual endpoint error in UV units
	// above which AutoStitch tries the opposite orientation.
	DefaultAlignErrorThreshold = 0.02
	// DefaultScaleTolerance bounds how far |scale|² may stray from 2 (identity
	// scale) before SetAutoUV writes the back-solved scale.
	DefaultScaleTolerance = 0.1
)

// Config holds the tolerances used by the UV algorithms. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	SewDelta            float64
	AlignErrorThreshold float64
	ScaleTolerance      float64
}

// DefaultConfig returns the default tolerances.
func DefaultConfig() Config {
	return Config{
		SewDelta:            DefaultSewDelta,
		AlignErrorThreshold: DefaultAlignErrorThreshold,
		ScaleTolerance:      DefaultScaleTolerance,
	}
}

// withDefaults replaces unset (non-positive) tolerances with defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SewDelta <= 0 {
		c.SewDelta = def.SewDelta
	}
	if c.AlignErrorThreshold <= 0 {
		c.AlignErrorThreshold = def.AlignErrorThreshold
	}
	if c.ScaleTolerance <= 0 {
		c.ScaleTolerance = def.ScaleTolerance
	}
	return c
}

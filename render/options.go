package render

// Config holds the loudness, panning and normalization settings of a
// Renderer.
type Config struct {
	// BaseAmplitude is the peak amplitude of a single harmonic at or above
	// the reference frequency.
	BaseAmplitude float64

	// Mixing N sequences attenuates each by max(1/N^ScalingExponent,
	// ScalingFloor).
	ScalingExponent float64
	ScalingFloor    float64

	// Per-step stereo shift between neighbouring sequences is
	// min(MinShift, MaxShift/(N-1)).
	MinShift float64
	MaxShift float64

	// After mixing several sequences, a peak above NormalizeThreshold
	// rescales the whole buffer so that the peak lands on NormalizeTarget.
	NormalizeThreshold float32
	NormalizeTarget    float32

	// Frequencies below ReferenceFrequency are boosted by
	// 1 + ln(ref/f)/ln(AmplificationFactor), at most MaxMultiplier.
	ReferenceFrequency  float64
	AmplificationFactor float64
	MaxMultiplier       float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		BaseAmplitude:       0.3,
		ScalingExponent:     0.7,
		ScalingFloor:        0.1,
		MinShift:            0.2,
		MaxShift:            0.9,
		NormalizeThreshold:  0.95,
		NormalizeTarget:     0.9,
		ReferenceFrequency:  880,
		AmplificationFactor: 2,
		MaxMultiplier:       3,
	}
}

func WithBaseAmplitude(amplitude float64) Option {
	return func(cfg *Config) {
		if amplitude > 0 {
			cfg.BaseAmplitude = amplitude
		}
	}
}

func WithScaling(exponent, floor float64) Option {
	return func(cfg *Config) {
		if exponent >= 0 {
			cfg.ScalingExponent = exponent
		}
		if floor >= 0 {
			cfg.ScalingFloor = floor
		}
	}
}

func WithStereoShift(minShift, maxShift float64) Option {
	return func(cfg *Config) {
		if minShift >= 0 && minShift < 1 {
			cfg.MinShift = minShift
		}
		if maxShift >= 0 && maxShift < 1 {
			cfg.MaxShift = maxShift
		}
	}
}

// WithNormalization sets the clip prevention; target should not exceed
// threshold.
func WithNormalization(threshold, target float32) Option {
	return func(cfg *Config) {
		if threshold > 0 {
			cfg.NormalizeThreshold = threshold
		}
		if target > 0 {
			cfg.NormalizeTarget = target
		}
	}
}

// WithCompensation sets the bass boost. A factor <= 1 or a max multiplier
// below 1 leaves the corresponding setting unchanged.
func WithCompensation(reference, factor, maxMultiplier float64) Option {
	return func(cfg *Config) {
		if reference > 0 {
			cfg.ReferenceFrequency = reference
		}
		if factor > 1 {
			cfg.AmplificationFactor = factor
		}
		if maxMultiplier >= 1 {
			cfg.MaxMultiplier = maxMultiplier
		}
	}
}

// WithConfig replaces all the settings.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

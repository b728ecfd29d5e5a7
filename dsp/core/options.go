package core

// DefaultScaleFactor maps a delay-time parameter value to a sample count.
// It is a fixed multiplier and does not follow the stream sample rate.
const DefaultScaleFactor = 100000

// ProcessorConfig defines the delay engine settings.
type ProcessorConfig struct {
	// ScaleFactor converts delay seconds into a target length in samples.
	ScaleFactor float64
	// Capacity is the number of samples reserved per channel at activation.
	Capacity int
	// BlockSize is the expected maximum host block size.
	BlockSize  int
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults that cover the whole delay
// parameter range without reallocating on the audio path.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ScaleFactor: DefaultScaleFactor,
		Capacity:    DefaultScaleFactor + 1,
		BlockSize:   1024,
		SampleRate:  48000,
	}
}

// WithScaleFactor sets the seconds-to-samples multiplier.
func WithScaleFactor(scale float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if scale > 0 && IsFinite(scale) {
			cfg.ScaleFactor = scale
		}
	}
}

// WithCapacity sets the per-channel sample reservation.
func WithCapacity(capacity int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if capacity > 0 {
			cfg.Capacity = capacity
		}
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

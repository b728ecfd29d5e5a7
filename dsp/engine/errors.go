package engine

import "errors"

// Errors returned by the engine.
var (
	ErrUnsupportedSampleSize = errors.New("engine: unsupported sample size")
	ErrChannelCount          = errors.New("engine: block must have exactly 2 channels")
	ErrBlockShape            = errors.New("engine: channel shorter than block")
	ErrInactive              = errors.New("engine: not active")
)

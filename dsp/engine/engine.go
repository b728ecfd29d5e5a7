package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/nichesounds/algo-delay/dsp/core"
	"github.com/nichesounds/algo-delay/dsp/delay"
	"github.com/nichesounds/algo-delay/dsp/param"
)

// Channel indices.
const (
	Left        = 0
	Right       = 1
	NumChannels = 2
)

// SampleSize is the symbolic sample width negotiated with the host.
type SampleSize int32

// Sample sizes known to hosts.
const (
	Sample32 SampleSize = 0
	Sample64 SampleSize = 1
)

func (s SampleSize) String() string {
	switch s {
	case Sample32:
		return "32-bit float"
	case Sample64:
		return "64-bit float"
	}
	return fmt.Sprintf("SampleSize(%d)", int32(s))
}

// CanProcessSampleSize reports whether blocks of the given width are
// supported. Only 32-bit float samples are.
func CanProcessSampleSize(s SampleSize) bool {
	return s == Sample32
}

// CheckSampleSize returns ErrUnsupportedSampleSize for anything but 32-bit.
func CheckSampleSize(s SampleSize) error {
	if !CanProcessSampleSize(s) {
		return fmt.Errorf("%w: %v", ErrUnsupportedSampleSize, s)
	}
	return nil
}

// TargetLength converts a delay time to a history length in samples.
func TargetLength(seconds, scale float64) int {
	n := math.Round(seconds * scale)
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Engine is a two-channel delay line. It is either inactive, holding no
// history, or active with one FIFO per channel. An Engine is driven from a
// single goroutine.
type Engine struct {
	cfg     core.ProcessorConfig
	params  param.Snapshot
	mix     float32
	targets [NumChannels]int
	lines   [NumChannels]*delay.FIFO
	active  bool
}

// New returns an inactive engine holding the default parameters.
func New(opts ...core.ProcessorOption) *Engine {
	e := &Engine{cfg: core.ApplyProcessorOptions(opts...)}
	e.install(param.DefaultSnapshot())
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() core.ProcessorConfig {
	return e.cfg
}

// Activate allocates empty histories for both channels. On an active engine
// it empties the existing histories instead of allocating new ones.
func (e *Engine) Activate() {
	capacity := e.cfg.Capacity
	if need := e.MaxTargetLength() + 1; need > capacity {
		capacity = need
	}
	for ch := range e.lines {
		if e.lines[ch] != nil {
			e.lines[ch].Reset()
			e.lines[ch].Reserve(capacity)
			continue
		}
		// capacity is never negative, so NewFIFO cannot fail here.
		e.lines[ch], _ = delay.NewFIFO(capacity)
	}
	e.active = true
}

// Deactivate releases both histories. It is safe on an inactive engine.
func (e *Engine) Deactivate() {
	for ch := range e.lines {
		e.lines[ch] = nil
	}
	e.active = false
}

// Active reports whether the engine holds histories.
func (e *Engine) Active() bool {
	return e.active
}

// SetParams installs a new parameter snapshot. Target lengths are
// recomputed only for channels whose delay time changed; histories are
// trimmed lazily while processing.
func (e *Engine) SetParams(s param.Snapshot) {
	s = s.Sanitized()
	if s.LeftDelay != e.params.LeftDelay {
		e.targets[Left] = TargetLength(s.LeftDelay, e.cfg.ScaleFactor)
	}
	if s.RightDelay != e.params.RightDelay {
		e.targets[Right] = TargetLength(s.RightDelay, e.cfg.ScaleFactor)
	}
	e.params = s
	e.mix = float32(s.Mix)
}

func (e *Engine) install(s param.Snapshot) {
	s = s.Sanitized()
	e.targets[Left] = TargetLength(s.LeftDelay, e.cfg.ScaleFactor)
	e.targets[Right] = TargetLength(s.RightDelay, e.cfg.ScaleFactor)
	e.params = s
	e.mix = float32(s.Mix)
}

// Params returns the snapshot in effect.
func (e *Engine) Params() param.Snapshot {
	return e.params
}

// TargetLength returns the history length the channel converges to.
func (e *Engine) TargetLength(ch int) int {
	return e.targets[ch]
}

// MaxTargetLength returns the largest target over both channels.
func (e *Engine) MaxTargetLength() int {
	return max(e.targets[Left], e.targets[Right])
}

// BufferLen returns the number of samples held for the channel, or 0 when
// the engine is inactive.
func (e *Engine) BufferLen(ch int) int {
	if e.lines[ch] == nil {
		return 0
	}
	return e.lines[ch].Len()
}

// RealizedDelay returns the delay the channel produces at the configured
// sample rate, which differs from the parameter value unless the scale
// factor equals the sample rate.
func (e *Engine) RealizedDelay(ch int) time.Duration {
	return time.Duration(math.Round(float64(e.targets[ch]) * float64(time.Second) / e.cfg.SampleRate))
}

// ProcessSample runs one sample of channel ch through the delay line. It
// panics if the engine is inactive.
func (e *Engine) ProcessSample(ch int, x float32) float32 {
	line := e.lines[ch]
	if line == nil {
		panic("engine: ProcessSample on inactive engine")
	}

	line.Push(x)
	n := e.targets[ch]
	if line.Len()-1 < n {
		return x
	}

	line.TrimToAtMost(n)
	d := line.PopFront()
	if e.params.Bypass {
		return x
	}
	return d*e.mix + x*(1-e.mix)
}

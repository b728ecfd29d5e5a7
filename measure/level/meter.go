// Package level measures per-block output levels of a multichannel stream.
package level

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/nichesounds/algo-delay/dsp/core"
)

// Meter keeps the RMS and peak of the most recent block per channel.
// Measure runs on the audio goroutine; RMS and Peak may be read from any
// goroutine.
type Meter struct {
	scratch []float64
	squares []float64
	rms     []atomic.Uint64
	peak    []atomic.Uint64
}

// NewMeter returns a meter for channels channels with scratch space for
// blocks of up to blockSize samples.
func NewMeter(channels, blockSize int) *Meter {
	if channels < 0 {
		channels = 0
	}
	if blockSize < 0 {
		blockSize = 0
	}
	return &Meter{
		scratch: make([]float64, 0, blockSize),
		squares: make([]float64, 0, blockSize),
		rms:     make([]atomic.Uint64, channels),
		peak:    make([]atomic.Uint64, channels),
	}
}

// Channels returns the number of metered channels.
func (m *Meter) Channels() int {
	return len(m.rms)
}

// Measure updates the levels from the first n samples of each channel.
// Channels beyond the meter's count are ignored.
func (m *Meter) Measure(channels [][]float32, n int) {
	if n <= 0 {
		return
	}
	for ch := 0; ch < len(channels) && ch < len(m.rms); ch++ {
		m.scratch = core.Widen(m.scratch, channels[ch][:n])
		m.squares = core.EnsureLen(m.squares, n)
		vecmath.MulBlock(m.squares, m.scratch, m.scratch)

		sum := 0.0
		peak := 0.0
		for i, sq := range m.squares {
			sum += sq
			if a := math.Abs(m.scratch[i]); a > peak {
				peak = a
			}
		}
		m.rms[ch].Store(math.Float64bits(math.Sqrt(sum / float64(n))))
		m.peak[ch].Store(math.Float64bits(peak))
	}
}

// RMS returns the linear RMS level of channel ch.
func (m *Meter) RMS(ch int) float64 {
	return math.Float64frombits(m.rms[ch].Load())
}

// Peak returns the absolute peak of channel ch.
func (m *Meter) Peak(ch int) float64 {
	return math.Float64frombits(m.peak[ch].Load())
}

// DB converts a linear level to dBFS. Zero maps to -Inf.
func DB(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate float64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * float32(math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp returns 1, 2, ..., length so every sample is distinguishable.
func Ramp(length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

// Chunks splits signal into consecutive blocks of at most size samples.
func Chunks(signal []float32, size int) [][]float32 {
	var out [][]float32
	for len(signal) > 0 {
		n := min(size, len(signal))
		out = append(out, signal[:n])
		signal = signal[n:]
	}
	return out
}

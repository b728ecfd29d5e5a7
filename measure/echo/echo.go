// Package echo estimates the delay between a dry signal and a delayed copy.
//
// Estimate uses the phase transform (GCC-PHAT): the cross-spectrum of the
// two signals is whitened to unit magnitude before the inverse transform,
// which leaves a sharp peak at the lag of the echo regardless of the
// signal's spectral colour.
package echo

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Estimate.
var (
	ErrEmptyInput = errors.New("echo: empty input")
	ErrLagRange   = errors.New("echo: max lag out of range")
)

const whitenFloor = 1e-12

// Result is the outcome of an estimate.
type Result struct {
	// Lag is the delay of wet relative to dry, in samples.
	Lag int
	// Confidence is the peak height relative to the sum over all searched lags.
	Confidence float64
}

// Estimate returns the lag in [0, maxLag] at which wet best matches dry.
func Estimate(dry, wet []float32, maxLag int) (Result, error) {
	if len(dry) == 0 || len(wet) == 0 {
		return Result{}, ErrEmptyInput
	}
	if maxLag < 0 || maxLag >= len(wet) {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d)", ErrLagRange, maxLag, len(wet))
	}

	fftSize := nextPowerOf2(len(dry) + len(wet) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("echo: failed to create FFT plan: %w", err)
	}

	dryFreq, err := forward(plan, dry, fftSize)
	if err != nil {
		return Result{}, err
	}
	wetFreq, err := forward(plan, wet, fftSize)
	if err != nil {
		return Result{}, err
	}

	re := make([]float64, fftSize)
	im := make([]float64, fftSize)
	for i := range wetFreq {
		c := wetFreq[i] * complex(real(dryFreq[i]), -imag(dryFreq[i]))
		re[i], im[i] = real(c), imag(c)
	}

	mag := make([]float64, fftSize)
	vecmath.Magnitude(mag, re, im)

	cross := make([]complex128, fftSize)
	for i := range cross {
		m := mag[i]
		if m < whitenFloor {
			continue
		}
		cross[i] = complex(re[i]/m, im[i]/m)
	}

	corr := make([]complex128, fftSize)
	if err := plan.Inverse(corr, cross); err != nil {
		return Result{}, fmt.Errorf("echo: inverse FFT failed: %w", err)
	}

	best := 0
	total := 0.0
	for lag := 0; lag <= maxLag; lag++ {
		v := real(corr[lag])
		if v > 0 {
			total += v
		}
		if v > real(corr[best]) {
			best = lag
		}
	}

	res := Result{Lag: best}
	if total > 0 {
		res.Confidence = real(corr[best]) / total
	}
	return res, nil
}

func forward(plan *algofft.Plan[complex128], x []float32, size int) ([]complex128, error) {
	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(float64(v), 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("echo: forward FFT failed: %w", err)
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

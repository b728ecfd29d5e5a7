package echo

import (
	"errors"
	"testing"

	"github.com/nichesounds/algo-delay/internal/testutil"
)

func shifted(x []float32, lag int) []float32 {
	out := make([]float32, len(x))
	copy(out[lag:], x)
	return out
}

func TestEstimateShiftedNoise(t *testing.T) {
	dry := testutil.DeterministicNoise(11, 1, 2048)
	for _, lag := range []int{0, 1, 17, 300} {
		res, err := Estimate(dry, shifted(dry, lag), 512)
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		if res.Lag != lag {
			t.Fatalf("Lag = %d, want %d", res.Lag, lag)
		}
		if res.Confidence <= 0 || res.Confidence > 1 {
			t.Fatalf("Confidence = %v, want (0, 1]", res.Confidence)
		}
	}
}

func TestEstimateScaledEcho(t *testing.T) {
	dry := testutil.DeterministicNoise(5, 0.5, 4096)
	wet := shifted(dry, 64)
	for i := range wet {
		wet[i] *= 0.25
	}
	res, err := Estimate(dry, wet, 128)
	if err != nil {
		t.Fatal(err)
	}
	if res.Lag != 64 {
		t.Fatalf("Lag = %d, want 64", res.Lag)
	}
}

func TestEstimateErrors(t *testing.T) {
	if _, err := Estimate(nil, []float32{1}, 0); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if _, err := Estimate([]float32{1}, nil, 0); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if _, err := Estimate([]float32{1, 2}, []float32{1, 2}, 2); !errors.Is(err, ErrLagRange) {
		t.Fatalf("err = %v, want ErrLagRange", err)
	}
	if _, err := Estimate([]float32{1, 2}, []float32{1, 2}, -1); !errors.Is(err, ErrLagRange) {
		t.Fatalf("err = %v, want ErrLagRange", err)
	}
}

func TestNextPowerOf2(t *testing.T) {
	for n, want := range map[int]int{1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024} {
		if got := nextPowerOf2(n); got != want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", n, got, want)
		}
	}
}

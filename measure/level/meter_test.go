package level

import (
	"math"
	"testing"
)

func TestMeasureRMSAndPeak(t *testing.T) {
	m := NewMeter(2, 4)
	m.Measure([][]float32{
		{1, -1, 1, -1},
		{0.5, 0, 0, -0.25},
	}, 4)

	if got := m.RMS(0); got != 1 {
		t.Fatalf("RMS(0) = %v, want 1", got)
	}
	if got := m.Peak(0); got != 1 {
		t.Fatalf("Peak(0) = %v, want 1", got)
	}

	wantRMS := math.Sqrt((0.25 + 0.0625) / 4)
	if got := m.RMS(1); math.Abs(got-wantRMS) > 1e-12 {
		t.Fatalf("RMS(1) = %v, want %v", got, wantRMS)
	}
	if got := m.Peak(1); got != 0.5 {
		t.Fatalf("Peak(1) = %v, want 0.5", got)
	}
}

func TestMeasurePartialBlockAndExtraChannels(t *testing.T) {
	m := NewMeter(1, 2)
	m.Measure([][]float32{{2, 2, 9, 9, 9}, {7}}, 2)
	if got := m.RMS(0); got != 2 {
		t.Fatalf("RMS(0) = %v, want 2", got)
	}
	if m.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", m.Channels())
	}

	m.Measure(nil, 0)
	if got := m.Peak(0); got != 2 {
		t.Fatalf("empty Measure changed Peak to %v", got)
	}
}

func TestMeasureDoesNotAllocate(t *testing.T) {
	m := NewMeter(2, 256)
	block := [][]float32{make([]float32, 256), make([]float32, 256)}
	allocs := testing.AllocsPerRun(20, func() {
		m.Measure(block, 256)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestDB(t *testing.T) {
	if got := DB(1); got != 0 {
		t.Fatalf("DB(1) = %v, want 0", got)
	}
	if got := DB(0.1); math.Abs(got+20) > 1e-12 {
		t.Fatalf("DB(0.1) = %v, want -20", got)
	}
	if !math.IsInf(DB(0), -1) {
		t.Fatal("DB(0) should be -Inf")
	}
}

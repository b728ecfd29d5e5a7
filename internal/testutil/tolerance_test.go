package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float32{1, 2, 3}, []float32{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float32{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float32{1, 2}, []float32{1.0000001, 2}, 1e-6)
	RequireSliceEqual(t, []float32{0, -1}, []float32{0, -1})
}

package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrows(t *testing.T) {
	out := EnsureLen(make([]float64, 2), 5)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if out := EnsureLen(out, 0); len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestWiden(t *testing.T) {
	scratch := make([]float64, 0, 4)
	got := Widen(scratch, []float32{0.5, -1, 0.25})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []float64{0.5, -1, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if cap(got) != 4 {
		t.Fatalf("cap = %d, want reuse of 4", cap(got))
	}
}

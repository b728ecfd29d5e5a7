package param

import (
	"math"
	"sync"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	st := NewStore(DefaultSnapshot())
	if st.Seq() != 1 {
		t.Fatalf("Seq() = %d, want 1", st.Seq())
	}

	want := Snapshot{Bypass: true, LeftDelay: 0.01, RightDelay: 0.03, Mix: 0.4}
	st.Store(want)
	got, seq := st.Load()
	if got != want {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
	if seq != 2 {
		t.Fatalf("seq = %d, want 2", seq)
	}
}

func TestStoreSanitizes(t *testing.T) {
	st := NewStore(Snapshot{LeftDelay: -1, RightDelay: 4, Mix: math.NaN()})
	got, _ := st.Load()
	want := Snapshot{LeftDelay: 0, RightDelay: 1, Mix: 0}
	if got != want {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
}

func TestStoreSetNormalized(t *testing.T) {
	st := NewStore(DefaultSnapshot())

	if !st.SetNormalized(MixID, 0.25) {
		t.Fatal("SetNormalized(MixID) = false")
	}
	if !st.SetNormalized(BypassID, 0.9) {
		t.Fatal("SetNormalized(BypassID) = false")
	}
	if st.SetNormalized(12345, 1) {
		t.Fatal("SetNormalized(unknown) = true")
	}

	got, seq := st.Load()
	want := DefaultSnapshot()
	want.Mix = 0.25
	want.Bypass = true
	if got != want {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
	if seq != 3 {
		t.Fatalf("seq = %d, want 3", seq)
	}
}

func TestStoreConcurrentReaderSeesWrittenValues(t *testing.T) {
	st := NewStore(DefaultSnapshot())
	allowed := map[float64]bool{0.2: true, 0.5: true, 0.75: true}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				st.SetNormalized(LeftDelayID, 0.5)
			} else {
				st.SetNormalized(LeftDelayID, 0.75)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		s, _ := st.Load()
		if !allowed[s.LeftDelay] {
			t.Fatalf("reader saw %v", s.LeftDelay)
		}
	}
	wg.Wait()
}

func TestStoreStamps(t *testing.T) {
	st := NewStore(DefaultSnapshot())
	if got := st.Stamp(); got != (Stamp{1, 1, 1, 1}) {
		t.Fatalf("Stamp() = %v, want [1 1 1 1]", got)
	}

	st.SetNormalized(MixID, 0.3)
	st.SetNormalized(MixID, 0.4)
	st.SetNormalized(BypassID, 1)
	if got := st.Stamp(); got != (Stamp{2, 1, 1, 3}) {
		t.Fatalf("Stamp() = %v, want [2 1 1 3]", got)
	}

	st.Store(DefaultSnapshot())
	if got := st.Stamp(); got != (Stamp{3, 2, 2, 4}) {
		t.Fatalf("Stamp() = %v, want [3 2 2 4]", got)
	}
}

func TestStoreChangedAppliesOnlyWrittenFields(t *testing.T) {
	st := NewStore(DefaultSnapshot())
	since := st.Stamp()

	st.SetNormalized(MixID, 0.3)

	base := Snapshot{LeftDelay: 0.05, RightDelay: 0.07, Mix: 1}
	got, stamp, seq := st.Changed(base, since)
	want := Snapshot{LeftDelay: 0.05, RightDelay: 0.07, Mix: 0.3}
	if got != want {
		t.Fatalf("Changed() = %#v, want %#v", got, want)
	}
	if seq != 2 {
		t.Fatalf("seq = %d, want 2", seq)
	}

	got, _, _ = st.Changed(base, stamp)
	if got != base {
		t.Fatalf("Changed() with current stamp = %#v, want %#v", got, base)
	}
}

func TestMerge(t *testing.T) {
	base := Snapshot{LeftDelay: 0.1, RightDelay: 0.2, Mix: 0.3}
	s := Snapshot{Bypass: true, LeftDelay: 0.4, RightDelay: 0.5, Mix: 0.6}

	got := Merge(base, s, Stamp{2, 1, 3, 1}, Stamp{1, 1, 1, 1})
	want := Snapshot{Bypass: true, LeftDelay: 0.1, RightDelay: 0.5, Mix: 0.3}
	if got != want {
		t.Fatalf("Merge() = %#v, want %#v", got, want)
	}
	if ids := FieldIDs(); ids != [NumFields]uint32{BypassID, LeftDelayID, RightDelayID, MixID} {
		t.Fatalf("FieldIDs() = %v", ids)
	}
}

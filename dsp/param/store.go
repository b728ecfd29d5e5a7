package param

import (
	"math"
	"sync/atomic"
)

// NumFields is the number of parameters a Store holds.
const NumFields = 4

var fieldIDs = [NumFields]uint32{BypassID, LeftDelayID, RightDelayID, MixID}

// FieldIDs returns the parameter IDs in Stamp order.
func FieldIDs() [NumFields]uint32 {
	return fieldIDs
}

func fieldIndex(id uint32) int {
	for i, fid := range fieldIDs {
		if fid == id {
			return i
		}
	}
	return -1
}

// Stamp holds the write count of every field, in FieldIDs order.
type Stamp [NumFields]uint64

// Store hands parameter values from one writing goroutine to one reading
// goroutine. Each field is an independent atomic word, so neither side
// blocks; a reader racing a Store may see some fields updated and others
// not, and picks up the rest on its next Load.
//
// Every field carries its own write count so a reader can tell which
// parameters were written since it last looked. Writers store the value,
// then its count, then the global sequence; readers that load in the
// opposite order never record a count newer than the value they hold.
type Store struct {
	bypass atomic.Uint32
	left   atomic.Uint64
	right  atomic.Uint64
	mix    atomic.Uint64
	stamps [NumFields]atomic.Uint64
	seq    atomic.Uint64
}

// NewStore returns a Store holding s.
func NewStore(s Snapshot) *Store {
	st := &Store{}
	st.Store(s)
	return st
}

// Load returns the current values and the write sequence they belong to.
func (st *Store) Load() (Snapshot, uint64) {
	seq := st.seq.Load()
	return Snapshot{
		Bypass:     st.bypass.Load() != 0,
		LeftDelay:  math.Float64frombits(st.left.Load()),
		RightDelay: math.Float64frombits(st.right.Load()),
		Mix:        math.Float64frombits(st.mix.Load()),
	}, seq
}

// Stamp returns the write count of every field.
func (st *Store) Stamp() Stamp {
	var s Stamp
	for i := range st.stamps {
		s[i] = st.stamps[i].Load()
	}
	return s
}

// Changed loads the fields written since the counts in since and applies
// them to base. It returns the merged snapshot, the counts it observed and
// the global sequence.
func (st *Store) Changed(base Snapshot, since Stamp) (Snapshot, Stamp, uint64) {
	seq := st.seq.Load()
	stamp := st.Stamp()
	s, _ := st.Load()
	return Merge(base, s, stamp, since), stamp, seq
}

// Seq returns the number of completed writes.
func (st *Store) Seq() uint64 {
	return st.seq.Load()
}

// Store replaces every field with the values of s.
func (st *Store) Store(s Snapshot) {
	s = s.Sanitized()

	var b uint32
	if s.Bypass {
		b = 1
	}
	st.bypass.Store(b)
	st.left.Store(math.Float64bits(s.LeftDelay))
	st.right.Store(math.Float64bits(s.RightDelay))
	st.mix.Store(math.Float64bits(s.Mix))
	for i := range st.stamps {
		st.stamps[i].Add(1)
	}
	st.seq.Add(1)
}

// SetNormalized updates a single field and reports whether id is known.
func (st *Store) SetNormalized(id uint32, normalized float64) bool {
	s, _ := st.Load()
	if !s.Set(id, normalized) {
		return false
	}
	s = s.Sanitized()

	switch id {
	case BypassID:
		var b uint32
		if s.Bypass {
			b = 1
		}
		st.bypass.Store(b)
	case LeftDelayID:
		st.left.Store(math.Float64bits(s.LeftDelay))
	case RightDelayID:
		st.right.Store(math.Float64bits(s.RightDelay))
	case MixID:
		st.mix.Store(math.Float64bits(s.Mix))
	}
	st.stamps[fieldIndex(id)].Add(1)
	st.seq.Add(1)
	return true
}

// Merge copies into base every field of s whose count in now differs from
// since.
func Merge(base, s Snapshot, now, since Stamp) Snapshot {
	for i, id := range fieldIDs {
		if now[i] == since[i] {
			continue
		}
		v, _ := s.Value(id)
		base.Set(id, v)
	}
	return base
}

package plugin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/nichesounds/algo-delay/dsp/param"
)

const (
	stateSize       = 16
	legacyStateSize = 12
)

// ErrShortState is returned when a state stream ends inside a required field.
var ErrShortState = errors.New("plugin: short state stream")

var stateFields = [...]string{"bypass", "leftDelay", "rightDelay", "mix"}

// WriteState writes s as bypass:int32, left:float32, right:float32,
// mix:float32, little-endian.
func WriteState(w io.Writer, s param.Snapshot) error {
	var buf [stateSize]byte
	var bypass int32
	if s.Bypass {
		bypass = 1
	}
	binary.LittleEndian.PutUint32(buf[0:], uint32(bypass))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(s.LeftDelay)))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(s.RightDelay)))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(float32(s.Mix)))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("plugin: write state: %w", err)
	}
	return nil
}

// ReadState decodes a state written by WriteState. A stream holding only the
// three float fields predates the bypass field and decodes with bypass off.
// Any other short stream fails with ErrShortState.
func ReadState(r io.Reader) (param.Snapshot, error) {
	var buf [stateSize]byte
	n, err := io.ReadFull(r, buf[:])
	switch {
	case err == nil:
		return decodeState(buf[4:], binary.LittleEndian.Uint32(buf[0:]) != 0), nil
	case n == legacyStateSize && errors.Is(err, io.ErrUnexpectedEOF):
		return decodeState(buf[:legacyStateSize], false), nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// An empty stream lacks the first required field; bypass is
		// optional only as a whole.
		field := stateFields[n/4]
		if n == 0 {
			field = stateFields[1]
		}
		return param.Snapshot{}, fmt.Errorf("%w: %s missing after %d bytes", ErrShortState, field, n)
	default:
		return param.Snapshot{}, fmt.Errorf("plugin: read state: %w", err)
	}
}

func decodeState(floats []byte, bypass bool) param.Snapshot {
	f := func(i int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(floats[i*4:])))
	}
	return param.Snapshot{
		Bypass:     bypass,
		LeftDelay:  f(0),
		RightDelay: f(1),
		Mix:        f(2),
	}
}

// Controller receives normalized parameter values, as an edit controller
// does when the host hands it the processor state.
type Controller interface {
	SetNormalized(id uint32, normalized float64) bool
}

// SyncController reads a processor state and forwards every field to c.
// Nothing is forwarded when the stream is malformed.
func SyncController(r io.Reader, c Controller) error {
	s, err := ReadState(r)
	if err != nil {
		return err
	}
	for _, info := range param.Infos() {
		v, _ := s.Value(info.ID)
		c.SetNormalized(info.ID, v)
	}
	return nil
}

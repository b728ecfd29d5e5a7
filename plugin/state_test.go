package plugin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/nichesounds/algo-delay/dsp/param"
)

func TestStateRoundTrip(t *testing.T) {
	want := param.Snapshot{Bypass: true, LeftDelay: 0.25, RightDelay: 0.5, Mix: 0.75}
	var buf bytes.Buffer
	if err := WriteState(&buf, want); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 16 {
		t.Fatalf("state size = %d, want 16", buf.Len())
	}
	got, err := ReadState(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("ReadState = %#v, want %#v", got, want)
	}
}

func TestStateLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteState(&buf, param.Snapshot{Bypass: true, LeftDelay: 0.5, RightDelay: 0.25, Mix: 1}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if v := int32(binary.LittleEndian.Uint32(b[0:])); v != 1 {
		t.Fatalf("bypass = %d, want 1", v)
	}
	for i, want := range []float32{0.5, 0.25, 1} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[4+4*i:]))
		if got != want {
			t.Fatalf("field %d = %v, want %v", i+1, got, want)
		}
	}
}

func TestReadStateLegacyWithoutBypass(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []float32{0.125, 0.5, 0.25} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	got, err := ReadState(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := param.Snapshot{LeftDelay: 0.125, RightDelay: 0.5, Mix: 0.25}
	if got != want {
		t.Fatalf("ReadState = %#v, want %#v", got, want)
	}
}

func TestReadStateShort(t *testing.T) {
	tests := []struct {
		n     int
		field string
	}{
		{0, "leftDelay"},
		{1, "bypass"},
		{3, "bypass"},
		{4, "leftDelay"},
		{8, "rightDelay"},
		{11, "rightDelay"},
		{13, "mix"},
		{15, "mix"},
	}

	for _, tt := range tests {
		_, err := ReadState(bytes.NewReader(make([]byte, tt.n)))
		if !errors.Is(err, ErrShortState) {
			t.Fatalf("n=%d: err = %v, want ErrShortState", tt.n, err)
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Fatalf("n=%d: err = %v, want mention of %s", tt.n, err, tt.field)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestStateIOErrors(t *testing.T) {
	if _, err := ReadState(failingReader{}); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("ReadState err = %v, want ErrClosedPipe", err)
	}
	if err := WriteState(failingWriter{}, param.DefaultSnapshot()); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("WriteState err = %v, want ErrClosedPipe", err)
	}
}

func TestSyncController(t *testing.T) {
	var buf bytes.Buffer
	want := param.Snapshot{Bypass: true, LeftDelay: 0.5, RightDelay: 0.125, Mix: 0.25}
	_ = WriteState(&buf, want)

	st := param.NewStore(param.DefaultSnapshot())
	if err := SyncController(&buf, st); err != nil {
		t.Fatal(err)
	}
	got, _ := st.Load()
	if got != want {
		t.Fatalf("controller = %#v, want %#v", got, want)
	}

	before := st.Seq()
	if err := SyncController(bytes.NewReader([]byte{1, 2}), st); !errors.Is(err, ErrShortState) {
		t.Fatalf("err = %v, want ErrShortState", err)
	}
	if st.Seq() != before {
		t.Fatal("malformed state reached the controller")
	}
}

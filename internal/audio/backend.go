// Package audio runs a block processor inside a live duplex audio stream.
package audio

// Callback receives one non-interleaved buffer of input and fills the
// matching output buffer.
type Callback func(in, out [][]float32)

// Backend opens duplex streams. It exists so the host can be tested without
// audio hardware.
type Backend interface {
	Initialize() error
	Terminate() error
	// OpenDuplex opens a stream with channels inputs and outputs whose
	// callback is invoked with framesPerBuffer frames.
	OpenDuplex(sampleRate float64, channels, framesPerBuffer int, cb Callback) (Stream, error)
}

// Stream is an open audio stream.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

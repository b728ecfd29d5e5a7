package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioBackend opens streams on the default PortAudio devices.
type PortAudioBackend struct {
	initialized bool
}

// NewPortAudioBackend returns an uninitialized backend.
func NewPortAudioBackend() *PortAudioBackend {
	return &PortAudioBackend{}
}

// Initialize initializes the PortAudio library.
func (p *PortAudioBackend) Initialize() error {
	if p.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	p.initialized = true
	return nil
}

// Terminate releases the PortAudio library.
func (p *PortAudioBackend) Terminate() error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	return portaudio.Terminate()
}

// OpenDuplex opens a callback stream on the default input and output
// devices.
func (p *PortAudioBackend) OpenDuplex(sampleRate float64, channels, framesPerBuffer int, cb Callback) (Stream, error) {
	if !p.initialized {
		return nil, fmt.Errorf("PortAudio not initialized")
	}

	stream, err := portaudio.OpenDefaultStream(channels, channels, sampleRate, framesPerBuffer,
		func(in, out [][]float32) { cb(in, out) })
	if err != nil {
		return nil, fmt.Errorf("failed to open duplex stream: %w", err)
	}
	return stream, nil
}

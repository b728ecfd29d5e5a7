// Package wavio reads and writes PCM WAV files as per-channel float32
// sample slices.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by the decoder and encoder.
var (
	ErrInvalidFile = errors.New("wavio: invalid WAV file")
	ErrFormat      = errors.New("wavio: unsupported sample format")
	ErrChannels    = errors.New("wavio: unsupported channel layout")
)

const pcmFormat = 1

// Clip is decoded audio, one slice per channel, samples in [-1, 1].
type Clip struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Stereo returns c with two channels. Mono is duplicated; stereo is
// returned as is.
func (c *Clip) Stereo() (*Clip, error) {
	switch len(c.Channels) {
	case 2:
		return c, nil
	case 1:
		right := make([]float32, len(c.Channels[0]))
		copy(right, c.Channels[0])
		return &Clip{SampleRate: c.SampleRate, Channels: [][]float32{c.Channels[0], right}}, nil
	default:
		return nil, fmt.Errorf("%w: %d channels", ErrChannels, len(c.Channels))
	}
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Read decodes integer PCM WAV data from r.
func Read(r io.ReadSeeker) (*Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}
	if decoder.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrFormat, decoder.WavAudioFormat)
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth < 16 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d-bit", ErrFormat, bitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	nchannels := buf.Format.NumChannels
	if nchannels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannels, nchannels)
	}
	nframes := len(buf.Data) / nchannels
	factor := math.Pow(2, float64(bitDepth-1))

	clip := &Clip{
		SampleRate: buf.Format.SampleRate,
		Channels:   make([][]float32, nchannels),
	}
	for ch := range clip.Channels {
		clip.Channels[ch] = make([]float32, nframes)
	}
	for i := 0; i < nframes*nchannels; i++ {
		clip.Channels[i%nchannels][i/nchannels] = float32(float64(buf.Data[i]) / factor)
	}
	return clip, nil
}

// WriteFile encodes c to path as bitDepth-bit PCM.
func WriteFile(path string, c *Clip, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, c, bitDepth); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write encodes c to w as bitDepth-bit PCM. Samples outside [-1, 1] are
// clipped.
func Write(w io.WriteSeeker, c *Clip, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d-bit", ErrFormat, bitDepth)
	}
	nchannels := len(c.Channels)
	if nchannels == 0 {
		return fmt.Errorf("%w: no channels", ErrChannels)
	}
	nframes := c.Frames()
	for ch, samples := range c.Channels {
		if len(samples) != nframes {
			return fmt.Errorf("%w: channel %d has %d of %d frames", ErrChannels, ch, len(samples), nframes)
		}
	}

	peak := math.Pow(2, float64(bitDepth-1)) - 1
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  c.SampleRate,
		},
		Data:           make([]int, nframes*nchannels),
		SourceBitDepth: bitDepth,
	}
	for i := 0; i < nframes; i++ {
		for ch, samples := range c.Channels {
			v := math.Max(-1, math.Min(1, float64(samples[i])))
			buf.Data[i*nchannels+ch] = int(math.Round(v * peak))
		}
	}

	enc := wav.NewEncoder(w, c.SampleRate, bitDepth, nchannels, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	return enc.Close()
}

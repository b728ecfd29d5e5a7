package engine

import (
	"fmt"

	"github.com/nichesounds/algo-delay/dsp/param"
)

// Block is a run of NumSamples samples for each channel.
type Block struct {
	NumSamples int
	Channels   [][]float32
}

// NewBlock allocates a stereo block of n samples.
func NewBlock(n int) Block {
	return Block{
		NumSamples: n,
		Channels:   [][]float32{make([]float32, n), make([]float32, n)},
	}
}

func (b Block) validate() error {
	if len(b.Channels) != NumChannels {
		return fmt.Errorf("%w: got %d", ErrChannelCount, len(b.Channels))
	}
	if b.NumSamples < 0 {
		return fmt.Errorf("%w: negative sample count %d", ErrBlockShape, b.NumSamples)
	}
	for ch, samples := range b.Channels {
		if len(samples) < b.NumSamples {
			return fmt.Errorf("%w: channel %d has %d of %d samples",
				ErrBlockShape, ch, len(samples), b.NumSamples)
		}
	}
	return nil
}

func (e *Engine) check(in, out Block) error {
	if !e.active {
		return ErrInactive
	}
	if err := in.validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := out.validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if in.NumSamples != out.NumSamples {
		return fmt.Errorf("%w: input has %d samples, output %d",
			ErrBlockShape, in.NumSamples, out.NumSamples)
	}
	return nil
}

// ProcessBlock runs every channel of in through its delay line into out
// using the parameters in effect. in and out may share storage.
func (e *Engine) ProcessBlock(in, out Block) error {
	if err := e.check(in, out); err != nil {
		return err
	}
	e.process(in, out, 0, in.NumSamples)
	return nil
}

// ProcessChanges applies the block's parameter changes at their sample
// offsets, processing each run between changes with the values in effect.
// Afterwards the engine holds the last value of every queue.
func (e *Engine) ProcessChanges(in, out Block, changes param.Changes) error {
	if err := e.check(in, out); err != nil {
		return err
	}
	final := changes.Walk(in.NumSamples, e.params, func(start, end int, s param.Snapshot) {
		e.SetParams(s)
		e.process(in, out, start, end)
	})
	e.SetParams(final)
	return nil
}

func (e *Engine) process(in, out Block, start, end int) {
	for ch := 0; ch < NumChannels; ch++ {
		src := in.Channels[ch][start:end]
		dst := out.Channels[ch][start:end]
		for i, x := range src {
			dst[i] = e.ProcessSample(ch, x)
		}
	}
}

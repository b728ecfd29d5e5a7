package main

import (
	"fmt"
	"time"

	"github.com/nichesounds/algo-delay/dsp/core"
	"github.com/nichesounds/algo-delay/dsp/engine"
	"github.com/nichesounds/algo-delay/dsp/param"
	"github.com/nichesounds/algo-delay/internal/wavio"
	"github.com/nichesounds/algo-delay/plugin"
)

// renderer runs a whole clip through a fresh processor block by block.
type renderer struct {
	Params     param.Snapshot
	BlockSize  int
	Scale      float64
	SampleRate int

	// Filled by Render.
	Targets  [engine.NumChannels]int
	Realized [engine.NumChannels]time.Duration
}

func (r *renderer) Render(dry *wavio.Clip) (*wavio.Clip, error) {
	if len(dry.Channels) != engine.NumChannels {
		return nil, fmt.Errorf("%w: got %d", engine.ErrChannelCount, len(dry.Channels))
	}
	if r.BlockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive: %d", r.BlockSize)
	}
	if r.Scale <= 0 {
		return nil, fmt.Errorf("scale factor must be positive: %f", r.Scale)
	}

	p := plugin.NewDelayProcessor(
		core.WithScaleFactor(r.Scale),
		core.WithBlockSize(r.BlockSize),
		core.WithSampleRate(float64(r.SampleRate)),
	)
	p.Parameters().Store(r.Params)
	if err := p.SetupProcessing(engine.Sample32); err != nil {
		return nil, err
	}
	if err := p.Activate(); err != nil {
		return nil, err
	}
	defer p.Deactivate()

	nframes := dry.Frames()
	wet := &wavio.Clip{
		SampleRate: dry.SampleRate,
		Channels:   [][]float32{make([]float32, nframes), make([]float32, nframes)},
	}
	for start := 0; start < nframes; start += r.BlockSize {
		end := min(start+r.BlockSize, nframes)
		in := engine.Block{NumSamples: end - start, Channels: [][]float32{
			dry.Channels[engine.Left][start:end],
			dry.Channels[engine.Right][start:end],
		}}
		out := engine.Block{NumSamples: end - start, Channels: [][]float32{
			wet.Channels[engine.Left][start:end],
			wet.Channels[engine.Right][start:end],
		}}
		if err := p.ProcessBlock(in, out); err != nil {
			return nil, fmt.Errorf("block at frame %d: %w", start, err)
		}
	}

	for ch := range engine.NumChannels {
		r.Targets[ch] = p.TargetLength(ch)
		r.Realized[ch] = p.RealizedDelay(ch)
	}
	return wet, nil
}

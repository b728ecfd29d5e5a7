package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nichesounds/algo-delay/dsp/engine"
)

// BlockProcessor is the part of the plugin processor the host drives.
type BlockProcessor interface {
	ProcessBlock(in, out engine.Block) error
}

// Config describes the stream the host opens.
type Config struct {
	SampleRate      float64
	FramesPerBuffer int
}

// Host feeds a duplex stereo stream through a BlockProcessor.
type Host struct {
	backend Backend
	proc    BlockProcessor
	cfg     Config
	logger  *slog.Logger

	in  engine.Block
	out engine.Block

	blocks atomic.Uint64
	failed atomic.Uint64
}

// NewHost returns a host for proc. A nil logger discards log output.
func NewHost(backend Backend, proc BlockProcessor, cfg Config, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{
		backend: backend,
		proc:    proc,
		cfg:     cfg,
		logger:  logger,
		in:      engine.Block{Channels: make([][]float32, engine.NumChannels)},
		out:     engine.Block{Channels: make([][]float32, engine.NumChannels)},
	}
}

// Run streams audio until ctx is cancelled.
func (h *Host) Run(ctx context.Context) (err error) {
	if err := h.backend.Initialize(); err != nil {
		return err
	}
	defer func() {
		if terr := h.backend.Terminate(); terr != nil && err == nil {
			err = terr
		}
	}()

	stream, err := h.backend.OpenDuplex(h.cfg.SampleRate, engine.NumChannels, h.cfg.FramesPerBuffer, h.process)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	h.logger.Info("audio stream started",
		"sampleRate", h.cfg.SampleRate,
		"framesPerBuffer", h.cfg.FramesPerBuffer,
	)

	<-ctx.Done()

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	blocks, failed := h.Stats()
	h.logger.Info("audio stream stopped", "blocks", blocks, "failed", failed)
	return nil
}

// process is the stream callback. A failed block is replaced by silence.
func (h *Host) process(in, out [][]float32) {
	h.blocks.Add(1)
	if len(in) != engine.NumChannels || len(out) != engine.NumChannels {
		h.failed.Add(1)
		for _, ch := range out {
			clear(ch)
		}
		return
	}

	n := len(out[0])
	h.in.NumSamples = n
	h.out.NumSamples = n
	copy(h.in.Channels, in)
	copy(h.out.Channels, out)

	if err := h.proc.ProcessBlock(h.in, h.out); err != nil {
		h.failed.Add(1)
		for _, ch := range out {
			clear(ch)
		}
	}
}

// Stats returns the number of callbacks and how many of them failed.
func (h *Host) Stats() (blocks, failed uint64) {
	return h.blocks.Load(), h.failed.Load()
}

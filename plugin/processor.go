package plugin

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/nichesounds/algo-delay/dsp/core"
	"github.com/nichesounds/algo-delay/dsp/engine"
	"github.com/nichesounds/algo-delay/dsp/param"
	"github.com/nichesounds/algo-delay/measure/level"
)

// Processor is the surface a host drives.
type Processor interface {
	Activate() error
	Deactivate() error
	ProcessBlock(in, out engine.Block) error
	GetState(w io.Writer) error
	SetState(r io.Reader) error
}

// ProcessData is one host process call.
type ProcessData struct {
	SampleSize engine.SampleSize
	Input      engine.Block
	Output     engine.Block
	Changes    param.Changes
	// SampleAccurate applies each change at its offset instead of
	// collapsing every queue onto its last point.
	SampleAccurate bool
}

// DelayProcessor wires the engine to host-facing parameter and state
// handling.
//
// Control goroutines write parameters into Parameters(); the audio callback
// picks up the fields written since the previous block at the start of the
// next one, leaving fields that host automation moved in the meantime alone.
// The values the engine actually used are published back for GetState.
type DelayProcessor struct {
	engine     *engine.Engine
	pending    *param.Store
	current    *param.Store
	consumed   atomic.Uint64
	applied    [param.NumFields]atomic.Uint64
	sampleSize engine.SampleSize
	meter      *level.Meter
}

var _ Processor = (*DelayProcessor)(nil)

// NewDelayProcessor returns an inactive processor with default parameters.
func NewDelayProcessor(opts ...core.ProcessorOption) *DelayProcessor {
	e := engine.New(opts...)
	p := &DelayProcessor{
		engine:  e,
		pending: param.NewStore(e.Params()),
		current: param.NewStore(e.Params()),
		meter:   level.NewMeter(engine.NumChannels, e.Config().BlockSize),
	}
	p.markApplied(p.pending.Stamp(), p.pending.Seq())
	return p
}

// Parameters returns the store control goroutines write into.
func (p *DelayProcessor) Parameters() *param.Store {
	return p.pending
}

// Meter returns the output level meter.
func (p *DelayProcessor) Meter() *level.Meter {
	return p.meter
}

// SetupProcessing negotiates the sample size before activation.
func (p *DelayProcessor) SetupProcessing(size engine.SampleSize) error {
	if err := engine.CheckSampleSize(size); err != nil {
		return err
	}
	p.sampleSize = size
	return nil
}

// Activate allocates the delay histories.
func (p *DelayProcessor) Activate() error {
	p.syncParams()
	p.engine.Activate()
	return nil
}

// Deactivate releases the delay histories.
func (p *DelayProcessor) Deactivate() error {
	p.engine.Deactivate()
	return nil
}

// Active reports whether the processor holds delay histories.
func (p *DelayProcessor) Active() bool {
	return p.engine.Active()
}

// ProcessBlock processes one block with the latest parameter values.
func (p *DelayProcessor) ProcessBlock(in, out engine.Block) error {
	return p.Process(&ProcessData{SampleSize: p.sampleSize, Input: in, Output: out})
}

// Process handles a full host process call.
func (p *DelayProcessor) Process(data *ProcessData) error {
	if err := engine.CheckSampleSize(data.SampleSize); err != nil {
		return err
	}
	p.syncParams()

	var err error
	if data.SampleAccurate {
		err = p.engine.ProcessChanges(data.Input, data.Output, data.Changes)
	} else {
		s := p.engine.Params()
		data.Changes.Resolve(&s)
		p.engine.SetParams(s)
		err = p.engine.ProcessBlock(data.Input, data.Output)
	}

	if len(data.Changes) > 0 {
		p.current.Store(p.engine.Params())
	}
	if err != nil {
		return err
	}
	p.meter.Measure(data.Output.Channels, data.Output.NumSamples)
	return nil
}

// syncParams applies the fields a control goroutine wrote since the last
// block on top of the values in effect.
func (p *DelayProcessor) syncParams() {
	if p.pending.Seq() == p.consumed.Load() {
		return
	}
	s, stamp, seq := p.pending.Changed(p.engine.Params(), p.appliedStamp())
	p.engine.SetParams(s)
	p.current.Store(p.engine.Params())
	p.markApplied(stamp, seq)
}

func (p *DelayProcessor) appliedStamp() param.Stamp {
	var s param.Stamp
	for i := range p.applied {
		s[i] = p.applied[i].Load()
	}
	return s
}

func (p *DelayProcessor) markApplied(stamp param.Stamp, seq uint64) {
	for i := range p.applied {
		p.applied[i].Store(stamp[i])
	}
	p.consumed.Store(seq)
}

// Snapshot returns the parameter values most recently in effect, with
// control writes the audio path has not consumed yet applied on top.
func (p *DelayProcessor) Snapshot() param.Snapshot {
	since := p.appliedStamp()
	cur, _ := p.current.Load()
	s, _, _ := p.pending.Changed(cur, since)
	return s
}

// GetState writes the current parameters.
func (p *DelayProcessor) GetState(w io.Writer) error {
	return WriteState(w, p.Snapshot())
}

// SetState reads a state stream and schedules it for the next block. A
// malformed stream leaves every parameter unchanged.
func (p *DelayProcessor) SetState(r io.Reader) error {
	s, err := ReadState(r)
	if err != nil {
		return fmt.Errorf("plugin: set state: %w", err)
	}
	p.pending.Store(s)
	return nil
}

// LatencySamples reports the processing latency. The dry path is immediate.
func (p *DelayProcessor) LatencySamples() int {
	return 0
}

// RealizedDelay returns the delay channel ch produces at the configured
// sample rate with the parameters last applied by the audio path.
func (p *DelayProcessor) RealizedDelay(ch int) time.Duration {
	return p.engine.RealizedDelay(ch)
}

// TargetLength returns the delay of channel ch in samples with the
// parameters last applied by the audio path.
func (p *DelayProcessor) TargetLength(ch int) int {
	return p.engine.TargetLength(ch)
}

// TailSamples reports how long output continues after input stops.
func (p *DelayProcessor) TailSamples() int {
	s := p.Snapshot()
	scale := p.engine.Config().ScaleFactor
	return max(engine.TargetLength(s.LeftDelay, scale), engine.TargetLength(s.RightDelay, scale)) + 1
}

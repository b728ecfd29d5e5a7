// Package engine implements the stereo delay line and its block processor.
//
// Each channel pushes the incoming sample into its FIFO history, trims the
// history down to the target length, and pops the oldest sample as the
// delayed signal, which is blended with the dry input by the mix ratio.
// Until a channel has accumulated enough history the input passes through.
// Bypass keeps that bookkeeping running and only replaces the output with
// the input.
//
// Delay times convert to target lengths with a fixed scale factor
// (core.DefaultScaleFactor) rather than the stream sample rate, so the
// realized delay in seconds depends on the sample rate; see RealizedDelay.
package engine

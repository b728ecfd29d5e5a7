// Package param is the parameter surface of the delay engine.
//
// It declares the four automatable parameters (bypass, left delay, right
// delay, mix), the Snapshot value the engine consumes at block start, a
// lock-free Store that hands snapshots from a control goroutine to the audio
// callback, and host change queues that resolve to a Snapshot either
// last-point-wins or split at each change offset.
package param

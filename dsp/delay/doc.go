// Package delay provides the per-channel sample history used by the delay
// engine: a ring-backed FIFO that is pushed at the tail, trimmed and popped
// at the head, and never read at random.
package delay

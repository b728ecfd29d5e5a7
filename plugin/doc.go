// Package plugin exposes the delay engine to a host through a narrow
// lifecycle: activate, deactivate, process a block, and save or restore the
// four-field parameter state.
package plugin

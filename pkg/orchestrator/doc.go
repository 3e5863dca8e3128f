// Package orchestrator wires the loader → transformer → session → renderer
// pipeline so callers can render a survey from a single entry point.
package orchestrator

package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use without mutating the
// session.
type RenderOptions struct {
	// Values prefill answers keyed by question text. Renderers apply them to
	// the session before drawing; unknown questions are ignored.
	Values map[string]any
	// Errors surfaces externally produced validation feedback keyed by
	// question text. Use MapErrorPayload to normalise loose payloads.
	Errors map[string][]string
	// FormErrors are messages not tied to a single question.
	FormErrors []string
	// Theme carries resolved tokens and asset lookups. Nil renders unthemed.
	Theme *theme.RendererConfig
}

package render

import (
	"context"

	"github.com/goliatone/go-surveyform/pkg/form"
)

// Renderer turns a survey session into bytes. Static renderers (HTML) render
// the current page; interactive renderers (TUI) drive the session through to
// submission and return the serialized response.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, session *form.Session, options RenderOptions) ([]byte, error)
}

// Package surveyform renders multi-page surveys from a static document. The
// root package re-exports the common entry points; the building blocks live
// under pkg/.
package surveyform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/orchestrator"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Response is the envelope produced by a successful submission.
type Response = form.Response

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the survey from source and renders its first page as an
// HTML form fragment.
func GenerateHTML(ctx context.Context, source survey.Source, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: html.Name,
	})
}

// GenerateHTMLFromDocument renders a pre-loaded document, bypassing the
// loader stage.
func GenerateHTMLFromDocument(ctx context.Context, doc survey.Document, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: html.Name,
	})
}

// WithDefaultSurvey configures the orchestrator loader to read from
// DefaultSurveyFS so DefaultSurveySource resolves.
func WithDefaultSurvey() orchestrator.Option {
	return orchestrator.WithLoader(NewLoader(survey.WithFileSystem(DefaultSurveyFS())))
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme registers the bundled theme manifest.
func WithDefaultTheme() (orchestrator.Option, error) {
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		return nil, err
	}
	return orchestrator.WithThemeSelector(selector), nil
}

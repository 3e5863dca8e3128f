package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-surveyform/internal/survey/loader"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom survey loader.
func WithLoader(loader survey.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSurveyTransformer registers a Transformer that runs after the survey is
// loaded and before the session compiles it.
func WithSurveyTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector enables theme resolution for requests that do not carry
// an explicit RenderOptions.Theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// Orchestrator coordinates loading, transforming, compiling and rendering a
// survey. Missing dependencies fall back to the bundled implementations.
type Orchestrator struct {
	loader          survey.Loader
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render of a survey.
type Request struct {
	// Source identifies where the survey document lives. Optional when
	// Document or Survey is supplied.
	Source survey.Source

	// Document bypasses the loader with an already fetched payload.
	Document *survey.Document

	// Survey bypasses loading and parsing entirely. The transformer still
	// runs against a copy.
	Survey *survey.Survey

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme through the configured
	// selector. Ignored when RenderOptions.Theme is already set.
	ThemeName    string
	ThemeVariant string

	// Prefill seeds session answers before rendering.
	Prefill map[string]any

	RenderOptions render.RenderOptions
}

// LoadSurvey resolves, transforms and validates the request's survey without
// rendering it.
func (o *Orchestrator) LoadSurvey(ctx context.Context, req Request) (survey.Survey, error) {
	if err := o.ready(ctx); err != nil {
		return survey.Survey{}, err
	}

	s, err := o.resolveSurvey(ctx, req)
	if err != nil {
		return survey.Survey{}, err
	}
	if err := o.applyTransformer(ctx, &s); err != nil {
		return survey.Survey{}, err
	}
	if err := survey.Validate(s); err != nil {
		return survey.Survey{}, fmt.Errorf("orchestrator: %w", err)
	}
	return s, nil
}

// Session loads the survey and opens a form session seeded with req.Prefill.
func (o *Orchestrator) Session(ctx context.Context, req Request) (*form.Session, error) {
	s, err := o.LoadSurvey(ctx, req)
	if err != nil {
		return nil, err
	}
	session, err := form.NewSession(s, form.WithPrefill(req.Prefill))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build session: %w", err)
	}
	return session, nil
}

// Generate runs the loader, transformer, schema builder and renderer and
// returns the rendered bytes. For the html renderer that is the first page;
// for the tui renderer it is the serialized response after an interactive
// run.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	session, err := o.Session(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, session, req)
}

// Render draws an existing session with the renderer and theme selected by
// req. Loading fields of req are ignored.
func (o *Orchestrator) Render(ctx context.Context, session *form.Session, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("orchestrator: session is nil")
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themeSelector != nil {
		cfg, err := render.ResolveTheme(o.themeSelector, req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, session, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the named renderer, or the default when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveSurvey(ctx context.Context, req Request) (survey.Survey, error) {
	if req.Survey != nil {
		fields := append([]survey.Field(nil), req.Survey.Fields...)
		return survey.Survey{Fields: fields}, nil
	}

	var doc survey.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return survey.Survey{}, fmt.Errorf("orchestrator: load document: %w", err)
		}
		doc = loaded
	default:
		return survey.Survey{}, errors.New("orchestrator: source, document or survey is required")
	}

	s, err := survey.ParseDocument(doc)
	if err != nil {
		return survey.Survey{}, fmt.Errorf("orchestrator: parse document: %w", err)
	}
	return s, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, s *survey.Survey) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, s); err != nil {
		return fmt.Errorf("orchestrator: transform survey: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(survey.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := registerDefaultRenderers(o.registry); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func registerDefaultRenderers(registry *render.Registry) error {
	htmlRenderer, err := html.New()
	if err != nil {
		return err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return err
	}
	tuiRenderer, err := tui.New()
	if err != nil {
		return err
	}
	return registry.Register(tuiRenderer)
}

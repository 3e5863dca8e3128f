// Package html renders the current page of a survey session as an HTML form
// fragment using pongo2 templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/render"
	rendertemplate "github.com/goliatone/go-surveyform/pkg/render/template"
	"github.com/goliatone/go-surveyform/pkg/render/template/pongo"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/widgets"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

const pageTemplate = "templates/page.tmpl"

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	action           string
	inlineStyles     bool
	widgets          *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormAction sets the form's action attribute.
func WithFormAction(action string) Option {
	return func(cfg *config) {
		cfg.action = action
	}
}

// WithInlineStylesheet embeds the bundled CSS in a <style> element.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithWidgetRegistry chooses the input control per question. Defaults to the
// built-in widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		cfg.widgets = registry
	}
}

// Renderer draws the current page of a session.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	widgets      *widgets.Registry
	action       string
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		pe, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		engine = pe
	}

	return &Renderer{
		templates:    engine,
		widgets:      cfg.widgets,
		action:       cfg.action,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render applies option values to the session and renders its current page.
// Errors from the last failed submit are merged with opts.Errors.
func (r *Renderer) Render(ctx context.Context, session *form.Session, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("html renderer: session is required")
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	for question, value := range opts.Values {
		_ = session.SetAnswer(question, value)
	}

	data := r.pageData(session, opts)
	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageData(session *form.Session, opts render.RenderOptions) map[string]any {
	view := session.View()
	s := session.Survey()
	external := render.MapErrorPayload(s, opts.Errors)
	formErrors := render.MergeFormErrors(external.Form, opts.FormErrors...)
	if view.HiddenErrors > 0 {
		formErrors = render.MergeFormErrors(formErrors,
			fmt.Sprintf("%d issue(s) on other pages need attention.", view.HiddenErrors))
	}

	onPage := make(map[string]struct{}, len(view.Fields))
	fields := make([]map[string]any, 0, len(view.Fields))
	for _, fv := range view.Fields {
		onPage[fv.Field.Question] = struct{}{}
		errs := append(append([]string(nil), fv.Errors...), external.Fields[fv.Field.Question]...)
		fields = append(fields, fieldData(fv, r.widgets.Resolve(fv.Field), render.MergeFormErrors(errs)))
	}

	data := map[string]any{
		"action":        r.action,
		"page":          view.Page,
		"max_page":      view.MaxPage,
		"show_previous": view.ShowPrevious,
		"show_next":     view.ShowNext,
		"show_submit":   view.ShowSubmit,
		"fields":        fields,
		"form_errors":   formErrors,
		"carry":         carryFields(s, session.Answers(), onPage),
		"theme":         themeData(opts),
	}
	if r.inlineStyles {
		data["stylesheet"] = defaultStylesheet()
	}
	return data
}

func fieldData(fv form.FieldView, widget string, errs []string) map[string]any {
	field := fv.Field
	out := map[string]any{
		"id":       field.ID,
		"dom_id":   fmt.Sprintf("survey-field-%d", field.ID),
		"name":     field.Question,
		"label":    sanitizeLabel(field.Question),
		"required": field.Required,
		"errors":   errs,
		"type":     widget,
		"value":    "",
	}
	if fv.Answered {
		out["value"] = EncodeValue(fv.Value)
	}

	switch {
	case field.Type == survey.FieldTypeBoolean:
		checked, _ := fv.Value.(bool)
		out["checked"] = checked
	case field.IsMultipleChoice():
		current, _ := fv.Value.(string)
		choices := make([]map[string]any, 0, len(fv.Choices))
		for idx, choice := range fv.Choices {
			choices = append(choices, map[string]any{
				"dom_id":   fmt.Sprintf("survey-field-%d-%d", field.ID, idx),
				"value":    choice,
				"selected": choice == current,
			})
		}
		out["choices"] = choices
	case field.Type == survey.FieldTypeNumber:
		if field.MinVal != nil {
			out["min"] = strconv.FormatFloat(*field.MinVal, 'f', -1, 64)
		}
	default:
		if field.MinChar != nil {
			out["minlength"] = *field.MinChar
		}
	}
	return out
}

// carryFields emits answers from other pages as hidden inputs so a
// stateless round trip keeps them.
func carryFields(s survey.Survey, answers map[string]any, onPage map[string]struct{}) []map[string]any {
	var out []map[string]any
	for _, field := range s.Fields {
		if _, ok := onPage[field.Question]; ok {
			continue
		}
		value, ok := answers[field.Question]
		if !ok || value == nil {
			continue
		}
		out = append(out, map[string]any{
			"name":  field.Question,
			"value": EncodeValue(value),
		})
	}
	return out
}

func themeData(opts render.RenderOptions) map[string]any {
	cfg := opts.Theme
	if cfg == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": pongo.CSSDeclarations(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		out["stylesheet_url"] = cfg.AssetURL("stylesheet")
	}
	return out
}

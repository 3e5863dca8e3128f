package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// Name is the registry key of the TUI renderer.
const Name = "tui"

const skipChoice = "(no answer)"

// Renderer walks a survey session page by page in the terminal and returns
// the serialized response once submission succeeds.
type Renderer struct {
	driver          PromptDriver
	outputFormat    OutputFormat
	noColor         bool
	inline          bool
	maxAttempts     int
	onFailure       FailureFunc
	responseOptions []form.ResponseOption
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer backed by the survey prompt driver with JSON
// output and per-answer validation.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		inline:       true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts every field of the current page, then offers the
// navigation actions the page allows. It returns once a submission passes
// validation, the user aborts, or the context is cancelled.
func (r *Renderer) Render(ctx context.Context, session *form.Session, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if session == nil {
		return nil, errors.New("tui: session is required")
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	st := newStyles(opts.Theme, r.noColor)
	for question, value := range opts.Values {
		_ = session.SetAnswer(question, value)
	}
	if err := r.showExternalErrors(ctx, st, session.Survey(), opts); err != nil {
		return nil, err
	}

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.promptPage(ctx, st, session); err != nil {
			return nil, err
		}

		action, err := r.chooseAction(ctx, session)
		if err != nil {
			return nil, err
		}

		switch action {
		case pagination.ActionPrevious:
			if err := session.Previous(); err != nil {
				return nil, err
			}
		case pagination.ActionNext:
			if err := session.Next(); err != nil {
				return nil, err
			}
		case pagination.ActionSubmit:
			records, err := session.Submit()
			if err == nil {
				return r.serialize(form.NewResponse(records, r.responseOptions...))
			}
			issues, ok := validation.AsIssues(err)
			if !ok {
				return nil, err
			}
			failures++
			if r.onFailure != nil {
				r.onFailure(ctx, issues)
			}
			if err := r.reportIssues(ctx, st, session.Survey(), issues); err != nil {
				return nil, err
			}
			if r.maxAttempts > 0 && failures >= r.maxAttempts {
				return nil, fmt.Errorf("%w: %v", ErrTooManyAttempts, issues)
			}
		}
	}
}

func (r *Renderer) promptPage(ctx context.Context, st styles, session *form.Session) error {
	view := session.View()
	lines := []string{st.Header(fmt.Sprintf("Page %d of %d", view.Page, view.MaxPage))}
	if view.HiddenErrors > 0 {
		lines = append(lines, st.Muted(fmt.Sprintf("%d issue(s) on other pages", view.HiddenErrors)))
	}
	if len(view.Fields) == 0 {
		lines = append(lines, st.Muted("This page has no questions."))
	}
	if err := r.driver.Info(ctx, st.Block(lines...)); err != nil {
		return err
	}

	for _, fv := range view.Fields {
		for _, msg := range fv.Errors {
			if err := r.driver.Info(ctx, st.Error(fmt.Sprintf("%s: %s", fv.Field.Question, msg))); err != nil {
				return err
			}
		}
		if err := r.promptField(ctx, st, session, fv); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, st styles, session *form.Session, fv form.FieldView) error {
	rule, _ := session.Schema().Rule(fv.Field.Question)
	switch {
	case fv.Field.Type == survey.FieldTypeBoolean:
		return r.promptBoolean(ctx, session, fv)
	case fv.Field.Type == survey.FieldTypeNumber:
		return r.promptNumber(ctx, st, session, fv, rule)
	case fv.Field.IsMultipleChoice():
		return r.promptChoice(ctx, st, session, fv, rule)
	default:
		return r.promptString(ctx, st, session, fv, rule)
	}
}

func (r *Renderer) promptString(ctx context.Context, st styles, session *form.Session, fv form.FieldView, rule validation.Rule) error {
	question := fv.Field.Question
	def, _ := fv.Value.(string)

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: label(fv.Field),
			Default: def,
			Help:    help(fv.Field),
		})
		if err != nil {
			return err
		}
		if response == "" && !fv.Field.Required {
			session.ClearAnswer(question)
			return nil
		}
		if r.inline {
			ok, err := r.check(ctx, st, question, rule, response)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return session.SetAnswer(question, response)
	}
}

func (r *Renderer) promptNumber(ctx context.Context, st styles, session *form.Session, fv form.FieldView, rule validation.Rule) error {
	question := fv.Field.Question
	def := ""
	if n, ok := validation.AsNumber(fv.Value); ok {
		def = strconv.FormatFloat(n, 'f', -1, 64)
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: label(fv.Field),
			Default: def,
			Help:    help(fv.Field),
		})
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			if fv.Field.Required && r.inline {
				if err := r.driver.Info(ctx, st.Error(fmt.Sprintf("%s: Required", question))); err != nil {
					return err
				}
				continue
			}
			session.ClearAnswer(question)
			return nil
		}

		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			if err := r.driver.Info(ctx, st.Error(fmt.Sprintf("%s: %q is not a number", question, input))); err != nil {
				return err
			}
			continue
		}
		if r.inline {
			ok, err := r.check(ctx, st, question, rule, n)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return session.SetAnswer(question, n)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, session *form.Session, fv form.FieldView) error {
	def, _ := fv.Value.(bool)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: label(fv.Field),
		Default: def,
		Help:    help(fv.Field),
	})
	if err != nil {
		return err
	}
	return session.SetAnswer(fv.Field.Question, resp)
}

func (r *Renderer) promptChoice(ctx context.Context, st styles, session *form.Session, fv form.FieldView, rule validation.Rule) error {
	question := fv.Field.Question
	options := append([]string(nil), fv.Choices...)
	if !fv.Field.Required {
		options = append(options, skipChoice)
	}

	defaultIdx := -1
	if s, ok := fv.Value.(string); ok {
		defaultIdx = indexOf(options, s)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label(fv.Field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         help(fv.Field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			if err := r.driver.Info(ctx, st.Error(fmt.Sprintf("%s: invalid selection", question))); err != nil {
				return err
			}
			continue
		}
		selected := options[idx]
		if selected == skipChoice && !fv.Field.Required {
			session.ClearAnswer(question)
			return nil
		}
		if r.inline {
			ok, err := r.check(ctx, st, question, rule, selected)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		return session.SetAnswer(question, selected)
	}
}

// check validates a single answer and reports failures through the driver.
func (r *Renderer) check(ctx context.Context, st styles, question string, rule validation.Rule, value any) (bool, error) {
	if rule == nil {
		return true, nil
	}
	issues := validation.Check(rule, value, true)
	for _, issue := range issues {
		if err := r.driver.Info(ctx, st.Error(fmt.Sprintf("%s: %s", question, issue.Message))); err != nil {
			return false, err
		}
	}
	return len(issues) == 0, nil
}

func (r *Renderer) chooseAction(ctx context.Context, session *form.Session) (pagination.Action, error) {
	actions := session.Actions()
	if len(actions) == 1 {
		return actions[0], nil
	}

	labels := make([]string, 0, len(actions))
	defaultIdx := 0
	for i, action := range actions {
		labels = append(labels, actionLabel(action))
		if action != pagination.ActionPrevious && defaultIdx == 0 {
			defaultIdx = i
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      fmt.Sprintf("Page %d of %d", session.Page(), session.MaxPage()),
			Options:      labels,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return "", err
		}
		if idx >= 0 && idx < len(actions) {
			return actions[idx], nil
		}
	}
}

func (r *Renderer) showExternalErrors(ctx context.Context, st styles, s survey.Survey, opts render.RenderOptions) error {
	mapped := render.MapErrorPayload(s, opts.Errors)
	formErrors := render.MergeFormErrors(mapped.Form, opts.FormErrors...)
	for _, msg := range formErrors {
		if err := r.driver.Info(ctx, st.Error(msg)); err != nil {
			return err
		}
	}
	for _, field := range s.Fields {
		for _, msg := range mapped.Fields[field.Question] {
			line := fmt.Sprintf("%s (page %d): %s", field.Question, field.PageNo, msg)
			if err := r.driver.Info(ctx, st.Error(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) reportIssues(ctx context.Context, st styles, s survey.Survey, issues validation.Issues) error {
	lines := []string{st.Error(fmt.Sprintf("Submission failed with %d issue(s):", len(issues)))}
	for _, issue := range issues {
		lines = append(lines, st.Error(fmt.Sprintf("  %s (page %d): %s", issue.Path, s.PageOf(issue.Path), issue.Message)))
	}
	return r.driver.Info(ctx, st.Block(lines...))
}

func (r *Renderer) serialize(resp form.Response) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, record := range resp.Answers {
			if record.Answer == nil {
				continue
			}
			values.Add(record.Question, formatAnswer(record.Answer))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		fmt.Fprintf(&b, "Response %s\n", resp.ID)
		for _, record := range resp.Answers {
			answer := skipChoice
			if record.Answer != nil {
				answer = formatAnswer(record.Answer)
			}
			fmt.Fprintf(&b, "%s: %s\n", record.Question, answer)
		}
		return []byte(b.String()), nil
	default:
		return resp.MarshalIndent()
	}
}

func formatAnswer(value any) string {
	if n, ok := validation.AsNumber(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func actionLabel(action pagination.Action) string {
	switch action {
	case pagination.ActionPrevious:
		return "Previous page"
	case pagination.ActionNext:
		return "Next page"
	case pagination.ActionSubmit:
		return "Submit"
	default:
		return string(action)
	}
}

func label(field survey.Field) string {
	if field.Required {
		return field.Question + " *"
	}
	return field.Question
}

func help(field survey.Field) string {
	var parts []string
	if field.MinChar != nil {
		parts = append(parts, fmt.Sprintf("at least %d character(s)", *field.MinChar))
	}
	if field.MinVal != nil {
		parts = append(parts, fmt.Sprintf("minimum %v", *field.MinVal))
	}
	return strings.Join(parts, ", ")
}

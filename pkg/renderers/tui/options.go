package tui

import (
	"context"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// OutputFormat controls how a submitted response is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the response envelope as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits question=answer pairs.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "Question: Answer" line per record.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a config or flag value onto an OutputFormat.
// Unknown values fall back to JSON.
func ParseOutputFormat(value string) OutputFormat {
	switch OutputFormat(value) {
	case OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(value)
	default:
		return OutputFormatJSON
	}
}

// FailureFunc observes a submission rejected by validation.
type FailureFunc func(ctx context.Context, issues validation.Issues)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithNoColor disables lipgloss styling of headers and messages.
func WithNoColor(disabled bool) Option {
	return func(r *Renderer) {
		r.noColor = disabled
	}
}

// WithResponseOptions forwards options to form.NewResponse, typically a
// fixed clock or id generator.
func WithResponseOptions(options ...form.ResponseOption) Option {
	return func(r *Renderer) {
		r.responseOptions = append(r.responseOptions, options...)
	}
}

// WithInlineValidation toggles re-prompting on invalid answers. When off,
// answers are only checked on submit and issues are reported per page.
func WithInlineValidation(enabled bool) Option {
	return func(r *Renderer) {
		r.inline = enabled
	}
}

// WithMaxSubmitAttempts bounds consecutive failed submissions. Zero means
// unlimited.
func WithMaxSubmitAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithFailureFunc registers a callback invoked after each failed submit,
// alongside the issues printed to the terminal.
func WithFailureFunc(fn FailureFunc) Option {
	return func(r *Renderer) {
		r.onFailure = fn
	}
}

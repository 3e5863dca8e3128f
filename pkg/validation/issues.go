package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeTooShort    = "too_short"
	CodeTooSmall    = "too_small"
	CodeInvalidEnum = "invalid_enum"
	CodeUnknownKey  = "unknown_key"
)

// Issue is a single field-level validation failure. Path holds the question
// text the failing rule is keyed by.
type Issue struct {
	Path    string         `json:"path"`
	FieldID int            `json:"fieldId"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Issues collects validation failures in survey order and implements error.
type Issues []Issue

// Error summarises the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %q", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// ByPath groups issue messages by question, preserving per-field order.
func (iss Issues) ByPath() map[string][]string {
	if len(iss) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range iss {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

// Paths lists the distinct failing questions in first-seen order.
func (iss Issues) Paths() []string {
	var out []string
	seen := make(map[string]struct{}, len(iss))
	for _, issue := range iss {
		if _, ok := seen[issue.Path]; ok {
			continue
		}
		seen[issue.Path] = struct{}{}
		out = append(out, issue.Path)
	}
	return out
}

// For returns the issues attached to one question.
func (iss Issues) For(path string) Issues {
	var out Issues
	for _, issue := range iss {
		if issue.Path == path {
			out = append(out, issue)
		}
	}
	return out
}

// AsIssues extracts Issues from an error chain.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Result captures a validation outcome for callers that prefer a value over
// an error.
type Result struct {
	Valid  bool   `json:"valid"`
	Issues Issues `json:"issues,omitempty"`
}

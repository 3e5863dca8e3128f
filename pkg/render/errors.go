package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// ErrorMapping splits validation feedback into per-question and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapIssues groups validation issues by question text.
func MapIssues(issues validation.Issues) ErrorMapping {
	mapping := ErrorMapping{}
	for _, issue := range issues {
		if issue.Path == "" {
			mapping.Form = append(mapping.Form, issue.Message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[issue.Path] = append(mapping.Fields[issue.Path], issue.Message)
	}
	for key, messages := range mapping.Fields {
		mapping.Fields[key] = normalizeMessages(messages)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MapErrorPayload resolves loosely keyed error payloads onto survey
// questions. Keys may be the question text, a JSON pointer to it (optionally
// under a body/answers wrapper), or the numeric field id. Anything that does
// not resolve becomes a form-level message.
func MapErrorPayload(s survey.Survey, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	for raw, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		question, ok := resolveQuestion(s, raw)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[question] = append(mapping.Fields[question], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveQuestion(s survey.Survey, raw string) (string, bool) {
	key := strings.TrimSpace(raw)
	if isFormLevelKey(key) {
		return "", false
	}
	if _, ok := s.Lookup(key); ok {
		return key, true
	}

	segments := pointerSegments(key)
	for len(segments) > 0 {
		candidate := strings.Join(segments, "/")
		if _, ok := s.Lookup(candidate); ok {
			return candidate, true
		}
		if id, err := strconv.Atoi(candidate); err == nil {
			for _, field := range s.Fields {
				if field.ID == id {
					return field.Question, true
				}
			}
		}
		if !isWrapperSegment(segments[0]) {
			break
		}
		segments = segments[1:]
	}
	return "", false
}

// pointerSegments splits a JSON pointer style key. Plain keys come back as a
// single segment.
func pointerSegments(key string) []string {
	clean := strings.TrimPrefix(key, "#")
	if !strings.HasPrefix(clean, "/") {
		return []string{unescapePointer(clean)}
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, unescapePointer(part))
	}
	return out
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "answers":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

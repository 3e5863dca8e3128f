package html

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

const (
	pageKey   = "_page"
	actionKey = "_action"
)

// EncodeValue formats an answer for an input value attribute.
func EncodeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	}
	if n, ok := validation.AsNumber(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// DecodeForm converts posted form values into typed answers keyed by
// question. Empty inputs are treated as unanswered; text answers keep their
// whitespace. Values that do not parse as the field's type are kept as
// strings so validation reports them.
func DecodeForm(s survey.Survey, values url.Values) map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		posted, ok := values[field.Question]
		if !ok || len(posted) == 0 {
			continue
		}
		// Checkboxes post a hidden "false" followed by "true" when ticked.
		raw := posted[len(posted)-1]
		if raw == "" {
			continue
		}

		switch field.Type {
		case survey.FieldTypeNumber:
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				out[field.Question] = n
				continue
			}
			out[field.Question] = raw
		case survey.FieldTypeBoolean:
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "true", "on", "1", "yes":
				out[field.Question] = true
			case "false", "off", "0", "no":
				out[field.Question] = false
			default:
				out[field.Question] = raw
			}
		default:
			out[field.Question] = raw
		}
	}
	return out
}

// DecodeNavigation reads the page the form was rendered on and the button
// that submitted it. Missing or malformed values default to page 1 and no
// action.
func DecodeNavigation(values url.Values) (int, pagination.Action) {
	page, err := strconv.Atoi(values.Get(pageKey))
	if err != nil || page < 1 {
		page = 1
	}
	switch action := pagination.Action(values.Get(actionKey)); action {
	case pagination.ActionPrevious, pagination.ActionNext, pagination.ActionSubmit:
		return page, action
	default:
		return page, ""
	}
}

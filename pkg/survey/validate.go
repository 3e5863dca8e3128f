package survey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoFields is returned for documents whose Survey array is empty.
	ErrNoFields = errors.New("survey: no fields declared")
	// ErrDuplicateQuestion flags two fields sharing the same question text.
	ErrDuplicateQuestion = errors.New("survey: duplicate question")
	// ErrInvalidPage flags a pageNo below 1.
	ErrInvalidPage = errors.New("survey: pageNo must be >= 1")
)

// Validate checks the structural invariants of a survey: at least one field,
// unique non-empty questions, pages starting at 1, sane constraints. All
// problems are collected into a single multierror. Field types are left to
// the schema builder, which rejects unsupported kinds for the whole form.
func Validate(s Survey) error {
	if len(s.Fields) == 0 {
		return ErrNoFields
	}

	var result *multierror.Error
	seen := make(map[string]int, len(s.Fields))

	for idx, field := range s.Fields {
		ref := fieldRef(idx, field)

		question := strings.TrimSpace(field.Question)
		if question == "" {
			result = multierror.Append(result, fmt.Errorf("survey: %s: question is required", ref))
		} else if prev, ok := seen[field.Question]; ok {
			result = multierror.Append(result, fmt.Errorf("%w %q (fields %d and %d)", ErrDuplicateQuestion, field.Question, prev, idx))
		} else {
			seen[field.Question] = idx
		}

		if field.PageNo < 1 {
			result = multierror.Append(result, fmt.Errorf("%w: %s has pageNo %d", ErrInvalidPage, ref, field.PageNo))
		}
		if field.MinChar != nil && *field.MinChar < 0 {
			result = multierror.Append(result, fmt.Errorf("survey: %s: minChar must not be negative", ref))
		}

		switch field.SubType {
		case SubTypeNone:
		case SubTypeMCQ:
			if len(field.Choices()) == 0 {
				result = multierror.Append(result, fmt.Errorf("survey: %s: multiple choice field declares no Options", ref))
			}
		default:
			result = multierror.Append(result, fmt.Errorf("survey: %s: unknown SubType %q", ref, field.SubType))
		}
	}

	return result.ErrorOrNil()
}

func fieldRef(idx int, field Field) string {
	if field.Question != "" {
		return fmt.Sprintf("field %d (id %d, %q)", idx, field.ID, field.Question)
	}
	return fmt.Sprintf("field %d (id %d)", idx, field.ID)
}

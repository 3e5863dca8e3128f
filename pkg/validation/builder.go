package validation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

var (
	// ErrUnsupportedType aborts schema construction when a field declares a
	// type other than string, number, or boolean.
	ErrUnsupportedType = errors.New("validation: unsupported field type")
	// ErrDuplicateQuestion aborts schema construction when two fields would
	// share the same rule key.
	ErrDuplicateQuestion = errors.New("validation: duplicate question")
)

// BuildError names the field that stopped schema construction.
type BuildError struct {
	FieldID  int
	Question string
	Type     survey.FieldType
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("validation: field %d (%q) type %q: %v", e.FieldID, e.Question, e.Type, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Entry pairs a compiled rule with the descriptor it came from.
type Entry struct {
	Field survey.Field
	Rule  Rule
}

// Schema holds one rule per field keyed by question text. Iteration follows
// survey order.
type Schema struct {
	order   []string
	entries map[string]Entry
}

// Build compiles a survey into a Schema. An unsupported field type fails the
// whole build; no partial schema is returned.
func Build(s survey.Survey) (Schema, error) {
	schema := Schema{
		order:   make([]string, 0, len(s.Fields)),
		entries: make(map[string]Entry, len(s.Fields)),
	}

	for _, field := range s.Fields {
		rule, err := compile(field)
		if err != nil {
			return Schema{}, &BuildError{
				FieldID:  field.ID,
				Question: field.Question,
				Type:     field.Type,
				Err:      err,
			}
		}
		if _, exists := schema.entries[field.Question]; exists {
			return Schema{}, &BuildError{
				FieldID:  field.ID,
				Question: field.Question,
				Type:     field.Type,
				Err:      ErrDuplicateQuestion,
			}
		}
		schema.order = append(schema.order, field.Question)
		schema.entries[field.Question] = Entry{Field: field, Rule: rule}
	}

	return schema, nil
}

// MustBuild panics when Build fails. Useful for fixtures.
func MustBuild(s survey.Survey) Schema {
	schema, err := Build(s)
	if err != nil {
		panic(err)
	}
	return schema
}

func compile(field survey.Field) (Rule, error) {
	switch field.Type {
	case survey.FieldTypeString:
		rule := StringRule{
			Required: field.Required,
			MinChar:  nonZero(field.MinChar),
		}
		if field.IsMultipleChoice() {
			rule.Choices = field.Choices()
		}
		return rule, nil
	case survey.FieldTypeNumber:
		return NumberRule{
			Required: field.Required,
			MinVal:   nonZero(field.MinVal),
		}, nil
	case survey.FieldTypeBoolean:
		return BooleanRule{Required: field.Required}, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// nonZero drops a zero threshold; 0 means the constraint is unset.
func nonZero[T int | float64](v *T) *T {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// Len returns the number of rules.
func (s Schema) Len() int {
	return len(s.order)
}

// Questions returns the rule keys in survey order.
func (s Schema) Questions() []string {
	return append([]string(nil), s.order...)
}

// Rule returns the rule compiled for question.
func (s Schema) Rule(question string) (Rule, bool) {
	entry, ok := s.entries[question]
	if !ok {
		return nil, false
	}
	return entry.Rule, true
}

// Entry returns the rule and descriptor compiled for question.
func (s Schema) Entry(question string) (Entry, bool) {
	entry, ok := s.entries[question]
	return entry, ok
}

// Validate checks every rule against values and returns the combined issues
// in survey order. Keys in values without a rule are ignored.
func (s Schema) Validate(values map[string]any) Result {
	return s.validate(s.order, values)
}

// ValidateQuestions restricts validation to the listed questions. Unknown
// questions are reported with CodeUnknownKey.
func (s Schema) ValidateQuestions(questions []string, values map[string]any) Result {
	return s.validate(questions, values)
}

func (s Schema) validate(questions []string, values map[string]any) Result {
	var issues Issues
	for _, question := range questions {
		entry, ok := s.entries[question]
		if !ok {
			issues = append(issues, Issue{
				Path:    question,
				Code:    CodeUnknownKey,
				Message: "No rule for this question",
			})
			continue
		}
		value, present := values[question]
		for _, issue := range Check(entry.Rule, value, present) {
			issue.Path = question
			issue.FieldID = entry.Field.ID
			issues = append(issues, issue)
		}
	}
	return Result{Valid: len(issues) == 0, Issues: issues}
}

package validation

import "github.com/goliatone/go-surveyform/pkg/survey"

// Rule is the compiled constraint set for a single field. It is a closed set
// of variants (StringRule, NumberRule, BooleanRule) interpreted by Check.
type Rule interface {
	Type() survey.FieldType
	isRule()
}

// StringRule constrains text answers. Choices is populated for multiple
// choice fields; a non-empty answer must match one of them exactly.
type StringRule struct {
	Required bool
	MinChar  *int
	Choices  []string
}

// NumberRule constrains numeric answers.
type NumberRule struct {
	Required bool
	MinVal   *float64
}

// BooleanRule constrains yes/no answers.
type BooleanRule struct {
	Required bool
}

func (StringRule) Type() survey.FieldType  { return survey.FieldTypeString }
func (NumberRule) Type() survey.FieldType  { return survey.FieldTypeNumber }
func (BooleanRule) Type() survey.FieldType { return survey.FieldTypeBoolean }

func (StringRule) isRule()  {}
func (NumberRule) isRule()  {}
func (BooleanRule) isRule() {}

// IsRequired reports whether the rule rejects unanswered values.
func IsRequired(rule Rule) bool {
	switch r := rule.(type) {
	case StringRule:
		return r.Required
	case NumberRule:
		return r.Required
	case BooleanRule:
		return r.Required
	default:
		return false
	}
}

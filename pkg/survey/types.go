package survey

import "strings"

// FieldType enumerates the value kinds a survey question can collect.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// SubType refines how a field is presented. Only multiple choice is known.
type SubType string

const (
	SubTypeNone SubType = ""
	SubTypeMCQ  SubType = "MCQ"
)

// OptionSeparator splits the Options string of a multiple choice field.
const OptionSeparator = "|"

// Field describes a single survey question. Question doubles as the key used
// for answers, validation rules, and error reporting, so it must be unique
// within a Survey.
type Field struct {
	ID       int       `json:"id" yaml:"id"`
	Question string    `json:"Question" yaml:"Question"`
	Type     FieldType `json:"Type" yaml:"Type"`
	SubType  SubType   `json:"SubType,omitempty" yaml:"SubType,omitempty"`
	Required bool      `json:"required" yaml:"required"`
	MinChar  *int      `json:"minChar,omitempty" yaml:"minChar,omitempty"`
	MinVal   *float64  `json:"minVal,omitempty" yaml:"minVal,omitempty"`
	PageNo   int       `json:"pageNo" yaml:"pageNo"`
	Options  string    `json:"Options,omitempty" yaml:"Options,omitempty"`
}

// IsMultipleChoice reports whether the field renders as a choice list.
func (f Field) IsMultipleChoice() bool {
	return f.SubType == SubTypeMCQ
}

// Choices splits Options into trimmed, non-empty labels in declaration order.
func (f Field) Choices() []string {
	if strings.TrimSpace(f.Options) == "" {
		return nil
	}
	parts := strings.Split(f.Options, OptionSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Survey is the ordered field sequence loaded from a document.
type Survey struct {
	Fields []Field `json:"Survey" yaml:"Survey"`
}

// Len returns the number of fields.
func (s Survey) Len() int {
	return len(s.Fields)
}

// MaxPage returns the highest pageNo declared by any field, or 0 for an empty
// survey.
func (s Survey) MaxPage() int {
	highest := 0
	for _, field := range s.Fields {
		if field.PageNo > highest {
			highest = field.PageNo
		}
	}
	return highest
}

// FieldsOnPage returns the fields assigned to page, preserving survey order.
func (s Survey) FieldsOnPage(page int) []Field {
	var out []Field
	for _, field := range s.Fields {
		if field.PageNo == page {
			out = append(out, field)
		}
	}
	return out
}

// Lookup finds a field by its question text.
func (s Survey) Lookup(question string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Question == question {
			return field, true
		}
	}
	return Field{}, false
}

// PageOf returns the page a question lives on, or 0 when unknown.
func (s Survey) PageOf(question string) int {
	field, ok := s.Lookup(question)
	if !ok {
		return 0
	}
	return field.PageNo
}

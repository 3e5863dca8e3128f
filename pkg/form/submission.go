package form

import (
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// AnswerRecord is one submitted answer. Records follow survey order.
type AnswerRecord struct {
	ID       int    `json:"id"`
	Question string `json:"Question"`
	Answer   any    `json:"Answer"`
}

// Assemble validates values against schema and, when every rule passes, maps
// them onto survey order. On failure it returns nil records and the
// validation.Issues as the error.
func Assemble(s survey.Survey, schema validation.Schema, values map[string]any) ([]AnswerRecord, error) {
	result := schema.Validate(values)
	if !result.Valid {
		return nil, result.Issues
	}

	records := make([]AnswerRecord, 0, len(s.Fields))
	for _, field := range s.Fields {
		records = append(records, AnswerRecord{
			ID:       field.ID,
			Question: field.Question,
			Answer:   values[field.Question],
		})
	}
	return records, nil
}

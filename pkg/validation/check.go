package validation

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Check applies rule to a single answer. present is false when the answer
// was never supplied; a nil value is treated the same way. Unanswered fields
// only fail when the rule is required.
func Check(rule Rule, value any, present bool) []Issue {
	if !present || value == nil {
		if IsRequired(rule) {
			return []Issue{{Code: CodeRequired, Message: "Required"}}
		}
		return nil
	}

	switch r := rule.(type) {
	case StringRule:
		return checkString(r, value)
	case NumberRule:
		return checkNumber(r, value)
	case BooleanRule:
		return checkBoolean(value)
	default:
		return []Issue{{
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("Unsupported rule %T", rule),
		}}
	}
}

func checkString(rule StringRule, value any) []Issue {
	s, ok := value.(string)
	if !ok {
		return []Issue{invalidType("string", value)}
	}

	var issues []Issue
	length := utf8.RuneCountInString(s)
	if rule.MinChar != nil && length < *rule.MinChar {
		issues = append(issues, Issue{
			Code:    CodeTooShort,
			Message: fmt.Sprintf("String must contain at least %d character(s)", *rule.MinChar),
			Params:  map[string]any{"min": *rule.MinChar, "got": length},
		})
	}
	if rule.Required && length == 0 {
		issues = append(issues, Issue{
			Code:    CodeRequired,
			Message: "String must contain at least 1 character(s)",
		})
	}
	if len(rule.Choices) > 0 && s != "" && !contains(rule.Choices, s) {
		issues = append(issues, Issue{
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("Invalid option %q", s),
			Params:  map[string]any{"options": append([]string(nil), rule.Choices...)},
		})
	}
	return issues
}

func checkNumber(rule NumberRule, value any) []Issue {
	n, ok := AsNumber(value)
	if !ok {
		return []Issue{invalidType("number", value)}
	}
	if rule.MinVal != nil && n < *rule.MinVal {
		return []Issue{{
			Code:    CodeTooSmall,
			Message: fmt.Sprintf("Number must be greater than or equal to %v", *rule.MinVal),
			Params:  map[string]any{"min": *rule.MinVal, "got": n},
		}}
	}
	return nil
}

func checkBoolean(value any) []Issue {
	if _, ok := value.(bool); !ok {
		return []Issue{invalidType("boolean", value)}
	}
	return nil
}

// AsNumber converts the numeric kinds a decoder or prompt may produce into a
// float64. NaN and infinities are not numbers for validation purposes.
func AsNumber(value any) (float64, bool) {
	var f float64
	switch n := value.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func invalidType(expected string, value any) Issue {
	received := receivedType(value)
	return Issue{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("Expected %s, received %s", expected, received),
		Params:  map[string]any{"expected": expected, "received": received},
	}
}

func receivedType(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if math.IsNaN(v) {
			return "nan"
		}
		return "number"
	case float32:
		if math.IsNaN(float64(v)) {
			return "nan"
		}
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if _, ok := AsNumber(value); ok {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

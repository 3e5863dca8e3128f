package widgets

import (
	"testing"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  survey.Field
		expect string
	}{
		{
			name:   "boolean checkbox",
			field:  survey.Field{Type: survey.FieldTypeBoolean},
			expect: WidgetCheckbox,
		},
		{
			name:   "multiple choice select",
			field:  survey.Field{Type: survey.FieldTypeString, SubType: survey.SubTypeMCQ, Options: "A|B"},
			expect: WidgetSelect,
		},
		{
			name:   "number input",
			field:  survey.Field{Type: survey.FieldTypeNumber},
			expect: WidgetNumber,
		},
		{
			name:   "plain string falls back to text",
			field:  survey.Field{Type: survey.FieldTypeString},
			expect: WidgetText,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Resolve(tc.field); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityAndOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(WidgetRadio, 85, func(field survey.Field) bool {
		return field.IsMultipleChoice() && len(field.Choices()) <= 3
	})
	reg.ForQuestion("Comments", WidgetTextarea)

	mcq := survey.Field{Question: "Contact", Type: survey.FieldTypeString, SubType: survey.SubTypeMCQ, Options: "Email|Phone"}
	if got := reg.Resolve(mcq); got != WidgetRadio {
		t.Fatalf("expected higher priority radio, got %q", got)
	}

	long := mcq
	long.Options = "A|B|C|D"
	if got := reg.Resolve(long); got != WidgetSelect {
		t.Fatalf("expected select for long option list, got %q", got)
	}

	comments := survey.Field{Question: "Comments", Type: survey.FieldTypeString}
	if got := reg.Resolve(comments); got != WidgetTextarea {
		t.Fatalf("expected question override, got %q", got)
	}
}

func TestResolve_NilRegistryUsesBuiltins(t *testing.T) {
	var reg *Registry
	if got := reg.Resolve(survey.Field{Type: survey.FieldTypeBoolean}); got != WidgetCheckbox {
		t.Fatalf("expected builtin resolution, got %q", got)
	}
}

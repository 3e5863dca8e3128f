package validation_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleSurvey() survey.Survey {
	return survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "Name", Type: survey.FieldTypeString, Required: true, MinChar: intPtr(3), PageNo: 1},
		{ID: 2, Question: "Age", Type: survey.FieldTypeNumber, Required: true, MinVal: floatPtr(18), PageNo: 1},
		{ID: 3, Question: "Colour", Type: survey.FieldTypeString, SubType: survey.SubTypeMCQ, Options: "Red|Blue", PageNo: 2},
		{ID: 4, Question: "Agree", Type: survey.FieldTypeBoolean, PageNo: 2},
	}}
}

func TestBuild_OneRulePerFieldKeyedByQuestion(t *testing.T) {
	schema, err := validation.Build(sampleSurvey())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff([]string{"Name", "Age", "Colour", "Agree"}, schema.Questions()); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}

	want := map[string]validation.Rule{
		"Name":   validation.StringRule{Required: true, MinChar: intPtr(3)},
		"Age":    validation.NumberRule{Required: true, MinVal: floatPtr(18)},
		"Colour": validation.StringRule{Choices: []string{"Red", "Blue"}},
		"Agree":  validation.BooleanRule{},
	}
	for question, wantRule := range want {
		got, ok := schema.Rule(question)
		if !ok {
			t.Fatalf("missing rule for %q", question)
		}
		if diff := cmp.Diff(wantRule, got); diff != "" {
			t.Fatalf("rule %q mismatch (-want +got):\n%s", question, diff)
		}
	}
}

func TestBuild_UnsupportedTypeFailsWholeForm(t *testing.T) {
	s := sampleSurvey()
	s.Fields = append(s.Fields, survey.Field{ID: 9, Question: "When", Type: "date", PageNo: 2})

	schema, err := validation.Build(s)
	if !errors.Is(err, validation.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	var buildErr *validation.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected *BuildError, got %T", err)
	}
	if buildErr.FieldID != 9 || buildErr.Question != "When" {
		t.Fatalf("unexpected build error %+v", buildErr)
	}
	if schema.Len() != 0 {
		t.Fatalf("expected no partial schema, got %d rules", schema.Len())
	}
}

func TestBuild_DuplicateQuestion(t *testing.T) {
	s := survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "Q", Type: survey.FieldTypeString, PageNo: 1},
		{ID: 2, Question: "Q", Type: survey.FieldTypeNumber, PageNo: 1},
	}}
	if _, err := validation.Build(s); !errors.Is(err, validation.ErrDuplicateQuestion) {
		t.Fatalf("expected ErrDuplicateQuestion, got %v", err)
	}
}

func TestValidate_RequiredEmptyInputAlwaysFails(t *testing.T) {
	cases := []struct {
		name  string
		field survey.Field
		value any
		set   bool
	}{
		{"string empty", survey.Field{Type: survey.FieldTypeString, Required: true}, "", true},
		{"string missing", survey.Field{Type: survey.FieldTypeString, Required: true}, nil, false},
		{"number missing", survey.Field{Type: survey.FieldTypeNumber, Required: true}, nil, false},
		{"number nil", survey.Field{Type: survey.FieldTypeNumber, Required: true}, nil, true},
		{"boolean missing", survey.Field{Type: survey.FieldTypeBoolean, Required: true}, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.field.ID = 1
			tc.field.Question = "Q"
			tc.field.PageNo = 1
			schema := validation.MustBuild(survey.Survey{Fields: []survey.Field{tc.field}})

			values := map[string]any{}
			if tc.set {
				values["Q"] = tc.value
			}
			result := schema.Validate(values)
			if result.Valid || len(result.Issues.For("Q")) == 0 {
				t.Fatalf("expected issue for Q, got %+v", result)
			}
		})
	}
}

func TestValidate_MinVal(t *testing.T) {
	schema := validation.MustBuild(survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "Score", Type: survey.FieldTypeNumber, MinVal: floatPtr(10), PageNo: 1},
	}})

	if res := schema.Validate(map[string]any{"Score": 9.0}); res.Valid {
		t.Fatalf("expected 9 to be rejected")
	} else if res.Issues[0].Code != validation.CodeTooSmall {
		t.Fatalf("expected too_small, got %s", res.Issues[0].Code)
	}
	if res := schema.Validate(map[string]any{"Score": 10}); !res.Valid {
		t.Fatalf("expected 10 to be accepted, got %v", res.Issues)
	}
	if res := schema.Validate(map[string]any{"Score": json.Number("10.5")}); !res.Valid {
		t.Fatalf("expected json.Number to be accepted, got %v", res.Issues)
	}
}

func TestValidate_ZeroThresholdsAreUnset(t *testing.T) {
	schema := validation.MustBuild(survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "Delta", Type: survey.FieldTypeNumber, MinVal: floatPtr(0), PageNo: 1},
		{ID: 2, Question: "Note", Type: survey.FieldTypeString, MinChar: intPtr(0), PageNo: 1},
	}})

	want := map[string]validation.Rule{
		"Delta": validation.NumberRule{},
		"Note":  validation.StringRule{},
	}
	for question, rule := range want {
		got, ok := schema.Rule(question)
		if !ok {
			t.Fatalf("missing rule for %s", question)
		}
		if diff := cmp.Diff(rule, got); diff != "" {
			t.Fatalf("rule %s mismatch (-want +got):\n%s", question, diff)
		}
	}

	if res := schema.Validate(map[string]any{"Delta": -5.0, "Note": ""}); !res.Valid {
		t.Fatalf("expected -5 to pass with minVal 0, got %v", res.Issues)
	}
}

func TestValidate_TypeChecks(t *testing.T) {
	schema := validation.MustBuild(sampleSurvey())

	result := schema.Validate(map[string]any{
		"Name":   42,
		"Age":    math.NaN(),
		"Colour": "Red",
		"Agree":  "yes",
	})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	got := make(map[string]string)
	for _, issue := range result.Issues {
		got[issue.Path] = issue.Message
	}
	want := map[string]string{
		"Name":  "Expected string, received number",
		"Age":   "Expected number, received nan",
		"Agree": "Expected boolean, received string",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_StringConstraints(t *testing.T) {
	schema := validation.MustBuild(sampleSurvey())

	result := schema.ValidateQuestions([]string{"Name", "Colour"}, map[string]any{
		"Name":   "",
		"Colour": "Green",
	})

	var codes []string
	for _, issue := range result.Issues {
		codes = append(codes, issue.Path+":"+issue.Code)
	}
	want := []string{"Name:too_short", "Name:required", "Colour:invalid_enum"}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if result.Issues[0].FieldID != 1 || result.Issues[2].FieldID != 3 {
		t.Fatalf("field ids not attached: %+v", result.Issues)
	}
}

func TestValidate_OptionalUnansweredPasses(t *testing.T) {
	schema := validation.MustBuild(sampleSurvey())
	result := schema.ValidateQuestions([]string{"Colour", "Agree"}, map[string]any{})
	if !result.Valid {
		t.Fatalf("expected optional fields to pass, got %v", result.Issues)
	}
}

func TestValidate_UnknownQuestion(t *testing.T) {
	schema := validation.MustBuild(sampleSurvey())
	result := schema.ValidateQuestions([]string{"Nope"}, nil)
	if result.Valid || result.Issues[0].Code != validation.CodeUnknownKey {
		t.Fatalf("expected unknown_key issue, got %+v", result)
	}
}

func TestIssues_ErrorAndGrouping(t *testing.T) {
	issues := validation.Issues{
		{Path: "A", Code: "required", Message: "Required"},
		{Path: "B", Code: "too_small", Message: "small"},
		{Path: "A", Code: "too_short", Message: "short"},
		{Path: "C", Code: "required", Message: "Required"},
	}

	if got := issues.Error(); got != `required at "A"; too_small at "B"; too_short at "A"; ... (total 4)` {
		t.Fatalf("unexpected error string %q", got)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, issues.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	wantGrouped := map[string][]string{
		"A": {"Required", "short"},
		"B": {"small"},
		"C": {"Required"},
	}
	if diff := cmp.Diff(wantGrouped, issues.ByPath()); diff != "" {
		t.Fatalf("grouping mismatch (-want +got):\n%s", diff)
	}

	var err error = issues
	got, ok := validation.AsIssues(err)
	if !ok || len(got) != 4 {
		t.Fatalf("AsIssues failed: %v %v", got, ok)
	}
}

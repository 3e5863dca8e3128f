package pagination_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

func threeFieldSurvey() survey.Survey {
	return survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "First", Type: survey.FieldTypeString, PageNo: 1},
		{ID: 2, Question: "Second", Type: survey.FieldTypeString, PageNo: 1},
		{ID: 3, Question: "Third", Type: survey.FieldTypeString, PageNo: 2},
	}}
}

func questions(fields []survey.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Question)
	}
	return out
}

func TestController_TwoPageWalkthrough(t *testing.T) {
	s := threeFieldSurvey()
	c := pagination.New(s)

	if c.Page() != 1 || c.MaxPage() != 2 {
		t.Fatalf("unexpected start state page=%d max=%d", c.Page(), c.MaxPage())
	}
	if diff := cmp.Diff([]string{"First", "Second"}, questions(c.Visible(s))); diff != "" {
		t.Fatalf("page 1 fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]pagination.Action{pagination.ActionNext}, c.Actions()); diff != "" {
		t.Fatalf("page 1 actions mismatch (-want +got):\n%s", diff)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if diff := cmp.Diff([]string{"Third"}, questions(c.Visible(s))); diff != "" {
		t.Fatalf("page 2 fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]pagination.Action{pagination.ActionPrevious, pagination.ActionSubmit}, c.Actions()); diff != "" {
		t.Fatalf("page 2 actions mismatch (-want +got):\n%s", diff)
	}
}

func TestController_Bounds(t *testing.T) {
	c := pagination.New(threeFieldSurvey())

	if c.CanPrevious() {
		t.Fatalf("previous must be unavailable on page 1")
	}
	if err := c.Previous(); !errors.Is(err, pagination.ErrNoPreviousPage) {
		t.Fatalf("expected ErrNoPreviousPage, got %v", err)
	}
	if c.CanSubmit() {
		t.Fatalf("submit must be unavailable before the last page")
	}

	_ = c.Next()
	if c.CanNext() {
		t.Fatalf("next must be unavailable on the last page")
	}
	if err := c.Next(); !errors.Is(err, pagination.ErrNoNextPage) {
		t.Fatalf("expected ErrNoNextPage, got %v", err)
	}
	if c.Page() != 2 {
		t.Fatalf("failed transition must not move the page, got %d", c.Page())
	}
	if !c.CanSubmit() {
		t.Fatalf("submit must be available on the last page")
	}

	if err := c.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if c.Page() != 1 {
		t.Fatalf("expected page 1, got %d", c.Page())
	}
}

func TestController_SinglePageAndEmpty(t *testing.T) {
	single := pagination.New(survey.Survey{Fields: []survey.Field{{ID: 1, Question: "Only", PageNo: 1}}})
	if diff := cmp.Diff([]pagination.Action{pagination.ActionSubmit}, single.Actions()); diff != "" {
		t.Fatalf("single page actions mismatch (-want +got):\n%s", diff)
	}

	empty := pagination.New(survey.Survey{})
	if empty.MaxPage() != 1 || !empty.CanSubmit() {
		t.Fatalf("empty survey should behave as one page")
	}
}

func TestController_GapsProduceDeadPages(t *testing.T) {
	s := survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "A", PageNo: 1},
		{ID: 2, Question: "B", PageNo: 3},
	}}

	if diff := cmp.Diff([]int{2}, pagination.EmptyPages(s)); diff != "" {
		t.Fatalf("empty pages mismatch (-want +got):\n%s", diff)
	}

	c := pagination.New(s)
	_ = c.Next()
	if c.Page() != 2 || len(c.Visible(s)) != 0 {
		t.Fatalf("expected to land on empty page 2, got page %d with %d fields", c.Page(), len(c.Visible(s)))
	}
	if c.CanSubmit() {
		t.Fatalf("dead page must not expose submit")
	}
	_ = c.Next()
	if c.Page() != 3 || !c.CanSubmit() {
		t.Fatalf("expected last page 3 with submit")
	}
}

//go:build cucumber

package pagination_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/testsupport"
)

// TestPaginationScenarios runs the page navigation feature scenarios.
func TestPaginationScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "pagination",
		ScenarioInitializer: InitializePaginationScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "features", "pagination.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializePaginationScenario wires steps for pagination scenarios.
func InitializePaginationScenario(ctx *godog.ScenarioContext) {
	state := &paginationState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a survey with fields on pages ([\d, ]+)$`, state.givenSurvey)
	ctx.Step(`^the bundled survey$`, state.givenBundledSurvey)
	ctx.Step(`^I go to the next page$`, state.whenNext)
	ctx.Step(`^I go to the previous page$`, state.whenPrevious)
	ctx.Step(`^the navigation is refused$`, state.thenRefused)
	ctx.Step(`^the current page is (\d+)$`, state.thenCurrentPage)
	ctx.Step(`^the last page is (\d+)$`, state.thenLastPage)
	ctx.Step(`^page (\d+) shows (\d+) fields$`, state.thenPageShows)
	ctx.Step(`^page (\d+) is empty$`, state.thenPageEmpty)
	ctx.Step(`^the available actions are "([^"]*)"$`, state.thenActions)
}

type paginationState struct {
	survey     survey.Survey
	controller *pagination.Controller
	lastErr    error
}

func (s *paginationState) reset() {
	s.survey = survey.Survey{}
	s.controller = nil
	s.lastErr = nil
}

func (s *paginationState) givenBundledSurvey() error {
	loaded, err := testsupport.LoadSurveyFromPath(filepath.Join("..", "..", "assets", "survey.json"))
	if err != nil {
		return err
	}
	s.survey = loaded
	s.controller = pagination.New(loaded)
	return nil
}

func (s *paginationState) givenSurvey(list string) error {
	for idx, raw := range strings.Split(list, ",") {
		page, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		s.survey.Fields = append(s.survey.Fields, survey.Field{
			ID:       idx + 1,
			Question: fmt.Sprintf("Question %d", idx+1),
			Type:     survey.FieldTypeString,
			PageNo:   page,
		})
	}
	s.controller = pagination.New(s.survey)
	return nil
}

func (s *paginationState) whenNext() error {
	s.lastErr = s.controller.Next()
	return nil
}

func (s *paginationState) whenPrevious() error {
	s.lastErr = s.controller.Previous()
	return nil
}

func (s *paginationState) thenRefused() error {
	if s.lastErr == nil {
		return fmt.Errorf("expected navigation error")
	}
	return nil
}

func (s *paginationState) thenCurrentPage(page int) error {
	if got := s.controller.Page(); got != page {
		return fmt.Errorf("expected page %d, got %d", page, got)
	}
	return nil
}

func (s *paginationState) thenLastPage(page int) error {
	if got := s.controller.MaxPage(); got != page {
		return fmt.Errorf("expected last page %d, got %d", page, got)
	}
	return nil
}

func (s *paginationState) thenPageShows(page, count int) error {
	if got := len(s.survey.FieldsOnPage(page)); got != count {
		return fmt.Errorf("expected %d fields on page %d, got %d", count, page, got)
	}
	return nil
}

func (s *paginationState) thenPageEmpty(page int) error {
	for _, p := range pagination.EmptyPages(s.survey) {
		if p == page {
			return nil
		}
	}
	return fmt.Errorf("page %d is not reported as empty", page)
}

func (s *paginationState) thenActions(list string) error {
	var got []string
	for _, action := range s.controller.Actions() {
		got = append(got, string(action))
	}
	if strings.Join(got, ",") != list {
		return fmt.Errorf("expected actions %q, got %q", list, strings.Join(got, ","))
	}
	return nil
}

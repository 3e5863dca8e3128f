package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

var (
	// ErrUnknownQuestion is returned when an answer targets a question the
	// survey does not declare.
	ErrUnknownQuestion = errors.New("form: unknown question")
	// ErrSubmitUnavailable is returned when Submit is called before the last
	// page.
	ErrSubmitUnavailable = errors.New("form: submit is only available on the last page")
)

// Option configures a Session.
type Option func(*Session)

// WithPrefill seeds answers. Unknown questions are ignored.
func WithPrefill(values map[string]any) Option {
	return func(s *Session) {
		for question, value := range values {
			if _, ok := s.schema.Rule(question); ok {
				s.answers[question] = value
			}
		}
	}
}

// Session is the single owner of a survey fill-in. It is not safe for
// concurrent use.
type Session struct {
	survey  survey.Survey
	schema  validation.Schema
	pager   *pagination.Controller
	answers map[string]any
	issues  validation.Issues
}

// NewSession compiles the survey schema and starts on page 1. Schema build
// errors (unsupported field types) are returned unchanged.
func NewSession(s survey.Survey, options ...Option) (*Session, error) {
	schema, err := validation.Build(s)
	if err != nil {
		return nil, err
	}

	session := &Session{
		survey:  s,
		schema:  schema,
		pager:   pagination.New(s),
		answers: make(map[string]any, len(s.Fields)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(session)
	}
	return session, nil
}

// Survey returns the survey backing the session.
func (s *Session) Survey() survey.Survey {
	return s.survey
}

// Schema returns the compiled validation schema.
func (s *Session) Schema() validation.Schema {
	return s.schema
}

// Page returns the current page number.
func (s *Session) Page() int {
	return s.pager.Page()
}

// MaxPage returns the last page number.
func (s *Session) MaxPage() int {
	return s.pager.MaxPage()
}

// Actions lists the navigation affordances on the current page.
func (s *Session) Actions() []pagination.Action {
	return s.pager.Actions()
}

// CanSubmit reports whether Submit is available.
func (s *Session) CanSubmit() bool {
	return s.pager.CanSubmit()
}

// Visible returns the fields on the current page.
func (s *Session) Visible() []survey.Field {
	return s.pager.Visible(s.survey)
}

// Next moves to the following page. Answers are kept.
func (s *Session) Next() error {
	return s.pager.Next()
}

// Previous moves to the preceding page. Answers are kept.
func (s *Session) Previous() error {
	return s.pager.Previous()
}

// SetAnswer records the value for question regardless of the current page;
// values on hidden pages persist across navigation.
func (s *Session) SetAnswer(question string, value any) error {
	if _, ok := s.schema.Rule(question); !ok {
		return fmt.Errorf("%w %q", ErrUnknownQuestion, question)
	}
	s.answers[question] = value
	return nil
}

// ClearAnswer forgets the value for question.
func (s *Session) ClearAnswer(question string) {
	delete(s.answers, question)
}

// Answer returns the recorded value for question.
func (s *Session) Answer(question string) (any, bool) {
	value, ok := s.answers[question]
	return value, ok
}

// Answers returns a copy of the recorded values.
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Issues returns the issues from the last failed submission.
func (s *Session) Issues() validation.Issues {
	return s.issues
}

// ValidatePage checks only the fields on the current page. It does not
// affect submission state.
func (s *Session) ValidatePage() validation.Result {
	visible := s.Visible()
	questions := make([]string, 0, len(visible))
	for _, field := range visible {
		questions = append(questions, field.Question)
	}
	return s.schema.ValidateQuestions(questions, s.answers)
}

// Submit validates every answer and assembles the ordered records. It is
// refused before the last page. A failed submission keeps the page and all
// answers and remembers the issues for rendering.
func (s *Session) Submit() ([]AnswerRecord, error) {
	if !s.pager.CanSubmit() {
		return nil, ErrSubmitUnavailable
	}
	records, err := Assemble(s.survey, s.schema, s.answers)
	if err != nil {
		if issues, ok := validation.AsIssues(err); ok {
			s.issues = issues
		}
		return nil, err
	}
	s.issues = nil
	return records, nil
}

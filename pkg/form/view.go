package form

import "github.com/goliatone/go-surveyform/pkg/survey"

// FieldView is a field as presented on the current page.
type FieldView struct {
	Field    survey.Field `json:"field"`
	Value    any          `json:"value,omitempty"`
	Answered bool         `json:"answered"`
	Choices  []string     `json:"choices,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// PageView is the rendering contract for whoever owns the markup: the fields
// of the current page plus which navigation controls to show.
type PageView struct {
	Page         int         `json:"page"`
	MaxPage      int         `json:"maxPage"`
	Fields       []FieldView `json:"fields"`
	ShowPrevious bool        `json:"showPrevious"`
	ShowNext     bool        `json:"showNext"`
	ShowSubmit   bool        `json:"showSubmit"`
	// HiddenErrors counts issues on fields that live on other pages.
	HiddenErrors int `json:"hiddenErrors,omitempty"`
}

// View snapshots the current page. Errors come from the last failed Submit.
func (s *Session) View() PageView {
	errs := s.issues.ByPath()
	view := PageView{
		Page:         s.pager.Page(),
		MaxPage:      s.pager.MaxPage(),
		ShowPrevious: s.pager.CanPrevious(),
		ShowNext:     s.pager.CanNext(),
		ShowSubmit:   s.pager.CanSubmit(),
	}

	onPage := make(map[string]struct{})
	for _, field := range s.Visible() {
		onPage[field.Question] = struct{}{}
		value, answered := s.answers[field.Question]
		fv := FieldView{
			Field:    field,
			Value:    value,
			Answered: answered,
			Errors:   errs[field.Question],
		}
		if field.IsMultipleChoice() {
			fv.Choices = field.Choices()
		}
		view.Fields = append(view.Fields, fv)
	}

	for _, issue := range s.issues {
		if _, ok := onPage[issue.Path]; !ok {
			view.HiddenErrors++
		}
	}
	return view
}

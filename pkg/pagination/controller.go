// Package pagination tracks the current page of a multi-page survey. Pages
// are derived from the pageNo of each field; the controller only moves one
// page at a time and exposes submit solely on the last page.
package pagination

import (
	"errors"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

var (
	// ErrNoNextPage is returned by Next on the last page.
	ErrNoNextPage = errors.New("pagination: already on the last page")
	// ErrNoPreviousPage is returned by Previous on the first page.
	ErrNoPreviousPage = errors.New("pagination: already on the first page")
)

// Action names a navigation affordance available on the current page.
type Action string

const (
	ActionPrevious Action = "previous"
	ActionNext     Action = "next"
	ActionSubmit   Action = "submit"
)

// Controller holds the 1-based current page bounded by [1, MaxPage]. The zero
// value is not usable; construct with New.
type Controller struct {
	page    int
	maxPage int
}

// New starts a controller on page 1 for the given survey. An empty survey is
// treated as a single page.
func New(s survey.Survey) *Controller {
	return NewWithMax(s.MaxPage())
}

// NewWithMax starts a controller on page 1 with an explicit last page.
func NewWithMax(maxPage int) *Controller {
	if maxPage < 1 {
		maxPage = 1
	}
	return &Controller{page: 1, maxPage: maxPage}
}

// Page returns the current page number.
func (c *Controller) Page() int {
	return c.page
}

// MaxPage returns the last page number.
func (c *Controller) MaxPage() int {
	return c.maxPage
}

// CanPrevious reports whether Previous is available.
func (c *Controller) CanPrevious() bool {
	return c.page > 1
}

// CanNext reports whether Next is available.
func (c *Controller) CanNext() bool {
	return c.page < c.maxPage
}

// CanSubmit reports whether the current page is the last page.
func (c *Controller) CanSubmit() bool {
	return c.page == c.maxPage
}

// Next advances one page.
func (c *Controller) Next() error {
	if !c.CanNext() {
		return ErrNoNextPage
	}
	c.page++
	return nil
}

// Previous goes back one page.
func (c *Controller) Previous() error {
	if !c.CanPrevious() {
		return ErrNoPreviousPage
	}
	c.page--
	return nil
}

// Actions lists the affordances for the current page in display order.
func (c *Controller) Actions() []Action {
	var out []Action
	if c.CanPrevious() {
		out = append(out, ActionPrevious)
	}
	if c.CanNext() {
		out = append(out, ActionNext)
	}
	if c.CanSubmit() {
		out = append(out, ActionSubmit)
	}
	return out
}

// Visible returns the fields shown on the current page in survey order.
func (c *Controller) Visible(s survey.Survey) []survey.Field {
	return s.FieldsOnPage(c.page)
}

// EmptyPages lists page numbers in [1, MaxPage] that hold no fields. Single
// step navigation still passes through them.
func EmptyPages(s survey.Survey) []int {
	used := make(map[int]struct{}, len(s.Fields))
	for _, field := range s.Fields {
		used[field.PageNo] = struct{}{}
	}
	var out []int
	for page := 1; page <= s.MaxPage(); page++ {
		if _, ok := used[page]; !ok {
			out = append(out, page)
		}
	}
	return out
}

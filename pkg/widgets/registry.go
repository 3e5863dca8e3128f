// Package widgets picks the input control used for each survey question.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetNumber   = "number"
	WidgetText     = "text"
	WidgetTextarea = "textarea"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field survey.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields from registered matchers. Higher
// priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// ForQuestion registers a widget for a single question at a priority above
// every built-in.
func (r *Registry) ForQuestion(question, widget string) {
	r.Register(widget, 1000, func(field survey.Field) bool {
		return field.Question == question
	})
}

// Resolve returns the widget name for a field. A nil registry falls back to
// the built-in rules.
func (r *Registry) Resolve(field survey.Field) string {
	if r == nil {
		return Default().Resolve(field)
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetText
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry holding only the built-ins. Do not
// register on it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field survey.Field) bool {
		return field.Type == survey.FieldTypeBoolean
	})
	r.Register(WidgetSelect, 80, func(field survey.Field) bool {
		return field.IsMultipleChoice()
	})
	r.Register(WidgetNumber, 70, func(field survey.Field) bool {
		return field.Type == survey.FieldTypeNumber
	})
}

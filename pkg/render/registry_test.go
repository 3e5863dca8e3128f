package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/render"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, *form.Session, render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	registry := render.NewRegistry(namedRenderer{name: "html"})
	if err := registry.Register(namedRenderer{name: "TUI"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(namedRenderer{name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer{name: " "}); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("Tui") {
		t.Fatalf("lookups should ignore case")
	}

	got, err := registry.Resolve("", "tui")
	if err != nil || got.Name() != "TUI" {
		t.Fatalf("fallback resolve: %v %v", got, err)
	}
	got, err = registry.Resolve("", "")
	if err != nil || got.Name() != "html" {
		t.Fatalf("first renderer resolve: %v %v", got, err)
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistry_EmptyResolve(t *testing.T) {
	if _, err := render.NewRegistry().Resolve("", ""); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

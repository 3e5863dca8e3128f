package pongo_test

import (
	"embed"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform/pkg/render/template/pongo"
	"github.com/goliatone/go-surveyform/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embedded embed.FS

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()
	sub, err := fs.Sub(embedded, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, w)
	})

	if strings.TrimSpace(result) != "Hello, Ada!" {
		t.Fatalf("unexpected render %q", result)
	}
	if written != result {
		t.Fatalf("writer got %q, want %q", written, result)
	}
}

func TestEngine_GlobalsAndStructData(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobals(map[string]any{"site": "Survey"}))

	type page struct {
		Page    int `json:"page"`
		MaxPage int `json:"maxPage"`
	}
	got, err := engine.RenderTemplate("globals.tmpl", page{Page: 2, MaxPage: 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(got) != "Survey: 2/3" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestEngine_RenderStringEscapesByDefault(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("<p>{{ label }}</p>", map[string]any{"label": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected autoescaped output, got %q", got)
	}
}

func TestEngine_RegisterFilterRejectsDuplicates(t *testing.T) {
	engine := newEngine(t)
	shout := func(in any, _ any) (any, error) {
		s, _ := in.(string)
		return strings.ToUpper(s), nil
	}
	if err := engine.RegisterFilter("shout_test", shout); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("shout_test", shout); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderString("{{ v|shout_test }}", map[string]any{"v": "hey"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "HEY" {
		t.Fatalf("unexpected filter output %q", got)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func TestCSSDeclarations(t *testing.T) {
	got := pongo.CSSDeclarations(map[string]string{"brand": "#123", "--accent": "red"})
	if got != "--accent: red; --brand: #123" {
		t.Fatalf("unexpected declarations %q", got)
	}
}

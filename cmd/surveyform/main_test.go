package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform/internal/config"
	"github.com/goliatone/go-surveyform/internal/logging"
	"github.com/goliatone/go-surveyform/pkg/orchestrator"
	"github.com/goliatone/go-surveyform/pkg/render"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun_HTMLFromBundledSurvey(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer = "html"
	cfg.Variant = "dark"

	var stdout, logs bytes.Buffer
	if err := run(context.Background(), cfg, logging.New(&logs, false), &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := stdout.String()
	for _, fragment := range []string{"Page 1 of 3", `name="Full name"`, `data-theme-variant="dark"`} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, got)
		}
	}
}

func TestRun_WarnsAboutEmptyPagesAndAppliesPreset(t *testing.T) {
	source := writeTemp(t, "survey.yaml", `Survey:
  - id: 1
    Question: First
    Type: boolean
    required: "false"
    pageNo: 1
  - id: 2
    Question: Last
    Type: string
    required: "false"
    pageNo: 3
`)
	preset := writeTemp(t, "preset.json", `{"fields": {"First": {"question": "Opening question"}}}`)
	output := filepath.Join(t.TempDir(), "page.html")

	cfg := config.Default()
	cfg.Renderer = "html"
	cfg.Source = source
	cfg.Preset = preset
	cfg.Output = output

	var stdout, logs bytes.Buffer
	if err := run(context.Background(), cfg, logging.New(&logs, false), &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(logs.String(), "page has no questions") || !strings.Contains(logs.String(), "page=2") {
		t.Fatalf("expected empty page warning, got %q", logs.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Opening question") {
		t.Fatalf("preset not applied\n%s", data)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should be printed when output is set, got %q", stdout.String())
	}
}

func TestServeHandler_LogsValidationErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Serve = true
	cfg.Renderer = "html"

	var logs bytes.Buffer
	logger := logging.New(&logs, false)
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	orch, err := newOrchestrator(cfg, selector, logger)
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}
	s, err := orch.LoadSurvey(context.Background(), orchestrator.Request{Source: parseSource("")})
	if err != nil {
		t.Fatalf("load survey: %v", err)
	}
	handler, err := newHandler(cfg, logger, orch, s, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	values := url.Values{
		"_page":                    {"3"},
		"_action":                  {"submit"},
		"Full name":                {"Ada Lovelace"},
		"Age":                      {"12"},
		"Preferred contact method": {"Post"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	got := logs.String()
	for _, fragment := range []string{"level=warning", "validation errors", "Age:[Number must be greater than or equal to 18]"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in logs, got %q", fragment, got)
		}
	}
}

func TestRun_InvalidSource(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer = "html"
	cfg.Source = filepath.Join(t.TempDir(), "missing.json")

	var stdout bytes.Buffer
	if err := run(context.Background(), cfg, logging.Discard(), &stdout); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestParseSource(t *testing.T) {
	cases := map[string]string{
		"":                           "survey.json",
		"https://example.com/s.json": "https://example.com/s.json",
		"./local.json":               "local.json",
	}
	for in, want := range cases {
		if got := parseSource(in).Location(); got != want {
			t.Fatalf("parseSource(%q) = %q, want %q", in, got, want)
		}
	}
}

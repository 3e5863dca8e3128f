package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

// LoadSurvey parses and validates a survey fixture, failing the test on
// error.
func LoadSurvey(t *testing.T, path string) survey.Survey {
	t.Helper()

	s, err := LoadSurveyFromPath(path)
	if err != nil {
		t.Fatalf("load survey: %v", err)
	}
	return s
}

// LoadSurveyFromPath reads a JSON or YAML survey fixture without a
// testing.T so it can be used from godog step definitions.
func LoadSurveyFromPath(path string) (survey.Survey, error) {
	if path == "" {
		return survey.Survey{}, errors.New("testsupport: survey path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Survey{}, fmt.Errorf("testsupport: read survey: %w", err)
	}
	s, err := survey.Parse(data)
	if err != nil {
		return survey.Survey{}, fmt.Errorf("testsupport: parse survey: %w", err)
	}
	if err := survey.Validate(s); err != nil {
		return survey.Survey{}, fmt.Errorf("testsupport: validate survey: %w", err)
	}
	return s, nil
}

// WriteGolden marshals value as indented JSON into path when UPDATE_GOLDENS
// is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// WriteMaybeGolden writes raw bytes to a golden file when UPDATE_GOLDENS is
// set and reports whether it did.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff when want and got differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

// Transformer mutates a loaded Survey before the session compiles its schema.
// Implementations can relabel questions, move them between pages, or tighten
// constraints for a particular deployment.
type Transformer interface {
	Transform(ctx context.Context, s *survey.Survey) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, s *survey.Survey) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, s *survey.Survey) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, s)
}

// PresetTransformer applies declarative per-question overrides. Keys are the
// question text as it appears in the loaded survey:
//
//	{
//	  "fields": {
//	    "Age": {"question": "Your age", "minVal": 21},
//	    "Contact": {"options": "Email|Phone|Post", "pageNo": 3}
//	  }
//	}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Question string   `json:"question" yaml:"question"`
	Required *bool    `json:"required" yaml:"required"`
	MinChar  *int     `json:"minChar" yaml:"minChar"`
	MinVal   *float64 `json:"minVal" yaml:"minVal"`
	PageNo   *int     `json:"pageNo" yaml:"pageNo"`
	Options  *string  `json:"options" yaml:"options"`
}

// NewPresetTransformer parses a JSON preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewYAMLPresetTransformer parses a YAML preset document with the same shape.
func NewYAMLPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset from fsys. Files ending in .yaml
// or .yml are decoded as YAML, everything else as JSON.
func NewPresetTransformerFromFS(fsys fs.FS, name string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", name, err)
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return NewYAMLPresetTransformer(data)
	default:
		return NewPresetTransformer(data)
	}
}

// Transform applies the patches in key order. A key that matches no question
// is an error so stale presets are noticed.
func (t *PresetTransformer) Transform(ctx context.Context, s *survey.Survey) error {
	if s == nil {
		return errors.New("preset transformer: survey is nil")
	}

	keys := make([]string, 0, len(t.document.Fields))
	for key := range t.document.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := indexOfQuestion(s.Fields, key)
		if idx < 0 {
			return fmt.Errorf("preset transformer: question %q not found", key)
		}
		applyFieldPatch(&s.Fields[idx], t.document.Fields[key])
	}
	return nil
}

func applyFieldPatch(field *survey.Field, patch fieldPatch) {
	if q := strings.TrimSpace(patch.Question); q != "" {
		field.Question = q
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.MinChar != nil {
		v := *patch.MinChar
		field.MinChar = &v
	}
	if patch.MinVal != nil {
		v := *patch.MinVal
		field.MinVal = &v
	}
	if patch.PageNo != nil {
		field.PageNo = *patch.PageNo
	}
	if patch.Options != nil {
		field.Options = *patch.Options
	}
}

func indexOfQuestion(fields []survey.Field, question string) int {
	for idx := range fields {
		if fields[idx].Question == question {
			return idx
		}
	}
	return -1
}

package survey

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document has no content.
var ErrEmptyDocument = errors.New("survey: document is empty")

// documentFile mirrors the on-disk layout. Required is decoded separately
// because the bundled asset encodes it as the strings "true"/"false".
type documentFile struct {
	Survey []fieldFile `json:"Survey" yaml:"Survey"`
}

type fieldFile struct {
	ID       int          `json:"id" yaml:"id"`
	Question string       `json:"Question" yaml:"Question"`
	Type     string       `json:"Type" yaml:"Type"`
	SubType  string       `json:"SubType" yaml:"SubType"`
	Required requiredFlag `json:"required" yaml:"required"`
	MinChar  *int         `json:"minChar" yaml:"minChar"`
	MinVal   *float64     `json:"minVal" yaml:"minVal"`
	PageNo   int          `json:"pageNo" yaml:"pageNo"`
	Options  string       `json:"Options" yaml:"Options"`
}

// requiredFlag accepts the literal strings "true"/"false" as well as real
// booleans. Anything else is rejected so typos do not silently make a field
// optional.
type requiredFlag bool

func (r *requiredFlag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = false
		return nil
	}
	raw := string(trimmed)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("survey: required: %w", err)
		}
		raw = s
	}
	return r.set(raw)
}

func (r *requiredFlag) UnmarshalYAML(node *yaml.Node) error {
	if node == nil {
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("survey: required: expected scalar at line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*r = false
		return nil
	}
	return r.set(node.Value)
}

func (r *requiredFlag) set(raw string) error {
	switch strings.TrimSpace(raw) {
	case "true":
		*r = true
	case "false", "":
		*r = false
	default:
		return fmt.Errorf("survey: required: invalid literal %q (want \"true\" or \"false\")", raw)
	}
	return nil
}

// Parse decodes a JSON or YAML survey document. JSON is attempted first;
// payloads that do not start with '{' fall back to YAML. The result is not
// validated; call Validate before use.
func Parse(data []byte) (Survey, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Survey{}, ErrEmptyDocument
	}

	var doc documentFile
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Survey{}, fmt.Errorf("survey: decode json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return Survey{}, fmt.Errorf("survey: decode yaml: %w", err)
		}
	}

	return doc.survey(), nil
}

// ParseDocument decodes the payload carried by a loaded Document.
func ParseDocument(doc Document) (Survey, error) {
	s, err := Parse(doc.Raw())
	if err != nil {
		if loc := doc.Location(); loc != "" {
			return Survey{}, fmt.Errorf("%w (source %s)", err, loc)
		}
		return Survey{}, err
	}
	return s, nil
}

func (d documentFile) survey() Survey {
	out := Survey{Fields: make([]Field, 0, len(d.Survey))}
	for _, row := range d.Survey {
		out.Fields = append(out.Fields, Field{
			ID:       row.ID,
			Question: row.Question,
			Type:     FieldType(strings.TrimSpace(row.Type)),
			SubType:  SubType(strings.TrimSpace(row.SubType)),
			Required: bool(row.Required),
			MinChar:  row.MinChar,
			MinVal:   row.MinVal,
			PageNo:   row.PageNo,
			Options:  row.Options,
		})
	}
	return out
}

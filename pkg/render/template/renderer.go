package template

import "io"

// TemplateRenderer is the engine contract HTML renderers depend on.
type TemplateRenderer interface {
	// RenderTemplate executes a named template loaded from the engine's
	// sources. The extension is optional.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and executes inline template content.
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

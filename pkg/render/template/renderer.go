package template

import "io"

// TemplateRenderer evaluates named templates or inline template strings.
// When writers are supplied the rendered output is also copied to each one.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data map[string]any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}

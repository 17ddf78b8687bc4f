package render

import (
	"context"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Renderer converts a form schema into a byte representation (HTML, styled
// terminal text, ...). Implementations validate the form before producing
// output and return schema.Errors when it is invalid.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options RenderOptions) ([]byte, error)
}

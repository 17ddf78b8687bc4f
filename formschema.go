// Package formschema is the convenience entry point: it re-exports the schema
// types and wires the orchestrator for callers that just want output.
package formschema

import (
	"context"

	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/section"
)

type (
	Form       = schema.Form
	Section    = schema.Section
	Subsection = schema.Subsection
	Field      = schema.Field
	Option     = schema.Option
	Decorator  = schema.Decorator
	Component  = schema.Component

	// Errors lists every schema violation found by Validate.
	Errors = schema.Errors

	// RenderOptions carries per-request renderer settings.
	RenderOptions = render.RenderOptions
)

// ErrSchemaValidation matches any validation failure via errors.Is.
var ErrSchemaValidation = schema.ErrSchemaValidation

// Validate reports every violation in form. An empty result means valid.
func Validate(form Form) Errors {
	return schema.Validate(form)
}

// Parse decodes a form; an empty format tries JSON then YAML.
func Parse(data []byte, format schema.Format) (Form, error) {
	return schema.Parse(data, format)
}

// NewDispatcher builds a section dispatcher around the two collaborators.
func NewDispatcher(tabbed section.TabbedRenderer, single section.SubsectionRenderer, options ...section.Option) *section.Dispatcher {
	return section.New(tabbed, single, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML validates and renders form with the vanilla renderer.
func RenderHTML(ctx context.Context, form Form, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Form: &form})
}

// RenderCatalogForm renders a catalog form (the embedded examples unless
// orchestrator.WithCatalog says otherwise) with the named renderer.
func RenderCatalogForm(ctx context.Context, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:   formID,
		Renderer: rendererName,
	})
}

// ImportOpenAPI derives a form from the request body of an OpenAPI operation.
func ImportOpenAPI(ctx context.Context, document []byte, operationID string) (Form, error) {
	return openapi.Import(ctx, document, operationID)
}

package orchestrator

import (
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry. The default registry holds the
// vanilla and tui renderers.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithCatalog supplies the forms addressable by Request.FormID. Pass nil to
// disable the embedded example catalog.
func WithCatalog(catalog *schema.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
		o.catalogSpecified = true
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field. A name that is not registered fails Generate
// instead of falling back to another renderer. Empty names are ignored.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		o.defaultRenderer = name
		o.defaultRendererSet = true
	}
}

// WithThemeSelector enables theme resolution through go-theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithValidator overrides the schema validator.
func WithValidator(validator *schema.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithImporter overrides the OpenAPI importer used for Request.OpenAPI.
func WithImporter(importer *openapi.Importer) Option {
	return func(o *Orchestrator) {
		o.importer = importer
	}
}

// WithTransformers appends transformers run, in order, before validation.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithLogger sets the structured logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/tui"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const defaultRendererName = vanilla.Name

// ErrFormNotFound is returned when Request.FormID is not in the catalog.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// Orchestrator coordinates form resolution, validation, theming and
// rendering. It is safe for concurrent use once constructed.
type Orchestrator struct {
	registry           *render.Registry
	catalog            *schema.Catalog
	catalogSpecified   bool
	importer           *openapi.Importer
	validator          *schema.Validator
	defaultRenderer    string
	defaultRendererSet bool
	themeSelector      theme.ThemeSelector
	defaultTheme       string
	defaultVariant     string
	transformers       []Transformer
	logger             *zap.Logger
	initialiseErr      error
}

// New constructs an Orchestrator. Missing collaborators fall back to the
// built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation. Exactly one of FormID, Form or OpenAPI
// must be set.
type Request struct {
	// FormID selects a catalog form.
	FormID string
	// Form renders an inline form value.
	Form *schema.Form
	// OpenAPI holds a document; OperationID names the operation to import.
	OpenAPI     []byte
	OperationID string

	// Renderer names the renderer; empty uses the default.
	Renderer string
	// Section limits output to one section id.
	Section string
	// IDPrefix namespaces element ids in HTML output.
	IDPrefix string

	ThemeName    string
	ThemeVariant string
}

// Generate resolves, validates and renders the requested form. Validation
// failures return schema.Errors (wrapped) with every violation.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return nil, err
	}
	log := o.logger.With(zap.String("form", form.ID))

	for _, transformer := range o.transformers {
		if err := transformer.Transform(ctx, &form); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	if errs := o.validator.Validate(form); len(errs) > 0 {
		log.Warn("form failed validation",
			zap.Int("violations", len(errs)),
			zap.String("first", errs[0].Error()),
		)
		return nil, fmt.Errorf("orchestrator: %w", errs)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, render.RenderOptions{
		Section:  req.Section,
		IDPrefix: req.IDPrefix,
		Theme:    themeCfg,
	})
	if err != nil {
		log.Error("render failed", zap.String("renderer", renderer.Name()), zap.Error(err))
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	log.Debug("form rendered",
		zap.String("renderer", renderer.Name()),
		zap.String("section", req.Section),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Form resolves and validates the requested form without rendering it.
func (o *Orchestrator) Form(ctx context.Context, req Request) (schema.Form, error) {
	if err := o.initialiseErr; err != nil {
		return schema.Form{}, err
	}
	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return schema.Form{}, err
	}
	for _, transformer := range o.transformers {
		if err := transformer.Transform(ctx, &form); err != nil {
			return schema.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return form, o.validator.Validate(form).Err()
}

// Catalog exposes the configured catalog, which may be nil.
func (o *Orchestrator) Catalog() *schema.Catalog {
	return o.catalog
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (schema.Form, error) {
	sources := 0
	for _, set := range []bool{req.FormID != "", req.Form != nil, len(req.OpenAPI) > 0} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return schema.Form{}, errors.New("orchestrator: form id, form or openapi document is required")
	case sources > 1:
		return schema.Form{}, errors.New("orchestrator: form id, form and openapi document are mutually exclusive")
	}

	switch {
	case req.Form != nil:
		return req.Form.Clone(), nil
	case req.FormID != "":
		form, ok := o.catalog.Form(req.FormID)
		if !ok {
			return schema.Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, req.FormID)
		}
		return form.Clone(), nil
	default:
		if strings.TrimSpace(req.OperationID) == "" {
			return schema.Form{}, errors.New("orchestrator: operation id is required with an openapi document")
		}
		form, err := o.importer.Import(ctx, req.OpenAPI, req.OperationID)
		if err != nil {
			return schema.Form{}, fmt.Errorf("orchestrator: import openapi: %w", err)
		}
		return form, nil
	}
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target, explicit := strings.TrimSpace(name), true
	if target == "" {
		target, explicit = o.defaultRenderer, o.defaultRendererSet
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if explicit {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*render.ThemeConfig, error) {
	name := firstNonEmpty(req.ThemeName, o.defaultTheme)
	variant := firstNonEmpty(req.ThemeVariant, o.defaultVariant)
	if o.themeSelector == nil {
		if req.ThemeName != "" {
			return nil, fmt.Errorf("orchestrator: theme %q requested but no theme selector configured", req.ThemeName)
		}
		return nil, nil
	}
	if name == "" && variant == "" {
		return nil, nil
	}
	cfg, err := render.ResolveTheme(o.themeSelector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return cfg, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(tui.New())
	}
	if !o.catalogSpecified {
		catalog, err := schema.LoadFS(schema.EmbeddedFS())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load embedded forms: %w", err)
			return
		}
		o.catalog = catalog
	}
	if o.importer == nil {
		o.importer = openapi.NewImporter()
	}
	if o.validator == nil {
		o.validator = schema.NewValidator()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

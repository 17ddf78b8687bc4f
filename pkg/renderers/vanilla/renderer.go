package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formschema/pkg/render"
	rendertemplate "github.com/goliatone/go-formschema/pkg/render/template"
	"github.com/goliatone/go-formschema/pkg/render/template/pongo"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/section"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	validator        *schema.Validator
	components       map[string]string
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry overrides how fields are mapped to components.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithValidator overrides the validator run before rendering.
func WithValidator(validator *schema.Validator) Option {
	return func(cfg *config) {
		if validator != nil {
			cfg.validator = validator
		}
	}
}

// WithComponentTemplate maps a component name (as used by decorators) to a
// template path inside the template bundle.
func WithComponentTemplate(name, path string) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || strings.TrimSpace(path) == "" {
			return
		}
		cfg.components[name] = path
	}
}

// WithSanitizer replaces the policy applied to hints and subtitles.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer produces HTML for a form. Sections with several subsections
// become tab containers, single-subsection sections render without a tab
// strip.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	widgets    *widgets.Registry
	validator  *schema.Validator
	components map[string]string
	policy     *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		components: defaultComponents(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	if cfg.validator == nil {
		cfg.validator = schema.NewValidator()
	}
	if cfg.policy == nil {
		cfg.policy = defaultPolicy()
	}

	return &Renderer{
		templates:  renderer,
		widgets:    cfg.widgets,
		validator:  cfg.validator,
		components: cfg.components,
		policy:     cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render validates form and renders it. Invalid forms produce no markup and
// return schema.Errors listing every violation.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if errs := r.validator.Validate(form); len(errs) > 0 {
		return nil, errs
	}

	sections, err := selectSections(form, options.Section)
	if err != nil {
		return nil, err
	}

	prefix := domID(options.IDPrefix)
	if prefix == "" {
		prefix = "fs-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}

	p := &pass{
		renderer: r,
		form:     form,
		prefix:   prefix,
		widgets:  r.widgets.ResolveForm(form),
	}
	dispatcher := section.New(p, p, section.WithValidator(r.validator))

	views := make([]sectionView, 0, len(sections))
	for _, sec := range sections {
		result, err := dispatcher.Render(ctx, sec)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		views = append(views, sectionView{
			ID:    sec.ID,
			DOMID: sectionDOMID(prefix, sec.ID),
			Title: sec.Title,
			Kind:  result.Kind.String(),
			Style: result.Layout.Style(),
			Body:  result.Output,
		})
	}

	out, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"prefix":      prefix,
		"form":        newFormView(form),
		"sections":    views,
		"theme_style": options.Theme.Style(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(out), nil
}

func selectSections(form schema.Form, id string) ([]schema.Section, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return form.Sections, nil
	}
	sec, ok := form.Section(id)
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: section %q not found in form %q", id, form.ID)
	}
	return []schema.Section{sec}, nil
}

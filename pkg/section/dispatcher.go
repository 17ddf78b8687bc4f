package section

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrMissingRenderer is returned when a Dispatcher lacks a collaborator.
var ErrMissingRenderer = errors.New("section: tabbed and subsection renderers are required")

// TabbedRenderer presents several subsections as selectable tabs. Tab order
// must follow the slice order.
type TabbedRenderer interface {
	RenderTabs(ctx context.Context, sectionID string, subsections []schema.Subsection) (string, error)
}

// SubsectionRenderer presents a single subsection without a tab strip.
type SubsectionRenderer interface {
	RenderSubsection(ctx context.Context, sectionID string, subsection schema.Subsection) (string, error)
}

// TabbedRendererFunc adapts a function into a TabbedRenderer.
type TabbedRendererFunc func(ctx context.Context, sectionID string, subsections []schema.Subsection) (string, error)

// RenderTabs calls the underlying function.
func (fn TabbedRendererFunc) RenderTabs(ctx context.Context, sectionID string, subsections []schema.Subsection) (string, error) {
	return fn(ctx, sectionID, subsections)
}

// SubsectionRendererFunc adapts a function into a SubsectionRenderer.
type SubsectionRendererFunc func(ctx context.Context, sectionID string, subsection schema.Subsection) (string, error)

// RenderSubsection calls the underlying function.
func (fn SubsectionRendererFunc) RenderSubsection(ctx context.Context, sectionID string, subsection schema.Subsection) (string, error) {
	return fn(ctx, sectionID, subsection)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithValidator swaps the validator used by RenderForm.
func WithValidator(validator *schema.Validator) Option {
	return func(d *Dispatcher) {
		if validator != nil {
			d.validator = validator
		}
	}
}

// Dispatcher routes sections to the tabbed or single-subsection renderer.
type Dispatcher struct {
	tabbed    TabbedRenderer
	single    SubsectionRenderer
	validator *schema.Validator
}

// New constructs a Dispatcher around the two collaborators.
func New(tabbed TabbedRenderer, single SubsectionRenderer, options ...Option) *Dispatcher {
	d := &Dispatcher{
		tabbed:    tabbed,
		single:    single,
		validator: schema.NewValidator(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Decide is the dispatch predicate: more than one subsection means tabs,
// exactly one means a single container. Empty sections have no valid kind.
func Decide(section schema.Section) Kind {
	switch n := len(section.Subsections); {
	case n > 1:
		return KindTabbed
	case n == 1:
		return KindSingle
	default:
		return KindInvalid
	}
}

// Render validates section and delegates to the matching collaborator. On a
// validation failure the returned error is a schema.Errors list and no
// collaborator is called.
func (d *Dispatcher) Render(ctx context.Context, section schema.Section) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if errs := schema.ValidateSection(section); len(errs) > 0 {
		return Result{}, errs
	}
	if d == nil || d.tabbed == nil || d.single == nil {
		return Result{}, ErrMissingRenderer
	}

	result := Result{
		SectionID: section.ID,
		Layout:    ContainerLayout,
	}

	switch Decide(section) {
	case KindTabbed:
		// Copy so collaborators cannot reorder the caller's schema.
		subsections := append([]schema.Subsection(nil), section.Subsections...)
		out, err := d.tabbed.RenderTabs(ctx, section.ID, subsections)
		if err != nil {
			return Result{}, fmt.Errorf("section %s: render tabs: %w", section.ID, err)
		}
		result.Kind = KindTabbed
		result.Tabs = section.SubsectionIDs()
		result.Output = out
	default:
		only := section.Subsections[0]
		out, err := d.single.RenderSubsection(ctx, section.ID, only)
		if err != nil {
			return Result{}, fmt.Errorf("section %s: render subsection %s: %w", section.ID, only.ID, err)
		}
		result.Kind = KindSingle
		result.Subsection = only.ID
		result.Output = out
	}
	return result, nil
}

// RenderForm validates the whole form and then renders every section in
// order. Any violation aborts before the first section is rendered.
func (d *Dispatcher) RenderForm(ctx context.Context, form schema.Form) ([]Result, error) {
	validator := schema.NewValidator()
	if d != nil && d.validator != nil {
		validator = d.validator
	}
	if errs := validator.Validate(form); len(errs) > 0 {
		return nil, errs
	}

	results := make([]Result, 0, len(form.Sections))
	for _, section := range form.Sections {
		result, err := d.Render(ctx, section)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

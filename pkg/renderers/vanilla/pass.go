package vanilla

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// pass holds the state of a single Render call and implements both section
// collaborators.
type pass struct {
	renderer *Renderer
	form     schema.Form
	prefix   string
	widgets  map[string]string
}

func (p *pass) RenderTabs(ctx context.Context, sectionID string, subsections []schema.Subsection) (string, error) {
	tabs := make([]tabView, 0, len(subsections))
	for idx, sub := range subsections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		body, err := p.subsection(sectionID, sub)
		if err != nil {
			return "", err
		}
		base := subsectionDOMID(p.prefix, sectionID, sub.ID)
		tabs = append(tabs, tabView{
			ID:       sub.ID,
			Title:    firstNonEmpty(sub.Title, sub.ID),
			TabID:    base + "-tab",
			PanelID:  base + "-panel",
			Selected: idx == 0,
			Body:     body,
		})
	}
	return p.renderer.templates.RenderTemplate("templates/tabs.tmpl", map[string]any{
		"section_id": sectionID,
		"tabs":       tabs,
	})
}

func (p *pass) RenderSubsection(ctx context.Context, sectionID string, subsection schema.Subsection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := p.subsection(sectionID, subsection)
	if err != nil {
		return "", err
	}
	return p.renderer.templates.RenderTemplate("templates/single.tmpl", map[string]any{
		"section_id": sectionID,
		"body":       body,
	})
}

func (p *pass) subsection(sectionID string, sub schema.Subsection) (string, error) {
	fields := make([]string, 0, len(sub.Fields))
	for _, field := range sub.Fields {
		markup, err := p.field(field)
		if err != nil {
			return "", err
		}
		fields = append(fields, markup)
	}
	return p.renderer.templates.RenderTemplate("templates/subsection.tmpl", map[string]any{
		"sub": subsectionView{
			ID:       sub.ID,
			DOMID:    subsectionDOMID(p.prefix, sectionID, sub.ID),
			Title:    sub.Title,
			Subtitle: p.renderer.sanitize(sub.Subtitle),
		},
		"fields": fields,
	})
}

func (p *pass) field(field schema.Field) (string, error) {
	widget := p.widgets[field.ID]
	tmpl, ok := p.renderer.components[widget]
	if !ok {
		return "", fmt.Errorf("component %q not available for field %q", widget, field.ID)
	}

	dec, _ := p.form.Decorator(field.ID)
	view := newFieldView(p.prefix, field, widget, dec)
	view.Hint = p.renderer.sanitize(dec.Hint)

	data := map[string]any{"field": view}
	control, err := p.renderer.templates.RenderTemplate(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", widget, field.ID, err)
	}
	data["control"] = control
	return p.renderer.templates.RenderTemplate("templates/field.tmpl", data)
}

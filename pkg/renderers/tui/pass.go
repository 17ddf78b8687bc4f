package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

const tabSeparator = "│"

// pass carries one Render call and implements both section collaborators.
type pass struct {
	renderer *Renderer
	form     schema.Form
	styles   styles
	widgets  map[string]string
}

func (p *pass) RenderTabs(ctx context.Context, _ string, subsections []schema.Subsection) (string, error) {
	labels := make([]string, 0, len(subsections)*2)
	panels := make([]string, 0, len(subsections))
	for idx, sub := range subsections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		title := firstNonEmpty(sub.Title, sub.ID)
		if idx > 0 {
			labels = append(labels, p.styles.muted.Render(tabSeparator))
		}
		if idx == 0 {
			labels = append(labels, p.styles.tabActive.Render(title))
		} else {
			labels = append(labels, p.styles.tabInactive.Render(title))
		}
		panels = append(panels, p.styles.panel.Render("▸ "+title), p.subsection(sub))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{strip}, panels...)...), nil
}

func (p *pass) RenderSubsection(ctx context.Context, _ string, subsection schema.Subsection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines := make([]string, 0, 2)
	if subsection.Title != "" {
		lines = append(lines, p.styles.panel.Render(subsection.Title))
	}
	lines = append(lines, p.subsection(subsection))
	return p.styles.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)), nil
}

func (p *pass) subsection(sub schema.Subsection) string {
	var lines []string
	if subtitle := p.renderer.plainText(sub.Subtitle); subtitle != "" {
		lines = append(lines, p.styles.muted.Render(subtitle))
	}
	for _, field := range sub.Fields {
		lines = append(lines, p.field(field)...)
	}
	return strings.Join(lines, "\n")
}

func (p *pass) field(field schema.Field) []string {
	widget := p.widgets[field.ID]
	lines := []string{
		p.styles.field.Render("• "+firstNonEmpty(field.Title, field.ID)) + " " +
			p.styles.muted.Render("‹"+widget+"›"),
	}

	marker := optionMarker(widget)
	for _, opt := range field.Options {
		lines = append(lines, "    "+marker+" "+firstNonEmpty(opt.Title, opt.ID))
	}
	if widget == widgets.WidgetToggle {
		lines = append(lines, "    [ ] off")
	}
	if dec, ok := p.form.Decorator(field.ID); ok {
		if hint := p.renderer.plainText(dec.Hint); hint != "" {
			lines = append(lines, "    "+p.styles.muted.Render(hint))
		}
	}
	return lines
}

func optionMarker(widget string) string {
	switch widget {
	case widgets.WidgetCheckboxGroup, widgets.WidgetMultiSelect:
		return "☐"
	default:
		return "○"
	}
}

package tui

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/section"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Name is the registry key of the terminal preview renderer.
const Name = "tui"

// Theme tokens consulted for colours, in order of preference.
var (
	accentTokens = []string{"color.primary", "colors.primary", "primary"}
	mutedTokens  = []string{"color.muted", "colors.muted", "muted"}
)

// Renderer prints a read-only preview of a form for terminals. Sections with
// several subsections get a tab strip, the rest a bordered box.
type Renderer struct {
	lg        *lipgloss.Renderer
	palette   Palette
	width     int
	widgets   *widgets.Registry
	validator *schema.Validator
	plain     *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the default palette bound to stdout.
func New(options ...Option) *Renderer {
	r := &Renderer{palette: DefaultPalette}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.lg == nil {
		r.lg = lipgloss.DefaultRenderer()
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
	}
	if r.validator == nil {
		r.validator = schema.NewValidator()
	}
	r.plain = bluemonday.StrictPolicy()
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render validates form and draws every selected section.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.RenderOptions) ([]byte, error) {
	if errs := r.validator.Validate(form); len(errs) > 0 {
		return nil, errs
	}

	sections := form.Sections
	if id := strings.TrimSpace(options.Section); id != "" {
		sec, ok := form.Section(id)
		if !ok {
			return nil, fmt.Errorf("tui: section %q not found in form %q", id, form.ID)
		}
		sections = []schema.Section{sec}
	}

	p := &pass{
		renderer: r,
		form:     form,
		styles:   r.styles(options.Theme),
		widgets:  r.widgets.ResolveForm(form),
	}
	dispatcher := section.New(p, p, section.WithValidator(r.validator))

	blocks := []string{p.styles.title.Render(firstNonEmpty(form.Title, form.ID))}
	for _, sec := range sections {
		result, err := dispatcher.Render(ctx, sec)
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
		heading := p.styles.section.Render(firstNonEmpty(sec.Title, sec.ID)) +
			" " + p.styles.muted.Render("("+result.Kind.String()+")")
		blocks = append(blocks, heading, result.Output)
	}
	return []byte(lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"), nil
}

type styles struct {
	title       lipgloss.Style
	section     lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	panel       lipgloss.Style
	box         lipgloss.Style
	field       lipgloss.Style
	muted       lipgloss.Style
}

func (r *Renderer) styles(cfg *render.ThemeConfig) styles {
	accent := lipgloss.Color(themeToken(cfg, accentTokens, r.palette.Accent))
	muted := lipgloss.Color(themeToken(cfg, mutedTokens, r.palette.Muted))

	box := r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if r.width > 0 {
		box = box.Width(r.width)
	}

	return styles{
		title:       r.lg.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		section:     r.lg.NewStyle().Bold(true).Underline(true),
		tabActive:   r.lg.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		tabInactive: r.lg.NewStyle().Foreground(muted).Padding(0, 1),
		panel:       r.lg.NewStyle().Bold(true),
		box:         box,
		field:       r.lg.NewStyle(),
		muted:       r.lg.NewStyle().Foreground(muted).Italic(true),
	}
}

func themeToken(cfg *render.ThemeConfig, keys []string, fallback string) string {
	if cfg == nil {
		return fallback
	}
	for _, key := range keys {
		if value := strings.TrimSpace(cfg.Tokens[key]); value != "" {
			return value
		}
	}
	return fallback
}

// plainText strips markup from hints so they print as text.
func (r *Renderer) plainText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(r.plain.Sanitize(value)))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Palette holds the two colours the preview uses. Values are anything
// lipgloss.Color accepts (hex or ANSI index).
type Palette struct {
	Accent string
	Muted  string
}

// DefaultPalette is used when neither options nor the theme supply colours.
var DefaultPalette = Palette{Accent: "#7D56F4", Muted: "#8A8A8A"}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithLipglossRenderer binds styles to r, typically one created for a
// specific writer or with a forced colour profile.
func WithLipglossRenderer(r *lipgloss.Renderer) Option {
	return func(tr *Renderer) {
		if r != nil {
			tr.lg = r
		}
	}
}

// WithPalette overrides the default colours. Empty entries keep defaults.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		if p.Accent != "" {
			r.palette.Accent = p.Accent
		}
		if p.Muted != "" {
			r.palette.Muted = p.Muted
		}
	}
}

// WithWidth fixes the width of single-subsection boxes. Zero lets content
// decide.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 0 {
			r.width = width
		}
	}
}

// WithWidgetRegistry overrides component resolution.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.widgets = registry
		}
	}
}

// WithValidator overrides the validator run before rendering.
func WithValidator(validator *schema.Validator) Option {
	return func(r *Renderer) {
		if validator != nil {
			r.validator = validator
		}
	}
}

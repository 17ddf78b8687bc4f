package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the renderer-facing view of a go-theme selection.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// ResolveTheme asks selector for name/variant and flattens the manifest
// tokens, letting variant tokens override the base ones. Every token is also
// exposed as a CSS custom property ("brand" -> "--brand").
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme %q/%q not found", name, variant)
	}

	cfg := &ThemeConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  make(map[string]string),
	}
	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
		if v, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Tokens {
				cfg.Tokens[key] = value
			}
		}
	}
	cfg.CSSVars = cssVars(cfg.Tokens)
	return cfg, nil
}

// Style renders the CSS variables as a deterministic inline declaration list.
func (c *ThemeConfig) Style() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+":"+c.CSSVars[key])
	}
	return strings.Join(parts, ";")
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + strings.ReplaceAll(name, ".", "-")
		}
		out[name] = value
	}
	return out
}

package render_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/schema"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, schema.Form, render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer{name: "vanilla"})
	reg.MustRegister(namedRenderer{name: "tui"})

	if err := reg.Register(namedRenderer{name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := reg.Register(namedRenderer{name: "  "}); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("vanilla") || reg.Has("preact") {
		t.Fatalf("Has mismatch")
	}
	_, err := reg.Get("preact")
	if err == nil || !strings.Contains(err.Error(), "available: tui, vanilla") {
		t.Fatalf("expected not found error listing names, got %v", err)
	}
	if got := reg.MustGet("tui").Name(); got != "tui" {
		t.Fatalf("MustGet returned %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustGet should panic for unknown names")
		}
	}()
	reg.MustGet("preact")
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestResolveTheme_MergesVariantTokens(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":         "#123456",
				"surface.color": "#ffffff",
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"surface.color": "#000000"}},
			},
		},
	}}

	cfg, err := render.ResolveTheme(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	if diff := cmp.Diff([][2]string{{"acme", "dark"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	wantVars := map[string]string{"--brand": "#123456", "--surface-color": "#000000"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Style(); got != "--brand:#123456;--surface-color:#000000" {
		t.Fatalf("style mismatch: %q", got)
	}
}

func TestResolveTheme_Errors(t *testing.T) {
	if _, err := render.ResolveTheme(nil, "a", "b"); err == nil {
		t.Fatalf("expected nil selector error")
	}
	boom := errors.New("boom")
	if _, err := render.ResolveTheme(&stubThemeSelector{err: boom}, "a", "b"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
	if _, err := render.ResolveTheme(&stubThemeSelector{}, "a", "b"); err == nil {
		t.Fatalf("expected missing selection error")
	}

	var nilCfg *render.ThemeConfig
	if nilCfg.Style() != "" {
		t.Fatalf("nil config must render empty style")
	}
}

func TestGroupErrors(t *testing.T) {
	form := schema.Form{
		Sections: []schema.Section{
			{ID: "empty", Title: "Empty"},
			{ID: "s", Title: "S", Subsections: []schema.Subsection{{
				ID:     "sub",
				Fields: []schema.Field{{ID: "tags", Type: schema.FieldTypeArray}},
			}}},
		},
		Decorators: map[string]schema.Decorator{"array1": {Hint: "x"}},
	}

	report := render.GroupErrors(schema.Validate(form))
	if report.Empty() {
		t.Fatalf("expected a populated report")
	}
	want := render.ErrorReport{
		Form:       []string{"form id is required"},
		Sections:   map[string][]string{"empty": {"section must contain at least one subsection"}},
		Fields:     map[string][]string{"s/sub/tags": {"field of type array requires at least one option"}},
		Decorators: map[string][]string{"array1": {`decorator references unknown field "array1"`}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		t.Fatalf("write report: %v", err)
	}
	wantText := strings.Join([]string{
		"form: form id is required",
		"section empty: section must contain at least one subsection",
		"field s/sub/tags: field of type array requires at least one option",
		`decorator array1: decorator references unknown field "array1"`,
		"",
	}, "\n")
	if diff := cmp.Diff(wantText, buf.String()); diff != "" {
		t.Fatalf("report text mismatch (-want +got):\n%s", diff)
	}
}

func TestReportFromError(t *testing.T) {
	if _, ok := render.ReportFromError(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no report")
	}
	err := schema.Validate(schema.Form{}).Err()
	if !render.IsInvalidSchema(err) {
		t.Fatalf("expected invalid schema error")
	}
	report, ok := render.ReportFromError(err)
	if !ok || len(report.Form) != 1 {
		t.Fatalf("unexpected report: %#v", report)
	}
}

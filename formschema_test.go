package formschema

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/section"
)

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.ReadFile(StylesheetFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("templates: %v", err)
	}
	if _, err := fs.Stat(EmbeddedForms(), "arrays-form.yaml"); err != nil {
		t.Fatalf("forms: %v", err)
	}
}

func TestRenderCatalogForm(t *testing.T) {
	out, err := RenderCatalogForm(context.Background(), "arraysForm", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-form-id="arraysForm"`) {
		t.Fatalf("unexpected output\n%s", out)
	}
}

func TestRenderHTML_InvalidForm(t *testing.T) {
	form := Form{ID: "f", Sections: []Section{{ID: "s", Title: "S"}}}
	out, err := RenderHTML(context.Background(), form)
	if out != nil || !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected validation failure, got %q %v", out, err)
	}
	if errs := Validate(form); len(errs) != 1 || errs[0].Code != schema.CodeSectionEmpty {
		t.Fatalf("unexpected violations: %v", errs)
	}
}

func TestNewDispatcher(t *testing.T) {
	d := NewDispatcher(
		section.TabbedRendererFunc(func(_ context.Context, _ string, subs []Subsection) (string, error) {
			return "tabs", nil
		}),
		section.SubsectionRendererFunc(func(_ context.Context, _ string, sub Subsection) (string, error) {
			return "single:" + sub.ID, nil
		}),
	)
	form, err := Parse([]byte(`{"id":"x","sections":[{"id":"s","title":"S","subsections":[{"id":"only"}]}]}`), "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := d.Render(context.Background(), form.Sections[0])
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Kind != section.KindSingle || result.Output != "single:only" {
		t.Fatalf("unexpected result %+v", result)
	}
}

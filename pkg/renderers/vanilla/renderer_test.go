package vanilla_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, r *vanilla.Renderer, form schema.Form, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_ArraysFormSingleSubsection(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	output := renderString(t, newRenderer(t), form, render.RenderOptions{IDPrefix: "fs-test"})

	assertContains(t, output,
		`<form id="fs-test" class="fs-form" data-form-id="arraysForm">`,
		`<i class="fa fa-th-large" aria-hidden="true"></i>`,
		`data-section-id="arraysSection" data-layout="single"`,
		`style="display:flex;height:100%;flex-shrink:0"`,
		`<div class="fs-single" data-section-id="arraysSection">`,
		`<h3 class="fs-subsection__title">Store Array Values</h3>`,
		`<select id="fs-test-f-array1" name="array1" multiple aria-describedby="fs-test-f-array1-hint">`,
		`<option value="op4">Option 4</option>`,
		`<p class="fs-field__hint" id="fs-test-f-array1-hint">Select a whole bunch.</p>`,
		`data-field-id="array2" data-field-type="array" data-component="checkboxgroup"`,
		`<input type="checkbox" id="fs-test-f-array2-o-op1" name="array2" value="op1"> Option 1`,
	)
	if strings.Contains(output, `role="tablist"`) {
		t.Fatalf("single subsection must not render a tab strip\n%s", output)
	}
}

func TestRenderer_TabbedSectionKeepsOrder(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "preferencesForm")
	output := renderString(t, newRenderer(t), form, render.RenderOptions{IDPrefix: "p"})

	assertContains(t, output,
		`data-section-id="notificationsSection" data-layout="tabbed"`,
		`<div class="fs-tabs__list" role="tablist">`,
		`id="p-s-notificationsSection-u-channels-tab" aria-controls="p-s-notificationsSection-u-channels-panel" aria-selected="true"`,
		`id="p-s-notificationsSection-u-topics-tab" aria-controls="p-s-notificationsSection-u-topics-panel" aria-selected="false"`,
		`id="p-s-notificationsSection-u-topics-panel" aria-labelledby="p-s-notificationsSection-u-topics-tab" hidden>`,
		`data-columns="3"`,
		`data-section-id="profileSection" data-layout="single"`,
	)

	channels := strings.Index(output, `data-subsection-id="channels"`)
	topics := strings.Index(output, `data-subsection-id="topics"`)
	if channels < 0 || topics < 0 || channels > topics {
		t.Fatalf("tab order must follow subsection order (channels=%d topics=%d)", channels, topics)
	}
	if got := strings.Count(output, `role="tablist"`); got != 1 {
		t.Fatalf("expected exactly one tab strip, got %d", got)
	}
	if got := strings.Count(output, `role="tab" `); got != 2 {
		t.Fatalf("expected two tabs, got %d", got)
	}
}

func TestRenderer_SectionFilter(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "preferencesForm")
	r := newRenderer(t)

	output := renderString(t, r, form, render.RenderOptions{IDPrefix: "p", Section: "profileSection"})
	if strings.Contains(output, "notificationsSection") {
		t.Fatalf("filtered output must omit other sections\n%s", output)
	}
	assertContains(t, output, `<p class="fs-field__hint" id="p-f-displayName-hint">Shown next to your comments.</p>`)

	if _, err := r.Render(testsupport.Context(), form, render.RenderOptions{Section: "nope"}); err == nil {
		t.Fatalf("expected unknown section error")
	}
}

func TestRenderer_InvalidFormRendersNothing(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	form.Decorators = map[string]schema.Decorator{"ghost": {Hint: "boo"}}
	form.Sections = append(form.Sections, schema.Section{ID: "empty", Title: "Empty"})

	out, err := newRenderer(t).Render(context.Background(), form, render.RenderOptions{})
	if out != nil {
		t.Fatalf("invalid forms must not produce output, got %q", out)
	}
	if !errors.Is(err, schema.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	errs, _ := schema.AsErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected every violation to be reported, got %v", errs)
	}
}

func TestRenderer_GeneratedPrefixAndTheme(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	output := renderString(t, newRenderer(t), form, render.RenderOptions{
		Theme: &render.ThemeConfig{CSSVars: map[string]string{"--brand": "#123456"}},
	})
	assertContains(t, output, `style="--brand:#123456"`, `<form id="fs-`)
}

func TestRenderer_SanitizesHints(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	form.Decorators = map[string]schema.Decorator{
		"array1": {Hint: `Pick <strong>many</strong><script>alert(1)</script>`},
	}
	output := renderString(t, newRenderer(t), form, render.RenderOptions{IDPrefix: "x"})
	assertContains(t, output, `Pick <strong>many</strong>`)
	if strings.Contains(output, "<script>") {
		t.Fatalf("script tags must be stripped\n%s", output)
	}
}

func TestRenderer_UnknownComponent(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	form.Decorators = map[string]schema.Decorator{
		"array2": {Component: &schema.Component{Type: "stars"}},
	}
	if _, err := newRenderer(t).Render(testsupport.Context(), form, render.RenderOptions{}); err == nil || !strings.Contains(err.Error(), `component "stars"`) {
		t.Fatalf("expected unknown component error, got %v", err)
	}

	r := newRenderer(t, vanilla.WithComponentTemplate("stars", "templates/components/select.tmpl"))
	output := renderString(t, r, form, render.RenderOptions{IDPrefix: "s"})
	assertContains(t, output, `data-component="stars"`, `<select id="s-f-array2" name="array2">`)
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != vanilla.Name {
		t.Fatalf("name mismatch: %s", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("content type mismatch: %s", r.ContentType())
	}
}

func TestRenderer_EmbeddedFormsGolden(t *testing.T) {
	cases := []struct {
		formID string
		golden string
	}{
		{formID: "arraysForm", golden: "arrays-form.golden.html"},
		{formID: "preferencesForm", golden: "preferences-form.golden.html"},
	}
	r := newRenderer(t)
	for _, tc := range cases {
		t.Run(tc.formID, func(t *testing.T) {
			form := testsupport.EmbeddedForm(t, tc.formID)
			got := renderString(t, r, form, render.RenderOptions{IDPrefix: "golden"})

			path := filepath.Join("testdata", tc.golden)
			if testsupport.WriteMaybeGolden(t, path, []byte(got)) {
				return
			}
			want := testsupport.MustReadGoldenString(t, path)
			if diff := testsupport.CompareGolden(want, got); diff != "" {
				t.Fatalf("golden mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_WithTemplatesDir(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	r := newRenderer(t, vanilla.WithTemplatesDir("."))
	got := renderString(t, r, form, render.RenderOptions{IDPrefix: "golden"})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "arrays-form.golden.html"))
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("templates on disk must match the embedded bundle (-want +got):\n%s", diff)
	}
}

var elementID = regexp.MustCompile(`\sid="([^"]*)"`)
var idReference = regexp.MustCompile(`\s(?:for|aria-controls|aria-labelledby|aria-describedby)="([^"]*)"`)

func TestRenderer_DOMIDsAreUnique(t *testing.T) {
	form := schema.Form{
		ID:    "collide",
		Title: "Collide",
		Sections: []schema.Section{{
			ID:    "profile",
			Title: "Profile",
			Subsections: []schema.Subsection{
				{ID: "profile", Title: "Profile", Fields: []schema.Field{
					{ID: "profile", Type: "string", Title: "  Profile  "},
					{ID: "a.b", Type: "string", Title: "Dotted"},
					{ID: "a-b", Type: "string", Title: "Dashed"},
					{ID: "a_2eb", Type: "string", Title: "Escaped lookalike"},
				}},
				{ID: "extra", Title: "Extra", Fields: []schema.Field{{
					ID:      "choice",
					Type:    schema.FieldTypeArray,
					Title:   "Choice",
					Options: []schema.Option{{ID: "x.y"}, {ID: "x-y"}, {ID: "hint"}},
				}}},
			},
		}},
		Decorators: map[string]schema.Decorator{
			"profile": {Hint: "about you"},
			"choice":  {Component: &schema.Component{Type: "checkboxgroup"}},
		},
	}
	output := renderString(t, newRenderer(t), form, render.RenderOptions{IDPrefix: "p"})

	seen := map[string]int{}
	for _, match := range elementID.FindAllStringSubmatch(output, -1) {
		seen[match[1]]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("duplicate id %q x%d", id, count)
		}
	}
	for _, match := range idReference.FindAllStringSubmatch(output, -1) {
		if seen[match[1]] != 1 {
			t.Errorf("reference to %q does not resolve to exactly one element", match[1])
		}
	}
	assertContains(t, output,
		`id="p-s-profile"`,
		`id="p-s-profile-u-profile"`,
		`id="p-f-profile"`,
		`id="p-f-a_2eb"`,
		`id="p-f-a_2db"`,
		`id="p-f-a_5f2eb"`,
		`id="p-f-choice-o-x_2ey"`,
		`id="p-f-choice-o-hint"`,
		`for="p-f-profile">Profile</label>`,
	)
}

func TestRenderer_WithSanitizer(t *testing.T) {
	form := testsupport.EmbeddedForm(t, "arraysForm")
	form.Decorators["array1"] = schema.Decorator{Hint: `Pick <strong>many</strong>`}

	output := renderString(t, newRenderer(t, vanilla.WithSanitizer(bluemonday.StrictPolicy())), form, render.RenderOptions{IDPrefix: "x"})
	assertContains(t, output, `id="x-f-array1-hint">Pick many</p>`)
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) RenderTemplate(name string, _ map[string]any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "[" + name + "]", nil
}

func (r *recordingTemplates) RenderString(string, map[string]any, ...io.Writer) (string, error) {
	return "", errors.New("not supported")
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	templates := &recordingTemplates{}
	r := newRenderer(t, vanilla.WithTemplateRenderer(nil), vanilla.WithTemplateRenderer(templates))

	output := renderString(t, r, testsupport.EmbeddedForm(t, "arraysForm"), render.RenderOptions{})
	if output != "[templates/form.tmpl]" {
		t.Fatalf("expected the injected renderer to produce the page, got %q", output)
	}
	want := []string{
		"templates/components/multiselect.tmpl",
		"templates/field.tmpl",
		"templates/components/checkboxgroup.tmpl",
		"templates/field.tmpl",
		"templates/subsection.tmpl",
		"templates/single.tmpl",
		"templates/form.tmpl",
	}
	if diff := testsupport.CompareGolden(want, templates.names); diff != "" {
		t.Fatalf("template calls mismatch (-want +got):\n%s", diff)
	}
}

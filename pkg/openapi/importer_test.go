package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	return testsupport.MustReadGolden(t, filepath.Join("testdata", "preferences.json"))
}

func TestImport_BuildsSectionsAndDecorators(t *testing.T) {
	form, err := openapi.Import(context.Background(), loadFixture(t), "updatePreferences")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	want := schema.Form{
		ID:     "updatePreferences",
		Title:  "Update preferences",
		FaIcon: &schema.Icon{Name: "sliders-h"},
		Sections: []schema.Section{
			{
				ID:    "notifications",
				Title: "Notifications",
				Subsections: []schema.Subsection{
					{
						ID:    "channels",
						Title: "Channels",
						Fields: []schema.Field{{
							ID:    "channels",
							Type:  "array",
							Title: "Notify me by",
							Options: []schema.Option{
								{ID: "email", Title: "Email"},
								{ID: "sms", Title: "SMS"},
								{ID: "push", Title: "Push"},
							},
						}},
					},
					{
						ID:    "topics",
						Title: "Topics",
						Fields: []schema.Field{{
							ID:    "topics",
							Type:  "array",
							Title: "Topics",
							Options: []schema.Option{
								{ID: "billing", Title: "Billing"},
								{ID: "security", Title: "Security"},
							},
						}},
					},
				},
			},
			{
				ID:    "main",
				Title: "Details",
				Subsections: []schema.Subsection{{
					ID: "default",
					Fields: []schema.Field{
						{ID: "displayName", Type: "string", Title: "Display name"},
						{ID: "address.city", Type: "string", Title: "City"},
						{ID: "address.zip", Type: "string", Title: "Zip"},
					},
				}},
			},
		},
		Decorators: map[string]schema.Decorator{
			"channels":    {Component: &schema.Component{Type: "checkboxgroup", Props: map[string]any{"columns": float64(3)}}},
			"topics":      {Hint: "Pick at least one."},
			"displayName": {Hint: "Shown next to your comments."},
			"address.zip": {Component: &schema.Component{Type: "input"}},
		},
	}
	if diff := testsupport.CompareGolden(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if errs := schema.Validate(form); len(errs) != 0 {
		t.Fatalf("imported form should validate: %v", errs)
	}
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()
	data := loadFixture(t)

	if _, err := openapi.Import(ctx, data, "missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Import(ctx, data, "get:/ping"); err == nil {
		t.Fatalf("expected error for operation without request body")
	}
	if _, err := openapi.Import(ctx, []byte("  "), "x"); err == nil {
		t.Fatalf("expected error for empty document")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := openapi.Import(cancelled, data, "updatePreferences"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestImporter_OperationsAndDefaultSection(t *testing.T) {
	importer := openapi.NewImporter(
		openapi.WithDefaultSection("general", "General"),
		openapi.WithDocumentValidation(true),
	)
	ids, err := importer.Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if diff := cmp.Diff([]string{"get:/ping", "updatePreferences"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	form, err := importer.Import(context.Background(), loadFixture(t), "updatePreferences")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	last := form.Sections[len(form.Sections)-1]
	if last.ID != "general" || last.Title != "General" {
		t.Fatalf("default section not applied: %+v", last)
	}
}

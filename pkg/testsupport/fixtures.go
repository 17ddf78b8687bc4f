package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// LoadForm reads a JSON or YAML fixture into a schema.Form, failing the test
// on error.
func LoadForm(t *testing.T, path string) schema.Form {
	t.Helper()

	form, err := LoadFormFromPath(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadFormFromPath returns a Form without requiring testing.T so fixtures can
// be wired in setup functions.
func LoadFormFromPath(path string) (schema.Form, error) {
	if path == "" {
		return schema.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Form{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	form, err := schema.Parse(data, schema.DetectFormat(path))
	if err != nil {
		return schema.Form{}, fmt.Errorf("testsupport: parse form: %w", err)
	}
	return form, nil
}

// EmbeddedForm returns one of the bundled example forms.
func EmbeddedForm(t *testing.T, id string) schema.Form {
	t.Helper()

	catalog, err := schema.LoadFS(schema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded forms: %v", err)
	}
	form, ok := catalog.Form(id)
	if !ok {
		t.Fatalf("embedded form %q not found (have %v)", id, catalog.IDs())
	}
	return form
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop comparing.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so tests can assert they match.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

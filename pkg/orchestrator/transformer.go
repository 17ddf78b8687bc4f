package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Transformer mutates a form before validation. The orchestrator passes a
// private copy, so implementations may edit it freely.
type Transformer interface {
	Transform(ctx context.Context, form *schema.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *schema.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *schema.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document:
//
//	title: Custom title
//	icon: cog
//	sections:
//	  profileSection: {title: About you}
//	fields:
//	  displayName:
//	    title: Nickname
//	    hint: Visible to everyone.
//	    component: {type: textarea, rows: 2}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title    string                  `yaml:"title"`
	Icon     string                  `yaml:"icon"`
	Sections map[string]sectionPatch `yaml:"sections"`
	Fields   map[string]fieldPatch   `yaml:"fields"`
}

type sectionPatch struct {
	Title string `yaml:"title"`
}

type fieldPatch struct {
	Title     string            `yaml:"title"`
	Hint      string            `yaml:"hint"`
	Component *schema.Component `yaml:"component"`
}

// NewPresetTransformer parses a preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Unknown section or field ids are errors.
func (t *PresetTransformer) Transform(ctx context.Context, form *schema.Form) error {
	if form == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	if doc.Title != "" {
		form.Title = doc.Title
	}
	if doc.Icon != "" {
		form.FaIcon = &schema.Icon{Name: doc.Icon}
	}

	for id, patch := range doc.Sections {
		sec := findSection(form, id)
		if sec == nil {
			return fmt.Errorf("preset transformer: section %q not found", id)
		}
		if patch.Title != "" {
			sec.Title = patch.Title
		}
	}

	for id, patch := range doc.Fields {
		field := findField(form, id)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", id)
		}
		if patch.Title != "" {
			field.Title = patch.Title
		}
		if patch.Hint == "" && patch.Component == nil {
			continue
		}
		if form.Decorators == nil {
			form.Decorators = make(map[string]schema.Decorator)
		}
		dec := form.Decorators[id]
		if patch.Hint != "" {
			dec.Hint = patch.Hint
		}
		if patch.Component != nil {
			dec.Component = patch.Component.Clone()
		}
		form.Decorators[id] = dec
	}
	return nil
}

func findSection(form *schema.Form, id string) *schema.Section {
	for i := range form.Sections {
		if form.Sections[i].ID == id {
			return &form.Sections[i]
		}
	}
	return nil
}

func findField(form *schema.Form, id string) *schema.Field {
	for i := range form.Sections {
		subs := form.Sections[i].Subsections
		for j := range subs {
			for k := range subs[j].Fields {
				if subs[j].Fields[k].ID == id {
					return &subs[j].Fields[k]
				}
			}
		}
	}
	return nil
}

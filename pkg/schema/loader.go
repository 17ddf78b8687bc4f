package schema

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Catalog holds forms loaded from a filesystem, keyed by form id. It is safe
// for concurrent readers once LoadFS returns.
type Catalog struct {
	forms   map[string]Form
	sources map[string]string
}

// LoadFS walks fsys and parses every JSON/YAML file as one form. A nil fsys
// yields an empty catalog. Forms are not validated here; loading and
// validation stay separate so callers can report every violation at once.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{
		forms:   make(map[string]Form),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		format := DetectFormat(path)
		if format == "" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		form, err := Parse(data, format)
		if err != nil {
			return fmt.Errorf("schema: file %s: %w", path, err)
		}

		id := strings.TrimSpace(form.ID)
		if id == "" {
			return fmt.Errorf("schema: file %s defines a form without an id", path)
		}
		if prev, exists := catalog.sources[id]; exists {
			return fmt.Errorf("schema: duplicate form %q (files %s and %s)", id, prev, path)
		}
		catalog.forms[id] = form
		catalog.sources[id] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Form returns the form registered under id.
func (c *Catalog) Form(id string) (Form, bool) {
	if c == nil {
		return Form{}, false
	}
	form, ok := c.forms[id]
	return form, ok
}

// Source reports which file a form was loaded from.
func (c *Catalog) Source(id string) string {
	if c == nil {
		return ""
	}
	return c.sources[id]
}

// IDs lists form ids in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the catalog holds any forms.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.forms) == 0
}

// LoadFile reads a single form from disk, picking the codec from the file
// extension. Unknown extensions are parsed as JSON first, then YAML.
func LoadFile(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	form, err := Parse(data, DetectFormat(path))
	if err != nil {
		return Form{}, fmt.Errorf("schema: file %s: %w", path, err)
	}
	return form, nil
}

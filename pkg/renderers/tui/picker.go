package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// AllSections is the label offered by PickSection for rendering every
// section; choosing it yields an empty section id.
const AllSections = "(all sections)"

// Picker asks the user which form and section to preview.
type Picker struct {
	driver PromptDriver
}

// NewPicker wraps driver; nil falls back to the survey driver.
func NewPicker(driver PromptDriver) *Picker {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Picker{driver: driver}
}

// PickForm returns the id of the chosen catalog form. A catalog with a single
// form answers without prompting.
func (p *Picker) PickForm(ctx context.Context, catalog *schema.Catalog) (string, error) {
	ids := catalog.IDs()
	switch len(ids) {
	case 0:
		return "", ErrNoChoices
	case 1:
		return ids[0], nil
	}

	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = id
		if form, ok := catalog.Form(id); ok && form.Title != "" {
			labels[i] = fmt.Sprintf("%s (%s)", form.Title, id)
		}
	}
	idx, err := p.choose(ctx, SelectConfig{
		Message: "Form",
		Options: labels,
	})
	if err != nil {
		return "", err
	}
	return ids[idx], nil
}

// PickSection returns the chosen section id, or "" for every section. Forms
// with one section answer without prompting.
func (p *Picker) PickSection(ctx context.Context, form schema.Form) (string, error) {
	switch len(form.Sections) {
	case 0:
		return "", ErrNoChoices
	case 1:
		return form.Sections[0].ID, nil
	}

	labels := make([]string, 0, len(form.Sections)+1)
	labels = append(labels, AllSections)
	for _, sec := range form.Sections {
		labels = append(labels, sectionLabel(sec))
	}
	idx, err := p.choose(ctx, SelectConfig{
		Message: fmt.Sprintf("Section of %s", form.ID),
		Options: labels,
	})
	if err != nil {
		return "", err
	}
	if idx == 0 {
		return "", nil
	}
	return form.Sections[idx-1].ID, nil
}

func (p *Picker) choose(ctx context.Context, cfg SelectConfig) (int, error) {
	idx, err := p.driver.Select(ctx, cfg)
	if err != nil {
		return 0, err
	}
	return checkChoice(idx, len(cfg.Options))
}

func sectionLabel(sec schema.Section) string {
	n := len(sec.Subsections)
	noun := "subsections"
	if n == 1 {
		noun = "subsection"
	}
	return fmt.Sprintf("%s (%d %s)", firstNonEmpty(sec.Title, sec.ID), n, noun)
}

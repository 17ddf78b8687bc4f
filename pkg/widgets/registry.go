package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput         = "input"
	WidgetTextArea      = "textarea"
	WidgetToggle        = "toggle"
	WidgetSelect        = "select"
	WidgetMultiSelect   = "multiselect"
	WidgetCheckboxGroup = "checkboxgroup"
)

// Matcher decides whether a widget should present the supplied field.
type Matcher func(field schema.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects the control used for each field. A decorator component
// always wins; otherwise the highest priority matcher does, ties falling back
// to registration order. Unmatched fields use WidgetInput.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without built-in matchers.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for field, honouring the decorator's
// component override first.
func (r *Registry) Resolve(field schema.Field, decorator schema.Decorator) string {
	if decorator.Component != nil {
		if explicit := strings.TrimSpace(decorator.Component.Type); explicit != "" {
			return explicit
		}
	}
	if r == nil {
		return WidgetInput
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

// ResolveForm maps every field id in form to its widget.
func (r *Registry) ResolveForm(form schema.Form) map[string]string {
	out := make(map[string]string)
	for _, section := range form.Sections {
		for _, sub := range section.Subsections {
			for _, field := range sub.Fields {
				dec, _ := form.Decorator(field.ID)
				out[field.ID] = r.Resolve(field, dec)
			}
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field schema.Field) bool {
		return field.Type == "boolean"
	})

	r.Register(WidgetMultiSelect, 80, func(field schema.Field) bool {
		return field.Type == schema.FieldTypeArray && len(field.Options) > 0
	})

	r.Register(WidgetSelect, 70, func(field schema.Field) bool {
		return field.Type != schema.FieldTypeArray && len(field.Options) > 0
	})

	r.Register(WidgetTextArea, 60, func(field schema.Field) bool {
		return field.Type == "text"
	})
}

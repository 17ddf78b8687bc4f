package openapi

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

const (
	extSection   = "x-formgen-section"
	extOrder     = "x-formgen-order"
	extHint      = "x-formgen-hint"
	extComponent = "x-formgen-component"
	extLabels    = "x-formgen-labels"
	extSections  = "x-formgen-sections"
	extIcon      = "x-formgen-icon"
)

type placedField struct {
	field      schema.Field
	section    string
	subsection string
	order      float64
}

// builder accumulates fields and decorators while walking a request body.
type builder struct {
	defaultSection string
	defaultTitle   string
	titles         map[string]string
	fields         []placedField
	decorators     map[string]schema.Decorator
}

func newBuilder(defaultSection, defaultTitle string, titles map[string]string) *builder {
	return &builder{
		defaultSection: defaultSection,
		defaultTitle:   defaultTitle,
		titles:         titles,
		decorators:     make(map[string]schema.Decorator),
	}
}

// collect walks object properties, flattening nested objects into dotted ids.
// Placement is inherited from the closest ancestor that declares one.
func (b *builder) collect(prefix string, obj *openapi3.Schema, placement string) {
	for name, ref := range obj.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		id := name
		if prefix != "" {
			id = prefix + "." + name
		}
		where := placement
		if value, ok := prop.Extensions[extSection].(string); ok && strings.TrimSpace(value) != "" {
			where = strings.TrimSpace(value)
		}

		kind := schemaType(prop.Type)
		if kind == openapi3.TypeObject && len(prop.Properties) > 0 {
			b.collect(id, prop, where)
			continue
		}

		field := schema.Field{
			ID:      id,
			Type:    kind,
			Title:   firstNonEmpty(prop.Title, humanize(name)),
			Options: options(prop),
		}
		sectionID, subsectionID := splitPlacement(where, b.defaultSection)
		b.fields = append(b.fields, placedField{
			field:      field,
			section:    sectionID,
			subsection: subsectionID,
			order:      orderOf(prop.Extensions[extOrder]),
		})
		if dec, ok := decorator(prop); ok {
			b.decorators[id] = dec
		}
	}
}

// sections groups fields by placement. Fields are ordered by x-formgen-order
// then id; sections and subsections appear in the order of their first field.
func (b *builder) sections() []schema.Section {
	sort.SliceStable(b.fields, func(i, j int) bool {
		if b.fields[i].order != b.fields[j].order {
			return b.fields[i].order < b.fields[j].order
		}
		return b.fields[i].field.ID < b.fields[j].field.ID
	})

	var out []schema.Section
	sectionIdx := make(map[string]int)
	subIdx := make(map[string]int)
	for _, pf := range b.fields {
		si, ok := sectionIdx[pf.section]
		if !ok {
			si = len(out)
			sectionIdx[pf.section] = si
			out = append(out, schema.Section{ID: pf.section, Title: b.sectionTitle(pf.section)})
		}
		key := pf.section + "/" + pf.subsection
		ssi, ok := subIdx[key]
		if !ok {
			ssi = len(out[si].Subsections)
			subIdx[key] = ssi
			out[si].Subsections = append(out[si].Subsections, schema.Subsection{
				ID:    pf.subsection,
				Title: b.titles[key],
			})
		}
		out[si].Subsections[ssi].Fields = append(out[si].Subsections[ssi].Fields, pf.field)
	}
	return out
}

func (b *builder) sectionTitle(id string) string {
	if title := b.titles[id]; title != "" {
		return title
	}
	if id == b.defaultSection && b.defaultTitle != "" {
		return b.defaultTitle
	}
	return humanize(id)
}

func splitPlacement(value, fallback string) (string, string) {
	value = strings.Trim(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback, DefaultSubsectionID
	}
	sectionID, subsectionID, found := strings.Cut(value, "/")
	if !found || strings.TrimSpace(subsectionID) == "" {
		return sectionID, DefaultSubsectionID
	}
	return sectionID, strings.TrimSpace(subsectionID)
}

func options(prop *openapi3.Schema) []schema.Option {
	enum := prop.Enum
	labels := stringMap(prop.Extensions[extLabels])
	if schemaType(prop.Type) == openapi3.TypeArray && prop.Items != nil && prop.Items.Value != nil {
		enum = prop.Items.Value.Enum
		if len(labels) == 0 {
			labels = stringMap(prop.Items.Value.Extensions[extLabels])
		}
	}
	if len(enum) == 0 {
		return nil
	}
	out := make([]schema.Option, 0, len(enum))
	for _, value := range enum {
		id := fmt.Sprint(value)
		out = append(out, schema.Option{ID: id, Title: firstNonEmpty(labels[id], humanize(id))})
	}
	return out
}

func decorator(prop *openapi3.Schema) (schema.Decorator, bool) {
	var dec schema.Decorator
	if hint, ok := prop.Extensions[extHint].(string); ok {
		dec.Hint = strings.TrimSpace(hint)
	}
	if dec.Hint == "" {
		dec.Hint = strings.TrimSpace(prop.Description)
	}

	switch raw := prop.Extensions[extComponent].(type) {
	case string:
		if strings.TrimSpace(raw) != "" {
			dec.Component = &schema.Component{Type: strings.TrimSpace(raw)}
		}
	case map[string]any:
		component := &schema.Component{}
		for key, value := range raw {
			if key == "type" {
				component.Type, _ = value.(string)
				continue
			}
			if component.Props == nil {
				component.Props = make(map[string]any)
			}
			component.Props[key] = value
		}
		dec.Component = component
	}
	return dec, dec.Hint != "" || dec.Component != nil
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return openapi3.TypeString
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return openapi3.TypeString
}

func orderOf(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return math.MaxInt32
	}
}

func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			out[key] = s
		}
	}
	return out
}

// humanize turns "displayName", "display_name" or "display-name" into
// "Display name".
func humanize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	var b strings.Builder
	var prev rune
	for i, r := range value {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

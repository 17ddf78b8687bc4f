package schema

// FieldTypeArray is the choice-like field type exercised by the bundled forms.
// Field types are an open set; the core never switches on them beyond deciding
// which fields must declare options.
const FieldTypeArray = "array"

// Form is the top-level schema document.
type Form struct {
	ID         string               `json:"id" yaml:"id"`
	Title      string               `json:"title" yaml:"title"`
	FaIcon     *Icon                `json:"faIcon,omitempty" yaml:"faIcon,omitempty"`
	Sections   []Section            `json:"sections" yaml:"sections"`
	Decorators map[string]Decorator `json:"decorators,omitempty" yaml:"decorators,omitempty"`
}

// Icon references a Font Awesome glyph by name (e.g. "th-large").
type Icon struct {
	Name string `json:"name" yaml:"name"`
}

// Section is a titled group of subsections.
type Section struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Subsections []Subsection `json:"subsections" yaml:"subsections"`
}

// Subsection is a titled group of fields and the smallest unit rendered
// directly by the section collaborators.
type Subsection struct {
	ID       string  `json:"id" yaml:"id"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Fields   []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is a single data-entry element typed by an open string tag.
type Field struct {
	ID      string   `json:"id" yaml:"id"`
	Type    string   `json:"type" yaml:"type"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is one selectable choice of a choice-like field.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Decorator overrides how a field is presented.
type Decorator struct {
	Hint      string     `json:"hint,omitempty" yaml:"hint,omitempty"`
	Component *Component `json:"component,omitempty" yaml:"component,omitempty"`
}

// Component swaps the control used for a field. Any keys besides "type" are
// kept in Props and handed to the component untouched.
type Component struct {
	Type  string
	Props map[string]any
}

// FieldByID returns the first field declared with the given id.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, section := range f.Sections {
		for _, sub := range section.Subsections {
			for _, field := range sub.Fields {
				if field.ID == id {
					return field, true
				}
			}
		}
	}
	return Field{}, false
}

// Section returns the section with the given id.
func (f Form) Section(id string) (Section, bool) {
	for _, section := range f.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return Section{}, false
}

// Decorator returns the decorator registered for a field id, if any.
func (f Form) Decorator(fieldID string) (Decorator, bool) {
	if len(f.Decorators) == 0 {
		return Decorator{}, false
	}
	dec, ok := f.Decorators[fieldID]
	return dec, ok
}

// SubsectionIDs lists the ids of a section's subsections in declaration order.
func (s Section) SubsectionIDs() []string {
	ids := make([]string, 0, len(s.Subsections))
	for _, sub := range s.Subsections {
		ids = append(ids, sub.ID)
	}
	return ids
}

// Clone returns a deep copy of the form so callers can mutate it without
// touching shared catalog entries. Component props are copied one level deep.
func (f Form) Clone() Form {
	out := f
	if f.FaIcon != nil {
		icon := *f.FaIcon
		out.FaIcon = &icon
	}
	if f.Sections != nil {
		out.Sections = make([]Section, len(f.Sections))
		for i, section := range f.Sections {
			out.Sections[i] = section
			if section.Subsections == nil {
				continue
			}
			subs := make([]Subsection, len(section.Subsections))
			for j, sub := range section.Subsections {
				subs[j] = sub
				if sub.Fields == nil {
					continue
				}
				fields := make([]Field, len(sub.Fields))
				for k, field := range sub.Fields {
					fields[k] = field
					if field.Options != nil {
						fields[k].Options = append([]Option(nil), field.Options...)
					}
				}
				subs[j].Fields = fields
			}
			out.Sections[i].Subsections = subs
		}
	}
	if f.Decorators != nil {
		out.Decorators = make(map[string]Decorator, len(f.Decorators))
		for key, dec := range f.Decorators {
			dec.Component = dec.Component.Clone()
			out.Decorators[key] = dec
		}
	}
	return out
}

// Clone copies the component and its props map. A nil component stays nil.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := *c
	if c.Props != nil {
		out.Props = make(map[string]any, len(c.Props))
		for k, v := range c.Props {
			out.Props[k] = v
		}
	}
	return &out
}

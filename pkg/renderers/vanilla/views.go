package vanilla

import (
	"math"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

type formView struct {
	ID    string
	Title string
	Icon  string
}

type sectionView struct {
	ID    string
	DOMID string
	Title string
	Kind  string
	Style string
	Body  string
}

type tabView struct {
	ID       string
	Title    string
	TabID    string
	PanelID  string
	Selected bool
	Body     string
}

type subsectionView struct {
	ID       string
	DOMID    string
	Title    string
	Subtitle string
}

type optionView struct {
	ID    string
	DOMID string
	Title string
}

type fieldView struct {
	ID       string
	DOMID    string
	Type     string
	Title    string
	Widget   string
	Hint     string
	LabelFor bool
	Options  []optionView
	Props    map[string]any
}

func newFormView(form schema.Form) formView {
	view := formView{ID: form.ID, Title: form.Title}
	if form.FaIcon != nil {
		view.Icon = iconName(form.FaIcon.Name)
	}
	return view
}

func newFieldView(prefix string, field schema.Field, widget string, dec schema.Decorator) fieldView {
	view := fieldView{
		ID:       field.ID,
		DOMID:    fieldDOMID(prefix, field.ID),
		Type:     field.Type,
		Title:    firstNonEmpty(field.Title, field.ID),
		Widget:   widget,
		LabelFor: labelSupportsFor(widget),
	}
	if dec.Component != nil && len(dec.Component.Props) > 0 {
		view.Props = normalizeProps(dec.Component.Props)
	}
	for _, opt := range field.Options {
		view.Options = append(view.Options, optionView{
			ID:    opt.ID,
			DOMID: view.DOMID + "-o-" + idToken(opt.ID),
			Title: firstNonEmpty(opt.Title, opt.ID),
		})
	}
	return view
}

// normalizeProps turns integral floats (as decoded from JSON) into ints so
// templates print "3" rather than "3.000000".
func normalizeProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for key, value := range props {
		if f, ok := value.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			out[key] = int(f)
			continue
		}
		out[key] = value
	}
	return out
}

func defaultComponents() map[string]string {
	return map[string]string{
		widgets.WidgetInput:         "templates/components/input.tmpl",
		widgets.WidgetTextArea:      "templates/components/textarea.tmpl",
		widgets.WidgetToggle:        "templates/components/toggle.tmpl",
		widgets.WidgetSelect:        "templates/components/select.tmpl",
		widgets.WidgetMultiSelect:   "templates/components/multiselect.tmpl",
		widgets.WidgetCheckboxGroup: "templates/components/checkboxgroup.tmpl",
	}
}

// defaultPolicy keeps inline emphasis and links in hints and subtitles.
func defaultPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "i", "em", "code", "br")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func (r *Renderer) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.TrimSpace(r.policy.Sanitize(value))
}

func labelSupportsFor(widget string) bool {
	switch widget {
	case widgets.WidgetCheckboxGroup:
		return false
	default:
		return true
	}
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func domID(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = unsafeIDChars.ReplaceAllString(strings.TrimSpace(part), "-")
		part = strings.Trim(part, "-")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, "-")
}

// sectionDOMID and its siblings namespace element ids by kind: "-s-" for
// sections, "-u-" for subsections below them, "-f-" for fields and "-o-" for
// options below fields. idToken never emits '-', so schema ids cannot forge
// a separator.
func sectionDOMID(prefix, sectionID string) string {
	return prefix + "-s-" + idToken(sectionID)
}

func subsectionDOMID(prefix, sectionID, subsectionID string) string {
	return sectionDOMID(prefix, sectionID) + "-u-" + idToken(subsectionID)
}

func fieldDOMID(prefix, fieldID string) string {
	return prefix + "-f-" + idToken(fieldID)
}

// idToken keeps ASCII letters and digits and writes every other byte as
// "_xx" (lower hex), so distinct ids always yield distinct tokens.
func idToken(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}
	return b.String()
}

const hexDigits = "0123456789abcdef"

var iconChars = regexp.MustCompile(`^[a-z0-9-]+$`)

func iconName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !iconChars.MatchString(name) {
		return ""
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

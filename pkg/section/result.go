package section

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a Result holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindSingle
	KindTabbed
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindTabbed:
		return "tabbed"
	default:
		return "invalid"
	}
}

// Layout describes the container wrapping a rendered section.
type Layout struct {
	Display    string
	Height     string
	FlexShrink int
}

// ContainerLayout fills the parent's height and never shrinks below the
// content's intrinsic width.
var ContainerLayout = Layout{Display: "flex", Height: "100%", FlexShrink: 0}

// Style renders the layout as an inline CSS declaration list.
func (l Layout) Style() string {
	var parts []string
	if l.Display != "" {
		parts = append(parts, "display:"+l.Display)
	}
	if l.Height != "" {
		parts = append(parts, "height:"+l.Height)
	}
	parts = append(parts, "flex-shrink:"+strconv.Itoa(l.FlexShrink))
	return strings.Join(parts, ";")
}

// Result is the outcome of dispatching one section. Tabs is populated only
// for KindTabbed, Subsection only for KindSingle.
type Result struct {
	Kind       Kind
	SectionID  string
	Tabs       []string
	Subsection string
	Layout     Layout
	Output     string
}

// Tabbed reports whether the result holds a tab container.
func (r Result) Tabbed() bool {
	return r.Kind == KindTabbed
}

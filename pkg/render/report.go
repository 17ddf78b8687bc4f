package render

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrorReport groups schema violations so callers can show every problem at
// once instead of a single failure.
type ErrorReport struct {
	Form       []string
	Sections   map[string][]string
	Fields     map[string][]string
	Decorators map[string][]string
}

// GroupErrors buckets violations by the most specific location they name.
func GroupErrors(errs schema.Errors) ErrorReport {
	var report ErrorReport
	for _, err := range errs {
		path := err.Path
		switch {
		case path.Decorator != "":
			report.Decorators = appendMessage(report.Decorators, path.Decorator, err.Message)
		case path.Field != "":
			report.Fields = appendMessage(report.Fields, path.String(), err.Message)
		case path.Section != "" || path.Subsection != "":
			report.Sections = appendMessage(report.Sections, path.String(), err.Message)
		default:
			report.Form = append(report.Form, err.Message)
		}
	}
	return report
}

// Empty reports whether the report holds no messages.
func (r ErrorReport) Empty() bool {
	return len(r.Form) == 0 && len(r.Sections) == 0 && len(r.Fields) == 0 && len(r.Decorators) == 0
}

// WriteTo prints the report as "<location>: <message>" lines grouped by kind.
func (r ErrorReport) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	for _, msg := range r.Form {
		if err := write("form: %s\n", msg); err != nil {
			return total, err
		}
	}
	for _, group := range []struct {
		label string
		items map[string][]string
	}{
		{label: "section", items: r.Sections},
		{label: "field", items: r.Fields},
		{label: "decorator", items: r.Decorators},
	} {
		for _, key := range sortedKeys(group.items) {
			for _, msg := range group.items[key] {
				if err := write("%s %s: %s\n", group.label, key, msg); err != nil {
					return total, err
				}
			}
		}
	}
	return total, nil
}

// ReportFromError builds a report from an error carrying schema violations.
func ReportFromError(err error) (ErrorReport, bool) {
	errs, ok := schema.AsErrors(err)
	if !ok {
		return ErrorReport{}, false
	}
	return GroupErrors(errs), true
}

// IsInvalidSchema reports whether err carries schema violations.
func IsInvalidSchema(err error) bool {
	return errors.Is(err, schema.ErrSchemaValidation)
}

func appendMessage(dest map[string][]string, key, msg string) map[string][]string {
	if dest == nil {
		dest = make(map[string][]string)
	}
	dest[key] = append(dest[key], msg)
	return dest
}

func sortedKeys(items map[string][]string) []string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

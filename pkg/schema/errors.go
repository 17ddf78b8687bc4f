package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaValidation matches any ValidationError or Errors value via errors.Is.
var ErrSchemaValidation = errors.New("schema: validation failed")

// Violation codes attached to ValidationError.Code.
const (
	CodeFormID             = "form.id"
	CodeSectionID          = "section.id"
	CodeSectionTitle       = "section.title"
	CodeSectionDuplicate   = "section.duplicate"
	CodeSectionEmpty       = "section.subsections"
	CodeSubsectionID       = "subsection.id"
	CodeSubsectionDup      = "subsection.duplicate"
	CodeFieldID            = "field.id"
	CodeFieldType          = "field.type"
	CodeFieldDuplicate     = "field.duplicate"
	CodeFieldOptions       = "field.options"
	CodeOptionID           = "option.id"
	CodeOptionDuplicate    = "option.duplicate"
	CodeDecoratorUnknown   = "decorator.unknown"
	CodeDecoratorComponent = "decorator.component"
)

// Path locates a violation inside a form. Decorator is set only for
// violations raised against the decorators map.
type Path struct {
	Section    string `json:"section,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Field      string `json:"field,omitempty"`
	Option     string `json:"option,omitempty"`
	Decorator  string `json:"decorator,omitempty"`
}

// String renders the path as slash separated ids, "decorators/<key>" for
// decorator entries, or "form" for form-level violations.
func (p Path) String() string {
	if p.Decorator != "" {
		return "decorators/" + p.Decorator
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{p.Section, p.Subsection, p.Field, p.Option} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "form"
	}
	return strings.Join(parts, "/")
}

// ValidationError describes a single violated schema invariant.
type ValidationError struct {
	Path    Path   `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Message)
}

// Is reports true for ErrSchemaValidation.
func (e ValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Errors is the ordered list of violations found in one validation pass.
type Errors []ValidationError

func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "schema: no validation errors"
	case 1:
		return errs[0].Error()
	}
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Path.String()+": "+err.Message)
	}
	return fmt.Sprintf("schema: %d validation errors: %s", len(errs), strings.Join(messages, "; "))
}

// Is reports true for ErrSchemaValidation.
func (errs Errors) Is(target error) bool {
	return target == ErrSchemaValidation && len(errs) > 0
}

// Err returns nil when the list is empty so callers can write
// `if err := schema.Validate(form).Err(); err != nil`.
func (errs Errors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsErrors extracts the violation list from err, unwrapping as needed. A
// lone ValidationError is returned as a one element list.
func AsErrors(err error) (Errors, bool) {
	var list Errors
	if errors.As(err, &list) {
		return list, true
	}
	var single ValidationError
	if errors.As(err, &single) {
		return Errors{single}, true
	}
	return nil, false
}

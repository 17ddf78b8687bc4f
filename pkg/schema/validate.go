package schema

import (
	"sort"
	"strconv"
	"strings"
)

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithChoiceTypes marks additional field types as choice-like, requiring a
// non-empty options list with unique option ids.
func WithChoiceTypes(types ...string) ValidatorOption {
	return func(v *Validator) {
		for _, name := range types {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			v.choiceTypes[name] = struct{}{}
		}
	}
}

// Validator checks forms against the schema invariants. The zero value is not
// usable; construct one with NewValidator. A Validator is read-only after
// construction and safe for concurrent use.
type Validator struct {
	choiceTypes map[string]struct{}
}

// NewValidator builds a validator treating "array" as choice-like plus any
// types supplied through WithChoiceTypes.
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{
		choiceTypes: map[string]struct{}{FieldTypeArray: {}},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = NewValidator()

// Validate checks form with the default validator.
func Validate(form Form) Errors {
	return defaultValidator.Validate(form)
}

// IsChoice reports whether fieldType requires options.
func (v *Validator) IsChoice(fieldType string) bool {
	_, ok := v.choiceTypes[fieldType]
	return ok
}

// Validate returns every violation found in form, in document order followed
// by decorator violations sorted by key. The form is never modified.
func (v *Validator) Validate(form Form) Errors {
	var errs Errors
	if strings.TrimSpace(form.ID) == "" {
		errs = append(errs, ValidationError{Code: CodeFormID, Message: "form id is required"})
	}

	sectionIDs := make(map[string]struct{}, len(form.Sections))
	fieldIDs := make(map[string]Path)

	for _, section := range form.Sections {
		errs = append(errs, ValidateSection(section)...)
		if section.ID != "" {
			if _, dup := sectionIDs[section.ID]; dup {
				errs = append(errs, ValidationError{
					Path:    Path{Section: section.ID},
					Code:    CodeSectionDuplicate,
					Message: "duplicate section id",
				})
			}
			sectionIDs[section.ID] = struct{}{}
		}

		subsectionIDs := make(map[string]struct{}, len(section.Subsections))
		for _, sub := range section.Subsections {
			subPath := Path{Section: section.ID, Subsection: sub.ID}
			switch {
			case strings.TrimSpace(sub.ID) == "":
				errs = append(errs, ValidationError{Path: subPath, Code: CodeSubsectionID, Message: "subsection id is required"})
			default:
				if _, dup := subsectionIDs[sub.ID]; dup {
					errs = append(errs, ValidationError{Path: subPath, Code: CodeSubsectionDup, Message: "duplicate subsection id within section"})
				}
				subsectionIDs[sub.ID] = struct{}{}
			}

			for _, field := range sub.Fields {
				errs = append(errs, v.validateField(field, subPath, fieldIDs)...)
			}
		}
	}

	errs = append(errs, validateDecorators(form.Decorators, fieldIDs)...)
	return errs
}

// ValidateSection checks the invariants the section dispatcher depends on:
// non-empty id and title and at least one subsection.
func ValidateSection(section Section) Errors {
	var errs Errors
	path := Path{Section: section.ID}
	if strings.TrimSpace(section.ID) == "" {
		errs = append(errs, ValidationError{Path: path, Code: CodeSectionID, Message: "section id is required"})
	}
	if strings.TrimSpace(section.Title) == "" {
		errs = append(errs, ValidationError{Path: path, Code: CodeSectionTitle, Message: "section title is required"})
	}
	if len(section.Subsections) == 0 {
		errs = append(errs, ValidationError{Path: path, Code: CodeSectionEmpty, Message: "section must contain at least one subsection"})
	}
	return errs
}

func (v *Validator) validateField(field Field, parent Path, seen map[string]Path) Errors {
	var errs Errors
	path := parent
	path.Field = field.ID

	if strings.TrimSpace(field.ID) == "" {
		errs = append(errs, ValidationError{Path: path, Code: CodeFieldID, Message: "field id is required"})
	} else if first, dup := seen[field.ID]; dup {
		errs = append(errs, ValidationError{
			Path:    path,
			Code:    CodeFieldDuplicate,
			Message: "duplicate field id, first declared at " + first.String(),
		})
	} else {
		seen[field.ID] = path
	}

	if strings.TrimSpace(field.Type) == "" {
		errs = append(errs, ValidationError{Path: path, Code: CodeFieldType, Message: "field type is required"})
	}

	if !v.IsChoice(field.Type) {
		return errs
	}
	if len(field.Options) == 0 {
		errs = append(errs, ValidationError{
			Path:    path,
			Code:    CodeFieldOptions,
			Message: "field of type " + field.Type + " requires at least one option",
		})
		return errs
	}

	optionIDs := make(map[string]struct{}, len(field.Options))
	for _, option := range field.Options {
		optPath := path
		optPath.Option = option.ID
		if strings.TrimSpace(option.ID) == "" {
			errs = append(errs, ValidationError{Path: optPath, Code: CodeOptionID, Message: "option id is required"})
			continue
		}
		if _, dup := optionIDs[option.ID]; dup {
			errs = append(errs, ValidationError{Path: optPath, Code: CodeOptionDuplicate, Message: "duplicate option id within field"})
			continue
		}
		optionIDs[option.ID] = struct{}{}
	}
	return errs
}

func validateDecorators(decorators map[string]Decorator, fields map[string]Path) Errors {
	if len(decorators) == 0 {
		return nil
	}
	keys := make([]string, 0, len(decorators))
	for key := range decorators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs Errors
	for _, key := range keys {
		path := Path{Decorator: key}
		if _, ok := fields[key]; !ok {
			errs = append(errs, ValidationError{
				Path:    path,
				Code:    CodeDecoratorUnknown,
				Message: "decorator references unknown field " + strconv.Quote(key),
			})
			continue
		}
		if comp := decorators[key].Component; comp != nil && strings.TrimSpace(comp.Type) == "" {
			errs = append(errs, ValidationError{Path: path, Code: CodeDecoratorComponent, Message: "decorator component type is required"})
		}
	}
	return errs
}

package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// DefaultSectionID and DefaultSubsectionID hold fields without an
// x-formgen-section placement.
const (
	DefaultSectionID    = "main"
	DefaultSubsectionID = "default"
)

// ErrOperationNotFound is returned when the requested operation id does not
// exist in the document.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option configures an Importer.
type Option func(*Importer)

// WithExternalRefs allows $ref values that point outside the document.
func WithExternalRefs(enabled bool) Option {
	return func(i *Importer) {
		i.externalRefs = enabled
	}
}

// WithDocumentValidation runs kin-openapi's document validation before
// importing. Example validation stays disabled.
func WithDocumentValidation(enabled bool) Option {
	return func(i *Importer) {
		i.validate = enabled
	}
}

// WithDefaultSection renames the section that collects unplaced fields.
func WithDefaultSection(id, title string) Option {
	return func(i *Importer) {
		if strings.TrimSpace(id) != "" {
			i.defaultSection = id
			i.defaultTitle = title
		}
	}
}

// Importer converts OpenAPI operations into schema.Form values.
type Importer struct {
	externalRefs   bool
	validate       bool
	defaultSection string
	defaultTitle   string
}

// NewImporter builds an Importer with the provided options.
func NewImporter(options ...Option) *Importer {
	i := &Importer{
		defaultSection: DefaultSectionID,
		defaultTitle:   "Details",
	}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Import converts the request body of operationID using default options.
func Import(ctx context.Context, data []byte, operationID string) (schema.Form, error) {
	return NewImporter().Import(ctx, data, operationID)
}

// Operations lists operation ids in sorted order. Operations without an
// operationId are reported as "method:path".
func (i *Importer) Operations(ctx context.Context, data []byte) ([]string, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}
	ops := collectOperations(doc)
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Import converts the request body of operationID. The result is not
// validated; run schema.Validate to surface incomplete choice fields.
func (i *Importer) Import(ctx context.Context, data []byte, operationID string) (schema.Form, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return schema.Form{}, err
	}
	op, ok := collectOperations(doc)[operationID]
	if !ok {
		return schema.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(op.RequestBody)
	if body == nil || body.Value == nil {
		return schema.Form{}, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	b := newBuilder(i.defaultSection, i.defaultTitle, stringMap(op.Extensions[extSections]))
	b.collect("", body.Value, "")

	form := schema.Form{
		ID:         operationID,
		Title:      firstNonEmpty(op.Summary, humanize(operationID)),
		Sections:   b.sections(),
		Decorators: b.decorators,
	}
	if icon, ok := op.Extensions[extIcon].(string); ok && strings.TrimSpace(icon) != "" {
		form.FaIcon = &schema.Icon{Name: strings.TrimSpace(icon)}
	}
	if len(form.Decorators) == 0 {
		form.Decorators = nil
	}
	return form, nil
}

func (i *Importer) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if i.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return doc, nil
}

func collectOperations(doc *openapi3.T) map[string]*openapi3.Operation {
	out := make(map[string]*openapi3.Operation)
	if doc.Paths == nil {
		return out
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out[id] = op
		}
	}
	return out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a storage encoding for forms.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyDocument is returned when a payload holds nothing but whitespace.
var ErrEmptyDocument = errors.New("schema: document is empty")

// DetectFormat infers the encoding from a file extension. Unknown extensions
// yield an empty Format, which Parse treats as "try JSON then YAML".
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// Parse decodes a form from data. With an empty format JSON is attempted
// first and YAML second, mirroring how hand-authored files are usually mixed.
func Parse(data []byte, format Format) (Form, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Form{}, ErrEmptyDocument
	}
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case "":
		if form, err := ParseJSON(data); err == nil {
			return form, nil
		}
		form, err := ParseYAML(data)
		if err != nil {
			return Form{}, fmt.Errorf("schema: parse: invalid JSON or YAML: %w", err)
		}
		return form, nil
	default:
		return Form{}, fmt.Errorf("schema: unsupported format %q", format)
	}
}

// ParseJSON decodes a JSON form. Unknown keys are ignored.
func ParseJSON(data []byte) (Form, error) {
	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode json: %w", err)
	}
	return form, nil
}

// ParseYAML decodes a YAML form.
func ParseYAML(data []byte) (Form, error) {
	var form Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode yaml: %w", err)
	}
	return form, nil
}

// Marshal encodes form in the requested format. JSON output is indented with
// two spaces; YAML uses yaml.v3 defaults. Slice order is preserved.
func Marshal(form Form, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		payload, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("schema: encode json: %w", err)
		}
		return payload, nil
	case FormatYAML:
		payload, err := yaml.Marshal(form)
		if err != nil {
			return nil, fmt.Errorf("schema: encode yaml: %w", err)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("schema: unsupported format %q", format)
	}
}

package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

const componentTypeKey = "type"

// MarshalJSON flattens props next to the component type.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.flatten())
}

// UnmarshalJSON splits the "type" key from the remaining props.
func (c *Component) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schema: decode component: %w", err)
	}
	return c.assign(raw)
}

// MarshalYAML flattens props next to the component type.
func (c Component) MarshalYAML() (any, error) {
	return c.flatten(), nil
}

// UnmarshalYAML splits the "type" key from the remaining props.
func (c *Component) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("schema: decode component: %w", err)
	}
	return c.assign(raw)
}

func (c Component) flatten() map[string]any {
	out := make(map[string]any, len(c.Props)+1)
	for key, value := range c.Props {
		out[key] = value
	}
	out[componentTypeKey] = c.Type
	return out
}

func (c *Component) assign(raw map[string]any) error {
	*c = Component{}
	if len(raw) == 0 {
		return nil
	}
	if value, ok := raw[componentTypeKey]; ok && value != nil {
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("schema: component type must be a string, got %T", value)
		}
		c.Type = name
	}
	for key, value := range raw {
		if key == componentTypeKey {
			continue
		}
		if c.Props == nil {
			c.Props = make(map[string]any, len(raw)-1)
		}
		c.Props[key] = value
	}
	return nil
}

package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueType is the type tag of a property value.
type ValueType string

const (
	ValueString ValueType = "string"
	ValueNumber ValueType = "number"
	ValueBool   ValueType = "boolean"
)

// Value is a typed entry of a field's property bag.
// YAML accepts a bare scalar, typed from its YAML tag, or an explicit
// {type: ..., value: ...} mapping.
type Value struct {
	Type ValueType
	Text string
}

// String returns the textual value.
func (v Value) String() string {
	return v.Text
}

// UnmarshalYAML implements custom YAML unmarshaling for Value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Text = node.Value

		switch node.ShortTag() {
		case "!!int", "!!float":
			v.Type = ValueNumber
		case "!!bool":
			v.Type = ValueBool
		default:
			v.Type = ValueString
		}

		return nil

	case yaml.MappingNode:
		var raw struct {
			Type  ValueType `yaml:"type"`
			Value string    `yaml:"value"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		switch raw.Type {
		case "", ValueString:
			raw.Type = ValueString
		case ValueNumber, ValueBool:
		default:
			return fmt.Errorf("unknown property type %q", raw.Type)
		}

		v.Type = raw.Type
		v.Text = raw.Value

		return nil

	default:
		return fmt.Errorf("expected scalar or mapping for property value, got %v", node.Kind)
	}
}

// MarshalYAML writes the value back as a correctly tagged scalar.
func (v Value) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}

	switch v.Type {
	case ValueNumber:
		n.Tag = "!!float"
		if isInteger(v.Text) {
			n.Tag = "!!int"
		}
	case ValueBool:
		n.Tag = "!!bool"
	default:
		n.Tag = "!!str"
	}

	return n, nil
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}

		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

package defs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var errEntryKind = errors.New("entry must hold exactly one of field or set")

// UnmarshalYAML accepts either a single name or a sequence of names.
func (l *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		if s == "" {
			*l = nil
		} else {
			*l = NameList{s}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*l = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected name or list of names", node.Line)
	}
}

// MarshalYAML writes a single name as a scalar and anything else as a
// sequence.
func (l NameList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}

	return []string(l), nil
}

// UnmarshalYAML decodes an entry and checks it holds exactly one node.
func (e *NodeEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain NodeEntry

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	if (p.Field == nil) == (p.Set == nil) {
		return fmt.Errorf("line %d: %w", node.Line, errEntryKind)
	}

	*e = NodeEntry(p)

	return nil
}

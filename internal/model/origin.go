package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=Origin -linecomment -output=origin_string.go

// Origin records which tier a node's definition comes from.
type Origin int

const (
	OriginLocal  Origin = iota // local
	OriginSystem               // system
	OriginShared               // shared
)

// ParseOrigin parses the textual form produced by String.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "", OriginLocal.String():
		return OriginLocal, nil
	case OriginSystem.String():
		return OriginSystem, nil
	case OriginShared.String():
		return OriginShared, nil
	default:
		return OriginLocal, fmt.Errorf("unknown origin %q", s)
	}
}

// MarshalYAML writes the origin as its name.
func (o Origin) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML reads an origin name.
func (o *Origin) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	v, err := ParseOrigin(s)
	if err != nil {
		return err
	}

	*o = v

	return nil
}

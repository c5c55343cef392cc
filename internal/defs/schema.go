package defs

import "defcompose/internal/model"

// SystemFile is the on-disk form of a system definition.
type SystemFile struct {
	Name          string               `yaml:"name,omitempty"`
	Fields        NodeList             `yaml:"fields,omitempty"`
	Mapper        *model.DisplayMapper `yaml:"mapper,omitempty"`
	DefaultUISets []*model.UISet       `yaml:"defaultUISets,omitempty"`
}

// SharedFile is the on-disk form of a shared definition.
type SharedFile struct {
	Groups        []GroupEntry   `yaml:"groups"`
	DefaultUISets []*model.UISet `yaml:"defaultUISets,omitempty"`
}

// GroupEntry is one shared group.
type GroupEntry struct {
	Name   string               `yaml:"name"`
	Fields *SetEntry            `yaml:"fields"`
	Mapper *model.DisplayMapper `yaml:"mapper,omitempty"`
}

// LocalFile is the on-disk form of a local or composed definition.
type LocalFile struct {
	Name           string               `yaml:"name"`
	Kind           model.SetKind        `yaml:"kind,omitempty"`
	SystemExcludes NameList             `yaml:"systemExcludes,omitempty"`
	SharedIncludes NameList             `yaml:"sharedIncludes,omitempty"`
	SharedExcludes NameList             `yaml:"sharedExcludes,omitempty"`
	DefaultUISets  []*model.UISet       `yaml:"defaultUISets,omitempty"`
	Fields         NodeList             `yaml:"fields,omitempty"`
	Mapper         *model.DisplayMapper `yaml:"mapper,omitempty"`
}

// NodeEntry is one entry of a field tree: exactly one of Field and Set.
type NodeEntry struct {
	Field *model.Field `yaml:"field,omitempty"`
	Set   *SetEntry    `yaml:"set,omitempty"`
}

// NodeList is an ordered list of field tree entries.
type NodeList []NodeEntry

// SetEntry is a field set container.
type SetEntry struct {
	Name       string        `yaml:"name"`
	Kind       model.SetKind `yaml:"kind,omitempty"`
	Origin     model.Origin  `yaml:"origin,omitempty"`
	Group      string        `yaml:"group,omitempty"`
	Sequencing *bool         `yaml:"sequencing,omitempty"`
	Searchable *bool         `yaml:"searchable,omitempty"`
	Fields     NodeList      `yaml:"fields,omitempty"`
}

// NameList is a list of names written as a single string or a sequence.
type NameList []string

package model

import (
	"maps"
	"slices"

	"defcompose/internal/common"
)

// ModifyPolicy states who may modify a field's value.
type ModifyPolicy string

const (
	ModifyUser   ModifyPolicy = "user"
	ModifySystem ModifyPolicy = "system"
)

// LocatorKind identifies how a field locates its value.
type LocatorKind string

const (
	LocatorColumn    LocatorKind = "column"
	LocatorLiteral   LocatorKind = "literal"
	LocatorParameter LocatorKind = "parameter"
)

// Column is a backend column definition, independent of its table.
type Column struct {
	Name     string `yaml:"name"`
	DataType string `yaml:"dataType,omitempty"`
	Size     string `yaml:"size,omitempty"`
}

// Locator points at the value of a field.
type Locator struct {
	Kind LocatorKind `yaml:"kind"`
	// Table is the backend table for column locators. Child definitions
	// may leave it empty and inherit it.
	Table  string  `yaml:"table,omitempty"`
	Column *Column `yaml:"column,omitempty"`
	// Value is the literal text or the parameter name.
	Value string `yaml:"value,omitempty"`
}

// Rule is a named conditional expression (validation or visibility).
type Rule struct {
	Name      string `yaml:"name,omitempty"`
	Condition string `yaml:"condition"`
	Message   string `yaml:"message,omitempty"`
}

// Multiplicity of a field occurrence.
type Multiplicity string

const (
	MultiplicityOptional   Multiplicity = "optional"
	MultiplicityRequired   Multiplicity = "required"
	MultiplicityZeroOrMore Multiplicity = "zeroOrMore"
	MultiplicityOneOrMore  Multiplicity = "oneOrMore"
	MultiplicityCount      Multiplicity = "count"
)

// IsValid returns true if the multiplicity is a recognized value.
func (m Multiplicity) IsValid() bool {
	switch m {
	case MultiplicityOptional, MultiplicityRequired, MultiplicityZeroOrMore,
		MultiplicityOneOrMore, MultiplicityCount:
		return true
	default:
		return false
	}
}

// Occurrence is the occurrence policy of a field for one workflow
// transition. An empty Transition applies to all transitions.
type Occurrence struct {
	Transition   string       `yaml:"transition,omitempty"`
	Multiplicity Multiplicity `yaml:"multiplicity"`
	Count        int          `yaml:"count,omitempty"`
	Delimiter    string       `yaml:"delimiter,omitempty"`
}

// Choice is one entry of a choice list.
type Choice struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// ChoiceList is the set of values offered for a field.
type ChoiceList struct {
	Sort    string   `yaml:"sort,omitempty"`
	Lookup  string   `yaml:"lookup,omitempty"`
	Entries []Choice `yaml:"entries,omitempty"`
}

// Clone returns a deep copy, or nil for nil.
func (c *ChoiceList) Clone() *ChoiceList {
	if c == nil {
		return nil
	}

	out := *c
	out.Entries = common.CloneOrNil(c.Entries)

	return &out
}

// Equal compares two choice lists; nil equals only nil.
func (c *ChoiceList) Equal(o *ChoiceList) bool {
	if c == nil || o == nil {
		return c == o
	}

	return c.Sort == o.Sort && c.Lookup == o.Lookup && slices.Equal(c.Entries, o.Entries)
}

// Field is a leaf of the field tree. Name is the submit name and is unique
// within one tree.
//
// Unset optional attributes are nil (pointers, slices, maps) or empty
// strings; merge treats those as "inherit from the source".
type Field struct {
	Name   string `yaml:"name"`
	Origin Origin `yaml:"origin,omitempty"`
	// Group is the shared group that defines the field, if any.
	Group string `yaml:"group,omitempty"`

	Modify     ModifyPolicy `yaml:"modify,omitempty"`
	DataType   string       `yaml:"dataType,omitempty"`
	DataFormat string       `yaml:"dataFormat,omitempty"`
	Locator    *Locator     `yaml:"locator,omitempty"`
	Default    *string      `yaml:"default,omitempty"`

	InputTranslation  []string `yaml:"inputTranslation,omitempty"`
	OutputTranslation []string `yaml:"outputTranslation,omitempty"`

	ValidationRules []Rule       `yaml:"validation,omitempty"`
	VisibilityRule  *string      `yaml:"visibility,omitempty"`
	Occurrence      []Occurrence `yaml:"occurrence,omitempty"`
	Choices         *ChoiceList  `yaml:"choices,omitempty"`
	ForceBinary     *bool        `yaml:"forceBinary,omitempty"`

	// SystemMandatory fields can never be excluded by a lower tier.
	SystemMandatory bool `yaml:"systemMandatory,omitempty"`
	SystemInternal  bool `yaml:"systemInternal,omitempty"`

	Properties map[string]Value `yaml:"properties,omitempty"`
}

func (*Field) isNode() {}

// NodeName returns the submit name.
func (f *Field) NodeName() string { return f.Name }

// Kind returns NodeField.
func (*Field) Kind() NodeKind { return NodeField }

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}

	out := *f
	out.Locator = f.Locator.Clone()
	out.Default = clonePtr(f.Default)
	out.InputTranslation = common.CloneOrNil(f.InputTranslation)
	out.OutputTranslation = common.CloneOrNil(f.OutputTranslation)
	out.ValidationRules = common.CloneOrNil(f.ValidationRules)
	out.VisibilityRule = clonePtr(f.VisibilityRule)
	out.Occurrence = common.CloneOrNil(f.Occurrence)
	out.Choices = f.Choices.Clone()
	out.ForceBinary = clonePtr(f.ForceBinary)

	if f.Properties != nil {
		out.Properties = maps.Clone(f.Properties)
	}

	return &out
}

// Clone returns a deep copy, or nil for nil.
func (l *Locator) Clone() *Locator {
	if l == nil {
		return nil
	}

	out := *l
	out.Column = clonePtr(l.Column)

	return &out
}

// Equal compares two locators including their table; nil equals only nil.
func (l *Locator) Equal(o *Locator) bool {
	if l == nil || o == nil {
		return l == o
	}

	return l.Kind == o.Kind && l.Table == o.Table && l.Value == o.Value &&
		PtrEqual(l.Column, o.Column)
}

// SameColumn reports whether both locators are column locators with
// structurally equal column definitions. The table is not compared.
func (l *Locator) SameColumn(o *Locator) bool {
	return PtrEqual(l.Column, o.Column)
}

// IsColumn reports whether l locates a backend column.
func (l *Locator) IsColumn() bool {
	return l != nil && l.Kind == LocatorColumn
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// PtrEqual compares two optional values; nil equals only nil.
func PtrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

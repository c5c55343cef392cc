package model

import "maps"

// Control is a reference to an editor control plus its parameters.
type Control struct {
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Clone returns a deep copy, or nil for nil.
func (c *Control) Clone() *Control {
	if c == nil {
		return nil
	}

	out := *c
	if c.Params != nil {
		out.Params = maps.Clone(c.Params)
	}

	return &out
}

// Equal compares two controls; nil equals only nil. A nil and an empty
// parameter map are equal.
func (c *Control) Equal(o *Control) bool {
	if c == nil || o == nil {
		return c == o
	}

	return c.Name == o.Name && maps.Equal(c.Params, o.Params)
}

// UISet describes how a field or child set is presented.
//
// Every presentation attribute is optional; an unset attribute inherits
// from the default set named by DefaultSet and then from the higher tier.
type UISet struct {
	// Name identifies the set inside a UISetPool.
	Name string `yaml:"name,omitempty"`
	// DefaultSet names a set of the definition's pool to inherit from.
	DefaultSet string `yaml:"defaultSet,omitempty"`

	Label      *string     `yaml:"label,omitempty"`
	AccessKey  *string     `yaml:"accessKey,omitempty"`
	ErrorLabel *string     `yaml:"errorLabel,omitempty"`
	Control    *Control    `yaml:"control,omitempty"`
	Choices    *ChoiceList `yaml:"choices,omitempty"`
	ReadOnly   *string     `yaml:"readOnly,omitempty"`
	Visibility *string     `yaml:"visibility,omitempty"`
}

// Clone returns a deep copy, or nil for nil.
func (u *UISet) Clone() *UISet {
	if u == nil {
		return nil
	}

	out := *u
	out.Label = clonePtr(u.Label)
	out.AccessKey = clonePtr(u.AccessKey)
	out.ErrorLabel = clonePtr(u.ErrorLabel)
	out.Control = u.Control.Clone()
	out.Choices = u.Choices.Clone()
	out.ReadOnly = clonePtr(u.ReadOnly)
	out.Visibility = clonePtr(u.Visibility)

	return &out
}

// IsEmpty reports whether the set declares nothing beyond its name.
func (u *UISet) IsEmpty() bool {
	if u == nil {
		return true
	}

	return u.DefaultSet == "" && u.Label == nil && u.AccessKey == nil &&
		u.ErrorLabel == nil && u.Control == nil && u.Choices == nil &&
		u.ReadOnly == nil && u.Visibility == nil
}

// UISetPool is a definition-supplied collection of default UI sets keyed
// by name.
type UISetPool map[string]*UISet

// NewUISetPool builds a pool from named sets.
func NewUISetPool(sets ...*UISet) UISetPool {
	p := make(UISetPool, len(sets))
	for _, s := range sets {
		p[s.Name] = s
	}

	return p
}

// Lookup returns the set called name. A nil pool is empty.
func (p UISetPool) Lookup(name string) (*UISet, bool) {
	s, ok := p[name]
	return s, ok
}

// Names returns the pool's set names.
func (p UISetPool) Names() []string {
	out := make([]string, 0, len(p))
	for n := range p {
		out = append(out, n)
	}

	return out
}

// Union returns a new pool holding every set of p and the sets of others
// whose names p does not already define.
func (p UISetPool) Union(others ...UISetPool) UISetPool {
	out := make(UISetPool, len(p))
	for n, s := range p {
		out[n] = s.Clone()
	}

	for _, o := range others {
		for n, s := range o {
			if _, ok := out[n]; !ok {
				out[n] = s.Clone()
			}
		}
	}

	return out
}

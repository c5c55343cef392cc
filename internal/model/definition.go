package model

import "defcompose/internal/common"

// SystemDef is the platform baseline: mandatory and standard fields plus
// their default layout.
type SystemDef struct {
	FieldSet      *FieldSet
	Mapper        *DisplayMapper
	DefaultUISets UISetPool
}

// SharedGroup is a named, reusable bundle of fields with its own layout.
type SharedGroup struct {
	Name     string
	FieldSet *FieldSet
	Mapper   *DisplayMapper
}

// Clone returns a deep copy.
func (g *SharedGroup) Clone() *SharedGroup {
	return &SharedGroup{
		Name:     g.Name,
		FieldSet: g.FieldSet.Clone(),
		Mapper:   g.Mapper.Clone(),
	}
}

// IsComplex reports whether the group attaches as a sub-tree rather than
// contributing its fields to the parent tree.
func (g *SharedGroup) IsComplex() bool {
	return g.FieldSet != nil && g.FieldSet.Settings.Kind == SetComplexChild
}

// SharedDef is the collection of shared groups available to local
// definitions, in declaration order.
type SharedDef struct {
	Groups        []*SharedGroup
	DefaultUISets UISetPool
}

// Group returns the group called name, or nil.
func (d *SharedDef) Group(name string) *SharedGroup {
	if d == nil {
		return nil
	}

	for _, g := range d.Groups {
		if g.Name == name {
			return g
		}
	}

	return nil
}

// GroupNames returns the group names in order.
func (d *SharedDef) GroupNames() []string {
	if d == nil {
		return nil
	}

	out := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		out = append(out, g.Name)
	}

	return out
}

// Definition is a local definition: the per-content-type tree together
// with its inclusion and exclusion choices. Composed definitions returned
// by the composer have the same shape.
type Definition struct {
	Name          string
	FieldSet      *FieldSet
	Mapper        *DisplayMapper
	DefaultUISets UISetPool

	// SystemExcludes names system fields the definition does not want.
	SystemExcludes []string
	// SharedIncludes names the shared groups the definition uses.
	SharedIncludes []string
	// SharedExcludes names fields of included groups the definition does not want.
	SharedExcludes []string
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	return &Definition{
		Name:           d.Name,
		FieldSet:       d.FieldSet.Clone(),
		Mapper:         d.Mapper.Clone(),
		DefaultUISets:  d.DefaultUISets.Union(),
		SystemExcludes: common.CloneOrNil(d.SystemExcludes),
		SharedIncludes: common.CloneOrNil(d.SharedIncludes),
		SharedExcludes: common.CloneOrNil(d.SharedExcludes),
	}
}

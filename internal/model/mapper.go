package model

// NoID marks a mapper whose identifier has not been assigned yet.
const NoID = -1

// DisplayMapping binds a field reference, or a nested mapper, to a UI set.
// A mapping with a nested mapper refers to a child field set by name.
type DisplayMapping struct {
	FieldRef string         `yaml:"field"`
	UISet    *UISet         `yaml:"ui,omitempty"`
	Mapper   *DisplayMapper `yaml:"mapper,omitempty"`
	Origin   Origin         `yaml:"origin,omitempty"`
}

// DisplayMapper is an ordered list of mappings bound to a field set.
type DisplayMapper struct {
	ID       int               `yaml:"id,omitempty"`
	FieldSet string            `yaml:"fieldSet"`
	Mappings []*DisplayMapping `yaml:"mappings,omitempty"`
}

// NewDisplayMapper creates an unnumbered mapper.
func NewDisplayMapper(fieldSet string, mappings ...*DisplayMapping) *DisplayMapper {
	return &DisplayMapper{ID: NoID, FieldSet: fieldSet, Mappings: mappings}
}

// IsChild reports whether the mapping attaches a nested mapper.
func (m *DisplayMapping) IsChild() bool {
	return m.Mapper != nil
}

// Clone returns a deep copy, or nil for nil.
func (m *DisplayMapping) Clone() *DisplayMapping {
	if m == nil {
		return nil
	}

	out := *m
	out.UISet = m.UISet.Clone()
	out.Mapper = m.Mapper.Clone()

	return &out
}

// Clone returns a deep copy, or nil for nil.
func (d *DisplayMapper) Clone() *DisplayMapper {
	if d == nil {
		return nil
	}

	out := &DisplayMapper{ID: d.ID, FieldSet: d.FieldSet}
	if d.Mappings != nil {
		out.Mappings = make([]*DisplayMapping, len(d.Mappings))
		for i, m := range d.Mappings {
			out.Mappings[i] = m.Clone()
		}
	}

	return out
}

// Find searches the whole tree below d for a mapping referencing ref.
func (d *DisplayMapper) Find(ref string) *DisplayMapping {
	if d == nil {
		return nil
	}

	for _, m := range d.Mappings {
		if m.FieldRef == ref {
			return m
		}

		if found := m.Mapper.Find(ref); found != nil {
			return found
		}
	}

	return nil
}

// Contains reports whether a mapping for ref exists anywhere below d.
func (d *DisplayMapper) Contains(ref string) bool {
	return d.Find(ref) != nil
}

// Walk calls fn for every mapper of the tree, d first, depth-first.
func (d *DisplayMapper) Walk(fn func(*DisplayMapper)) {
	if d == nil {
		return
	}

	fn(d)

	for _, m := range d.Mappings {
		m.Mapper.Walk(fn)
	}
}

// WalkMappings calls fn for every mapping of the tree, depth-first.
func (d *DisplayMapper) WalkMappings(fn func(*DisplayMapping)) {
	if d == nil {
		return
	}

	for _, m := range d.Mappings {
		fn(m)
		m.Mapper.WalkMappings(fn)
	}
}

// FieldRefs returns every mapping reference of the tree, depth-first.
func (d *DisplayMapper) FieldRefs() []string {
	var out []string

	d.WalkMappings(func(m *DisplayMapping) {
		out = append(out, m.FieldRef)
	})

	return out
}

// IDs returns every mapper identifier of the tree, depth-first.
func (d *DisplayMapper) IDs() []int {
	var out []int

	d.Walk(func(m *DisplayMapper) {
		out = append(out, m.ID)
	})

	return out
}

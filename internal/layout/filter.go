package layout

import (
	"defcompose/internal/common"
	"defcompose/internal/model"
)

// RemoveExcluded returns a copy of d without any mapping, at any depth,
// whose reference is one of names.
func RemoveExcluded(d *model.DisplayMapper, names []string) *model.DisplayMapper {
	if d == nil {
		return nil
	}

	return removeRefs(d, common.NewNameSet(names...))
}

func removeRefs(d *model.DisplayMapper, names common.NameSet) *model.DisplayMapper {
	out := &model.DisplayMapper{ID: d.ID, FieldSet: d.FieldSet}

	for _, m := range d.Mappings {
		if names.Has(m.FieldRef) {
			continue
		}

		c := m.Clone()
		if m.Mapper != nil {
			c.Mapper = removeRefs(m.Mapper, names)
		}

		out.Mappings = append(out.Mappings, c)
	}

	return out
}

// TagOrigin returns a copy of d with every mapping tagged with origin.
func TagOrigin(d *model.DisplayMapper, origin model.Origin) *model.DisplayMapper {
	out := d.Clone()

	out.WalkMappings(func(m *model.DisplayMapping) {
		m.Origin = origin
	})

	return out
}

package compose

import "defcompose/internal/model"

// Provenance returns the origin of every field of a composed definition,
// keyed by field name.
func Provenance(def *model.Definition) map[string]model.Origin {
	out := make(map[string]model.Origin)
	if def == nil || def.FieldSet == nil {
		return out
	}

	def.FieldSet.WalkFields(func(f *model.Field) {
		out[f.Name] = f.Origin
	})

	return out
}

// GroupFields returns the names of the fields a shared group contributed
// to a composed definition, in tree order.
func GroupFields(def *model.Definition, group string) []string {
	var out []string

	if def == nil || def.FieldSet == nil {
		return out
	}

	def.FieldSet.WalkFields(func(f *model.Field) {
		if f.Origin == model.OriginShared && f.Group == group {
			out = append(out, f.Name)
		}
	})

	return out
}

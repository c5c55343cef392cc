package layout

import (
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
	"defcompose/internal/overlay"
)

// Demerge returns the part of target that source does not already
// provide, renumbered. Every mapping inherited from source stays in the
// result as a placeholder carrying only its UI overrides, so order and
// inclusion are preserved. Nested mappers are kept only when they
// override something.
//
// With opts.MergeChild set, the mapping referencing source's bound field
// set is demerged against the whole source mapper and may only contain
// references the source knows.
func Demerge(target, source *model.DisplayMapper, opts Options) (*model.DisplayMapper, error) {
	if target == nil {
		return nil, nil
	}

	if source == nil {
		out := target.Clone()
		Renumber(out)

		return out, nil
	}

	out, _, err := demerge(target, source, opts.MergeChild, opts.UI.SourcePool)
	if err != nil {
		return nil, err
	}

	Renumber(out)

	return out, nil
}

// demerge also reports whether the result overrides anything of source.
func demerge(target, source *model.DisplayMapper, mergeChild bool, pool model.UISetPool) (*model.DisplayMapper, bool, error) {
	out := &model.DisplayMapper{ID: target.ID, FieldSet: target.FieldSet}
	changed := false
	inherited := 0

	for _, m := range target.Mappings {
		if mergeChild && m.FieldRef == source.FieldSet {
			d, err := detach(m, source, pool)
			if err != nil {
				return nil, false, err
			}

			out.Mappings = append(out.Mappings, d)
			changed = true

			continue
		}

		if mergeChild {
			out.Mappings = append(out.Mappings, m.Clone())
			continue
		}

		src := source.Find(m.FieldRef)
		if src == nil {
			out.Mappings = append(out.Mappings, m.Clone())
			changed = true

			continue
		}

		d, dchanged, err := demergeMapping(m, src, pool)
		if err != nil {
			return nil, false, err
		}

		out.Mappings = append(out.Mappings, d)
		inherited++
		changed = changed || dchanged
	}

	if inherited != len(source.Mappings) {
		changed = true
	}

	return out, changed, nil
}

// detach turns the placeholder mapping m back into what the local tier
// authored for an attached child mapper.
func detach(m *model.DisplayMapping, source *model.DisplayMapper, pool model.UISetPool) (*model.DisplayMapping, error) {
	out := &model.DisplayMapping{FieldRef: m.FieldRef, UISet: m.UISet.Clone(), Origin: m.Origin}
	if m.Mapper == nil {
		return out, nil
	}

	var unknown []string

	m.Mapper.WalkMappings(func(d *model.DisplayMapping) {
		if !source.Contains(d.FieldRef) {
			unknown = append(unknown, d.FieldRef)
		}
	})

	if len(unknown) > 0 {
		return nil, diagnostic.InvalidChildFields(source.FieldSet, unknown)
	}

	nested, changed, err := demerge(m.Mapper, source, false, pool)
	if err != nil {
		return nil, err
	}

	if changed {
		out.Mapper = nested
	}

	return out, nil
}

func demergeMapping(target, source *model.DisplayMapping, pool model.UISetPool) (*model.DisplayMapping, bool, error) {
	set, err := overlay.Diff(target.UISet, source.UISet, pool)
	if err != nil {
		return nil, false, err
	}

	out := &model.DisplayMapping{FieldRef: target.FieldRef, UISet: set, Origin: source.Origin}
	changed := set != nil

	switch {
	case target.Mapper == nil:
	case source.Mapper == nil:
		return nil, false, diagnostic.InvalidChildMapping(target.FieldRef)
	default:
		nested, nchanged, err := demerge(target.Mapper, source.Mapper, false, pool)
		if err != nil {
			return nil, false, err
		}

		if nchanged {
			out.Mapper = nested
			changed = true
		}
	}

	return out, changed, nil
}

package layout

import (
	"defcompose/internal/common"
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
	"defcompose/internal/overlay"
)

// Options controls a single layout merge or demerge.
type Options struct {
	// MergeChild absorbs the whole source mapper into the local mapping
	// that references the source's bound field set.
	MergeChild bool
	// Excludes lists references removed from the source before merging.
	Excludes []string
	// UI carries the default pools for UI set overlays.
	UI overlay.Options
}

// Merge overlays local onto source and returns the merged tree, renumbered.
// Neither input is modified.
func Merge(local, source *model.DisplayMapper, opts Options) (*model.DisplayMapper, error) {
	var (
		out *model.DisplayMapper
		err error
	)

	switch {
	case source == nil:
		out = local.Clone()
	case local == nil:
		out = RemoveExcluded(source, opts.Excludes)
	default:
		out, err = merge(local, RemoveExcluded(source, opts.Excludes), opts.MergeChild, opts.UI)
		if err != nil {
			return nil, err
		}
	}

	if out != nil {
		Renumber(out)
	}

	return out, nil
}

func merge(local, source *model.DisplayMapper, mergeChild bool, ui overlay.Options) (*model.DisplayMapper, error) {
	out := &model.DisplayMapper{ID: local.ID, FieldSet: local.FieldSet}
	used := common.NewNameSet()
	attached := false

	for _, m := range local.Mappings {
		if mergeChild && m.FieldRef == source.FieldSet {
			a, err := attach(m, source, ui)
			if err != nil {
				return nil, err
			}

			out.Mappings = append(out.Mappings, a)
			attached = true

			continue
		}

		// the child mapper is scoped to its own field set
		if mergeChild {
			out.Mappings = append(out.Mappings, m.Clone())
			continue
		}

		src := source.Find(m.FieldRef)
		if src == nil {
			out.Mappings = append(out.Mappings, m.Clone())
			continue
		}

		mm, err := mergeMapping(m, src, ui)
		if err != nil {
			return nil, err
		}

		out.Mappings = append(out.Mappings, mm)

		used.Add(src.FieldRef)
		src.Mapper.WalkMappings(func(d *model.DisplayMapping) {
			used.Add(d.FieldRef)
		})
	}

	if mergeChild {
		if !attached {
			return nil, diagnostic.UnusedMapper(source.FieldSet)
		}

		return out, nil
	}

	for _, m := range source.Mappings {
		if used.Has(m.FieldRef) {
			continue
		}

		out.Mappings = append(out.Mappings, withoutUsed(m, used))
	}

	return out, nil
}

// attach merges the whole source mapper into the nested mapper of the
// local placeholder mapping m.
func attach(m *model.DisplayMapping, source *model.DisplayMapper, ui overlay.Options) (*model.DisplayMapping, error) {
	out := m.Clone()

	set, err := overlay.Overlay(m.UISet, nil, ui)
	if err != nil {
		return nil, err
	}

	out.UISet = set

	if m.Mapper == nil {
		out.Mapper = source.Clone()

		return out, nil
	}

	out.Mapper, err = merge(m.Mapper, source, false, ui)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func mergeMapping(local, source *model.DisplayMapping, ui overlay.Options) (*model.DisplayMapping, error) {
	out := &model.DisplayMapping{
		FieldRef: local.FieldRef,
		UISet:    source.UISet.Clone(),
		Origin:   source.Origin,
	}

	// a bare placeholder inherits the source set unexpanded
	if local.UISet != nil {
		set, err := overlay.Overlay(local.UISet, source.UISet, ui)
		if err != nil {
			return nil, err
		}

		out.UISet = set
	}

	var err error

	switch {
	case local.Mapper != nil && source.Mapper != nil:
		out.Mapper, err = merge(local.Mapper, source.Mapper, false, ui)
		if err != nil {
			return nil, err
		}
	case local.Mapper != nil:
		out.Mapper = local.Mapper.Clone()
	default:
		out.Mapper = source.Mapper.Clone()
	}

	return out, nil
}

// withoutUsed copies m, dropping nested mappings already merged elsewhere.
func withoutUsed(m *model.DisplayMapping, used common.NameSet) *model.DisplayMapping {
	out := m.Clone()
	if out.Mapper == nil {
		return out
	}

	out.Mapper = removeRefs(m.Mapper, used)

	return out
}

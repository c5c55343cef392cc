package fieldset

import (
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Merge folds every entry of source into a copy of target. The returned
// tree keeps target's own name and settings; only entries are merged.
// Entries that exist only in target are kept unchanged, source-only
// entries are appended.
func Merge(target, source *model.FieldSet) (*model.FieldSet, error) {
	out := target.Clone()
	if source == nil {
		return out, nil
	}

	for _, sn := range source.Nodes() {
		name := sn.NodeName()

		tn, ok := out.Get(name)
		if !ok {
			out.Put(model.CloneNode(sn))
			continue
		}

		if tn.Kind() != sn.Kind() {
			return nil, diagnostic.DuplicateMergedName(name)
		}

		var (
			merged model.Node
			err    error
		)

		switch sn.Kind() {
		case model.NodeField:
			merged, err = MergeField(tn.(*model.Field), sn.(*model.Field))
		case model.NodeSet:
			merged, err = mergeSet(tn.(*model.FieldSet), sn.(*model.FieldSet))
		}

		if err != nil {
			return nil, err
		}

		out.Put(merged)
	}

	return out, nil
}

// mergeSet merges two same-named child sets, container settings included.
func mergeSet(target, source *model.FieldSet) (*model.FieldSet, error) {
	out, err := Merge(target, source)
	if err != nil {
		return nil, err
	}

	out.Origin = source.Origin
	out.Group = source.Group
	out.Settings = mergeSettings(target.Settings, source.Settings)

	return out, nil
}

func mergeSettings(target, source model.SetSettings) model.SetSettings {
	out := model.SetSettings{
		Kind:       target.Kind,
		Sequencing: clonePtr(target.Sequencing),
		Searchable: clonePtr(target.Searchable),
	}

	if out.Kind == "" {
		out.Kind = source.Kind
	}

	if out.Sequencing == nil {
		out.Sequencing = clonePtr(source.Sequencing)
	}

	if out.Searchable == nil {
		out.Searchable = clonePtr(source.Searchable)
	}

	return out
}

func diffSettings(target, source model.SetSettings) model.SetSettings {
	var out model.SetSettings

	if target.Kind != "" && target.Kind != source.Kind {
		out.Kind = target.Kind
	}

	if target.Sequencing != nil && !model.PtrEqual(target.Sequencing, source.Sequencing) {
		out.Sequencing = clonePtr(target.Sequencing)
	}

	if target.Searchable != nil && !model.PtrEqual(target.Searchable, source.Searchable) {
		out.Searchable = clonePtr(target.Searchable)
	}

	return out
}

// Demerge removes from a copy of target everything source already
// provides. Fields that override nothing are dropped; a child set is
// dropped when it ends up empty and its settings equal the source's.
// Target-only entries are kept unchanged.
func Demerge(target, source *model.FieldSet) (*model.FieldSet, error) {
	out := target.Empty()

	for _, tn := range target.Nodes() {
		name := tn.NodeName()

		var sn model.Node
		if source != nil {
			sn, _ = source.Get(name)
		}

		if sn == nil {
			out.Put(model.CloneNode(tn))
			continue
		}

		if tn.Kind() != sn.Kind() {
			return nil, diagnostic.DuplicateMergedName(name)
		}

		switch sn.Kind() {
		case model.NodeField:
			if d := DemergeField(tn.(*model.Field), sn.(*model.Field)); d != nil {
				out.Put(d)
			}
		case model.NodeSet:
			d, err := demergeSet(tn.(*model.FieldSet), sn.(*model.FieldSet))
			if err != nil {
				return nil, err
			}

			if d != nil {
				out.Put(d)
			}
		}
	}

	return out, nil
}

func demergeSet(target, source *model.FieldSet) (*model.FieldSet, error) {
	out, err := Demerge(target, source)
	if err != nil {
		return nil, err
	}

	out.Settings = diffSettings(target.Settings, source.Settings)
	if out.Len() == 0 && out.Settings.IsZero() {
		return nil, nil
	}

	out.Origin = source.Origin
	out.Group = source.Group

	return out, nil
}

// RemoveExcluded returns a shallow copy of tree without the named
// top-level entries. With validate set, every name must exist.
func RemoveExcluded(tree *model.FieldSet, names []string, validate bool) (*model.FieldSet, error) {
	out := tree.ShallowClone()

	for _, n := range names {
		if !out.Remove(n) && validate && !tree.Has(n) {
			return nil, diagnostic.ExcludedFieldMissing(n)
		}
	}

	return out, nil
}

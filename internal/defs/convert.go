package defs

import (
	"errors"
	"fmt"
	"slices"

	"defcompose/internal/model"
)

// buildTree converts file entries into a field set called name.
func buildTree(name string, kind model.SetKind, entries NodeList) (*model.FieldSet, error) {
	out := model.NewFieldSet(name, kind)

	if err := fill(out, entries); err != nil {
		return nil, err
	}

	return out, nil
}

func fill(dst *model.FieldSet, entries NodeList) error {
	for _, e := range entries {
		var n model.Node

		switch {
		case e.Field != nil:
			n = e.Field
		case e.Set != nil:
			s, err := buildSet(e.Set)
			if err != nil {
				return err
			}

			n = s
		}

		if dst.Has(n.NodeName()) {
			return fmt.Errorf("duplicate entry %q in field set %q", n.NodeName(), dst.Name)
		}

		dst.Put(n)
	}

	return nil
}

func buildSet(e *SetEntry) (*model.FieldSet, error) {
	out, err := buildTree(e.Name, e.Kind, e.Fields)
	if err != nil {
		return nil, err
	}

	out.Origin = e.Origin
	out.Group = e.Group
	out.Settings.Sequencing = e.Sequencing
	out.Settings.Searchable = e.Searchable

	return out, nil
}

// entries converts a field set's children back into file entries.
func entries(s *model.FieldSet) NodeList {
	if s == nil {
		return nil
	}

	out := make(NodeList, 0, s.Len())

	for _, n := range s.Nodes() {
		switch n.Kind() {
		case model.NodeField:
			out = append(out, NodeEntry{Field: n.(*model.Field)})
		case model.NodeSet:
			out = append(out, NodeEntry{Set: setEntry(n.(*model.FieldSet))})
		}
	}

	return out
}

func setEntry(s *model.FieldSet) *SetEntry {
	return &SetEntry{
		Name:       s.Name,
		Kind:       s.Settings.Kind,
		Origin:     s.Origin,
		Group:      s.Group,
		Sequencing: s.Settings.Sequencing,
		Searchable: s.Settings.Searchable,
		Fields:     entries(s),
	}
}

func buildPool(sets []*model.UISet) (model.UISetPool, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	out := make(model.UISetPool, len(sets))
	for _, s := range sets {
		if s.Name == "" {
			return nil, errors.New("default UI set without a name")
		}

		if _, ok := out[s.Name]; ok {
			return nil, fmt.Errorf("duplicate default UI set %q", s.Name)
		}

		out[s.Name] = s
	}

	return out, nil
}

func poolSets(p model.UISetPool) []*model.UISet {
	names := p.Names()
	slices.Sort(names)

	out := make([]*model.UISet, 0, len(names))
	for _, n := range names {
		out = append(out, p[n])
	}

	return out
}

package fieldset

import (
	"defcompose/internal/common"
	"defcompose/internal/model"
)

// OriginSources describes the higher tiers a local tree is tagged against.
type OriginSources struct {
	System         *model.FieldSet
	SystemExcludes common.NameSet
	// Groups are the shared groups actually included.
	Groups         []*model.SharedGroup
	SharedExcludes common.NameSet
}

// TagOrigins returns a copy of local with every node tagged by the tier it
// comes from. A top-level field is system-origin if the system tree defines
// it and it is not excluded, else shared-origin if an included group
// defines it and it is not excluded, else local. A top-level set named
// after an included group is tagged shared as a whole.
func TagOrigins(local *model.FieldSet, src OriginSources) *model.FieldSet {
	out := local.Empty()

	for _, n := range local.Nodes() {
		switch n.Kind() {
		case model.NodeField:
			f := n.(*model.Field).Clone()
			f.Origin, f.Group = src.fieldOrigin(f.Name)
			out.Put(f)
		case model.NodeSet:
			s := n.(*model.FieldSet)
			if g := src.group(s.Name); g != nil {
				out.Put(tagAll(s, model.OriginShared, g.Name))
				continue
			}

			var sys *model.FieldSet
			if src.System != nil && !src.SystemExcludes.Has(s.Name) {
				sys = src.System.Child(s.Name)
			}

			out.Put(tagChild(s, sys))
		}
	}

	return out
}

func (src OriginSources) fieldOrigin(name string) (model.Origin, string) {
	if src.System != nil && src.System.Field(name) != nil && !src.SystemExcludes.Has(name) {
		return model.OriginSystem, ""
	}

	if !src.SharedExcludes.Has(name) {
		for _, g := range src.Groups {
			if g.IsComplex() {
				continue
			}

			if g.FieldSet.Field(name) != nil {
				return model.OriginShared, g.Name
			}
		}
	}

	return model.OriginLocal, ""
}

func (src OriginSources) group(name string) *model.SharedGroup {
	for _, g := range src.Groups {
		if g.IsComplex() && g.Name == name {
			return g
		}
	}

	return nil
}

// tagChild tags a nested set against the same-named system set, if any.
func tagChild(s, sys *model.FieldSet) *model.FieldSet {
	out := s.Empty()
	out.Origin, out.Group = model.OriginLocal, ""

	if sys != nil {
		out.Origin = model.OriginSystem
	}

	for _, n := range s.Nodes() {
		switch n.Kind() {
		case model.NodeField:
			f := n.(*model.Field).Clone()
			f.Origin, f.Group = model.OriginLocal, ""

			if sys != nil && sys.Field(f.Name) != nil {
				f.Origin = model.OriginSystem
			}

			out.Put(f)
		case model.NodeSet:
			c := n.(*model.FieldSet)

			var sc *model.FieldSet
			if sys != nil {
				sc = sys.Child(c.Name)
			}

			out.Put(tagChild(c, sc))
		}
	}

	return out
}

// tagAll tags a whole subtree with one origin.
func tagAll(s *model.FieldSet, origin model.Origin, group string) *model.FieldSet {
	out := s.Empty()
	out.Origin, out.Group = origin, group

	for _, n := range s.Nodes() {
		switch n.Kind() {
		case model.NodeField:
			f := n.(*model.Field).Clone()
			f.Origin, f.Group = origin, group
			out.Put(f)
		case model.NodeSet:
			out.Put(tagAll(n.(*model.FieldSet), origin, group))
		}
	}

	return out
}

// TagGroup returns a copy of the group's tree with every node tagged
// shared-origin and owned by the group.
func TagGroup(g *model.SharedGroup) *model.FieldSet {
	return tagAll(g.FieldSet, model.OriginShared, g.Name)
}

// TagSystem returns a copy of the system tree with every node tagged
// system-origin.
func TagSystem(sys *model.FieldSet) *model.FieldSet {
	return tagAll(sys, model.OriginSystem, "")
}

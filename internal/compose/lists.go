package compose

import (
	"fmt"

	"defcompose/internal/common"
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Lists are the exclusion and inclusion lists of a definition.
type Lists struct {
	SystemExcludes []string
	SharedIncludes []string
	SharedExcludes []string
}

// groupExcludes returns the shared excludes naming entries of g.
func (l Lists) groupExcludes(g *model.SharedGroup) []string {
	return common.Filter(l.SharedExcludes, g.FieldSet.Has)
}

// RealLists computes the lists a merge actually applies. A requested
// exclude of a mandatory field is dropped. Groups the local definition
// does not include but that carry a mandatory field are included anyway,
// with every non-mandatory entry excluded.
func RealLists(local *model.Definition, sys *model.SystemDef, shared *model.SharedDef, diags *diagnostic.Diagnostics) Lists {
	var out Lists

	for _, name := range common.Dedupe(local.SystemExcludes) {
		if isMandatory(sys.FieldSet, name) {
			diags.AddInfo(diagnostic.InfoMandatoryExcludeIgnored,
				"mandatory system field stays included", "", name)

			continue
		}

		out.SystemExcludes = append(out.SystemExcludes, name)
	}

	requested := common.NewNameSet(local.SharedExcludes...)
	included := common.NewNameSet()

	for _, name := range common.Dedupe(local.SharedIncludes) {
		g := shared.Group(name)
		if g == nil {
			continue
		}

		included.Add(name)
		out.SharedIncludes = append(out.SharedIncludes, name)

		for _, entry := range g.FieldSet.Names() {
			if !requested.Has(entry) {
				continue
			}

			if isMandatory(g.FieldSet, entry) {
				diags.AddInfo(diagnostic.InfoMandatoryExcludeIgnored,
					"mandatory shared field stays included", g.Name, entry)

				continue
			}

			out.SharedExcludes = append(out.SharedExcludes, entry)
		}
	}

	for _, g := range shared.Groups {
		if included.Has(g.Name) || g.FieldSet == nil || !hasMandatory(g.FieldSet) {
			continue
		}

		diags.AddInfo(diagnostic.InfoGroupForceIncluded,
			fmt.Sprintf("group %q carries mandatory fields and is included", g.Name), g.Name, "")

		out.SharedIncludes = append(out.SharedIncludes, g.Name)

		for _, entry := range g.FieldSet.Names() {
			if !isMandatory(g.FieldSet, entry) {
				out.SharedExcludes = append(out.SharedExcludes, entry)
			}
		}
	}

	out.SharedExcludes = common.Dedupe(out.SharedExcludes)

	return out
}

// UpdateExcludes derives the lists from a composed definition. A system or
// shared entry only counts as included when it is present in the merged
// field tree and, if its tier maps it, its mapping survived too. A group
// counts as included when at least one of its entries did.
func UpdateExcludes(merged *model.Definition, sys *model.SystemDef, active []*model.SharedGroup) Lists {
	var out Lists

	for _, n := range sys.FieldSet.Nodes() {
		name := n.NodeName()
		if isMandatory(sys.FieldSet, name) {
			continue
		}

		if !survives(merged.FieldSet, merged.Mapper, sys.Mapper, name, model.OriginSystem, "") {
			out.SystemExcludes = append(out.SystemExcludes, name)
		}
	}

	for _, g := range active {
		scope, mscope := merged.FieldSet, merged.Mapper
		if g.IsComplex() {
			scope = merged.FieldSet.Child(g.FieldSet.Name)
			mscope = nil

			if g.Mapper != nil {
				if pm := merged.Mapper.Find(g.Mapper.FieldSet); pm != nil {
					mscope = pm.Mapper
				}
			}
		}

		var kept, excluded []string

		for _, name := range g.FieldSet.Names() {
			switch {
			case isMandatory(g.FieldSet, name):
				kept = append(kept, name)
			case scope != nil && survives(scope, mscope, g.Mapper, name, model.OriginShared, g.Name):
				kept = append(kept, name)
			default:
				excluded = append(excluded, name)
			}
		}

		if len(kept) == 0 {
			continue
		}

		out.SharedIncludes = append(out.SharedIncludes, g.Name)
		out.SharedExcludes = append(out.SharedExcludes, excluded...)
	}

	return out
}

// survives reports whether the entry name of a tier is in tree with the
// tier's origin and, when the tier maps it, is still mapped in mapper.
func survives(tree *model.FieldSet, mapper, tierMapper *model.DisplayMapper, name string, origin model.Origin, group string) bool {
	n, ok := tree.Get(name)
	if !ok {
		return false
	}

	o, g := nodeOrigin(n)
	if o != origin || (origin == model.OriginShared && g != group) {
		return false
	}

	if !tierMapper.Contains(name) {
		return true
	}

	m := mapper.Find(name)

	return m != nil && m.Origin == origin
}

func nodeOrigin(n model.Node) (model.Origin, string) {
	switch n.Kind() {
	case model.NodeField:
		f := n.(*model.Field)
		return f.Origin, f.Group
	case model.NodeSet:
		s := n.(*model.FieldSet)
		return s.Origin, s.Group
	default:
		return model.OriginLocal, ""
	}
}

func isMandatory(tree *model.FieldSet, name string) bool {
	f := tree.Field(name)
	return f != nil && f.SystemMandatory
}

func hasMandatory(tree *model.FieldSet) bool {
	found := false

	tree.WalkFields(func(f *model.Field) {
		found = found || f.SystemMandatory
	})

	return found
}

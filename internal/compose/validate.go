package compose

import (
	"fmt"
	"slices"

	"defcompose/internal/common"
	"defcompose/internal/diagnostic"
	"defcompose/internal/match"
	"defcompose/internal/model"
)

// ValidateSharedGroups checks the shared groups local includes and the
// shared fields it excludes. Naming inconsistencies inside a group are
// recorded as warnings.
func ValidateSharedGroups(local *model.Definition, shared *model.SharedDef, diags *diagnostic.Diagnostics) error {
	var included []*model.SharedGroup

	for _, name := range local.SharedIncludes {
		g := shared.Group(name)
		if g == nil {
			return diagnostic.SharedGroupNotFound(name).
				WithSuggestions(match.Suggest(name, shared.GroupNames()))
		}

		if err := checkGroup(g, diags); err != nil {
			return err
		}

		included = append(included, g)
	}

	var (
		invalid []string
		known   []string
	)

	for _, g := range included {
		known = append(known, g.FieldSet.Names()...)
	}

	for _, name := range local.SharedExcludes {
		if !slices.Contains(known, name) {
			invalid = append(invalid, name)
		}
	}

	if len(invalid) > 0 {
		return diagnostic.SharedExcludeInvalid(invalid).
			WithSuggestions(match.Suggest(invalid[0], known))
	}

	return nil
}

func checkGroup(g *model.SharedGroup, diags *diagnostic.Diagnostics) error {
	if g.FieldSet == nil || g.FieldSet.Settings.Kind == model.SetParent {
		return diagnostic.InvalidSharedGroupKind(g.Name)
	}

	if g.Name != g.FieldSet.Name {
		diags.AddWarning(diagnostic.WarnGroupNameMismatch,
			fmt.Sprintf("group field set is named %q", g.FieldSet.Name), g.Name, "")
	}

	if g.Mapper != nil && g.Mapper.FieldSet != g.FieldSet.Name {
		diags.AddWarning(diagnostic.WarnMapperFieldSetMismatch,
			fmt.Sprintf("group mapper is bound to %q instead of %q", g.Mapper.FieldSet, g.FieldSet.Name), g.Name, "")
	}

	if g.FieldSet.Settings.Kind == model.SetSimpleChild && !hasSoleFieldMapping(g) {
		diags.AddWarning(diagnostic.WarnMissingOrInvalidChildMapping,
			"simple child group does not map its sole field", g.Name, "")
	}

	return nil
}

func hasSoleFieldMapping(g *model.SharedGroup) bool {
	fields := g.FieldSet.Fields()
	if !common.IsSingle(fields) || g.FieldSet.Len() != 1 {
		return false
	}

	m := g.Mapper.Find(fields[0].Name)

	return m != nil && !m.IsChild()
}

// ValidateSystemExcludes checks that every excluded system field exists.
func ValidateSystemExcludes(local *model.Definition, sys *model.SystemDef) error {
	invalid := common.Filter(local.SystemExcludes, func(name string) bool {
		return !sys.FieldSet.Has(name)
	})

	if len(invalid) > 0 {
		return diagnostic.SystemExcludeInvalid(invalid).
			WithSuggestions(match.Suggest(invalid[0], sys.FieldSet.Names()))
	}

	return nil
}

// checkDuplicateFields rejects a field contributed by two active groups.
// Complex groups keep their fields under their own set and never collide.
func checkDuplicateFields(active []*model.SharedGroup, lists Lists) error {
	excluded := common.NewNameSet(lists.SharedExcludes...)
	owner := make(map[string]string)

	for _, g := range active {
		if g.IsComplex() {
			continue
		}

		for _, name := range g.FieldSet.Names() {
			if excluded.Has(name) {
				continue
			}

			if first, ok := owner[name]; ok {
				return diagnostic.DuplicateSharedField(name, []string{first, g.Name})
			}

			owner[name] = g.Name
		}
	}

	return nil
}

package defs

import (
	"fmt"

	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Diagnostic codes reported by the validators of this package.
const (
	CodeDefinitionIsNil     = "definition_is_nil"
	CodeEmptyName           = "empty_name"
	CodeInvalidSetKind      = "invalid_set_kind"
	CodeInvalidMultiplicity = "invalid_multiplicity"
	CodeSimpleChildFields   = "simple_child_field_count"
	CodeUnresolvedMapping   = "unresolved_mapping"
	CodeFieldWithMapper     = "field_mapping_with_mapper"
	CodeUnknownMapperSet    = "unknown_mapper_field_set"
	CodeMissingColumn       = "missing_locator_column"
)

// NodeValidator performs the per-node attribute checks. It satisfies the
// composer's node validator hook.
type NodeValidator struct{}

// ValidateField checks a single field.
func (NodeValidator) ValidateField(f *model.Field, diags *diagnostic.Diagnostics) {
	if f.Name == "" {
		diags.AddError(CodeEmptyName, "field without a name", f.Group, "")
		return
	}

	for _, o := range f.Occurrence {
		if !o.Multiplicity.IsValid() {
			diags.AddWarning(CodeInvalidMultiplicity,
				fmt.Sprintf("unknown multiplicity %q", o.Multiplicity), f.Group, f.Name)
		}

		if o.Multiplicity == model.MultiplicityCount && o.Count <= 0 {
			diags.AddWarning(CodeInvalidMultiplicity, "count multiplicity needs a positive count", f.Group, f.Name)
		}
	}

	if f.Locator.IsColumn() && f.Locator.Column == nil {
		diags.AddWarning(CodeMissingColumn, "column locator without a column", f.Group, f.Name)
	}
}

// ValidateFieldSet checks a container, not its children.
func (NodeValidator) ValidateFieldSet(s *model.FieldSet, diags *diagnostic.Diagnostics) {
	if s.Name == "" {
		diags.AddError(CodeEmptyName, "field set without a name", s.Group, "")
		return
	}

	if !s.Settings.Kind.IsValid() {
		diags.AddError(CodeInvalidSetKind, fmt.Sprintf("unknown field set kind %q", s.Settings.Kind), s.Group, s.Name)
	}

	if s.Settings.Kind == model.SetSimpleChild && (s.Len() != 1 || len(s.Fields()) != 1) {
		diags.AddWarning(CodeSimpleChildFields,
			fmt.Sprintf("simple child set holds %d entries instead of one field", s.Len()), s.Group, s.Name)
	}
}

// ValidateMapping checks a single mapping, not its nested mapper.
func (NodeValidator) ValidateMapping(m *model.DisplayMapping, diags *diagnostic.Diagnostics) {
	if m.FieldRef == "" {
		diags.AddError(CodeEmptyName, "mapping without a field reference", "", "")
	}
}

// Validate checks the structure of a local definition. Mapping references
// are not resolved, since a local definition maps inherited fields it
// does not declare.
func Validate(def *model.Definition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if def == nil {
		res.AddError(CodeDefinitionIsNil, "definition is nil", "", "")
		return res
	}

	if def.Name == "" {
		res.AddError(CodeEmptyName, "definition without a name", "", "")
	}

	validateNodes(def.FieldSet, def.Mapper, res)

	return res
}

// ValidateComposed checks a composed definition, including that every
// mapping resolves inside the field set its mapper is bound to.
func ValidateComposed(def *model.Definition) *diagnostic.Diagnostics {
	res := Validate(def)
	if def != nil {
		validateRefs(def.FieldSet, def.Mapper, "", res)
	}

	return res
}

// ValidateReferences only resolves the mappings of def.
func ValidateReferences(def *model.Definition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if def != nil {
		validateRefs(def.FieldSet, def.Mapper, def.Name, res)
	}

	return res
}

// ValidateSystem checks a system definition.
func ValidateSystem(sys *model.SystemDef) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sys == nil {
		res.AddError(CodeDefinitionIsNil, "system definition is nil", "", "")
		return res
	}

	validateNodes(sys.FieldSet, sys.Mapper, res)
	validateRefs(sys.FieldSet, sys.Mapper, "", res)

	return res
}

// ValidateShared checks every group of a shared definition.
func ValidateShared(shared *model.SharedDef) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if shared == nil {
		res.AddError(CodeDefinitionIsNil, "shared definition is nil", "", "")
		return res
	}

	for _, g := range shared.Groups {
		if g.Name == "" {
			res.AddError(CodeEmptyName, "shared group without a name", "", "")
			continue
		}

		validateNodes(g.FieldSet, g.Mapper, res)
		validateRefs(g.FieldSet, g.Mapper, g.Name, res)
	}

	return res
}

func validateNodes(tree *model.FieldSet, mapper *model.DisplayMapper, res *diagnostic.Diagnostics) {
	var v NodeValidator

	if tree != nil {
		walkSets(tree, func(s *model.FieldSet) {
			v.ValidateFieldSet(s, res)

			for _, f := range s.Fields() {
				v.ValidateField(f, res)
			}
		})
	}

	mapper.WalkMappings(func(m *model.DisplayMapping) {
		v.ValidateMapping(m, res)
	})
}

// validateRefs resolves every mapping of mapper inside the set it is
// bound to.
func validateRefs(tree *model.FieldSet, mapper *model.DisplayMapper, group string, res *diagnostic.Diagnostics) {
	if tree == nil || mapper == nil {
		return
	}

	bound := tree.FindSet(mapper.FieldSet)
	if bound == nil {
		res.AddError(CodeUnknownMapperSet,
			fmt.Sprintf("mapper is bound to unknown field set %q", mapper.FieldSet), group, mapper.FieldSet)

		return
	}

	for _, m := range mapper.Mappings {
		if !bound.Resolves(m.FieldRef) {
			res.AddError(CodeUnresolvedMapping,
				fmt.Sprintf("mapping %q does not resolve in field set %q", m.FieldRef, bound.Name), group, m.FieldRef)

			continue
		}

		if m.Mapper == nil {
			continue
		}

		if bound.FindSet(m.FieldRef) == nil {
			res.AddError(CodeFieldWithMapper,
				fmt.Sprintf("mapping %q references a field but carries a nested mapper", m.FieldRef), group, m.FieldRef)

			continue
		}

		validateRefs(bound, m.Mapper, group, res)
	}
}

func walkSets(s *model.FieldSet, fn func(*model.FieldSet)) {
	fn(s)

	for _, n := range s.Nodes() {
		if c, ok := n.(*model.FieldSet); ok {
			walkSets(c, fn)
		}
	}
}

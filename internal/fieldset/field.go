package fieldset

import (
	"maps"
	"reflect"

	"defcompose/internal/common"
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Attribute names used in incompatible-override failures.
const (
	AttrDataType        = "data type"
	AttrValidationRules = "validation rules"
	AttrForceBinary     = "force binary"
	AttrDataLocator     = "data locator"
)

// MergeField overlays target on source. Both fields must share a submit
// name. The result carries the source's origin, group and system flags.
func MergeField(target, source *model.Field) (*model.Field, error) {
	if err := checkConflicts(target, source); err != nil {
		return nil, err
	}

	out := target.Clone()
	out.Origin = source.Origin
	out.Group = source.Group
	out.SystemMandatory = source.SystemMandatory
	out.SystemInternal = source.SystemInternal

	if out.Modify == "" {
		out.Modify = source.Modify
	}

	if out.DataType == "" {
		out.DataType = source.DataType
	}

	if out.DataFormat == "" {
		out.DataFormat = source.DataFormat
	}

	switch {
	case out.Locator == nil:
		out.Locator = source.Locator.Clone()
	case out.Locator.IsColumn() && source.Locator.IsColumn() && out.Locator.Table == "":
		out.Locator.Table = source.Locator.Table
	}

	if out.Default == nil {
		out.Default = clonePtr(source.Default)
	}

	if len(out.InputTranslation) == 0 {
		out.InputTranslation = common.CloneOrNil(source.InputTranslation)
	}

	if len(out.OutputTranslation) == 0 {
		out.OutputTranslation = common.CloneOrNil(source.OutputTranslation)
	}

	if len(out.ValidationRules) == 0 {
		out.ValidationRules = common.CloneOrNil(source.ValidationRules)
	}

	if out.VisibilityRule == nil {
		out.VisibilityRule = clonePtr(source.VisibilityRule)
	}

	if out.Choices == nil {
		out.Choices = source.Choices.Clone()
	}

	if out.ForceBinary == nil {
		out.ForceBinary = clonePtr(source.ForceBinary)
	}

	out.Occurrence = mergeOccurrence(out.Occurrence, source.Occurrence)
	out.Properties = mergeProperties(out.Properties, source.Properties)

	return out, nil
}

func checkConflicts(target, source *model.Field) error {
	if target.DataType != "" && source.DataType != "" && target.DataType != source.DataType {
		return diagnostic.IncompatibleOverride(target.Name, AttrDataType)
	}

	if len(target.ValidationRules) > 0 && len(source.ValidationRules) > 0 {
		return diagnostic.IncompatibleOverride(target.Name, AttrValidationRules)
	}

	if target.ForceBinary != nil && source.ForceBinary != nil && *target.ForceBinary != *source.ForceBinary {
		return diagnostic.IncompatibleOverride(target.Name, AttrForceBinary)
	}

	if target.Locator.IsColumn() && source.Locator.IsColumn() && !target.Locator.SameColumn(source.Locator) {
		return diagnostic.IncompatibleOverride(target.Name, AttrDataLocator)
	}

	return nil
}

// DemergeField returns a field carrying only the attributes where target
// differs from source, or nil when nothing differs.
func DemergeField(target, source *model.Field) *model.Field {
	out := &model.Field{Name: target.Name, Origin: source.Origin, Group: source.Group}
	changed := false

	diffString := func(t, s string, dst *string) {
		if t != "" && t != s {
			*dst = t
			changed = true
		}
	}

	diffString(string(target.Modify), string(source.Modify), (*string)(&out.Modify))
	diffString(target.DataType, source.DataType, &out.DataType)
	diffString(target.DataFormat, source.DataFormat, &out.DataFormat)

	if target.Locator != nil && !target.Locator.Equal(source.Locator) {
		out.Locator = target.Locator.Clone()
		changed = true
	}

	if target.Default != nil && !model.PtrEqual(target.Default, source.Default) {
		out.Default = clonePtr(target.Default)
		changed = true
	}

	if target.VisibilityRule != nil && !model.PtrEqual(target.VisibilityRule, source.VisibilityRule) {
		out.VisibilityRule = clonePtr(target.VisibilityRule)
		changed = true
	}

	if target.ForceBinary != nil && !model.PtrEqual(target.ForceBinary, source.ForceBinary) {
		out.ForceBinary = clonePtr(target.ForceBinary)
		changed = true
	}

	if target.Choices != nil && !target.Choices.Equal(source.Choices) {
		out.Choices = target.Choices.Clone()
		changed = true
	}

	if target.InputTranslation != nil && !reflect.DeepEqual(target.InputTranslation, source.InputTranslation) {
		out.InputTranslation = common.CloneOrNil(target.InputTranslation)
		changed = true
	}

	if target.OutputTranslation != nil && !reflect.DeepEqual(target.OutputTranslation, source.OutputTranslation) {
		out.OutputTranslation = common.CloneOrNil(target.OutputTranslation)
		changed = true
	}

	if target.ValidationRules != nil && !reflect.DeepEqual(target.ValidationRules, source.ValidationRules) {
		out.ValidationRules = common.CloneOrNil(target.ValidationRules)
		changed = true
	}

	if occ := diffOccurrence(target.Occurrence, source.Occurrence); occ != nil {
		out.Occurrence = occ
		changed = true
	}

	if props := diffProperties(target.Properties, source.Properties); props != nil {
		out.Properties = props
		changed = true
	}

	if !changed {
		return nil
	}

	return out
}

// mergeOccurrence merges per transition: target entries replace source
// entries of the same transition, source order first.
func mergeOccurrence(target, source []model.Occurrence) []model.Occurrence {
	if len(source) == 0 {
		return target
	}

	if len(target) == 0 {
		return common.CloneOrNil(source)
	}

	byTransition := make(map[string]model.Occurrence, len(target))
	for _, o := range target {
		byTransition[o.Transition] = o
	}

	out := make([]model.Occurrence, 0, len(source)+len(target))
	used := common.NewNameSet()

	for _, o := range source {
		if t, ok := byTransition[o.Transition]; ok {
			out = append(out, t)
			used.Add(o.Transition)

			continue
		}

		out = append(out, o)
	}

	for _, o := range target {
		if !used.Has(o.Transition) {
			out = append(out, o)
		}
	}

	return out
}

func diffOccurrence(target, source []model.Occurrence) []model.Occurrence {
	bySource := make(map[string]model.Occurrence, len(source))
	for _, o := range source {
		bySource[o.Transition] = o
	}

	var out []model.Occurrence

	for _, o := range target {
		if s, ok := bySource[o.Transition]; ok && s == o {
			continue
		}

		out = append(out, o)
	}

	return out
}

func mergeProperties(target, source map[string]model.Value) map[string]model.Value {
	if source == nil {
		return target
	}

	out := maps.Clone(source)
	maps.Copy(out, target)

	return out
}

func diffProperties(target, source map[string]model.Value) map[string]model.Value {
	var out map[string]model.Value

	for k, v := range target {
		if s, ok := source[k]; ok && s == v {
			continue
		}

		if out == nil {
			out = make(map[string]model.Value)
		}

		out[k] = v
	}

	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

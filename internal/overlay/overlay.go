package overlay

import (
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Options carries the default pools used while overlaying.
type Options struct {
	// LocalPool resolves default-set references of the lower tier.
	LocalPool model.UISetPool
	// SourcePool resolves default-set references of the higher tier.
	SourcePool model.UISetPool
	// ExpandLocal expands the lower tier's own default set before the
	// overlay. When false the reference is carried into the result as is.
	ExpandLocal bool
}

// Expand resolves ui's default-set reference against pool. Attributes set
// on ui win over the default's. The result no longer names a default set.
// A set without a reference is returned as a copy.
func Expand(ui *model.UISet, pool model.UISetPool) (*model.UISet, error) {
	if ui == nil {
		return nil, nil
	}

	if ui.DefaultSet == "" {
		return ui.Clone(), nil
	}

	def, ok := pool.Lookup(ui.DefaultSet)
	if !ok {
		return nil, diagnostic.UnknownDefaultSet(ui.DefaultSet)
	}

	out := apply(ui, def)
	out.Name = ui.Name
	out.DefaultSet = ""

	return out, nil
}

// Overlay merges local over source. The source is default-expanded before
// the overlay.
func Overlay(local, source *model.UISet, opts Options) (*model.UISet, error) {
	src, err := Expand(source, opts.SourcePool)
	if err != nil {
		return nil, err
	}

	loc := local.Clone()
	if opts.ExpandLocal {
		loc, err = Expand(local, opts.LocalPool)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case loc == nil:
		return src, nil
	case src == nil:
		return loc, nil
	default:
		return apply(loc, src), nil
	}
}

// Diff returns the attributes of local that differ from the default-expanded
// source, or nil when local overrides nothing.
func Diff(local, source *model.UISet, sourcePool model.UISetPool) (*model.UISet, error) {
	src, err := Expand(source, sourcePool)
	if err != nil {
		return nil, err
	}

	if local == nil {
		return nil, nil
	}

	srcDefault := ""
	if source != nil {
		srcDefault = source.DefaultSet
	}

	if src == nil {
		src = &model.UISet{}
	}

	out := &model.UISet{Name: local.Name}

	if local.DefaultSet != "" && local.DefaultSet != srcDefault {
		out.DefaultSet = local.DefaultSet
	}

	out.Label = diffPtr(local.Label, src.Label)
	out.AccessKey = diffPtr(local.AccessKey, src.AccessKey)
	out.ErrorLabel = diffPtr(local.ErrorLabel, src.ErrorLabel)
	out.ReadOnly = diffPtr(local.ReadOnly, src.ReadOnly)
	out.Visibility = diffPtr(local.Visibility, src.Visibility)

	if local.Control != nil && !local.Control.Equal(src.Control) {
		out.Control = local.Control.Clone()
	}

	if local.Choices != nil && !local.Choices.Equal(src.Choices) {
		out.Choices = local.Choices.Clone()
	}

	if out.IsEmpty() {
		return nil, nil
	}

	return out, nil
}

// apply returns a copy of target with every unset attribute taken from source.
func apply(target, source *model.UISet) *model.UISet {
	out := target.Clone()

	if out.Name == "" {
		out.Name = source.Name
	}

	if out.DefaultSet == "" {
		out.DefaultSet = source.DefaultSet
	}

	out.Label = pick(out.Label, source.Label)
	out.AccessKey = pick(out.AccessKey, source.AccessKey)
	out.ErrorLabel = pick(out.ErrorLabel, source.ErrorLabel)
	out.ReadOnly = pick(out.ReadOnly, source.ReadOnly)
	out.Visibility = pick(out.Visibility, source.Visibility)

	if out.Control == nil {
		out.Control = source.Control.Clone()
	}

	if out.Choices == nil {
		out.Choices = source.Choices.Clone()
	}

	return out
}

func pick(target, source *string) *string {
	if target != nil {
		return target
	}

	if source == nil {
		return nil
	}

	v := *source

	return &v
}

func diffPtr(local, source *string) *string {
	if local == nil || model.PtrEqual(local, source) {
		return nil
	}

	v := *local

	return &v
}

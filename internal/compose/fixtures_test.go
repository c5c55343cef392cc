package compose

import (
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

func str(s string) *string { return &s }

func label(s string) *model.UISet { return &model.UISet{Label: str(s)} }

func field(ref string, ui *model.UISet) *model.DisplayMapping {
	return &model.DisplayMapping{FieldRef: ref, UISet: ui}
}

func child(ref string, mappings ...*model.DisplayMapping) *model.DisplayMapping {
	return &model.DisplayMapping{FieldRef: ref, Mapper: model.NewDisplayMapper(ref, mappings...)}
}

func systemDef() *model.SystemDef {
	return &model.SystemDef{
		FieldSet: model.NewFieldSet("sys", model.SetParent,
			&model.Field{Name: "sys_title", DataType: "text", DataFormat: "255", SystemMandatory: true},
			&model.Field{Name: "sys_id", DataType: "number", SystemMandatory: true, SystemInternal: true},
			&model.Field{Name: "sys_reminder", DataType: "date"},
			model.NewFieldSet("sys_relations", model.SetComplexChild,
				&model.Field{Name: "sys_slot", DataType: "number"},
			),
		),
		Mapper: model.NewDisplayMapper("sys",
			field("sys_title", &model.UISet{DefaultSet: "edit", Label: str("Title")}),
			field("sys_id", label("ID")),
			field("sys_reminder", label("Remind me")),
			child("sys_relations", field("sys_slot", label("Slot"))),
		),
		DefaultUISets: model.NewUISetPool(&model.UISet{Name: "edit", Control: &model.Control{Name: "sys_EditBox"}}),
	}
}

func authorGroup() *model.SharedGroup {
	return &model.SharedGroup{
		Name: "Author",
		FieldSet: model.NewFieldSet("Author", model.SetMultiPropertySimpleChild,
			&model.Field{Name: "name", DataType: "text"},
			&model.Field{Name: "email", DataType: "text"},
		),
		Mapper: model.NewDisplayMapper("Author",
			field("name", label("Name")),
			field("email", label("Email")),
		),
	}
}

func galleryGroup() *model.SharedGroup {
	return &model.SharedGroup{
		Name: "gallery",
		FieldSet: model.NewFieldSet("gallery", model.SetComplexChild,
			&model.Field{Name: "img", DataType: "binary"},
			&model.Field{Name: "caption", DataType: "text"},
		),
		Mapper: model.NewDisplayMapper("gallery",
			field("img", label("Image")),
			field("caption", label("Caption")),
		),
	}
}

func sharedDef(extra ...*model.SharedGroup) *model.SharedDef {
	return &model.SharedDef{
		Groups:        append([]*model.SharedGroup{authorGroup(), galleryGroup()}, extra...),
		DefaultUISets: model.NewUISetPool(&model.UISet{Name: "wide", Control: &model.Control{Name: "sys_TextArea"}}),
	}
}

func article() *model.Definition {
	return &model.Definition{
		Name: "article",
		FieldSet: model.NewFieldSet("article", model.SetParent,
			&model.Field{Name: "title", DataType: "text"},
			&model.Field{Name: "sys_title", DataFormat: "100"},
		),
		Mapper: model.NewDisplayMapper("article",
			field("title", label("Title")),
			field("sys_title", label("Headline")),
			field("name", label("Author name")),
		),
		SystemExcludes: []string{"sys_id", "sys_reminder"},
		SharedIncludes: []string{"Author"},
		SharedExcludes: []string{"email"},
	}
}

type recordingValidator struct {
	fields, sets, mappings []string
}

func (v *recordingValidator) ValidateField(f *model.Field, _ *diagnostic.Diagnostics) {
	v.fields = append(v.fields, f.Name)
}

func (v *recordingValidator) ValidateFieldSet(s *model.FieldSet, _ *diagnostic.Diagnostics) {
	v.sets = append(v.sets, s.Name)
}

func (v *recordingValidator) ValidateMapping(m *model.DisplayMapping, diags *diagnostic.Diagnostics) {
	v.mappings = append(v.mappings, m.FieldRef)
	if m.UISet == nil {
		diags.AddWarning("no_ui", "mapping has no UI set", "", m.FieldRef)
	}
}

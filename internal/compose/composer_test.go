package compose

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

func mustMerge(t *testing.T, local *model.Definition, shared *model.SharedDef) *Result {
	t.Helper()

	res, err := New(DefaultConfig()).Merge(local, systemDef(), shared)
	require.NoError(t, err)
	require.NotNil(t, res.Definition)

	return res
}

func TestMerge_Article(t *testing.T) {
	res := mustMerge(t, article(), sharedDef())
	def := res.Definition

	assert.Equal(t, "article", def.Name)
	assert.Equal(t, []string{"title", "sys_title", "sys_id", "sys_relations", "name"}, def.FieldSet.Names())
	assert.Equal(t, []string{"title", "sys_title", "name", "sys_id", "sys_relations", "sys_slot"}, def.Mapper.FieldRefs())
	assert.Equal(t, []int{1, 2}, def.Mapper.IDs())

	sysTitle := def.FieldSet.Field("sys_title")
	assert.Equal(t, "100", sysTitle.DataFormat)
	assert.Equal(t, "text", sysTitle.DataType)
	assert.True(t, sysTitle.SystemMandatory)

	ui := def.Mapper.Find("sys_title").UISet
	assert.Equal(t, "Headline", *ui.Label)
	assert.Equal(t, "sys_EditBox", ui.Control.Name)
	assert.Equal(t, "Author name", *def.Mapper.Find("name").UISet.Label)

	assert.Equal(t, []string{"sys_reminder"}, def.SystemExcludes)
	assert.Equal(t, []string{"Author"}, def.SharedIncludes)
	assert.Equal(t, []string{"email"}, def.SharedExcludes)

	assert.ElementsMatch(t, []string{"edit", "wide"}, def.DefaultUISets.Names())
	assert.Empty(t, res.Diagnostics.Warnings)
}

func TestMerge_MandatoryFieldCannotBeExcluded(t *testing.T) {
	local := article()
	local.SystemExcludes = []string{"sys_id", "sys_title", "sys_reminder"}

	res := mustMerge(t, local, sharedDef())

	assert.True(t, res.Definition.FieldSet.Has("sys_id"))
	assert.True(t, res.Definition.FieldSet.Has("sys_title"))
	assert.True(t, res.Definition.Mapper.Contains("sys_id"))
	assert.NotContains(t, res.Definition.SystemExcludes, "sys_id")
	assert.NotContains(t, res.Definition.SystemExcludes, "sys_title")
	assert.Len(t, res.Diagnostics.Infos, 2)
	assert.Equal(t, diagnostic.InfoMandatoryExcludeIgnored, res.Diagnostics.Infos[0].Code)
}

func TestMerge_SharedFieldExcluded(t *testing.T) {
	res := mustMerge(t, article(), sharedDef())

	assert.True(t, res.Definition.FieldSet.Has("name"))
	assert.False(t, res.Definition.FieldSet.Has("email"))
	assert.False(t, res.Definition.Mapper.Contains("email"))
	assert.Equal(t, []string{"name"}, GroupFields(res.Definition, "Author"))
}

func TestMerge_ExcludedEntryDropsLocalMapping(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		ids    []int
		modify func(d *model.Definition)
	}{
		{
			name: "shared field",
			ref:  "email",
			ids:  []int{1, 2},
			modify: func(d *model.Definition) {
				d.Mapper.Mappings = append(d.Mapper.Mappings, field("email", nil))
			},
		},
		{
			name: "system field with override",
			ref:  "sys_reminder",
			ids:  []int{1, 2},
			modify: func(d *model.Definition) {
				d.Mapper.Mappings = append(d.Mapper.Mappings, field("sys_reminder", label("Due")))
			},
		},
		{
			name: "system set with nested override",
			ref:  "sys_slot",
			ids:  []int{1},
			modify: func(d *model.Definition) {
				d.SystemExcludes = append(d.SystemExcludes, "sys_relations")
				d.Mapper.Mappings = append(d.Mapper.Mappings, child("sys_relations", field("sys_slot", label("Position"))))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := article()
			tt.modify(local)

			def := mustMerge(t, local, sharedDef()).Definition

			assert.Nil(t, def.FieldSet.FindField(tt.ref))
			assert.False(t, def.Mapper.Contains(tt.ref))
			assert.Contains(t, def.Mapper.FieldRefs(), "title")
			assert.Equal(t, tt.ids, def.Mapper.IDs())
		})
	}
}

func TestMerge_ExcludeAfterDemerge(t *testing.T) {
	local := article()
	local.SharedExcludes = nil
	local.Mapper.Mappings = append(local.Mapper.Mappings, field("email", label("Contact")))

	c := New(DefaultConfig())

	merged, err := c.Merge(local, systemDef(), sharedDef())
	require.NoError(t, err)
	require.True(t, merged.Definition.Mapper.Contains("email"))

	demerged, err := c.Demerge(merged.Definition, systemDef(), sharedDef())
	require.NoError(t, err)
	require.True(t, demerged.Definition.Mapper.Contains("email"))

	edited := demerged.Definition
	edited.SharedExcludes = []string{"email"}

	again, err := c.Merge(edited, systemDef(), sharedDef())
	require.NoError(t, err)

	def := again.Definition
	assert.False(t, def.FieldSet.Has("email"))
	assert.False(t, def.Mapper.Contains("email"))
	assert.Equal(t, []string{"email"}, def.SharedExcludes)

	def.Mapper.WalkMappings(func(m *model.DisplayMapping) {
		assert.True(t, def.FieldSet.Resolves(m.FieldRef), "mapping %q has no field", m.FieldRef)
	})
}

func TestMerge_LocalFieldStaysLocal(t *testing.T) {
	local := article()
	local.FieldSet.Field("title").Origin = model.OriginSystem

	res := mustMerge(t, local, sharedDef())

	title := res.Definition.FieldSet.Field("title")
	assert.Equal(t, "text", title.DataType)

	origins := Provenance(res.Definition)
	assert.Equal(t, model.OriginLocal, origins["title"])
	assert.Equal(t, model.OriginSystem, origins["sys_title"])
	assert.Equal(t, model.OriginSystem, origins["sys_slot"])
	assert.Equal(t, model.OriginShared, origins["name"])
}

func TestMerge_DuplicateSharedField(t *testing.T) {
	summary := func(group string) *model.SharedGroup {
		return &model.SharedGroup{
			Name:     group,
			FieldSet: model.NewFieldSet(group, model.SetMultiPropertySimpleChild, &model.Field{Name: "summary"}),
			Mapper:   model.NewDisplayMapper(group, field("summary", nil)),
		}
	}

	local := article()
	local.SharedIncludes = []string{"Author", "Teaser", "Abstract"}
	local.Mapper.Mappings = append(local.Mapper.Mappings, field("summary", label("Summary")))

	res, err := New(DefaultConfig()).Merge(local, systemDef(), sharedDef(summary("Teaser"), summary("Abstract")))
	require.ErrorIs(t, err, diagnostic.ErrDuplicateSharedField)
	assert.Nil(t, res)

	var derr *diagnostic.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "summary", derr.Subject)
	assert.Equal(t, []string{"Teaser", "Abstract"}, derr.Names)

	local.SharedExcludes = append(local.SharedExcludes, "summary")
	_, err = New(DefaultConfig()).Merge(local, systemDef(), sharedDef(summary("Teaser"), summary("Abstract")))
	assert.NoError(t, err, "an excluded duplicate does not collide")
}

func TestMerge_SimpleChildWithoutMappingWarns(t *testing.T) {
	teaser := &model.SharedGroup{
		Name:     "Teaser",
		FieldSet: model.NewFieldSet("Teaser", model.SetSimpleChild, &model.Field{Name: "teaser", DataType: "text"}),
		Mapper:   model.NewDisplayMapper("Teaser"),
	}

	local := article()
	local.SharedIncludes = append(local.SharedIncludes, "Teaser")

	res := mustMerge(t, local, sharedDef(teaser))

	assert.True(t, res.Diagnostics.HasWarning(diagnostic.WarnMissingOrInvalidChildMapping))
	assert.True(t, res.Definition.FieldSet.Has("teaser"))
	assert.Contains(t, res.Definition.SharedIncludes, "Teaser")
}

func TestMerge_GroupNamingWarnings(t *testing.T) {
	bio := &model.SharedGroup{
		Name:     "Bio",
		FieldSet: model.NewFieldSet("biography", model.SetMultiPropertySimpleChild, &model.Field{Name: "bio"}),
		Mapper:   model.NewDisplayMapper("bio_set", field("bio", nil)),
	}

	local := article()
	local.SharedIncludes = append(local.SharedIncludes, "Bio")

	res := mustMerge(t, local, sharedDef(bio))

	assert.True(t, res.Diagnostics.HasWarning(diagnostic.WarnGroupNameMismatch))
	assert.True(t, res.Diagnostics.HasWarning(diagnostic.WarnMapperFieldSetMismatch))
}

func TestMerge_ValidationFailures(t *testing.T) {
	parent := &model.SharedGroup{Name: "Root", FieldSet: model.NewFieldSet("Root", model.SetParent)}

	tests := []struct {
		name        string
		modify      func(d *model.Definition)
		want        error
		suggestions []string
	}{
		{
			name:        "unknown group",
			modify:      func(d *model.Definition) { d.SharedIncludes = []string{"Autor"} },
			want:        diagnostic.ErrSharedGroupNotFound,
			suggestions: []string{"Author"},
		},
		{
			name:        "unknown system exclude",
			modify:      func(d *model.Definition) { d.SystemExcludes = []string{"sys_titl"} },
			want:        diagnostic.ErrSystemExcludeInvalid,
			suggestions: []string{"sys_title"},
		},
		{
			name:        "shared exclude outside included groups",
			modify:      func(d *model.Definition) { d.SharedExcludes = []string{"img"} },
			want:        diagnostic.ErrSharedExcludeInvalid,
			suggestions: nil,
		},
		{
			name:   "parent group",
			modify: func(d *model.Definition) { d.SharedIncludes = []string{"Root"} },
			want:   diagnostic.ErrInvalidSharedGroupKind,
		},
		{
			name: "incompatible override",
			modify: func(d *model.Definition) {
				d.FieldSet.Field("sys_title").DataType = "number"
			},
			want: diagnostic.ErrIncompatibleOverride,
		},
		{
			name: "field replaced by set",
			modify: func(d *model.Definition) {
				d.FieldSet.Put(model.NewFieldSet("sys_reminder", model.SetComplexChild))
				d.SystemExcludes = nil
			},
			want: diagnostic.ErrDuplicateMergedName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := article()
			tt.modify(local)

			res, err := New(DefaultConfig()).Merge(local, systemDef(), sharedDef(parent))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)

			var derr *diagnostic.Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.suggestions, derr.Suggestions)
		})
	}
}

func TestMerge_ForceIncludesGroupWithMandatoryField(t *testing.T) {
	legal := &model.SharedGroup{
		Name: "Legal",
		FieldSet: model.NewFieldSet("Legal", model.SetMultiPropertySimpleChild,
			&model.Field{Name: "disclaimer", SystemMandatory: true},
			&model.Field{Name: "notes"},
		),
		Mapper: model.NewDisplayMapper("Legal", field("disclaimer", nil), field("notes", nil)),
	}

	res := mustMerge(t, article(), sharedDef(legal))
	def := res.Definition

	assert.True(t, def.FieldSet.Has("disclaimer"))
	assert.False(t, def.FieldSet.Has("notes"))
	assert.True(t, def.Mapper.Contains("disclaimer"))
	assert.False(t, def.Mapper.Contains("notes"))
	assert.Equal(t, []string{"Author", "Legal"}, def.SharedIncludes)
	assert.Equal(t, []string{"email", "notes"}, def.SharedExcludes)

	var codes []string
	for _, i := range res.Diagnostics.Infos {
		codes = append(codes, i.Code)
	}

	assert.Contains(t, codes, diagnostic.InfoGroupForceIncluded)
}

func TestMerge_ComplexGroupAttachesAsSubtree(t *testing.T) {
	local := article()
	local.SharedIncludes = []string{"Author", "gallery"}
	local.SharedExcludes = []string{"email", "caption"}

	res := mustMerge(t, local, sharedDef())
	def := res.Definition

	g := def.FieldSet.Child("gallery")
	require.NotNil(t, g)
	assert.Equal(t, []string{"img"}, g.Names())
	assert.Equal(t, model.OriginShared, g.Origin)

	pm := def.Mapper.Find("gallery")
	require.NotNil(t, pm)
	require.NotNil(t, pm.Mapper)
	assert.Equal(t, []string{"img"}, pm.Mapper.FieldRefs())
	assert.Equal(t, []int{1, 2, 3}, def.Mapper.IDs())

	assert.Equal(t, []string{"Author", "gallery"}, def.SharedIncludes)
	assert.Equal(t, []string{"email", "caption"}, def.SharedExcludes)
}

func TestMerge_IDsAreDense(t *testing.T) {
	local := article()
	local.SharedIncludes = []string{"Author", "gallery"}
	local.Mapper.ID = 40
	local.Mapper.Mappings = append(local.Mapper.Mappings,
		child("sys_relations", field("sys_slot", label("Position"))))
	local.Mapper.Mappings[3].Mapper.ID = 7

	def := mustMerge(t, local, sharedDef()).Definition

	ids := def.Mapper.IDs()
	for i, id := range ids {
		assert.Equal(t, i+1, id, spew.Sdump(ids))
	}
}

func TestMerge_InputsNotModified(t *testing.T) {
	local := article()
	sys := systemDef()
	shared := sharedDef()

	_, err := New(DefaultConfig()).Merge(local, sys, shared)
	require.NoError(t, err)

	assert.True(t, model.TreeEqual(article().FieldSet, local.FieldSet))
	assert.True(t, model.MapperEqual(article().Mapper, local.Mapper))
	assert.Equal(t, model.NoID, local.Mapper.ID)
	assert.True(t, model.TreeEqual(systemDef().FieldSet, sys.FieldSet))
	assert.True(t, model.MapperEqual(systemDef().Mapper, sys.Mapper))
	assert.True(t, model.TreeEqual(authorGroup().FieldSet, shared.Groups[0].FieldSet))
}

func TestDemerge_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *model.Definition)
	}{
		{name: "article"},
		{
			name: "with complex group",
			modify: func(d *model.Definition) {
				d.SharedIncludes = []string{"Author", "gallery"}
				d.SharedExcludes = []string{"email", "caption"}
			},
		},
		{
			name: "with nested override",
			modify: func(d *model.Definition) {
				d.Mapper.Mappings = append(d.Mapper.Mappings,
					child("sys_relations", field("sys_slot", label("Position"))))
				d.FieldSet.Put(model.NewFieldSet("sys_relations", "",
					&model.Field{Name: "sys_slot", Default: str("1")}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := article()
			if tt.modify != nil {
				tt.modify(local)
			}

			c := New(DefaultConfig())

			merged, err := c.Merge(local, systemDef(), sharedDef())
			require.NoError(t, err)

			demerged, err := c.Demerge(merged.Definition, systemDef(), sharedDef())
			require.NoError(t, err)

			again, err := c.Merge(demerged.Definition, systemDef(), sharedDef())
			require.NoError(t, err)

			m, a := merged.Definition, again.Definition
			assert.True(t, model.TreeEqual(m.FieldSet, a.FieldSet), "want:\n%s\ngot:\n%s", spew.Sdump(m.FieldSet), spew.Sdump(a.FieldSet))
			assert.True(t, model.MapperEqual(m.Mapper, a.Mapper), "want:\n%s\ngot:\n%s", spew.Sdump(m.Mapper), spew.Sdump(a.Mapper))
			assert.Equal(t, m.SystemExcludes, a.SystemExcludes)
			assert.Equal(t, m.SharedIncludes, a.SharedIncludes)
			assert.Equal(t, m.SharedExcludes, a.SharedExcludes)
		})
	}
}

func TestDemerge_KeepsOnlyLocalPart(t *testing.T) {
	c := New(DefaultConfig())

	merged, err := c.Merge(article(), systemDef(), sharedDef())
	require.NoError(t, err)

	res, err := c.Demerge(merged.Definition, systemDef(), sharedDef())
	require.NoError(t, err)

	def := res.Definition
	assert.Equal(t, []string{"title", "sys_title"}, def.FieldSet.Names())

	sysTitle := def.FieldSet.Field("sys_title")
	assert.Equal(t, "100", sysTitle.DataFormat)
	assert.Empty(t, sysTitle.DataType)
	assert.Equal(t, model.OriginSystem, sysTitle.Origin)

	assert.Equal(t, []string{"title", "sys_title", "name", "sys_id", "sys_relations"}, def.Mapper.FieldRefs())
	assert.True(t, model.UISetEqual(label("Headline"), def.Mapper.Find("sys_title").UISet))
	assert.True(t, model.UISetEqual(label("Author name"), def.Mapper.Find("name").UISet))
	assert.Nil(t, def.Mapper.Find("sys_id").UISet)
	assert.Nil(t, def.Mapper.Find("sys_relations").Mapper)

	assert.Equal(t, []string{"sys_reminder"}, def.SystemExcludes)
	assert.Equal(t, []string{"Author"}, def.SharedIncludes)
	assert.Equal(t, []string{"email"}, def.SharedExcludes)
	assert.Empty(t, def.DefaultUISets)
}

func TestDemerge_KeepsLocalDefaultSets(t *testing.T) {
	local := article()
	local.DefaultUISets = model.NewUISetPool(
		&model.UISet{Name: "plain", Control: &model.Control{Name: "sys_Plain"}},
		&model.UISet{Name: "edit", Control: &model.Control{Name: "sys_EditBox"}},
	)

	c := New(DefaultConfig())

	merged, err := c.Merge(local, systemDef(), sharedDef())
	require.NoError(t, err)

	res, err := c.Demerge(merged.Definition, systemDef(), sharedDef())
	require.NoError(t, err)

	assert.Equal(t, []string{"plain"}, res.Definition.DefaultUISets.Names())
}

func TestComposer_RunsValidator(t *testing.T) {
	v := &recordingValidator{}
	cfg := DefaultConfig()
	cfg.Validator = v

	res, err := New(cfg).Merge(article(), systemDef(), sharedDef())
	require.NoError(t, err)

	assert.Equal(t, []string{"article", "sys_relations"}, v.sets)
	assert.Equal(t, []string{"title", "sys_title", "sys_id", "sys_slot", "name"}, v.fields)
	assert.Equal(t, res.Definition.Mapper.FieldRefs(), v.mappings)
	assert.True(t, res.Diagnostics.HasWarning("no_ui"))
}

func TestComposer_LogsSteps(t *testing.T) {
	var buf bytes.Buffer

	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cfg := DefaultConfig()
	cfg.Logger = logger

	_, err := New(cfg).Merge(article(), systemDef(), sharedDef())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "merged system fields")
	assert.Contains(t, buf.String(), "updated lists")
}

func TestComposer_MergeDefaultFirst(t *testing.T) {
	local := article()
	local.DefaultUISets = model.NewUISetPool(&model.UISet{Name: "plain", Control: &model.Control{Name: "sys_Plain"}})
	local.Mapper.Mappings[1].UISet = &model.UISet{DefaultSet: "plain"}

	res, err := New(DefaultConfig()).Merge(local, systemDef(), sharedDef())
	require.NoError(t, err)

	ui := res.Definition.Mapper.Find("sys_title").UISet
	assert.Equal(t, "plain", ui.DefaultSet)
	assert.Equal(t, "sys_EditBox", ui.Control.Name)

	cfg := DefaultConfig()
	cfg.MergeDefaultFirst = true

	res, err = New(cfg).Merge(local, systemDef(), sharedDef())
	require.NoError(t, err)

	ui = res.Definition.Mapper.Find("sys_title").UISet
	assert.Empty(t, ui.DefaultSet)
	assert.Equal(t, "sys_Plain", ui.Control.Name)
}

func TestMerge_LocalWithoutLayoutBindsRoot(t *testing.T) {
	local := article()
	local.Mapper = nil

	res := mustMerge(t, local, sharedDef())

	assert.Equal(t, "article", res.Definition.Mapper.FieldSet)
	assert.Contains(t, res.Definition.Mapper.FieldRefs(), "sys_title")
}

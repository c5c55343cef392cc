package compose

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"defcompose/internal/common"
	"defcompose/internal/diagnostic"
	"defcompose/internal/fieldset"
	"defcompose/internal/layout"
	"defcompose/internal/model"
	"defcompose/internal/overlay"
)

// Result is the outcome of a successful merge or demerge.
type Result struct {
	Definition  *model.Definition
	Diagnostics diagnostic.Diagnostics
}

// Composer merges and demerges definitions. It holds no state besides its
// configuration and is safe for concurrent use.
type Composer struct {
	config Config
	log    *log.Logger
}

// New creates a Composer.
func New(config Config) *Composer {
	return &Composer{config: config, log: config.logger()}
}

// tiers is the prepared input of one call.
type tiers struct {
	sys    *model.SystemDef
	shared *model.SharedDef
	lists  Lists
	active []*model.SharedGroup
}

// Merge composes local with the system definition and the shared groups.
// None of the inputs is modified.
func (c *Composer) Merge(local *model.Definition, sys *model.SystemDef, shared *model.SharedDef) (*Result, error) {
	res := &Result{}
	local = prepareLocal(local)

	t, err := c.prepare(local, sys, shared, &res.Diagnostics)
	if err != nil {
		return nil, err
	}

	tree := fieldset.TagOrigins(local.FieldSet, t.sources())
	c.log.Debug("tagged local origins", "step", 5, "definition", local.Name)

	tree, err = c.mergeFields(tree, t)
	if err != nil {
		return nil, fmt.Errorf("merge field tree: %w", err)
	}

	mapper, err := c.mergeLayout(local, tree, t)
	if err != nil {
		return nil, fmt.Errorf("merge layout tree: %w", err)
	}

	def := &model.Definition{
		Name:          local.Name,
		FieldSet:      tree,
		Mapper:        mapper,
		DefaultUISets: local.DefaultUISets.Union(t.shared.DefaultUISets, t.sys.DefaultUISets),
	}

	c.finish(def, t, res)

	return res, nil
}

// Demerge extracts from merged the local definition that, merged again
// with the same tiers, produces it. None of the inputs is modified.
func (c *Composer) Demerge(merged *model.Definition, sys *model.SystemDef, shared *model.SharedDef) (*Result, error) {
	res := &Result{}
	merged = prepareLocal(merged)

	t, err := c.prepare(merged, sys, shared, &res.Diagnostics)
	if err != nil {
		return nil, err
	}

	tagged := fieldset.TagOrigins(merged.FieldSet, t.sources())

	tree, err := c.demergeFields(tagged, t)
	if err != nil {
		return nil, fmt.Errorf("demerge field tree: %w", err)
	}

	mapper, err := c.demergeLayout(merged.Mapper, t)
	if err != nil {
		return nil, fmt.Errorf("demerge layout tree: %w", err)
	}

	view := *merged
	view.FieldSet = tagged
	lists := UpdateExcludes(&view, t.sys, t.active)

	def := &model.Definition{
		Name:           merged.Name,
		FieldSet:       tree,
		Mapper:         mapper,
		DefaultUISets:  demergePool(merged.DefaultUISets, t.shared.DefaultUISets, t.sys.DefaultUISets),
		SystemExcludes: lists.SystemExcludes,
		SharedIncludes: lists.SharedIncludes,
		SharedExcludes: lists.SharedExcludes,
	}

	c.check(def, &res.Diagnostics)
	c.logDiagnostics(res.Diagnostics)

	res.Definition = def

	return res, nil
}

// prepare runs steps 1 to 4.
func (c *Composer) prepare(local *model.Definition, sys *model.SystemDef, shared *model.SharedDef,
	diags *diagnostic.Diagnostics,
) (*tiers, error) {
	t := &tiers{sys: prepareSystem(sys), shared: tagGroups(shared)}
	c.log.Debug("tagged shared groups", "step", 1, "count", len(t.shared.Groups))

	if err := ValidateSharedGroups(local, t.shared, diags); err != nil {
		return nil, err
	}

	c.log.Debug("validated shared groups", "step", 2, "count", len(local.SharedIncludes))

	if err := ValidateSystemExcludes(local, t.sys); err != nil {
		return nil, err
	}

	c.log.Debug("validated system excludes", "step", 3, "count", len(local.SystemExcludes))

	t.lists = RealLists(local, t.sys, t.shared, diags)

	for _, name := range t.lists.SharedIncludes {
		g := t.shared.Group(name)
		if !slices.Contains(local.SharedIncludes, name) {
			if err := checkGroup(g, diags); err != nil {
				return nil, err
			}
		}

		t.active = append(t.active, g)
	}

	if err := checkDuplicateFields(t.active, t.lists); err != nil {
		return nil, err
	}

	c.log.Debug("computed real lists", "step", 4,
		"systemExcludes", len(t.lists.SystemExcludes),
		"sharedIncludes", len(t.lists.SharedIncludes),
		"sharedExcludes", len(t.lists.SharedExcludes))

	return t, nil
}

func (t *tiers) sources() fieldset.OriginSources {
	return fieldset.OriginSources{
		System:         t.sys.FieldSet,
		SystemExcludes: common.NewNameSet(t.lists.SystemExcludes...),
		Groups:         t.active,
		SharedExcludes: common.NewNameSet(t.lists.SharedExcludes...),
	}
}

// groupSource returns the exclusion-filtered field tree of g, shaped the
// way it merges into a root named root.
func (t *tiers) groupSource(g *model.SharedGroup, root string, validate bool) (*model.FieldSet, error) {
	src, err := fieldset.RemoveExcluded(g.FieldSet, t.lists.groupExcludes(g), validate)
	if err != nil {
		return nil, err
	}

	if g.IsComplex() {
		return model.NewFieldSet(root, "", src), nil
	}

	return src, nil
}

func (c *Composer) mergeFields(tree *model.FieldSet, t *tiers) (*model.FieldSet, error) {
	sys, err := fieldset.RemoveExcluded(t.sys.FieldSet, t.lists.SystemExcludes, true)
	if err != nil {
		return nil, err
	}

	tree, err = fieldset.Merge(tree, sys)
	if err != nil {
		return nil, err
	}

	c.log.Debug("merged system fields", "step", 6, "count", sys.Len())

	for _, g := range t.active {
		src, err := t.groupSource(g, tree.Name, true)
		if err != nil {
			return nil, err
		}

		tree, err = fieldset.Merge(tree, src)
		if err != nil {
			return nil, err
		}

		c.log.Debug("merged shared fields", "step", 6, "group", g.Name, "count", g.FieldSet.Len())
	}

	return tree, nil
}

func (c *Composer) mergeLayout(local *model.Definition, tree *model.FieldSet, t *tiers) (*model.DisplayMapper, error) {
	root := tree.Name

	ui := overlay.Options{LocalPool: local.DefaultUISets, ExpandLocal: c.config.MergeDefaultFirst}

	sysUI := ui
	sysUI.SourcePool = t.sys.DefaultUISets

	mapper, err := layout.Merge(layout.TagOrigin(local.Mapper, model.OriginLocal), t.sys.Mapper,
		layout.Options{Excludes: t.lists.SystemExcludes, UI: sysUI})
	if err != nil {
		return nil, err
	}

	if mapper == nil {
		mapper = model.NewDisplayMapper(root)
	}

	mapper.FieldSet = root

	sharedUI := ui
	sharedUI.SourcePool = t.shared.DefaultUISets

	for _, g := range t.active {
		if g.Mapper == nil {
			continue
		}

		opts := layout.Options{Excludes: t.lists.groupExcludes(g), UI: sharedUI}

		if g.IsComplex() {
			opts.MergeChild = true

			if !mapper.Contains(g.Mapper.FieldSet) {
				mapper.Mappings = append(mapper.Mappings,
					&model.DisplayMapping{FieldRef: g.Mapper.FieldSet, Origin: model.OriginShared})
			}
		}

		mapper, err = layout.Merge(mapper, g.Mapper, opts)
		if err != nil {
			return nil, err
		}

		c.log.Debug("merged shared layout", "step", 6, "group", g.Name, "child", opts.MergeChild)
	}

	// a local mapping of an excluded entry has nothing left to display
	excluded := slices.Concat(t.lists.SystemExcludes, t.lists.SharedExcludes)
	if stale := common.Filter(excluded, func(name string) bool { return !tree.Resolves(name) }); len(stale) > 0 {
		mapper = layout.RemoveExcluded(mapper, stale)
		layout.Renumber(mapper)

		c.log.Debug("dropped excluded mappings", "step", 6, "names", stale)
	}

	return mapper, nil
}

func (c *Composer) demergeFields(tree *model.FieldSet, t *tiers) (*model.FieldSet, error) {
	sys, err := fieldset.RemoveExcluded(t.sys.FieldSet, t.lists.SystemExcludes, false)
	if err != nil {
		return nil, err
	}

	tree, err = fieldset.Demerge(tree, sys)
	if err != nil {
		return nil, err
	}

	for _, g := range t.active {
		src, err := t.groupSource(g, tree.Name, false)
		if err != nil {
			return nil, err
		}

		tree, err = fieldset.Demerge(tree, src)
		if err != nil {
			return nil, err
		}
	}

	return tree, nil
}

func (c *Composer) demergeLayout(mapper *model.DisplayMapper, t *tiers) (*model.DisplayMapper, error) {
	mapper, err := layout.Demerge(mapper, layout.RemoveExcluded(t.sys.Mapper, t.lists.SystemExcludes),
		layout.Options{UI: overlay.Options{SourcePool: t.sys.DefaultUISets}})
	if err != nil {
		return nil, err
	}

	for _, g := range t.active {
		if g.Mapper == nil || mapper == nil {
			continue
		}

		opts := layout.Options{
			MergeChild: g.IsComplex(),
			UI:         overlay.Options{SourcePool: t.shared.DefaultUISets},
		}

		mapper, err = layout.Demerge(mapper, layout.RemoveExcluded(g.Mapper, t.lists.groupExcludes(g)), opts)
		if err != nil {
			return nil, err
		}

		if opts.MergeChild {
			dropGeneratedPlaceholder(mapper, g.Mapper.FieldSet)
		}
	}

	return mapper, nil
}

// dropGeneratedPlaceholder removes the attachment mapping added during
// merge when the local tier never customized it.
func dropGeneratedPlaceholder(d *model.DisplayMapper, ref string) {
	d.Mappings = common.Filter(d.Mappings, func(m *model.DisplayMapping) bool {
		return m.FieldRef != ref || m.Origin != model.OriginShared || m.UISet != nil || m.Mapper != nil
	})
}

// finish runs step 7 and the node validator, and stores the definition.
func (c *Composer) finish(def *model.Definition, t *tiers, res *Result) {
	lists := UpdateExcludes(def, t.sys, t.active)
	def.SystemExcludes = lists.SystemExcludes
	def.SharedIncludes = lists.SharedIncludes
	def.SharedExcludes = lists.SharedExcludes

	c.log.Debug("updated lists", "step", 7,
		"systemExcludes", len(lists.SystemExcludes),
		"sharedIncludes", len(lists.SharedIncludes),
		"sharedExcludes", len(lists.SharedExcludes))

	c.check(def, &res.Diagnostics)
	c.logDiagnostics(res.Diagnostics)

	res.Definition = def
}

// check runs the configured Validator over every node of def.
func (c *Composer) check(def *model.Definition, diags *diagnostic.Diagnostics) {
	v := c.config.Validator
	if v == nil {
		return
	}

	walkSets(def.FieldSet, func(s *model.FieldSet) {
		v.ValidateFieldSet(s, diags)
	})
	def.FieldSet.WalkFields(func(f *model.Field) {
		v.ValidateField(f, diags)
	})
	def.Mapper.WalkMappings(func(m *model.DisplayMapping) {
		v.ValidateMapping(m, diags)
	})
}

func walkSets(s *model.FieldSet, fn func(*model.FieldSet)) {
	fn(s)

	for _, n := range s.Nodes() {
		if c, ok := n.(*model.FieldSet); ok {
			walkSets(c, fn)
		}
	}
}

func (c *Composer) logDiagnostics(d diagnostic.Diagnostics) {
	for _, w := range d.Warnings {
		c.log.Warn(w.Message, "code", w.Code, "group", w.Group, "field", w.FieldPath)
	}

	for _, i := range d.Infos {
		c.log.Info(i.Message, "code", i.Code, "group", i.Group, "field", i.FieldPath)
	}
}

// tagGroups returns a copy of shared with every group's nodes tagged with
// the group's name and shared origin.
func tagGroups(shared *model.SharedDef) *model.SharedDef {
	out := &model.SharedDef{}
	if shared == nil {
		return out
	}

	out.DefaultUISets = shared.DefaultUISets

	for _, g := range shared.Groups {
		tagged := &model.SharedGroup{Name: g.Name, Mapper: layout.TagOrigin(g.Mapper, model.OriginShared)}
		if g.FieldSet != nil {
			tagged.FieldSet = fieldset.TagGroup(g)
		}

		out.Groups = append(out.Groups, tagged)
	}

	return out
}

// prepareSystem returns a tagged copy of sys. A nil definition is empty.
func prepareSystem(sys *model.SystemDef) *model.SystemDef {
	out := &model.SystemDef{FieldSet: model.NewFieldSet("", model.SetParent)}
	if sys == nil {
		return out
	}

	if sys.FieldSet != nil {
		out.FieldSet = fieldset.TagSystem(sys.FieldSet)
	}

	out.Mapper = layout.TagOrigin(sys.Mapper, model.OriginSystem)
	out.DefaultUISets = sys.DefaultUISets

	return out
}

// prepareLocal returns a shallow copy of def with a root field set.
func prepareLocal(def *model.Definition) *model.Definition {
	out := *def
	if out.FieldSet == nil {
		out.FieldSet = model.NewFieldSet(def.Name, model.SetParent)
	}

	return &out
}

// demergePool keeps the sets of pool that neither higher tier provides
// unchanged.
func demergePool(pool model.UISetPool, higher ...model.UISetPool) model.UISetPool {
	var out model.UISetPool

	for name, set := range pool {
		inherited := false

		for _, h := range higher {
			if s, ok := h.Lookup(name); ok && model.UISetEqual(s, set) {
				inherited = true
				break
			}
		}

		if inherited {
			continue
		}

		if out == nil {
			out = make(model.UISetPool)
		}

		out[name] = set.Clone()
	}

	return out
}

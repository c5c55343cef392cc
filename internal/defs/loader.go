package defs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"defcompose/internal/model"
)

// LoadSystem loads and parses a system definition file.
func LoadSystem(path string) (*model.SystemDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system definition %s: %w", path, err)
	}

	return ParseSystem(data)
}

// LoadShared loads and parses a shared definition file.
func LoadShared(path string) (*model.SharedDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shared definition %s: %w", path, err)
	}

	return ParseShared(data)
}

// LoadLocal loads and parses a local or composed definition file.
func LoadLocal(path string) (*model.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}

	return ParseLocal(data)
}

// ParseSystem parses YAML data into a system definition.
func ParseSystem(data []byte) (*model.SystemDef, error) {
	var f SystemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse system definition YAML: %w", err)
	}

	name := f.Name
	if name == "" {
		name = "sys"
	}

	tree, err := buildTree(name, model.SetParent, f.Fields)
	if err != nil {
		return nil, fmt.Errorf("invalid system definition: %w", err)
	}

	defaults, err := buildPool(f.DefaultUISets)
	if err != nil {
		return nil, fmt.Errorf("invalid system definition: %w", err)
	}

	return &model.SystemDef{
		FieldSet:      tree,
		Mapper:        normalizeMapper(f.Mapper, name),
		DefaultUISets: defaults,
	}, nil
}

// ParseShared parses YAML data into a shared definition.
func ParseShared(data []byte) (*model.SharedDef, error) {
	var f SharedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse shared definition YAML: %w", err)
	}

	out := &model.SharedDef{}

	for _, g := range f.Groups {
		if g.Fields == nil {
			return nil, fmt.Errorf("shared group %q has no field set", g.Name)
		}

		tree, err := buildSet(g.Fields)
		if err != nil {
			return nil, fmt.Errorf("invalid shared group %q: %w", g.Name, err)
		}

		if out.Group(g.Name) != nil {
			return nil, fmt.Errorf("duplicate shared group %q", g.Name)
		}

		out.Groups = append(out.Groups, &model.SharedGroup{
			Name:     g.Name,
			FieldSet: tree,
			Mapper:   normalizeMapper(g.Mapper, tree.Name),
		})
	}

	defaults, err := buildPool(f.DefaultUISets)
	if err != nil {
		return nil, fmt.Errorf("invalid shared definition: %w", err)
	}

	out.DefaultUISets = defaults

	return out, nil
}

// ParseLocal parses YAML data into a local or composed definition.
func ParseLocal(data []byte) (*model.Definition, error) {
	var f LocalFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	kind := f.Kind
	if kind == "" {
		kind = model.SetParent
	}

	tree, err := buildTree(f.Name, kind, f.Fields)
	if err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", f.Name, err)
	}

	defaults, err := buildPool(f.DefaultUISets)
	if err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", f.Name, err)
	}

	return &model.Definition{
		Name:           f.Name,
		FieldSet:       tree,
		Mapper:         normalizeMapper(f.Mapper, f.Name),
		DefaultUISets:  defaults,
		SystemExcludes: f.SystemExcludes,
		SharedIncludes: f.SharedIncludes,
		SharedExcludes: f.SharedExcludes,
	}, nil
}

// normalizeMapper binds an unbound root mapper to root and marks
// identifiers the file left out as unassigned.
func normalizeMapper(d *model.DisplayMapper, root string) *model.DisplayMapper {
	if d == nil {
		return nil
	}

	if d.FieldSet == "" {
		d.FieldSet = root
	}

	d.Walk(func(m *model.DisplayMapper) {
		if m.ID == 0 {
			m.ID = model.NoID
		}
	})

	d.WalkMappings(func(m *model.DisplayMapping) {
		if m.Mapper != nil && m.Mapper.FieldSet == "" {
			m.Mapper.FieldSet = m.FieldRef
		}
	})

	return d
}

// Marshal serializes a local or composed definition to YAML.
func Marshal(def *model.Definition) ([]byte, error) {
	f := LocalFile{
		Name:           def.Name,
		SystemExcludes: def.SystemExcludes,
		SharedIncludes: def.SharedIncludes,
		SharedExcludes: def.SharedExcludes,
		DefaultUISets:  poolSets(def.DefaultUISets),
		Fields:         entries(def.FieldSet),
		Mapper:         def.Mapper,
	}

	if def.FieldSet != nil && def.FieldSet.Settings.Kind != model.SetParent {
		f.Kind = def.FieldSet.Settings.Kind
	}

	return yaml.Marshal(&f)
}

// MarshalSystem serializes a system definition to YAML.
func MarshalSystem(sys *model.SystemDef) ([]byte, error) {
	f := SystemFile{
		Mapper:        sys.Mapper,
		DefaultUISets: poolSets(sys.DefaultUISets),
	}

	if sys.FieldSet != nil {
		f.Name = sys.FieldSet.Name
		f.Fields = entries(sys.FieldSet)
	}

	return yaml.Marshal(&f)
}

// MarshalShared serializes a shared definition to YAML.
func MarshalShared(shared *model.SharedDef) ([]byte, error) {
	f := SharedFile{DefaultUISets: poolSets(shared.DefaultUISets)}

	for _, g := range shared.Groups {
		f.Groups = append(f.Groups, GroupEntry{
			Name:   g.Name,
			Fields: setEntry(g.FieldSet),
			Mapper: g.Mapper,
		})
	}

	return yaml.Marshal(&f)
}

// WriteFile writes a local or composed definition to the given path.
func WriteFile(def *model.Definition, path string) error {
	data, err := Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write definition %s: %w", path, err)
	}

	return nil
}

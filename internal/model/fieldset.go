package model

import "slices"

// NodeKind discriminates the members of the Node union.
type NodeKind int

const (
	NodeField NodeKind = iota
	NodeSet
)

// Node is an entry of a field tree: either a *Field or a *FieldSet.
// The set of implementations is closed.
type Node interface {
	isNode()
	NodeName() string
	Kind() NodeKind
}

// SetKind is the declared kind of a field set container.
type SetKind string

const (
	// SetParent is a root container.
	SetParent SetKind = "parent"
	// SetSimpleChild holds exactly one field, edited inline.
	SetSimpleChild SetKind = "simpleChild"
	// SetMultiPropertySimpleChild holds one row of many columns, edited inline.
	SetMultiPropertySimpleChild SetKind = "multiPropertySimpleChild"
	// SetComplexChild holds many rows of many columns, edited out of line.
	SetComplexChild SetKind = "complexChild"
)

// IsValid returns true if the kind is a recognized value. The empty kind
// is valid and means "inherit".
func (k SetKind) IsValid() bool {
	switch k {
	case "", SetParent, SetSimpleChild, SetMultiPropertySimpleChild, SetComplexChild:
		return true
	default:
		return false
	}
}

// SetSettings are the container attributes of a field set.
type SetSettings struct {
	Kind       SetKind
	Sequencing *bool
	Searchable *bool
}

// Equal compares two settings value by value.
func (s SetSettings) Equal(o SetSettings) bool {
	return s.Kind == o.Kind && PtrEqual(s.Sequencing, o.Sequencing) &&
		PtrEqual(s.Searchable, o.Searchable)
}

// IsZero reports whether no setting is declared.
func (s SetSettings) IsZero() bool {
	return s.Equal(SetSettings{})
}

// FieldSet is a named, ordered container of Nodes keyed by name. Keys are
// unique within one container and case-sensitive.
type FieldSet struct {
	Name     string
	Origin   Origin
	Group    string
	Settings SetSettings

	names []string
	nodes map[string]Node
}

func (*FieldSet) isNode() {}

// NodeName returns the set name.
func (s *FieldSet) NodeName() string { return s.Name }

// Kind returns NodeSet.
func (*FieldSet) Kind() NodeKind { return NodeSet }

// NewFieldSet creates a set with the given entries, in order.
func NewFieldSet(name string, kind SetKind, nodes ...Node) *FieldSet {
	s := &FieldSet{Name: name, Settings: SetSettings{Kind: kind}}
	for _, n := range nodes {
		s.Put(n)
	}

	return s
}

// Len returns the number of direct entries.
func (s *FieldSet) Len() int {
	return len(s.names)
}

// Names returns the entry names in order.
func (s *FieldSet) Names() []string {
	return slices.Clone(s.names)
}

// Nodes returns the entries in order.
func (s *FieldSet) Nodes() []Node {
	out := make([]Node, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.nodes[n])
	}

	return out
}

// Get returns the direct entry called name.
func (s *FieldSet) Get(name string) (Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Has reports whether a direct entry called name exists.
func (s *FieldSet) Has(name string) bool {
	_, ok := s.nodes[name]
	return ok
}

// Field returns the direct field entry called name, or nil.
func (s *FieldSet) Field(name string) *Field {
	f, _ := s.nodes[name].(*Field)
	return f
}

// Child returns the direct field set entry called name, or nil.
func (s *FieldSet) Child(name string) *FieldSet {
	c, _ := s.nodes[name].(*FieldSet)
	return c
}

// Put adds n, replacing an entry of the same name in place.
func (s *FieldSet) Put(n Node) {
	if s.nodes == nil {
		s.nodes = make(map[string]Node)
	}

	name := n.NodeName()
	if _, ok := s.nodes[name]; !ok {
		s.names = append(s.names, name)
	}

	s.nodes[name] = n
}

// Remove deletes the entry called name and reports whether it existed.
func (s *FieldSet) Remove(name string) bool {
	if _, ok := s.nodes[name]; !ok {
		return false
	}

	delete(s.nodes, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })

	return true
}

// ShallowClone copies the container and its entry list; entries are shared.
func (s *FieldSet) ShallowClone() *FieldSet {
	out := &FieldSet{
		Name:     s.Name,
		Origin:   s.Origin,
		Group:    s.Group,
		Settings: s.cloneSettings(),
		names:    slices.Clone(s.names),
		nodes:    make(map[string]Node, len(s.nodes)),
	}

	for k, v := range s.nodes {
		out.nodes[k] = v
	}

	return out
}

// Empty returns a copy of the container with no entries.
func (s *FieldSet) Empty() *FieldSet {
	return &FieldSet{
		Name:     s.Name,
		Origin:   s.Origin,
		Group:    s.Group,
		Settings: s.cloneSettings(),
	}
}

// Clone returns a deep copy of the whole subtree.
func (s *FieldSet) Clone() *FieldSet {
	if s == nil {
		return nil
	}

	out := s.Empty()
	for _, n := range s.Nodes() {
		out.Put(CloneNode(n))
	}

	return out
}

func (s *FieldSet) cloneSettings() SetSettings {
	return SetSettings{
		Kind:       s.Settings.Kind,
		Sequencing: clonePtr(s.Settings.Sequencing),
		Searchable: clonePtr(s.Settings.Searchable),
	}
}

// CloneNode deep-copies any node.
func CloneNode(n Node) Node {
	switch n.Kind() {
	case NodeField:
		return n.(*Field).Clone()
	case NodeSet:
		return n.(*FieldSet).Clone()
	default:
		panic("model: unknown node kind")
	}
}

// Fields returns the direct field entries in order.
func (s *FieldSet) Fields() []*Field {
	var out []*Field

	for _, n := range s.Nodes() {
		if f, ok := n.(*Field); ok {
			out = append(out, f)
		}
	}

	return out
}

// WalkFields calls fn for every field of the subtree, depth-first in order.
func (s *FieldSet) WalkFields(fn func(f *Field)) {
	for _, n := range s.Nodes() {
		switch n.Kind() {
		case NodeField:
			fn(n.(*Field))
		case NodeSet:
			n.(*FieldSet).WalkFields(fn)
		}
	}
}

// FindField searches the subtree for a field called name.
func (s *FieldSet) FindField(name string) *Field {
	var found *Field

	s.WalkFields(func(f *Field) {
		if found == nil && f.Name == name {
			found = f
		}
	})

	return found
}

// FindSet searches the subtree, including s itself, for a set called name.
func (s *FieldSet) FindSet(name string) *FieldSet {
	if s.Name == name {
		return s
	}

	for _, n := range s.Nodes() {
		if c, ok := n.(*FieldSet); ok {
			if found := c.FindSet(name); found != nil {
				return found
			}
		}
	}

	return nil
}

// Resolves reports whether ref names a field or a set anywhere in the subtree.
func (s *FieldSet) Resolves(ref string) bool {
	return s.FindField(ref) != nil || s.FindSet(ref) != nil
}

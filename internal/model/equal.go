package model

import "reflect"

// FieldEqual compares every attribute of two fields.
func FieldEqual(a, b *Field) bool {
	return reflect.DeepEqual(a, b)
}

// TreeEqual compares two field trees entry by entry, in order.
func TreeEqual(a, b *FieldSet) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Name != b.Name || a.Origin != b.Origin || a.Group != b.Group ||
		!a.Settings.Equal(b.Settings) || a.Len() != b.Len() {
		return false
	}

	an, bn := a.Nodes(), b.Nodes()
	for i := range an {
		if an[i].NodeName() != bn[i].NodeName() || an[i].Kind() != bn[i].Kind() {
			return false
		}

		switch an[i].Kind() {
		case NodeField:
			if !FieldEqual(an[i].(*Field), bn[i].(*Field)) {
				return false
			}
		case NodeSet:
			if !TreeEqual(an[i].(*FieldSet), bn[i].(*FieldSet)) {
				return false
			}
		}
	}

	return true
}

// UISetEqual compares two UI sets attribute by attribute. A nil set equals
// an empty one.
func UISetEqual(a, b *UISet) bool {
	if a == nil {
		a = &UISet{}
	}

	if b == nil {
		b = &UISet{}
	}

	return a.Name == b.Name && a.DefaultSet == b.DefaultSet &&
		PtrEqual(a.Label, b.Label) && PtrEqual(a.AccessKey, b.AccessKey) &&
		PtrEqual(a.ErrorLabel, b.ErrorLabel) && a.Control.Equal(b.Control) &&
		a.Choices.Equal(b.Choices) && PtrEqual(a.ReadOnly, b.ReadOnly) &&
		PtrEqual(a.Visibility, b.Visibility)
}

// MapperEqual compares two layout trees, ignoring mapper identifiers.
func MapperEqual(a, b *DisplayMapper) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.FieldSet != b.FieldSet || len(a.Mappings) != len(b.Mappings) {
		return false
	}

	for i, am := range a.Mappings {
		bm := b.Mappings[i]
		if am.FieldRef != bm.FieldRef || am.Origin != bm.Origin ||
			!UISetEqual(am.UISet, bm.UISet) || !MapperEqual(am.Mapper, bm.Mapper) {
			return false
		}
	}

	return true
}

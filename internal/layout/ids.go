package layout

import "defcompose/internal/model"

// ResetIDs marks every mapper of the tree as unnumbered.
func ResetIDs(d *model.DisplayMapper) {
	d.Walk(func(m *model.DisplayMapper) {
		m.ID = model.NoID
	})
}

// AssignIDs numbers every unnumbered mapper of the tree depth-first,
// continuing after the highest identifier already present.
func AssignIDs(d *model.DisplayMapper) {
	next := 1

	d.Walk(func(m *model.DisplayMapper) {
		if m.ID >= next {
			next = m.ID + 1
		}
	})

	d.Walk(func(m *model.DisplayMapper) {
		if m.ID <= 0 {
			m.ID = next
			next++
		}
	})
}

// Renumber resets and reassigns every identifier of the tree.
func Renumber(d *model.DisplayMapper) {
	ResetIDs(d)
	AssignIDs(d)
}

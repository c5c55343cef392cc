package overlay_test

import (
	"fmt"

	"defcompose/internal/model"
	"defcompose/internal/overlay"
)

func ExampleOverlay() {
	str := func(s string) *string { return &s }

	pool := model.NewUISetPool(&model.UISet{
		Name:      "edit",
		AccessKey: str("t"),
		Control:   &model.Control{Name: "sys_EditBox"},
	})
	source := &model.UISet{DefaultSet: "edit", Label: str("Title")}
	local := &model.UISet{Label: str("Headline")}

	ui, err := overlay.Overlay(local, source, overlay.Options{SourcePool: pool})
	fmt.Println(err, *ui.Label, *ui.AccessKey, ui.Control.Name, ui.DefaultSet == "")

	diff, err := overlay.Diff(ui, source, pool)
	fmt.Println(err, *diff.Label, diff.AccessKey == nil, diff.Control == nil)

	// Output:
	// <nil> Headline t sys_EditBox true
	// <nil> Headline true true
}

package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
)

// choice is a small segmented-control button.
func choice(gtx layout.Context, th *theme.Theme, btn *widget.Clickable, label string, selected bool) layout.Dimensions {
	b := material.Button(th.Theme, btn, label)
	b.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(10), Right: unit.Dp(10)}
	b.TextSize = unit.Sp(13)
	if !selected {
		b.Background = th.Bg2
		b.Color = th.Palette.Fg
	}
	return b.Layout(gtx)
}

// choiceRow lays out one choice button per label. pick runs for each click.
func choiceRow(gtx layout.Context, th *theme.Theme, btns []widget.Clickable, labels []string, selected func(int) bool, pick func(int)) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(btns)*2)
	for i := range btns {
		idx := i
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			for btns[idx].Clicked(gtx) {
				pick(idx)
			}
			return choice(gtx, th, &btns[idx], labels[idx], selected(idx))
		}))
		children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

// pill draws a label on a translucent rounded background.
func pill(gtx layout.Context, lbl material.LabelStyle) layout.Dimensions {
	return layout.UniformInset(unit.Dp(2)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(unit.Dp(6)))
				paint.FillShape(gtx.Ops, color.NRGBA{A: 150}, rr.Op(gtx.Ops))
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, lbl.Layout)
			}),
		)
	})
}

package ui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
)

// confirmDialog is a modal yes/no prompt. It implements board.Confirmer: the
// proceed callback runs only when the user accepts.
type confirmDialog struct {
	app *App

	visible bool
	prompt  string
	proceed func()

	yes widget.Clickable
	no  widget.Clickable
}

var _ board.Confirmer = (*confirmDialog)(nil)

func newConfirmDialog(a *App) *confirmDialog {
	return &confirmDialog{app: a}
}

// Confirm shows prompt and remembers proceed until the user answers.
func (d *confirmDialog) Confirm(prompt string, proceed func()) {
	d.visible = true
	d.prompt = prompt
	d.proceed = proceed
	d.app.invalidate()
}

// Visible reports whether the dialog is waiting for an answer.
func (d *confirmDialog) Visible() bool {
	return d.visible
}

// Key answers the dialog from the keyboard.
func (d *confirmDialog) Key(name string) {
	switch name {
	case keyConfirm:
		d.answer(true)
	case board.KeyEscape:
		d.answer(false)
	}
}

func (d *confirmDialog) answer(ok bool) {
	proceed := d.proceed
	d.visible = false
	d.proceed = nil
	d.app.log.Debug().Str("prompt", d.prompt).Bool("accepted", ok).Msg("confirm")
	if ok && proceed != nil {
		proceed()
	}
	d.app.invalidate()
}

// Layout draws the dialog over everything else when visible.
func (d *confirmDialog) Layout(gtx layout.Context) layout.Dimensions {
	if !d.visible {
		return layout.Dimensions{}
	}
	for d.yes.Clicked(gtx) {
		d.answer(true)
	}
	for d.no.Clicked(gtx) {
		d.answer(false)
	}
	if !d.visible {
		return layout.Dimensions{}
	}

	th := d.app.gvTheme
	size := gtx.Constraints.Max

	// scrim swallows pointer input meant for the canvas underneath
	scrim := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, d)
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: d, Kinds: pointer.Press | pointer.Release}); !ok {
			break
		}
	}
	paint.Fill(gtx.Ops, color.NRGBA{A: 96})
	scrim.Pop()

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(360)))
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				card := clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(unit.Dp(10)))
				paint.FillShape(gtx.Ops, th.Palette.Bg, card.Op(gtx.Ops))
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(18)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(material.Body1(th.Theme, d.prompt).Layout),
						layout.Rigid(layout.Spacer{Height: unit.Dp(14)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
								layout.Rigid(material.Button(th.Theme, &d.yes, "Clear").Layout),
								layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(th.Theme, &d.no, "Cancel")
									btn.Background = th.Bg2
									btn.Color = th.Palette.Fg
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			}),
		)
	})
}

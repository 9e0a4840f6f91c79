package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/render"
)

// Palette column metrics in dp.
const (
	paletteWidth = 56
	paletteItem  = 40
	paletteGap   = 6
)

// paletteEntry is one draggable icon in the palette column.
type paletteEntry struct {
	ref    board.Ref
	origin image.Point // body-local, set during layout
}

// boardView hosts the tactical board: a toolbar, the palette column and the
// flat court canvas.
type boardView struct {
	app *App
	ed  *board.Editor

	modeBtns  [3]widget.Clickable
	dashBtns  [2]widget.Clickable
	courtBtns [2]widget.Clickable
	serveBtns [3]widget.Clickable
	sideBtns  [2]widget.Clickable
	width     widget.Float

	undoBtn  widget.Clickable
	clearBtn widget.Clickable
	resetBtn widget.Clickable
	undoIcon *widget.Icon
	clearIcn *widget.Icon
	resetIcn *widget.Icon

	visible []visToggle
	palette []*paletteEntry

	canvas board.Rect // body-local
}

type visToggle struct {
	ref    board.Ref
	toggle widget.Bool
}

var boardModes = [3]board.Mode{board.ModeDraw, board.ModePlace, board.ModeErase}

func newBoardView(a *App, opts board.Options) *boardView {
	v := &boardView{app: a, ed: board.NewEditor(opts)}
	v.ed.SetInvalidateCallback(a.invalidate)
	v.ed.Scene().Each(func(r board.Ref, e *board.Entity) {
		v.palette = append(v.palette, &paletteEntry{ref: r})
		if e.Kind.Positioned() {
			v.visible = append(v.visible, visToggle{ref: r, toggle: widget.Bool{Value: e.Visible}})
		}
	})
	if icon, err := widget.NewIcon(icons.ContentUndo); err == nil {
		v.undoIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ContentClear); err == nil {
		v.clearIcn = icon
	}
	if icon, err := widget.NewIcon(icons.ActionDelete); err == nil {
		v.resetIcn = icon
	}
	v.syncWidth()
	return v
}

func (v *boardView) syncWidth() {
	v.width.Value = float32((v.ed.LineWidth() - board.MinLineWidth) / (board.MaxLineWidth - board.MinLineWidth))
}

func sliderWidth(f float32) float64 {
	return board.MinLineWidth + math.Round(float64(f)*(board.MaxLineWidth-board.MinLineWidth))
}

func (v *boardView) status() string {
	s := fmt.Sprintf("Mode: %s  Court: %s  Width: %.0f  Undo: %d", v.ed.Mode(), v.ed.CourtType(), v.ed.LineWidth(), v.ed.UndoDepth())
	if ent := v.ed.ActiveEntity(); ent != nil {
		s += "  Active: " + ent.Label
	}
	if v.ed.Pending() {
		s += " (click the court to place)"
	}
	return s
}

// Layout draws the toolbar above the palette and canvas.
func (v *boardView) Layout(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutToolbar),
		layout.Flexed(1, v.layoutBody),
	)
}

func (v *boardView) layoutToolbar(gtx layout.Context) layout.Dimensions {
	th := v.app.gvTheme
	return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(v.layoutModes),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Body2(th.Theme, fmt.Sprintf("Width %.0f", v.ed.LineWidth())).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutWidth),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(v.layoutDash),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(v.layoutActions),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(v.layoutCourt),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Body2(th.Theme, "Serve").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutServe),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Body2(th.Theme, "Home").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutSide),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(v.layoutVisibility),
				)
			}),
		)
	})
}

func (v *boardView) layoutModes(gtx layout.Context) layout.Dimensions {
	labels := [3]string{"Draw", "Place", "Erase"}
	return choiceRow(gtx, v.app.gvTheme, v.modeBtns[:], labels[:], func(i int) bool {
		return v.ed.Mode() == boardModes[i]
	}, func(i int) {
		v.ed.SetMode(boardModes[i])
	})
}

func (v *boardView) layoutWidth(gtx layout.Context) layout.Dimensions {
	if v.width.Update(gtx) {
		if w := sliderWidth(v.width.Value); w != v.ed.LineWidth() {
			v.ed.SetLineWidth(w)
		}
	} else if !v.width.Dragging() {
		v.syncWidth()
	}
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(120))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X
	return material.Slider(v.app.gvTheme.Theme, &v.width).Layout(gtx)
}

func (v *boardView) layoutDash(gtx layout.Context) layout.Dimensions {
	dashes := [2]board.Dash{board.DashSolid, board.DashDashed}
	labels := [2]string{"Solid", "Dashed"}
	return choiceRow(gtx, v.app.gvTheme, v.dashBtns[:], labels[:], func(i int) bool {
		return v.ed.Dash() == dashes[i]
	}, func(i int) {
		v.ed.SetDash(dashes[i])
	})
}

func (v *boardView) layoutCourt(gtx layout.Context) layout.Dimensions {
	types := [2]court.CourtType{court.Doubles, court.Singles}
	labels := [2]string{"Doubles", "Singles"}
	return choiceRow(gtx, v.app.gvTheme, v.courtBtns[:], labels[:], func(i int) bool {
		return v.ed.CourtType() == types[i]
	}, func(i int) {
		v.ed.SetCourtType(types[i])
	})
}

func (v *boardView) layoutServe(gtx layout.Context) layout.Dimensions {
	serves := [3]board.ServeSide{board.ServeNone, board.ServeLeft, board.ServeRight}
	labels := [3]string{"Off", "Left", "Right"}
	return choiceRow(gtx, v.app.gvTheme, v.serveBtns[:], labels[:], func(i int) bool {
		return v.ed.Serve() == serves[i]
	}, func(i int) {
		v.ed.SetServe(serves[i])
	})
}

func (v *boardView) layoutSide(gtx layout.Context) layout.Dimensions {
	sides := [2]court.HomeSide{court.SideLeft, court.SideRight}
	labels := [2]string{"Left", "Right"}
	return choiceRow(gtx, v.app.gvTheme, v.sideBtns[:], labels[:], func(i int) bool {
		return v.ed.HomeSide() == sides[i]
	}, func(i int) {
		v.ed.SetHomeSide(sides[i])
	})
}

func (v *boardView) layoutVisibility(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(v.visible))
	for i := range v.visible {
		vt := &v.visible[i]
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			ent := v.ed.Scene().Entity(vt.ref)
			if vt.toggle.Update(gtx) {
				v.ed.SetVisible(vt.ref, vt.toggle.Value)
			}
			vt.toggle.Value = ent.Visible
			cb := material.CheckBox(v.app.gvTheme.Theme, &vt.toggle, ent.Name)
			cb.Color = ent.Color
			if ent.Kind == board.KindBall {
				cb.Color = v.app.gvTheme.Palette.Fg
			}
			return cb.Layout(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (v *boardView) layoutActions(gtx layout.Context) layout.Dimensions {
	for v.undoBtn.Clicked(gtx) {
		v.ed.Undo()
	}
	for v.clearBtn.Clicked(gtx) {
		v.ed.ClearActive()
	}
	for v.resetBtn.Clicked(gtx) {
		v.ed.ResetAll()
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.action(gtx, &v.undoBtn, v.undoIcon, "Undo")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.action(gtx, &v.clearBtn, v.clearIcn, "Clear selected")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.action(gtx, &v.resetBtn, v.resetIcn, "Reset board")
		}),
	)
}

func (v *boardView) action(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, desc string) layout.Dimensions {
	th := v.app.gvTheme.Theme
	if icon == nil {
		return material.Button(th, btn, desc).Layout(gtx)
	}
	b := material.IconButton(th, btn, icon, desc)
	b.Size = unit.Dp(18)
	b.Inset = layout.UniformInset(unit.Dp(7))
	return b.Layout(gtx)
}

// layoutBody places the palette column on the left and centers the court
// canvas in the remaining space. Everything here shares one coordinate space
// so the palette drag ghost can cross onto the canvas.
func (v *boardView) layoutBody(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()

	pw := gtx.Dp(unit.Dp(paletteWidth))
	cw, ch := court.FitCanvas(float64(size.X-pw), float64(size.Y))
	origin := image.Pt(pw+(size.X-pw-cw)/2, (size.Y-ch)/2)
	v.canvas = board.Rect{
		Min: court.Pt(float64(origin.X), float64(origin.Y)),
		Max: court.Pt(float64(origin.X+cw), float64(origin.Y+ch)),
	}

	v.layoutCanvas(gtx, origin, image.Pt(cw, ch))
	v.layoutPalette(gtx, pw)
	render.Ghost(gtx, v.ed.Ghost())
	return layout.Dimensions{Size: size}
}

func (v *boardView) layoutCanvas(gtx layout.Context, origin, size image.Point) {
	defer op.Offset(origin).Push(gtx.Ops).Pop()
	v.ed.Resize(float64(size.X), float64(size.Y))

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, v.ed)
	pointer.CursorCrosshair.Add(gtx.Ops)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v.ed,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Leave,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		at := court.Pt(float64(pe.Position.X), float64(pe.Position.Y))
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons.Contain(pointer.ButtonPrimary) || pe.Source == pointer.Touch {
				v.ed.PointerDown(at)
			}
		case pointer.Drag:
			v.ed.PointerMove(at)
		case pointer.Release:
			v.ed.PointerUp()
		case pointer.Cancel, pointer.Leave:
			v.ed.PointerLeave()
		}
	}
	render.Board(gtx, v.ed)
	area.Pop()
}

func (v *boardView) layoutPalette(gtx layout.Context, pw int) {
	th := v.app.gvTheme
	paint.FillShape(gtx.Ops, th.Bg2, clip.Rect{Max: image.Pt(pw, gtx.Constraints.Max.Y)}.Op())

	item := gtx.Dp(unit.Dp(paletteItem))
	gap := gtx.Dp(unit.Dp(paletteGap))
	x := (pw - item) / 2
	for i, pe := range v.palette {
		pe.origin = image.Pt(x, gap+i*(item+gap))
		v.layoutPaletteItem(gtx, pe, item)
	}
}

func (v *boardView) layoutPaletteItem(gtx layout.Context, pe *paletteEntry, item int) {
	defer op.Offset(pe.origin).Push(gtx.Ops).Pop()

	area := clip.Rect{Max: image.Pt(item, item)}.Push(gtx.Ops)
	event.Op(gtx.Ops, pe)
	pointer.CursorPointer.Add(gtx.Ops)
	area.Pop()
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: pe,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		at := court.Pt(float64(pe.origin.X)+float64(e.Position.X), float64(pe.origin.Y)+float64(e.Position.Y))
		switch e.Kind {
		case pointer.Press:
			v.ed.PalettePress(pe.ref, at)
		case pointer.Drag:
			v.ed.PaletteMove(at)
		case pointer.Release:
			v.ed.PaletteRelease(at, v.canvas)
		case pointer.Cancel:
			v.ed.PaletteCancel()
		}
	}

	ent := v.ed.Scene().Entity(pe.ref)
	if ent == nil {
		return
	}
	active := v.ed.Active() == pe.ref
	th := v.app.gvTheme
	if active {
		bg := clip.UniformRRect(image.Rectangle{Max: image.Pt(item, item)}, gtx.Dp(unit.Dp(6)))
		paint.FillShape(gtx.Ops, th.Palette.ContrastBg, bg.Op(gtx.Ops))
	}

	d := item * 3 / 4
	off := (item - d) / 2
	disc := clip.Ellipse{Min: image.Pt(off, off), Max: image.Pt(off+d, off+d)}
	fill := ent.Color
	if ent.Kind == board.KindBall {
		fill = board.BallPaletteColor
	}
	if ent.Kind.Positioned() && ent.Pos == nil {
		// unplaced markers are dimmed
		fill.A = 150
	}
	paint.FillShape(gtx.Ops, fill, disc.Op(gtx.Ops))
	paint.FillShape(gtx.Ops, color.NRGBA{A: 90}, clip.Stroke{Path: disc.Path(gtx.Ops), Width: 1.5}.Op())

	label := ent.Name
	if ent.Kind == board.KindAnnot {
		label = fmt.Sprint(ent.ID + 1)
	}
	if ent.Kind == board.KindBall {
		label = "S"
	}
	lbl := material.Caption(th.Theme, label)
	lbl.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if ent.Kind == board.KindBall {
		lbl.Color = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	}
	gtx.Constraints = layout.Exact(image.Pt(item, item))
	layout.Center.Layout(gtx, lbl.Layout)

	if ent.Kind == board.KindAnnot && len(ent.Strokes) > 0 {
		// small dot when the pen has strokes
		r := gtx.Dp(unit.Dp(3))
		dot := clip.Ellipse{Min: image.Pt(item-2*r-1, 1), Max: image.Pt(item-1, 2*r+1)}
		paint.FillShape(gtx.Ops, th.Palette.Fg, dot.Op(gtx.Ops))
	}
}

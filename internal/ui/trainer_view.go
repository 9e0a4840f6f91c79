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
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/render"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

var trainerModes = []trainer.Mode{trainer.ModeSequential, trainer.ModeRandom, trainer.ModeManual, trainer.ModeTactic}

var modeLabels = map[trainer.Mode]string{
	trainer.ModeSequential: "Sequential",
	trainer.ModeRandom:     "Random",
	trainer.ModeManual:     "Manual",
	trainer.ModeTactic:     "Tactic",
}

var trainerZones = []trainer.Zone{trainer.ZoneFront, trainer.ZoneMid, trainer.ZoneBack}

// trainerView hosts the footwork canvas and its HUD controls.
type trainerView struct {
	app   *App
	seq   *trainer.Sequencer
	persp *court.Perspective

	startBtn widget.Clickable
	playIcon *widget.Icon
	stopIcon *widget.Icon

	modeBtn  widget.Clickable
	modeMenu *menu.DropdownMenu

	zoneToggles [3]widget.Bool
	speed       widget.Float
	roundBtns   []widget.Clickable
	sideBtns    [2]widget.Clickable
	handBtns    [2]widget.Clickable
}

func newTrainerView(a *App, opts trainer.Options) *trainerView {
	v := &trainerView{
		app:       a,
		seq:       trainer.New(a.host, opts),
		persp:     court.NewPerspective(0, 0, 0, opts.Side),
		roundBtns: make([]widget.Clickable, len(trainer.RoundOptions)),
	}
	v.seq.SetInvalidateCallback(a.invalidate)
	v.seq.SetPickCallback(func(s trainer.Snapshot) {
		if s.Tactic != nil {
			a.log.Debug().Stringer("hint", s.Tactic).Msg("tactic pick")
		}
	})
	if icon, err := widget.NewIcon(icons.AVPlayArrow); err == nil {
		v.playIcon = icon
	}
	if icon, err := widget.NewIcon(icons.AVStop); err == nil {
		v.stopIcon = icon
	}
	v.modeMenu = v.buildModeMenu()
	v.syncSpeed()
	return v
}

func (v *trainerView) buildModeMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(trainerModes))
	for _, m := range trainerModes {
		mode := m
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				v.seq.SetMode(mode)
				v.app.log.Info().Stringer("mode", mode).Msg("trainer mode")
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, modeLabels[mode])
				if mode == v.seq.Mode() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

// syncSpeed moves the slider to the sequencer's speed.
func (v *trainerView) syncSpeed() {
	v.speed.Value = float32(v.seq.Speed()-trainer.MinSpeed) / float32(trainer.MaxSpeed-trainer.MinSpeed)
}

func sliderSpeed(f float32) int {
	return trainer.MinSpeed + int(math.Round(float64(f)*float64(trainer.MaxSpeed-trainer.MinSpeed)))
}

func (v *trainerView) status() string {
	s := fmt.Sprintf("Mode: %s  Side: %s  Interval: %s", modeLabels[v.seq.Mode()], v.seq.HomeSide(), v.seq.SpeedLabel())
	if v.seq.Running() {
		s += fmt.Sprintf("  Rounds: %d", v.seq.RoundsDone())
	}
	return s
}

// Layout draws the perspective court with the HUD bar along the bottom. The
// HUD is measured first so the court can reserve its height.
func (v *trainerView) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max

	macro := op.Record(gtx.Ops)
	hudGtx := gtx
	hudGtx.Constraints.Min = image.Point{}
	hud := v.layoutHUD(hudGtx)
	hudCall := macro.Stop()

	v.persp.SetHUDHeight(float64(hud.Size.Y))
	v.persp.Resize(float64(size.X), float64(size.Y))
	if v.persp.Side != v.seq.HomeSide() {
		v.persp.SetSide(v.seq.HomeSide())
	}

	// taps only count on the court area above the HUD
	area := clip.Rect{Max: image.Pt(size.X, size.Y-hud.Size.Y)}.Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: v, Kinds: pointer.Press})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok && pe.Kind == pointer.Press {
			v.seq.Tap()
		}
	}
	canvas := clip.Rect{Max: size}.Push(gtx.Ops)
	render.Trainer(gtx, v.seq.Snapshot(), v.persp)
	canvas.Pop()

	hudOff := op.Offset(image.Pt(0, size.Y-hud.Size.Y)).Push(gtx.Ops)
	hudCall.Add(gtx.Ops)
	hudOff.Pop()
	v.layoutOverlayText(gtx, gtx.Dp(unit.Dp(8)))
	return layout.Dimensions{Size: size}
}

func (v *trainerView) layoutHUD(gtx layout.Context) layout.Dimensions {
	th := v.app.gvTheme
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(v.layoutStart),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(v.layoutMode),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(v.layoutZones),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Body2(th.Theme, "Interval "+v.seq.SpeedLabel()).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutSpeed),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(material.Body2(th.Theme, "Rounds").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutRounds),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Body2(th.Theme, "Side").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
					layout.Rigid(v.layoutSides),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if v.seq.Mode() != trainer.ModeTactic {
							return layout.Dimensions{}
						}
						return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
							layout.Rigid(material.Body2(th.Theme, "Opponent").Layout),
							layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
							layout.Rigid(v.layoutHands),
						)
					}),
				)
			}),
		)
	})
}

func (v *trainerView) layoutStart(gtx layout.Context) layout.Dimensions {
	for v.startBtn.Clicked(gtx) {
		v.seq.Toggle()
		v.app.log.Info().Bool("running", v.seq.Running()).Msg("training toggled")
	}
	icon, desc := v.playIcon, "Start"
	if v.seq.Running() {
		icon, desc = v.stopIcon, "Stop"
	}
	if icon == nil {
		return material.Button(v.app.gvTheme.Theme, &v.startBtn, desc).Layout(gtx)
	}
	btn := material.IconButton(v.app.gvTheme.Theme, &v.startBtn, icon, desc)
	btn.Size = unit.Dp(20)
	btn.Inset = layout.UniformInset(unit.Dp(8))
	return btn.Layout(gtx)
}

func (v *trainerView) layoutMode(gtx layout.Context) layout.Dimensions {
	for v.modeBtn.Clicked(gtx) {
		v.modeMenu.ToggleVisibility(gtx)
	}
	dims := material.Button(v.app.gvTheme.Theme, &v.modeBtn, "Mode: "+modeLabels[v.seq.Mode()]).Layout(gtx)
	v.modeMenu.Layout(gtx, v.app.gvTheme)
	return dims
}

func (v *trainerView) layoutZones(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(trainerZones))
	for i, z := range trainerZones {
		toggle := &v.zoneToggles[i]
		zone := z
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if toggle.Update(gtx) {
				v.seq.ToggleZone(zone)
				v.app.log.Debug().Stringer("zone", zone).Bool("enabled", v.seq.Zones().Enabled(zone)).Msg("zone toggled")
			}
			toggle.Value = v.seq.Zones().Enabled(zone)
			return material.CheckBox(v.app.gvTheme.Theme, toggle, zone.String()).Layout(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (v *trainerView) layoutSpeed(gtx layout.Context) layout.Dimensions {
	if v.speed.Update(gtx) {
		if next := sliderSpeed(v.speed.Value); next != v.seq.Speed() {
			v.seq.SetSpeed(next)
		}
	} else if !v.speed.Dragging() {
		v.syncSpeed()
	}
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(160))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X
	return material.Slider(v.app.gvTheme.Theme, &v.speed).Layout(gtx)
}

func (v *trainerView) layoutRounds(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(trainer.RoundOptions)*2)
	for i, n := range trainer.RoundOptions {
		btn := &v.roundBtns[i]
		target := n
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			for btn.Clicked(gtx) {
				v.seq.SetRoundTarget(target)
			}
			label := "∞"
			if target > 0 {
				label = fmt.Sprint(target)
			}
			return choice(gtx, v.app.gvTheme, btn, label, v.seq.RoundTarget() == target)
		}))
		children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (v *trainerView) layoutSides(gtx layout.Context) layout.Dimensions {
	sides := [2]court.HomeSide{court.SideLeft, court.SideRight}
	labels := [2]string{"Left", "Right"}
	return choiceRow(gtx, v.app.gvTheme, v.sideBtns[:], labels[:], func(i int) bool {
		return v.seq.HomeSide() == sides[i]
	}, func(i int) {
		v.seq.SetHomeSide(sides[i])
	})
}

func (v *trainerView) layoutHands(gtx layout.Context) layout.Dimensions {
	hands := [2]trainer.DominantHand{trainer.RightHanded, trainer.LeftHanded}
	labels := [2]string{"Right-handed", "Left-handed"}
	return choiceRow(gtx, v.app.gvTheme, v.handBtns[:], labels[:], func(i int) bool {
		return v.seq.OpponentHand() == hands[i]
	}, func(i int) {
		v.seq.SetOpponentHand(hands[i])
	})
}

// layoutOverlayText draws the manual, tactic and round hints at the top of the
// court area.
func (v *trainerView) layoutOverlayText(gtx layout.Context, top int) {
	var lines []string
	if v.seq.ShowManualHint() {
		lines = append(lines, "Tap the court for the next position")
	}
	if v.seq.ShowTacticHint() {
		if hint := v.seq.Snapshot().Tactic; hint != nil {
			lines = append(lines, hint.String())
		}
	}
	if v.seq.ShowRoundCounter() {
		lines = append(lines, fmt.Sprintf("Round %d / %d", v.seq.RoundsDone(), v.seq.RoundTarget()))
	}
	if len(lines) == 0 {
		return
	}
	defer op.Offset(image.Pt(0, top)).Push(gtx.Ops).Pop()
	gtx.Constraints.Min = image.Point{}
	layout.N.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := make([]layout.FlexChild, 0, len(lines))
		for _, l := range lines {
			lbl := material.Body1(v.app.gvTheme.Theme, l)
			lbl.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return pill(gtx, lbl)
			}))
		}
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

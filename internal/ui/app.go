package ui

import (
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	gfont "gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/CourtCoach/internal/logging"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
)

// View selects the active canvas.
type View int

const (
	ViewTrainer View = iota
	ViewBoard
)

func (v View) String() string {
	if v == ViewBoard {
		return "board"
	}
	return "trainer"
}

// ParseView accepts "trainer" or "board".
func ParseView(s string) (View, bool) {
	switch s {
	case "trainer":
		return ViewTrainer, true
	case "board":
		return ViewBoard, true
	}
	return ViewTrainer, false
}

// maxLogLines bounds the in-app log pane.
const maxLogLines = 200

type navEntry struct {
	view  View
	name  string
	icon  *widget.Icon
	click widget.Clickable
}

// App drives the coaching UI: a nav bar, the active canvas and a log pane.
type App struct {
	window *app.Window
	ops    op.Ops

	gvTheme *theme.Theme
	host    *sched.Host
	log     zerolog.Logger

	view View
	nav  []*navEntry

	trainer *trainerView
	board   *boardView
	confirm *confirmDialog

	logs          []string
	logText       string
	logSelectable widget.Selectable
	logList       widget.List
	logVisible    bool
	logToggle     widget.Clickable
	monoShaper    *text.Shaper
}

// New creates the application for w.
func New(w *app.Window, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	if opts.LogOut == nil {
		opts.LogOut = os.Stderr
	}

	a := &App{
		window:  w,
		gvTheme: theme.NewTheme("", nil, true),
		host:    sched.NewHost(),
		view:    opts.View,
	}
	a.host.Wake = a.invalidate
	a.log = logging.NewPane(opts.LogOut, a.appendLog, opts.LogLevel, opts.Verbose)
	a.applyPalette()

	monoFaces := filterMonoFaces()
	if len(monoFaces) > 0 {
		a.monoShaper = text.NewShaper(text.WithCollection(monoFaces), text.NoSystemFonts())
	}
	a.logSelectable.WrapPolicy = text.WrapGraphemes
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true

	a.nav = []*navEntry{
		{view: ViewTrainer, name: "Footwork"},
		{view: ViewBoard, name: "Tactics"},
	}
	if icon, err := widget.NewIcon(icons.MapsDirectionsRun); err == nil {
		a.nav[0].icon = icon
	}
	if icon, err := widget.NewIcon(icons.ActionDashboard); err == nil {
		a.nav[1].icon = icon
	}

	a.confirm = newConfirmDialog(a)

	trainerOpts := opts.Trainer
	trainerOpts.Logger = a.log.With().Str("component", "trainer").Logger()
	a.trainer = newTrainerView(a, trainerOpts)

	boardOpts := opts.Board
	boardOpts.Logger = a.log.With().Str("component", "board").Logger()
	boardOpts.Confirmer = a.confirm
	a.board = newBoardView(a, boardOpts)
	if a.view == ViewBoard {
		a.board.ed.Animate(a.host)
	}

	a.log.Info().Str("view", a.view.String()).Msg("ui initialized")
	return a
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			a.trainer.seq.Stop()
			a.board.ed.StopAnimation()
			return ev.Err
		case app.FrameEvent:
			a.host.Step(ev.Now)
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			a.scheduleNext(gtx, ev.Now)
			ev.Frame(gtx.Ops)
		}
	}
}

// scheduleNext asks for the next frame: immediately while an animation runs,
// otherwise when the next timer is due.
func (a *App) scheduleNext(gtx layout.Context, now time.Time) {
	if a.host.Animating() {
		gtx.Execute(op.InvalidateCmd{})
		return
	}
	if at, ok := a.host.NextWake(now); ok {
		gtx.Execute(op.InvalidateCmd{At: at})
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.handleKeys(gtx)

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	dims := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutHeader),
		layout.Flexed(1, a.layoutWorkspace),
		layout.Rigid(a.layoutLogPane),
		layout.Rigid(a.layoutStatusBar),
	)
	a.confirm.Layout(gtx)
	return dims
}

// handleKeys routes key presses to the confirm dialog or the active view.
func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(key.Filter{Optional: key.ModShortcut | key.ModShift})
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		name := keyName(ke.Name)
		if a.confirm.Visible() {
			a.confirm.Key(name)
			continue
		}
		var handled bool
		switch a.view {
		case ViewTrainer:
			handled = a.trainer.seq.Key(name)
		case ViewBoard:
			handled = a.board.ed.Key(name, modifiers(ke.Modifiers))
		}
		if handled {
			a.log.Debug().Str("key", name).Msg("shortcut")
			a.invalidate()
		}
	}
}

func (a *App) layoutHeader(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := make([]layout.FlexChild, 0, len(a.nav)*2+2)
		for _, n := range a.nav {
			n := n
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutNavItem(gtx, n)
			}))
			children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout))
		}
		children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Min.X, 0)}
		}))
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			for a.logToggle.Clicked(gtx) {
				a.logVisible = !a.logVisible
				a.invalidate()
			}
			label := "Show log"
			if a.logVisible {
				label = "Hide log"
			}
			return material.Button(a.gvTheme.Theme, &a.logToggle, label).Layout(gtx)
		}))
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (a *App) layoutNavItem(gtx layout.Context, n *navEntry) layout.Dimensions {
	for n.click.Clicked(gtx) {
		a.setView(n.view)
	}
	size := image.Pt(gtx.Dp(unit.Dp(140)), gtx.Dp(unit.Dp(38)))

	return n.click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = size
		gtx.Constraints.Max = size
		bg := a.gvTheme.Bg2
		fg := a.gvTheme.Palette.Fg
		if n.view == a.view {
			bg = a.gvTheme.Palette.ContrastBg
			fg = a.gvTheme.Palette.ContrastFg
		}
		card := clip.UniformRRect(image.Rectangle{Max: size}, gtx.Dp(unit.Dp(6)))
		paint.FillShape(gtx.Ops, bg, card.Op(gtx.Ops))
		return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					iconSize := gtx.Dp(unit.Dp(20))
					gtx.Constraints.Min = image.Pt(iconSize, iconSize)
					gtx.Constraints.Max = gtx.Constraints.Min
					if n.icon == nil {
						return layout.Dimensions{Size: gtx.Constraints.Min}
					}
					return n.icon.Layout(gtx, fg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(a.gvTheme.Theme, n.name)
					lbl.Color = fg
					return layout.W.Layout(gtx, lbl.Layout)
				}),
			)
		})
	})
}

func (a *App) setView(v View) {
	if a.view == v {
		return
	}
	// leaving the trainer stops the drill; the board only pulses while shown
	switch a.view {
	case ViewTrainer:
		a.trainer.seq.Stop()
	case ViewBoard:
		a.board.ed.StopAnimation()
	}
	if v == ViewBoard {
		a.board.ed.Animate(a.host)
	}
	a.view = v
	a.log.Info().Str("view", v.String()).Msg("switched view")
	a.invalidate()
}

func (a *App) layoutWorkspace(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	switch a.view {
	case ViewBoard:
		return a.board.Layout(gtx)
	default:
		return a.trainer.Layout(gtx)
	}
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	if !a.logVisible {
		return layout.Dimensions{}
	}
	h := gtx.Dp(unit.Dp(140))
	gtx.Constraints.Min.Y = h
	gtx.Constraints.Max.Y = h
	size := image.Pt(gtx.Constraints.Max.X, h)
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return a.logList.Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.gvTheme.Theme, a.logText)
			label.State = &a.logSelectable
			label.WrapPolicy = text.WrapGraphemes
			label.Alignment = text.Start
			label.Font.Typeface = gfont.Typeface("Go Mono")
			if a.monoShaper != nil {
				label.Shaper = a.monoShaper
			}
			label.Color = a.opaqueFg()
			return label.Layout(gtx)
		})
	})
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		var status string
		switch a.view {
		case ViewBoard:
			status = a.board.status()
		default:
			status = a.trainer.status()
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.gvTheme.Theme, status).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(material.Caption(a.gvTheme.Theme, a.lastLog()).Layout),
		)
	})
}

func (a *App) applyPalette() {
	a.gvTheme.WithPalette(theme.Palette{
		Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
		Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
		ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
		ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
	})
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// appendLog receives formatted lines from the pane logger.
func (a *App) appendLog(line string) {
	a.logs = append(a.logs, line)
	if len(a.logs) > maxLogLines {
		a.logs = a.logs[len(a.logs)-maxLogLines:]
	}
	a.logText = strings.Join(a.logs, "\n")
	a.logSelectable.SetText(a.logText)
	a.invalidate()
}

func (a *App) lastLog() string {
	if len(a.logs) == 0 {
		return ""
	}
	return a.logs[len(a.logs)-1]
}

func (a *App) opaqueFg() color.NRGBA {
	fg := a.gvTheme.Palette.Fg
	fg.A = 0xFF
	return fg
}

func filterMonoFaces() []gfont.FontFace {
	var mono []gfont.FontFace
	for _, face := range gofont.Collection() {
		if face.Font.Typeface == gfont.Typeface("Go Mono") {
			mono = append(mono, face)
		}
	}
	return mono
}

package ui

import (
	"io"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

// Options configures the application window.
type Options struct {
	Title  string
	Width  int // dp
	Height int // dp
	View   View

	Trainer trainer.Options
	Board   board.Options

	LogLevel string
	Verbose  bool
	// LogOut receives console log output in addition to the in-app pane.
	LogOut io.Writer
}

// DefaultOptions returns a trainer window with default settings.
func DefaultOptions() Options {
	return Options{
		Title:    "CourtCoach",
		Width:    1280,
		Height:   800,
		View:     ViewTrainer,
		Trainer:  trainer.DefaultOptions(),
		Board:    board.DefaultOptions(),
		LogLevel: "info",
		LogOut:   os.Stderr,
	}
}

// Run launches the Gio UI and blocks until the window closes.
func Run(opts Options) error {
	go func() {
		w := new(app.Window)
		w.Option(app.Title(opts.Title), app.Size(unit.Dp(float32(opts.Width)), unit.Dp(float32(opts.Height))))
		a := New(w, opts)
		if err := a.Run(); err != nil {
			a.log.Error().Err(err).Msg("ui stopped")
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}

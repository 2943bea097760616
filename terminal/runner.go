package terminal

import (
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/OpticalFlyer/laststanding/layout"
	"github.com/OpticalFlyer/laststanding/match"
)

type action int

const (
	actionNone action = iota
	actionPrimary
	actionQuit
	actionResize
)

// Runner is the terminal frame loop. Only the loop goroutine touches the
// controller; a helper goroutine forwards tcell events.
type Runner struct {
	screen  tcell.Screen
	surface *Surface
	match   *match.Controller
	frame   time.Duration

	buttons tcell.ButtonMask
}

// NewRunner wires a controller to an initialized screen, ticking tps times a
// second.
func NewRunner(screen tcell.Screen, m *match.Controller, tps int) *Runner {
	if tps <= 0 {
		tps = 60
	}
	return &Runner{
		screen:  screen,
		surface: NewSurface(screen),
		match:   m,
		frame:   time.Second / time.Duration(tps),
	}
}

// Viewport returns the terminal size in virtual pixels.
func (r *Runner) Viewport() (int, int) {
	return r.surface.Viewport()
}

// Run blocks until the user quits.
func (r *Runner) Run() error {
	r.screen.EnableMouse()
	r.screen.HideCursor()
	r.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	r.resize()
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			var act action
			act, r.buttons = classify(ev, r.buttons)
			switch act {
			case actionQuit:
				return nil
			case actionPrimary:
				if err := r.match.PrimaryAction(); err != nil {
					log.Printf("Error dealing a new round: %v", err)
				}
			case actionResize:
				r.screen.Sync()
				r.resize()
			}
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			r.match.Tick(dt)
			r.match.Update(dt)
			r.draw()
		}
	}
}

func (r *Runner) resize() {
	w, h := r.surface.Viewport()
	if err := r.match.Resize(w, h); err != nil {
		if errors.Is(err, layout.ErrInvalidLayout) {
			log.Printf("Keeping previous layout: %v", err)
			return
		}
		log.Printf("Error resizing to %dx%d: %v", w, h, err)
	}
}

func (r *Runner) draw() {
	r.screen.Clear()
	r.match.Draw(r.surface)
	r.screen.Show()
}

// classify maps an event to a loop action. Mouse buttons act on press, so
// the previous button state is threaded through.
func classify(ev tcell.Event, prev tcell.ButtonMask) (action, tcell.ButtonMask) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return actionQuit, prev
		case tcell.KeyEnter:
			return actionPrimary, prev
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				return actionPrimary, prev
			case 'q', 'Q':
				return actionQuit, prev
			case 'c':
				if ev.Modifiers()&tcell.ModCtrl != 0 {
					return actionQuit, prev
				}
			}
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons &^ prev
		switch {
		case pressed&tcell.Button2 != 0:
			return actionQuit, buttons
		case pressed&tcell.Button1 != 0:
			return actionPrimary, buttons
		}
		return actionNone, buttons
	case *tcell.EventResize:
		return actionResize, prev
	}
	return actionNone, prev
}

// Package term shows the card in a terminal using tcell, two pixels per
// character cell.
package term

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/evergreen"
)

// App runs a Session on a tcell screen.
type App struct {
	screen  tcell.Screen
	session *evergreen.Session
	canvas  *Canvas
	intro   evergreen.IntroConfig
	fps     int

	events chan tcell.Event
	quit   bool
}

// NewApp binds session to screen. The screen must already be initialised.
func NewApp(screen tcell.Screen, cfg evergreen.Config, session *evergreen.Session) (*App, error) {
	bg, err := evergreen.ParseColor(cfg.Window.Background)
	if err != nil {
		return nil, err
	}
	a := &App{
		screen:  screen,
		session: session,
		canvas:  NewCanvas(bg, cfg.Terminal.Scale),
		intro:   cfg.Intro,
		fps:     cfg.Terminal.FPS,
		events:  make(chan tcell.Event, 100),
	}
	a.resize()
	return a, nil
}

// Canvas returns the pixel buffer the session draws into.
func (a *App) Canvas() *Canvas { return a.canvas }

// Run pumps terminal events and renders frames until ctx is done or the
// user quits. Quitting returns nil.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.pollEvents(ctx)

	clock := evergreen.NewTickerClock(a.fps)
	defer clock.Stop()

	err := evergreen.RunLoop(ctx, clock, func(now time.Time) {
		a.drainEvents(now)
		if a.quit {
			cancel()
			return
		}
		a.Frame(now)
	})
	if a.quit && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) drainEvents(now time.Time) {
	for {
		select {
		case ev := <-a.events:
			if !a.HandleEvent(ev, now) {
				a.quit = true
				return
			}
		default:
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		a.session.Start(now)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			a.session.Start(now)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.canvas.Resize(cols, rows)
	vp := a.canvas.Viewport()
	a.session.Resize(vp.Width, vp.Height)
}

// Frame advances the session to now and draws one frame to the screen.
func (a *App) Frame(now time.Time) {
	a.session.Advance(now)
	a.session.Frame(a.canvas, now)
	a.canvas.Blur(a.session.BlurRadius())
	a.canvas.Flush(a.screen)
	a.drawIntro(a.session.IntroAlpha())
	a.screen.Show()
}

func (a *App) drawIntro(alpha float64) {
	if alpha <= 0 {
		return
	}
	cols, rows := a.canvas.Cells()
	mid := rows / 2
	a.drawCentered(a.intro.Title, mid-1, cols, alpha)
	a.drawCentered(a.intro.Prompt, mid+1, cols, alpha*0.7)
}

func (a *App) drawCentered(s string, row, cols int, alpha float64) {
	width := runewidth.StringWidth(s)
	if width == 0 || row < 0 {
		return
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	col := (cols - width) / 2
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		// wide runes that would straddle an edge are dropped
		if col >= 0 && col+w <= cols {
			bg := a.canvas.BackgroundAt(col, row)
			fg := bg.BlendRgb(white, alpha)
			style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
			a.screen.SetContent(col, row, r, nil, style)
		}
		col += w
	}
}

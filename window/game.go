package window

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/evergreen"
)

// Game adapts a Session to ebiten.Game.
//
// Ebiten's Draw callback is the frame clock: every Draw advances the scene
// by one tick. Update only handles input and session timers.
type Game struct {
	session *evergreen.Session
	canvas  *Canvas
	blur    *BlurFilter
	intro   *introOverlay
	fps     *fpsOverlay
	shots   screenshots
	script  *Script

	offscreen *ebiten.Image
	now       func() time.Time
	touchIDs  []ebiten.TouchID
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps session. cfg supplies the background, the intro text, the
// FPS overlay switch and the screenshot directory.
func NewGame(cfg evergreen.Config, session *evergreen.Session) (*Game, error) {
	bg, err := evergreen.ParseColor(cfg.Window.Background)
	if err != nil {
		return nil, err
	}
	intro, err := newIntroOverlay(cfg.Intro)
	if err != nil {
		return nil, err
	}
	g := &Game{
		session: session,
		canvas:  NewCanvas(bg),
		blur:    NewBlurFilter(0),
		intro:   intro,
		shots:   screenshots{dir: cfg.Window.ScreenshotDir},
		now:     time.Now,
	}
	if cfg.Window.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g, nil
}

// SetScript attaches a capture script. Its steps run one per Update,
// before keyboard and mouse input.
func (g *Game) SetScript(s *Script) {
	g.script = s
}

// Update handles input and advances the session timers.
func (g *Game) Update() error {
	if g.script != nil {
		if g.script.step(g) {
			return ebiten.Termination
		}
		if g.script.Done() {
			log.Printf("[evergreen] capture script finished")
			g.script = nil
		}
	}
	now := g.now()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.startPressed() {
		g.session.Start(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.shots.request(g.session.Phase().String())
	}

	g.session.Advance(now)
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *Game) startPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	return len(g.touchIDs) > 0
}

// Draw renders one frame: scene, blur, intro overlay, FPS, then any queued
// screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != w || g.offscreen.Bounds().Dy() != h {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(w, h)
	}

	g.canvas.Begin(g.offscreen)
	g.session.Frame(g.canvas, g.now())
	g.canvas.Finish()

	g.blur.Radius = g.session.BlurRadius()
	g.blur.Apply(g.offscreen, screen)

	g.intro.draw(screen, g.session.IntroAlpha())
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout uses the window size as the logical screen size and forwards it
// to the session.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.Resize(outsideWidth, outsideHeight)
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Close releases GPU images and stops the music.
func (g *Game) Close() {
	g.session.Close()
	g.canvas.Dispose()
	g.blur.Dispose()
	if g.offscreen != nil {
		g.offscreen.Deallocate()
		g.offscreen = nil
	}
}

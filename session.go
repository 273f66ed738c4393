package evergreen

import (
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Music is background audio started by the intro. Play may fail (missing
// asset, no audio device); the session logs the failure and carries on.
type Music interface {
	Play() error
	Stop()
}

// Phase is the session's position in the intro sequence.
type Phase uint8

const (
	PhaseIntro   Phase = iota // intro screen shown, waiting for the start trigger
	PhaseOpening              // start triggered, intro fading out
	PhasePlaying              // card revealed, frame loop running
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseOpening:
		return "opening"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for geometry and particles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger for non-fatal failures. Nil discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		s.logger = l
	}
}

// Session drives one run of the card: intro, music, reveal, and the
// delayed blur. It owns the Scene; backends feed it resizes, the start
// trigger, and frame times.
type Session struct {
	cfg    Config
	music  Music
	logger *log.Logger
	rng    *rand.Rand

	scene    *Scene
	viewport Viewport
	phase    Phase

	last       time.Time
	sinceStart time.Duration
	introAlpha float64
	introFade  *gween.Tween

	sinceReveal time.Duration
	blurRadius  float64
	blurFade    *gween.Tween
	blurDone    bool
}

// NewSession validates cfg and returns a session showing the intro. music
// may be nil.
func NewSession(cfg Config, music Music, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:        cfg,
		music:      music,
		logger:     log.New(os.Stderr, "[evergreen] ", log.LstdFlags),
		introAlpha: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand()
	}
	scene, err := NewScene(cfg, s.rng)
	if err != nil {
		return nil, err
	}
	s.scene = scene
	return s, nil
}

// Scene returns the owned scene.
func (s *Session) Scene() *Scene { return s.scene }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Viewport returns the last size passed to Resize.
func (s *Session) Viewport() Viewport { return s.viewport }

// IntroAlpha is the intro overlay opacity: 1 before Start, fading to 0 at
// the reveal.
func (s *Session) IntroAlpha() float64 { return s.introAlpha }

// BlurRadius is the current post-processing blur radius in surface units.
func (s *Session) BlurRadius() float64 { return s.blurRadius }

// Resize records a new viewport. Once the card has been revealed the scene
// is rebuilt, targets and particles together, so no particle keeps a target
// from the old geometry. Returns false when the size did not change.
func (s *Session) Resize(width, height int) bool {
	vp := Viewport{Width: max(width, 0), Height: max(height, 0)}
	if vp == s.viewport {
		return false
	}
	s.viewport = vp
	if s.scene.Populated() {
		s.scene.Init(vp)
	}
	return true
}

// Start is the user's start trigger. It starts the music and begins the
// intro fade. Only the first call has any effect.
func (s *Session) Start(now time.Time) bool {
	if s.phase != PhaseIntro {
		return false
	}
	s.phase = PhaseOpening
	s.last = now

	if s.music != nil {
		if err := s.music.Play(); err != nil {
			s.logger.Printf("music: %v", err)
		}
	}

	delay := s.cfg.Intro.RevealDelay
	if delay <= 0 {
		s.reveal()
		return true
	}
	s.introFade = gween.New(1, 0, float32(delay.Seconds()), ease.Linear)
	return true
}

// Advance moves timers forward to now: the intro fade, the reveal, the
// blur delay and the blur ramp.
func (s *Session) Advance(now time.Time) {
	if s.phase == PhaseIntro {
		return
	}
	dt := now.Sub(s.last)
	if dt < 0 {
		dt = 0
	}
	s.last = now

	switch s.phase {
	case PhaseOpening:
		s.sinceStart += dt
		v, done := s.introFade.Update(float32(dt.Seconds()))
		s.introAlpha = float64(v)
		if done || s.sinceStart >= s.cfg.Intro.RevealDelay {
			s.reveal()
			// time past the reveal counts toward the blur delay
			s.advanceBlur(max(s.sinceStart-s.cfg.Intro.RevealDelay, 0))
		}
	case PhasePlaying:
		s.advanceBlur(dt)
	}
}

func (s *Session) reveal() {
	s.introAlpha = 0
	s.introFade = nil
	s.phase = PhasePlaying
	s.scene.Init(s.viewport)
	s.logger.Printf("revealed %dx%d, %d tree particles, %d snowflakes",
		s.viewport.Width, s.viewport.Height, len(s.scene.TreeParticles()), len(s.scene.SnowParticles()))
}

func (s *Session) advanceBlur(dt time.Duration) {
	if s.blurDone {
		return
	}
	if s.blurFade == nil {
		s.sinceReveal += dt
		if s.sinceReveal < s.cfg.Blur.Delay {
			return
		}
		if s.cfg.Blur.Fade <= 0 {
			s.blurRadius = s.cfg.Blur.Radius
			s.blurDone = true
			return
		}
		s.blurFade = gween.New(0, float32(s.cfg.Blur.Radius), float32(s.cfg.Blur.Fade.Seconds()), ease.InOutQuad)
		dt = s.sinceReveal - s.cfg.Blur.Delay
	}
	v, done := s.blurFade.Update(float32(dt.Seconds()))
	s.blurRadius = float64(v)
	if done {
		s.blurRadius = s.cfg.Blur.Radius
		s.blurDone = true
	}
}

// Frame renders one frame of the card to surf. Before the reveal only the
// background is cleared; the backend draws the intro on top.
func (s *Session) Frame(surf Surface, now time.Time) {
	if s.phase != PhasePlaying {
		surf.Clear()
		return
	}
	s.scene.Tick(surf, now)
}

// Close stops the music.
func (s *Session) Close() {
	if s.music != nil {
		s.music.Stop()
	}
}

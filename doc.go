// Package evergreen renders an animated greeting card: particles drift from
// random positions into a Christmas-tree silhouette of three stacked
// triangles topped by a twinkling star, nearby particles are joined by thin
// lines, and snow falls over everything.
//
// The package is backend-agnostic. Drawing goes through [Surface], a small
// canvas-style interface; the window package implements it on Ebitengine and
// the term package on a tcell terminal.
//
// # Quick start
//
//	cfg, err := evergreen.Load("card.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	session, err := evergreen.NewSession(cfg, music)
//	if err != nil {
//		log.Fatal(err)
//	}
//	session.Resize(800, 600)
//	session.Start(time.Now())
//
//	// every frame:
//	session.Advance(now)
//	session.Frame(surface, now)
//
// # Pieces
//
// [TreeShape] samples target points uniformly inside each layer triangle
// and appends the star. [Scene] owns one [TreeParticle] per target plus a
// fixed pool of [SnowParticle], and [Scene.Tick] is a single frame.
// [Session] sequences the intro, the music, the reveal and the delayed
// blur. [RunLoop] drives frames from a [FrameClock]; [ManualClock] makes
// that deterministic for tests.
//
// # Configuration
//
// [DefaultConfig] describes the stock card. [LoadConfig] layers a YAML file
// over it and [ApplyEnv] applies EVERGREEN_* environment overrides, for
// example EVERGREEN_SNOW_COUNT=400 or EVERGREEN_AUDIO_PATH=jingle.mp3.
package evergreen

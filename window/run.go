// Package window shows the card in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/phanxgames/evergreen"
)

// Run opens a resizable window and plays the card until the window is
// closed, Escape is pressed or the capture script quits.
func Run(cfg evergreen.Config) error {
	logger := log.New(os.Stderr, "[evergreen] ", log.LstdFlags)

	music := NewMusic(audio.NewContext(sampleRate), cfg.Audio.Path, cfg.Audio.Volume)
	session, err := evergreen.NewSession(cfg, music, evergreen.WithLogger(logger))
	if err != nil {
		return err
	}
	game, err := NewGame(cfg, session)
	if err != nil {
		return err
	}
	defer game.Close()

	if cfg.Window.Script != "" {
		script, err := LoadScript(cfg.Window.Script)
		if err != nil {
			return err
		}
		game.SetScript(script)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

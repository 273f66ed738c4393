package term

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
)

// Run takes over the terminal and plays the card until the user quits or
// the process is interrupted. Logs go to cfg.Terminal.LogFile when set and
// are discarded otherwise, since stderr shares the screen.
func Run(cfg evergreen.Config) error {
	logOut := io.Discard
	if cfg.Terminal.LogFile != "" {
		f, err := os.OpenFile(cfg.Terminal.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "[evergreen] ", log.LstdFlags)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	music := NewMusic(cfg.Audio.Path, cfg.Audio.Volume)
	defer func() {
		if err := music.Close(); err != nil {
			logger.Printf("close music: %v", err)
		}
	}()

	session, err := evergreen.NewSession(cfg, music, evergreen.WithLogger(logger))
	if err != nil {
		return err
	}
	defer session.Close()

	app, err := NewApp(screen, cfg, session)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

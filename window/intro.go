package window

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/evergreen"
)

// introOverlay draws the title and prompt centered on the screen.
type introOverlay struct {
	title, prompt string
	titleFace     *text.GoTextFace
	promptFace    *text.GoTextFace
	op            text.DrawOptions
}

func newIntroOverlay(cfg evergreen.IntroConfig) (*introOverlay, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load intro font: %w", err)
	}
	return &introOverlay{
		title:      cfg.Title,
		prompt:     cfg.Prompt,
		titleFace:  &text.GoTextFace{Source: source, Size: 34},
		promptFace: &text.GoTextFace{Source: source, Size: 18},
	}, nil
}

// draw renders the overlay at the given opacity. Nothing is drawn once
// alpha reaches zero.
func (o *introOverlay) draw(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	cx := float64(screen.Bounds().Dx()) / 2
	cy := float64(screen.Bounds().Dy()) / 2

	o.drawLine(screen, o.title, o.titleFace, cx, cy-24, alpha)
	o.drawLine(screen, o.prompt, o.promptFace, cx, cy+24, alpha*0.7)
}

func (o *introOverlay) drawLine(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, alpha float64) {
	if s == "" {
		return
	}
	o.op.GeoM.Reset()
	o.op.GeoM.Translate(x, y)
	o.op.ColorScale.Reset()
	o.op.ColorScale.ScaleAlpha(float32(alpha))
	o.op.PrimaryAlign = text.AlignCenter
	o.op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, &o.op)
}

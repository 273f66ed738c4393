package term

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/evergreen"
)

var (
	black = colorful.Color{}
	red   = colorful.Color{R: 1}
	blue  = colorful.Color{B: 1}
)

func newTestCanvas(cols, rows int) *Canvas {
	c := NewCanvas(evergreen.Color{A: 1}, 1)
	c.Resize(cols, rows)
	c.Clear()
	return c
}

func assertColorNear(t *testing.T, name string, got, want colorful.Color) {
	t.Helper()
	if math.Abs(got.R-want.R) > 1e-6 || math.Abs(got.G-want.G) > 1e-6 || math.Abs(got.B-want.B) > 1e-6 {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func TestCanvasResizeAndViewport(t *testing.T) {
	c := NewCanvas(evergreen.Color{A: 1}, 0.1)
	c.Resize(80, 24)
	if cols, rows := c.Cells(); cols != 80 || rows != 24 {
		t.Errorf("Cells() = %dx%d, want 80x24", cols, rows)
	}
	if vp := c.Viewport(); vp != (evergreen.Viewport{Width: 800, Height: 480}) {
		t.Errorf("Viewport() = %v, want 800x480", vp)
	}
	c.Resize(-1, 3)
	if vp := c.Viewport(); vp.Width != 0 {
		t.Errorf("negative cols gave viewport %v", vp)
	}
}

func TestCanvasClear(t *testing.T) {
	bg := evergreen.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	c := NewCanvas(bg, 1)
	c.Resize(4, 2)
	c.Clear()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assertColorNear(t, "pixel", c.Pixel(x, y), colorful.Color{R: 0.2, G: 0.4, B: 0.6})
		}
	}
}

func TestCanvasPixelOutOfBounds(t *testing.T) {
	c := newTestCanvas(2, 1)
	if p := c.Pixel(5, 5); p != black {
		t.Errorf("out-of-bounds pixel = %+v, want black", p)
	}
}

func TestCanvasFillSquare(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.SetFillColor(evergreen.Color{R: 1, A: 1})
	c.BeginPath()
	c.MoveTo(2, 2)
	c.LineTo(6, 2)
	c.LineTo(6, 6)
	c.LineTo(2, 6)
	c.ClosePath()
	c.Fill()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			want := black
			if inside {
				want = red
			}
			if got := c.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestCanvasFillUsesTransform(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.SetFillColor(evergreen.Color{R: 1, A: 1})
	c.Translate(5, 5)
	c.BeginPath()
	c.MoveTo(-1, -1)
	c.LineTo(1, -1)
	c.LineTo(1, 1)
	c.LineTo(-1, 1)
	c.ClosePath()
	c.Fill()

	if c.Pixel(4, 4) != red || c.Pixel(5, 5) != red {
		t.Error("translated square not drawn around (5, 5)")
	}
	if c.Pixel(1, 1) != black {
		t.Error("square drawn at the untranslated origin")
	}
}

func TestCanvasFillBlendsAlpha(t *testing.T) {
	c := newTestCanvas(4, 2)
	c.SetFillColor(evergreen.Color{R: 1, A: 0.5})
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(4, 0)
	c.LineTo(4, 4)
	c.LineTo(0, 4)
	c.Fill()
	assertColorNear(t, "half red", c.Pixel(1, 1), colorful.Color{R: 0.5})
}

func TestCanvasFillSubPixelShape(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.SetFillColor(evergreen.Color{R: 1, A: 1})
	c.BeginPath()
	c.MoveTo(3.1, 3.1)
	c.LineTo(3.3, 3.1)
	c.LineTo(3.3, 3.3)
	c.LineTo(3.1, 3.3)
	c.ClosePath()
	c.Fill()

	if got := c.Pixel(3, 3); got != red {
		t.Errorf("pixel under sub-pixel shape = %+v, want red", got)
	}
	lit := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Pixel(x, y) != black {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit pixels = %d, want 1", lit)
	}
}

func TestCanvasFillGlowBrightensSurroundings(t *testing.T) {
	c := newTestCanvas(20, 10)
	c.SetFillColor(evergreen.Color{R: 1, G: 1, A: 1})
	c.SetGlow(4, evergreen.Color{R: 1, G: 1, A: 1})
	c.BeginPath()
	c.MoveTo(9, 9)
	c.LineTo(11, 9)
	c.LineTo(11, 11)
	c.LineTo(9, 11)
	c.ClosePath()
	c.Fill()

	if got := c.Pixel(13, 10); got.R <= 0 {
		t.Errorf("pixel beside a glowing fill = %+v, want brightened", got)
	}
	if got := c.Pixel(0, 0); got != black {
		t.Errorf("far pixel = %+v, want untouched", got)
	}
}

func TestCanvasGlowRadiusInSurfaceUnits(t *testing.T) {
	c := NewCanvas(evergreen.Color{A: 1}, 2)
	c.Resize(40, 20)
	c.Clear()
	c.SetFillColor(evergreen.Color{R: 1, G: 1, A: 1})
	c.SetGlow(4, evergreen.Color{R: 1, G: 1, A: 1})
	c.BeginPath()
	c.MoveTo(9, 9)
	c.LineTo(11, 9)
	c.LineTo(11, 11)
	c.LineTo(9, 11)
	c.ClosePath()
	c.Fill()

	// 4 units at scale 2 reach 8 pixels past the square's corners.
	if got := c.Pixel(29, 20); got.R <= 0 {
		t.Errorf("pixel 9.5px from the centre = %+v, want brightened", got)
	}
	if got := c.Pixel(32, 20); got != black {
		t.Errorf("pixel 12.5px from the centre = %+v, want untouched", got)
	}
}

func TestCanvasStroke(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.SetStrokeColor(evergreen.Color{B: 1, A: 1})
	c.SetLineWidth(1)
	c.BeginPath()
	c.MoveTo(0.5, 0.5)
	c.LineTo(8.5, 0.5)
	c.Stroke()

	for x := 0; x <= 8; x++ {
		if got := c.Pixel(x, 0); got != blue {
			t.Errorf("pixel (%d, 0) = %+v, want blue", x, got)
		}
	}
	if got := c.Pixel(4, 1); got != black {
		t.Errorf("pixel below the line = %+v, want black", got)
	}
}

func TestCanvasThinStrokeIsFainter(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.SetStrokeColor(evergreen.Color{B: 1, A: 1})
	c.SetLineWidth(0.5)
	c.BeginPath()
	c.MoveTo(0.5, 0.5)
	c.LineTo(5.5, 0.5)
	c.Stroke()
	assertColorNear(t, "thin line", c.Pixel(2, 0), colorful.Color{B: 0.5})
}

func TestCanvasBlurSpreadsPixel(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.pix[5*c.w+5] = colorful.Color{R: 1, G: 1, B: 1}
	c.Blur(1)

	assertNear(t, "center", c.Pixel(5, 5).R, 1.0/9)
	assertNear(t, "right", c.Pixel(6, 5).R, 1.0/9)
	assertNear(t, "diagonal", c.Pixel(6, 6).R, 1.0/9)
	assertNear(t, "two away", c.Pixel(7, 5).R, 0)
}

func TestCanvasBlurFractional(t *testing.T) {
	c := newTestCanvas(10, 5)
	c.pix[5*c.w+5] = colorful.Color{R: 1, G: 1, B: 1}
	c.Blur(0.5)
	assertNear(t, "center", c.Pixel(5, 5).R, 0.5+0.5/9)
}

func TestCanvasBlurZeroIsNoop(t *testing.T) {
	c := newTestCanvas(4, 2)
	c.pix[0] = red
	c.Blur(0)
	if c.Pixel(0, 0) != red {
		t.Error("Blur(0) changed the buffer")
	}
}

func TestCanvasFlushHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	c := newTestCanvas(4, 2)
	c.pix[0] = red
	c.pix[c.w] = blue
	c.Flush(screen)

	r, _, style, _ := screen.GetContent(0, 0)
	if r != halfBlock {
		t.Errorf("cell rune = %q, want %q", r, halfBlock)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("fg = %v, want red", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("bg = %v, want blue", bg)
	}
}

func TestCanvasBackgroundAt(t *testing.T) {
	c := newTestCanvas(2, 1)
	c.pix[0] = red
	c.pix[c.w] = blue
	assertColorNear(t, "cell background", c.BackgroundAt(0, 0), colorful.Color{R: 0.5, B: 0.5})
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

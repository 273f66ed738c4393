package term

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/evergreen"
)

// halfBlock paints the upper pixel of a cell as foreground and the lower
// one as background.
const halfBlock = '▀'

// haloStrength scales the additive glow around glowing fills.
const haloStrength = 0.6

// Canvas is an evergreen.Surface rasterised into an RGB pixel buffer with
// two pixels per terminal cell. Surface units are multiplied by scale to
// get pixels.
type Canvas struct {
	evergreen.PathState

	background colorful.Color
	scale      float64
	cols, rows int
	w, h       int
	pix        []colorful.Color
	tmp        []colorful.Color
	xs         []float64
}

var _ evergreen.Surface = (*Canvas)(nil)

// NewCanvas creates an empty canvas. Call Resize before drawing.
func NewCanvas(background evergreen.Color, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{
		background: colorful.Color{R: background.R, G: background.G, B: background.B},
		scale:      scale,
	}
	c.ResetState()
	return c
}

// Resize sets the buffer to cover cols x rows cells.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	c.cols, c.rows = cols, rows
	c.w, c.h = cols, rows*2
	if n := c.w * c.h; cap(c.pix) >= n {
		c.pix = c.pix[:n]
	} else {
		c.pix = make([]colorful.Color, n)
	}
}

// Cells returns the buffer size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Viewport returns the buffer size in surface units.
func (c *Canvas) Viewport() evergreen.Viewport {
	return evergreen.Viewport{
		Width:  int(math.Round(float64(c.w) / c.scale)),
		Height: int(math.Round(float64(c.h) / c.scale)),
	}
}

// Pixel returns the color at pixel (x, y), or black outside the buffer.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return colorful.Color{}
	}
	return c.pix[y*c.w+x]
}

// Clear fills the buffer with the background and resets the drawing state.
func (c *Canvas) Clear() {
	c.ResetState()
	for i := range c.pix {
		c.pix[i] = c.background
	}
}

// Fill fills the current path with the even-odd rule, sampling at pixel
// centers. A shape too small to cover any pixel center still marks the
// pixel under its centroid, so sub-pixel particles stay visible.
func (c *Canvas) Fill() {
	polys := c.pixelPolygons()
	if len(polys) == 0 {
		return
	}
	col := c.FillColor()
	src := colorful.Color{R: col.R, G: col.G, B: col.B}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}

	covered := false
	y0 := max(int(math.Floor(minY)), 0)
	y1 := min(int(math.Ceil(maxY)), c.h-1)
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		c.xs = c.xs[:0]
		for _, poly := range polys {
			for i := range poly {
				a, b := poly[i], poly[(i+1)%len(poly)]
				if (a.Y <= sy) == (b.Y <= sy) {
					continue
				}
				t := (sy - a.Y) / (b.Y - a.Y)
				c.xs = append(c.xs, a.X+t*(b.X-a.X))
			}
		}
		slices.Sort(c.xs)
		for i := 0; i+1 < len(c.xs); i += 2 {
			x0 := max(int(math.Ceil(c.xs[i]-0.5)), 0)
			x1 := min(int(math.Ceil(c.xs[i+1]-0.5)), c.w)
			for x := x0; x < x1; x++ {
				c.blend(x, y, src, col.A)
				covered = true
			}
		}
	}

	cx, cy, r := bounds(polys)
	if !covered {
		c.blend(int(math.Floor(cx)), int(math.Floor(cy)), src, col.A)
	}
	if radius, glow := c.Glow(); radius > 0 {
		c.halo(cx, cy, r+math.Max(radius*c.scale, 1), glow)
	}
}

// Stroke draws each segment of the current path as a one-pixel DDA line.
// Line widths below one pixel reduce the line's opacity instead.
func (c *Canvas) Stroke() {
	col := c.StrokeColor()
	src := colorful.Color{R: col.R, G: col.G, B: col.B}
	alpha := col.A * math.Min(1, math.Max(c.DeviceLineWidth()*c.scale, 0.25))
	for _, sp := range c.Subpaths() {
		pts := sp.Points
		for i := 0; i+1 < len(pts); i++ {
			c.line(pts[i].Scale(c.scale), pts[i+1].Scale(c.scale), src, alpha)
		}
		if sp.Closed && len(pts) > 2 {
			c.line(pts[len(pts)-1].Scale(c.scale), pts[0].Scale(c.scale), src, alpha)
		}
	}
}

// Blur applies a separable box blur. radius is in surface units; a
// fractional pixel radius blends the next whole-pixel blur over the sharp
// buffer.
func (c *Canvas) Blur(radius float64) {
	px := radius * c.scale
	if px <= 0 || len(c.pix) == 0 {
		return
	}
	whole := int(math.Ceil(px))
	mix := px / float64(whole)

	if cap(c.tmp) < len(c.pix) {
		c.tmp = make([]colorful.Color, len(c.pix))
	}
	tmp := c.tmp[:len(c.pix)]
	sharp := slices.Clone(c.pix)

	c.boxPass(c.pix, tmp, whole, 1, 0)
	c.boxPass(tmp, c.pix, whole, 0, 1)
	if mix < 1 {
		for i := range c.pix {
			c.pix[i] = sharp[i].BlendRgb(c.pix[i], mix)
		}
	}
}

func (c *Canvas) boxPass(src, dst []colorful.Color, r, dx, dy int) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			var sum colorful.Color
			n := 0
			for k := -r; k <= r; k++ {
				sx, sy := x+k*dx, y+k*dy
				if sx < 0 || sy < 0 || sx >= c.w || sy >= c.h {
					continue
				}
				p := src[sy*c.w+sx]
				sum.R += p.R
				sum.G += p.G
				sum.B += p.B
				n++
			}
			dst[y*c.w+x] = colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}
		}
	}
}

// Flush writes the buffer to screen as half-block cells. It does not call
// Show.
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := c.pix[(2*row)*c.w+col]
			bottom := c.pix[(2*row+1)*c.w+col]
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// BackgroundAt averages the two pixels behind cell (col, row). Text drawn
// over the canvas uses it as its cell background.
func (c *Canvas) BackgroundAt(col, row int) colorful.Color {
	top, bottom := c.Pixel(col, 2*row), c.Pixel(col, 2*row+1)
	return top.BlendRgb(bottom, 0.5)
}

func toTcell(p colorful.Color) tcell.Color {
	r, g, b := p.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (c *Canvas) blend(x, y int, src colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || alpha <= 0 {
		return
	}
	i := y*c.w + x
	c.pix[i] = c.pix[i].BlendRgb(src, math.Min(alpha, 1))
}

func (c *Canvas) add(x, y int, src colorful.Color, k float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	p := c.pix[i]
	c.pix[i] = colorful.Color{R: p.R + src.R*k, G: p.G + src.G*k, B: p.B + src.B*k}.Clamped()
}

// halo adds a radial falloff of col around (cx, cy).
func (c *Canvas) halo(cx, cy, radius float64, col evergreen.Color) {
	src := colorful.Color{R: col.R, G: col.G, B: col.B}
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= radius {
				continue
			}
			f := 1 - d/radius
			c.add(x, y, src, col.A*haloStrength*f*f)
		}
	}
}

func (c *Canvas) line(a, b evergreen.Vec2, src colorful.Color, alpha float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.blend(int(math.Floor(a.X)), int(math.Floor(a.Y)), src, alpha)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.blend(int(math.Floor(a.X+t*dx)), int(math.Floor(a.Y+t*dy)), src, alpha)
	}
}

// pixelPolygons returns the current subpaths scaled to pixel space. Every
// subpath is treated as closed for filling.
func (c *Canvas) pixelPolygons() [][]evergreen.Vec2 {
	var polys [][]evergreen.Vec2
	for _, sp := range c.Subpaths() {
		if len(sp.Points) == 0 {
			continue
		}
		poly := make([]evergreen.Vec2, len(sp.Points))
		for i, p := range sp.Points {
			poly[i] = p.Scale(c.scale)
		}
		polys = append(polys, poly)
	}
	return polys
}

// bounds returns the vertex centroid of polys and the largest vertex
// distance from it.
func bounds(polys [][]evergreen.Vec2) (cx, cy, r float64) {
	n := 0
	for _, poly := range polys {
		for _, p := range poly {
			cx += p.X
			cy += p.Y
			n++
		}
	}
	cx /= float64(n)
	cy /= float64(n)
	for _, poly := range polys {
		for _, p := range poly {
			r = math.Max(r, math.Hypot(p.X-cx, p.Y-cy))
		}
	}
	return cx, cy, r
}

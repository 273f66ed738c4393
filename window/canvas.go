package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/evergreen"
)

// Canvas is an evergreen.Surface that draws onto an ebiten image with the
// vector package. Glowing fills are also drawn into a separate glow layer
// which Finish blurs and adds on top of the frame.
//
// Game lays the screen out at the session's viewport size, so one surface
// unit is one screen pixel and glow radii are used as pixel radii.
type Canvas struct {
	evergreen.PathState

	background evergreen.Color
	target     *ebiten.Image
	glow       *ebiten.Image
	glowBlur   *BlurFilter
	glowUsed   bool

	path     vector.Path
	fillOp   vector.FillOptions
	strokeOp vector.StrokeOptions
	drawOp   vector.DrawPathOptions
}

var _ evergreen.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas that clears to background.
func NewCanvas(background evergreen.Color) *Canvas {
	c := &Canvas{
		background: background,
		glowBlur:   NewBlurFilter(0),
	}
	c.fillOp.FillRule = vector.FillRuleNonZero
	c.strokeOp.LineJoin = vector.LineJoinRound
	c.strokeOp.LineCap = vector.LineCapRound
	c.drawOp.AntiAlias = true
	c.ResetState()
	return c
}

// Begin points the canvas at dst for the coming frame. The glow layer is
// reallocated when dst changes size.
func (c *Canvas) Begin(dst *ebiten.Image) {
	c.target = dst
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if c.glow == nil || c.glow.Bounds().Dx() != w || c.glow.Bounds().Dy() != h {
		if c.glow != nil {
			c.glow.Deallocate()
		}
		c.glow = ebiten.NewImage(w, h)
	}
	c.glow.Clear()
	c.glowUsed = false
	c.glowBlur.Radius = 0
}

// Clear fills the target with the background color and resets the drawing
// state.
func (c *Canvas) Clear() {
	c.ResetState()
	if c.target == nil {
		return
	}
	c.target.Fill(c.background)
	c.glow.Clear()
	c.glowUsed = false
	c.glowBlur.Radius = 0
}

// Fill fills the current path. With a glow set, the same shape is also
// drawn into the glow layer in the glow color.
func (c *Canvas) Fill() {
	if c.target == nil || !c.buildPath() {
		return
	}
	if radius, col := c.Glow(); radius > 0 {
		c.drawOp.ColorScale.Reset()
		c.drawOp.ColorScale.ScaleWithColor(col)
		vector.FillPath(c.glow, &c.path, &c.fillOp, &c.drawOp)
		c.glowUsed = true
		c.glowBlur.Radius = max(c.glowBlur.Radius, radius)
	}
	c.drawOp.ColorScale.Reset()
	c.drawOp.ColorScale.ScaleWithColor(c.FillColor())
	vector.FillPath(c.target, &c.path, &c.fillOp, &c.drawOp)
}

// Stroke outlines the current path with the current stroke color and
// device line width.
func (c *Canvas) Stroke() {
	if c.target == nil || !c.buildPath() {
		return
	}
	c.strokeOp.Width = float32(c.DeviceLineWidth())
	c.drawOp.ColorScale.Reset()
	c.drawOp.ColorScale.ScaleWithColor(c.StrokeColor())
	vector.StrokePath(c.target, &c.path, &c.strokeOp, &c.drawOp)
}

// Finish composites the blurred glow layer over the frame.
func (c *Canvas) Finish() {
	if c.target == nil || !c.glowUsed {
		return
	}
	c.glowBlur.Halo(c.glow, c.target, ebiten.BlendLighter)
}

// Dispose releases the glow layer.
func (c *Canvas) Dispose() {
	if c.glow != nil {
		c.glow.Deallocate()
		c.glow = nil
	}
	c.glowBlur.Dispose()
	c.target = nil
}

func (c *Canvas) buildPath() bool {
	c.path = vector.Path{}
	drawn := false
	for _, sp := range c.Subpaths() {
		if len(sp.Points) == 0 {
			continue
		}
		c.path.MoveTo(float32(sp.Points[0].X), float32(sp.Points[0].Y))
		for _, pt := range sp.Points[1:] {
			c.path.LineTo(float32(pt.X), float32(pt.Y))
		}
		if sp.Closed {
			c.path.Close()
		}
		drawn = true
	}
	return drawn
}

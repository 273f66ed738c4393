package evergreen

import "math"

// Surface is a 2D drawing context modeled on an immediate-mode canvas.
// Paths are built in the current transform and filled or stroked with the
// current style. Save and Restore push and pop both transform and style.
//
// Backends usually embed a PathState and only implement Clear, Fill and
// Stroke themselves.
type Surface interface {
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()

	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	// SetGlow sets a blurred halo drawn behind subsequent fills.
	// A radius of zero disables it.
	SetGlow(radius float64, c Color)

	Fill()
	Stroke()
}

// Subpath is a flattened polyline in device coordinates.
type Subpath struct {
	Points []Vec2
	Closed bool
}

type drawStyle struct {
	matrix     Affine
	fill       Color
	stroke     Color
	lineWidth  float64
	glowRadius float64
	glowColor  Color
}

// PathState implements the transform, style and path-building half of
// Surface. Arcs are flattened into line segments in device space so
// backends only ever see polygons.
type PathState struct {
	cur   drawStyle
	stack []drawStyle
	paths []Subpath
}

// ResetState drops the save stack and the current path and restores the
// identity transform and default style.
func (p *PathState) ResetState() {
	p.cur = drawStyle{matrix: IdentityAffine, fill: Color{0, 0, 0, 1}, stroke: Color{0, 0, 0, 1}, lineWidth: 1}
	p.stack = p.stack[:0]
	p.paths = p.paths[:0]
}

func (p *PathState) ensureInit() {
	if p.cur.matrix == (Affine{}) {
		p.ResetState()
	}
}

// Save pushes the current transform and style.
func (p *PathState) Save() {
	p.ensureInit()
	p.stack = append(p.stack, p.cur)
}

// Restore pops the most recently saved transform and style. Unbalanced
// calls are ignored.
func (p *PathState) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Translate moves the origin by (x, y) in local space.
func (p *PathState) Translate(x, y float64) {
	p.ensureInit()
	p.cur.matrix = p.cur.matrix.Translated(x, y)
}

// Rotate rotates local space clockwise (y-down) by theta radians.
func (p *PathState) Rotate(theta float64) {
	p.ensureInit()
	p.cur.matrix = p.cur.matrix.Rotated(theta)
}

// Matrix returns the current transform.
func (p *PathState) Matrix() Affine {
	p.ensureInit()
	return p.cur.matrix
}

// BeginPath discards the current path.
func (p *PathState) BeginPath() {
	p.paths = p.paths[:0]
}

// MoveTo starts a new subpath at (x, y).
func (p *PathState) MoveTo(x, y float64) {
	p.ensureInit()
	p.paths = append(p.paths, Subpath{Points: []Vec2{p.cur.matrix.Apply(x, y)}})
}

// LineTo appends a segment to the current subpath, starting one if needed.
func (p *PathState) LineTo(x, y float64) {
	p.ensureInit()
	pt := p.cur.matrix.Apply(x, y)
	if len(p.paths) == 0 || p.paths[len(p.paths)-1].Closed {
		p.paths = append(p.paths, Subpath{})
	}
	last := &p.paths[len(p.paths)-1]
	last.Points = append(last.Points, pt)
}

// Arc appends a clockwise arc centered at (x, y). Like a canvas arc, it is
// joined to the current subpath by a straight segment.
func (p *PathState) Arc(x, y, radius, startAngle, endAngle float64) {
	p.ensureInit()
	if radius < 0 {
		radius = 0
	}
	sweep := endAngle - startAngle
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	devRadius := radius * p.cur.matrix.ScaleFactor()
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * math.Max(12, devRadius*2)))
	if n < 1 {
		n = 1
	}
	if n > 128 {
		n = 128
	}
	for i := 0; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		sin, cos := math.Sincos(a)
		p.LineTo(x+radius*cos, y+radius*sin)
	}
}

// ClosePath closes the current subpath.
func (p *PathState) ClosePath() {
	if len(p.paths) == 0 {
		return
	}
	p.paths[len(p.paths)-1].Closed = true
}

// Subpaths returns the flattened path. The slice is reused by the next
// BeginPath and must not be retained.
func (p *PathState) Subpaths() []Subpath {
	return p.paths
}

// SetFillColor sets the fill color.
func (p *PathState) SetFillColor(c Color) {
	p.ensureInit()
	p.cur.fill = c
}

// SetStrokeColor sets the stroke color.
func (p *PathState) SetStrokeColor(c Color) {
	p.ensureInit()
	p.cur.stroke = c
}

// SetLineWidth sets the stroke width in local units.
func (p *PathState) SetLineWidth(w float64) {
	p.ensureInit()
	p.cur.lineWidth = w
}

// SetGlow sets the halo radius and color for fills. The radius is in surface
// units and, like a canvas shadow blur, ignores the current transform.
func (p *PathState) SetGlow(radius float64, c Color) {
	p.ensureInit()
	if radius < 0 {
		radius = 0
	}
	p.cur.glowRadius = radius
	p.cur.glowColor = c
}

// FillColor returns the current fill color.
func (p *PathState) FillColor() Color {
	p.ensureInit()
	return p.cur.fill
}

// StrokeColor returns the current stroke color.
func (p *PathState) StrokeColor() Color {
	p.ensureInit()
	return p.cur.stroke
}

// DeviceLineWidth returns the line width scaled by the current transform.
func (p *PathState) DeviceLineWidth() float64 {
	p.ensureInit()
	return p.cur.lineWidth * p.cur.matrix.ScaleFactor()
}

// Glow returns the current halo radius and color.
func (p *PathState) Glow() (float64, Color) {
	p.ensureInit()
	return p.cur.glowRadius, p.cur.glowColor
}

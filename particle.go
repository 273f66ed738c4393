package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// TreeStyle is the resolved appearance of tree particles: TreeConfig with
// its colors parsed.
type TreeStyle struct {
	Size          Range
	Speed         Range
	AngleStep     float64
	StarSize      float64
	StarBase      float64
	StarAmplitude float64
	TwinkleRate   float64 // radians per millisecond of wall-clock time
	GlowRadius    float64
	Palette       []Color
	StarColor     Color
}

// NewTreeStyle parses the colors of cfg.
func NewTreeStyle(cfg TreeConfig) (TreeStyle, error) {
	st := TreeStyle{
		Size:          cfg.Size,
		Speed:         cfg.Speed,
		AngleStep:     cfg.AngleStep,
		StarSize:      cfg.StarSize,
		StarBase:      cfg.StarBase,
		StarAmplitude: cfg.StarAmplitude,
		TwinkleRate:   cfg.TwinkleRate,
		GlowRadius:    cfg.GlowRadius,
	}
	if len(cfg.Palette) == 0 {
		return st, fmt.Errorf("tree style: %w: palette is empty", ErrInvalidConfig)
	}
	for _, hex := range cfg.Palette {
		c, err := ParseColor(hex)
		if err != nil {
			return st, fmt.Errorf("tree style: %w", err)
		}
		st.Palette = append(st.Palette, c)
	}
	star, err := ParseColor(cfg.StarColor)
	if err != nil {
		return st, fmt.Errorf("tree style: %w", err)
	}
	st.StarColor = star
	return st, nil
}

// TreeParticle is a triangle (or the star) drifting toward its target.
type TreeParticle struct {
	X, Y   float64
	Size   float64
	Speed  float64
	Angle  float64
	Color  Color
	IsStar bool

	target *TargetPoint
	style  *TreeStyle
}

// NewTreeParticle spawns a particle at a random position in vp, bound to
// target for its whole lifetime.
func NewTreeParticle(target *TargetPoint, vp Viewport, style *TreeStyle, rng *rand.Rand) *TreeParticle {
	p := &TreeParticle{
		X:      rng.Float64() * float64(vp.Width),
		Y:      rng.Float64() * float64(vp.Height),
		Speed:  style.Speed.Random(rng),
		Angle:  rng.Float64() * 2 * math.Pi,
		IsStar: target.IsStar,
		target: target,
		style:  style,
	}
	if p.IsStar {
		p.Size = style.StarSize
		p.Color = style.StarColor
	} else {
		p.Size = style.Size.Random(rng)
		p.Color = style.Palette[rng.IntN(len(style.Palette))]
	}
	return p
}

// Target returns the point this particle converges on.
func (p *TreeParticle) Target() TargetPoint {
	return *p.target
}

// Update moves the particle a Speed fraction of the remaining distance on
// each axis, spins it, and for the star recomputes the twinkle size.
func (p *TreeParticle) Update(now time.Time) {
	p.X += (p.target.X - p.X) * p.Speed
	p.Y += (p.target.Y - p.Y) * p.Speed
	p.Angle += p.style.AngleStep

	if p.IsStar {
		p.Size = StarSizeAt(now, p.style)
	}
}

// StarSizeAt is the star's twinkle size at wall-clock time now.
func StarSizeAt(now time.Time, style *TreeStyle) float64 {
	ms := float64(now.UnixMilli())
	return style.StarBase + style.StarAmplitude*math.Sin(ms*style.TwinkleRate)
}

// Draw renders the particle at its position and angle.
func (p *TreeParticle) Draw(s Surface) {
	s.Save()
	defer s.Restore()

	s.Translate(p.X, p.Y)
	s.Rotate(p.Angle)
	s.SetFillColor(p.Color)

	if p.IsStar {
		s.SetGlow(p.style.GlowRadius, p.Color)
		starPath(s, p.Size, p.Size/2)
		s.Fill()
		return
	}

	s.BeginPath()
	s.MoveTo(0, -p.Size)
	s.LineTo(p.Size, p.Size)
	s.LineTo(-p.Size, p.Size)
	s.ClosePath()
	s.Fill()
}

// starPath builds a five-pointed star: ten vertices alternating between the
// outer and inner radius, outer tips 72 degrees apart, first tip pointing up.
func starPath(s Surface, outer, inner float64) {
	s.BeginPath()
	for i := range 10 {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		x, y := r*math.Cos(a), r*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
}

// Distance returns the Euclidean distance between two particles.
func (p *TreeParticle) Distance(o *TreeParticle) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

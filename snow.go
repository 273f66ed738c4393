package evergreen

import (
	"math"
	"math/rand/v2"
)

// SnowStyle is the snow pool configuration.
type SnowStyle struct {
	Size     Range
	SpeedX   Range
	SpeedY   Range
	Opacity  Range
	RespawnY float64
}

// NewSnowStyle extracts the per-flake part of cfg.
func NewSnowStyle(cfg SnowConfig) SnowStyle {
	return SnowStyle{
		Size:     cfg.Size,
		SpeedX:   cfg.SpeedX,
		SpeedY:   cfg.SpeedY,
		Opacity:  cfg.Opacity,
		RespawnY: cfg.RespawnY,
	}
}

// SnowParticle is a falling flake. Flakes leaving the bottom edge are
// recycled at the top, so the pool never changes size.
type SnowParticle struct {
	X, Y    float64
	Size    float64
	SpeedX  float64
	SpeedY  float64
	Opacity float64

	respawnY float64
}

// NewSnowParticle places a flake anywhere in vp.
func NewSnowParticle(vp Viewport, style SnowStyle, rng *rand.Rand) *SnowParticle {
	return &SnowParticle{
		X:        rng.Float64() * float64(vp.Width),
		Y:        rng.Float64() * float64(vp.Height),
		Size:     style.Size.Random(rng),
		SpeedX:   style.SpeedX.Random(rng),
		SpeedY:   style.SpeedY.Random(rng),
		Opacity:  style.Opacity.Random(rng),
		respawnY: style.RespawnY,
	}
}

// Update advances the flake and respawns it above the top edge at a random
// x once it falls past the bottom of vp.
func (f *SnowParticle) Update(vp Viewport, rng *rand.Rand) {
	f.X += f.SpeedX
	f.Y += f.SpeedY
	if f.Y > float64(vp.Height) {
		f.Y = f.respawnY
		f.X = rng.Float64() * float64(vp.Width)
	}
}

// Draw fills a white circle at the flake's opacity.
func (f *SnowParticle) Draw(s Surface) {
	s.SetFillColor(ColorWhite.WithAlpha(f.Opacity))
	s.BeginPath()
	s.Arc(f.X, f.Y, f.Size, 0, 2*math.Pi)
	s.Fill()
}

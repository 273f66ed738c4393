package evergreen

import (
	"math/rand/v2"
	"time"
)

// Scene is the top-level object that owns the viewport, the target points,
// and both particle pools. Tick is one frame of the card.
type Scene struct {
	shape     TreeShape
	treeStyle TreeStyle
	snowStyle SnowStyle
	snowCount int

	linkDistance float64
	linkWidth    float64

	rng *rand.Rand

	viewport Viewport
	targets  []TargetPoint
	tree     []*TreeParticle
	snow     []*SnowParticle
}

// NewScene builds an empty scene from cfg. Call Init before Tick.
func NewScene(cfg Config, rng *rand.Rand) (*Scene, error) {
	style, err := NewTreeStyle(cfg.Tree)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand()
	}
	return &Scene{
		shape:        NewTreeShape(cfg.Tree),
		treeStyle:    style,
		snowStyle:    NewSnowStyle(cfg.Snow),
		snowCount:    cfg.Snow.Count,
		linkDistance: cfg.Tree.LinkDistance,
		linkWidth:    cfg.Tree.LinkWidth,
		rng:          rng,
	}, nil
}

// Init discards all state and rebuilds it for vp: fresh targets, one tree
// particle per target, and a full snow pool.
func (s *Scene) Init(vp Viewport) {
	s.viewport = vp
	s.targets = s.shape.Generate(vp, s.rng)

	s.tree = make([]*TreeParticle, len(s.targets))
	for i := range s.targets {
		s.tree[i] = NewTreeParticle(&s.targets[i], vp, &s.treeStyle, s.rng)
	}

	s.snow = make([]*SnowParticle, s.snowCount)
	for i := range s.snow {
		s.snow[i] = NewSnowParticle(vp, s.snowStyle, s.rng)
	}
}

// Populated reports whether Init has run.
func (s *Scene) Populated() bool {
	return s.tree != nil
}

// Viewport returns the size the scene was last initialized for.
func (s *Scene) Viewport() Viewport { return s.viewport }

// Targets returns the current target points. The slice MUST NOT be mutated.
func (s *Scene) Targets() []TargetPoint { return s.targets }

// TreeParticles returns the tree particles, index-aligned with Targets.
func (s *Scene) TreeParticles() []*TreeParticle { return s.tree }

// SnowParticles returns the snow pool.
func (s *Scene) SnowParticles() []*SnowParticle { return s.snow }

// Shape returns the tree geometry.
func (s *Scene) Shape() TreeShape { return s.shape }

// Tick runs one frame: clear, then update and draw each tree particle
// followed by its links to every later particle, then the snow.
func (s *Scene) Tick(surf Surface, now time.Time) {
	surf.Clear()

	for i, p := range s.tree {
		p.Update(now)
		p.Draw(surf)
		s.drawLinks(surf, i)
	}

	for _, f := range s.snow {
		f.Update(s.viewport, s.rng)
		f.Draw(surf)
	}
}

// drawLinks strokes a line from particle i to every particle j > i closer
// than the link distance, in particle i's color.
func (s *Scene) drawLinks(surf Surface, i int) {
	p := s.tree[i]
	for _, o := range s.tree[i+1:] {
		if p.Distance(o) >= s.linkDistance {
			continue
		}
		surf.SetStrokeColor(p.Color)
		surf.SetLineWidth(s.linkWidth)
		surf.BeginPath()
		surf.MoveTo(p.X, p.Y)
		surf.LineTo(o.X, o.Y)
		surf.Stroke()
	}
}

package evergreen

import "math/rand/v2"

// Viewport is the size of the drawing area in surface units.
type Viewport struct {
	Width, Height int
}

// TargetPoint is a destination a tree particle drifts toward.
type TargetPoint struct {
	X, Y   float64
	IsStar bool
}

// Triangle is one tree layer. Apex is the top corner, Left and Right the
// base corners.
type Triangle struct {
	Apex, Left, Right Vec2
}

// TreeShape describes the tree silhouette relative to the viewport.
type TreeShape struct {
	BaseWidth   float64 // tree base width as a fraction of viewport width
	Height      float64 // tree height as a fraction of viewport height
	Anchor      float64 // baseline of the bottom layer as a fraction of viewport height
	LayerHeight float64 // layer height as a fraction of the tree height
	Layers      []LayerSpec
}

// DefaultTreeShape returns the three-layer tree.
func DefaultTreeShape() TreeShape {
	return NewTreeShape(DefaultConfig().Tree)
}

// NewTreeShape extracts the geometry part of a tree config.
func NewTreeShape(cfg TreeConfig) TreeShape {
	layers := make([]LayerSpec, len(cfg.Layers))
	copy(layers, cfg.Layers)
	return TreeShape{
		BaseWidth:   cfg.BaseWidth,
		Height:      cfg.Height,
		Anchor:      cfg.Anchor,
		LayerHeight: cfg.LayerHeight,
		Layers:      layers,
	}
}

// PointCount is the number of points Generate returns: every layer sample
// plus the star.
func (s TreeShape) PointCount() int {
	n := 1
	for _, l := range s.Layers {
		n += l.Count
	}
	return n
}

// LayerTriangle returns the triangle of layer i (0 is the bottom layer).
func (s TreeShape) LayerTriangle(vp Viewport, i int) Triangle {
	w, h := float64(vp.Width), float64(vp.Height)
	l := s.Layers[i]

	cx := w / 2
	baseWidth := s.BaseWidth * w * l.Scale
	baseY := s.Anchor*h - l.Offset*s.Height*h
	apexY := baseY - s.LayerHeight*s.Height*h

	return Triangle{
		Apex:  Vec2{cx, apexY},
		Left:  Vec2{cx - baseWidth/2, baseY},
		Right: Vec2{cx + baseWidth/2, baseY},
	}
}

// StarPoint returns the apex of the topmost layer.
func (s TreeShape) StarPoint(vp Viewport) Vec2 {
	if len(s.Layers) == 0 {
		return Vec2{float64(vp.Width) / 2, s.Anchor * float64(vp.Height)}
	}
	return s.LayerTriangle(vp, len(s.Layers)-1).Apex
}

// Generate samples every layer bottom to top and appends the star. Sample
// positions are random; the count and the star position are not.
func (s TreeShape) Generate(vp Viewport, rng *rand.Rand) []TargetPoint {
	points := make([]TargetPoint, 0, s.PointCount())
	for i, l := range s.Layers {
		tri := s.LayerTriangle(vp, i)
		for range l.Count {
			p := SampleTriangle(tri, rng.Float64(), rng.Float64())
			points = append(points, TargetPoint{X: p.X, Y: p.Y})
		}
	}
	star := s.StarPoint(vp)
	return append(points, TargetPoint{X: star.X, Y: star.Y, IsStar: true})
}

// GenerateTargets generates the default tree for vp.
func GenerateTargets(vp Viewport, rng *rand.Rand) []TargetPoint {
	return DefaultTreeShape().Generate(vp, rng)
}

// SampleTriangle maps r1, r2 in [0, 1) to a point inside tri. Pairs above the
// diagonal are folded back (r = 1 - r), so uniform inputs give a uniform
// distribution over the triangle's area.
func SampleTriangle(tri Triangle, r1, r2 float64) Vec2 {
	r1, r2 = FoldBarycentric(r1, r2)
	return tri.Left.
		Add(tri.Right.Sub(tri.Left).Scale(r1)).
		Add(tri.Apex.Sub(tri.Left).Scale(r2))
}

// FoldBarycentric reflects (r1, r2) into the lower-left half of the unit
// square when r1 + r2 > 1.
func FoldBarycentric(r1, r2 float64) (float64, float64) {
	if r1+r2 > 1 {
		return 1 - r1, 1 - r2
	}
	return r1, r2
}

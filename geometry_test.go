package evergreen

import (
	"testing"
)

// inTriangle reports whether p lies inside tri (edges included), using the
// sign of the three edge cross products.
func inTriangle(tri Triangle, p Vec2) bool {
	cross := func(a, b, c Vec2) float64 {
		return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	}
	const tol = 1e-9
	d1 := cross(tri.Left, tri.Right, p)
	d2 := cross(tri.Right, tri.Apex, p)
	d3 := cross(tri.Apex, tri.Left, p)
	hasNeg := d1 < -tol || d2 < -tol || d3 < -tol
	hasPos := d1 > tol || d2 > tol || d3 > tol
	return !(hasNeg && hasPos)
}

func TestGenerateCountAndSingleStar(t *testing.T) {
	viewports := []Viewport{
		{800, 600},
		{1920, 1080},
		{1, 1},
		{0, 0},
		{300, 2000},
	}
	for _, vp := range viewports {
		points := GenerateTargets(vp, testRand())
		if len(points) != 181 {
			t.Errorf("%v: %d points, want 181", vp, len(points))
		}
		stars := 0
		for _, p := range points {
			if p.IsStar {
				stars++
			}
		}
		if stars != 1 {
			t.Errorf("%v: %d star points, want 1", vp, stars)
		}
		if !points[len(points)-1].IsStar {
			t.Errorf("%v: star is not the last point", vp)
		}
	}
}

func TestPointCountMatchesLayers(t *testing.T) {
	shape := DefaultTreeShape()
	if got := shape.PointCount(); got != 80+60+40+1 {
		t.Errorf("PointCount() = %d, want 181", got)
	}
}

func TestGeneratedPointsInsideTheirLayer(t *testing.T) {
	shape := DefaultTreeShape()
	vp := Viewport{1024, 768}
	points := shape.Generate(vp, testRand())

	i := 0
	for layer, spec := range shape.Layers {
		tri := shape.LayerTriangle(vp, layer)
		for range spec.Count {
			p := points[i]
			if p.IsStar {
				t.Fatalf("point %d flagged as star inside layer %d", i, layer)
			}
			if !inTriangle(tri, Vec2{p.X, p.Y}) {
				t.Errorf("point %d (%v, %v) outside layer %d triangle %v", i, p.X, p.Y, layer, tri)
			}
			i++
		}
	}
}

func TestLayerTriangleFormulas(t *testing.T) {
	cfg := DefaultConfig().Tree
	shape := NewTreeShape(cfg)
	vp := Viewport{800, 600}
	w, h := float64(vp.Width), float64(vp.Height)

	baseWidth := cfg.BaseWidth * w
	totalHeight := cfg.Height * h
	startY := cfg.Anchor * h

	for i, l := range cfg.Layers {
		tri := shape.LayerTriangle(vp, i)
		lw := baseWidth * l.Scale
		baseY := startY - l.Offset*totalHeight

		assertNear(t, "apex.x", tri.Apex.X, w/2)
		assertNear(t, "apex.y", tri.Apex.Y, baseY-cfg.LayerHeight*totalHeight)
		assertNear(t, "left.x", tri.Left.X, w/2-lw/2)
		assertNear(t, "left.y", tri.Left.Y, baseY)
		assertNear(t, "right.x", tri.Right.X, w/2+lw/2)
		assertNear(t, "right.y", tri.Right.Y, baseY)
	}
}

func TestBottomLayerApexOn800x600(t *testing.T) {
	tri := DefaultTreeShape().LayerTriangle(Viewport{800, 600}, 0)
	// Tree height 0.6*600; each layer is 0.4 of that, standing on the
	// 0.8*600 baseline.
	assertNear(t, "apex.x", tri.Apex.X, 800.0/2)
	assertNear(t, "apex.y", tri.Apex.Y, 0.8*600-0.4*(0.6*600))
	assertNear(t, "left.x", tri.Left.X, 400-0.6*800/2)
	assertNear(t, "right.x", tri.Right.X, 400+0.6*800/2)
}

func TestStarAtTopLayerApex(t *testing.T) {
	shape := DefaultTreeShape()
	vp := Viewport{800, 600}
	points := shape.Generate(vp, testRand())
	star := points[len(points)-1]
	apex := shape.LayerTriangle(vp, len(shape.Layers)-1).Apex
	assertNear(t, "star.x", star.X, apex.X)
	assertNear(t, "star.y", star.Y, apex.Y)
	// The top layer's apex is the top of the whole tree.
	assertNear(t, "tree top", star.Y, 0.8*600-0.6*600)
}

func TestRegenerateKeepsCountAndStar(t *testing.T) {
	vp := Viewport{640, 480}
	a := GenerateTargets(vp, testRand())
	b := GenerateTargets(vp, NewRand())

	if len(a) != len(b) {
		t.Fatalf("counts differ: %d vs %d", len(a), len(b))
	}
	if a[len(a)-1] != b[len(b)-1] {
		t.Errorf("star moved: %v vs %v", a[len(a)-1], b[len(b)-1])
	}
}

func TestDegenerateViewportCollapsesToOrigin(t *testing.T) {
	for _, p := range GenerateTargets(Viewport{}, testRand()) {
		if p.X != 0 || p.Y != 0 {
			t.Fatalf("point %v on 0x0 viewport, want origin", p)
		}
	}
}

func TestFoldBarycentric(t *testing.T) {
	tests := []struct {
		name         string
		r1, r2       float64
		want1, want2 float64
	}{
		{"below diagonal", 0.2, 0.3, 0.2, 0.3},
		{"on diagonal", 0.5, 0.5, 0.5, 0.5},
		{"above diagonal", 0.9, 0.6, 0.1, 0.4},
		{"origin", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g1, g2 := FoldBarycentric(tt.r1, tt.r2)
			assertNear(t, "r1", g1, tt.want1)
			assertNear(t, "r2", g2, tt.want2)
			if g1 < 0 || g2 < 0 || g1+g2 > 1+epsilon {
				t.Errorf("folded (%v, %v) outside the unit triangle", g1, g2)
			}
		})
	}
}

func TestSampleTriangleCorners(t *testing.T) {
	tri := Triangle{Apex: Vec2{5, 0}, Left: Vec2{0, 10}, Right: Vec2{10, 10}}
	p := SampleTriangle(tri, 0, 0)
	assertNear(t, "left.x", p.X, 0)
	assertNear(t, "left.y", p.Y, 10)
	p = SampleTriangle(tri, 0, 1)
	assertNear(t, "apex.x", p.X, 5)
	assertNear(t, "apex.y", p.Y, 0)
	p = SampleTriangle(tri, 1, 0)
	assertNear(t, "right.x", p.X, 10)
	assertNear(t, "right.y", p.Y, 10)
}

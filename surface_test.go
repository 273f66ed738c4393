package evergreen

import (
	"math"
	"testing"
)

func TestPathStateDefaults(t *testing.T) {
	var p PathState
	assertMatrix(t, "matrix", p.Matrix(), IdentityAffine)
	if w := p.DeviceLineWidth(); w != 1 {
		t.Errorf("line width = %v, want 1", w)
	}
	if r, _ := p.Glow(); r != 0 {
		t.Errorf("glow = %v, want 0", r)
	}
}

func TestPathStateSaveRestore(t *testing.T) {
	var p PathState
	p.SetFillColor(Color{1, 0, 0, 1})
	p.Save()
	p.Translate(5, 5)
	p.SetFillColor(Color{0, 1, 0, 1})
	p.SetGlow(15, Color{1, 1, 0, 1})
	p.Restore()

	assertMatrix(t, "matrix", p.Matrix(), IdentityAffine)
	if c := p.FillColor(); c != (Color{1, 0, 0, 1}) {
		t.Errorf("fill = %v, want red", c)
	}
	if r, _ := p.Glow(); r != 0 {
		t.Errorf("glow = %v after Restore, want 0", r)
	}
}

func TestPathStateUnbalancedRestore(t *testing.T) {
	var p PathState
	p.Translate(3, 4)
	p.Restore()
	assertMatrix(t, "matrix", p.Matrix(), Affine{1, 0, 0, 1, 3, 4})
}

func TestPathStateTransformsPoints(t *testing.T) {
	var p PathState
	p.Translate(100, 100)
	p.Rotate(math.Pi / 2)
	p.BeginPath()
	p.MoveTo(10, 0)
	p.LineTo(0, 10)

	paths := p.Subpaths()
	if len(paths) != 1 || len(paths[0].Points) != 2 {
		t.Fatalf("paths = %v, want one subpath of two points", paths)
	}
	assertNear(t, "p0.x", paths[0].Points[0].X, 100)
	assertNear(t, "p0.y", paths[0].Points[0].Y, 110)
	assertNear(t, "p1.x", paths[0].Points[1].X, 90)
	assertNear(t, "p1.y", paths[0].Points[1].Y, 100)
}

func TestPathStateMoveToStartsSubpath(t *testing.T) {
	var p PathState
	p.BeginPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.ClosePath()
	p.MoveTo(5, 5)
	p.LineTo(6, 5)

	paths := p.Subpaths()
	if len(paths) != 2 {
		t.Fatalf("subpaths = %d, want 2", len(paths))
	}
	if !paths[0].Closed || paths[1].Closed {
		t.Errorf("closed = %v, %v, want true, false", paths[0].Closed, paths[1].Closed)
	}
}

func TestPathStateBeginPathDiscards(t *testing.T) {
	var p PathState
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	p.BeginPath()
	if n := len(p.Subpaths()); n != 0 {
		t.Errorf("subpaths = %d after BeginPath, want 0", n)
	}
}

func TestArcFullCircleOnRadius(t *testing.T) {
	var p PathState
	p.BeginPath()
	p.Arc(50, 40, 3, 0, 2*math.Pi)

	paths := p.Subpaths()
	if len(paths) != 1 {
		t.Fatalf("subpaths = %d, want 1", len(paths))
	}
	pts := paths[0].Points
	if len(pts) < 13 {
		t.Errorf("arc flattened to %d points, want at least 13", len(pts))
	}
	for i, pt := range pts {
		if d := math.Hypot(pt.X-50, pt.Y-40); math.Abs(d-3) > 1e-6 {
			t.Errorf("point %d at distance %v, want 3", i, d)
		}
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Hypot(first.X-last.X, first.Y-last.Y) > 1e-6 {
		t.Errorf("full circle not closed: first %v last %v", first, last)
	}
}

func TestDeviceLineWidthFollowsTransform(t *testing.T) {
	var p PathState
	p.SetLineWidth(0.5)
	p.Rotate(0.7)
	assertNear(t, "rotated width", p.DeviceLineWidth(), 0.5)
}

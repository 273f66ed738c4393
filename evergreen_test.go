package evergreen

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// drawOp is one Clear, Fill or Stroke captured by recordingSurface.
type drawOp struct {
	kind      string
	color     Color
	glow      float64
	lineWidth float64
	paths     []Subpath
}

// recordingSurface is a Surface that records what would have been drawn.
type recordingSurface struct {
	PathState
	ops []drawOp
}

func (r *recordingSurface) Clear() {
	r.ResetState()
	r.ops = append(r.ops, drawOp{kind: "clear"})
}

func (r *recordingSurface) Fill() {
	glow, _ := r.Glow()
	r.ops = append(r.ops, drawOp{kind: "fill", color: r.FillColor(), glow: glow, paths: clonePaths(r.Subpaths())})
}

func (r *recordingSurface) Stroke() {
	r.ops = append(r.ops, drawOp{kind: "stroke", color: r.StrokeColor(), lineWidth: r.DeviceLineWidth(), paths: clonePaths(r.Subpaths())})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func clonePaths(src []Subpath) []Subpath {
	out := make([]Subpath, len(src))
	for i, sp := range src {
		out[i] = Subpath{Points: append([]Vec2(nil), sp.Points...), Closed: sp.Closed}
	}
	return out
}

var _ Surface = (*recordingSurface)(nil)

// --- Color ---

func TestColorRGBAPremultiplies(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 0.5}.RGBA()
	if a != 0x7fff {
		t.Errorf("a = %#x, want 0x7fff", a)
	}
	if r != 0x7fff {
		t.Errorf("r = %#x, want 0x7fff", r)
	}
	if g != 0x3fff {
		t.Errorf("g = %#x, want 0x3fff", g)
	}
	if b != 0 {
		t.Errorf("b = %#x, want 0", b)
	}
}

func TestColorRGBAClamps(t *testing.T) {
	r, _, _, a := Color{2, 0, 0, 3}.RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("r, a = %#x, %#x, want 0xffff, 0xffff", r, a)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    Color
		wantErr bool
	}{
		{"long form", "#ff0000", Color{1, 0, 0, 1}, false},
		{"short form", "#0f0", Color{0, 1, 0, 1}, false},
		{"missing hash", "ff0000", Color{}, true},
		{"garbage", "#zzzzzz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) err = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

// --- Range ---

func TestRangeRandomWithinBounds(t *testing.T) {
	rng := testRand()
	r := Range{0.02, 0.05}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if !r.Contains(v) {
			t.Fatalf("Random() = %v, outside [%v, %v)", v, r.Min, r.Max)
		}
	}
}

func TestRangeRandomDegenerate(t *testing.T) {
	r := Range{3, 3}
	if got := r.Random(testRand()); got != 3 {
		t.Errorf("Random() = %v, want 3", got)
	}
}

func TestNewRandVaries(t *testing.T) {
	a := NewRand()
	time.Sleep(time.Millisecond)
	b := NewRand()
	if a.Uint64() == b.Uint64() {
		t.Error("two wall-clock seeded generators produced the same first value")
	}
}

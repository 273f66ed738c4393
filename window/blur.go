package window

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work, so no shader is needed.
//
// Radius may be fractional: the blur for the next whole radius is blended
// over the sharp source by the fractional part, which keeps a tweened radius
// from popping between pass counts.
type BlurFilter struct {
	Radius float64
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius float64) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// blurPasses returns the number of half-size passes for a radius: log2 of
// the whole radius, minimum 1.
func blurPasses(radius float64) int {
	whole := math.Ceil(radius)
	if whole <= 1 {
		return 1
	}
	return max(int(math.Ceil(math.Log2(whole))), 1)
}

// blurMix is the opacity of the blurred image over the sharp one.
func blurMix(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return radius / math.Ceil(radius)
}

// Apply renders src into dst. A radius of zero copies.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(src, op)
	if f.Radius <= 0 {
		return
	}
	f.blurInto(src, dst, blurMix(f.Radius), ebiten.BlendSourceOver)
}

// Halo draws only the blurred src onto dst with the given blend, leaving
// whatever dst already holds underneath.
func (f *BlurFilter) Halo(src, dst *ebiten.Image, blend ebiten.Blend) {
	if f.Radius <= 0 {
		return
	}
	f.blurInto(src, dst, 1, blend)
}

func (f *BlurFilter) blurInto(src, dst *ebiten.Image, alpha float64, blend ebiten.Blend) {
	op := &f.imgOp
	passes := blurPasses(f.Radius)
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale: each pass is half the previous size.
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.drawScaled(current, f.temps[i])
		current = f.temps[i]
	}

	// Upscale back through the chain.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.drawScaled(current, f.temps[i])
		current = f.temps[i]
	}

	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(current.Bounds().Dx())
	sh := float64(current.Bounds().Dy())
	op.GeoM.Scale(float64(dst.Bounds().Dx())/sw, float64(dst.Bounds().Dy())/sh)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	op.Blend = blend
	dst.DrawImage(current, op)
}

func (f *BlurFilter) drawScaled(from, to *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	sw := float64(from.Bounds().Dx())
	sh := float64(from.Bounds().Dy())
	op.GeoM.Scale(float64(to.Bounds().Dx())/sw, float64(to.Bounds().Dy())/sh)
	op.Filter = ebiten.FilterLinear
	to.DrawImage(from, op)
}

// Dispose releases the intermediate images.
func (f *BlurFilter) Dispose() {
	for _, img := range f.temps {
		if img != nil {
			img.Deallocate()
		}
	}
	f.temps = nil
}

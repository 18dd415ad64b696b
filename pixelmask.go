package bramble

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PixelMask holds the alpha channel of a texture. A pixel is solid when its
// alpha is strictly greater than Threshold.
type PixelMask struct {
	Threshold uint8
	width     int
	height    int
	alpha     []uint8 // row-major, len = width * height
}

// NewPixelMask creates a mask from the alpha channel of img.
func NewPixelMask(img image.Image, threshold uint8) *PixelMask {
	b := img.Bounds()
	m := &PixelMask{
		Threshold: threshold,
		width:     b.Dx(),
		height:    b.Dy(),
		alpha:     make([]uint8, b.Dx()*b.Dy()),
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			m.alpha[y*m.width+x] = c.A
		}
	}
	return m
}

// NewPixelMaskFromEbiten creates a mask from an Ebitengine image. Pixels are
// read back from the GPU, so this must be called after the game loop has
// started (from Update or Draw).
func NewPixelMaskFromEbiten(img *ebiten.Image, threshold uint8) *PixelMask {
	b := img.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	img.ReadPixels(pix)
	m := &PixelMask{
		Threshold: threshold,
		width:     b.Dx(),
		height:    b.Dy(),
		alpha:     make([]uint8, b.Dx()*b.Dy()),
	}
	for i := range m.alpha {
		m.alpha[i] = pix[i*4+3]
	}
	return m
}

// Width returns the mask width in pixels.
func (m *PixelMask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *PixelMask) Height() int { return m.height }

// Alpha returns the alpha of the pixel at (x, y), or 0 outside the mask.
func (m *PixelMask) Alpha(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.alpha[y*m.width+x]
}

// SetAlpha overwrites the alpha of the pixel at (x, y). Out-of-range pixels
// are ignored.
func (m *PixelMask) SetAlpha(x, y int, a uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.alpha[y*m.width+x] = a
}

// SolidRelative reports whether the pixel at mask coordinates (x, y) is solid.
func (m *PixelMask) SolidRelative(x, y int) bool {
	return m.Alpha(x, y) > m.Threshold
}

// SolidAt reports whether the world-space point (x, y) falls on a solid
// pixel of a mask whose top-left corner sits at (ox, oy).
func (m *PixelMask) SolidAt(ox, oy, x, y float64) bool {
	return m.SolidRelative(int(math.Floor(x-ox)), int(math.Floor(y-oy)))
}

// SolidRect reports whether any solid pixel lies in the world-space
// rectangle r, for a mask whose top-left corner sits at (ox, oy).
func (m *PixelMask) SolidRect(ox, oy float64, r Rect) bool {
	x0 := max(int(math.Floor(r.X-ox)), 0)
	y0 := max(int(math.Floor(r.Y-oy)), 0)
	x1 := min(int(math.Ceil(r.X+r.Width-ox)), m.width)
	y1 := min(int(math.Ceil(r.Y+r.Height-oy)), m.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.alpha[y*m.width+x] > m.Threshold {
				return true
			}
		}
	}
	return false
}

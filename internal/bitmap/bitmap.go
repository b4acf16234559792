package bitmap

import (
	"image"
	"image/color"
)

// Color is the colour of a bitonal pixel.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Bitmap is a bitonal raster with its origin at (0, 0).
type Bitmap struct {
	w, h int
	pix  []uint8
}

// New returns a white bitmap of the given size.
func New(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Bitmap{w: w, h: h, pix: make([]uint8, w*h)}
}

// NewFilled returns a bitmap of the given size with every pixel set to c.
func NewFilled(w, h int, c Color) *Bitmap {
	b := New(w, h)
	if c == Black {
		for i := range b.pix {
			b.pix[i] = 1
		}
	}
	return b
}

// FromGray binarizes a grayscale raster: pixels darker than threshold become
// black, everything else white.
func FromGray(g *image.Gray, threshold uint8) *Bitmap {
	r := g.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := 0; y < b.h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+b.w]
		out := b.pix[y*b.w : (y+1)*b.w]
		for x, v := range row {
			if v < threshold {
				out[x] = 1
			}
		}
	}
	return b
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.w }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.h }

// Bounds returns the rectangle (0, 0)-(w, h).
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// IsNull reports whether the bitmap has no pixels.
func (b *Bitmap) IsNull() bool { return b == nil || b.w == 0 || b.h == 0 }

// At returns the colour at (x, y). Coordinates outside the bitmap are white.
func (b *Bitmap) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return White
	}
	return Color(b.pix[y*b.w+x])
}

// IsBlack reports whether (x, y) is a black pixel.
func (b *Bitmap) IsBlack(x, y int) bool { return b.At(x, y) == Black }

// Set paints (x, y). Coordinates outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.pix[y*b.w+x] = uint8(c)
}

// Fill paints every pixel of r (clipped to the bitmap) with c.
func (b *Bitmap) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.pix[y*b.w+r.Min.X : y*b.w+r.Max.X]
		for i := range row {
			row[i] = uint8(c)
		}
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{w: b.w, h: b.h, pix: make([]uint8, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// Crop copies r (clipped to the bitmap) into a new bitmap whose origin is r.Min.
func (b *Bitmap) Crop(r image.Rectangle) *Bitmap {
	r = r.Intersect(b.Bounds())
	c := New(r.Dx(), r.Dy())
	for y := 0; y < c.h; y++ {
		src := b.pix[(r.Min.Y+y)*b.w+r.Min.X : (r.Min.Y+y)*b.w+r.Max.X]
		copy(c.pix[y*c.w:(y+1)*c.w], src)
	}
	return c
}

// CountBlack returns the number of black pixels.
func (b *Bitmap) CountBlack() int {
	n := 0
	for _, v := range b.pix {
		n += int(v)
	}
	return n
}

// CountBlackIn returns the number of black pixels inside r.
func (b *Bitmap) CountBlackIn(r image.Rectangle) int {
	r = r.Intersect(b.Bounds())
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, v := range b.pix[y*b.w+r.Min.X : y*b.w+r.Max.X] {
			n += int(v)
		}
	}
	return n
}

// BlackBounds returns the bounding box of the black pixels, or an empty
// rectangle when there are none.
func (b *Bitmap) BlackBounds() image.Rectangle {
	minX, minY, maxX, maxY := b.w, b.h, -1, -1
	for y := 0; y < b.h; y++ {
		row := b.pix[y*b.w : (y+1)*b.w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Equal reports whether two bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i, v := range b.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// Gray renders the bitmap as a grayscale image (black 0, white 255).
func (b *Bitmap) Gray() *image.Gray {
	g := image.NewGray(b.Bounds())
	for i, v := range b.pix {
		if v == 0 {
			g.Pix[i] = 0xff
		}
	}
	return g
}

// imageView adapts a Bitmap to image.Image without copying.
type imageView struct{ b *Bitmap }

func (v imageView) ColorModel() color.Model { return color.GrayModel }
func (v imageView) Bounds() image.Rectangle { return v.b.Bounds() }
func (v imageView) At(x, y int) color.Color {
	if v.b.At(x, y) == Black {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xff}
}

// Image returns a read-only image.Image view of the bitmap.
func (b *Bitmap) Image() image.Image { return imageView{b} }

// And returns the pixels black in both a and b. Sizes must match.
func And(a, b *Bitmap) *Bitmap {
	return combine(a, b, func(x, y uint8) uint8 { return x & y })
}

// Or returns the pixels black in a or b. Sizes must match.
func Or(a, b *Bitmap) *Bitmap {
	return combine(a, b, func(x, y uint8) uint8 { return x | y })
}

// Subtract returns the pixels black in a but not in b. Sizes must match.
func Subtract(a, b *Bitmap) *Bitmap {
	return combine(a, b, func(x, y uint8) uint8 { return x &^ y })
}

func combine(a, b *Bitmap, op func(x, y uint8) uint8) *Bitmap {
	if a.w != b.w || a.h != b.h {
		panic("bitmap: size mismatch")
	}
	out := New(a.w, a.h)
	for i := range out.pix {
		out.pix[i] = op(a.pix[i], b.pix[i])
	}
	return out
}

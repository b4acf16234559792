package contentbox

import (
	"image"
	"image/color"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// Synthetic glyphs are hollow squares: they wind like real letters.
const (
	glyphSize   = 12
	glyphStroke = 2
	glyphPitch  = 15
)

// whitePage returns a white grayscale page.
func whitePage(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = 0xff
	}
	return g
}

// fillGray paints r with level v.
func fillGray(g *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(g.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// drawGlyphs fills block with a grid of black hollow squares, scaled by
// scale, and returns the bounding box of the ink.
func drawGlyphs(g *image.Gray, block image.Rectangle, scale int) image.Rectangle {
	size, stroke, pitch := glyphSize*scale, glyphStroke*scale, glyphPitch*scale
	ink := image.Rectangle{}
	for y := block.Min.Y; y+size <= block.Max.Y; y += pitch {
		for x := block.Min.X; x+size <= block.Max.X; x += pitch {
			r := image.Rect(x, y, x+size, y+size)
			fillGray(g, r, 0)
			fillGray(g, r.Inset(stroke), 0xff)
			ink = ink.Union(r)
		}
	}
	return ink
}

// glyphBitmap returns a bitmap holding a glyph block.
func glyphBitmap(w, h int, block image.Rectangle) (*bitmap.Bitmap, image.Rectangle) {
	g := whitePage(w, h)
	ink := drawGlyphs(g, block, 1)
	return bitmap.FromGray(g, 128), ink
}

// hollow returns a size x size outline with the given stroke.
func hollow(size, stroke int) *bitmap.Bitmap {
	b := bitmap.NewFilled(size, size, bitmap.Black)
	b.Fill(image.Rect(stroke, stroke, size-stroke, size-stroke), bitmap.White)
	return b
}

// paste copies the black pixels of src into dst at p.
func paste(dst, src *bitmap.Bitmap, p image.Point) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if src.IsBlack(x, y) {
				dst.Set(p.X+x, p.Y+y, bitmap.Black)
			}
		}
	}
}

// firstComponent returns the first 8-connected component of b.
func firstComponent(b *bitmap.Bitmap) bitmap.Component {
	sc := bitmap.NewScanner(b, bitmap.Conn8)
	sc.Next()
	return sc.Component()
}

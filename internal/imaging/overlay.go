package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultOverlayColor outlines the content box when no colour is given.
const DefaultOverlayColor = "#ff0000"

// OverlayOptions controls how ContentOverlay marks the content box.
type OverlayOptions struct {
	// Color is the outline colour as "#rgb" or "#rrggbb". The leading '#'
	// is optional.
	Color string

	// Thickness is the outline width in pixels, drawn inside the box.
	Thickness int

	// DimOutside washes out everything outside the box so that the rejected
	// shadows and margins stand apart from the kept content.
	DimOutside bool

	// ShowCoordinates labels the top-left and bottom-right corners.
	ShowCoordinates bool
}

// ContentOverlay returns a copy of img with box outlined. An empty box
// leaves the image unmarked except for dimming, which then covers the whole
// page.
func ContentOverlay(img image.Image, box image.Rectangle, opts OverlayOptions) (*image.RGBA, error) {
	outline, err := parseHexColor(opts.Color)
	if err != nil {
		return nil, err
	}
	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = 1
	}

	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	box = box.Intersect(bounds)

	if opts.DimOutside {
		wash := image.NewUniform(color.NRGBA{255, 255, 255, 160})
		for _, r := range outside(bounds, box) {
			draw.Draw(result, r, wash, image.Point{}, draw.Over)
		}
	}

	if box.Empty() {
		return result, nil
	}

	pen := image.NewUniform(outline)
	for i := 0; i < thickness; i++ {
		r := box.Inset(i)
		if r.Empty() {
			break
		}
		draw.Draw(result, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), pen, image.Point{}, draw.Src)
		draw.Draw(result, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), pen, image.Point{}, draw.Src)
		draw.Draw(result, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), pen, image.Point{}, draw.Src)
		draw.Draw(result, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), pen, image.Point{}, draw.Src)
	}

	if opts.ShowCoordinates {
		fg := color.RGBA{255, 255, 255, 255}
		bg := color.RGBA{0, 0, 0, 180}
		drawLabel(result, box.Min.X+thickness+2, box.Min.Y+thickness+2, fmt.Sprintf("%d,%d", box.Min.X, box.Min.Y), fg, bg)
		end := fmt.Sprintf("%d,%d", box.Max.X, box.Max.Y)
		drawLabel(result, box.Max.X-thickness-2-len(end)*labelCharWidth, box.Max.Y-thickness-2-labelHeight, end, fg, bg)
	}

	return result, nil
}

// outside splits bounds minus box into up to four rectangles.
func outside(bounds, box image.Rectangle) []image.Rectangle {
	if box.Empty() {
		return []image.Rectangle{bounds}
	}
	return []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, box.Min.Y),
		image.Rect(bounds.Min.X, box.Max.Y, bounds.Max.X, bounds.Max.Y),
		image.Rect(bounds.Min.X, box.Min.Y, box.Min.X, box.Max.Y),
		image.Rect(box.Max.X, box.Min.Y, bounds.Max.X, box.Max.Y),
	}
}

// parseHexColor parses a colour like "#ff0000" or "f00". An empty string
// selects DefaultOverlayColor.
func parseHexColor(hex string) (color.RGBA, error) {
	if hex == "" {
		hex = DefaultOverlayColor
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Label metrics of basicfont.Face7x13.
const (
	labelCharWidth = 7
	labelHeight    = 13
	labelAscent    = 11
)

// drawLabel writes text with its top-left corner at (x, y) on a translucent
// background. Text running past the image edges is clipped.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	r := image.Rect(x-1, y-1, x+len(text)*labelCharWidth+1, y+labelHeight)
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + labelAscent)},
	}
	d.DrawString(text)
}

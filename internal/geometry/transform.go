package geometry

import (
	"image"
	"math"
)

// DPI is a physical pixel density per axis, in dots per inch.
type DPI struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether both densities are positive.
func (d DPI) Valid() bool { return d.X > 0 && d.Y > 0 }

// ImageTransform describes how a source image is turned into the virtual
// page the rest of the system works with: each axis is first scaled to a
// common density, then the result is rotated about its centre and shifted so
// that it starts at the origin.
type ImageTransform struct {
	origRect     image.Rectangle
	origDPI      DPI
	preScaledDPI DPI
	rotation     float64
}

// NewImageTransform returns the transform of an unrotated image. Sources
// with different horizontal and vertical density are pre-scaled to the larger
// of the two so that pixels become square.
func NewImageTransform(origRect image.Rectangle, origDPI DPI) ImageTransform {
	d := math.Max(origDPI.X, origDPI.Y)
	return ImageTransform{
		origRect:     origRect,
		origDPI:      origDPI,
		preScaledDPI: DPI{X: d, Y: d},
	}
}

// OrigRect returns the source image rectangle.
func (t ImageTransform) OrigRect() image.Rectangle { return t.origRect }

// OrigDPI returns the source density.
func (t ImageTransform) OrigDPI() DPI { return t.origDPI }

// PreScaledDPI returns the density the source is scaled to before rotation.
func (t ImageTransform) PreScaledDPI() DPI { return t.preScaledDPI }

// Rotation returns the rotation in degrees, in [0, 360).
func (t ImageTransform) Rotation() float64 { return t.rotation }

// Rotated returns a copy rotated by deg degrees (replacing any previous
// rotation).
func (t ImageTransform) Rotated(deg float64) ImageTransform {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	t.rotation = deg
	return t
}

// PreScaledToDPI returns a copy whose pre-scale targets d instead.
func (t ImageTransform) PreScaledToDPI(d DPI) ImageTransform {
	t.preScaledDPI = d
	return t
}

// Valid reports whether the transform can be evaluated.
func (t ImageTransform) Valid() bool {
	return !t.origRect.Empty() && t.origDPI.Valid() && t.preScaledDPI.Valid()
}

// Transform returns the affine map from source pixel coordinates to the
// transformed space. The transformed image always starts at (0, 0).
func (t ImageTransform) Transform() Affine {
	orig := RectFromImage(t.origRect)
	pre := Scaling(t.preScaledDPI.X/t.origDPI.X, t.preScaledDPI.Y/t.origDPI.Y)

	scaled := pre.MapRect(orig)
	cx := (scaled.Min.X + scaled.Max.X) / 2
	cy := (scaled.Min.Y + scaled.Max.Y) / 2
	m := pre.
		Then(Translation(-cx, -cy)).
		Then(Rotation(t.rotation)).
		Then(Translation(cx, cy))

	bounds := m.MapRect(orig)
	return m.Then(Translation(-bounds.Min.X, -bounds.Min.Y))
}

// ResultingRect returns the bounding box of the transformed image.
func (t ImageTransform) ResultingRect() Rect {
	return t.Transform().MapRect(RectFromImage(t.origRect))
}

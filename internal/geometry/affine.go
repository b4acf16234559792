package geometry

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Point is a point in a continuous coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. Min is the top-left corner and Max the
// bottom-right one; a Rect with Max.X <= Min.X or Max.Y <= Min.Y is empty.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromImage converts an integer rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		Min: Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		Max: Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
	}
}

// Dx returns the width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

// Corners returns the four corners clockwise from the top-left one.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Round converts to an integer rectangle by rounding every edge to the
// nearest integer.
func (r Rect) Round() image.Rectangle {
	return image.Rect(
		int(math.Round(r.Min.X)), int(math.Round(r.Min.Y)),
		int(math.Round(r.Max.X)), int(math.Round(r.Max.Y)),
	)
}

// Outer converts to the smallest integer rectangle containing r.
func (r Rect) Outer() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// ApproxEqual reports whether every edge of r is within tol of the
// corresponding edge of o.
func (r Rect) ApproxEqual(o Rect, tol float64) bool {
	return math.Abs(r.Min.X-o.Min.X) <= tol && math.Abs(r.Min.Y-o.Min.Y) <= tol &&
		math.Abs(r.Max.X-o.Max.X) <= tol && math.Abs(r.Max.Y-o.Max.Y) <= tol
}

// BoundingRect returns the bounding box of a set of points.
func BoundingRect(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Affine is a 2D affine transform stored in the layout golang.org/x/image
// uses: (x, y) maps to (m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]).
type Affine f64.Aff3

// Identity returns the identity transform.
func Identity() Affine { return Affine{1, 0, 0, 0, 1, 0} }

// Translation returns a transform shifting by (tx, ty).
func Translation(tx, ty float64) Affine { return Affine{1, 0, tx, 0, 1, ty} }

// Scaling returns a transform scaling by sx horizontally and sy vertically.
func Scaling(sx, sy float64) Affine { return Affine{sx, 0, 0, 0, sy, 0} }

// Rotation returns a rotation about the origin by deg degrees. With the y
// axis pointing down, positive angles turn clockwise on screen.
func Rotation(deg float64) Affine {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Affine{c, -s, 0, s, c, 0}
}

// Then returns the transform that applies a first and n second.
func (a Affine) Then(n Affine) Affine {
	return Affine{
		n[0]*a[0] + n[1]*a[3], n[0]*a[1] + n[1]*a[4], n[0]*a[2] + n[1]*a[5] + n[2],
		n[3]*a[0] + n[4]*a[3], n[3]*a[1] + n[4]*a[4], n[3]*a[2] + n[4]*a[5] + n[5],
	}
}

// Det returns the determinant of the linear part.
func (a Affine) Det() float64 { return a[0]*a[4] - a[1]*a[3] }

// Invert returns the inverse transform. ok is false when a is singular.
func (a Affine) Invert() (inv Affine, ok bool) {
	det := a.Det()
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	return Affine{
		a[4] / det, -a[1] / det, (a[1]*a[5] - a[4]*a[2]) / det,
		-a[3] / det, a[0] / det, (a[3]*a[2] - a[0]*a[5]) / det,
	}, true
}

// Apply maps a single point.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a[0]*p.X + a[1]*p.Y + a[2],
		Y: a[3]*p.X + a[4]*p.Y + a[5],
	}
}

// MapPolygon maps the corners of r. The result is a parallelogram in
// general, not an axis-aligned rectangle.
func (a Affine) MapPolygon(r Rect) [4]Point {
	c := r.Corners()
	for i := range c {
		c[i] = a.Apply(c[i])
	}
	return c
}

// MapRect maps r and returns the bounding box of the mapped polygon.
func (a Affine) MapRect(r Rect) Rect {
	p := a.MapPolygon(r)
	return BoundingRect(p[:])
}

// Aff3 returns the transform in the form golang.org/x/image/draw expects.
func (a Affine) Aff3() f64.Aff3 { return f64.Aff3(a) }

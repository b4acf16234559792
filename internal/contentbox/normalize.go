package contentbox

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ironsheep/content-box-mcp/internal/geometry"
)

// Normalize renders src through xf into a grayscale raster covering
// xf.ResultingRect(). Destination pixels not covered by the source, such as
// the corners exposed by a rotation, stay black so that a shadow running off
// the page edge is not cut short by an artificial white margin.
func Normalize(src image.Image, xf geometry.ImageTransform) *image.Gray {
	dstRect := xf.ResultingRect().Round()
	dst := image.NewGray(image.Rect(0, 0, dstRect.Dx(), dstRect.Dy()))

	m := xf.Transform()
	sr := xf.OrigRect()
	if isIntegerShift(m) {
		dp := image.Pt(int(math.Round(m[2]))+sr.Min.X, int(math.Round(m[5]))+sr.Min.Y)
		draw.Copy(dst, dp, src, sr, draw.Src, nil)
		return dst
	}

	draw.BiLinear.Transform(dst, m.Aff3(), src, sr, draw.Src, nil)
	return dst
}

// isIntegerShift reports whether m is a pure translation by whole pixels, in
// which case resampling is unnecessary.
func isIntegerShift(m geometry.Affine) bool {
	const eps = 1e-9
	whole := func(v float64) bool { return math.Abs(v-math.Round(v)) < eps }
	return math.Abs(m[0]-1) < eps && math.Abs(m[1]) < eps &&
		math.Abs(m[3]) < eps && math.Abs(m[4]-1) < eps &&
		whole(m[2]) && whole(m[5])
}

package bitmap

import "image"

// Brick is a rectangular structuring element centred on its origin. A brick
// of width w covers the offsets [-w/2, -w/2+w-1] horizontally, and likewise
// for height.
type Brick struct {
	minX, maxX int
	minY, maxY int
}

// NewBrick returns a brick of the given size. Sizes below 1 are treated as 1.
func NewBrick(size image.Point) Brick {
	w, h := size.X, size.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Brick{
		minX: -(w / 2), maxX: -(w / 2) + w - 1,
		minY: -(h / 2), maxY: -(h / 2) + h - 1,
	}
}

// Erode returns a bitmap where a pixel is black only if every pixel covered by
// the brick centred on it is black. Pixels outside src have colour surroundings.
func Erode(src *Bitmap, size image.Point, surroundings Color) *Bitmap {
	br := NewBrick(size)
	rows := filterRows(src, br.minX, br.maxX, true, surroundings)
	return filterCols(rows, br.minY, br.maxY, true, surroundings)
}

// Dilate returns a bitmap where a pixel is black if any pixel covered by the
// reflected brick centred on it is black. Pixels outside src have colour
// surroundings.
func Dilate(src *Bitmap, size image.Point, surroundings Color) *Bitmap {
	br := NewBrick(size)
	rows := filterRows(src, -br.maxX, -br.minX, false, surroundings)
	return filterCols(rows, -br.maxY, -br.minY, false, surroundings)
}

// Open is an erosion followed by a dilation with the same brick. Black
// features that cannot contain the brick disappear.
func Open(src *Bitmap, size image.Point, surroundings Color) *Bitmap {
	pad := padding(size)
	p := src.padded(pad, surroundings)
	out := Dilate(Erode(p, size, surroundings), size, surroundings)
	return out.Crop(image.Rect(pad, pad, pad+src.w, pad+src.h))
}

// Close is a dilation followed by an erosion with the same brick. White gaps
// narrower than the brick are filled.
func Close(src *Bitmap, size image.Point, surroundings Color) *Bitmap {
	pad := padding(size)
	p := src.padded(pad, surroundings)
	out := Erode(Dilate(p, size, surroundings), size, surroundings)
	return out.Crop(image.Rect(pad, pad, pad+src.w, pad+src.h))
}

// padding is how far the intermediate result of an opening or closing has to
// extend past the source so that the second pass never reads a guessed value.
func padding(size image.Point) int {
	m := size.X
	if size.Y > m {
		m = size.Y
	}
	return m/2 + 1
}

// padded returns src surrounded by a border of pad pixels of colour c.
func (b *Bitmap) padded(pad int, c Color) *Bitmap {
	out := NewFilled(b.w+2*pad, b.h+2*pad, c)
	for y := 0; y < b.h; y++ {
		copy(out.pix[(y+pad)*out.w+pad:(y+pad)*out.w+pad+b.w], b.pix[y*b.w:(y+1)*b.w])
	}
	return out
}

// filterRows applies a one-dimensional erosion (all) or dilation (any) along
// each row, looking at offsets [lo, hi] around every pixel.
func filterRows(src *Bitmap, lo, hi int, all bool, surroundings Color) *Bitmap {
	out := New(src.w, src.h)
	prefix := make([]int, src.w+1)
	for y := 0; y < src.h; y++ {
		line := src.pix[y*src.w : (y+1)*src.w]
		for x, v := range line {
			prefix[x+1] = prefix[x] + int(v)
		}
		dst := out.pix[y*src.w : (y+1)*src.w]
		filterLine(prefix, src.w, lo, hi, all, surroundings, func(i int) { dst[i] = 1 })
	}
	return out
}

// filterCols is filterRows for columns.
func filterCols(src *Bitmap, lo, hi int, all bool, surroundings Color) *Bitmap {
	out := New(src.w, src.h)
	prefix := make([]int, src.h+1)
	for x := 0; x < src.w; x++ {
		for y := 0; y < src.h; y++ {
			prefix[y+1] = prefix[y] + int(src.pix[y*src.w+x])
		}
		col := x
		filterLine(prefix, src.h, lo, hi, all, surroundings, func(i int) { out.pix[i*src.w+col] = 1 })
	}
	return out
}

// filterLine decides every position of a line of length n from the prefix
// sums of its black pixels and calls mark for the positions that become black.
func filterLine(prefix []int, n, lo, hi int, all bool, surroundings Color, mark func(int)) {
	window := hi - lo + 1
	for i := 0; i < n; i++ {
		a, b := i+lo, i+hi
		outside := 0
		if a < 0 {
			outside += -a
			a = 0
		}
		if b > n-1 {
			outside += b - (n - 1)
			b = n - 1
		}
		black := 0
		if a <= b {
			black = prefix[b+1] - prefix[a]
		} else {
			// The whole window lies outside the line.
			outside = window
		}
		if surroundings == Black {
			black += outside
		}
		if all {
			if black == window {
				mark(i)
			}
		} else if black > 0 {
			mark(i)
		}
	}
}

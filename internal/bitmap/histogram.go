package bitmap

import "image"

// Axis selects the direction a sliced histogram is projected onto.
type Axis int

const (
	// Columns yields one bucket per column of the area.
	Columns Axis = iota
	// Rows yields one bucket per row of the area.
	Rows
)

func (a Axis) String() string {
	if a == Rows {
		return "rows"
	}
	return "columns"
}

// SlicedHistogram counts the black pixels of every column (or row) of area.
// Bucket i corresponds to column area.Min.X+i (or row area.Min.Y+i).
func SlicedHistogram(b *Bitmap, area image.Rectangle, axis Axis) []int {
	area = area.Intersect(b.Bounds())
	var hist []int
	if axis == Columns {
		hist = make([]int, area.Dx())
	} else {
		hist = make([]int, area.Dy())
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := b.pix[y*b.w+area.Min.X : y*b.w+area.Max.X]
		for i, v := range row {
			if v == 0 {
				continue
			}
			if axis == Columns {
				hist[i]++
			} else {
				hist[y-area.Min.Y]++
			}
		}
	}
	return hist
}

// GrayHistogram counts the gray levels of g at the pixels that are black in
// mask. A nil mask counts every pixel. g and mask must have the same size.
func GrayHistogram(g *image.Gray, mask *Bitmap) [256]int {
	var hist [256]int
	r := g.Bounds()
	for y := 0; y < r.Dy(); y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+r.Dx()]
		for x, v := range row {
			if mask != nil && mask.pix[y*mask.w+x] == 0 {
				continue
			}
			hist[v]++
		}
	}
	return hist
}

package bitmap

// enclosedDirections is how many of the four line orientations must find
// black on both sides of a white pixel for it to count as a dent or hole.
const enclosedDirections = 2

var lineDirections = [...][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}

// FindDentsAndHoles marks the white pixels of src that are surrounded by
// black ones: holes inside a shape and deep dents in its outline. A pixel
// qualifies when, along at least two of the horizontal, vertical and two
// diagonal lines through it, there is black on both sides.
//
// Compact blots and straight strokes produce few or no such pixels, while
// glyphs with bowls, counters and serifs produce many.
func FindDentsAndHoles(src *Bitmap) *Bitmap {
	counts := make([]uint8, len(src.pix))
	for _, d := range lineDirections {
		markEnclosed(src, d[0], d[1], counts)
	}
	out := New(src.w, src.h)
	for i, c := range counts {
		if c >= enclosedDirections {
			out.pix[i] = 1
		}
	}
	return out
}

// markEnclosed walks every line with direction (dx, dy) and bumps the counter
// of each white pixel lying between the first and last black pixel on it.
func markEnclosed(src *Bitmap, dx, dy int, counts []uint8) {
	inside := func(x, y int) bool { return x >= 0 && y >= 0 && x < src.w && y < src.h }
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			if inside(x-dx, y-dy) {
				// Not the start of a line.
				continue
			}
			first, last := -1, -1
			step := 0
			for cx, cy := x, y; inside(cx, cy); cx, cy = cx+dx, cy+dy {
				if src.pix[cy*src.w+cx] == 1 {
					if first < 0 {
						first = step
					}
					last = step
				}
				step++
			}
			if last-first < 2 {
				continue
			}
			step = 0
			for cx, cy := x, y; inside(cx, cy); cx, cy = cx+dx, cy+dy {
				i := cy*src.w + cx
				if step > first && step < last && src.pix[i] == 0 {
					counts[i]++
				}
				step++
			}
		}
	}
}

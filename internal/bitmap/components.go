package bitmap

import "image"

// Component is a maximal connected set of black pixels.
type Component struct {
	// Rect is the bounding box in the scanned bitmap's coordinates.
	Rect image.Rectangle

	// PixCount is the number of black pixels in the component.
	PixCount int

	label  int32
	labels []int32
	stride int
}

// Width returns the bounding box width.
func (c Component) Width() int { return c.Rect.Dx() }

// Height returns the bounding box height.
func (c Component) Height() int { return c.Rect.Dy() }

// Bitmap returns the component isolated in a bitmap the size of its bounding
// box. Pixels of other components that intrude into the box stay white.
func (c Component) Bitmap() *Bitmap {
	out := New(c.Rect.Dx(), c.Rect.Dy())
	for y := c.Rect.Min.Y; y < c.Rect.Max.Y; y++ {
		row := c.labels[y*c.stride : (y+1)*c.stride]
		for x := c.Rect.Min.X; x < c.Rect.Max.X; x++ {
			if row[x] == c.label {
				out.pix[(y-c.Rect.Min.Y)*out.w+(x-c.Rect.Min.X)] = 1
			}
		}
	}
	return out
}

// Scanner yields the connected components of a bitmap one at a time, in
// raster order of their first pixel. It never modifies the source bitmap; the
// labels it assigns live in its own buffer.
//
//	sc := bitmap.NewScanner(img, bitmap.Conn8)
//	for sc.Next() {
//	    cc := sc.Component()
//	    ...
//	}
type Scanner struct {
	src    *Bitmap
	conn   Connectivity
	labels []int32
	next   int
	label  int32
	cur    Component
	stack  []int
}

// NewScanner prepares a component scan over src.
func NewScanner(src *Bitmap, conn Connectivity) *Scanner {
	return &Scanner{
		src:    src,
		conn:   conn,
		labels: make([]int32, len(src.pix)),
	}
}

// Next advances to the next component and reports whether there was one.
func (s *Scanner) Next() bool {
	w, h := s.src.w, s.src.h
	for ; s.next < len(s.src.pix); s.next++ {
		if s.src.pix[s.next] == 0 || s.labels[s.next] != 0 {
			continue
		}
		s.label++
		start := s.next
		s.next++

		minX, minY := w, h
		maxX, maxY := -1, -1
		count := 0

		s.labels[start] = s.label
		s.stack = append(s.stack[:0], start)
		nbrs := s.conn.offsets()
		for len(s.stack) > 0 {
			i := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			x, y := i%w, i/w
			count++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			for _, d := range nbrs {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if s.src.pix[j] == 1 && s.labels[j] == 0 {
					s.labels[j] = s.label
					s.stack = append(s.stack, j)
				}
			}
		}

		s.cur = Component{
			Rect:     image.Rect(minX, minY, maxX+1, maxY+1),
			PixCount: count,
			label:    s.label,
			labels:   s.labels,
			stride:   w,
		}
		return true
	}
	s.cur = Component{}
	return false
}

// Component returns the component found by the last call to Next.
func (s *Scanner) Component() Component { return s.cur }

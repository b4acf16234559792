package bitmap

// Connectivity selects which neighbours are adjacent to a pixel.
type Connectivity int

const (
	// Conn4 links horizontal and vertical neighbours.
	Conn4 Connectivity = 4
	// Conn8 also links diagonal neighbours.
	Conn8 Connectivity = 8
)

var (
	offsets4 = [...][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	offsets8 = [...][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

func (c Connectivity) offsets() [][2]int {
	if c == Conn4 {
		return offsets4[:]
	}
	return offsets8[:]
}

// SeedFill grows seed inside mask: the result holds every black pixel of mask
// reachable from a black pixel of seed that is also black in mask. Sizes must
// match.
func SeedFill(seed, mask *Bitmap, conn Connectivity) *Bitmap {
	if seed.w != mask.w || seed.h != mask.h {
		panic("bitmap: size mismatch")
	}
	out := New(mask.w, mask.h)
	w, h := mask.w, mask.h

	// Stack-based fill; recursion would overflow on page-sized regions.
	stack := make([]int, 0, 1024)
	for i, v := range seed.pix {
		if v == 1 && mask.pix[i] == 1 && out.pix[i] == 0 {
			out.pix[i] = 1
			stack = append(stack, i)
		}
	}

	nbrs := conn.offsets()
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for _, d := range nbrs {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			j := ny*w + nx
			if mask.pix[j] == 1 && out.pix[j] == 0 {
				out.pix[j] = 1
				stack = append(stack, j)
			}
		}
	}
	return out
}

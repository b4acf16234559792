package contentbox

import (
	"image"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// Binarize returns the bitonal image of g where every pixel darker than
// threshold is black.
func Binarize(g *image.Gray, threshold uint8) *bitmap.Bitmap {
	return bitmap.FromGray(g, threshold)
}

// LighterThreshold searches the threshold for the lighter bitmap. hist is the
// gray level histogram of the pixels that are black at threshold. Starting
// MaxLighterDelta levels below threshold, the candidate is raised one level
// at a time until the pixels it keeps black, multiplied by
// LighterSearchFactor, outnumber those of the reference.
func LighterThreshold(hist [256]int, threshold uint8, opts Options) uint8 {
	t := int(threshold)
	ref := keptBlack(hist, threshold)

	nt := max(0, t-opts.MaxLighterDelta)
	delta := 0
	for _, n := range hist[nt:t] {
		delta += n
	}

	for ; nt < t; nt++ {
		kept := ref - delta
		if float64(ref) < float64(kept)*opts.LighterSearchFactor {
			break
		}
		delta -= hist[nt]
	}
	return uint8(nt)
}

// LighterContent binarizes g at the lighter threshold found for content and
// restricts the result to content. It returns the lighter bitmap and the
// threshold used.
func LighterContent(g *image.Gray, content *bitmap.Bitmap, threshold uint8, opts Options) (*bitmap.Bitmap, uint8) {
	hist := bitmap.GrayHistogram(g, content)
	lt := LighterThreshold(hist, threshold, opts)
	return bitmap.And(bitmap.FromGray(g, lt), content), lt
}

// keptBlack returns how many pixels counted in hist stay black when
// binarizing at t.
func keptBlack(hist [256]int, t uint8) int {
	n := 0
	for _, c := range hist[:t] {
		n += c
	}
	return n
}

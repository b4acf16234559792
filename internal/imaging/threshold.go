package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// OtsuThreshold returns the global binarization level of img chosen by Otsu's
// method: the level that best separates the gray histogram into a dark and a
// light class. Gray levels below the returned value are ink.
func OtsuThreshold(img image.Image) uint8 {
	gray := imaging.Grayscale(img)
	bins := histogram.NewRGBAHistogram(gray).R.Bins

	total, sum := 0, 0.0
	for v, n := range bins {
		total += n
		sum += float64(v * n)
	}
	if total == 0 {
		return 128
	}

	best, bestK := 0.0, -1
	darkN, darkSum := 0, 0.0
	for k := 0; k < len(bins)-1; k++ {
		darkN += bins[k]
		darkSum += float64(k * bins[k])
		lightN := total - darkN
		if darkN == 0 || lightN == 0 {
			continue
		}
		mDark := darkSum / float64(darkN)
		mLight := (sum - darkSum) / float64(lightN)
		between := float64(darkN) * float64(lightN) * (mDark - mLight) * (mDark - mLight)
		if between > best {
			best, bestK = between, k
		}
	}

	if bestK < 0 {
		// A single gray level: nothing to separate.
		return 128
	}
	return uint8(bestK + 1)
}

// Binarized renders the black and white version of img at level, as the
// content box search sees it before shadow removal.
func Binarized(img image.Image, level uint8) *image.Gray {
	return segment.Threshold(img, level)
}

package contentbox

import (
	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// Label is the verdict of the component classifier.
type Label int

const (
	// Noise components are too small to matter and are ignored entirely.
	Noise Label = iota
	// Garbage components are speckles, strokes and blots.
	Garbage
	// Content components wind enough to look like glyphs.
	Content
	// BigDark components are large filled regions such as photos or
	// halftone blocks.
	BigDark
)

func (l Label) String() string {
	switch l {
	case Noise:
		return "noise"
	case Garbage:
		return "garbage"
	case Content:
		return "content"
	case BigDark:
		return "big-dark"
	}
	return "unknown"
}

// Classifier labels connected components.
type Classifier struct {
	opts *Options
}

// NewClassifier returns a classifier using the thresholds in opts.
func NewClassifier(opts Options) Classifier {
	return Classifier{opts: &opts}
}

// IsNoise reports whether cc is too small to be meaningful.
func (c Classifier) IsNoise(cc bitmap.Component) bool {
	o := c.opts
	return cc.PixCount < o.MinComponentPixels ||
		(cc.Width() < o.MinComponentSide && cc.Height() < o.MinComponentSide)
}

// IsBigAndDark reports whether cc is a large, well filled region.
func (c Classifier) IsBigAndDark(cc bitmap.Component) bool {
	o := c.opts
	w, h := cc.Width(), cc.Height()
	if min(w, h) < o.BigDarkMinSide {
		return false
	}
	area := w * h
	if area < o.BigDarkMinArea {
		return false
	}
	return float64(cc.PixCount) >= float64(area)*o.BigDarkMinFill
}

// IsWinding reports whether the isolated component img folds back on itself
// enough to be a glyph. The dents and holes must cover at least
// WindingFraction of the squared diagonal.
func (c Classifier) IsWinding(img *bitmap.Bitmap) bool {
	w, h := img.Width(), img.Height()
	dents := bitmap.FindDentsAndHoles(img).CountBlack()
	return float64(dents) >= float64(w*w+h*h)*c.opts.WindingFraction
}

// Classify labels a component. Big-and-dark takes precedence over winding.
func (c Classifier) Classify(cc bitmap.Component) Label {
	switch {
	case c.IsNoise(cc):
		return Noise
	case c.IsBigAndDark(cc):
		return BigDark
	case c.IsWinding(cc.Bitmap()):
		return Content
	default:
		return Garbage
	}
}

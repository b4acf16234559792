package contentbox

import "image"

// Options holds the tuned constants of the pipeline. The pixel sizes assume
// the canonical density; they are empirical and can be adjusted, but the
// defaults reproduce the reference behaviour.
type Options struct {
	// TargetDPI is the canonical density the source is rendered at.
	TargetDPI float64

	// Shadow detection bricks.
	HorShadowBrick image.Point
	VerShadowBrick image.Point
	BridgeBrick    image.Point

	// Shadow false-positive screening bricks.
	ShadowOpenBrick   image.Point
	ShadowCloseBrick  image.Point
	ShadowReopenBrick image.Point

	// MaxLighterDelta bounds how far below the reference threshold the lighter
	// threshold may go.
	MaxLighterDelta int

	// LighterSearchFactor stops the lighter threshold search as soon as the
	// reference mask holds fewer than this many times the lighter pixels.
	LighterSearchFactor float64

	// ShadowRatio rejects a strip whose reference pixel count exceeds its
	// lighter pixel count by more than this factor.
	ShadowRatio float64

	// MinRowLighterPixels is the floor below which a row strip failing the
	// ShadowRatio test is rejected.
	MinRowLighterPixels int

	// Component noise filter.
	MinComponentPixels int
	MinComponentSide   int

	// WindingFraction is the share of a component's squared diagonal that its
	// dents and holes must reach for it to count as content.
	WindingFraction float64

	// Big-and-dark protection.
	BigDarkMinSide int
	BigDarkMinArea int
	BigDarkMinFill float64

	// NonGarbageFraction is the share of a strip's black pixels that must
	// belong to content components for the strip to be kept.
	NonGarbageFraction float64

	// MinColumnWidth rejects column strips narrower than this.
	MinColumnWidth int

	// Row guards protecting lines and tall narrow glyphs such as "1".
	LongLineWidthFraction float64
	LongLineAspect        float64
	ShortStrokeMinAspect  float64
	ShortStrokeMaxAspect  float64

	// Span segmentation per axis.
	ColumnSpans SpanFinder
	RowSpans    SpanFinder
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		TargetDPI: 150,

		HorShadowBrick: image.Pt(200, 14),
		VerShadowBrick: image.Pt(14, 300),
		BridgeBrick:    image.Pt(3, 3),

		ShadowOpenBrick:   image.Pt(10, 4),
		ShadowCloseBrick:  image.Pt(20, 1),
		ShadowReopenBrick: image.Pt(50, 10),

		MaxLighterDelta:     20,
		LighterSearchFactor: 1.3,
		ShadowRatio:         1.5,
		MinRowLighterPixels: 5,

		MinComponentPixels: 10,
		MinComponentSide:   5,
		WindingFraction:    0.04,

		BigDarkMinSide: 15,
		BigDarkMinArea: 100 * 30,
		BigDarkMinFill: 0.3,

		NonGarbageFraction: 0.3,
		MinColumnWidth:     8,

		LongLineWidthFraction: 0.8,
		LongLineAspect:        20,
		ShortStrokeMinAspect:  2,
		ShortStrokeMaxAspect:  15,

		// The column whitespace must exceed the gap between letters but stay
		// below the gap between the text and the binding.
		ColumnSpans: SpanFinder{MinContentWidth: 10, MinWhitespaceWidth: 7},
		// A horizontal rule may sit at the top, hence the narrower content.
		RowSpans: SpanFinder{MinContentWidth: 5, MinWhitespaceWidth: 10},
	}
}

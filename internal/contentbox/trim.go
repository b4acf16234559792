package contentbox

import (
	"context"
	"image"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
	"github.com/ironsheep/content-box-mcp/internal/logging"
)

// trimmer narrows a rectangle of the content mask down to the strips that
// hold real content.
type trimmer struct {
	content *bitmap.Bitmap
	lighter *bitmap.Bitmap
	opts    Options
	cls     Classifier
	log     *logging.Logger

	// observe, when set, sees the rectangle after every pass.
	observe func(axis bitmap.Axis, r image.Rectangle)
}

func newTrimmer(content, lighter *bitmap.Bitmap, opts Options, log *logging.Logger) *trimmer {
	if log == nil {
		log = logging.Discard()
	}
	return &trimmer{
		content: content,
		lighter: lighter,
		opts:    opts,
		cls:     NewClassifier(opts),
		log:     log,
	}
}

// Converge alternately trims area horizontally and vertically until a pass
// leaves it unchanged. The result is the zero rectangle when no content is
// left. content and lighter must have the same size and area must lie within
// them.
func Converge(ctx context.Context, content, lighter *bitmap.Bitmap, area image.Rectangle, opts Options) (image.Rectangle, error) {
	return newTrimmer(content, lighter, opts, nil).converge(ctx, area)
}

func (t *trimmer) converge(ctx context.Context, area image.Rectangle) (image.Rectangle, error) {
	r := area
	var err error
	for first, cycle := true, 1; ; first, cycle = false, cycle+1 {
		if err := checkCancelled(ctx); err != nil {
			return image.Rectangle{}, err
		}

		old := r
		if r, err = t.trim(ctx, r, bitmap.Columns); err != nil {
			return image.Rectangle{}, err
		}
		t.log.Debug("trimmed left/right", "cycle", cycle, "area", r)
		t.notify(bitmap.Columns, r)
		if r.Empty() {
			return image.Rectangle{}, nil
		}
		if !first && r == old {
			break
		}

		old = r
		if r, err = t.trim(ctx, r, bitmap.Rows); err != nil {
			return image.Rectangle{}, err
		}
		t.log.Debug("trimmed top/bottom", "cycle", cycle, "area", r)
		t.notify(bitmap.Rows, r)
		if r.Empty() {
			return image.Rectangle{}, nil
		}
		if r == old {
			break
		}
	}
	return r, nil
}

func (t *trimmer) notify(axis bitmap.Axis, r image.Rectangle) {
	if t.observe != nil {
		t.observe(axis, r)
	}
}

// trim segments area along axis and walks the spans inward from both ends,
// discarding rejected ones until one is accepted on each side. An accepted
// span is replaced by the extent its processing found.
func (t *trimmer) trim(ctx context.Context, area image.Rectangle, axis bitmap.Axis) (image.Rectangle, error) {
	hist := bitmap.SlicedHistogram(t.content, area, axis)
	finder, offset := t.opts.ColumnSpans, area.Min.X
	if axis == bitmap.Rows {
		finder, offset = t.opts.RowSpans, area.Min.Y
	}
	spans := finder.FindAll(hist, offset)

	for len(spans) > 0 {
		if err := checkCancelled(ctx); err != nil {
			return image.Rectangle{}, err
		}
		if s, ok := t.process(area, spans[0], axis); ok {
			spans[0] = s
			break
		}
		spans = spans[1:]
	}

	for len(spans) > 0 {
		if err := checkCancelled(ctx); err != nil {
			return image.Rectangle{}, err
		}
		last := len(spans) - 1
		if s, ok := t.process(area, spans[last], axis); ok {
			spans[last] = s
			break
		}
		spans = spans[:last]
	}

	if len(spans) == 0 {
		return image.Rectangle{}, nil
	}
	return withSpan(area, Span{spans[0].Begin, spans[len(spans)-1].End}, axis), nil
}

// process runs the column or row check on the strip of area covered by s.
func (t *trimmer) process(area image.Rectangle, s Span, axis bitmap.Axis) (Span, bool) {
	strip := withSpan(area, s, axis)
	if axis == bitmap.Columns {
		r, ok := t.processColumn(strip)
		return Span{r.Min.X, r.Max.X}, ok
	}
	r, ok := t.processRow(strip)
	return Span{r.Min.Y, r.Max.Y}, ok
}

// processColumn decides whether a vertical strip holds content and, if so,
// how far that content extends horizontally.
func (t *trimmer) processColumn(area image.Rectangle) (image.Rectangle, bool) {
	o := &t.opts
	if area.Dx() < o.MinColumnWidth {
		return image.Rectangle{}, false
	}

	total := t.content.CountBlackIn(area)
	lighter := t.lighter.CountBlackIn(area)
	if float64(total) > float64(lighter)*o.ShadowRatio {
		// Either the shadow gradient of the binding, or a pencil stroke
		// slightly lighter than the threshold.
		return image.Rectangle{}, false
	}

	left, right := area.Max.X, area.Min.X
	nonGarbage := 0

	sc := bitmap.NewScanner(t.content.Crop(area), bitmap.Conn8)
	for sc.Next() {
		cc := sc.Component()
		if t.cls.IsNoise(cc) {
			continue
		}

		// Strokes still extend the bounds so that a lone "1" or "l" beside
		// the text is not clipped. They just don't count as content mass.
		left = min(left, area.Min.X+cc.Rect.Min.X)
		right = max(right, area.Min.X+cc.Rect.Max.X)

		if !t.cls.IsWinding(cc.Bitmap()) {
			continue
		}
		nonGarbage += cc.PixCount
	}

	if left >= right || float64(nonGarbage) <= float64(total)*o.NonGarbageFraction {
		return image.Rectangle{}, false
	}
	return image.Rect(left, area.Min.Y, right, area.Max.Y), true
}

// processRow is the horizontal counterpart of processColumn. Rows more often
// hold legitimate dark content such as photos and table headers, so the
// lighter test only rejects nearly empty strips, and rules, tall narrow
// strokes and big dark blocks are kept without the winding test.
func (t *trimmer) processRow(area image.Rectangle) (image.Rectangle, bool) {
	o := &t.opts
	total := t.content.CountBlackIn(area)
	lighter := t.lighter.CountBlackIn(area)
	if float64(total) > float64(lighter)*o.ShadowRatio && lighter < o.MinRowLighterPixels {
		return image.Rectangle{}, false
	}

	top, bottom := area.Max.Y, area.Min.Y
	nonGarbage := 0

	sc := bitmap.NewScanner(t.content.Crop(area), bitmap.Conn8)
	for sc.Next() {
		cc := sc.Component()
		if t.cls.IsNoise(cc) {
			continue
		}

		w, h := float64(cc.Width()), float64(cc.Height())
		longHLine := w > float64(area.Dx())*o.LongLineWidthFraction && w > h*o.LongLineAspect
		shortVLine := h > w*o.ShortStrokeMinAspect && h < w*o.ShortStrokeMaxAspect

		if !longHLine && !shortVLine && !t.cls.IsBigAndDark(cc) && !t.cls.IsWinding(cc.Bitmap()) {
			continue
		}

		top = min(top, area.Min.Y+cc.Rect.Min.Y)
		bottom = max(bottom, area.Min.Y+cc.Rect.Max.Y)
		nonGarbage += cc.PixCount
	}

	if top >= bottom || float64(nonGarbage) <= float64(total)*o.NonGarbageFraction {
		return image.Rectangle{}, false
	}
	return image.Rect(area.Min.X, top, area.Max.X, bottom), true
}

// withSpan returns area with its extent along axis replaced by s.
func withSpan(area image.Rectangle, s Span, axis bitmap.Axis) image.Rectangle {
	if axis == bitmap.Columns {
		return image.Rect(s.Begin, area.Min.Y, s.End, area.Max.Y)
	}
	return image.Rect(area.Min.X, s.Begin, area.Max.X, s.End)
}

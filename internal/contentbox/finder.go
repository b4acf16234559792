package contentbox

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
	"github.com/ironsheep/content-box-mcp/internal/geometry"
	"github.com/ironsheep/content-box-mcp/internal/logging"
)

// Input is one page to search.
type Input struct {
	// Image is the source raster, color or grayscale.
	Image image.Image

	// Transform maps Image into the caller's coordinate space. Its source
	// density decides how the image is rescaled to the working density.
	Transform geometry.ImageTransform

	// Threshold is the reference binarization level: gray levels below it
	// are black.
	Threshold uint8
}

// Result is the outcome of a search that was not cancelled.
type Result struct {
	// Box is the content box in the coordinate space of Input.Transform.
	// It is meaningless when Empty is set.
	Box geometry.Rect `json:"box"`

	// Empty reports that the page has no detectable content.
	Empty bool `json:"empty"`

	// WorkingBox is the content box at the working density, before it is
	// mapped back.
	WorkingBox image.Rectangle `json:"working_box"`

	// WorkingSize is the size of the normalized raster.
	WorkingSize image.Point `json:"working_size"`

	// LighterThreshold is the level the lighter bitmap was produced at.
	LighterThreshold uint8 `json:"lighter_threshold"`
}

// Finder locates the content box of scanned pages. A Finder holds no
// per-page state and may be shared by concurrent searches.
type Finder struct {
	opts Options
	log  *logging.Logger
	sink DebugSink
}

// Option configures a Finder.
type Option func(*Finder)

// WithOptions replaces the tuned constants.
func WithOptions(o Options) Option {
	return func(f *Finder) { f.opts = o }
}

// WithLogger sets the logger used for stage timings and the convergence
// trace.
func WithLogger(l *logging.Logger) Option {
	return func(f *Finder) { f.log = l }
}

// WithDebugSink attaches a sink for intermediate images. Intermediate images
// are only rendered when a sink is attached.
func WithDebugSink(s DebugSink) Option {
	return func(f *Finder) { f.sink = s }
}

// New returns a Finder with the default options.
func New(opts ...Option) *Finder {
	f := &Finder{opts: DefaultOptions(), log: logging.Discard()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Options returns the constants the finder uses.
func (f *Finder) Options() Options { return f.opts }

// Find searches in for its content box.
//
// The image is rendered at the working density with exposed borders black,
// binarized, stripped of binding and edge shadows, and then trimmed
// alternately along both axes until the box stops changing. The box is
// finally mapped back into the space of in.Transform.
//
// A page without content yields a Result with Empty set and a nil error.
// Cancellation of ctx yields an error matching ErrCancelled; malformed input
// an error matching ErrMalformedInput.
func (f *Finder) Find(ctx context.Context, in Input) (Result, error) {
	return f.find(ctx, in, f.sink)
}

// FindWithSink is Find with a per-call debug sink, overriding the one the
// finder was created with.
func (f *Finder) FindWithSink(ctx context.Context, in Input, sink DebugSink) (Result, error) {
	return f.find(ctx, in, sink)
}

func (f *Finder) find(ctx context.Context, in Input, sink DebugSink) (Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}
	if in.Image == nil || in.Image.Bounds().Empty() {
		return Result{}, fmt.Errorf("%w: missing or empty image", ErrMalformedInput)
	}
	if in.Transform.OrigRect().Empty() {
		in.Transform = geometry.NewImageTransform(in.Image.Bounds(), in.Transform.OrigDPI()).
			Rotated(in.Transform.Rotation())
	}
	if !in.Transform.Valid() {
		return Result{}, fmt.Errorf("%w: invalid image transform", ErrMalformedInput)
	}

	working := in.Transform.PreScaledToDPI(geometry.DPI{X: f.opts.TargetDPI, Y: f.opts.TargetDPI})
	toWorking, ok := working.Transform().Invert()
	if !ok {
		return Result{}, fmt.Errorf("%w: transform is not invertible", ErrMalformedInput)
	}

	dbg := diagnostics{sink: sink}
	stage := f.stageTimer()

	gray := Normalize(in.Image, working)
	dbg.image("gray150", gray)
	stage("normalize")
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}

	bw := Binarize(gray, in.Threshold)
	dbg.bitmap("bw150", bw)
	stage("binarize")
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}

	shadows, err := DetectShadows(ctx, bw, f.opts, dbg)
	if err != nil {
		return Result{}, err
	}
	stage("shadows")

	content := bitmap.Subtract(bw, shadows)
	dbg.bitmap("content", content)
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}

	lighter, lt := LighterContent(gray, content, in.Threshold, f.opts)
	dbg.bitmap("content_lighter", lighter)
	stage("lighter")
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}

	if dbg.enabled() {
		f.renderComponentClasses(content, dbg)
	}

	res := Result{
		WorkingSize:      image.Pt(content.Width(), content.Height()),
		LighterThreshold: lt,
	}

	t := newTrimmer(content, lighter, f.opts, f.log)
	box, err := t.converge(ctx, content.Bounds())
	if err != nil {
		return Result{}, err
	}
	stage("converge")
	if err := checkCancelled(ctx); err != nil {
		return Result{}, err
	}

	if box.Empty() {
		f.log.Debug("no content found", "threshold", in.Threshold, "lighter", lt)
		res.Empty = true
		return res, nil
	}

	res.WorkingBox = box
	res.Box = BackMap(box, toWorking, in.Transform)
	f.log.Debug("content box found", "working", box, "box", fmt.Sprintf("%.1f,%.1f-%.1f,%.1f",
		res.Box.Min.X, res.Box.Min.Y, res.Box.Max.X, res.Box.Max.Y))
	return res, nil
}

// BackMap maps box from working space to the caller's space. toWorking is the
// inverse of the working transform, so the composition first returns to
// source pixels and then applies the caller's transform.
func BackMap(box image.Rectangle, toWorking geometry.Affine, caller geometry.ImageTransform) geometry.Rect {
	return toWorking.Then(caller.Transform()).MapRect(geometry.RectFromImage(box))
}

// stageTimer returns a function logging the time spent since its previous
// call.
func (f *Finder) stageTimer() func(name string) {
	last := time.Now()
	return func(name string) {
		now := time.Now()
		f.log.Debug("stage done", "stage", name, "elapsed", now.Sub(last))
		last = now
	}
}

// Tints used by the component class diagnostic.
var (
	garbageTint = colorful.Color{R: 1, G: 0, B: 0}
	contentTint = colorful.Color{R: 0, G: 0.8, B: 0}
	bigDarkTint = colorful.Color{R: 0, G: 0.2, B: 1}
)

// renderComponentClasses emits the classifier's view of the content mask:
// garbage in red, content in green and big dark components in blue, plus the
// big dark components alone as a bitmap.
func (f *Finder) renderComponentClasses(content *bitmap.Bitmap, dbg diagnostics) {
	cls := NewClassifier(f.opts)
	white := colorful.Color{R: 1, G: 1, B: 1}

	classes := image.NewRGBA(content.Bounds())
	for i := range classes.Pix {
		classes.Pix[i] = 0xff
	}
	bigDark := bitmap.New(content.Width(), content.Height())

	sc := bitmap.NewScanner(content, bitmap.Conn8)
	for sc.Next() {
		cc := sc.Component()
		if cls.IsNoise(cc) {
			continue
		}
		img := cc.Bitmap()

		tint := garbageTint
		switch {
		case cls.IsBigAndDark(cc):
			tint = bigDarkTint
		case cls.IsWinding(img):
			tint = contentTint
		}
		r, g, b := tint.BlendLab(white, 0.15).Clamped().RGB255()
		c := color.RGBA{R: r, G: g, B: b, A: 0xff}

		for y := 0; y < img.Height(); y++ {
			for x := 0; x < img.Width(); x++ {
				if !img.IsBlack(x, y) {
					continue
				}
				p := cc.Rect.Min.Add(image.Pt(x, y))
				classes.SetRGBA(p.X, p.Y, c)
				if tint == bigDarkTint {
					bigDark.Set(p.X, p.Y, bitmap.Black)
				}
			}
		}
	}

	dbg.image("component_classes", classes)
	dbg.bitmap("big_dark", bigDark)
}

package contentbox

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// bindingBand is a dark band along the left edge of a 1000x1400 page.
var bindingBand = image.Rect(0, 200, 40, 1200)

func TestDetectShadows_BindingBand(t *testing.T) {
	b, _ := glyphBitmap(1000, 1400, image.Rect(200, 250, 800, 1150))
	b.Fill(bindingBand, bitmap.Black)

	shadows, err := DetectShadows(context.Background(), b, DefaultOptions(), diagnostics{})
	if err != nil {
		t.Fatalf("DetectShadows failed: %v", err)
	}

	if got, want := shadows.CountBlack(), bindingBand.Dx()*bindingBand.Dy(); got != want {
		t.Errorf("shadow pixels: got %d, want %d", got, want)
	}
	if got := shadows.BlackBounds(); got != bindingBand {
		t.Errorf("shadow bounds: got %v, want %v", got, bindingBand)
	}
}

func TestDetectShadows_TextIsNotShadow(t *testing.T) {
	b, _ := glyphBitmap(1000, 1400, image.Rect(200, 250, 800, 1150))

	shadows, err := DetectShadows(context.Background(), b, DefaultOptions(), diagnostics{})
	if err != nil {
		t.Fatalf("DetectShadows failed: %v", err)
	}
	if n := shadows.CountBlack(); n != 0 {
		t.Errorf("glyphs produced %d shadow pixels", n)
	}
}

func TestDetectShadows_TableHeaderScreened(t *testing.T) {
	b := bitmap.New(1000, 1400)
	b.Fill(bindingBand, bitmap.Black)

	// A black header: a solid bar above a band of white lettering, modelled
	// as one pixel wide white slits.
	header := image.Rect(300, 100, 700, 160)
	b.Fill(header, bitmap.Black)
	for x := header.Min.X + 3; x < header.Max.X; x += 4 {
		b.Fill(image.Rect(x, 120, x+1, 160), bitmap.White)
	}

	sink := NewMemorySink()
	shadows, err := DetectShadows(context.Background(), b, DefaultOptions(), diagnostics{sink: sink})
	if err != nil {
		t.Fatalf("DetectShadows failed: %v", err)
	}

	if n := shadows.CountBlackIn(header); n != 0 {
		t.Errorf("header left %d shadow pixels", n)
	}
	if got := shadows.BlackBounds(); got != bindingBand {
		t.Errorf("shadow bounds: got %v, want %v", got, bindingBand)
	}

	raw, ok := sink.Get("shadows")
	if !ok {
		t.Fatal("missing shadows diagnostic")
	}
	if raw.At(350, 105) != (color.Gray{Y: 0}) {
		t.Error("header should be a shadow candidate before screening")
	}
}

func TestDetectShadows_Cancelled(t *testing.T) {
	b := bitmap.New(100, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DetectShadows(ctx, b, DefaultOptions(), diagnostics{})
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("got %v, want ErrCancelled", err)
	}
}

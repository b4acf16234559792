package contentbox

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
)

// trimmerFor returns a trimmer whose lighter bitmap equals content, as it
// does for pure black ink.
func trimmerFor(content *bitmap.Bitmap) *trimmer {
	return newTrimmer(content, content, DefaultOptions(), nil)
}

func TestProcessColumn(t *testing.T) {
	t.Run("narrow strip rejected", func(t *testing.T) {
		b, _ := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		if _, ok := trimmerFor(b).processColumn(image.Rect(50, 0, 57, 200)); ok {
			t.Error("strip of width 7 should be rejected")
		}
	})

	t.Run("faint strip rejected", func(t *testing.T) {
		b, _ := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		tr := newTrimmer(b, bitmap.New(200, 200), DefaultOptions(), nil)
		if _, ok := tr.processColumn(image.Rect(40, 0, 160, 200)); ok {
			t.Error("strip vanishing at the lighter threshold should be rejected")
		}
	})

	t.Run("blot rejected", func(t *testing.T) {
		b := bitmap.New(200, 200)
		b.Fill(image.Rect(90, 90, 110, 110), bitmap.Black)
		if _, ok := trimmerFor(b).processColumn(image.Rect(80, 0, 120, 200)); ok {
			t.Error("a strip holding only a blot should be rejected")
		}
	})

	t.Run("glyphs shrink strip", func(t *testing.T) {
		b, ink := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		got, ok := trimmerFor(b).processColumn(image.Rect(40, 0, 160, 200))
		if !ok {
			t.Fatal("glyph strip rejected")
		}
		want := image.Rect(ink.Min.X, 0, ink.Max.X, 200)
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("stroke next to text kept in bounds", func(t *testing.T) {
		b, ink := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		b.Fill(image.Rect(44, 60, 46, 72), bitmap.Black)
		got, ok := trimmerFor(b).processColumn(image.Rect(40, 0, 160, 200))
		if !ok {
			t.Fatal("glyph strip rejected")
		}
		if got.Min.X != 44 || got.Max.X != ink.Max.X {
			t.Errorf("got %v, want left edge 44", got)
		}
	})
}

func TestProcessRow(t *testing.T) {
	t.Run("horizontal rule kept", func(t *testing.T) {
		b := bitmap.New(300, 100)
		b.Fill(image.Rect(10, 40, 290, 42), bitmap.Black)
		got, ok := trimmerFor(b).processRow(image.Rect(0, 30, 300, 50))
		if !ok {
			t.Fatal("rule rejected")
		}
		if got != image.Rect(0, 40, 300, 42) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("digit one kept", func(t *testing.T) {
		b := bitmap.New(100, 100)
		b.Fill(image.Rect(50, 20, 53, 40), bitmap.Black)
		got, ok := trimmerFor(b).processRow(image.Rect(0, 10, 100, 50))
		if !ok {
			t.Fatal("tall narrow stroke rejected")
		}
		if got.Min.Y != 20 || got.Max.Y != 40 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("short horizontal stroke dropped", func(t *testing.T) {
		b := bitmap.New(300, 100)
		b.Fill(image.Rect(10, 40, 60, 42), bitmap.Black)
		if _, ok := trimmerFor(b).processRow(image.Rect(0, 30, 300, 50)); ok {
			t.Error("a pencil stroke should be rejected")
		}
	})

	t.Run("big dark block kept", func(t *testing.T) {
		b := bitmap.New(300, 100)
		b.Fill(image.Rect(50, 20, 250, 60), bitmap.Black)
		if _, ok := trimmerFor(b).processRow(image.Rect(0, 10, 300, 70)); !ok {
			t.Error("photo block rejected")
		}
	})

	t.Run("faint row with few lighter pixels rejected", func(t *testing.T) {
		b, _ := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		lighter := bitmap.New(200, 200)
		lighter.Fill(image.Rect(50, 50, 52, 52), bitmap.Black)
		tr := newTrimmer(b, lighter, DefaultOptions(), nil)
		if _, ok := tr.processRow(image.Rect(0, 40, 200, 160)); ok {
			t.Error("row with 4 lighter pixels should be rejected")
		}
	})

	t.Run("faint row with enough lighter pixels kept", func(t *testing.T) {
		b, _ := glyphBitmap(200, 200, image.Rect(50, 50, 150, 150))
		lighter := bitmap.New(200, 200)
		lighter.Fill(image.Rect(50, 50, 60, 52), bitmap.Black)
		tr := newTrimmer(b, lighter, DefaultOptions(), nil)
		if _, ok := tr.processRow(image.Rect(0, 40, 200, 160)); !ok {
			t.Error("row with dark content should survive the lighter test")
		}
	})
}

// pageWithBlot is a glyph block with a compact blot to its right.
func pageWithBlot() (*bitmap.Bitmap, image.Rectangle) {
	b, ink := glyphBitmap(600, 500, image.Rect(100, 100, 400, 400))
	b.Fill(image.Rect(500, 200, 520, 220), bitmap.Black)
	return b, ink
}

func TestConverge(t *testing.T) {
	b, ink := pageWithBlot()

	got, err := Converge(context.Background(), b, b, b.Bounds(), DefaultOptions())
	if err != nil {
		t.Fatalf("Converge failed: %v", err)
	}
	if got != ink {
		t.Errorf("got %v, want %v", got, ink)
	}
}

func TestConverge_Empty(t *testing.T) {
	b := bitmap.New(300, 300)
	got, err := Converge(context.Background(), b, b, b.Bounds(), DefaultOptions())
	if err != nil {
		t.Fatalf("Converge failed: %v", err)
	}
	if got != (image.Rectangle{}) {
		t.Errorf("got %v, want the zero rectangle", got)
	}
}

func TestConverge_NoGrowth(t *testing.T) {
	b, _ := pageWithBlot()
	b.Fill(image.Rect(100, 450, 300, 452), bitmap.Black)

	tr := trimmerFor(b)
	prev := b.Bounds()
	passes := 0
	tr.observe = func(axis bitmap.Axis, r image.Rectangle) {
		passes++
		if !r.Empty() && !r.In(prev) {
			t.Errorf("%v pass grew %v to %v", axis, prev, r)
		}
		if r.Dx()*r.Dy() > prev.Dx()*prev.Dy() {
			t.Errorf("%v pass increased the area", axis)
		}
		prev = r
	}

	if _, err := tr.converge(context.Background(), b.Bounds()); err != nil {
		t.Fatalf("converge failed: %v", err)
	}
	if passes < 3 {
		t.Errorf("expected at least 3 passes, got %d", passes)
	}
}

func TestConverge_Idempotent(t *testing.T) {
	b, _ := pageWithBlot()
	ctx := context.Background()

	first, err := Converge(ctx, b, b, b.Bounds(), DefaultOptions())
	if err != nil {
		t.Fatalf("Converge failed: %v", err)
	}
	second, err := Converge(ctx, b, b, first, DefaultOptions())
	if err != nil {
		t.Fatalf("Converge failed: %v", err)
	}
	if first != second {
		t.Errorf("second run changed %v to %v", first, second)
	}
}

func TestConverge_Cancelled(t *testing.T) {
	b, _ := pageWithBlot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Converge(ctx, b, b, b.Bounds(), DefaultOptions())
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled: %v", err)
	}
}

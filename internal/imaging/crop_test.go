package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/content-box-mcp/internal/geometry"
)

// decodeResult decodes the PNG carried by an EncodedImage.
func decodeResult(t *testing.T, r *EncodedImage) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	return img
}

func isDark(c color.Color) bool {
	r, _, _, _ := c.RGBA()
	return r < 0x4000
}

func TestCrop(t *testing.T) {
	img := createScanImage(100, 100, image.Rect(0, 0, 50, 50))

	result, err := Crop(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	out := decodeResult(t, result)
	if !isDark(out.At(25, 25)) {
		t.Error("cropped region should be inked")
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name          string
		x2, y2        int
		scale         float64
		width, height int
	}{
		{"up", 50, 50, 2.0, 100, 100},
		{"down", 100, 100, 0.5, 50, 50},
		{"ignored zero", 40, 30, 0, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, 0, 0, tt.x2, tt.y2, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if result.Width != tt.width || result.Height != tt.height {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.width, tt.height)
			}
		})
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"negative x1", -1, 0, 50, 50},
		{"x2 past width", 0, 0, 101, 50},
		{"y2 past height", 0, 0, 50, 101},
		{"x1 equals x2", 50, 0, 50, 50},
		{"y1 after y2", 0, 60, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestContentRect(t *testing.T) {
	img := createScanImage(100, 80)

	tests := []struct {
		name   string
		box    geometry.Rect
		margin int
		want   image.Rectangle
	}{
		{
			name: "fractional edges widen",
			box:  geometry.Rect{Min: geometry.Point{X: 10.4, Y: 20.2}, Max: geometry.Point{X: 49.5, Y: 39.9}},
			want: image.Rect(10, 20, 50, 40),
		},
		{
			name:   "margin",
			box:    geometry.Rect{Min: geometry.Point{X: 10, Y: 20}, Max: geometry.Point{X: 50, Y: 40}},
			margin: 5,
			want:   image.Rect(5, 15, 55, 45),
		},
		{
			name:   "clipped to image",
			box:    geometry.Rect{Min: geometry.Point{X: -3, Y: 2}, Max: geometry.Point{X: 98, Y: 79}},
			margin: 4,
			want:   image.Rect(0, 0, 100, 80),
		},
		{
			name: "outside image",
			box:  geometry.Rect{Min: geometry.Point{X: 200, Y: 200}, Max: geometry.Point{X: 300, Y: 300}},
			want: image.Rectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentRect(img, tt.box, tt.margin)
			if tt.want.Empty() {
				if !got.Empty() {
					t.Errorf("got %v, want empty", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropToBox(t *testing.T) {
	img := createScanImage(100, 80, image.Rect(20, 20, 60, 40))
	box := geometry.Rect{Min: geometry.Point{X: 20.4, Y: 20.2}, Max: geometry.Point{X: 59.5, Y: 39.9}}

	result, err := CropToBox(img, box, 5, 1.0)
	if err != nil {
		t.Fatalf("CropToBox failed: %v", err)
	}
	if result.Width != 50 || result.Height != 30 {
		t.Fatalf("dimensions: got %dx%d, want 50x30", result.Width, result.Height)
	}

	out := decodeResult(t, result)
	if isDark(out.At(0, 0)) {
		t.Error("margin should be white")
	}
	if !isDark(out.At(5, 5)) {
		t.Error("box corner should be inked")
	}
}

func TestCropToBox_Outside(t *testing.T) {
	img := createScanImage(100, 80)
	box := geometry.Rect{Min: geometry.Point{X: 200, Y: 200}, Max: geometry.Point{X: 300, Y: 300}}

	if _, err := CropToBox(img, box, 0, 1.0); err == nil {
		t.Error("expected error for a box outside the image")
	}
}

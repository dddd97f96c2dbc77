package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// decodeResult turns an EncodedImage back into an image.
func decodeResult(t *testing.T, r *EncodedImage) image.Image {
	t.Helper()
	if r.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", r.MimeType)
	}
	raw, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestRender(t *testing.T) {
	img := createPatternImage(40, 20)

	result, err := Render(img, 1.0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Width != 40 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 40x20", result.Width, result.Height)
	}
	decoded := decodeResult(t, result)
	if r, _, _, _ := decoded.At(5, 5).RGBA(); r>>8 != 255 {
		t.Errorf("top-left should stay red, got r=%d", r>>8)
	}
}

func TestRender_Scale(t *testing.T) {
	img := createInMemoryImage(40, 20, color.RGBA{0, 0, 255, 255})

	tests := []struct {
		name         string
		scale        float64
		wantW, wantH int
	}{
		{"double", 2.0, 80, 40},
		{"half", 0.5, 20, 10},
		{"zero means unscaled", 0, 40, 20},
		{"tiny clamps to one pixel", 0.001, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Render(img, tt.scale)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRender_ScaleLimit(t *testing.T) {
	img := createInMemoryImage(4, 4, color.RGBA{0, 0, 255, 255})

	result, err := Render(img, MaxScale)
	if err != nil {
		t.Fatalf("Render at MaxScale failed: %v", err)
	}
	if result.Width != 32 || result.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 32x32", result.Width, result.Height)
	}

	for _, scale := range []float64{MaxScale + 0.5, 1e6} {
		if _, err := Render(img, scale); err == nil {
			t.Errorf("Render(%g) should fail", scale)
		}
		if _, err := Crop(img, 0, 0, 2, 2, scale); err == nil {
			t.Errorf("Crop(%g) should fail", scale)
		}
	}
}

func TestRender_Gray16Message(t *testing.T) {
	img, err := ToImage(newMessage(t, "mono16", 3, 2, nil))
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	result, err := Render(img, 1.0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, ok := decodeResult(t, result).(*image.Gray16); !ok {
		t.Error("mono16 should round-trip through PNG as 16-bit gray")
	}
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}

	r, g, b, _ := decodeResult(t, result).At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := Crop(img, 0, 0, 50, 50, 2.0)
	if err != nil {
		t.Fatalf("Crop with scale failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("scaled dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
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
		{"x1 >= x2", 50, 0, 50, 50},
		{"y1 > y2", 0, 60, 50, 50},
		{"zero area", 50, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Error("Crop should fail for invalid region")
			}
		})
	}
}

func TestCrop_BayerMessage(t *testing.T) {
	data := []byte{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}
	img, err := ToImage(newMessage(t, "bayer_rggb8", 4, 2, data))
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}

	result, err := Crop(img, 2, 1, 4, 2, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	decoded := decodeResult(t, result)
	if r, _, _, _ := decoded.At(0, 0).RGBA(); r>>8 != 7 {
		t.Errorf("crop origin: got %d, want 7", r>>8)
	}
}

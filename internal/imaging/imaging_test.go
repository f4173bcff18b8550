package imaging

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return &buf
}

func TestProcessReencodesAsJPEG(t *testing.T) {
	photo, err := Process(encodePNG(t, 100, 80))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg output, got %s", photo.MIME)
	}

	img, format, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg format, got %s", format)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Errorf("small image should keep dimensions, got %v", img.Bounds())
	}
}

func TestProcessDownscalesLargeImages(t *testing.T) {
	photo, err := Process(encodePNG(t, 4000, 2000))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w > MaxDimension || h > MaxDimension {
		t.Errorf("expected dimensions within %d, got %dx%d", MaxDimension, w, h)
	}
	if w != MaxDimension {
		t.Errorf("expected long edge scaled to %d, got %d", MaxDimension, w)
	}
	// 2:1 aspect ratio preserved.
	if h != MaxDimension/2 {
		t.Errorf("expected height %d, got %d", MaxDimension/2, h)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := Process(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Error("expected error for non-image input")
	}
}

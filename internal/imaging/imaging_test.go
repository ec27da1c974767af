package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestCheckJPEG(t *testing.T) {
	info, err := CheckBytes(createTestJPEG(100, 60))
	if err != nil {
		t.Fatalf("Check JPEG: %v", err)
	}
	if info.Format != "jpeg" || info.Width != 100 || info.Height != 60 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestCheckPNG(t *testing.T) {
	info, err := CheckBytes(createTestPNG(20, 30))
	if err != nil {
		t.Fatalf("Check PNG: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("expected png, got %s", info.Format)
	}
}

func TestCheckRejectsGIF(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := CheckBytes(buf.Bytes()); err == nil {
		t.Error("expected GIF to be rejected")
	}
}

func TestCheckRejectsNonImage(t *testing.T) {
	if _, err := CheckBytes([]byte("this is not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestCheckRejectsEmpty(t *testing.T) {
	if _, err := CheckBytes(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

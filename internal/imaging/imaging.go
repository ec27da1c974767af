// Package imaging checks that uploaded photos really are images of an
// accepted format. Photos are stored as uploaded; nothing is re-encoded.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// MaxPixels bounds width*height of accepted photos.
const MaxPixels = 40_000_000

// AllowedFormats lists the accepted decoder format names.
var AllowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// Info describes a validated image.
type Info struct {
	Format string
	Width  int
	Height int
}

// Check reads only the image header, validates the format by its magic
// bytes (not trusting the client's filename or headers) and returns the
// image dimensions.
func Check(r io.Reader) (*Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("not a supported image: %w", err)
	}
	if !AllowedFormats[format] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and WEBP accepted)", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// CheckBytes is Check for in-memory data.
func CheckBytes(data []byte) (*Info, error) {
	return Check(bytes.NewReader(data))
}

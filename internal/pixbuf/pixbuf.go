// Package pixbuf converts raw pixel buffers carried in the image-data
// notification hint into PNG files on disk.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// ImageData describes a raw pixel buffer as transmitted in the
// image-data hint: packed rows of RGB or RGBA samples.
type ImageData struct {
	Width         int
	Height        int
	RowStride     int
	HasAlpha      bool
	BitsPerSample int
	Channels      int
	Data          []byte
}

// Decode errors.
var (
	ErrEmptyImage          = errors.New("image has no pixels")
	ErrUnsupportedSamples  = errors.New("only 8 bits per sample is supported")
	ErrUnsupportedChannels = errors.New("only 3 or 4 channels are supported")
	ErrShortData           = errors.New("pixel data shorter than described dimensions")
)

// Validate checks the buffer description against its data.
func (d *ImageData) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return ErrEmptyImage
	}
	if d.BitsPerSample != 8 {
		return ErrUnsupportedSamples
	}
	if d.Channels != 3 && d.Channels != 4 {
		return ErrUnsupportedChannels
	}
	need := d.RowStride*(d.Height-1) + d.Width*d.Channels
	if d.RowStride < d.Width*d.Channels || len(d.Data) < need {
		return ErrShortData
	}
	return nil
}

// Image converts the raw buffer to an image.Image.
func (d *ImageData) Image() (image.Image, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		row := d.Data[y*d.RowStride:]
		for x := 0; x < d.Width; x++ {
			px := row[x*d.Channels:]
			a := uint8(255)
			if d.HasAlpha && d.Channels == 4 {
				a = px[3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: px[0], G: px[1], B: px[2], A: a})
		}
	}
	return img, nil
}

// SavePNG decodes the buffer and writes it as a PNG file at path,
// creating the parent directory if needed.
func (d *ImageData) SavePNG(path string) error {
	img, err := d.Image()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

package pixbuf

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageData_Validate(t *testing.T) {
	tests := []struct {
		name string
		data ImageData
		want error
	}{
		{
			name: "zero width",
			data: ImageData{Width: 0, Height: 2, RowStride: 6, BitsPerSample: 8, Channels: 3},
			want: ErrEmptyImage,
		},
		{
			name: "negative height",
			data: ImageData{Width: 2, Height: -1, RowStride: 6, BitsPerSample: 8, Channels: 3},
			want: ErrEmptyImage,
		},
		{
			name: "16 bits per sample",
			data: ImageData{Width: 1, Height: 1, RowStride: 6, BitsPerSample: 16, Channels: 3, Data: make([]byte, 6)},
			want: ErrUnsupportedSamples,
		},
		{
			name: "grayscale",
			data: ImageData{Width: 1, Height: 1, RowStride: 1, BitsPerSample: 8, Channels: 1, Data: make([]byte, 1)},
			want: ErrUnsupportedChannels,
		},
		{
			name: "truncated data",
			data: ImageData{Width: 2, Height: 2, RowStride: 6, BitsPerSample: 8, Channels: 3, Data: make([]byte, 5)},
			want: ErrShortData,
		},
		{
			name: "stride smaller than row",
			data: ImageData{Width: 4, Height: 1, RowStride: 3, BitsPerSample: 8, Channels: 3, Data: make([]byte, 12)},
			want: ErrShortData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.data.Validate(), tt.want)
		})
	}
}

func TestImageData_ImageRGB(t *testing.T) {
	// 2x1 RGB image: red then green, with padding in the stride.
	d := ImageData{
		Width:         2,
		Height:        1,
		RowStride:     8,
		HasAlpha:      false,
		BitsPerSample: 8,
		Channels:      3,
		Data:          []byte{255, 0, 0, 0, 255, 0, 0, 0},
	}

	img, err := d.Image()
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.At(1, 0))
}

func TestImageData_ImageRGBA(t *testing.T) {
	d := ImageData{
		Width:         1,
		Height:        2,
		RowStride:     4,
		HasAlpha:      true,
		BitsPerSample: 8,
		Channels:      4,
		Data:          []byte{10, 20, 30, 128, 40, 50, 60, 0},
	}

	img, err := d.Image()
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 128}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{R: 40, G: 50, B: 60, A: 0}, img.At(0, 1))
}

func TestImageData_SavePNG(t *testing.T) {
	d := ImageData{
		Width:         2,
		Height:        2,
		RowStride:     6,
		BitsPerSample: 8,
		Channels:      3,
		Data:          make([]byte, 12),
	}

	path := filepath.Join(t.TempDir(), "images", "42.png")
	require.NoError(t, d.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestImageData_SavePNGInvalidBuffer(t *testing.T) {
	d := ImageData{Width: 1, Height: 1, BitsPerSample: 8, Channels: 3}

	err := d.SavePNG(filepath.Join(t.TempDir(), "bad.png"))
	assert.ErrorIs(t, err, ErrShortData)
}

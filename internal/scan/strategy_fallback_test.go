package scan

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barcodeImage(t *testing.T, code string) image.Image {
	t.Helper()

	matrix, err := oned.NewEAN13Writer().Encode(code, gozxing.BarcodeFormat_EAN_13, 400, 120, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{})
			}
		}
	}
	return img
}

func TestFallbackDetectEAN13(t *testing.T) {
	s := newFallbackStrategy()

	code, err := s.Detect(barcodeImage(t, "4006381333931"))
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", code)
}

func TestFallbackDetectEmptyFrame(t *testing.T) {
	s := newFallbackStrategy()

	blank := image.NewGray(image.Rect(0, 0, 400, 120))
	draw.Draw(blank, blank.Bounds(), image.White, image.Point{}, draw.Src)

	_, err := s.Detect(blank)
	assert.ErrorIs(t, err, ErrNoCode)
}

func TestFallbackInterval(t *testing.T) {
	s := newFallbackStrategy()

	assert.Equal(t, FallbackInterval, s.Interval())
	assert.Equal(t, StrategyNameFallback, s.Name())
}

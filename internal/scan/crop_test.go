package scan

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropRectCentered(t *testing.T) {
	r := CropRect(1280, 720)

	assert.Equal(t, 896, r.Dx())
	assert.Equal(t, 180, r.Dy())

	// Centered on both axes.
	assert.Equal(t, (1280-896)/2, r.Min.X)
	assert.Equal(t, (720-180)/2, r.Min.Y)
}

func TestCropRectFloorsTinyFrames(t *testing.T) {
	r := CropRect(32, 24)

	assert.Equal(t, cropMinSize, r.Dx())
	assert.Equal(t, cropMinSize, r.Dy())
	assert.Equal(t, image.Pt(0, 0), r.Min)
}

func TestCropRectZeroFrame(t *testing.T) {
	r := CropRect(0, 0)

	assert.Equal(t, cropMinSize, r.Dx())
	assert.Equal(t, cropMinSize, r.Dy())
}

func TestCropImageSharesPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	out := CropImage(src)

	rect := CropRect(640, 480)
	assert.Equal(t, rect, out.Bounds())
}

// opaqueImage hides SubImage so CropImage has to copy.
type opaqueImage struct {
	image.Image
}

func TestCropImageCopiesWhenNoSubImage(t *testing.T) {
	src := opaqueImage{image.NewRGBA(image.Rect(0, 0, 640, 480))}
	out := CropImage(src)

	rect := CropRect(640, 480)
	assert.Equal(t, rect.Dx(), out.Bounds().Dx())
	assert.Equal(t, rect.Dy(), out.Bounds().Dy())
	assert.Equal(t, image.Pt(0, 0), out.Bounds().Min)
}

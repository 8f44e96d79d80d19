package scan

import (
	"image"
	"image/draw"
)

const (
	cropMinSize     = 64
	cropWidthRatio  = 0.7
	cropHeightRatio = 0.25
)

// CropRect computes the centered region of interest for a frame of the given
// dimensions: a wide, short horizontal band matching barcode ergonomics. Both
// sides are floored at 64px, so degenerate frames yield the floor rectangle
// anchored at the origin instead of panicking downstream.
func CropRect(vw, vh int) image.Rectangle {
	w := int(cropWidthRatio * float64(vw))
	if w < cropMinSize {
		w = cropMinSize
	}
	h := int(cropHeightRatio * float64(vh))
	if h < cropMinSize {
		h = cropMinSize
	}

	x := (vw - w) / 2
	if x < 0 {
		x = 0
	}
	y := (vh - h) / 2
	if y < 0 {
		y = 0
	}
	return image.Rect(x, y, x+w, y+h)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropImage applies the ROI identically for both detection strategies so their
// effective field of view is the same.
func CropImage(img image.Image) image.Image {
	bounds := img.Bounds()
	rect := CropRect(bounds.Dx(), bounds.Dy()).Add(bounds.Min)

	if si, ok := img.(subImager); ok {
		return si.SubImage(rect.Intersect(bounds))
	}

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

package scan

import (
	"image"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// fallbackStrategy decodes frames in-process with the bundled gozxing readers.
// Heavier per tick than the native path, so it runs on a fixed interval.
type fallbackStrategy struct {
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// FallbackInterval bounds CPU/battery cost on the station hardware.
const FallbackInterval = 220 * time.Millisecond

func newFallbackStrategy() DetectionStrategy {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{
			gozxing.BarcodeFormat_EAN_13,
			gozxing.BarcodeFormat_EAN_8,
			gozxing.BarcodeFormat_UPC_A,
			gozxing.BarcodeFormat_UPC_E,
			gozxing.BarcodeFormat_CODE_128,
		},
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	return &fallbackStrategy{
		readers: []gozxing.Reader{
			oned.NewEAN13Reader(),
			oned.NewEAN8Reader(),
			oned.NewUPCAReader(),
			oned.NewUPCEReader(),
			oned.NewCode128Reader(),
		},
		hints: hints,
	}
}

func (s *fallbackStrategy) Name() string { return StrategyNameFallback }

func (s *fallbackStrategy) Interval() time.Duration { return FallbackInterval }

func (s *fallbackStrategy) Detect(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	for _, reader := range s.readers {
		result, decodeErr := reader.Decode(bmp, s.hints)
		if decodeErr == nil && result != nil {
			return result.GetText(), nil
		}
	}
	return "", ErrNoCode
}

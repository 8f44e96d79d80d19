package scan

import (
	"errors"
	"image"
	"time"
)

// ErrNoCode is the expected per-tick outcome: most frames contain no readable
// barcode. It is never surfaced to the user.
var ErrNoCode = errors.New("no barcode in frame")

const (
	StrategyNameNative   = "native"
	StrategyNameFallback = "fallback"
)

// DetectionStrategy probes one cropped frame for a barcode. Implementations
// must treat per-frame failures as transient: return ErrNoCode or any other
// error and the loop simply moves on to the next tick.
type DetectionStrategy interface {
	Name() string
	Detect(img image.Image) (string, error)
	// Interval bounds the probe rate. Zero means probe as fast as frames
	// arrive; the fallback decoder is heavier and asks for a fixed pause.
	Interval() time.Duration
}

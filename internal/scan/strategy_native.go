package scan

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
	"time"
)

// nativeStrategy shells out to the host zbar facility. It is the cheaper
// option when present because decoding happens in optimized native code.
type nativeStrategy struct {
	binPath string
}

// Symbology restriction mirrors the stored code formats and keeps false
// positives down.
var zbarSymbologyArgs = []string{
	"-Sdisable",
	"-Sean13.enable",
	"-Sean8.enable",
	"-Supca.enable",
	"-Supce.enable",
	"-Scode128.enable",
}

func newNativeStrategy(binPath string) DetectionStrategy {
	return &nativeStrategy{binPath: binPath}
}

func (s *nativeStrategy) Name() string { return StrategyNameNative }

func (s *nativeStrategy) Interval() time.Duration { return 0 }

func (s *nativeStrategy) Detect(img image.Image) (string, error) {
	tmp, err := os.CreateTemp("", "scan-*.png")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	args := append([]string{"--raw", "-q"}, zbarSymbologyArgs...)
	args = append(args, tmp.Name())

	var out bytes.Buffer
	cmd := exec.Command(s.binPath, args...)
	cmd.Stdout = &out
	err = cmd.Run()

	// zbarimg exits non-zero when no symbol was found; any output wins
	// regardless of exit status.
	for _, line := range strings.Split(out.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
	if err != nil {
		return "", err
	}
	return "", ErrNoCode
}

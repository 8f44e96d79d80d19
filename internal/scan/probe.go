package scan

import (
	"os/exec"
)

// ProbeFunc selects the detection strategy for a session. The choice is made
// once per session and never re-evaluated mid-loop to avoid strategy flapping.
type ProbeFunc func() DetectionStrategy

// SelectStrategy prefers the host zbar facility when one answers; otherwise
// the bundled gozxing decoder. The fallback always constructs, so a session
// can only end up without a strategy if this function is replaced in tests.
func SelectStrategy() DetectionStrategy {
	if path, err := exec.LookPath("zbarimg"); err == nil {
		if exec.Command(path, "--version").Run() == nil {
			return newNativeStrategy(path)
		}
	}
	return newFallbackStrategy()
}

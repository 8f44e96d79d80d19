package camera

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"concurso-backend/domain"
)

type (
	// TorchControl mutates the supplementary illumination of one device.
	// Availability is a hardware property that cannot be known ahead of time;
	// Supported reflects what the probe found when the device was opened.
	TorchControl interface {
		Supported() bool
		Set(on bool) error
		State() bool
	}

	v4l2Torch struct {
		devicePath string
		ctrl       string

		mu sync.Mutex
		on bool
	}
)

// Torch-capable UVC/CSI cameras expose one of these V4L2 controls.
var torchControls = []string{"torch", "flash_led_mode"}

func newV4L2Torch(devicePath string) TorchControl {
	t := &v4l2Torch{devicePath: devicePath}

	out, err := exec.Command("v4l2-ctl", "-d", devicePath, "--list-ctrls").Output()
	if err != nil {
		return t
	}
	listing := string(out)
	for _, ctrl := range torchControls {
		if strings.Contains(listing, ctrl) {
			t.ctrl = ctrl
			break
		}
	}
	return t
}

func (t *v4l2Torch) Supported() bool {
	return t.ctrl != ""
}

func (t *v4l2Torch) State() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

func (t *v4l2Torch) Set(on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == "" {
		return domain.ErrTorchUnsupported
	}

	value := 0
	if on {
		value = 1
		if t.ctrl == "flash_led_mode" {
			// V4L2_FLASH_LED_MODE_TORCH
			value = 2
		}
	}

	cmd := exec.Command("v4l2-ctl", "-d", t.devicePath,
		fmt.Sprintf("--set-ctrl=%s=%d", t.ctrl, value))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("set %s on %s: %w", t.ctrl, t.devicePath, err)
	}
	t.on = on
	return nil
}

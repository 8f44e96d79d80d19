package camera

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	"gocv.io/x/gocv"

	"concurso-backend/domain"
)

type (
	// Device is one open video stream. It is exclusively owned by the scan
	// session that acquired it; Close must be idempotent because the stream
	// manager releases on every exit path.
	Device interface {
		ReadFrame() (image.Image, error)
		Dimensions() (width, height int)
		Torch() TorchControl
		Close() error
	}

	// OpenOptions carries the acquisition hints. Width/Height are ideals, not
	// requirements; the driver may pick the nearest supported mode.
	OpenOptions struct {
		DeviceID string
		Width    int
		Height   int
	}

	captureDevice struct {
		cap    *gocv.VideoCapture
		mat    gocv.Mat
		torch  TorchControl
		width  int
		height int

		mu     sync.Mutex
		closed bool
	}
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Open acquires the capture device and verifies it actually delivers frames.
// Permission problems, a missing device and an absent video stack all surface
// as ErrCameraUnavailable so callers can show a retry message instead of
// crashing.
func Open(opts OpenOptions) (Device, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	var id interface{} = opts.DeviceID
	if n, err := strconv.Atoi(opts.DeviceID); err == nil {
		id = n
	}

	cap, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCameraUnavailable, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(opts.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(opts.Height))

	mat := gocv.NewMat()
	if ok := cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		cap.Close()
		return nil, fmt.Errorf("%w: device delivered no frames", domain.ErrCameraUnavailable)
	}

	dev := &captureDevice{
		cap:    cap,
		mat:    mat,
		torch:  newV4L2Torch(devicePath(opts.DeviceID)),
		width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
	}
	return dev, nil
}

func devicePath(deviceID string) string {
	if _, err := strconv.Atoi(deviceID); err == nil {
		return "/dev/video" + deviceID
	}
	return deviceID
}

func (d *captureDevice) ReadFrame() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, domain.ErrCameraUnavailable
	}
	if ok := d.cap.Read(&d.mat); !ok || d.mat.Empty() {
		return nil, fmt.Errorf("frame read failed")
	}
	img, err := d.mat.ToImage()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *captureDevice) Dimensions() (int, int) {
	return d.width, d.height
}

func (d *captureDevice) Torch() TorchControl {
	return d.torch
}

func (d *captureDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	// Hardware must not keep the torch lit across sessions.
	if d.torch.Supported() && d.torch.State() {
		_ = d.torch.Set(false)
	}
	d.mat.Close()
	return d.cap.Close()
}

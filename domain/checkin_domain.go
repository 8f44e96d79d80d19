package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCheckin      = "sample marked as received"
	MessageSuccessStartScan    = "scan session started"
	MessageSuccessStopScan     = "scan session stopped"
	MessageSuccessScanStatus   = "scan session status retrieved"
	MessageSuccessToggleTorch  = "torch toggled"
	MessageInfoAlreadyReceived = "sample was already received"
	MessageInfoSampleNotFound  = "no sample matches the scanned code"
	MessageInfoTorchOff        = "torch is not available on this camera"

	MessageFailedCheckin     = "failed to check in sample"
	MessageFailedStartScan   = "failed to start scan session"
	MessageFailedStopScan    = "failed to stop scan session"
	MessageFailedToggleTorch = "failed to toggle torch"
	MessageFailedScanStatus  = "failed to retrieve scan session status"

	ErrCameraUnavailable    = errors.New("camera unavailable")
	ErrStrategyUnavailable  = errors.New("barcode scanning unavailable on this device")
	ErrScanSessionNotActive = errors.New("no scan session is active")
	ErrTorchUnsupported     = errors.New("torch not supported by the active camera")
	ErrCodeEmpty            = errors.New("scanned value contains no digits")
)

// Check-in outcomes. NotFound and AlreadyReceived are informational, not failures.
type CheckinOutcome string

const (
	CheckinSuccess         CheckinOutcome = "success"
	CheckinNotFound        CheckinOutcome = "not_found"
	CheckinAlreadyReceived CheckinOutcome = "already_received"
)

type (
	ResolveCodeRequest struct {
		Code string `json:"code" validate:"required"`
	}

	CheckinResponse struct {
		Outcome    CheckinOutcome  `json:"outcome"`
		Sample     *SampleResponse `json:"sample,omitempty"`
		ReceivedAt *time.Time      `json:"received_at,omitempty"`
		Message    string          `json:"message"`
	}

	StartScanRequest struct {
		DeviceIndex *int `json:"device_index" validate:"omitempty,min=0"`
	}

	StartScanResponse struct {
		SessionToken string `json:"session_token"`
		Strategy     string `json:"strategy"` // "native" or "fallback"
	}

	ScanStatusResponse struct {
		Active       bool             `json:"active"`
		State        string           `json:"state"`
		Strategy     string           `json:"strategy,omitempty"`
		TorchEnabled bool             `json:"torch_enabled"`
		LastResult   *CheckinResponse `json:"last_result,omitempty"`
		Error        string           `json:"error,omitempty"`
	}

	ToggleTorchResponse struct {
		TorchEnabled bool `json:"torch_enabled"`
	}
)

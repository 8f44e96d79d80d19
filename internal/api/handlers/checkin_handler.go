package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"concurso-backend/domain"
	"concurso-backend/internal/api/presenters"
	"concurso-backend/internal/camera"
	"concurso-backend/internal/scan"
	"concurso-backend/internal/utils"
	"concurso-backend/pkg/checkin"
)

type (
	CheckinHandler interface {
		ResolveCode(c *fiber.Ctx) error
		StartScan(c *fiber.Ctx) error
		ScanStatus(c *fiber.Ctx) error
		StopScan(c *fiber.Ctx) error
		ToggleTorch(c *fiber.Ctx) error
	}

	checkinHandler struct {
		checkinService checkin.CheckinService
		scanManager    *scan.Manager
		validator      *validator.Validate
	}
)

func NewCheckinHandler(checkinService checkin.CheckinService, scanManager *scan.Manager, validator *validator.Validate) CheckinHandler {
	return &checkinHandler{
		checkinService: checkinService,
		scanManager:    scanManager,
		validator:      validator,
	}
}

// ResolveCode checks in a sample from a manually typed or externally scanned
// code. The camera pipeline goes through StartScan instead.
func (h *checkinHandler) ResolveCode(c *fiber.Ctx) error {
	req := new(domain.ResolveCodeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckin, err)
	}

	res, err := h.checkinService.Resolve(c.Context(), req.Code)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, res.Message)
}

func (h *checkinHandler) StartScan(c *fiber.Ctx) error {
	req := new(domain.StartScanRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStartScan, err)
	}

	opts := cameraOptions()
	if req.DeviceIndex != nil {
		opts.DeviceID = strconv.Itoa(*req.DeviceIndex)
	}

	res, err := h.scanManager.Start(opts)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrCameraUnavailable) || errors.Is(err, domain.ErrStrategyUnavailable) {
			status = fiber.StatusServiceUnavailable
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedStartScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessStartScan)
}

func (h *checkinHandler) ScanStatus(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.scanManager.Status(), fiber.StatusOK, domain.MessageSuccessScanStatus)
}

func (h *checkinHandler) StopScan(c *fiber.Ctx) error {
	h.scanManager.Stop()
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessStopScan)
}

func (h *checkinHandler) ToggleTorch(c *fiber.Ctx) error {
	enabled, err := h.scanManager.ToggleTorch()
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrTorchUnsupported) {
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedToggleTorch, err)
	}

	return presenters.SuccessResponse(c, domain.ToggleTorchResponse{TorchEnabled: enabled}, fiber.StatusOK, domain.MessageSuccessToggleTorch)
}

func cameraOptions() camera.OpenOptions {
	opts := camera.OpenOptions{DeviceID: utils.GetConfig("CAMERA_DEVICE")}
	if opts.DeviceID == "" {
		opts.DeviceID = "0"
	}
	if w, err := strconv.Atoi(utils.GetConfig("CAMERA_WIDTH")); err == nil && w > 0 {
		opts.Width = w
	}
	if h, err := strconv.Atoi(utils.GetConfig("CAMERA_HEIGHT")); err == nil && h > 0 {
		opts.Height = h
	}
	return opts
}

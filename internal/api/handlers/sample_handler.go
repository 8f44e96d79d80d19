package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"concurso-backend/domain"
	"concurso-backend/internal/api/presenters"
	"concurso-backend/pkg/sample"
)

type (
	SampleHandler interface {
		CreateSample(c *fiber.Ctx) error
		UpdateSample(c *fiber.Ctx) error
		DeleteSample(c *fiber.Ctx) error
		GetSamples(c *fiber.Ctx) error
		GetSampleDetails(c *fiber.Ctx) error
		AssignBarcode(c *fiber.Ctx) error
		UploadTechSheet(c *fiber.Ctx) error
		GetReceptionStats(c *fiber.Ctx) error
		ExportCSV(c *fiber.Ctx) error
	}

	sampleHandler struct {
		sampleService sample.SampleService
		validator     *validator.Validate
	}
)

func NewSampleHandler(sampleService sample.SampleService, validator *validator.Validate) SampleHandler {
	return &sampleHandler{
		sampleService: sampleService,
		validator:     validator,
	}
}

func (h *sampleHandler) CreateSample(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	req := new(domain.CreateSampleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateSample, err)
	}

	res, err := h.sampleService.CreateSample(c.Context(), *req, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateSample, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateSample)
}

func (h *sampleHandler) UpdateSample(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	sampleID := c.Params("id")
	req := new(domain.UpdateSampleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateSample, err)
	}

	if err := h.sampleService.UpdateSample(c.Context(), sampleID, *req, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateSample, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateSample)
}

func (h *sampleHandler) DeleteSample(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	sampleID := c.Params("id")

	if err := h.sampleService.DeleteSample(c.Context(), sampleID, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteSample, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteSample)
}

func (h *sampleHandler) GetSamples(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	filter := sample.SampleFilter{
		CompanyID: c.Query("company_id"),
		Category:  c.Query("category"),
	}
	if role != domain.RoleAdmin {
		filter.UserID = userID
	}
	if received := c.Query("received"); received != "" {
		v := received == "true"
		filter.Received = &v
	}

	samples, count, err := h.sampleService.GetSamples(c.Context(), filter, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSamples, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"samples": samples,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetSamples)
}

func (h *sampleHandler) GetSampleDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	sampleID := c.Params("id")

	res, err := h.sampleService.GetSampleByID(c.Context(), sampleID, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSamples, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSamples)
}

func (h *sampleHandler) AssignBarcode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	sampleID := c.Params("id")

	res, err := h.sampleService.AssignBarcode(c.Context(), sampleID, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignBarcode, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAssignBarcode)
}

func (h *sampleHandler) UploadTechSheet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	req := new(domain.UploadTechSheetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("sheet")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Sheet = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadSheet, err)
	}

	if err := h.sampleService.UploadTechSheet(c.Context(), *req, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadSheet, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadSheet)
}

func (h *sampleHandler) GetReceptionStats(c *fiber.Ctx) error {
	stats, err := h.sampleService.GetReceptionStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *sampleHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.sampleService.ExportCSV(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportSamples, err)
	}

	filename := fmt.Sprintf("samples-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

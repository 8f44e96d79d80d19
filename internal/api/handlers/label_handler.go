package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"concurso-backend/domain"
	"concurso-backend/internal/api/presenters"
	"concurso-backend/pkg/label"
)

type (
	LabelHandler interface {
		RenderLabel(c *fiber.Ctx) error
		PrintSheet(c *fiber.Ctx) error
	}

	labelHandler struct {
		labelService label.LabelService
		validator    *validator.Validate
	}
)

func NewLabelHandler(labelService label.LabelService, validator *validator.Validate) LabelHandler {
	return &labelHandler{
		labelService: labelService,
		validator:    validator,
	}
}

// RenderLabel serves the sample barcode as inline SVG so the frontend can
// embed or print it directly.
func (h *labelHandler) RenderLabel(c *fiber.Ctx) error {
	sampleID := c.Params("id")

	opts := domain.RenderLabelOptions{
		ShowLabel: c.Query("show_label", "true") == "true",
	}
	if w, err := strconv.Atoi(c.Query("width")); err == nil && w > 0 {
		opts.Width = w
	}
	if hh, err := strconv.Atoi(c.Query("height")); err == nil && hh > 0 {
		opts.Height = hh
	}

	svg, err := h.labelService.RenderSampleLabel(c.Context(), sampleID, opts)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRenderLabel, err)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

// PrintSheet renders a printable HTML grid of labels for the requested
// samples.
func (h *labelHandler) PrintSheet(c *fiber.Ctx) error {
	req := new(domain.PrintSheetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPrintSheet, err)
	}

	html, err := h.labelService.PrintSheet(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPrintSheet, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"concurso-backend/domain"
	"concurso-backend/internal/api/presenters"
	"concurso-backend/pkg/company"
)

type (
	CompanyHandler interface {
		CreateCompany(c *fiber.Ctx) error
		UpdateCompany(c *fiber.Ctx) error
		DeleteCompany(c *fiber.Ctx) error
		GetCompanies(c *fiber.Ctx) error
		GetCompanyDetails(c *fiber.Ctx) error
		UploadLogo(c *fiber.Ctx) error
	}

	companyHandler struct {
		companyService company.CompanyService
		validator      *validator.Validate
	}
)

func NewCompanyHandler(companyService company.CompanyService, validator *validator.Validate) CompanyHandler {
	return &companyHandler{
		companyService: companyService,
		validator:      validator,
	}
}

func (h *companyHandler) CreateCompany(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateCompanyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCompany, err)
	}

	res, err := h.companyService.CreateCompany(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCompany, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCompany)
}

func (h *companyHandler) UpdateCompany(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	companyID := c.Params("id")
	req := new(domain.UpdateCompanyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCompany, err)
	}

	if err := h.companyService.UpdateCompany(c.Context(), companyID, *req, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCompany, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateCompany)
}

func (h *companyHandler) DeleteCompany(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	companyID := c.Params("id")

	if err := h.companyService.DeleteCompany(c.Context(), companyID, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteCompany, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCompany)
}

func (h *companyHandler) GetCompanies(c *fiber.Ctx) error {
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

	companies, count, err := h.companyService.GetCompanies(c.Context(), userID, role, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCompanies, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"companies": companies,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetCompanies)
}

func (h *companyHandler) GetCompanyDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	companyID := c.Params("id")

	res, err := h.companyService.GetCompanyByID(c.Context(), companyID, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCompanies, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCompanies)
}

func (h *companyHandler) UploadLogo(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	req := new(domain.UploadCompanyLogoRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Logo = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadLogo, err)
	}

	if err := h.companyService.UploadLogo(c.Context(), *req, userID, role); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadLogo, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadLogo)
}

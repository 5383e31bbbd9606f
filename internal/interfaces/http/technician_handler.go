package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/application/usecase"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// TechnicianHandler maneja los técnicos de campo (protegido).
type TechnicianHandler struct {
	uc *usecase.TechnicianUseCase
}

// NewTechnicianHandler construye el handler.
func NewTechnicianHandler(uc *usecase.TechnicianUseCase) *TechnicianHandler {
	return &TechnicianHandler{uc: uc}
}

// Create da de alta un técnico.
func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.TechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	technician, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTechnicianResponse(technician))
}

// Update edita datos de un técnico (incluye activar/desactivar).
func (h *TechnicianHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.TechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	technician, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTechnicianResponse(technician))
}

// List lista técnicos; con ?active=true solo los activos.
func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	onlyActive := c.QueryBool("active", false)
	technicians, err := h.uc.List(c.Context(), companyID, onlyActive)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TechnicianResponse, 0, len(technicians))
	for _, t := range technicians {
		out = append(out, toTechnicianResponse(t))
	}
	return c.JSON(out)
}

func toTechnicianResponse(t *entity.Technician) dto.TechnicianResponse {
	return dto.TechnicianResponse{
		ID:           t.ID,
		Name:         t.Name,
		Registration: t.Registration,
		Role:         t.Role,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
	}
}

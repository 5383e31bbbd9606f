package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// SerialHandler maneja las unidades seriadas (protegido).
type SerialHandler struct {
	uc *registry.UseCase
}

// NewSerialHandler construye el handler.
func NewSerialHandler(uc *registry.UseCase) *SerialHandler {
	return &SerialHandler{uc: uc}
}

// Register da de alta N números de serie nuevos para un producto. Cada alta
// es independiente; la respuesta es un BatchResult con creados y fallidos.
func (h *SerialHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.RegisterSerialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	in.ProductID = c.Params("id")
	if len(in.SerialNumbers) == 0 {
		return badRequest(c, "serial_numbers es requerido")
	}
	result, err := h.uc.RegisterUnits(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if len(result.Failed) > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(result)
}

// List lista las unidades disponibles de un producto; con
// ?include_maintenance=true incluye las que están en mantenimiento.
func (h *SerialHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	includeMaintenance := c.QueryBool("include_maintenance", false)
	units, err := h.uc.FindAvailable(c.Context(), companyID, c.Params("id"), includeMaintenance)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SerialUnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toSerialResponse(u))
	}
	return c.JSON(out)
}

// Resolve busca una unidad por el texto escaneado o tecleado del serial.
// La comparación ignora mayúsculas y acentos.
func (h *SerialHandler) Resolve(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ResolveSerialRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "query inválida")
	}
	if in.ProductID == "" || in.Text == "" {
		return badRequest(c, "product_id y text son requeridos")
	}
	unit, err := h.uc.ResolveBySerialText(c.Context(), companyID, in.ProductID, in.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSerialResponse(unit))
}

// Transition mueve una unidad a otro estado del ciclo de vida.
func (h *SerialHandler) Transition(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.TransitionSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "status es requerido")
	}
	unit, err := h.uc.Transition(c.Context(), companyID, c.Params("id"), entity.SerialStatus(in.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSerialResponse(unit))
}

func toSerialResponse(u *entity.SerialUnit) dto.SerialUnitResponse {
	return dto.SerialUnitResponse{
		ID:           u.ID,
		ProductID:    u.ProductID,
		SerialNumber: u.SerialNumber,
		Status:       string(u.Status),
		AssignedTo:   u.AssignedTo,
		Location:     u.Location,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

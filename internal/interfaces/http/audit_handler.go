package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/audit"
	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// AuditHandler maneja el libro de ocurrencias (protegido).
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Open abre una ocurrencia (defeito, furto, garantia).
func (h *AuditHandler) Open(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.OpenAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ProductID == "" || in.Type == "" {
		return badRequest(c, "product_id y type son requeridos")
	}
	record, err := h.uc.Open(c.Context(), audit.OpenInput{
		CompanyID:    companyID,
		UserID:       userID,
		ProductID:    in.ProductID,
		SerialUnitID: in.SerialUnitID,
		SerialText:   in.SerialText,
		Type:         entity.AuditType(in.Type),
		Quantity:     in.Quantity,
		Description:  in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(audit.ToResponse(record))
}

// List lista ocurrencias con filtros opcionales por producto, unidad, tipo
// y estado.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	filter := repository.AuditFilter{
		ProductID:    c.Query("product_id"),
		SerialUnitID: c.Query("serial_unit_id"),
		Type:         entity.AuditType(c.Query("type")),
		Status:       entity.AuditStatus(c.Query("status")),
		Limit:        c.QueryInt("limit", 20),
		Offset:       c.QueryInt("offset", 0),
	}
	records, err := h.uc.List(c.Context(), companyID, filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditResponse, 0, len(records))
	for _, r := range records {
		out = append(out, audit.ToResponse(r))
	}
	return c.JSON(out)
}

// GetByID obtiene una ocurrencia.
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	record, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(audit.ToResponse(record))
}

// WarrantyBatch registra el envío a garantía de varias unidades (o una
// cantidad a granel). Responde 207 si el lote quedó parcial.
func (h *AuditHandler) WarrantyBatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.WarrantyBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ProductID == "" {
		return badRequest(c, "product_id es requerido")
	}
	result, err := h.uc.SubmitWarrantyBatch(c.Context(), audit.WarrantyBatchInput{
		CompanyID:     companyID,
		UserID:        userID,
		ProductID:     in.ProductID,
		SerialUnitIDs: in.SerialUnitIDs,
		Quantity:      in.Quantity,
		Description:   in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if len(result.Failed) > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(result)
}

// Resolve cierra una ocurrencia, opcionalmente creando el registro de
// resolución hijo y moviendo la unidad al destino indicado.
func (h *AuditHandler) Resolve(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.ResolveAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	record, err := h.uc.Resolve(c.Context(), audit.ResolveInput{
		CompanyID:        companyID,
		UserID:           userID,
		AuditID:          c.Params("id"),
		Notes:            in.Notes,
		CreateResolution: in.CreateResolution,
		SerialOutcome:    entity.SerialStatus(in.SerialOutcome),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(audit.ToResponse(record))
}

// UpdateStatus mueve una ocurrencia a un estado intermedio.
func (h *AuditHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.UpdateAuditStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, "status es requerido")
	}
	record, err := h.uc.UpdateStatus(c.Context(), companyID, c.Params("id"), entity.AuditStatus(in.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(audit.ToResponse(record))
}

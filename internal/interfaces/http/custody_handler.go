package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/custody"
	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// CustodyHandler maneja las custodias de activos (protegido).
type CustodyHandler struct {
	uc    *custody.UseCase
	pdf   custody.SheetPDFGenerator
	excel custody.SheetExcelGenerator
}

// NewCustodyHandler construye el handler.
func NewCustodyHandler(uc *custody.UseCase, pdf custody.SheetPDFGenerator, excel custody.SheetExcelGenerator) *CustodyHandler {
	return &CustodyHandler{uc: uc, pdf: pdf, excel: excel}
}

// Issue registra la entrega de un activo a un técnico. La firma es
// obligatoria.
func (h *CustodyHandler) Issue(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.IssueCustodyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.TechnicianID == "" || in.AssetType == "" {
		return badRequest(c, "technician_id y asset_type son requeridos")
	}
	assignment, err := h.uc.Issue(c.Context(), custody.IssueInput{
		CompanyID:    companyID,
		TechnicianID: in.TechnicianID,
		AssetType:    entity.AssetType(in.AssetType),
		SerialUnitID: in.SerialUnitID,
		SerialText:   in.SerialText,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		SignatureURL: in.SignatureURL,
		Notes:        in.Notes,
		AssignedAt:   in.AssignedAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCustodyResponse(assignment))
}

// ListActive lista las custodias vigentes de un técnico
// (?technician_id=...) o de toda la empresa.
func (h *CustodyHandler) ListActive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	assignments, err := h.uc.ActiveAssignments(c.Context(), companyID, c.Query("technician_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustodyResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toCustodyResponse(a))
	}
	return c.JSON(out)
}

// Return registra la devolución de un activo; el motivo es obligatorio.
func (h *CustodyHandler) Return(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ReturnCustodyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	assignment, err := h.uc.Return(c.Context(), companyID, c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCustodyResponse(assignment))
}

// SheetPDF genera el termo de responsabilidade del técnico en PDF.
func (h *CustodyHandler) SheetPDF(c *fiber.Ctx) error {
	sheet, err := h.buildSheet(c)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.GenerateCustodySheet(c.Context(), sheet)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="custodia-%s.pdf"`, c.Params("id")))
	return c.Send(doc)
}

// SheetExcel genera la planilla de custodias del técnico en XLSX.
func (h *CustodyHandler) SheetExcel(c *fiber.Ctx) error {
	sheet, err := h.buildSheet(c)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.excel.GenerateCustodySheet(c.Context(), sheet)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="custodia-%s.xlsx"`, c.Params("id")))
	return c.Send(doc)
}

func (h *CustodyHandler) buildSheet(c *fiber.Ctx) (*dto.CustodySheet, error) {
	return h.uc.BuildSheet(c.Context(), GetCompanyID(c), c.Params("id"))
}

func toCustodyResponse(a *entity.CustodyAssignment) dto.CustodyResponse {
	return dto.CustodyResponse{
		ID:           a.ID,
		TechnicianID: a.TechnicianID,
		AssetType:    string(a.AssetType),
		SerialUnitID: a.SerialUnitID,
		ProductID:    a.ProductID,
		Quantity:     a.Quantity,
		SignatureURL: a.SignatureURL,
		Notes:        a.Notes,
		AssignedAt:   a.AssignedAt,
		ReturnedAt:   a.ReturnedAt,
	}
}

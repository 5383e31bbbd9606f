package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CampoStock-api/internal/application/audit"
	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/application/reconciliation"
)

// InventoryHandler maneja conteos físicos y salud de stock (protegido).
type InventoryHandler struct {
	uc    *reconciliation.UseCase
	excel reconciliation.InventoryExcelGenerator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *reconciliation.UseCase, excel reconciliation.InventoryExcelGenerator) *InventoryHandler {
	return &InventoryHandler{uc: uc, excel: excel}
}

// Count registra un conteo físico y reconcilia el contador del producto.
// Siempre crea una ocurrencia inventario resuelta, incluso sin diferencia.
func (h *InventoryHandler) Count(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CountStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.ProductID == "" {
		return badRequest(c, "product_id es requerido")
	}
	result, err := h.uc.CountAndReconcile(c.Context(), reconciliation.CountInput{
		CompanyID:    companyID,
		UserID:       userID,
		ProductID:    in.ProductID,
		RealQuantity: in.RealQuantity,
		Notes:        in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CountStockResponse{
		Audit:        audit.ToResponse(result.Audit),
		StockUpdated: result.StockUpdated,
		Difference:   result.Difference,
	})
}

// Health devuelve la salud de stock por categoría. Con ?category= devuelve
// solo esa categoría; sin filtro, el resumen de las cinco.
func (h *InventoryHandler) Health(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if category := c.Query("category"); category != "" {
		out, err := h.uc.CategoryHealth(c.Context(), companyID, category)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.HealthSummary(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportExcel genera el informe de inventario en XLSX.
func (h *InventoryHandler) ReportExcel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	products, err := h.uc.ListForReport(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.excel.GenerateInventoryReport(c.Context(), products)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.xlsx"`)
	return c.Send(doc)
}

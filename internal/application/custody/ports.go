package custody

import (
	"context"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
)

// SheetPDFGenerator genera el termo de responsabilidade de un técnico en PDF.
type SheetPDFGenerator interface {
	GenerateCustodySheet(ctx context.Context, sheet *dto.CustodySheet) ([]byte, error)
}

// SheetExcelGenerator genera la planilla de custodias de un técnico en XLSX.
type SheetExcelGenerator interface {
	GenerateCustodySheet(ctx context.Context, sheet *dto.CustodySheet) ([]byte, error)
}

package custody

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// BuildSheet arma la planilla de responsabilidad de un técnico: una fila por
// custodia (vigentes y devueltas), con fechas de entrega/devolución y motivo,
// agrupadas por categoría del producto.
func (uc *UseCase) BuildSheet(ctx context.Context, companyID, technicianID string) (*dto.CustodySheet, error) {
	technician, err := uc.ownedTechnician(companyID, technicianID)
	if err != nil {
		return nil, err
	}
	assignments, err := uc.custodyRepo.ListByTechnician(companyID, technicianID)
	if err != nil {
		return nil, err
	}

	sheet := &dto.CustodySheet{
		TechnicianName: technician.Name,
		Registration:   technician.Registration,
		GeneratedAt:    time.Now(),
	}
	for _, a := range assignments {
		row := dto.CustodySheetRow{
			Quantity:     a.Quantity,
			AssignedAt:   a.AssignedAt,
			ReturnedAt:   a.ReturnedAt,
			ReturnReason: extractReturnReason(a.Notes),
		}
		switch a.AssetType {
		case entity.AssetSerialUnit:
			unit, err := uc.serialRepo.GetByID(a.SerialUnitID)
			if err != nil {
				return nil, err
			}
			if unit == nil {
				continue
			}
			row.SerialNumber = unit.SerialNumber
			product, err := uc.productRepo.GetByID(unit.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				row.Category = product.Category
				row.ProductName = product.Name
				row.Unit = product.Unit
			}
		case entity.AssetProduct:
			product, err := uc.productRepo.GetByID(a.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				row.Category = product.Category
				row.ProductName = product.Name
				row.Unit = product.Unit
			}
		}
		if a.Active() {
			sheet.ActiveCount += a.Quantity
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	// Orden estable: categoría, producto, fecha de entrega.
	sort.SliceStable(sheet.Rows, func(i, j int) bool {
		a, b := sheet.Rows[i], sheet.Rows[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		return a.AssignedAt.Before(b.AssignedAt)
	})
	return sheet, nil
}

// extractReturnReason recupera el motivo anexado por Return en las notas.
func extractReturnReason(notes string) string {
	const marker = "Devolução: "
	idx := strings.LastIndex(notes, marker)
	if idx < 0 {
		return ""
	}
	return notes[idx+len(marker):]
}

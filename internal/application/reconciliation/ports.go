package reconciliation

import (
	"context"

	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// InventoryExcelGenerator genera el informe XLSX de inventario.
type InventoryExcelGenerator interface {
	GenerateInventoryReport(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Da al par de escrituras del conteo
// (ocurrencia + contador de stock) la atomicidad que el almacén soporte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		auditRepo repository.AuditRepository,
		productRepo repository.ProductRepository,
	) error) error
}

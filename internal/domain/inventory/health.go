// Package inventory contiene lógica pura de inventario (sin IO).
package inventory

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// Severity severidad agregada de salud de stock para una categoría.
type Severity string

const (
	SeverityOK   Severity = "ok"
	SeverityLow  Severity = "low"
	SeverityZero Severity = "zero"
)

// StockHealth resultado de clasificar un conjunto de productos.
type StockHealth struct {
	Zero     int // productos con CurrentStock == 0
	Low      int // productos con 0 < CurrentStock < MinStock (MinStock > 0)
	Severity Severity
	Count    int // cantidad que muestra el badge agregado
}

// ClassifyStockHealth particiona productos en stock cero y stock bajo.
// Un producto con MinStock <= 0 nunca cuenta como bajo. Para el badge
// agregado, el conteo de stock cero tiene prioridad sobre el de stock bajo
// cuando ambos son distintos de cero.
func ClassifyStockHealth(products []*entity.Product) StockHealth {
	var h StockHealth
	for _, p := range products {
		switch {
		case p.CurrentStock == 0:
			h.Zero++
		case p.MinStock > 0 && p.CurrentStock < p.MinStock:
			h.Low++
		}
	}
	switch {
	case h.Zero > 0:
		h.Severity = SeverityZero
		h.Count = h.Zero
	case h.Low > 0:
		h.Severity = SeverityLow
		h.Count = h.Low
	default:
		h.Severity = SeverityOK
	}
	return h
}

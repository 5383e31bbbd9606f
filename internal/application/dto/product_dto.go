package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	IsSerialized bool            `json:"is_serialized"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	Unit         string          `json:"unit"`
	Cost         decimal.Decimal `json:"cost"`
	Location     string          `json:"location"`
}

// UpdateProductRequest edición de datos descriptivos (el stock se mueve por
// reconciliación o por entradas de seriales, nunca por este request).
type UpdateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	MinStock int             `json:"min_stock"`
	Unit     string          `json:"unit"`
	Cost     decimal.Decimal `json:"cost"`
	Location string          `json:"location"`
}

// ProductResponse producto con su cantidad autoritativa etiquetada.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	IsSerialized bool            `json:"is_serialized"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	Unit         string          `json:"unit"`
	Cost         decimal.Decimal `json:"cost"`
	Location     string          `json:"location"`
	// StockSource: "counted" (contador autoritativo) o "serial_derived"
	// (cuenta de unidades seriadas activas; el contador es indicativo).
	StockSource string    `json:"stock_source"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

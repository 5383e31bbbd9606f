package dto

import "time"

// CountStockRequest conteo físico de un producto.
type CountStockRequest struct {
	ProductID    string `json:"product_id"`
	RealQuantity int    `json:"real_quantity"`
	Notes        string `json:"notes"`
}

// CountStockResponse resultado del conteo: la ocurrencia de inventario
// creada y si el contador del producto fue reescrito.
type CountStockResponse struct {
	Audit        AuditResponse `json:"audit"`
	StockUpdated bool          `json:"stock_updated"`
	Difference   int           `json:"difference"`
}

// CategoryHealthResponse salud de stock agregada de una categoría.
type CategoryHealthResponse struct {
	Category string `json:"category"`
	Zero     int    `json:"zero_stock"`
	Low      int    `json:"low_stock"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// TechnicianRequest alta/edición de técnico.
type TechnicianRequest struct {
	Name         string `json:"name"`
	Registration string `json:"registration"`
	Role         string `json:"role"`
	Active       *bool  `json:"active"`
}

// TechnicianResponse técnico de campo.
type TechnicianResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Registration string    `json:"registration"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

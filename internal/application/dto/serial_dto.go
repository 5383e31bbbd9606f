package dto

import "time"

// RegisterSerialsRequest entrada de stock seriado: N números de serie nuevos
// para un producto. Cada alta es una escritura independiente (BatchResult).
type RegisterSerialsRequest struct {
	ProductID     string   `json:"product_id"`
	SerialNumbers []string `json:"serial_numbers"`
	Location      string   `json:"location"`
}

// ResolveSerialRequest búsqueda de una unidad por texto escaneado/tecleado.
type ResolveSerialRequest struct {
	ProductID string `json:"product_id" query:"product_id"`
	Text      string `json:"text" query:"text"`
}

// TransitionSerialRequest cambio de estado de una unidad.
type TransitionSerialRequest struct {
	Status string `json:"status"`
}

// SerialUnitResponse unidad seriada.
type SerialUnitResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	SerialNumber string    `json:"serial_number"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assigned_to,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

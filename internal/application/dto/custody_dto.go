package dto

import "time"

// IssueCustodyRequest entrega de un activo a un técnico. Para unidades
// seriadas SerialUnitID (o SerialText para resolución por escaneo); para
// granel ProductID + Quantity. La firma es obligatoria.
type IssueCustodyRequest struct {
	TechnicianID string    `json:"technician_id"`
	AssetType    string    `json:"asset_type"`
	SerialUnitID string    `json:"serial_unit_id"`
	SerialText   string    `json:"serial_text"`
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	SignatureURL string    `json:"signature_url"`
	Notes        string    `json:"notes"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// ReturnCustodyRequest devolución de un activo; el motivo es obligatorio.
type ReturnCustodyRequest struct {
	Reason string `json:"reason"`
}

// CustodyResponse custodia.
type CustodyResponse struct {
	ID           string     `json:"id"`
	TechnicianID string     `json:"technician_id"`
	AssetType    string     `json:"asset_type"`
	SerialUnitID string     `json:"serial_unit_id,omitempty"`
	ProductID    string     `json:"product_id,omitempty"`
	Quantity     int        `json:"quantity"`
	SignatureURL string     `json:"signature_url"`
	Notes        string     `json:"notes"`
	AssignedAt   time.Time  `json:"assigned_at"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
}

// CustodySheetRow una fila de la planilla de responsabilidad de un técnico.
type CustodySheetRow struct {
	Category     string     `json:"category"`
	ProductName  string     `json:"product_name"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Quantity     int        `json:"quantity"`
	Unit         string     `json:"unit"`
	AssignedAt   time.Time  `json:"assigned_at"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	ReturnReason string     `json:"return_reason,omitempty"`
}

// CustodySheet planilla exportable de un técnico, filas agrupadas por
// categoría en orden estable.
type CustodySheet struct {
	TechnicianName string            `json:"technician_name"`
	Registration   string            `json:"registration"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Rows           []CustodySheetRow `json:"rows"`
	ActiveCount    int               `json:"active_count"`
}

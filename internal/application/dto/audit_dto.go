package dto

import "time"

// OpenAuditRequest apertura de una ocurrencia contra un producto y
// opcionalmente contra una unidad seriada (por ID o por texto de serial).
type OpenAuditRequest struct {
	ProductID    string `json:"product_id"`
	SerialUnitID string `json:"serial_unit_id"`
	SerialText   string `json:"serial_text"` // alternativa: resolver por escaneo
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	Description  string `json:"description"`
}

// WarrantyBatchRequest envío a garantía por lotes: para producto seriado,
// unidades seleccionadas (todas em_manutencao); para producto a granel,
// una cantidad.
type WarrantyBatchRequest struct {
	ProductID     string   `json:"product_id"`
	SerialUnitIDs []string `json:"serial_unit_ids"`
	Quantity      int      `json:"quantity"`
	Description   string   `json:"description"`
}

// ResolveAuditRequest cierre de una ocurrencia. SerialOutcome opcional:
// "disponivel" (vuelve al stock) o "descartado" (baja definitiva).
type ResolveAuditRequest struct {
	Notes            string `json:"notes"`
	CreateResolution bool   `json:"create_resolution"`
	SerialOutcome    string `json:"serial_outcome"`
}

// UpdateAuditStatusRequest movimiento de estado intermedio
// (em_analise, cancelado, recebido).
type UpdateAuditStatusRequest struct {
	Status string `json:"status"`
}

// AuditResponse ocurrencia del libro.
type AuditResponse struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	SerialUnitID  string     `json:"serial_unit_id,omitempty"`
	Type          string     `json:"type"`
	Quantity      int        `json:"quantity"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	ParentAuditID string     `json:"parent_audit_id,omitempty"`
	ReportedBy    string     `json:"reported_by"`
	ReportedAt    time.Time  `json:"reported_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

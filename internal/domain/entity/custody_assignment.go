package entity

import "time"

// AssetType qué clase de activo sale en custodia.
type AssetType string

const (
	AssetSerialUnit AssetType = "serial_number" // una unidad seriada
	AssetProduct    AssetType = "product"       // cantidad de producto a granel
)

// Valid verifica el tipo de activo.
func (t AssetType) Valid() bool {
	return t == AssetSerialUnit || t == AssetProduct
}

// CustodyAssignment representa la entrega de un activo a un técnico.
// Invariante: exactamente uno de SerialUnitID/ProductID está definido,
// coherente con AssetType. Activa mientras ReturnedAt sea nil; una unidad
// seriada bajo custodia activa está em_uso. Se muta una sola vez, en la
// devolución (ReturnedAt + motivo anexado a Notes).
type CustodyAssignment struct {
	ID           string
	CompanyID    string
	TechnicianID string
	AssetType    AssetType
	SerialUnitID string
	ProductID    string
	Quantity     int    // 1 para unidades seriadas
	SignatureURL string // captura de firma del técnico (opaca)
	Notes        string // texto libre + motivo de devolución anexado
	AssignedAt   time.Time
	ReturnedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active informa si la custodia sigue vigente (sin devolución).
func (a *CustodyAssignment) Active() bool {
	return a.ReturnedAt == nil
}

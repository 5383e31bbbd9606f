package entity

import "time"

// AuditType tipo de ocurrencia registrada en el libro de auditorías.
type AuditType string

const (
	AuditDefeito    AuditType = "defeito"    // defecto reportado
	AuditFurto      AuditType = "furto"      // hurto/robo
	AuditGarantia   AuditType = "garantia"   // envío a garantía
	AuditInventario AuditType = "inventario" // conteo físico de inventario
	AuditResolucao  AuditType = "resolucao"  // cierre de una ocurrencia padre
)

// Valid verifica que el tipo sea uno de los soportados.
func (t AuditType) Valid() bool {
	switch t {
	case AuditDefeito, AuditFurto, AuditGarantia, AuditInventario, AuditResolucao:
		return true
	}
	return false
}

// AuditStatus estado del flujo de una ocurrencia.
type AuditStatus string

const (
	AuditAberto    AuditStatus = "aberto"
	AuditEmAnalise AuditStatus = "em_analise"
	AuditResolvido AuditStatus = "resolvido"
	AuditCancelado AuditStatus = "cancelado"
	AuditEnviado   AuditStatus = "enviado"  // garantía: despachado al proveedor
	AuditRecebido  AuditStatus = "recebido" // garantía: devuelto por el proveedor
)

// Valid verifica que el estado sea uno de los soportados.
func (s AuditStatus) Valid() bool {
	switch s {
	case AuditAberto, AuditEmAnalise, AuditResolvido, AuditCancelado, AuditEnviado, AuditRecebido:
		return true
	}
	return false
}

// InitialStatus devuelve el estado inicial de una ocurrencia según su tipo:
// garantía nace despachada (enviado), el conteo de inventario nace cerrado
// (resolvido, es evidencia de verificación), el resto nace abierto.
func (t AuditType) InitialStatus() AuditStatus {
	switch t {
	case AuditGarantia:
		return AuditEnviado
	case AuditInventario:
		return AuditResolvido
	default:
		return AuditAberto
	}
}

// MinDescriptionLen longitud mínima de la descripción de una ocurrencia.
const MinDescriptionLen = 10

// AuditRecord representa una ocurrencia contra un producto o contra una
// unidad seriada concreta. Invariante: si SerialUnitID != "" entonces
// Quantity == 1 (una ocurrencia = una unidad física). Nunca se borra.
type AuditRecord struct {
	ID            string
	CompanyID     string
	ProductID     string
	SerialUnitID  string // vacío para productos a granel
	Type          AuditType
	Quantity      int // >= 1; == 1 si hay serial
	Description   string
	Status        AuditStatus
	ParentAuditID string // para resolucao: la ocurrencia que cierra
	ReportedBy    string // UserID
	ReportedAt    time.Time
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

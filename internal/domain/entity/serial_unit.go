package entity

import "time"

// SerialStatus estado del ciclo de vida de una unidad seriada.
type SerialStatus string

// Estados válidos (valores persistidos tal cual).
const (
	SerialDisponivel   SerialStatus = "disponivel"    // en stock, libre
	SerialEmUso        SerialStatus = "em_uso"        // en poder de un técnico
	SerialEmManutencao SerialStatus = "em_manutencao" // en revisión/garantía
	SerialDescartado   SerialStatus = "descartado"    // baja definitiva (terminal)
)

// Valid verifica que el estado sea uno de los soportados.
func (s SerialStatus) Valid() bool {
	switch s {
	case SerialDisponivel, SerialEmUso, SerialEmManutencao, SerialDescartado:
		return true
	}
	return false
}

// CanTransition informa si el paso s -> to está permitido por el ciclo de vida.
// El switch es exhaustivo a propósito: agregar un estado nuevo obliga a
// decidir aquí sus salidas.
func (s SerialStatus) CanTransition(to SerialStatus) bool {
	if !to.Valid() || s == to {
		return false
	}
	switch s {
	case SerialDisponivel:
		return to == SerialEmUso || to == SerialEmManutencao || to == SerialDescartado
	case SerialEmUso:
		return to == SerialDisponivel || to == SerialEmManutencao
	case SerialEmManutencao:
		return to == SerialDisponivel || to == SerialDescartado
	case SerialDescartado:
		return false
	}
	return false
}

// SerialUnit representa una unidad física individualmente rastreada de un
// producto seriado. SerialNumber es único por empresa (case-insensitive).
type SerialUnit struct {
	ID           string
	CompanyID    string
	ProductID    string
	SerialNumber string
	Status       SerialStatus
	AssignedTo   string // TechnicianID cuando está em_uso; vacío si no
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active informa si la unidad cuenta para el stock derivado del producto
// (todo estado menos descartado).
func (u *SerialUnit) Active() bool {
	return u.Status != SerialDescartado
}

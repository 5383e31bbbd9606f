package entity

import "time"

// Technician representa a un empleado de campo que puede recibir activos en
// custodia. Registration es la matrícula interna (única por empresa).
type Technician struct {
	ID           string
	CompanyID    string
	Name         string
	Registration string
	Role         string // eletricista, encanador, auxiliar, ...
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

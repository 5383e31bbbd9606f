package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto del almacén de campo (valores persistidos tal cual).
const (
	CategoryEPI          = "epi"          // equipo de protección individual
	CategoryEPC          = "epc"          // equipo de protección colectiva
	CategoryFerramentas  = "ferramentas"  // herramientas
	CategoryMateriais    = "materiais"    // materiales de consumo
	CategoryEquipamentos = "equipamentos" // equipos
)

// ValidCategory verifica que la categoría sea una de las soportadas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryEPI, CategoryEPC, CategoryFerramentas, CategoryMateriais, CategoryEquipamentos:
		return true
	}
	return false
}

// Product representa un SKU del almacén (multi-tenant por CompanyID).
// Si IsSerialized es true, CurrentStock es solo indicativo: la cuenta
// autoritativa son las unidades seriadas no descartadas (ver Stock).
type Product struct {
	ID           string
	CompanyID    string
	Code         string // código único por empresa
	Name         string
	Category     string // ver constantes Category*
	IsSerialized bool
	CurrentStock int
	MinStock     int
	Unit         string          // un, par, m, kg, ...
	Cost         decimal.Decimal // costo unitario de reposición
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockKind indica de dónde sale la cantidad autoritativa de un producto.
type StockKind int

const (
	// StockCounted: CurrentStock es la verdad (productos a granel).
	StockCounted StockKind = iota
	// StockSerialDerived: la verdad es el conteo de unidades seriadas activas.
	StockSerialDerived
)

// Stock es la cantidad de un producto etiquetada con su origen, para que el
// caller nunca confunda el contador almacenado con la cuenta derivada.
type Stock struct {
	Kind     StockKind
	Quantity int
}

// CountedStock construye un Stock autoritativo por contador.
func CountedStock(qty int) Stock {
	return Stock{Kind: StockCounted, Quantity: qty}
}

// SerialDerivedStock construye un Stock derivado del registro de seriales.
func SerialDerivedStock(qty int) Stock {
	return Stock{Kind: StockSerialDerived, Quantity: qty}
}

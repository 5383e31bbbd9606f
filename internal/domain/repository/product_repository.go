package repository

import "github.com/jhoicas/CampoStock-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe CurrentStock directamente (solo el motor de
	// reconciliación debe usarlo; el resto del sistema pasa por movimientos).
	UpdateStock(productID string, quantity int) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListByCategory(companyID, category string) ([]*entity.Product, error)
	Delete(id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	// HasActiveModule informa si la empresa tiene el módulo SaaS activo y
	// sin vencer. Error solo ante fallos de infraestructura.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

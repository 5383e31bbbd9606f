package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa (stock,
// fleet, hr, service). Es el único punto que conoce la lógica de activación.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si no lo tiene contratado; error solo ante
// fallos de infraestructura.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

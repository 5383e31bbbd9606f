// Package registry implementa el registro de unidades seriadas: ciclo de
// vida, búsqueda por texto escaneado y entradas de stock seriado.
package registry

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

// UseCase casos de uso del registro de seriales.
type UseCase struct {
	serialRepo  repository.SerialUnitRepository
	productRepo repository.ProductRepository
}

// New construye el caso de uso.
func New(serialRepo repository.SerialUnitRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{serialRepo: serialRepo, productRepo: productRepo}
}

// FindAvailable lista unidades disponivel de un producto. Con
// includeMaintenance también incluye em_manutencao (para armar el lote de
// envío a garantía).
func (uc *UseCase) FindAvailable(ctx context.Context, companyID, productID string, includeMaintenance bool) ([]*entity.SerialUnit, error) {
	product, err := uc.ownedProduct(companyID, productID)
	if err != nil {
		return nil, err
	}
	statuses := []entity.SerialStatus{entity.SerialDisponivel}
	if includeMaintenance {
		statuses = append(statuses, entity.SerialEmManutencao)
	}
	return uc.serialRepo.ListByProductAndStatus(product.ID, statuses...)
}

// ResolveBySerialText busca una unidad por el texto de un escaneo o tecleo:
// coincidencia exacta case-insensitive, con acentos plegados, limitada al
// producto si productID no es vacío.
func (uc *UseCase) ResolveBySerialText(ctx context.Context, companyID, productID, text string) (*entity.SerialUnit, error) {
	serial := NormalizeSerial(text)
	if serial == "" {
		return nil, domain.ErrInvalidInput
	}
	if productID != "" {
		if _, err := uc.ownedProduct(companyID, productID); err != nil {
			return nil, err
		}
	}
	unit, err := uc.serialRepo.GetBySerialNumber(companyID, productID, serial)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return unit, nil
}

// Transition mueve una unidad a un estado destino validando el ciclo de
// vida. Limpia AssignedTo al salir de em_uso.
func (uc *UseCase) Transition(ctx context.Context, companyID, unitID string, to entity.SerialStatus) (*entity.SerialUnit, error) {
	unit, err := uc.ownedUnit(companyID, unitID)
	if err != nil {
		return nil, err
	}
	if !unit.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	unit.Status = to
	if to != entity.SerialEmUso {
		unit.AssignedTo = ""
	}
	unit.UpdatedAt = time.Now()
	if err := uc.serialRepo.Update(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// AssignUnit pasa una unidad a em_uso y registra al técnico responsable en
// una sola escritura, para que estado y asignación queden siempre juntos.
func (uc *UseCase) AssignUnit(ctx context.Context, companyID, unitID, technicianID string) (*entity.SerialUnit, error) {
	unit, err := uc.ownedUnit(companyID, unitID)
	if err != nil {
		return nil, err
	}
	if !unit.Status.CanTransition(entity.SerialEmUso) {
		return nil, domain.ErrInvalidTransition
	}
	unit.Status = entity.SerialEmUso
	unit.AssignedTo = technicianID
	unit.UpdatedAt = time.Now()
	if err := uc.serialRepo.Update(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// RegisterUnits da entrada a N números de serie nuevos de un producto
// seriado, cada uno como escritura independiente. Duplicados no abortan el
// lote: se acumulan en el BatchResult.
func (uc *UseCase) RegisterUnits(ctx context.Context, companyID string, in dto.RegisterSerialsRequest) (*dto.BatchResult, error) {
	product, err := uc.ownedProduct(companyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsSerialized {
		return nil, domain.ErrInvalidInput
	}
	if len(in.SerialNumbers) == 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.BatchResult{}
	now := time.Now()
	for _, raw := range in.SerialNumbers {
		serial := NormalizeSerial(raw)
		if serial == "" {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: raw, Reason: "serial vacío"})
			continue
		}
		unit := &entity.SerialUnit{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			ProductID:    product.ID,
			SerialNumber: serial,
			Status:       entity.SerialDisponivel,
			Location:     in.Location,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.serialRepo.Create(unit); err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: serial, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, unit.ID)
	}
	return result, nil
}

// AuthoritativeStock devuelve la cantidad autoritativa del producto: el
// contador para granel, la cuenta de unidades activas para seriados.
func (uc *UseCase) AuthoritativeStock(ctx context.Context, product *entity.Product) (entity.Stock, error) {
	if !product.IsSerialized {
		return entity.CountedStock(product.CurrentStock), nil
	}
	n, err := uc.serialRepo.CountActiveByProduct(product.ID)
	if err != nil {
		return entity.Stock{}, err
	}
	return entity.SerialDerivedStock(n), nil
}

func (uc *UseCase) ownedProduct(companyID, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (uc *UseCase) ownedUnit(companyID, unitID string) (*entity.SerialUnit, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.serialRepo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if unit.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return unit, nil
}

// foldAccents quita marcas diacríticas (NFD -> remover Mn -> NFC).
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSerial normaliza el texto de un escaneo para comparar seriales:
// recorta espacios, pliega acentos y pasa a mayúsculas.
func NormalizeSerial(text string) string {
	trimmed := strings.TrimSpace(text)
	folded, _, err := transform.String(foldAccents, trimmed)
	if err != nil {
		folded = trimmed
	}
	return strings.ToUpper(folded)
}

package registry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CampoStock-api/internal/application/dto"
	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetByCompanyAndCode(companyID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) UpdateStock(productID string, quantity int) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentStock = quantity
	}
	return nil
}
func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) ListByCategory(companyID, category string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type memSerialRepo struct {
	units map[string]*entity.SerialUnit
}

func newMemSerialRepo(units ...*entity.SerialUnit) *memSerialRepo {
	r := &memSerialRepo{units: map[string]*entity.SerialUnit{}}
	for _, u := range units {
		r.units[u.ID] = u
	}
	return r
}

func (r *memSerialRepo) Create(u *entity.SerialUnit) error {
	// unicidad por empresa, case-insensitive, como el índice en Postgres
	for _, existing := range r.units {
		if existing.CompanyID == u.CompanyID && strings.EqualFold(existing.SerialNumber, u.SerialNumber) {
			return domain.ErrDuplicate
		}
	}
	r.units[u.ID] = u
	return nil
}
func (r *memSerialRepo) GetByID(id string) (*entity.SerialUnit, error) { return r.units[id], nil }
func (r *memSerialRepo) GetBySerialNumber(companyID, productID, serial string) (*entity.SerialUnit, error) {
	for _, u := range r.units {
		if u.CompanyID != companyID || !strings.EqualFold(u.SerialNumber, serial) {
			continue
		}
		if productID != "" && u.ProductID != productID {
			continue
		}
		return u, nil
	}
	return nil, nil
}
func (r *memSerialRepo) ListByProductAndStatus(productID string, statuses ...entity.SerialStatus) ([]*entity.SerialUnit, error) {
	var out []*entity.SerialUnit
	for _, u := range r.units {
		if u.ProductID != productID {
			continue
		}
		for _, s := range statuses {
			if u.Status == s {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}
func (r *memSerialRepo) CountActiveByProduct(productID string) (int, error) {
	n := 0
	for _, u := range r.units {
		if u.ProductID == productID && u.Active() {
			n++
		}
	}
	return n, nil
}
func (r *memSerialRepo) Update(u *entity.SerialUnit) error { r.units[u.ID] = u; return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
)

func serializedProduct(id string) *entity.Product {
	return &entity.Product{ID: id, CompanyID: companyA, Code: id, Name: id, Category: entity.CategoryFerramentas, IsSerialized: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUnits_LoteCompleto(t *testing.T) {
	product := serializedProduct("prod-1")
	serials := newMemSerialRepo()
	uc := registry.New(serials, newMemProductRepo(product))

	result, err := uc.RegisterUnits(context.Background(), companyA, dto.RegisterSerialsRequest{
		ProductID:     product.ID,
		SerialNumbers: []string{"MK-001", "mk-002", "  MK-003  "},
	})
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 3)
	assert.Empty(t, result.Failed)
	assert.False(t, result.Partial())

	// los seriales quedan normalizados a mayúsculas y sin espacios
	u, err := serials.GetBySerialNumber(companyA, product.ID, "MK-002")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "MK-002", u.SerialNumber)
	assert.Equal(t, entity.SerialDisponivel, u.Status)
}

// Un duplicado dentro del lote no aborta el resto: las altas son escrituras
// independientes y el fallo queda en el BatchResult.
func TestRegisterUnits_DuplicadoNoAbortaElLote(t *testing.T) {
	product := serializedProduct("prod-1")
	serials := newMemSerialRepo()
	uc := registry.New(serials, newMemProductRepo(product))

	result, err := uc.RegisterUnits(context.Background(), companyA, dto.RegisterSerialsRequest{
		ProductID:     product.ID,
		SerialNumbers: []string{"MK-001", "mk-001", "MK-002"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "MK-001", result.Failed[0].ID)
	assert.True(t, result.Partial())
}

func TestRegisterUnits_ProductoGranelRechazado(t *testing.T) {
	bulk := &entity.Product{ID: "prod-bulk", CompanyID: companyA, IsSerialized: false}
	uc := registry.New(newMemSerialRepo(), newMemProductRepo(bulk))

	_, err := uc.RegisterUnits(context.Background(), companyA, dto.RegisterSerialsRequest{
		ProductID:     bulk.ID,
		SerialNumbers: []string{"MK-001"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La resolución por texto ignora mayúsculas, espacios y acentos: lo que
// escanea la pistola no siempre coincide byte a byte con lo registrado.
func TestResolveBySerialText_CaseInsensitive(t *testing.T) {
	product := serializedProduct("prod-1")
	unit := &entity.SerialUnit{ID: "unit-1", CompanyID: companyA, ProductID: product.ID, SerialNumber: "MK-900", Status: entity.SerialDisponivel}
	uc := registry.New(newMemSerialRepo(unit), newMemProductRepo(product))

	for _, text := range []string{"mk-900", "MK-900", "  Mk-900 "} {
		got, err := uc.ResolveBySerialText(context.Background(), companyA, product.ID, text)
		require.NoErrorf(t, err, "texto %q", text)
		assert.Equal(t, unit.ID, got.ID)
	}
}

func TestResolveBySerialText_NoEncontrado(t *testing.T) {
	product := serializedProduct("prod-1")
	uc := registry.New(newMemSerialRepo(), newMemProductRepo(product))

	_, err := uc.ResolveBySerialText(context.Background(), companyA, product.ID, "NADA-123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalizeSerial(t *testing.T) {
	assert.Equal(t, "MK-900", registry.NormalizeSerial("  mk-900 "))
	assert.Equal(t, "MAQUINA-1", registry.NormalizeSerial("máquina-1"))
	assert.Equal(t, "", registry.NormalizeSerial("   "))
}

func TestTransition_LimpiaAssignedToAlSalirDeUso(t *testing.T) {
	unit := &entity.SerialUnit{ID: "unit-1", CompanyID: companyA, ProductID: "prod-1", SerialNumber: "MK-1", Status: entity.SerialEmUso, AssignedTo: "tech-1"}
	uc := registry.New(newMemSerialRepo(unit), newMemProductRepo())

	got, err := uc.Transition(context.Background(), companyA, unit.ID, entity.SerialDisponivel)
	require.NoError(t, err)
	assert.Equal(t, entity.SerialDisponivel, got.Status)
	assert.Empty(t, got.AssignedTo)
}

func TestTransition_InvalidaRechazada(t *testing.T) {
	unit := &entity.SerialUnit{ID: "unit-1", CompanyID: companyA, ProductID: "prod-1", SerialNumber: "MK-1", Status: entity.SerialDescartado}
	uc := registry.New(newMemSerialRepo(unit), newMemProductRepo())

	_, err := uc.Transition(context.Background(), companyA, unit.ID, entity.SerialDisponivel)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// la unidad no cambió
	assert.Equal(t, entity.SerialDescartado, unit.Status)
}

// El aislamiento multi-tenant se aplica antes que cualquier otra validación.
func TestAssignUnit_EstadoYResponsableJuntos(t *testing.T) {
	unit := &entity.SerialUnit{ID: "unit-1", CompanyID: companyA, ProductID: "prod-1", SerialNumber: "MK-1", Status: entity.SerialDisponivel}
	repo := newMemSerialRepo(unit)
	uc := registry.New(repo, newMemProductRepo())

	got, err := uc.AssignUnit(context.Background(), companyA, unit.ID, "tech-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SerialEmUso, got.Status)
	assert.Equal(t, "tech-1", got.AssignedTo)

	// una unidad ya em_uso no puede asignarse de nuevo
	_, err = uc.AssignUnit(context.Background(), companyA, unit.ID, "tech-2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_OtraEmpresaProhibida(t *testing.T) {
	unit := &entity.SerialUnit{ID: "unit-1", CompanyID: companyA, ProductID: "prod-1", SerialNumber: "MK-1", Status: entity.SerialDisponivel}
	uc := registry.New(newMemSerialRepo(unit), newMemProductRepo())

	_, err := uc.Transition(context.Background(), companyB, unit.ID, entity.SerialEmUso)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthoritativeStock(t *testing.T) {
	serialized := serializedProduct("prod-s")
	serialized.CurrentStock = 99 // contador desactualizado a propósito
	bulk := &entity.Product{ID: "prod-b", CompanyID: companyA, IsSerialized: false, CurrentStock: 7}
	serials := newMemSerialRepo(
		&entity.SerialUnit{ID: "u1", CompanyID: companyA, ProductID: serialized.ID, SerialNumber: "S1", Status: entity.SerialDisponivel},
		&entity.SerialUnit{ID: "u2", CompanyID: companyA, ProductID: serialized.ID, SerialNumber: "S2", Status: entity.SerialEmUso},
		&entity.SerialUnit{ID: "u3", CompanyID: companyA, ProductID: serialized.ID, SerialNumber: "S3", Status: entity.SerialDescartado},
	)
	uc := registry.New(serials, newMemProductRepo(serialized, bulk))

	// seriado: cuenta de unidades activas, el contador se ignora
	stock, err := uc.AuthoritativeStock(context.Background(), serialized)
	require.NoError(t, err)
	assert.Equal(t, entity.StockSerialDerived, stock.Kind)
	assert.Equal(t, 2, stock.Quantity)

	// granel: el contador manda
	stock, err = uc.AuthoritativeStock(context.Background(), bulk)
	require.NoError(t, err)
	assert.Equal(t, entity.StockCounted, stock.Kind)
	assert.Equal(t, 7, stock.Quantity)
}

func TestFindAvailable_IncluyeMantenimientoOpcional(t *testing.T) {
	product := serializedProduct("prod-1")
	serials := newMemSerialRepo(
		&entity.SerialUnit{ID: "u1", CompanyID: companyA, ProductID: product.ID, SerialNumber: "S1", Status: entity.SerialDisponivel},
		&entity.SerialUnit{ID: "u2", CompanyID: companyA, ProductID: product.ID, SerialNumber: "S2", Status: entity.SerialEmManutencao},
		&entity.SerialUnit{ID: "u3", CompanyID: companyA, ProductID: product.ID, SerialNumber: "S3", Status: entity.SerialEmUso},
	)
	uc := registry.New(serials, newMemProductRepo(product))

	units, err := uc.FindAvailable(context.Background(), companyA, product.ID, false)
	require.NoError(t, err)
	assert.Len(t, units, 1)

	units, err = uc.FindAvailable(context.Background(), companyA, product.ID, true)
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

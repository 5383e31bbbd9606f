package reconciliation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CampoStock-api/internal/application/reconciliation"
	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
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

func (r *memProductRepo) Create(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *memProductRepo) Update(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error                     { delete(r.products, id); return nil }
func (r *memProductRepo) GetByCompanyAndCode(companyID, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) UpdateStock(productID string, quantity int) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentStock = quantity
	}
	return nil
}
func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
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

type memSerialRepo struct {
	activeByProduct map[string]int
}

func (r *memSerialRepo) Create(u *entity.SerialUnit) error             { return nil }
func (r *memSerialRepo) GetByID(id string) (*entity.SerialUnit, error) { return nil, nil }
func (r *memSerialRepo) Update(u *entity.SerialUnit) error             { return nil }
func (r *memSerialRepo) GetBySerialNumber(companyID, productID, serial string) (*entity.SerialUnit, error) {
	return nil, nil
}
func (r *memSerialRepo) ListByProductAndStatus(productID string, statuses ...entity.SerialStatus) ([]*entity.SerialUnit, error) {
	return nil, nil
}
func (r *memSerialRepo) CountActiveByProduct(productID string) (int, error) {
	return r.activeByProduct[productID], nil
}

type memAuditRepo struct {
	records []*entity.AuditRecord
}

func (r *memAuditRepo) Create(record *entity.AuditRecord) error {
	r.records = append(r.records, record)
	return nil
}
func (r *memAuditRepo) GetByID(id string) (*entity.AuditRecord, error) { return nil, nil }
func (r *memAuditRepo) Update(record *entity.AuditRecord) error        { return nil }
func (r *memAuditRepo) ListByCompany(companyID string, filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	return nil, nil
}

// stubTxRunner ejecuta la función directamente con los repos dados, sin
// transacción real.
type stubTxRunner struct {
	audits   *memAuditRepo
	products *memProductRepo
	calls    int
}

func (tr *stubTxRunner) Run(ctx context.Context, fn func(repository.AuditRepository, repository.ProductRepository) error) error {
	tr.calls++
	return fn(tr.audits, tr.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const companyA = "company-a"

type fixture struct {
	uc       *reconciliation.UseCase
	audits   *memAuditRepo
	products *memProductRepo
	serials  *memSerialRepo
	tx       *stubTxRunner
}

func newFixture(products ...*entity.Product) fixture {
	productRepo := newMemProductRepo(products...)
	auditRepo := &memAuditRepo{}
	serialRepo := &memSerialRepo{activeByProduct: map[string]int{}}
	tx := &stubTxRunner{audits: auditRepo, products: productRepo}
	return fixture{
		uc:       reconciliation.New(tx, productRepo, serialRepo),
		audits:   auditRepo,
		products: productRepo,
		serials:  serialRepo,
		tx:       tx,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CountAndReconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestCountAndReconcile_CantidadNegativa(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CountAndReconcile(context.Background(), reconciliation.CountInput{
		CompanyID: companyA, ProductID: "prod-1", RealQuantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Diferencia negativa: el contador se reescribe al valor contado y la
// ocurrencia lleva |diferencia| y un resumen con ambos valores.
func TestCountAndReconcile_DiferenciaReescribeStock(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, CurrentStock: 10}
	f := newFixture(product)

	result, err := f.uc.CountAndReconcile(context.Background(), reconciliation.CountInput{
		CompanyID: companyA, UserID: "user-a", ProductID: product.ID, RealQuantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, -3, result.Difference)
	assert.True(t, result.StockUpdated)
	assert.Equal(t, 7, product.CurrentStock)

	require.Len(t, f.audits.records, 1)
	record := f.audits.records[0]
	assert.Equal(t, entity.AuditInventario, record.Type)
	assert.Equal(t, entity.AuditResolvido, record.Status)
	assert.Equal(t, 3, record.Quantity)
	require.NotNil(t, record.ResolvedAt)
	assert.Contains(t, record.Description, "sistema=10")
	assert.Contains(t, record.Description, "contado=7")
	assert.Contains(t, record.Description, "diferença=-3")
	assert.Equal(t, 1, f.tx.calls, "ambas escrituras van en una transacción")
}

// Conteo sin diferencia: igual queda la ocurrencia como evidencia de
// verificación, con cantidad 1, y el contador no se toca.
func TestCountAndReconcile_SinDiferenciaDejaEvidencia(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, CurrentStock: 12}
	f := newFixture(product)

	result, err := f.uc.CountAndReconcile(context.Background(), reconciliation.CountInput{
		CompanyID: companyA, ProductID: product.ID, RealQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Difference)
	assert.False(t, result.StockUpdated)
	assert.Equal(t, 12, product.CurrentStock)

	require.Len(t, f.audits.records, 1)
	assert.Equal(t, 1, f.audits.records[0].Quantity)
	assert.Contains(t, f.audits.records[0].Description, "diferença=+0")
}

// Producto seriado: la cantidad de sistema sale del registro de seriales y
// el contador jamás se reescribe, aunque haya diferencia.
func TestCountAndReconcile_SeriadoNoTocaContador(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, IsSerialized: true, CurrentStock: 99}
	f := newFixture(product)
	f.serials.activeByProduct[product.ID] = 4

	result, err := f.uc.CountAndReconcile(context.Background(), reconciliation.CountInput{
		CompanyID: companyA, ProductID: product.ID, RealQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, result.Difference)
	assert.False(t, result.StockUpdated)
	assert.Equal(t, 99, product.CurrentStock, "el contador indicativo queda intacto")
	assert.Contains(t, f.audits.records[0].Description, "sistema=4")
	assert.Contains(t, f.audits.records[0].Description, "derivada do registro de seriais")
}

func TestCountAndReconcile_NotasSeAnexan(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, CurrentStock: 5}
	f := newFixture(product)

	_, err := f.uc.CountAndReconcile(context.Background(), reconciliation.CountInput{
		CompanyID: companyA, ProductID: product.ID, RealQuantity: 5,
		Notes: "conferido na prateleira B",
	})
	require.NoError(t, err)
	assert.Contains(t, f.audits.records[0].Description, "Obs: conferido na prateleira B")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryHealth(t *testing.T) {
	f := newFixture(
		&entity.Product{ID: "p1", CompanyID: companyA, Category: entity.CategoryEPI, CurrentStock: 0, MinStock: 5},
		&entity.Product{ID: "p2", CompanyID: companyA, Category: entity.CategoryEPI, CurrentStock: 2, MinStock: 5},
		&entity.Product{ID: "p3", CompanyID: companyA, Category: entity.CategoryEPI, CurrentStock: 50, MinStock: 5},
	)

	h, err := f.uc.CategoryHealth(context.Background(), companyA, entity.CategoryEPI)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Zero)
	assert.Equal(t, 1, h.Low)
	assert.Equal(t, "zero", h.Severity)
	assert.Equal(t, 1, h.Count)
}

func TestCategoryHealth_CategoriaInvalida(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CategoryHealth(context.Background(), companyA, "juguetes")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHealthSummary_CubreLasCincoCategorias(t *testing.T) {
	f := newFixture()
	out, err := f.uc.HealthSummary(context.Background(), companyA)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for _, h := range out {
		assert.Equal(t, "ok", h.Severity)
	}
}

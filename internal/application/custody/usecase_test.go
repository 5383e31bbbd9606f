package custody_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CampoStock-api/internal/application/custody"
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

func (r *memProductRepo) Create(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *memProductRepo) Update(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error                     { delete(r.products, id); return nil }
func (r *memProductRepo) GetByCompanyAndCode(companyID, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) UpdateStock(productID string, quantity int) error { return nil }
func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListByCategory(companyID, category string) ([]*entity.Product, error) {
	return nil, nil
}

// memSerialRepo devuelve y guarda copias, como el adaptador de PostgreSQL:
// cada lectura es un struct fresco y solo Update persiste cambios.
type memSerialRepo struct {
	units map[string]*entity.SerialUnit
}

func newMemSerialRepo(units ...*entity.SerialUnit) *memSerialRepo {
	r := &memSerialRepo{units: map[string]*entity.SerialUnit{}}
	for _, u := range units {
		stored := *u
		r.units[u.ID] = &stored
	}
	return r
}

func (r *memSerialRepo) Create(u *entity.SerialUnit) error {
	stored := *u
	r.units[u.ID] = &stored
	return nil
}
func (r *memSerialRepo) GetByID(id string) (*entity.SerialUnit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	fresh := *u
	return &fresh, nil
}
func (r *memSerialRepo) Update(u *entity.SerialUnit) error {
	stored := *u
	r.units[u.ID] = &stored
	return nil
}
func (r *memSerialRepo) GetBySerialNumber(companyID, productID, serial string) (*entity.SerialUnit, error) {
	for _, u := range r.units {
		if u.CompanyID == companyID && strings.EqualFold(u.SerialNumber, serial) {
			if productID == "" || u.ProductID == productID {
				fresh := *u
				return &fresh, nil
			}
		}
	}
	return nil, nil
}
func (r *memSerialRepo) ListByProductAndStatus(productID string, statuses ...entity.SerialStatus) ([]*entity.SerialUnit, error) {
	return nil, nil
}
func (r *memSerialRepo) CountActiveByProduct(productID string) (int, error) { return 0, nil }

type memTechnicianRepo struct {
	technicians map[string]*entity.Technician
}

func newMemTechnicianRepo(technicians ...*entity.Technician) *memTechnicianRepo {
	r := &memTechnicianRepo{technicians: map[string]*entity.Technician{}}
	for _, tech := range technicians {
		r.technicians[tech.ID] = tech
	}
	return r
}

func (r *memTechnicianRepo) Create(tech *entity.Technician) error { r.technicians[tech.ID] = tech; return nil }
func (r *memTechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	return r.technicians[id], nil
}
func (r *memTechnicianRepo) Update(tech *entity.Technician) error { r.technicians[tech.ID] = tech; return nil }
func (r *memTechnicianRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.Technician, error) {
	return nil, nil
}

type memCustodyRepo struct {
	assignments map[string]*entity.CustodyAssignment
	order       []string
}

func newMemCustodyRepo() *memCustodyRepo {
	return &memCustodyRepo{assignments: map[string]*entity.CustodyAssignment{}}
}

func (r *memCustodyRepo) Create(a *entity.CustodyAssignment) error {
	r.assignments[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}
func (r *memCustodyRepo) GetByID(id string) (*entity.CustodyAssignment, error) {
	return r.assignments[id], nil
}
func (r *memCustodyRepo) Update(a *entity.CustodyAssignment) error {
	r.assignments[a.ID] = a
	return nil
}
func (r *memCustodyRepo) ListActive(companyID, technicianID string) ([]*entity.CustodyAssignment, error) {
	var out []*entity.CustodyAssignment
	for _, id := range r.order {
		a := r.assignments[id]
		if a.CompanyID != companyID || !a.Active() {
			continue
		}
		if technicianID != "" && a.TechnicianID != technicianID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
func (r *memCustodyRepo) ListByTechnician(companyID, technicianID string) ([]*entity.CustodyAssignment, error) {
	var out []*entity.CustodyAssignment
	for _, id := range r.order {
		a := r.assignments[id]
		if a.CompanyID == companyID && a.TechnicianID == technicianID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memCustodyRepo) GetActiveBySerialUnit(serialUnitID string) (*entity.CustodyAssignment, error) {
	for _, a := range r.assignments {
		if a.SerialUnitID == serialUnitID && a.Active() {
			return a, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA  = "company-a"
	signature = "https://cdn.example/firma-123.png"
)

type fixture struct {
	uc        *custody.UseCase
	custodies *memCustodyRepo
	serials   *memSerialRepo
	products  *memProductRepo
}

func newFixture(products []*entity.Product, units []*entity.SerialUnit, technicians []*entity.Technician) fixture {
	productRepo := newMemProductRepo(products...)
	serialRepo := newMemSerialRepo(units...)
	custodyRepo := newMemCustodyRepo()
	technicianRepo := newMemTechnicianRepo(technicians...)
	reg := registry.New(serialRepo, productRepo)
	return fixture{
		uc:        custody.New(custodyRepo, technicianRepo, productRepo, serialRepo, reg),
		custodies: custodyRepo,
		serials:   serialRepo,
		products:  productRepo,
	}
}

// storedUnit relee la unidad desde el repositorio: las aserciones van contra
// lo persistido, no contra el struct que el caso de uso tuvo en la mano.
func (f fixture) storedUnit(t *testing.T, id string) *entity.SerialUnit {
	t.Helper()
	u, err := f.serials.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func technician(id string) *entity.Technician {
	return &entity.Technician{ID: id, CompanyID: companyA, Name: "João da Silva", Registration: "T-" + id, Active: true}
}

func availableUnit(id, productID string) *entity.SerialUnit {
	return &entity.SerialUnit{ID: id, CompanyID: companyA, ProductID: productID, SerialNumber: strings.ToUpper(id), Status: entity.SerialDisponivel}
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue
// ──────────────────────────────────────────────────────────────────────────────

// Sin firma no se crea nada, antes de cualquier otra validación.
func TestIssue_FirmaObligatoria(t *testing.T) {
	f := newFixture(nil, nil, []*entity.Technician{technician("tech-1")})

	_, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: "unit-1",
		SignatureURL: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)
	assert.Empty(t, f.custodies.order, "no debe quedar custodia creada")
}

// Entrega de unidad seriada: custodia de cantidad 1 y la unidad pasa a
// em_uso asignada al técnico.
func TestIssue_UnidadSeriada(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, Name: "Makita HP333", Category: entity.CategoryFerramentas, IsSerialized: true}
	unit := availableUnit("unit-1", product.ID)
	f := newFixture([]*entity.Product{product}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, assignment.Quantity)
	assert.Equal(t, unit.ID, assignment.SerialUnitID)
	assert.Nil(t, assignment.ReturnedAt)

	stored := f.storedUnit(t, unit.ID)
	assert.Equal(t, entity.SerialEmUso, stored.Status)
	assert.Equal(t, "tech-1", stored.AssignedTo)
}

// La entrega también acepta el texto del escaneo en vez del ID.
func TestIssue_PorTextoDeSerial(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, IsSerialized: true}
	unit := availableUnit("unit-9", product.ID)
	unit.SerialNumber = "MK-450"
	f := newFixture([]*entity.Product{product}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialText: " mk-450 ", ProductID: product.ID,
		SignatureURL: signature,
	})
	require.NoError(t, err)
	assert.Equal(t, unit.ID, assignment.SerialUnitID)
}

// Custodia exclusiva: una unidad ya entregada no puede entregarse de nuevo.
func TestIssue_UnidadYaEntregada(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, IsSerialized: true}
	unit := availableUnit("unit-1", product.ID)
	f := newFixture([]*entity.Product{product}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1"), technician("tech-2")})

	_, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature,
	})
	require.NoError(t, err)

	// la unidad quedó em_uso, la segunda entrega choca contra el ciclo de vida
	_, err = f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-2",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Granel: la cantidad se valida contra el stock pero el contador no se
// descuenta, la custodia es un registro paralelo.
func TestIssue_GranelNoDescuentaStock(t *testing.T) {
	product := &entity.Product{ID: "prod-b", CompanyID: companyA, CurrentStock: 10}
	f := newFixture([]*entity.Product{product}, nil, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetProduct, ProductID: product.ID, Quantity: 4,
		SignatureURL: signature,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, assignment.Quantity)
	assert.Equal(t, 10, product.CurrentStock, "el contador queda intacto")
}

func TestIssue_GranelSobreStock(t *testing.T) {
	product := &entity.Product{ID: "prod-b", CompanyID: companyA, CurrentStock: 3}
	f := newFixture([]*entity.Product{product}, nil, []*entity.Technician{technician("tech-1")})

	_, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetProduct, ProductID: product.ID, Quantity: 5,
		SignatureURL: signature,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Return
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_CicloCompleto(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, IsSerialized: true}
	unit := availableUnit("unit-1", product.ID)
	f := newFixture([]*entity.Product{product}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature, Notes: "entrega de obra",
	})
	require.NoError(t, err)

	returned, err := f.uc.Return(context.Background(), companyA, assignment.ID, "fim da obra")
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, "entrega de obra | Devolução: fim da obra", returned.Notes)

	// la unidad volvió al stock y quedó sin técnico asignado
	stored := f.storedUnit(t, unit.ID)
	assert.Equal(t, entity.SerialDisponivel, stored.Status)
	assert.Empty(t, stored.AssignedTo)

	// ya no figura entre las custodias vigentes
	active, err := f.uc.ActiveAssignments(context.Background(), companyA, "tech-1")
	require.NoError(t, err)
	assert.Empty(t, active)
}

// La devolución tolera que la unidad ya esté disponivel (reintento tras un
// cierre de custodia fallido): cierra la custodia sin chocar con el ciclo
// de vida.
func TestReturn_UnidadYaDisponivel(t *testing.T) {
	product := &entity.Product{ID: "prod-1", CompanyID: companyA, IsSerialized: true}
	unit := availableUnit("unit-1", product.ID)
	f := newFixture([]*entity.Product{product}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature,
	})
	require.NoError(t, err)

	// la unidad ya volvió al stock por fuera de esta custodia
	stored := f.storedUnit(t, unit.ID)
	stored.Status = entity.SerialDisponivel
	stored.AssignedTo = ""
	require.NoError(t, f.serials.Update(stored))

	returned, err := f.uc.Return(context.Background(), companyA, assignment.ID, "reintento")
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, entity.SerialDisponivel, f.storedUnit(t, unit.ID).Status)
}

func TestReturn_MotivoObligatorio(t *testing.T) {
	f := newFixture(nil, nil, nil)
	_, err := f.uc.Return(context.Background(), companyA, "any", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturn_DobleDevolucionEsConflicto(t *testing.T) {
	product := &entity.Product{ID: "prod-b", CompanyID: companyA, CurrentStock: 10}
	f := newFixture([]*entity.Product{product}, nil, []*entity.Technician{technician("tech-1")})

	assignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetProduct, ProductID: product.ID, Quantity: 2,
		SignatureURL: signature,
	})
	require.NoError(t, err)

	_, err = f.uc.Return(context.Background(), companyA, assignment.ID, "sobrou material")
	require.NoError(t, err)

	_, err = f.uc.Return(context.Background(), companyA, assignment.ID, "de novo")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// ActiveCount y planilla
// ──────────────────────────────────────────────────────────────────────────────

func TestActiveCount_SumaCantidades(t *testing.T) {
	product := &entity.Product{ID: "prod-b", CompanyID: companyA, CurrentStock: 100}
	f := newFixture([]*entity.Product{product}, nil, []*entity.Technician{technician("tech-1")})

	for _, q := range []int{2, 5} {
		_, err := f.uc.Issue(context.Background(), custody.IssueInput{
			CompanyID: companyA, TechnicianID: "tech-1",
			AssetType: entity.AssetProduct, ProductID: product.ID, Quantity: q,
			SignatureURL: signature,
		})
		require.NoError(t, err)
	}

	total, err := f.uc.ActiveCount(context.Background(), companyA, "tech-1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestBuildSheet(t *testing.T) {
	band := &entity.Product{ID: "prod-epi", CompanyID: companyA, Name: "Capacete", Category: entity.CategoryEPI, CurrentStock: 50, Unit: "un"}
	drill := &entity.Product{ID: "prod-fer", CompanyID: companyA, Name: "Furadeira", Category: entity.CategoryFerramentas, IsSerialized: true, Unit: "un"}
	unit := availableUnit("unit-1", drill.ID)
	unit.SerialNumber = "FU-010"
	f := newFixture([]*entity.Product{band, drill}, []*entity.SerialUnit{unit}, []*entity.Technician{technician("tech-1")})

	serialAssignment, err := f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetSerialUnit, SerialUnitID: unit.ID,
		SignatureURL: signature, AssignedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = f.uc.Issue(context.Background(), custody.IssueInput{
		CompanyID: companyA, TechnicianID: "tech-1",
		AssetType: entity.AssetProduct, ProductID: band.ID, Quantity: 3,
		SignatureURL: signature, AssignedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// devolvemos la furadeira: su fila conserva fecha y motivo
	_, err = f.uc.Return(context.Background(), companyA, serialAssignment.ID, "troca de equipe")
	require.NoError(t, err)

	sheet, err := f.uc.BuildSheet(context.Background(), companyA, "tech-1")
	require.NoError(t, err)
	assert.Equal(t, "João da Silva", sheet.TechnicianName)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, 3, sheet.ActiveCount, "solo el EPI sigue vigente")

	// orden estable por categoría: epi antes que ferramentas
	assert.Equal(t, entity.CategoryEPI, sheet.Rows[0].Category)
	assert.Equal(t, entity.CategoryFerramentas, sheet.Rows[1].Category)
	assert.Equal(t, "FU-010", sheet.Rows[1].SerialNumber)
	require.NotNil(t, sheet.Rows[1].ReturnedAt)
	assert.Equal(t, "troca de equipe", sheet.Rows[1].ReturnReason)
}

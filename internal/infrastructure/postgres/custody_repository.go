package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

var _ repository.CustodyRepository = (*CustodyRepo)(nil)

const custodyColumns = `id, company_id, technician_id, asset_type, serial_unit_id, product_id, quantity, signature_url, notes, assigned_at, returned_at, created_at, updated_at`

// CustodyRepo implementación del puerto CustodyRepository sobre PostgreSQL.
type CustodyRepo struct {
	q Querier
}

// NewCustodyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustodyRepository(q Querier) *CustodyRepo {
	return &CustodyRepo{q: q}
}

// Create persiste una custodia nueva.
func (r *CustodyRepo) Create(assignment *entity.CustodyAssignment) error {
	query := `
		INSERT INTO custody_assignments (` + custodyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.CompanyID, assignment.TechnicianID,
		string(assignment.AssetType), nullable(assignment.SerialUnitID),
		nullable(assignment.ProductID), assignment.Quantity,
		assignment.SignatureURL, assignment.Notes, assignment.AssignedAt,
		assignment.ReturnedAt, assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert custody assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una custodia por ID.
func (r *CustodyRepo) GetByID(id string) (*entity.CustodyAssignment, error) {
	query := `SELECT ` + custodyColumns + ` FROM custody_assignments WHERE id = $1`
	a, err := scanCustody(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custody assignment: %w", err)
	}
	return a, nil
}

// Update persiste la devolución (returned_at + notas).
func (r *CustodyRepo) Update(assignment *entity.CustodyAssignment) error {
	query := `
		UPDATE custody_assignments SET notes = $2, returned_at = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		assignment.ID, assignment.Notes, assignment.ReturnedAt, assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update custody assignment: %w", err)
	}
	return nil
}

// ListActive custodias vigentes (returned_at IS NULL).
func (r *CustodyRepo) ListActive(companyID, technicianID string) ([]*entity.CustodyAssignment, error) {
	query := `SELECT ` + custodyColumns + ` FROM custody_assignments WHERE company_id = $1 AND returned_at IS NULL`
	args := []any{companyID}
	if technicianID != "" {
		query += ` AND technician_id = $2`
		args = append(args, technicianID)
	}
	query += ` ORDER BY assigned_at DESC`
	return r.list(query, args...)
}

// ListByTechnician todas las custodias de un técnico (vigentes y devueltas).
func (r *CustodyRepo) ListByTechnician(companyID, technicianID string) ([]*entity.CustodyAssignment, error) {
	query := `SELECT ` + custodyColumns + ` FROM custody_assignments WHERE company_id = $1 AND technician_id = $2 ORDER BY assigned_at DESC`
	return r.list(query, companyID, technicianID)
}

// GetActiveBySerialUnit custodia activa de una unidad, o nil.
func (r *CustodyRepo) GetActiveBySerialUnit(serialUnitID string) (*entity.CustodyAssignment, error) {
	query := `SELECT ` + custodyColumns + ` FROM custody_assignments WHERE serial_unit_id = $1 AND returned_at IS NULL`
	a, err := scanCustody(r.q.QueryRow(context.Background(), query, serialUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active custody: %w", err)
	}
	return a, nil
}

func (r *CustodyRepo) list(query string, args ...any) ([]*entity.CustodyAssignment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list custody assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustodyAssignment
	for rows.Next() {
		a, err := scanCustody(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custody assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanCustody(row pgx.Row) (*entity.CustodyAssignment, error) {
	var a entity.CustodyAssignment
	var assetType string
	var serialUnitID, productID *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.TechnicianID, &assetType, &serialUnitID,
		&productID, &a.Quantity, &a.SignatureURL, &a.Notes, &a.AssignedAt,
		&a.ReturnedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.AssetType = entity.AssetType(assetType)
	if serialUnitID != nil {
		a.SerialUnitID = *serialUnitID
	}
	if productID != nil {
		a.ProductID = *productID
	}
	return &a, nil
}

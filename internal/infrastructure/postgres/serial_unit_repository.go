package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CampoStock-api/internal/domain"
	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

var _ repository.SerialUnitRepository = (*SerialUnitRepo)(nil)

const serialColumns = `id, company_id, product_id, serial_number, status, assigned_to, location, created_at, updated_at`

// SerialUnitRepo implementación del puerto SerialUnitRepository sobre
// PostgreSQL. La tabla lleva un índice único en
// (company_id, lower(serial_number)): la única defensa contra dos unidades
// con el mismo código.
type SerialUnitRepo struct {
	q Querier
}

// NewSerialUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialUnitRepository(q Querier) *SerialUnitRepo {
	return &SerialUnitRepo{q: q}
}

// Create persiste una unidad nueva. Serial repetido -> ErrDuplicate.
func (r *SerialUnitRepo) Create(unit *entity.SerialUnit) error {
	query := `
		INSERT INTO serial_units (` + serialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.CompanyID, unit.ProductID, unit.SerialNumber,
		string(unit.Status), nullable(unit.AssignedTo), nullable(unit.Location),
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert serial unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *SerialUnitRepo) GetByID(id string) (*entity.SerialUnit, error) {
	query := `SELECT ` + serialColumns + ` FROM serial_units WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySerialNumber busca por número de serie, case-insensitive, limitado a
// la empresa y opcionalmente al producto.
func (r *SerialUnitRepo) GetBySerialNumber(companyID, productID, serial string) (*entity.SerialUnit, error) {
	query := `SELECT ` + serialColumns + ` FROM serial_units WHERE company_id = $1 AND lower(serial_number) = lower($2)`
	args := []any{companyID, serial}
	if productID != "" {
		query += ` AND product_id = $3`
		args = append(args, productID)
	}
	return r.scanOne(r.q.QueryRow(context.Background(), query, args...))
}

// ListByProductAndStatus lista unidades de un producto en los estados dados.
func (r *SerialUnitRepo) ListByProductAndStatus(productID string, statuses ...entity.SerialStatus) ([]*entity.SerialUnit, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	ss := make([]string, len(statuses))
	for i, s := range statuses {
		ss[i] = string(s)
	}
	query := `SELECT ` + serialColumns + ` FROM serial_units WHERE product_id = $1 AND status = ANY($2) ORDER BY serial_number`
	rows, err := r.q.Query(context.Background(), query, productID, ss)
	if err != nil {
		return nil, fmt.Errorf("list serial units: %w", err)
	}
	defer rows.Close()

	var list []*entity.SerialUnit
	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountActiveByProduct cuenta unidades no descartadas del producto.
func (r *SerialUnitRepo) CountActiveByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM serial_units WHERE product_id = $1 AND status <> $2`,
		productID, string(entity.SerialDescartado),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count serial units: %w", err)
	}
	return n, nil
}

// Update persiste estado, asignación y ubicación de una unidad.
func (r *SerialUnitRepo) Update(unit *entity.SerialUnit) error {
	query := `
		UPDATE serial_units SET status = $2, assigned_to = $3, location = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, string(unit.Status), nullable(unit.AssignedTo), nullable(unit.Location), unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update serial unit: %w", err)
	}
	return nil
}

func (r *SerialUnitRepo) scanOne(row pgx.Row) (*entity.SerialUnit, error) {
	u, err := scanSerialUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial unit: %w", err)
	}
	return u, nil
}

func (r *SerialUnitRepo) scanRow(rows pgx.Rows) (*entity.SerialUnit, error) {
	u, err := scanSerialUnit(rows)
	if err != nil {
		return nil, fmt.Errorf("scan serial unit: %w", err)
	}
	return u, nil
}

func scanSerialUnit(row pgx.Row) (*entity.SerialUnit, error) {
	var u entity.SerialUnit
	var status string
	var assignedTo, location *string
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.ProductID, &u.SerialNumber, &status,
		&assignedTo, &location, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Status = entity.SerialStatus(status)
	if assignedTo != nil {
		u.AssignedTo = *assignedTo
	}
	if location != nil {
		u.Location = *location
	}
	return &u, nil
}

// nullable convierte "" a NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

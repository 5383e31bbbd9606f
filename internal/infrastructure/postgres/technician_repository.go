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

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

const technicianColumns = `id, company_id, name, registration, role, active, created_at, updated_at`

// TechnicianRepo implementación del puerto TechnicianRepository sobre PostgreSQL.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

// Create persiste un técnico nuevo. Matrícula repetida -> ErrDuplicate.
func (r *TechnicianRepo) Create(technician *entity.Technician) error {
	query := `
		INSERT INTO technicians (` + technicianColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		technician.ID, technician.CompanyID, technician.Name, technician.Registration,
		technician.Role, technician.Active, technician.CreatedAt, technician.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico por ID.
func (r *TechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = $1`
	var t entity.Technician
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Registration, &t.Role, &t.Active,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return &t, nil
}

// Update actualiza un técnico existente.
func (r *TechnicianRepo) Update(technician *entity.Technician) error {
	query := `
		UPDATE technicians SET name = $2, role = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		technician.ID, technician.Name, technician.Role, technician.Active, technician.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update technician: %w", err)
	}
	return nil
}

// ListByCompany lista técnicos de la empresa.
func (r *TechnicianRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE company_id = $1`
	if onlyActive {
		query += ` AND active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()

	var list []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Name, &t.Registration, &t.Role, &t.Active,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

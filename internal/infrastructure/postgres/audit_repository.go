package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CampoStock-api/internal/domain/entity"
	"github.com/jhoicas/CampoStock-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, company_id, product_id, serial_unit_id, audit_type, quantity, description, status, parent_audit_id, reported_by, reported_at, resolved_at, created_at, updated_at`

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
// Sin DELETE: el libro de ocurrencias es de solo crecimiento.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una ocurrencia nueva.
func (r *AuditRepo) Create(record *entity.AuditRecord) error {
	query := `
		INSERT INTO audit_records (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.CompanyID, record.ProductID, nullable(record.SerialUnitID),
		string(record.Type), record.Quantity, record.Description, string(record.Status),
		nullable(record.ParentAuditID), record.ReportedBy, record.ReportedAt,
		record.ResolvedAt, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// GetByID obtiene una ocurrencia por ID.
func (r *AuditRepo) GetByID(id string) (*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE id = $1`
	record, err := scanAuditRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit record: %w", err)
	}
	return record, nil
}

// Update persiste estado y resolución de una ocurrencia (nunca su contenido).
func (r *AuditRepo) Update(record *entity.AuditRecord) error {
	query := `
		UPDATE audit_records SET status = $2, resolved_at = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, string(record.Status), record.ResolvedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update audit record: %w", err)
	}
	return nil
}

// ListByCompany lista ocurrencias según filtro, más recientes primero.
func (r *AuditRepo) ListByCompany(companyID string, filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE company_id = $1`
	args := []any{companyID}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if filter.SerialUnitID != "" {
		args = append(args, filter.SerialUnitID)
		query += ` AND serial_unit_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += ` AND audit_type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	args = append(args, filter.Limit)
	query += ` ORDER BY reported_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditRecord
	for rows.Next() {
		record, err := scanAuditRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		list = append(list, record)
	}
	return list, rows.Err()
}

func scanAuditRecord(row pgx.Row) (*entity.AuditRecord, error) {
	var a entity.AuditRecord
	var auditType, status string
	var serialUnitID, parentAuditID *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.ProductID, &serialUnitID, &auditType, &a.Quantity,
		&a.Description, &status, &parentAuditID, &a.ReportedBy, &a.ReportedAt,
		&a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Type = entity.AuditType(auditType)
	a.Status = entity.AuditStatus(status)
	if serialUnitID != nil {
		a.SerialUnitID = *serialUnitID
	}
	if parentAuditID != nil {
		a.ParentAuditID = *parentAuditID
	}
	return &a, nil
}

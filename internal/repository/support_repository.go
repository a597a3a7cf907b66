package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// SupportFilter narrows support request listings.
type SupportFilter struct {
	Status string
	Page   Page
}

// SupportRepository persists customer support requests.
type SupportRepository interface {
	Create(ctx context.Context, req *domain.SupportRequest) error
	Update(ctx context.Context, req *domain.SupportRequest) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.SupportRequest, error)
	List(ctx context.Context, filter SupportFilter) ([]domain.SupportRequest, error)
}

type supportRepository struct {
	pool *pgxpool.Pool
}

// NewSupportRepository instantiates repository.
func NewSupportRepository(pool *pgxpool.Pool) SupportRepository {
	return &supportRepository{pool: pool}
}

const supportColumns = `id, user_id, contact_info, status, operator_response, operator_status, created_at, updated_at`

func (r *supportRepository) Create(ctx context.Context, req *domain.SupportRequest) error {
	const query = `
        INSERT INTO support_requests (user_id, contact_info, status, operator_response, operator_status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.UserID,
		req.ContactInfo,
		req.Status,
		req.OperatorResponse,
		req.OperatorStatus,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *supportRepository) Update(ctx context.Context, req *domain.SupportRequest) error {
	const query = `
        UPDATE support_requests SET contact_info=$1, status=$2, operator_response=$3, operator_status=$4,
            updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		req.ContactInfo,
		req.Status,
		req.OperatorResponse,
		req.OperatorStatus,
		req.ID,
	).Scan(&req.UpdatedAt)
}

func (r *supportRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM support_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *supportRepository) GetByID(ctx context.Context, id int64) (*domain.SupportRequest, error) {
	return scanSupport(r.pool.QueryRow(ctx, `SELECT `+supportColumns+` FROM support_requests WHERE id=$1`, id))
}

// List returns requests newest first.
func (r *supportRepository) List(ctx context.Context, filter SupportFilter) ([]domain.SupportRequest, error) {
	var w whereBuilder
	if filter.Status != "" {
		w.add("status=$%d", filter.Status)
	}
	query, args := w.paginate(`SELECT `+supportColumns+` FROM support_requests`, "created_at DESC, id DESC", filter.Page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SupportRequest
	for rows.Next() {
		req, err := scanSupport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *req)
	}
	return items, rows.Err()
}

func scanSupport(row pgx.Row) (*domain.SupportRequest, error) {
	var s domain.SupportRequest
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.ContactInfo,
		&s.Status,
		&s.OperatorResponse,
		&s.OperatorStatus,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// ColorRepository persists catalog colors.
type ColorRepository interface {
	Create(ctx context.Context, color *domain.Color) error
	Update(ctx context.Context, color *domain.Color) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Color, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Color, error)
	List(ctx context.Context, page Page) ([]domain.Color, error)
}

type colorRepository struct {
	pool *pgxpool.Pool
}

// NewColorRepository instantiates repository.
func NewColorRepository(pool *pgxpool.Pool) ColorRepository {
	return &colorRepository{pool: pool}
}

const colorColumns = `id, name, hex_code, additional_price, photos`

func (r *colorRepository) Create(ctx context.Context, color *domain.Color) error {
	const query = `
        INSERT INTO colors (name, hex_code, additional_price, photos)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		color.Name,
		color.HexCode,
		color.AdditionalPrice,
		nonNilStrings(color.Photos),
	).Scan(&color.ID)
}

func (r *colorRepository) Update(ctx context.Context, color *domain.Color) error {
	const query = `
        UPDATE colors SET name=$1, hex_code=$2, additional_price=$3, photos=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		color.Name,
		color.HexCode,
		color.AdditionalPrice,
		nonNilStrings(color.Photos),
		color.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *colorRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM colors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *colorRepository) GetByID(ctx context.Context, id int64) (*domain.Color, error) {
	return scanColor(r.pool.QueryRow(ctx, `SELECT `+colorColumns+` FROM colors WHERE id=$1`, id))
}

func (r *colorRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Color, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+colorColumns+` FROM colors WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	return collectColors(rows)
}

func (r *colorRepository) List(ctx context.Context, page Page) ([]domain.Color, error) {
	var w whereBuilder
	query, args := w.paginate(`SELECT `+colorColumns+` FROM colors`, "id", page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectColors(rows)
}

func collectColors(rows pgx.Rows) ([]domain.Color, error) {
	defer rows.Close()
	var colors []domain.Color
	for rows.Next() {
		color, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		colors = append(colors, *color)
	}
	return colors, rows.Err()
}

func scanColor(row pgx.Row) (*domain.Color, error) {
	var color domain.Color
	if err := row.Scan(
		&color.ID,
		&color.Name,
		&color.HexCode,
		&color.AdditionalPrice,
		&color.Photos,
	); err != nil {
		return nil, err
	}
	return &color, nil
}

// linkedColors batch-loads the colors attached to owners through a join table.
func linkedColors(ctx context.Context, q querier, joinTable, ownerColumn string, ownerIDs []int64) (map[int64][]domain.Color, error) {
	out := make(map[int64][]domain.Color, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	query := `SELECT j.` + ownerColumn + `, c.id, c.name, c.hex_code, c.additional_price, c.photos
        FROM ` + joinTable + ` j JOIN colors c ON c.id = j.color_id
        WHERE j.` + ownerColumn + ` = ANY($1)
        ORDER BY c.id`
	rows, err := q.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ownerID int64
		var color domain.Color
		if err := rows.Scan(&ownerID, &color.ID, &color.Name, &color.HexCode, &color.AdditionalPrice, &color.Photos); err != nil {
			return nil, err
		}
		out[ownerID] = append(out[ownerID], color)
	}
	return out, rows.Err()
}

// replaceLinks rewrites the join rows of one owner.
func replaceLinks(ctx context.Context, tx pgx.Tx, joinTable, ownerColumn, targetColumn string, ownerID int64, targetIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM `+joinTable+` WHERE `+ownerColumn+`=$1`, ownerID); err != nil {
		return err
	}
	if len(targetIDs) == 0 {
		return nil
	}
	query := `INSERT INTO ` + joinTable + ` (` + ownerColumn + `, ` + targetColumn + `)
        SELECT $1, unnest($2::BIGINT[])
        ON CONFLICT DO NOTHING`
	_, err := tx.Exec(ctx, query, ownerID, targetIDs)
	return err
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func colorIDs(colors []domain.Color) []int64 {
	ids := make([]int64, 0, len(colors))
	for _, c := range colors {
		ids = append(ids, c.ID)
	}
	return ids
}

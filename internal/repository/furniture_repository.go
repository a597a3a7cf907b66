package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// FurnitureFilter narrows furniture listings.
type FurnitureFilter struct {
	FurnitureType string
	Page          Page
}

// FurnitureRepository persists finished furniture items and their color links.
type FurnitureRepository interface {
	Create(ctx context.Context, item *domain.Furniture) error
	Update(ctx context.Context, item *domain.Furniture) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Furniture, error)
	List(ctx context.Context, filter FurnitureFilter) ([]domain.Furniture, error)
}

type furnitureRepository struct {
	pool *pgxpool.Pool
}

// NewFurnitureRepository instantiates repository.
func NewFurnitureRepository(pool *pgxpool.Pool) FurnitureRepository {
	return &furnitureRepository{pool: pool}
}

const furnitureColumns = `id, furniture_type, name, price, discounted_price, photos, technical_characteristics,
               model, article, created_at, updated_at`

func (r *furnitureRepository) Create(ctx context.Context, item *domain.Furniture) error {
	const query = `
        INSERT INTO furniture (furniture_type, name, price, discounted_price, photos, technical_characteristics, model, article)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			item.FurnitureType,
			item.Name,
			item.Price,
			item.DiscountedPrice,
			nonNilStrings(item.Photos),
			item.TechnicalCharacteristics,
			item.Model,
			item.Article,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "furniture_colors", "furniture_id", "color_id", item.ID, colorIDs(item.Colors))
	})
}

func (r *furnitureRepository) Update(ctx context.Context, item *domain.Furniture) error {
	const query = `
        UPDATE furniture SET furniture_type=$1, name=$2, price=$3, discounted_price=$4, photos=$5,
            technical_characteristics=$6, model=$7, article=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			item.FurnitureType,
			item.Name,
			item.Price,
			item.DiscountedPrice,
			nonNilStrings(item.Photos),
			item.TechnicalCharacteristics,
			item.Model,
			item.Article,
			item.ID,
		).Scan(&item.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "furniture_colors", "furniture_id", "color_id", item.ID, colorIDs(item.Colors))
	})
}

func (r *furnitureRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM furniture WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *furnitureRepository) GetByID(ctx context.Context, id int64) (*domain.Furniture, error) {
	item, err := scanFurniture(r.pool.QueryRow(ctx, `SELECT `+furnitureColumns+` FROM furniture WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	colors, err := linkedColors(ctx, r.pool, "furniture_colors", "furniture_id", []int64{id})
	if err != nil {
		return nil, err
	}
	item.Colors = colors[id]
	return item, nil
}

func (r *furnitureRepository) List(ctx context.Context, filter FurnitureFilter) ([]domain.Furniture, error) {
	var w whereBuilder
	w.contains("furniture_type", filter.FurnitureType)
	query, args := w.paginate(`SELECT `+furnitureColumns+` FROM furniture`, "id", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Furniture
	var ids []int64
	for rows.Next() {
		item, err := scanFurniture(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	colors, err := linkedColors(ctx, r.pool, "furniture_colors", "furniture_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Colors = colors[items[i].ID]
	}
	return items, nil
}

func scanFurniture(row pgx.Row) (*domain.Furniture, error) {
	var f domain.Furniture
	if err := row.Scan(
		&f.ID,
		&f.FurnitureType,
		&f.Name,
		&f.Price,
		&f.DiscountedPrice,
		&f.Photos,
		&f.TechnicalCharacteristics,
		&f.Model,
		&f.Article,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

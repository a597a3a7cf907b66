package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// CartRepository persists the single cart each user owns.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository instantiates repository.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

// GetOrCreate returns the user's cart, inserting an empty active one on first use.
func (r *cartRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	const upsert = `
        INSERT INTO carts (user_id, status, total_amount)
        VALUES ($1, $2, 0)
        ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, upsert, userID, domain.CartStatusActive); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, user_id, status, total_amount, created_at, updated_at
        FROM carts WHERE user_id=$1`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.TotalAmount,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	); err != nil {
		return nil, err
	}

	modules, err := linkedModules(ctx, r.pool, "cart_modules", "cart_id", []int64{cart.ID})
	if err != nil {
		return nil, err
	}
	cart.Modules = modules[cart.ID]
	return &cart, nil
}

// Save writes status, total and the module set of an existing cart.
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	const query = `
        UPDATE carts SET status=$1, total_amount=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, cart.Status, cart.TotalAmount, cart.ID).Scan(&cart.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "cart_modules", "cart_id", "module_id", cart.ID, moduleIDs(cart.Modules))
	})
}

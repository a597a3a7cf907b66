package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// LocatorFilter narrows shop and where-to-buy listings by a free-text place.
type LocatorFilter struct {
	Place string
	Page  Page
}

// ShopRepository persists branded shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
	List(ctx context.Context, filter LocatorFilter) ([]domain.Shop, error)
}

// WhereToBuyRepository persists third-party points of sale.
type WhereToBuyRepository interface {
	Create(ctx context.Context, point *domain.WhereToBuy) error
	Update(ctx context.Context, point *domain.WhereToBuy) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.WhereToBuy, error)
	List(ctx context.Context, filter LocatorFilter) ([]domain.WhereToBuy, error)
}

type shopRepository struct {
	pool *pgxpool.Pool
}

// NewShopRepository instantiates repository.
func NewShopRepository(pool *pgxpool.Pool) ShopRepository {
	return &shopRepository{pool: pool}
}

const shopColumns = `id, name, country, city, address, created_at, updated_at`

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (name, country, city, address)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, shop.Name, shop.Country, shop.City, shop.Address).
		Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}

func (r *shopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	const query = `
        UPDATE shops SET name=$1, country=$2, city=$3, address=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, shop.Name, shop.Country, shop.City, shop.Address, shop.ID).
		Scan(&shop.UpdatedAt)
}

func (r *shopRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "shops", id)
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	return scanShop(r.pool.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE id=$1`, id))
}

func (r *shopRepository) List(ctx context.Context, filter LocatorFilter) ([]domain.Shop, error) {
	var w whereBuilder
	w.contains("city", filter.Place)
	query, args := w.paginate(`SELECT `+shopColumns+` FROM shops`, "id", filter.Page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, rows.Err()
}

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var s domain.Shop
	if err := row.Scan(&s.ID, &s.Name, &s.Country, &s.City, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

type whereToBuyRepository struct {
	pool *pgxpool.Pool
}

// NewWhereToBuyRepository instantiates repository.
func NewWhereToBuyRepository(pool *pgxpool.Pool) WhereToBuyRepository {
	return &whereToBuyRepository{pool: pool}
}

const whereToBuyColumns = `id, location, name, address, phone, created_at, updated_at`

func (r *whereToBuyRepository) Create(ctx context.Context, point *domain.WhereToBuy) error {
	const query = `
        INSERT INTO where_to_buy (location, name, address, phone)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, point.Location, point.Name, point.Address, point.Phone).
		Scan(&point.ID, &point.CreatedAt, &point.UpdatedAt)
}

func (r *whereToBuyRepository) Update(ctx context.Context, point *domain.WhereToBuy) error {
	const query = `
        UPDATE where_to_buy SET location=$1, name=$2, address=$3, phone=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, point.Location, point.Name, point.Address, point.Phone, point.ID).
		Scan(&point.UpdatedAt)
}

func (r *whereToBuyRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "where_to_buy", id)
}

func (r *whereToBuyRepository) GetByID(ctx context.Context, id int64) (*domain.WhereToBuy, error) {
	return scanWhereToBuy(r.pool.QueryRow(ctx, `SELECT `+whereToBuyColumns+` FROM where_to_buy WHERE id=$1`, id))
}

func (r *whereToBuyRepository) List(ctx context.Context, filter LocatorFilter) ([]domain.WhereToBuy, error) {
	var w whereBuilder
	w.contains("location", filter.Place)
	query, args := w.paginate(`SELECT `+whereToBuyColumns+` FROM where_to_buy`, "id", filter.Page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.WhereToBuy
	for rows.Next() {
		point, err := scanWhereToBuy(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, *point)
	}
	return points, rows.Err()
}

func scanWhereToBuy(row pgx.Row) (*domain.WhereToBuy, error) {
	var p domain.WhereToBuy
	if err := row.Scan(&p.ID, &p.Location, &p.Name, &p.Address, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

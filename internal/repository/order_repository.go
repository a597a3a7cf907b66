package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID *int64
	Page   Page
}

// OrderRepository persists orders and the modules they contain.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, full_name, email, delivery_address, city, street, house, building, floor,
               entrance_code, payment_method, recipient, date, total_amount, status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (user_id, full_name, email, delivery_address, city, street, house, building, floor,
            entrance_code, payment_method, recipient, date, total_amount, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			order.UserID,
			order.FullName,
			order.Email,
			order.DeliveryAddress,
			order.City,
			order.Street,
			order.House,
			order.Building,
			order.Floor,
			order.EntranceCode,
			order.PaymentMethod,
			order.Recipient,
			order.Date,
			order.TotalAmount,
			order.Status,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "order_modules", "order_id", "module_id", order.ID, moduleIDs(order.Modules))
	})
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET full_name=$1, email=$2, delivery_address=$3, city=$4, street=$5, house=$6,
            building=$7, floor=$8, entrance_code=$9, payment_method=$10, recipient=$11, total_amount=$12,
            status=$13, updated_at=NOW()
        WHERE id=$14
        RETURNING updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			order.FullName,
			order.Email,
			order.DeliveryAddress,
			order.City,
			order.Street,
			order.House,
			order.Building,
			order.Floor,
			order.EntranceCode,
			order.PaymentMethod,
			order.Recipient,
			order.TotalAmount,
			order.Status,
			order.ID,
		).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "order_modules", "order_id", "module_id", order.ID, moduleIDs(order.Modules))
	})
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	modules, err := linkedModules(ctx, r.pool, "order_modules", "order_id", []int64{id})
	if err != nil {
		return nil, err
	}
	order.Modules = modules[id]
	return order, nil
}

// List returns orders newest first.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	var w whereBuilder
	if filter.UserID != nil {
		w.add("user_id=$%d", *filter.UserID)
	}
	query, args := w.paginate(`SELECT `+orderColumns+` FROM orders`, "created_at DESC, id DESC", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	modules, err := linkedModules(ctx, r.pool, "order_modules", "order_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Modules = modules[orders[i].ID]
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.FullName,
		&o.Email,
		&o.DeliveryAddress,
		&o.City,
		&o.Street,
		&o.House,
		&o.Building,
		&o.Floor,
		&o.EntranceCode,
		&o.PaymentMethod,
		&o.Recipient,
		&o.Date,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

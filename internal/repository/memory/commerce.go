package memory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

type cartRepo struct{ s *Store }

func (r *cartRepo) GetOrCreate(_ context.Context, userID int64) (*domain.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return nil, pgx.ErrNoRows
	}
	cartID, ok := r.s.cartByUser[userID]
	if !ok {
		now := r.s.now()
		cartID = r.s.nextID("carts")
		r.s.carts[cartID] = linked[domain.Cart]{row: domain.Cart{
			ID:        cartID,
			UserID:    userID,
			Status:    domain.CartStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}}
		r.s.cartByUser[userID] = cartID
	}
	c := r.s.carts[cartID]
	out := c.row
	out.Modules = r.s.resolveModules(c.ids)
	return &out, nil
}

func (r *cartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.carts, cart.ID); err != nil {
		return err
	}
	cart.UpdatedAt = r.s.now()
	row := *cart
	row.Modules = nil
	r.s.carts[cart.ID] = linked[domain.Cart]{row: row, ids: idsOf(cart.Modules, moduleID)}
	return nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) row(order *domain.Order) linked[domain.Order] {
	row := *order
	row.Modules = nil
	return linked[domain.Order]{row: row, ids: idsOf(order.Modules, moduleID)}
}

func (r *orderRepo) Create(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[order.UserID]; !ok {
		return pgx.ErrNoRows
	}
	order.ID = r.s.nextID("orders")
	order.CreatedAt = r.s.now()
	order.UpdatedAt = order.CreatedAt
	r.s.orders[order.ID] = r.row(order)
	return nil
}

func (r *orderRepo) Update(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.orders[order.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	order.UserID = current.row.UserID
	order.Date = current.row.Date
	order.CreatedAt = current.row.CreatedAt
	order.UpdatedAt = r.s.now()
	r.s.orders[order.ID] = r.row(order)
	return nil
}

func (r *orderRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.orders, id); err != nil {
		return err
	}
	delete(r.s.orders, id)
	return nil
}

func (r *orderRepo) hydrate(o linked[domain.Order]) domain.Order {
	out := o.row
	out.Modules = r.s.resolveModules(o.ids)
	return out
}

func (r *orderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := r.hydrate(o)
	return &out, nil
}

func (r *orderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Order
	for _, o := range r.s.orders {
		if filter.UserID != nil && o.row.UserID != *filter.UserID {
			continue
		}
		rows = append(rows, r.hydrate(o))
	}
	return sortedPage(rows, func(a, b domain.Order) bool { return a.ID > b.ID }, filter.Page), nil
}

package memory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.ID = r.s.nextID("users")
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) checkUnique(user *domain.User) error {
	for _, u := range r.s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
		if u.Login == user.Login {
			return uniqueViolation("users_login_key")
		}
	}
	return nil
}

// Delete cascades to the user's cart and orders and detaches support requests.
func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.users, id); err != nil {
		return err
	}
	delete(r.s.users, id)
	if cartID, ok := r.s.cartByUser[id]; ok {
		delete(r.s.carts, cartID)
		delete(r.s.cartByUser, id)
	}
	for oid, o := range r.s.orders {
		if o.row.UserID == id {
			delete(r.s.orders, oid)
		}
	}
	for sid, req := range r.s.support {
		if req.UserID != nil && *req.UserID == id {
			req.UserID = nil
			r.s.support[sid] = req
		}
	}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *userRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *userRepo) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Login == login })
}

func (r *userRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if u, err := r.GetByEmail(ctx, identifier); err == nil {
		return u, nil
	}
	return r.GetByLogin(ctx, identifier)
}

func (r *userRepo) List(_ context.Context, page repository.Page) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		rows = append(rows, u)
	}
	return sortedPage(rows, func(a, b domain.User) bool { return a.ID < b.ID }, page), nil
}

func (r *userRepo) GetAccessLevel(_ context.Context, id int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return u.AccessLevel, nil
}

func (r *userRepo) SetAccessLevel(_ context.Context, id int64, level int) (*domain.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, 0, pgx.ErrNoRows
	}
	old := u.AccessLevel
	u.AccessLevel = level
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return &u, old, nil
}

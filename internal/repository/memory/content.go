package memory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

type newsRepo struct{ s *Store }

func (r *newsRepo) Create(_ context.Context, news *domain.News) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	news.ID = r.s.nextID("news")
	news.CreatedAt = r.s.now()
	news.UpdatedAt = news.CreatedAt
	news.Photos = cloneStrings(news.Photos)
	r.s.news[news.ID] = *news
	return nil
}

func (r *newsRepo) Update(_ context.Context, news *domain.News) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.news[news.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	news.CreatedAt = current.CreatedAt
	news.UpdatedAt = r.s.now()
	news.Photos = cloneStrings(news.Photos)
	r.s.news[news.ID] = *news
	return nil
}

func (r *newsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.news, id); err != nil {
		return err
	}
	delete(r.s.news, id)
	return nil
}

func (r *newsRepo) GetByID(_ context.Context, id int64) (*domain.News, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.news[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &n, nil
}

func (r *newsRepo) List(_ context.Context, page repository.Page) ([]domain.News, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]domain.News, 0, len(r.s.news))
	for _, n := range r.s.news {
		rows = append(rows, n)
	}
	return sortedPage(rows, func(a, b domain.News) bool { return a.ID > b.ID }, page), nil
}

type supportRepo struct{ s *Store }

func (r *supportRepo) Create(_ context.Context, req *domain.SupportRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req.UserID != nil {
		if _, ok := r.s.users[*req.UserID]; !ok {
			return pgx.ErrNoRows
		}
	}
	req.ID = r.s.nextID("support_requests")
	req.CreatedAt = r.s.now()
	req.UpdatedAt = req.CreatedAt
	r.s.support[req.ID] = *req
	return nil
}

func (r *supportRepo) Update(_ context.Context, req *domain.SupportRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.support[req.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	req.UserID = current.UserID
	req.CreatedAt = current.CreatedAt
	req.UpdatedAt = r.s.now()
	r.s.support[req.ID] = *req
	return nil
}

func (r *supportRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.support, id); err != nil {
		return err
	}
	delete(r.s.support, id)
	return nil
}

func (r *supportRepo) GetByID(_ context.Context, id int64) (*domain.SupportRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.support[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &req, nil
}

func (r *supportRepo) List(_ context.Context, filter repository.SupportFilter) ([]domain.SupportRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.SupportRequest
	for _, req := range r.s.support {
		if filter.Status == "" || req.Status == filter.Status {
			rows = append(rows, req)
		}
	}
	return sortedPage(rows, func(a, b domain.SupportRequest) bool { return a.ID > b.ID }, filter.Page), nil
}

type shopRepo struct{ s *Store }

func (r *shopRepo) Create(_ context.Context, shop *domain.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shop.ID = r.s.nextID("shops")
	shop.CreatedAt = r.s.now()
	shop.UpdatedAt = shop.CreatedAt
	r.s.shops[shop.ID] = *shop
	return nil
}

func (r *shopRepo) Update(_ context.Context, shop *domain.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.shops[shop.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	shop.CreatedAt = current.CreatedAt
	shop.UpdatedAt = r.s.now()
	r.s.shops[shop.ID] = *shop
	return nil
}

func (r *shopRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.shops, id); err != nil {
		return err
	}
	delete(r.s.shops, id)
	return nil
}

func (r *shopRepo) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	shop, ok := r.s.shops[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &shop, nil
}

func (r *shopRepo) List(_ context.Context, filter repository.LocatorFilter) ([]domain.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Shop
	for _, shop := range r.s.shops {
		if containsFold(shop.City, filter.Place) {
			rows = append(rows, shop)
		}
	}
	return sortedPage(rows, func(a, b domain.Shop) bool { return a.ID < b.ID }, filter.Page), nil
}

type whereToBuyRepo struct{ s *Store }

func (r *whereToBuyRepo) Create(_ context.Context, point *domain.WhereToBuy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	point.ID = r.s.nextID("where_to_buy")
	point.CreatedAt = r.s.now()
	point.UpdatedAt = point.CreatedAt
	r.s.points[point.ID] = *point
	return nil
}

func (r *whereToBuyRepo) Update(_ context.Context, point *domain.WhereToBuy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.points[point.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	point.CreatedAt = current.CreatedAt
	point.UpdatedAt = r.s.now()
	r.s.points[point.ID] = *point
	return nil
}

func (r *whereToBuyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.points, id); err != nil {
		return err
	}
	delete(r.s.points, id)
	return nil
}

func (r *whereToBuyRepo) GetByID(_ context.Context, id int64) (*domain.WhereToBuy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	point, ok := r.s.points[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &point, nil
}

func (r *whereToBuyRepo) List(_ context.Context, filter repository.LocatorFilter) ([]domain.WhereToBuy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.WhereToBuy
	for _, point := range r.s.points {
		if containsFold(point.Location, filter.Place) {
			rows = append(rows, point)
		}
	}
	return sortedPage(rows, func(a, b domain.WhereToBuy) bool { return a.ID < b.ID }, filter.Page), nil
}

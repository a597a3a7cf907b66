package memory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

type colorRepo struct{ s *Store }

func (r *colorRepo) Create(_ context.Context, color *domain.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	color.ID = r.s.nextID("colors")
	color.Photos = cloneStrings(color.Photos)
	r.s.colors[color.ID] = *color
	return nil
}

func (r *colorRepo) Update(_ context.Context, color *domain.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.colors, color.ID); err != nil {
		return err
	}
	color.Photos = cloneStrings(color.Photos)
	r.s.colors[color.ID] = *color
	return nil
}

func (r *colorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.colors, id); err != nil {
		return err
	}
	delete(r.s.colors, id)
	return nil
}

func (r *colorRepo) GetByID(_ context.Context, id int64) (*domain.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.colors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *colorRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.resolveColors(ids), nil
}

func (r *colorRepo) List(_ context.Context, page repository.Page) ([]domain.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]domain.Color, 0, len(r.s.colors))
	for _, c := range r.s.colors {
		rows = append(rows, c)
	}
	return sortedPage(rows, func(a, b domain.Color) bool { return a.ID < b.ID }, page), nil
}

// resolveColors returns the existing colors among ids ordered by id. Callers hold the lock.
func (s *Store) resolveColors(ids []int64) []domain.Color {
	var out []domain.Color
	for _, id := range ids {
		if c, ok := s.colors[id]; ok {
			out = append(out, c)
		}
	}
	return sortRows(out, func(a, b domain.Color) bool { return a.ID < b.ID })
}

// resolveModules returns the existing modules among ids ordered by id, without colors. Callers hold the lock.
func (s *Store) resolveModules(ids []int64) []domain.Module {
	var out []domain.Module
	for _, id := range ids {
		if m, ok := s.modules[id]; ok {
			out = append(out, m.row)
		}
	}
	return sortRows(out, func(a, b domain.Module) bool { return a.ID < b.ID })
}

func idsOf[T any](rows []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(rows))
	for _, row := range rows {
		out = append(out, id(row))
	}
	return out
}

func colorID(c domain.Color) int64   { return c.ID }
func moduleID(m domain.Module) int64 { return m.ID }

type moduleRepo struct{ s *Store }

func (r *moduleRepo) articleTaken(article string, self int64) bool {
	for id, m := range r.s.modules {
		if id != self && m.row.Article == article {
			return true
		}
	}
	return false
}

func (r *moduleRepo) Create(_ context.Context, module *domain.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.articleTaken(module.Article, 0) {
		return uniqueViolation("modules_article_key")
	}
	module.ID = r.s.nextID("modules")
	module.CreatedAt = r.s.now()
	module.UpdatedAt = module.CreatedAt
	module.Photos = cloneStrings(module.Photos)
	r.s.modules[module.ID] = r.row(module)
	return nil
}

func (r *moduleRepo) Update(_ context.Context, module *domain.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.modules[module.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.articleTaken(module.Article, module.ID) {
		return uniqueViolation("modules_article_key")
	}
	module.CreatedAt = current.row.CreatedAt
	module.UpdatedAt = r.s.now()
	module.Photos = cloneStrings(module.Photos)
	r.s.modules[module.ID] = r.row(module)
	return nil
}

func (r *moduleRepo) row(module *domain.Module) linked[domain.Module] {
	row := *module
	row.Colors = nil
	return linked[domain.Module]{row: row, ids: idsOf(module.Colors, colorID)}
}

func (r *moduleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.modules, id); err != nil {
		return err
	}
	delete(r.s.modules, id)
	return nil
}

func (r *moduleRepo) hydrate(m linked[domain.Module]) domain.Module {
	out := m.row
	out.Colors = r.s.resolveColors(m.ids)
	return out
}

func (r *moduleRepo) GetByID(_ context.Context, id int64) (*domain.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.modules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := r.hydrate(m)
	return &out, nil
}

func (r *moduleRepo) ListByIDs(_ context.Context, want []int64) ([]domain.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Module
	for _, id := range want {
		if m, ok := r.s.modules[id]; ok {
			rows = append(rows, r.hydrate(m))
		}
	}
	return sortRows(rows, func(a, b domain.Module) bool { return a.ID < b.ID }), nil
}

func (r *moduleRepo) List(_ context.Context, filter repository.ModuleFilter) ([]domain.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Module
	for _, m := range r.s.modules {
		if containsFold(m.row.Name, filter.Name) {
			rows = append(rows, r.hydrate(m))
		}
	}
	return sortedPage(rows, func(a, b domain.Module) bool { return a.ID < b.ID }, filter.Page), nil
}

type furnitureRepo struct{ s *Store }

func (r *furnitureRepo) articleTaken(article string, self int64) bool {
	for id, f := range r.s.furniture {
		if id != self && f.row.Article == article {
			return true
		}
	}
	return false
}

func (r *furnitureRepo) row(item *domain.Furniture) linked[domain.Furniture] {
	row := *item
	row.Colors = nil
	return linked[domain.Furniture]{row: row, ids: idsOf(item.Colors, colorID)}
}

func (r *furnitureRepo) Create(_ context.Context, item *domain.Furniture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.articleTaken(item.Article, 0) {
		return uniqueViolation("furniture_article_key")
	}
	item.ID = r.s.nextID("furniture")
	item.CreatedAt = r.s.now()
	item.UpdatedAt = item.CreatedAt
	item.Photos = cloneStrings(item.Photos)
	r.s.furniture[item.ID] = r.row(item)
	return nil
}

func (r *furnitureRepo) Update(_ context.Context, item *domain.Furniture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.furniture[item.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.articleTaken(item.Article, item.ID) {
		return uniqueViolation("furniture_article_key")
	}
	item.CreatedAt = current.row.CreatedAt
	item.UpdatedAt = r.s.now()
	item.Photos = cloneStrings(item.Photos)
	r.s.furniture[item.ID] = r.row(item)
	return nil
}

func (r *furnitureRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := missing(r.s.furniture, id); err != nil {
		return err
	}
	delete(r.s.furniture, id)
	return nil
}

func (r *furnitureRepo) hydrate(f linked[domain.Furniture]) domain.Furniture {
	out := f.row
	out.Colors = r.s.resolveColors(f.ids)
	return out
}

func (r *furnitureRepo) GetByID(_ context.Context, id int64) (*domain.Furniture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.furniture[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := r.hydrate(f)
	return &out, nil
}

func (r *furnitureRepo) List(_ context.Context, filter repository.FurnitureFilter) ([]domain.Furniture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Furniture
	for _, f := range r.s.furniture {
		if containsFold(f.row.FurnitureType, filter.FurnitureType) {
			rows = append(rows, r.hydrate(f))
		}
	}
	return sortedPage(rows, func(a, b domain.Furniture) bool { return a.ID < b.ID }, filter.Page), nil
}

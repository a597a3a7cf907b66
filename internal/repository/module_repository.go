package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// ModuleFilter narrows module listings.
type ModuleFilter struct {
	Name string
	Page Page
}

// ModuleRepository persists modules together with their color links.
type ModuleRepository interface {
	Create(ctx context.Context, module *domain.Module) error
	Update(ctx context.Context, module *domain.Module) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Module, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Module, error)
	List(ctx context.Context, filter ModuleFilter) ([]domain.Module, error)
}

type moduleRepository struct {
	pool *pgxpool.Pool
}

// NewModuleRepository instantiates repository.
func NewModuleRepository(pool *pgxpool.Pool) ModuleRepository {
	return &moduleRepository{pool: pool}
}

const moduleColumns = `id, name, article, price, discounted_price, technical_details, assembly_instruction,
               photos, created_at, updated_at`

func (r *moduleRepository) Create(ctx context.Context, module *domain.Module) error {
	const query = `
        INSERT INTO modules (name, article, price, discounted_price, technical_details, assembly_instruction, photos)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			module.Name,
			module.Article,
			module.Price,
			module.DiscountedPrice,
			module.TechnicalDetails,
			module.AssemblyInstruction,
			nonNilStrings(module.Photos),
		).Scan(&module.ID, &module.CreatedAt, &module.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "module_colors", "module_id", "color_id", module.ID, colorIDs(module.Colors))
	})
}

func (r *moduleRepository) Update(ctx context.Context, module *domain.Module) error {
	const query = `
        UPDATE modules SET name=$1, article=$2, price=$3, discounted_price=$4, technical_details=$5,
            assembly_instruction=$6, photos=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			module.Name,
			module.Article,
			module.Price,
			module.DiscountedPrice,
			module.TechnicalDetails,
			module.AssemblyInstruction,
			nonNilStrings(module.Photos),
			module.ID,
		).Scan(&module.UpdatedAt); err != nil {
			return err
		}
		return replaceLinks(ctx, tx, "module_colors", "module_id", "color_id", module.ID, colorIDs(module.Colors))
	})
}

func (r *moduleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *moduleRepository) GetByID(ctx context.Context, id int64) (*domain.Module, error) {
	module, err := scanModule(r.pool.QueryRow(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	colors, err := linkedColors(ctx, r.pool, "module_colors", "module_id", []int64{id})
	if err != nil {
		return nil, err
	}
	module.Colors = colors[id]
	return module, nil
}

func (r *moduleRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Module, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ANY($1) ORDER BY id`, ids)
}

func (r *moduleRepository) List(ctx context.Context, filter ModuleFilter) ([]domain.Module, error) {
	var w whereBuilder
	w.contains("name", filter.Name)
	query, args := w.paginate(`SELECT `+moduleColumns+` FROM modules`, "id", filter.Page)
	return r.query(ctx, query, args...)
}

func (r *moduleRepository) query(ctx context.Context, query string, args ...any) ([]domain.Module, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	modules, err := collectModules(rows)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(modules))
	for i := range modules {
		ids[i] = modules[i].ID
	}
	colors, err := linkedColors(ctx, r.pool, "module_colors", "module_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		modules[i].Colors = colors[modules[i].ID]
	}
	return modules, nil
}

func collectModules(rows pgx.Rows) ([]domain.Module, error) {
	defer rows.Close()
	var modules []domain.Module
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, *module)
	}
	return modules, rows.Err()
}

func scanModule(row pgx.Row) (*domain.Module, error) {
	var m domain.Module
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Article,
		&m.Price,
		&m.DiscountedPrice,
		&m.TechnicalDetails,
		&m.AssemblyInstruction,
		&m.Photos,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// linkedModules batch-loads the modules attached to owners through a join table. Colors are not loaded.
func linkedModules(ctx context.Context, q querier, joinTable, ownerColumn string, ownerIDs []int64) (map[int64][]domain.Module, error) {
	out := make(map[int64][]domain.Module, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	query := `SELECT j.` + ownerColumn + `, m.id, m.name, m.article, m.price, m.discounted_price,
               m.technical_details, m.assembly_instruction, m.photos, m.created_at, m.updated_at
        FROM ` + joinTable + ` j JOIN modules m ON m.id = j.module_id
        WHERE j.` + ownerColumn + ` = ANY($1)
        ORDER BY m.id`
	rows, err := q.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ownerID int64
		var m domain.Module
		if err := rows.Scan(&ownerID, &m.ID, &m.Name, &m.Article, &m.Price, &m.DiscountedPrice,
			&m.TechnicalDetails, &m.AssemblyInstruction, &m.Photos, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out[ownerID] = append(out[ownerID], m)
	}
	return out, rows.Err()
}

func moduleIDs(modules []domain.Module) []int64 {
	ids := make([]int64, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return ids
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// NewsRepository persists news articles.
type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) error
	Update(ctx context.Context, news *domain.News) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.News, error)
	List(ctx context.Context, page Page) ([]domain.News, error)
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository instantiates repository.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

const newsColumns = `id, title, main_photo, text1, text2, photos, created_at, updated_at`

func (r *newsRepository) Create(ctx context.Context, news *domain.News) error {
	const query = `
        INSERT INTO news (title, main_photo, text1, text2, photos)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		news.Title,
		news.MainPhoto,
		news.Text1,
		news.Text2,
		nonNilStrings(news.Photos),
	).Scan(&news.ID, &news.CreatedAt, &news.UpdatedAt)
}

func (r *newsRepository) Update(ctx context.Context, news *domain.News) error {
	const query = `
        UPDATE news SET title=$1, main_photo=$2, text1=$3, text2=$4, photos=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		news.Title,
		news.MainPhoto,
		news.Text1,
		news.Text2,
		nonNilStrings(news.Photos),
		news.ID,
	).Scan(&news.UpdatedAt)
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*domain.News, error) {
	return scanNews(r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id=$1`, id))
}

// List returns articles newest first.
func (r *newsRepository) List(ctx context.Context, page Page) ([]domain.News, error) {
	var w whereBuilder
	query, args := w.paginate(`SELECT `+newsColumns+` FROM news`, "created_at DESC, id DESC", page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.News
	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *news)
	}
	return items, rows.Err()
}

func scanNews(row pgx.Row) (*domain.News, error) {
	var n domain.News
	if err := row.Scan(&n.ID, &n.Title, &n.MainPhoto, &n.Text1, &n.Text2, &n.Photos, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

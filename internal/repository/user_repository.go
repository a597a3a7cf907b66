package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	List(ctx context.Context, page Page) ([]domain.User, error)
	GetAccessLevel(ctx context.Context, id int64) (int, error)
	SetAccessLevel(ctx context.Context, id int64, level int) (user *domain.User, oldLevel int, err error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, full_name, login, email, phone_number, password_hash, access_level, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, login, email, phone_number, password_hash, access_level)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Login,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.AccessLevel,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, login=$2, email=$3, phone_number=$4, password_hash=$5,
            access_level=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Login,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.AccessLevel,
		user.ID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login)
}

// GetByIdentifier matches either the email or the login name, preferring the email.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
        WHERE email=$1 OR login=$1
        ORDER BY (email=$1) DESC
        LIMIT 1`
	return r.fetchSingle(ctx, query, identifier)
}

func (r *userRepository) List(ctx context.Context, page Page) ([]domain.User, error) {
	var w whereBuilder
	query, args := w.paginate(`SELECT `+userColumns+` FROM users`, "id", page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetAccessLevel reads only the level column; it runs on every gated request.
func (r *userRepository) GetAccessLevel(ctx context.Context, id int64) (int, error) {
	var level int
	err := r.pool.QueryRow(ctx, `SELECT access_level FROM users WHERE id=$1`, id).Scan(&level)
	return level, err
}

// SetAccessLevel writes the level in one statement and returns the updated row together
// with the level it replaced. The row lock makes the previous level exact under concurrent writes.
func (r *userRepository) SetAccessLevel(ctx context.Context, id int64, level int) (*domain.User, int, error) {
	const query = `
        UPDATE users AS u SET access_level=$1, updated_at=NOW()
        FROM (SELECT id, access_level FROM users WHERE id=$2 FOR UPDATE) AS prev
        WHERE u.id = prev.id
        RETURNING u.id, u.full_name, u.login, u.email, u.phone_number, u.password_hash,
                  u.access_level, u.created_at, u.updated_at, prev.access_level`

	var (
		user     domain.User
		oldLevel int
	)
	err := r.pool.QueryRow(ctx, query, level, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Login,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.AccessLevel,
		&user.CreatedAt,
		&user.UpdatedAt,
		&oldLevel,
	)
	if err != nil {
		return nil, 0, err
	}
	return &user, oldLevel, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Login,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.AccessLevel,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/domain"
)

const seedYAML = `
users:
  - full_name: Store Admin
    login: admin
    email: admin@example.com
    password: admin-pass
    access_level: 3
  - email: buyer@example.com
    password: buyer-pass
  - email: ""
    password: skipped
`

type memoryUsers struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.nextID++
	user.ID = m.nextID
	m.byEmail[user.Email] = user
	return nil
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUsers(t *testing.T) {
	seeds, err := LoadUsers(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadUsers() error = %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("len(seeds) = %d, want 2", len(seeds))
	}
	if seeds[0].AccessLevel != 3 {
		t.Errorf("admin level = %d, want 3", seeds[0].AccessLevel)
	}
	buyer := seeds[1]
	if buyer.AccessLevel != auth.LevelCustomer || buyer.Login != "buyer@example.com" || buyer.FullName != buyer.Login {
		t.Errorf("buyer defaults = %+v", buyer)
	}
}

func TestLoadUsers_RejectsBadLevel(t *testing.T) {
	path := writeSeed(t, "users:\n  - email: x@example.com\n    password: p\n    access_level: 11\n")
	if _, err := LoadUsers(path); err == nil {
		t.Fatal("LoadUsers() should reject access_level 11")
	}
}

func TestUsers_Idempotent(t *testing.T) {
	path := writeSeed(t, seedYAML)
	store := &memoryUsers{byEmail: map[string]*domain.User{}}
	hasher := auth.NewHasher(4)

	created, err := Users(context.Background(), store, hasher, path, zap.NewNop())
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	admin := store.byEmail["admin@example.com"]
	if admin.PasswordHash == "admin-pass" || !hasher.Verify("admin-pass", admin.PasswordHash) {
		t.Error("seeded password was not hashed")
	}

	created, err = Users(context.Background(), store, hasher, path, zap.NewNop())
	if err != nil {
		t.Fatalf("second Users() error = %v", err)
	}
	if created != 0 {
		t.Errorf("second run created = %d, want 0", created)
	}
}

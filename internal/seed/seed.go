package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/domain"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// UserSeed is one account entry of the seed file.
type UserSeed struct {
	FullName    string `yaml:"full_name"`
	Login       string `yaml:"login"`
	Email       string `yaml:"email"`
	PhoneNumber string `yaml:"phone_number"`
	Password    string `yaml:"password"`
	AccessLevel int    `yaml:"access_level"`
}

type usersFile struct {
	Users []UserSeed `yaml:"users"`
}

// UserStore is the subset of the user repository seeding needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// LoadUsers parses a seed file. Entries without email or password are skipped.
func LoadUsers(path string) ([]UserSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	seeds := make([]UserSeed, 0, len(uf.Users))
	for i, u := range uf.Users {
		u.Email = strings.TrimSpace(u.Email)
		if u.Email == "" || u.Password == "" {
			continue
		}
		if u.AccessLevel == 0 {
			u.AccessLevel = auth.LevelCustomer
		}
		if !auth.ValidLevel(u.AccessLevel) {
			return nil, fmt.Errorf("users[%d]: access_level %d out of range", i, u.AccessLevel)
		}
		if u.Login == "" {
			u.Login = u.Email
		}
		if u.FullName == "" {
			u.FullName = u.Login
		}
		seeds = append(seeds, u)
	}
	return seeds, nil
}

// Users creates every seeded account whose email is not yet registered and returns how many were created.
func Users(ctx context.Context, store UserStore, hasher *auth.Hasher, path string, logger *zap.Logger) (int, error) {
	seeds, err := LoadUsers(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, s := range seeds {
		if _, err := store.GetByEmail(ctx, s.Email); err == nil {
			continue
		} else if !apperrors.IsNotFound(err) {
			return created, err
		}

		hash, err := hasher.Hash(s.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", s.Email, err)
		}
		user := &domain.User{
			FullName:     s.FullName,
			Login:        s.Login,
			Email:        s.Email,
			PhoneNumber:  s.PhoneNumber,
			PasswordHash: hash,
			AccessLevel:  s.AccessLevel,
		}
		if err := store.Create(ctx, user); err != nil {
			return created, fmt.Errorf("create %s: %w", s.Email, err)
		}
		logger.Info("seeded user", zap.Int64("user_id", user.ID), zap.Int("access_level", user.AccessLevel))
		created++
	}
	return created, nil
}

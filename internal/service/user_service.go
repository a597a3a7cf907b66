package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// UserService manages accounts on behalf of administrators.
type UserService struct {
	users      repository.UserRepository
	hasher     *auth.Hasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher *auth.Hasher, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, hasher: hasher, dispatcher: dispatcher, logger: logger}
}

// UserCreateInput carries an administrator-created account. Zero AccessLevel means customer.
type UserCreateInput struct {
	FullName    string
	Login       string
	Email       string
	PhoneNumber string
	Password    string
	AccessLevel int
}

// UserUpdateInput applies only the non-nil fields.
type UserUpdateInput struct {
	FullName    *string
	Login       *string
	Email       *string
	PhoneNumber *string
	Password    *string
	AccessLevel *int
}

func (s *UserService) Create(ctx context.Context, in UserCreateInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Login = strings.TrimSpace(in.Login)
	if in.FullName == "" || in.Login == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("full_name, login, email, password required", nil)
	}
	if in.AccessLevel == 0 {
		in.AccessLevel = auth.LevelCustomer
	}
	if !auth.ValidLevel(in.AccessLevel) {
		return nil, apperrors.NewInvalidArgument("Invalid level")
	}
	if err := ensureUniqueUser(ctx, s.users, in.Email, in.Login, 0); err != nil {
		return nil, err
	}
	hash, err := hashWith(s.hasher, in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     in.FullName,
		Login:        in.Login,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		AccessLevel:  in.AccessLevel,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page repository.Page) ([]domain.User, error) {
	return s.users.List(ctx, page)
}

// Update applies a partial change. New passwords are hashed and levels are range checked.
func (s *UserService) Update(ctx context.Context, id int64, in UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	oldLevel := user.AccessLevel

	var email, login string
	if in.Email != nil {
		email = strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, apperrors.NewValidationError("email must not be empty", nil)
		}
		user.Email = email
	}
	if in.Login != nil {
		login = strings.TrimSpace(*in.Login)
		if login == "" {
			return nil, apperrors.NewValidationError("login must not be empty", nil)
		}
		user.Login = login
	}
	if err := ensureUniqueUser(ctx, s.users, email, login, user.ID); err != nil {
		return nil, err
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.AccessLevel != nil {
		if !auth.ValidLevel(*in.AccessLevel) {
			return nil, apperrors.NewInvalidArgument("Invalid level")
		}
		user.AccessLevel = *in.AccessLevel
	}
	if in.Password != nil {
		hash, err := hashWith(s.hasher, *in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFound(err, "User")
	}
	if user.AccessLevel != oldLevel {
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserLevelChanged, user.ID, 0,
			events.UserLevelChangedPayload{OldLevel: oldLevel, NewLevel: user.AccessLevel}))
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return notFound(s.users.Delete(ctx, id), "User")
}

// notFound names the missing resource when err means a missing row.
func notFound(err error, resource string) error {
	if err != nil && apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

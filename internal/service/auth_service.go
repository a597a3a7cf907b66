package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

const invalidCredentials = "Invalid credentials"

// AuthService coordinates registration, login and privilege elevation.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.Hasher
	tokens     *auth.TokenManager
	admin      *auth.AdminGuard
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates the collaborators of the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Hasher     *auth.Hasher
	Tokens     *auth.TokenManager
	Admin      *auth.AdminGuard
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.Users,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		admin:      deps.Admin,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// RegisterInput carries self-service sign-up fields.
type RegisterInput struct {
	FullName    string
	Login       string
	Email       string
	PhoneNumber string
	Password    string
}

// Register creates a customer account and returns its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.TokenGrant, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Login = strings.TrimSpace(in.Login)
	if in.FullName == "" || in.Login == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("full_name, login, email, password required", nil)
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
		AccessLevel:  auth.LevelCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return s.grant(user)
}

// Login verifies a password against the account matching identifier (email or login name).
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.TokenGrant, error) {
	user, err := s.users.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewInvalidArgument(invalidCredentials)
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewInvalidArgument(invalidCredentials)
	}
	return s.grant(user)
}

// CheckAdminSecret reports whether adminSecret grants elevation rights.
func (s *AuthService) CheckAdminSecret(adminSecret string) error {
	if err := s.admin.Check(adminSecret); err != nil {
		s.logger.Warn("elevation rejected")
		return err
	}
	return nil
}

// Elevate sets a user's access level when adminSecret matches and returns a token for that user.
func (s *AuthService) Elevate(ctx context.Context, adminSecret string, userID int64, level int) (*domain.TokenGrant, error) {
	if err := s.CheckAdminSecret(adminSecret); err != nil {
		return nil, err
	}
	if !auth.ValidLevel(level) {
		return nil, apperrors.NewInvalidArgument("Invalid level")
	}

	user, oldLevel, err := s.users.SetAccessLevel(ctx, userID, level)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	s.logger.Info("access level changed",
		zap.Int64("user_id", user.ID),
		zap.Int("old_level", oldLevel),
		zap.Int("new_level", user.AccessLevel))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserLevelChanged, user.ID, 0,
		events.UserLevelChangedPayload{OldLevel: oldLevel, NewLevel: user.AccessLevel}))

	grant, err := s.grant(user)
	if err != nil {
		return nil, err
	}
	grant.UserID = user.ID
	return grant, nil
}

func (s *AuthService) grant(user *domain.User) (*domain.TokenGrant, error) {
	token, exp, err := s.tokens.GenerateToken(user.ID, user.AccessLevel)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &domain.TokenGrant{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		Level:       user.AccessLevel,
		UserID:      user.ID,
		ExpiresAt:   exp,
	}, nil
}

// ensureUniqueUser rejects email or login already held by an account other than selfID.
func ensureUniqueUser(ctx context.Context, users repository.UserRepository, email, login string, selfID int64) error {
	if email != "" {
		if u, err := users.GetByEmail(ctx, email); err == nil && u.ID != selfID {
			return apperrors.NewConflict("Email already registered", map[string]any{"field": "email"})
		} else if err != nil && !apperrors.IsNotFound(err) {
			return err
		}
	}
	if login != "" {
		if u, err := users.GetByLogin(ctx, login); err == nil && u.ID != selfID {
			return apperrors.NewConflict("Login already taken", map[string]any{"field": "login"})
		} else if err != nil && !apperrors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

func hashWith(hasher *auth.Hasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewInvalidArgument("Password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

// publish delivers an event; handler failures never fail the originating request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/domain"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// LevelLookup reads a subject's current access level from the store of record.
// Implementations return an error satisfying apperrors.IsNotFound for unknown subjects.
type LevelLookup interface {
	GetAccessLevel(ctx context.Context, id int64) (int, error)
}

// GateOptions tunes the gate's handling of edge cases.
type GateOptions struct {
	// AllowOrphanedTokens keeps the token's claimed level when its subject no longer exists.
	AllowOrphanedTokens bool
}

// Gate authorizes requests against a minimum access level using the live level
// from the store, not the level embedded in the token.
type Gate struct {
	resolver *Resolver
	users    LevelLookup
	opts     GateOptions
	logger   *zap.Logger
}

// NewGate constructs a gate.
func NewGate(resolver *Resolver, users LevelLookup, opts GateOptions, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{resolver: resolver, users: users, opts: opts, logger: logger}
}

// Authorize resolves header and checks the effective level against minLevel.
func (g *Gate) Authorize(ctx context.Context, header string, minLevel int) (domain.AuthContext, error) {
	ac, err := g.resolver.Resolve(header)
	if err != nil {
		return domain.AuthContext{}, err
	}

	effective := ac.AccessLevel
	if !ac.Anonymous() {
		level, err := g.users.GetAccessLevel(ctx, ac.SubjectID)
		switch {
		case err == nil:
			effective = level
		case apperrors.IsNotFound(err):
			if !g.opts.AllowOrphanedTokens {
				g.logger.Info("token subject no longer exists", zap.Int64("subject_id", ac.SubjectID))
				return domain.AuthContext{}, apperrors.NewUnauthenticated("Invalid token")
			}
		default:
			return domain.AuthContext{}, apperrors.NewInternalError(err)
		}
	}

	if effective < minLevel {
		return domain.AuthContext{}, apperrors.NewForbidden("Insufficient access level")
	}
	return ac.WithAccessLevel(effective), nil
}

// Require returns middleware enforcing minLevel and storing the corrected context.
func (g *Gate) Require(minLevel int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, err := g.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization), minLevel)
		if err != nil {
			return err
		}
		storeContext(c, ac)
		return c.Next()
	}
}

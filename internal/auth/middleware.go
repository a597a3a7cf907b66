package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/domain"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

const (
	authContextKey = "auth_context"
	bearerScheme   = "bearer "
)

// Resolver turns an Authorization header into an AuthContext. It never touches the database.
type Resolver struct {
	tokens *TokenManager
}

// NewResolver constructs a resolver over the token manager.
func NewResolver(tokens *TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve decodes "Bearer <token>" (scheme case-insensitive) into an AuthContext.
func (r *Resolver) Resolve(header string) (domain.AuthContext, error) {
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return domain.AuthContext{}, apperrors.NewUnauthenticated("Missing bearer token")
	}
	tokenStr := strings.TrimSpace(header[len(bearerScheme):])

	claims, err := r.tokens.ParseToken(tokenStr)
	if err != nil {
		return domain.AuthContext{}, apperrors.NewUnauthenticated("Invalid token")
	}
	subjectID, err := claims.SubjectID()
	if err != nil {
		return domain.AuthContext{}, apperrors.NewUnauthenticated("Invalid token")
	}
	return domain.AuthContext{SubjectID: subjectID, AccessLevel: claims.AccessLevel()}, nil
}

// ContextFrom retrieves the AuthContext stored by Gate.Require.
func ContextFrom(c *fiber.Ctx) (domain.AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(domain.AuthContext)
	return ac, ok
}

func storeContext(c *fiber.Ctx, ac domain.AuthContext) {
	c.Locals(authContextKey, ac)
}

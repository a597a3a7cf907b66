package auth

import (
	"crypto/subtle"

	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// AdminSecretHeader carries the shared secret for privilege elevation.
const AdminSecretHeader = "X-Admin-Secret"

// AdminGuard checks the static administrative shared secret.
type AdminGuard struct {
	secret []byte
}

// NewAdminGuard builds a guard for secret.
func NewAdminGuard(secret string) *AdminGuard {
	return &AdminGuard{secret: []byte(secret)}
}

// Check compares supplied with the configured secret in constant time.
func (g *AdminGuard) Check(supplied string) error {
	if supplied == "" || len(g.secret) == 0 {
		return apperrors.NewUnauthorized("Invalid admin secret")
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(supplied)) != 1 {
		return apperrors.NewUnauthorized("Invalid admin secret")
	}
	return nil
}

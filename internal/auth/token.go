package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"
)

// ErrInvalidToken covers every decode failure; callers cannot tell them apart.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  abtime.AbstractTime
}

// NewTokenManager builds a new manager. A nil clock uses wall time.
func NewTokenManager(secret string, ttl time.Duration, clock abtime.AbstractTime) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, clock: clock}
}

// Claims describes JWT payload. Level is a pointer so a missing claim is detectable.
type Claims struct {
	Level *int `json:"lvl"`
	jwt.RegisteredClaims
}

// SubjectID parses the numeric subject.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// AccessLevel returns the level claimed at issuance.
func (c *Claims) AccessLevel() int {
	if c.Level == nil {
		return 0
	}
	return *c.Level
}

// GenerateToken builds and signs a JWT for the subject.
func (tm *TokenManager) GenerateToken(subjectID int64, level int) (string, time.Time, error) {
	now := tm.clock.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Level: &level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature, algorithm and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.ExpiresAt.Time.After(tm.clock.Now()) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if claims.Level == nil {
		return nil, fmt.Errorf("%w: missing level", ErrInvalidToken)
	}
	if _, err := claims.SubjectID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return claims, nil
}

// TTL reports the lifetime given to new tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

package domain

import "time"

// TokenTypeBearer is the token_type reported with every issued token.
const TokenTypeBearer = "bearer"

// AuthContext is the per-request identity and privilege pair derived from a token.
// A zero SubjectID means no identity was claimed.
type AuthContext struct {
	SubjectID   int64
	AccessLevel int
}

// Anonymous reports whether the context carries no subject.
func (a AuthContext) Anonymous() bool {
	return a.SubjectID == 0
}

// WithAccessLevel returns a copy of the context carrying level.
func (a AuthContext) WithAccessLevel(level int) AuthContext {
	a.AccessLevel = level
	return a
}

// TokenGrant is a freshly minted token and the state it reflects.
type TokenGrant struct {
	AccessToken string
	TokenType   string
	Level       int
	UserID      int64
	ExpiresAt   time.Time
}

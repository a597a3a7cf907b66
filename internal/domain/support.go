package domain

import "time"

// Support request statuses.
const (
	SupportStatusNew        = "new"
	SupportStatusInProgress = "in_progress"
	SupportStatusResolved   = "resolved"
)

// SupportRequest is a customer inquiry; UserID is nil for anonymous requests.
type SupportRequest struct {
	ID               int64
	UserID           *int64
	ContactInfo      string
	Status           string
	OperatorResponse *string
	OperatorStatus   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package domain

import "time"

// User is a store customer or operator account.
type User struct {
	ID           int64
	FullName     string
	Login        string
	Email        string
	PhoneNumber  string
	PasswordHash string
	AccessLevel  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

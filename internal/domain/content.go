package domain

import "time"

// News is a published article.
type News struct {
	ID        int64
	Title     string
	MainPhoto *string
	Text1     *string
	Text2     *string
	Photos    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

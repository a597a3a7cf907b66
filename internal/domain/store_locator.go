package domain

import "time"

// Shop is a branded retail store.
type Shop struct {
	ID        int64
	Name      string
	Country   string
	City      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WhereToBuy is a third-party point of sale.
type WhereToBuy struct {
	ID        int64
	Location  string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

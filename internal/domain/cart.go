package domain

import "time"

// CartStatusActive is the status of a cart that has not been checked out.
const CartStatusActive = "active"

// Cart holds modules a user intends to order. Each user has at most one.
type Cart struct {
	ID          int64
	UserID      int64
	Status      string
	TotalAmount float64
	Modules     []Module
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasModule reports whether moduleID is already in the cart.
func (c Cart) HasModule(moduleID int64) bool {
	for _, m := range c.Modules {
		if m.ID == moduleID {
			return true
		}
	}
	return false
}

// ComputeTotal sums the effective prices of the cart's modules.
func (c Cart) ComputeTotal() float64 {
	return TotalPrice(c.Modules)
}

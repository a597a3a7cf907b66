package domain

import "time"

// OrderStatusPending is the status of a freshly placed order.
const OrderStatusPending = "pending"

// Order is a placed purchase of modules.
type Order struct {
	ID              int64
	UserID          int64
	FullName        string
	Email           string
	DeliveryAddress string
	City            string
	Street          string
	House           string
	Building        *string
	Floor           *string
	EntranceCode    *string
	PaymentMethod   string
	Recipient       string
	Date            time.Time
	TotalAmount     float64
	Status          string
	Modules         []Module
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

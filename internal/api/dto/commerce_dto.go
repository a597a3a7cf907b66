package dto

import (
	"time"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// OrderRequest payload for POST /orders. The owner is always the caller.
type OrderRequest struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	DeliveryAddress string   `json:"delivery_address"`
	City            string   `json:"city"`
	Street          string   `json:"street"`
	House           string   `json:"house"`
	Building        *string  `json:"building"`
	Floor           *string  `json:"floor"`
	EntranceCode    *string  `json:"entrance_code"`
	PaymentMethod   string   `json:"payment_method"`
	Recipient       string   `json:"recipient"`
	TotalAmount     *float64 `json:"total_amount"`
	Status          string   `json:"status"`
	ModuleIDs       []int64  `json:"module_ids"`
}

// OrderUpdateRequest payload; omitted fields keep their value.
type OrderUpdateRequest struct {
	FullName        *string  `json:"full_name"`
	Email           *string  `json:"email"`
	DeliveryAddress *string  `json:"delivery_address"`
	City            *string  `json:"city"`
	Street          *string  `json:"street"`
	House           *string  `json:"house"`
	Building        *string  `json:"building"`
	Floor           *string  `json:"floor"`
	EntranceCode    *string  `json:"entrance_code"`
	PaymentMethod   *string  `json:"payment_method"`
	Recipient       *string  `json:"recipient"`
	TotalAmount     *float64 `json:"total_amount"`
	Status          *string  `json:"status"`
	ModuleIDs       []int64  `json:"module_ids"`
}

// OrderResponse renders an order with its modules.
type OrderResponse struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"user_id"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	DeliveryAddress string           `json:"delivery_address"`
	City            string           `json:"city"`
	Street          string           `json:"street"`
	House           string           `json:"house"`
	Building        *string          `json:"building"`
	Floor           *string          `json:"floor"`
	EntranceCode    *string          `json:"entrance_code"`
	PaymentMethod   string           `json:"payment_method"`
	Recipient       string           `json:"recipient"`
	Date            time.Time        `json:"date"`
	TotalAmount     float64          `json:"total_amount"`
	Status          string           `json:"status"`
	Modules         []ModuleResponse `json:"modules"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CartUpdateRequest payload for PUT /users/:user_id/cart.
type CartUpdateRequest struct {
	Status      *string  `json:"status"`
	TotalAmount *float64 `json:"total_amount"`
	ModuleIDs   []int64  `json:"module_ids"`
}

// CartResponse renders a cart.
type CartResponse struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	Status      string           `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	Modules     []ModuleResponse `json:"modules"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		FullName:        o.FullName,
		Email:           o.Email,
		DeliveryAddress: o.DeliveryAddress,
		City:            o.City,
		Street:          o.Street,
		House:           o.House,
		Building:        o.Building,
		Floor:           o.Floor,
		EntranceCode:    o.EntranceCode,
		PaymentMethod:   o.PaymentMethod,
		Recipient:       o.Recipient,
		Date:            o.Date,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		Modules:         NewModuleResponses(o.Modules),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

func NewCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Status:      c.Status,
		TotalAmount: c.TotalAmount,
		Modules:     NewModuleResponses(c.Modules),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

package dto

import (
	"time"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// NewsResponse renders an article.
type NewsResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	MainPhoto *string   `json:"main_photo"`
	Text1     *string   `json:"text1"`
	Text2     *string   `json:"text2"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupportCreateRequest payload for POST /support/requests.
type SupportCreateRequest struct {
	ContactInfo      string  `json:"contact_info"`
	Status           string  `json:"status"`
	OperatorResponse *string `json:"operator_response"`
	OperatorStatus   *string `json:"operator_status"`
}

// SupportUpdateRequest payload; omitted fields keep their value.
type SupportUpdateRequest struct {
	ContactInfo      *string `json:"contact_info"`
	Status           *string `json:"status"`
	OperatorResponse *string `json:"operator_response"`
	OperatorStatus   *string `json:"operator_status"`
}

// SupportResponse renders a support request.
type SupportResponse struct {
	ID               int64     `json:"id"`
	UserID           *int64    `json:"user_id"`
	ContactInfo      string    `json:"contact_info"`
	Status           string    `json:"status"`
	OperatorResponse *string   `json:"operator_response"`
	OperatorStatus   *string   `json:"operator_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ShopRequest payload for creating a shop.
type ShopRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// ShopUpdateRequest payload; omitted fields keep their value.
type ShopUpdateRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Address *string `json:"address"`
}

// ShopResponse renders a shop.
type ShopResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WhereToBuyRequest payload for creating a point of sale.
type WhereToBuyRequest struct {
	Location string `json:"location"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// WhereToBuyUpdateRequest payload; omitted fields keep their value.
type WhereToBuyUpdateRequest struct {
	Location *string `json:"location"`
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

// WhereToBuyResponse renders a point of sale.
type WhereToBuyResponse struct {
	ID        int64     `json:"id"`
	Location  string    `json:"location"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNewsResponse(n *domain.News) NewsResponse {
	return NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		MainPhoto: n.MainPhoto,
		Text1:     n.Text1,
		Text2:     n.Text2,
		Photos:    nonNil(n.Photos),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewSupportResponse(r *domain.SupportRequest) SupportResponse {
	return SupportResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		ContactInfo:      r.ContactInfo,
		Status:           r.Status,
		OperatorResponse: r.OperatorResponse,
		OperatorStatus:   r.OperatorStatus,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func NewShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Country:   s.Country,
		City:      s.City,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewWhereToBuyResponse(w *domain.WhereToBuy) WhereToBuyResponse {
	return WhereToBuyResponse{
		ID:        w.ID,
		Location:  w.Location,
		Name:      w.Name,
		Address:   w.Address,
		Phone:     w.Phone,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

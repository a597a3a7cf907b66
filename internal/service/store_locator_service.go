package service

import (
	"context"
	"strings"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// StoreLocatorService manages shops and where-to-buy points.
type StoreLocatorService struct {
	shops  repository.ShopRepository
	points repository.WhereToBuyRepository
}

// NewStoreLocatorService builds the service.
func NewStoreLocatorService(shops repository.ShopRepository, points repository.WhereToBuyRepository) *StoreLocatorService {
	return &StoreLocatorService{shops: shops, points: points}
}

// ShopUpdate applies non-nil fields.
type ShopUpdate struct {
	Name    *string
	Country *string
	City    *string
	Address *string
}

// WhereToBuyUpdate applies non-nil fields.
type WhereToBuyUpdate struct {
	Location *string
	Name     *string
	Address  *string
	Phone    *string
}

func (s *StoreLocatorService) CreateShop(ctx context.Context, shop *domain.Shop) error {
	if blank(shop.Name, shop.Country, shop.City, shop.Address) {
		return apperrors.NewValidationError("name, country, city, address required", nil)
	}
	return s.shops.Create(ctx, shop)
}

func (s *StoreLocatorService) GetShop(ctx context.Context, id int64) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Shop")
	}
	return shop, nil
}

func (s *StoreLocatorService) ListShops(ctx context.Context, filter repository.LocatorFilter) ([]domain.Shop, error) {
	return s.shops.List(ctx, filter)
}

func (s *StoreLocatorService) UpdateShop(ctx context.Context, id int64, in ShopUpdate) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Shop")
	}
	setString(&shop.Name, in.Name)
	setString(&shop.Country, in.Country)
	setString(&shop.City, in.City)
	setString(&shop.Address, in.Address)
	if blank(shop.Name, shop.Country, shop.City, shop.Address) {
		return nil, apperrors.NewValidationError("name, country, city, address must not be empty", nil)
	}
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, notFound(err, "Shop")
	}
	return shop, nil
}

func (s *StoreLocatorService) DeleteShop(ctx context.Context, id int64) error {
	return notFound(s.shops.Delete(ctx, id), "Shop")
}

func (s *StoreLocatorService) CreateWhereToBuy(ctx context.Context, point *domain.WhereToBuy) error {
	if blank(point.Location, point.Name, point.Address, point.Phone) {
		return apperrors.NewValidationError("location, name, address, phone required", nil)
	}
	return s.points.Create(ctx, point)
}

func (s *StoreLocatorService) GetWhereToBuy(ctx context.Context, id int64) (*domain.WhereToBuy, error) {
	point, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Where-to-buy point")
	}
	return point, nil
}

func (s *StoreLocatorService) ListWhereToBuy(ctx context.Context, filter repository.LocatorFilter) ([]domain.WhereToBuy, error) {
	return s.points.List(ctx, filter)
}

func (s *StoreLocatorService) UpdateWhereToBuy(ctx context.Context, id int64, in WhereToBuyUpdate) (*domain.WhereToBuy, error) {
	point, err := s.points.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Where-to-buy point")
	}
	setString(&point.Location, in.Location)
	setString(&point.Name, in.Name)
	setString(&point.Address, in.Address)
	setString(&point.Phone, in.Phone)
	if blank(point.Location, point.Name, point.Address, point.Phone) {
		return nil, apperrors.NewValidationError("location, name, address, phone must not be empty", nil)
	}
	if err := s.points.Update(ctx, point); err != nil {
		return nil, notFound(err, "Where-to-buy point")
	}
	return point, nil
}

func (s *StoreLocatorService) DeleteWhereToBuy(ctx context.Context, id int64) error {
	return notFound(s.points.Delete(ctx, id), "Where-to-buy point")
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

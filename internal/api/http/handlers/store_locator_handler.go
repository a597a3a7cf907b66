package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/service"
)

// StoreLocatorHandler serves branded shops and third-party points of sale.
type StoreLocatorHandler struct {
	locator *service.StoreLocatorService
}

// NewStoreLocatorHandler constructs handler.
func NewStoreLocatorHandler(locator *service.StoreLocatorService) *StoreLocatorHandler {
	return &StoreLocatorHandler{locator: locator}
}

// CreateShop POST /shops.
func (h *StoreLocatorHandler) CreateShop(c *fiber.Ctx) error {
	var req dto.ShopRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	shop := &domain.Shop{Name: req.Name, Country: req.Country, City: req.City, Address: req.Address}
	if err := h.locator.CreateShop(c.UserContext(), shop); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewShopResponse(shop)})
}

// ListShops GET /shops?city=.
func (h *StoreLocatorHandler) ListShops(c *fiber.Ctx) error {
	shops, err := h.locator.ListShops(c.UserContext(), repository.LocatorFilter{Place: c.Query("city"), Page: parsePage(c)})
	if err != nil {
		return err
	}
	out := make([]dto.ShopResponse, 0, len(shops))
	for i := range shops {
		out = append(out, dto.NewShopResponse(&shops[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetShop GET /shops/:id.
func (h *StoreLocatorHandler) GetShop(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	shop, err := h.locator.GetShop(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopResponse(shop)})
}

// UpdateShop PUT /shops/:id.
func (h *StoreLocatorHandler) UpdateShop(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ShopUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	shop, err := h.locator.UpdateShop(c.UserContext(), id, service.ShopUpdate{
		Name:    req.Name,
		Country: req.Country,
		City:    req.City,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShopResponse(shop)})
}

// DeleteShop DELETE /shops/:id.
func (h *StoreLocatorHandler) DeleteShop(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.locator.DeleteShop(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateWhereToBuy POST /where-to-buy.
func (h *StoreLocatorHandler) CreateWhereToBuy(c *fiber.Ctx) error {
	var req dto.WhereToBuyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	point := &domain.WhereToBuy{Location: req.Location, Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.locator.CreateWhereToBuy(c.UserContext(), point); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewWhereToBuyResponse(point)})
}

// ListWhereToBuy GET /where-to-buy?location=.
func (h *StoreLocatorHandler) ListWhereToBuy(c *fiber.Ctx) error {
	points, err := h.locator.ListWhereToBuy(c.UserContext(), repository.LocatorFilter{Place: c.Query("location"), Page: parsePage(c)})
	if err != nil {
		return err
	}
	out := make([]dto.WhereToBuyResponse, 0, len(points))
	for i := range points {
		out = append(out, dto.NewWhereToBuyResponse(&points[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetWhereToBuy GET /where-to-buy/:id.
func (h *StoreLocatorHandler) GetWhereToBuy(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	point, err := h.locator.GetWhereToBuy(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWhereToBuyResponse(point)})
}

// UpdateWhereToBuy PUT /where-to-buy/:id.
func (h *StoreLocatorHandler) UpdateWhereToBuy(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.WhereToBuyUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	point, err := h.locator.UpdateWhereToBuy(c.UserContext(), id, service.WhereToBuyUpdate{
		Location: req.Location,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWhereToBuyResponse(point)})
}

// DeleteWhereToBuy DELETE /where-to-buy/:id.
func (h *StoreLocatorHandler) DeleteWhereToBuy(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.locator.DeleteWhereToBuy(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

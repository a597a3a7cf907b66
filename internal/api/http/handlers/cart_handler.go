package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/service"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// CartHandler manages the per-user cart.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get GET /users/:user_id/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	cart, err := h.carts.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(cart)})
}

// Update PUT /users/:user_id/cart.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	userID, err := ownCart(c)
	if err != nil {
		return err
	}
	var req dto.CartUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	cart, err := h.carts.Update(c.UserContext(), userID, service.CartUpdate{
		Status:      req.Status,
		TotalAmount: req.TotalAmount,
		ModuleIDs:   req.ModuleIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(cart)})
}

// AddModule POST /users/:user_id/cart/modules/:module_id.
func (h *CartHandler) AddModule(c *fiber.Ctx) error {
	return h.changeModule(c, h.carts.AddModule)
}

// RemoveModule DELETE /users/:user_id/cart/modules/:module_id.
func (h *CartHandler) RemoveModule(c *fiber.Ctx) error {
	return h.changeModule(c, h.carts.RemoveModule)
}

func (h *CartHandler) changeModule(c *fiber.Ctx, change func(context.Context, int64, int64) (*domain.Cart, error)) error {
	userID, err := ownCart(c)
	if err != nil {
		return err
	}
	moduleID, err := idParam(c, "module_id")
	if err != nil {
		return err
	}
	cart, err := change(c.UserContext(), userID, moduleID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(cart)})
}

// ownCart returns the cart owner from the path. Customers may only change their own
// cart; moderators and above may change any.
func ownCart(c *fiber.Ctx) (int64, error) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return 0, err
	}
	ac, ok := auth.ContextFrom(c)
	if !ok {
		return 0, apperrors.NewUnauthenticated("Missing bearer token")
	}
	if ac.SubjectID != userID && ac.AccessLevel < auth.LevelModerator {
		return 0, apperrors.NewForbidden("Insufficient access level")
	}
	return userID, nil
}

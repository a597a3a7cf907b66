package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/service"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create POST /orders. The order belongs to the authenticated caller.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	ac, ok := auth.ContextFrom(c)
	if !ok {
		return apperrors.NewUnauthenticated("Missing bearer token")
	}
	var req dto.OrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.orders.Create(c.UserContext(), ac.SubjectID, service.OrderInput{
		FullName:        req.FullName,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		Street:          req.Street,
		House:           req.House,
		Building:        req.Building,
		Floor:           req.Floor,
		EntranceCode:    req.EntranceCode,
		PaymentMethod:   req.PaymentMethod,
		Recipient:       req.Recipient,
		TotalAmount:     req.TotalAmount,
		Status:          req.Status,
		ModuleIDs:       req.ModuleIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// List GET /orders, optionally narrowed by ?user_id=.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{Page: parsePage(c)}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewInvalidArgument("invalid user_id")
		}
		filter.UserID = &userID
	}
	orders, err := h.orders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// Get GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Update PUT /orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	ac, _ := auth.ContextFrom(c)
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.OrderUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.orders.Update(c.UserContext(), ac.SubjectID, id, service.OrderUpdate{
		FullName:        req.FullName,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		Street:          req.Street,
		House:           req.House,
		Building:        req.Building,
		Floor:           req.Floor,
		EntranceCode:    req.EntranceCode,
		PaymentMethod:   req.PaymentMethod,
		Recipient:       req.Recipient,
		TotalAmount:     req.TotalAmount,
		Status:          req.Status,
		ModuleIDs:       req.ModuleIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Delete DELETE /orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

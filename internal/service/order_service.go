package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// OrderService places and administers orders.
type OrderService struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	modules    repository.ModuleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, modules repository.ModuleRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     orders,
		users:      users,
		modules:    modules,
		dispatcher: dispatcher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// OrderInput describes a new order. A nil TotalAmount is computed from the modules.
type OrderInput struct {
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
	TotalAmount     *float64
	Status          string
	ModuleIDs       []int64
}

// OrderUpdate applies non-nil fields. A non-nil ModuleIDs replaces the module set.
type OrderUpdate struct {
	FullName        *string
	Email           *string
	DeliveryAddress *string
	City            *string
	Street          *string
	House           *string
	Building        *string
	Floor           *string
	EntranceCode    *string
	PaymentMethod   *string
	Recipient       *string
	TotalAmount     *float64
	Status          *string
	ModuleIDs       []int64
}

// Create places an order owned by ownerID, the authenticated caller.
func (s *OrderService) Create(ctx context.Context, ownerID int64, in OrderInput) (*domain.Order, error) {
	if missing := missingOrderFields(in); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, notFound(err, "User")
	}
	modules, err := resolveModules(ctx, s.modules, in.ModuleIDs)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:          ownerID,
		FullName:        in.FullName,
		Email:           in.Email,
		DeliveryAddress: in.DeliveryAddress,
		City:            in.City,
		Street:          in.Street,
		House:           in.House,
		Building:        in.Building,
		Floor:           in.Floor,
		EntranceCode:    in.EntranceCode,
		PaymentMethod:   in.PaymentMethod,
		Recipient:       in.Recipient,
		Date:            s.now(),
		Status:          in.Status,
		Modules:         modules,
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if in.TotalAmount != nil {
		order.TotalAmount = *in.TotalAmount
	} else {
		order.TotalAmount = domain.TotalPrice(modules)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOrderPlaced, order.ID, ownerID,
		events.OrderPlacedPayload{UserID: ownerID, TotalAmount: order.TotalAmount, ModuleCount: len(modules)}))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order")
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// Update changes an order on behalf of actorID.
func (s *OrderService) Update(ctx context.Context, actorID, id int64, in OrderUpdate) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order")
	}
	oldStatus := order.Status

	setString(&order.FullName, in.FullName)
	setString(&order.Email, in.Email)
	setString(&order.DeliveryAddress, in.DeliveryAddress)
	setString(&order.City, in.City)
	setString(&order.Street, in.Street)
	setString(&order.House, in.House)
	setString(&order.PaymentMethod, in.PaymentMethod)
	setString(&order.Recipient, in.Recipient)
	setString(&order.Status, in.Status)
	if in.Building != nil {
		order.Building = in.Building
	}
	if in.Floor != nil {
		order.Floor = in.Floor
	}
	if in.EntranceCode != nil {
		order.EntranceCode = in.EntranceCode
	}
	if in.ModuleIDs != nil {
		if order.Modules, err = resolveModules(ctx, s.modules, in.ModuleIDs); err != nil {
			return nil, err
		}
	}
	if in.TotalAmount != nil {
		order.TotalAmount = *in.TotalAmount
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, notFound(err, "Order")
	}
	if order.Status != oldStatus {
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventOrderStatusChanged, order.ID, actorID,
			events.OrderStatusChangedPayload{OldStatus: oldStatus, NewStatus: order.Status}))
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return notFound(s.orders.Delete(ctx, id), "Order")
}

func missingOrderFields(in OrderInput) []string {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"email", in.Email},
		{"delivery_address", in.DeliveryAddress},
		{"city", in.City},
		{"street", in.Street},
		{"house", in.House},
		{"payment_method", in.PaymentMethod},
		{"recipient", in.Recipient},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

package service

import (
	"context"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// CartService manages the per-user shopping cart.
type CartService struct {
	carts   repository.CartRepository
	users   repository.UserRepository
	modules repository.ModuleRepository
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, users repository.UserRepository, modules repository.ModuleRepository) *CartService {
	return &CartService{carts: carts, users: users, modules: modules}
}

// CartUpdate applies non-nil fields. A non-nil ModuleIDs replaces the module set and,
// unless TotalAmount is given, recomputes the total.
type CartUpdate struct {
	Status      *string
	TotalAmount *float64
	ModuleIDs   []int64
}

// Get returns the user's cart, creating it on first access.
func (s *CartService) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreate(ctx, userID)
}

func (s *CartService) Update(ctx context.Context, userID int64, in CartUpdate) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		cart.Status = *in.Status
	}
	if in.ModuleIDs != nil {
		modules, err := resolveModules(ctx, s.modules, in.ModuleIDs)
		if err != nil {
			return nil, err
		}
		cart.Modules = modules
		cart.TotalAmount = cart.ComputeTotal()
	}
	if in.TotalAmount != nil {
		cart.TotalAmount = *in.TotalAmount
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddModule puts a module into the cart. Adding a module already present changes nothing.
func (s *CartService) AddModule(ctx context.Context, userID, moduleID int64) (*domain.Cart, error) {
	cart, module, err := s.load(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	if cart.HasModule(moduleID) {
		return cart, nil
	}
	cart.Modules = append(cart.Modules, *module)
	cart.TotalAmount = cart.ComputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveModule takes a module out of the cart. Removing an absent module changes nothing.
func (s *CartService) RemoveModule(ctx context.Context, userID, moduleID int64) (*domain.Cart, error) {
	cart, _, err := s.load(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !cart.HasModule(moduleID) {
		return cart, nil
	}
	kept := cart.Modules[:0]
	for _, m := range cart.Modules {
		if m.ID != moduleID {
			kept = append(kept, m)
		}
	}
	cart.Modules = kept
	cart.TotalAmount = cart.ComputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) load(ctx context.Context, userID, moduleID int64) (*domain.Cart, *domain.Module, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, nil, err
	}
	module, err := s.modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, nil, notFound(err, "Module")
	}
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return cart, module, nil
}

func (s *CartService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return notFound(err, "User")
	}
	return nil
}

// resolveModules loads every referenced module or fails naming the first missing id.
func resolveModules(ctx context.Context, repo repository.ModuleRepository, ids []int64) ([]domain.Module, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []domain.Module{}, nil
	}
	modules, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(modules))
	for _, m := range modules {
		found[m.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperrors.NewNotFound("Module", map[string]any{"id": id})
		}
	}
	return modules, nil
}

package service

import (
	"context"
	"testing"

	"github.com/go-test/deep"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository"
)

func seedModules(t *testing.T, f *fixture) (shelf, drawer *domain.Module) {
	t.Helper()
	ctx := context.Background()
	discount := 80.0
	shelf = &domain.Module{Name: "Shelf", Article: "SH-1", Price: 100, DiscountedPrice: &discount}
	drawer = &domain.Module{Name: "Drawer", Article: "DR-1", Price: 50}
	for _, m := range []*domain.Module{shelf, drawer} {
		if err := f.store.Modules().Create(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	return shelf, drawer
}

func TestCart_TotalsFollowModules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := register(t, f, "a@x.com", "alice", "pw1")
	shelf, drawer := seedModules(t, f)
	svc := NewCartService(f.store.Carts(), f.store.Users(), f.store.Modules())

	cart, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Status != domain.CartStatusActive || cart.TotalAmount != 0 {
		t.Errorf("new cart = %+v", cart)
	}

	if _, err := svc.AddModule(ctx, userID, shelf.ID); err != nil {
		t.Fatal(err)
	}
	cart, err = svc.AddModule(ctx, userID, shelf.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Modules) != 1 || cart.TotalAmount != 80 {
		t.Errorf("after adding shelf twice: %d modules, total %v", len(cart.Modules), cart.TotalAmount)
	}

	cart, err = svc.Update(ctx, userID, CartUpdate{ModuleIDs: []int64{shelf.ID, drawer.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if cart.TotalAmount != 130 {
		t.Errorf("recomputed total = %v, want 130", cart.TotalAmount)
	}

	override := 99.5
	cart, err = svc.Update(ctx, userID, CartUpdate{TotalAmount: &override, ModuleIDs: []int64{drawer.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if cart.TotalAmount != override {
		t.Errorf("explicit total = %v, want %v", cart.TotalAmount, override)
	}

	cart, err = svc.RemoveModule(ctx, userID, drawer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Modules) != 0 || cart.TotalAmount != 0 {
		t.Errorf("after remove: %+v", cart)
	}

	if _, err := svc.AddModule(ctx, userID, 999); codeOf(err) != "NOT_FOUND" {
		t.Errorf("unknown module: %v", err)
	}
	if _, err := svc.Get(ctx, 999); codeOf(err) != "NOT_FOUND" {
		t.Errorf("unknown user: %v", err)
	}
}

func validOrder(moduleIDs ...int64) OrderInput {
	return OrderInput{
		FullName:        "Alice Doe",
		Email:           "a@x.com",
		DeliveryAddress: "Main st 1",
		City:            "Moscow",
		Street:          "Main",
		House:           "1",
		PaymentMethod:   "card",
		Recipient:       "Alice",
		ModuleIDs:       moduleIDs,
	}
}

func TestOrder_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := register(t, f, "a@x.com", "alice", "pw1")
	moderator := register(t, f, "m@x.com", "mod", "pw2")
	shelf, drawer := seedModules(t, f)
	svc := NewOrderService(f.store.Orders(), f.store.Users(), f.store.Modules(), f.dispatcher, nil)

	order, err := svc.Create(ctx, owner, validOrder(shelf.ID, drawer.ID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if order.UserID != owner || order.Status != domain.OrderStatusPending || order.TotalAmount != 130 {
		t.Errorf("order = %+v", order)
	}
	if order.Date.IsZero() {
		t.Error("order date not set")
	}

	status := "shipped"
	updated, err := svc.Update(ctx, moderator, order.ID, OrderUpdate{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != status || updated.UserID != owner || len(updated.Modules) != 2 {
		t.Errorf("updated = %+v", updated)
	}

	list, err := svc.List(ctx, repository.OrderFilter{UserID: &owner})
	if err != nil || len(list) != 1 {
		t.Errorf("List() = %d orders, %v", len(list), err)
	}
	if diff := deep.Equal(f.seen.types(), []events.EventType{events.EventOrderPlaced, events.EventOrderStatusChanged}); diff != nil {
		t.Error(diff)
	}
}

func TestOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := register(t, f, "a@x.com", "alice", "pw1")
	svc := NewOrderService(f.store.Orders(), f.store.Users(), f.store.Modules(), f.dispatcher, nil)

	incomplete := validOrder()
	incomplete.City = " "
	tests := []struct {
		name  string
		owner int64
		in    OrderInput
		code  string
	}{
		{"missing field", owner, incomplete, "VALIDATION_FAILED"},
		{"unknown owner", 999, validOrder(), "NOT_FOUND"},
		{"unknown module", owner, validOrder(42), "NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.owner, tc.in)
			if got := codeOf(err); got != tc.code {
				t.Errorf("code = %q, want %q", got, tc.code)
			}
		})
	}
	if err := svc.Delete(ctx, 5); codeOf(err) != "NOT_FOUND" {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestSupport_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := register(t, f, "a@x.com", "alice", "pw1")
	svc := NewSupportService(f.store.Support(), f.store.Users(), f.dispatcher, nil)

	anon, err := svc.Create(ctx, SupportInput{ContactInfo: "+7 900 000"})
	if err != nil {
		t.Fatal(err)
	}
	if anon.UserID != nil || anon.Status != domain.SupportStatusNew {
		t.Errorf("anonymous request = %+v", anon)
	}
	if _, err := svc.Create(ctx, SupportInput{UserID: &userID, ContactInfo: "mail me"}); err != nil {
		t.Fatal(err)
	}
	ghost := int64(999)
	if _, err := svc.Create(ctx, SupportInput{UserID: &ghost, ContactInfo: "x"}); codeOf(err) != "NOT_FOUND" {
		t.Errorf("unknown user: %v", err)
	}
	if _, err := svc.Create(ctx, SupportInput{ContactInfo: "x", Status: "closed"}); codeOf(err) != "INVALID_ARGUMENT" {
		t.Errorf("bad status: %v", err)
	}

	resolved := domain.SupportStatusResolved
	answer := "Called back"
	got, err := svc.Update(ctx, anon.ID, SupportUpdate{Status: &resolved, OperatorResponse: &answer})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != resolved || got.OperatorResponse == nil || *got.OperatorResponse != answer {
		t.Errorf("updated = %+v", got)
	}

	done, err := svc.List(ctx, repository.SupportFilter{Status: resolved})
	if err != nil || len(done) != 1 || done[0].ID != anon.ID {
		t.Errorf("List(resolved) = %+v, %v", done, err)
	}
	if diff := deep.Equal(f.seen.types(), []events.EventType{events.EventSupportRequestCreated, events.EventSupportRequestCreated}); diff != nil {
		t.Error(diff)
	}
}

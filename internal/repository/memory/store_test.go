package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

func mustUser(t *testing.T, s *Store, email, login string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Login: login, FullName: login, PasswordHash: "x", AccessLevel: 1}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestUsers_UniqueAndIdentifier(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice := mustUser(t, s, "alice@example.com", "alice")
	mustUser(t, s, "bob@example.com", "bob")

	dup := &domain.User{Email: "alice@example.com", Login: "other"}
	var pgErr *pgconn.PgError
	if err := s.Users().Create(ctx, dup); !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("duplicate email error = %v", err)
	}

	got, err := s.Users().GetByIdentifier(ctx, "alice")
	if err != nil || got.ID != alice.ID {
		t.Fatalf("GetByIdentifier(login) = %v, %v", got, err)
	}
	if _, err := s.Users().GetByIdentifier(ctx, "nobody"); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("unknown identifier error = %v", err)
	}

	updated, old, err := s.Users().SetAccessLevel(ctx, alice.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if updated.AccessLevel != 3 || old != 1 {
		t.Errorf("SetAccessLevel() level = %d, old = %d, want 3, 1", updated.AccessLevel, old)
	}
	level, err := s.Users().GetAccessLevel(ctx, alice.ID)
	if err != nil || level != 3 {
		t.Errorf("GetAccessLevel() = %d, %v", level, err)
	}
}

func TestModules_ColorsResolvedOnRead(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	red := &domain.Color{Name: "Red"}
	oak := &domain.Color{Name: "Oak"}
	for _, c := range []*domain.Color{red, oak} {
		if err := s.Colors().Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	m := &domain.Module{Name: "Shelf", Article: "SH-1", Price: 10, Colors: []domain.Color{*oak, *red}}
	if err := s.Modules().Create(ctx, m); err != nil {
		t.Fatal(err)
	}
	if err := s.Modules().Create(ctx, &domain.Module{Name: "Copy", Article: "SH-1"}); err == nil {
		t.Error("duplicate article accepted")
	}

	if err := s.Colors().Delete(ctx, red.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.Modules().GetByID(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(idsOf(got.Colors, colorID), []int64{oak.ID}); diff != nil {
		t.Error(diff)
	}
}

func TestCarts_GetOrCreateAndSave(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := mustUser(t, s, "c@example.com", "c")
	m := &domain.Module{Name: "Drawer", Article: "DR-1", Price: 25}
	if err := s.Modules().Create(ctx, m); err != nil {
		t.Fatal(err)
	}

	cart, err := s.Carts().GetOrCreate(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Status != domain.CartStatusActive || len(cart.Modules) != 0 {
		t.Fatalf("new cart = %+v", cart)
	}
	cart.Modules = []domain.Module{*m}
	cart.TotalAmount = cart.ComputeTotal()
	if err := s.Carts().Save(ctx, cart); err != nil {
		t.Fatal(err)
	}

	again, err := s.Carts().GetOrCreate(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != cart.ID || again.TotalAmount != 25 || len(again.Modules) != 1 {
		t.Errorf("reloaded cart = %+v", again)
	}
	if _, err := s.Carts().GetOrCreate(ctx, 999); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("cart for unknown user error = %v", err)
	}
}

func TestOrders_FilterAndCascade(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := mustUser(t, s, "a@example.com", "a")
	b := mustUser(t, s, "b@example.com", "b")
	for _, owner := range []int64{a.ID, b.ID, a.ID} {
		if err := s.Orders().Create(ctx, &domain.Order{UserID: owner, Status: domain.OrderStatusPending}); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := s.Orders().List(ctx, repository.OrderFilter{UserID: &a.ID})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(idsOf(mine, func(o domain.Order) int64 { return o.ID }), []int64{3, 1}); diff != nil {
		t.Error(diff)
	}

	if err := s.Users().Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	all, _ := s.Orders().List(ctx, repository.OrderFilter{})
	if len(all) != 1 || all[0].UserID != b.ID {
		t.Errorf("orders after owner delete = %+v", all)
	}
}

func TestSupport_DetachedOnUserDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := mustUser(t, s, "s@example.com", "s")
	req := &domain.SupportRequest{UserID: &u.ID, ContactInfo: "call me", Status: domain.SupportStatusNew}
	if err := s.Support().Create(ctx, req); err != nil {
		t.Fatal(err)
	}
	if err := s.Users().Delete(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.Support().GetByID(ctx, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != nil {
		t.Errorf("UserID = %v after user delete, want nil", *got.UserID)
	}

	open, _ := s.Support().List(ctx, repository.SupportFilter{Status: domain.SupportStatusResolved})
	if len(open) != 0 {
		t.Errorf("status filter returned %d rows", len(open))
	}
}

func TestLocator_PlaceFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, city := range []string{"Moscow", "Kazan", "moscow region"} {
		if err := s.Shops().Create(ctx, &domain.Shop{Name: "Store", City: city}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Shops().List(ctx, repository.LocatorFilter{Place: "MOSCOW"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Place filter matched %d shops, want 2", len(got))
	}
	paged, _ := s.Shops().List(ctx, repository.LocatorFilter{Page: repository.Page{Skip: 2, Limit: 10}})
	if len(paged) != 1 || paged[0].City != "moscow region" {
		t.Errorf("paged = %+v", paged)
	}
	if err := s.WhereToBuy().Delete(ctx, 1); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("delete missing point error = %v", err)
	}
}

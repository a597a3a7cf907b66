package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/furniture-store/internal/domain"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

type fakeLevels struct {
	levels map[int64]int
	err    error
	calls  int
}

func (f *fakeLevels) GetAccessLevel(_ context.Context, id int64) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	level, ok := f.levels[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return level, nil
}

func newTestGate(t *testing.T, levels *fakeLevels, opts GateOptions) (*Gate, *TokenManager) {
	t.Helper()
	tm, _ := newTestManager("secret-a")
	return NewGate(NewResolver(tm), levels, opts, nil), tm
}

func bearer(t *testing.T, tm *TokenManager, id int64, level int) string {
	t.Helper()
	token, _, err := tm.GenerateToken(id, level)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return "Bearer " + token
}

func codeOf(err error) string {
	if de := apperrors.ToDomainError(err); de != nil {
		return de.Code
	}
	return ""
}

func TestGate_ThresholdBoundary(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{1: 2}}
	gate, tm := newTestGate(t, levels, GateOptions{})
	header := bearer(t, tm, 1, 2)

	ac, err := gate.Authorize(context.Background(), header, 2)
	if err != nil {
		t.Fatalf("Authorize(min=2) error = %v", err)
	}
	if ac.AccessLevel != 2 || ac.SubjectID != 1 {
		t.Errorf("AuthContext = %+v, want subject 1 level 2", ac)
	}

	if _, err := gate.Authorize(context.Background(), header, 3); codeOf(err) != "FORBIDDEN" {
		t.Errorf("Authorize(min=3) error = %v, want FORBIDDEN", err)
	}
}

func TestGate_LiveLevelOverridesClaim(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{5: 1}}
	gate, tm := newTestGate(t, levels, GateOptions{})
	header := bearer(t, tm, 5, 1)

	if _, err := gate.Authorize(context.Background(), header, 3); codeOf(err) != "FORBIDDEN" {
		t.Fatalf("Authorize() before elevation error = %v, want FORBIDDEN", err)
	}

	levels.levels[5] = 3
	ac, err := gate.Authorize(context.Background(), header, 3)
	if err != nil {
		t.Fatalf("Authorize() after elevation error = %v", err)
	}
	if ac.AccessLevel != 3 {
		t.Errorf("effective level = %d, want 3", ac.AccessLevel)
	}
}

func TestGate_DemotionBeatsStaleClaim(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{5: 1}}
	gate, tm := newTestGate(t, levels, GateOptions{})

	// token minted while the user was an admin
	header := bearer(t, tm, 5, 3)
	if _, err := gate.Authorize(context.Background(), header, 3); codeOf(err) != "FORBIDDEN" {
		t.Errorf("Authorize() error = %v, want FORBIDDEN", err)
	}
}

func TestGate_OrphanedSubject(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{}}

	strict, tm := newTestGate(t, levels, GateOptions{})
	header := bearer(t, tm, 99, 3)
	if _, err := strict.Authorize(context.Background(), header, 1); codeOf(err) != "UNAUTHENTICATED" {
		t.Errorf("strict Authorize() error = %v, want UNAUTHENTICATED", err)
	}

	permissive := NewGate(strict.resolver, levels, GateOptions{AllowOrphanedTokens: true}, nil)
	ac, err := permissive.Authorize(context.Background(), header, 3)
	if err != nil {
		t.Fatalf("permissive Authorize() error = %v", err)
	}
	if ac.AccessLevel != 3 {
		t.Errorf("effective level = %d, want claimed level 3", ac.AccessLevel)
	}
}

func TestGate_LookupFailureIsInternal(t *testing.T) {
	levels := &fakeLevels{err: errors.New("connection refused")}
	gate, tm := newTestGate(t, levels, GateOptions{AllowOrphanedTokens: true})

	_, err := gate.Authorize(context.Background(), bearer(t, tm, 1, 10), 1)
	if codeOf(err) != "INTERNAL_ERROR" {
		t.Errorf("Authorize() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestGate_InvalidTokenSkipsLookup(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{1: 10}}
	gate, _ := newTestGate(t, levels, GateOptions{})

	if _, err := gate.Authorize(context.Background(), "Bearer nope", 1); codeOf(err) != "UNAUTHENTICATED" {
		t.Errorf("Authorize() error = %v, want UNAUTHENTICATED", err)
	}
	if levels.calls != 0 {
		t.Errorf("store consulted %d times for an invalid token", levels.calls)
	}
}

func TestGate_RequireMiddleware(t *testing.T) {
	levels := &fakeLevels{levels: map[int64]int{4: 2}}
	gate, tm := newTestGate(t, levels, GateOptions{})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Put("/orders/1", gate.Require(LevelModerator), func(c *fiber.Ctx) error {
		ac, ok := ContextFrom(c)
		if !ok {
			return errors.New("missing auth context")
		}
		return c.JSON(ac)
	})
	app.Delete("/orders/1", gate.Require(LevelAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		method string
		header string
		want   int
	}{
		{fiber.MethodPut, bearer(t, tm, 4, 1), fiber.StatusOK},
		{fiber.MethodPut, "", fiber.StatusUnauthorized},
		{fiber.MethodDelete, bearer(t, tm, 4, 3), fiber.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/orders/1", nil)
		if tt.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tt.header)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tt.want {
			t.Errorf("%s status = %d (%s), want %d", tt.method, resp.StatusCode, body, tt.want)
		}
	}
}

func TestContextFrom_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := ContextFrom(c); ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(domain.AuthContext{})
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

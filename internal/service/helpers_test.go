package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository/memory"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

const testAdminSecret = "let-me-in"

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *memory.Store
	hasher     *auth.Hasher
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	seen       *recorder
	auth       *AuthService
	gate       *auth.Gate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour, abtime.NewManualAtTime(time.Unix(1700000000, 0)))
	dispatcher := events.NewInMemoryDispatcher()
	seen := &recorder{}
	for _, et := range []events.EventType{
		events.EventUserLevelChanged,
		events.EventOrderPlaced,
		events.EventOrderStatusChanged,
		events.EventSupportRequestCreated,
	} {
		dispatcher.Subscribe(et, seen.handle)
	}
	f := &fixture{
		store:      store,
		hasher:     auth.NewHasher(bcrypt.MinCost),
		tokens:     tokens,
		dispatcher: dispatcher,
		seen:       seen,
	}
	f.auth = NewAuthService(AuthDependencies{
		Users:      store.Users(),
		Hasher:     f.hasher,
		Tokens:     tokens,
		Admin:      auth.NewAdminGuard(testAdminSecret),
		Dispatcher: dispatcher,
	})
	f.gate = auth.NewGate(auth.NewResolver(tokens), store.Users(), auth.GateOptions{}, nil)
	return f
}

func codeOf(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.ToDomainError(err).Code
}

// Package memory implements the repository interfaces in process. It backs
// local runs without POSTGRES_DSN and the HTTP-level tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
)

type linked[T any] struct {
	row T
	ids []int64
}

// Store holds every table behind one lock. Join rows are kept as id lists and
// resolved on read, so deleting a module or color drops it from its owners.
type Store struct {
	mu  sync.RWMutex
	seq map[string]int64
	now func() time.Time

	users      map[int64]domain.User
	colors     map[int64]domain.Color
	modules    map[int64]linked[domain.Module]
	furniture  map[int64]linked[domain.Furniture]
	carts      map[int64]linked[domain.Cart]
	cartByUser map[int64]int64
	orders     map[int64]linked[domain.Order]
	news       map[int64]domain.News
	support    map[int64]domain.SupportRequest
	shops      map[int64]domain.Shop
	points     map[int64]domain.WhereToBuy
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		seq:        make(map[string]int64),
		now:        func() time.Time { return time.Now().UTC() },
		users:      make(map[int64]domain.User),
		colors:     make(map[int64]domain.Color),
		modules:    make(map[int64]linked[domain.Module]),
		furniture:  make(map[int64]linked[domain.Furniture]),
		carts:      make(map[int64]linked[domain.Cart]),
		cartByUser: make(map[int64]int64),
		orders:     make(map[int64]linked[domain.Order]),
		news:       make(map[int64]domain.News),
		support:    make(map[int64]domain.SupportRequest),
		shops:      make(map[int64]domain.Shop),
		points:     make(map[int64]domain.WhereToBuy),
	}
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Colors returns the color repository view.
func (s *Store) Colors() repository.ColorRepository { return &colorRepo{s} }

// Modules returns the module repository view.
func (s *Store) Modules() repository.ModuleRepository { return &moduleRepo{s} }

// Furniture returns the furniture repository view.
func (s *Store) Furniture() repository.FurnitureRepository { return &furnitureRepo{s} }

// Carts returns the cart repository view.
func (s *Store) Carts() repository.CartRepository { return &cartRepo{s} }

// Orders returns the order repository view.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s} }

// News returns the news repository view.
func (s *Store) News() repository.NewsRepository { return &newsRepo{s} }

// Support returns the support request repository view.
func (s *Store) Support() repository.SupportRepository { return &supportRepo{s} }

// Shops returns the shop repository view.
func (s *Store) Shops() repository.ShopRepository { return &shopRepo{s} }

// WhereToBuy returns the where-to-buy repository view.
func (s *Store) WhereToBuy() repository.WhereToBuyRepository { return &whereToBuyRepo{s} }

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// sortedPage orders rows, applies the page window and returns a fresh slice.
func sortedPage[T any](rows []T, less func(a, b T) bool, page repository.Page) []T {
	sortRows(rows, less)
	page = page.Normalize()
	if page.Skip >= len(rows) {
		return nil
	}
	end := page.Skip + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return append([]T(nil), rows[page.Skip:end]...)
}

func sortRows[T any](rows []T, less func(a, b T) bool) []T {
	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return rows
}

func containsFold(value, term string) bool {
	term = strings.TrimSpace(term)
	return term == "" || strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

func cloneStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return append([]string(nil), v...)
}

func missing[T any](m map[int64]T, id int64) error {
	if _, ok := m[id]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

// Set returns every repository view.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Users:      s.Users(),
		Colors:     s.Colors(),
		Modules:    s.Modules(),
		Furniture:  s.Furniture(),
		Carts:      s.Carts(),
		Orders:     s.Orders(),
		News:       s.News(),
		Support:    s.Support(),
		Shops:      s.Shops(),
		WhereToBuy: s.WhereToBuy(),
	}
}

package repository

import (
	"testing"

	"github.com/go-test/deep"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in   Page
		want Page
	}{
		{Page{}, Page{Skip: 0, Limit: 100}},
		{Page{Skip: -4, Limit: 20}, Page{Skip: 0, Limit: 20}},
		{Page{Skip: 10, Limit: 500}, Page{Skip: 10, Limit: 100}},
		{Page{Skip: 3, Limit: 100}, Page{Skip: 3, Limit: 100}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestWhereBuilder_Paginate(t *testing.T) {
	var w whereBuilder
	w.contains("name", "  Oak_50%  ")
	w.add("user_id=$%d", int64(7))
	w.contains("city", "   ")

	query, args := w.paginate("SELECT id FROM t", "id", Page{Skip: 5, Limit: 10})
	wantQuery := `SELECT id FROM t WHERE name ILIKE $1 AND user_id=$2 ORDER BY id LIMIT $3 OFFSET $4`
	if query != wantQuery {
		t.Errorf("query = %q, want %q", query, wantQuery)
	}
	if diff := deep.Equal(args, []any{`%Oak\_50\%%`, int64(7), 10, 5}); diff != nil {
		t.Error(diff)
	}
}

func TestWhereBuilder_NoFilters(t *testing.T) {
	var w whereBuilder
	query, args := w.paginate("SELECT id FROM t", "created_at DESC", Page{})
	if query != "SELECT id FROM t ORDER BY created_at DESC LIMIT $1 OFFSET $2" {
		t.Errorf("query = %q", query)
	}
	if diff := deep.Equal(args, []any{100, 0}); diff != nil {
		t.Error(diff)
	}
}

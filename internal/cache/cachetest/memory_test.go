package cachetest

import (
	"context"
	"testing"

	"github.com/go-test/deep"
)

type entry struct {
	ID     int64
	Name   string
	Photos []string
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got entry
	if ok, err := m.Get(ctx, "module:1", &got); ok || err != nil {
		t.Fatalf("Get() on empty store = %v, %v", ok, err)
	}

	want := entry{ID: 1, Name: "Shelf", Photos: []string{"/uploads/a.png"}}
	if err := m.Set(ctx, "module:1", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	ok, err := m.Get(ctx, "module:1", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}

	if err := m.Delete(ctx, "module:1", "module:2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", m.Len())
	}
}

package cache

import (
	"context"
	"testing"
)

func TestNoop(t *testing.T) {
	var s Store = Noop{}
	ctx := context.Background()
	if err := s.Set(ctx, "k", 1); err != nil {
		t.Fatal(err)
	}
	var v int
	if ok, _ := s.Get(ctx, "k", &v); ok {
		t.Error("Noop.Get() reported a hit")
	}
}

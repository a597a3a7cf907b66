package service

import (
	"context"
	"testing"

	"github.com/go-test/deep"

	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/cache/cachetest"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/repository/memory"
)

func newCatalog(store *memory.Store, c cache.Store) *CatalogService {
	return NewCatalogService(CatalogDependencies{
		Colors:    store.Colors(),
		Modules:   store.Modules(),
		Furniture: store.Furniture(),
		Cache:     c,
	})
}

func TestCatalog_ModuleReadThroughCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c := cachetest.NewMemory()
	svc := newCatalog(store, c)

	oak, err := svc.CreateColor(ctx, ColorInput{Name: "Oak"})
	if err != nil {
		t.Fatal(err)
	}
	module, err := svc.CreateModule(ctx, ModuleInput{Name: "Shelf", Article: "SH-1", Price: 120, ColorIDs: []int64{oak.ID, oak.ID}})
	if err != nil {
		t.Fatalf("CreateModule() error = %v", err)
	}
	if len(module.Colors) != 1 {
		t.Errorf("duplicate color ids kept: %+v", module.Colors)
	}

	if _, err := svc.GetModule(ctx, module.ID); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache entries = %d after first read, want 1", c.Len())
	}

	// A write behind the service's back is hidden by the cached copy.
	direct := *module
	direct.Name = "Renamed elsewhere"
	if err := store.Modules().Update(ctx, &direct); err != nil {
		t.Fatal(err)
	}
	cached, err := svc.GetModule(ctx, module.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cached.Name != "Shelf" {
		t.Errorf("cached name = %q, want Shelf", cached.Name)
	}

	name := "Tall shelf"
	if _, err := svc.UpdateModule(ctx, module.ID, ModuleUpdate{Name: &name, ColorIDs: []int64{}}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("cache entries = %d after update, want 0", c.Len())
	}
	fresh, err := svc.GetModule(ctx, module.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Name != name || len(fresh.Colors) != 0 {
		t.Errorf("fresh module = %+v", fresh)
	}

	if err := svc.DeleteModule(ctx, module.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetModule(ctx, module.ID); codeOf(err) != "NOT_FOUND" {
		t.Errorf("GetModule after delete: %v", err)
	}
}

func TestCatalog_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(memory.NewStore(), nil)

	tests := []struct {
		name string
		run  func() error
		code string
	}{
		{"color without name", func() error { _, err := svc.CreateColor(ctx, ColorInput{}); return err }, "VALIDATION_FAILED"},
		{"module without article", func() error {
			_, err := svc.CreateModule(ctx, ModuleInput{Name: "Shelf"})
			return err
		}, "VALIDATION_FAILED"},
		{"negative price", func() error {
			_, err := svc.CreateModule(ctx, ModuleInput{Name: "Shelf", Article: "A", Price: -1})
			return err
		}, "VALIDATION_FAILED"},
		{"unknown color", func() error {
			_, err := svc.CreateModule(ctx, ModuleInput{Name: "Shelf", Article: "A", ColorIDs: []int64{42}})
			return err
		}, "NOT_FOUND"},
		{"furniture without type", func() error {
			_, err := svc.CreateFurniture(ctx, FurnitureInput{Name: "Sofa", Article: "S"})
			return err
		}, "VALIDATION_FAILED"},
		{"missing color", func() error { _, err := svc.GetColor(ctx, 7); return err }, "NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := codeOf(tc.run()); got != tc.code {
				t.Errorf("code = %q, want %q", got, tc.code)
			}
		})
	}
}

func TestCatalog_DuplicateArticle(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(memory.NewStore(), nil)
	if _, err := svc.CreateFurniture(ctx, FurnitureInput{FurnitureType: "sofa", Name: "A", Article: "F-1"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateFurniture(ctx, FurnitureInput{FurnitureType: "sofa", Name: "B", Article: "F-1"})
	if got := codeOf(err); got != "CONFLICT" {
		t.Errorf("code = %q, want CONFLICT", got)
	}

	list, err := svc.ListFurniture(ctx, repository.FurnitureFilter{FurnitureType: "sofa"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal([]string{list[0].Article}, []string{"F-1"}); diff != nil || len(list) != 1 {
		t.Errorf("listed %d items: %v", len(list), diff)
	}
}

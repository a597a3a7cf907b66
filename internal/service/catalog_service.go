package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// CatalogService manages colors, modules and furniture. Single-item module and
// furniture reads are served from the cache when possible.
type CatalogService struct {
	colors    repository.ColorRepository
	modules   repository.ModuleRepository
	furniture repository.FurnitureRepository
	cache     cache.Store
	logger    *zap.Logger
}

// CatalogDependencies bundles the catalog repositories.
type CatalogDependencies struct {
	Colors    repository.ColorRepository
	Modules   repository.ModuleRepository
	Furniture repository.FurnitureRepository
	Cache     cache.Store
	Logger    *zap.Logger
}

// NewCatalogService builds the service. A nil cache disables caching.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	store := deps.Cache
	if store == nil {
		store = cache.Noop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		colors:    deps.Colors,
		modules:   deps.Modules,
		furniture: deps.Furniture,
		cache:     store,
		logger:    logger,
	}
}

// ColorInput describes a new color.
type ColorInput struct {
	Name            string
	HexCode         *string
	AdditionalPrice float64
	Photos          []string
}

// ColorUpdate applies non-nil fields; non-empty Photos replace the current set.
type ColorUpdate struct {
	Name            *string
	HexCode         *string
	AdditionalPrice *float64
	Photos          []string
}

// ModuleInput describes a new module.
type ModuleInput struct {
	Name                string
	Article             string
	Price               float64
	DiscountedPrice     *float64
	TechnicalDetails    *string
	AssemblyInstruction *string
	ColorIDs            []int64
	Photos              []string
}

// ModuleUpdate applies non-nil fields. A non-nil ColorIDs, even empty, replaces the color set.
type ModuleUpdate struct {
	Name                *string
	Article             *string
	Price               *float64
	DiscountedPrice     *float64
	TechnicalDetails    *string
	AssemblyInstruction *string
	ColorIDs            []int64
	Photos              []string
}

// FurnitureInput describes a new furniture item.
type FurnitureInput struct {
	FurnitureType            string
	Name                     string
	Article                  string
	Price                    float64
	DiscountedPrice          *float64
	TechnicalCharacteristics *string
	Model                    *string
	ColorIDs                 []int64
	Photos                   []string
}

// FurnitureUpdate follows the ModuleUpdate conventions.
type FurnitureUpdate struct {
	FurnitureType            *string
	Name                     *string
	Article                  *string
	Price                    *float64
	DiscountedPrice          *float64
	TechnicalCharacteristics *string
	Model                    *string
	ColorIDs                 []int64
	Photos                   []string
}

func (s *CatalogService) CreateColor(ctx context.Context, in ColorInput) (*domain.Color, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	color := &domain.Color{
		Name:            in.Name,
		HexCode:         in.HexCode,
		AdditionalPrice: in.AdditionalPrice,
		Photos:          in.Photos,
	}
	if err := s.colors.Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *CatalogService) GetColor(ctx context.Context, id int64) (*domain.Color, error) {
	color, err := s.colors.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Color")
	}
	return color, nil
}

func (s *CatalogService) ListColors(ctx context.Context, page repository.Page) ([]domain.Color, error) {
	return s.colors.List(ctx, page)
}

func (s *CatalogService) UpdateColor(ctx context.Context, id int64, in ColorUpdate) (*domain.Color, error) {
	color, err := s.colors.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Color")
	}
	if in.Name != nil {
		color.Name = *in.Name
	}
	if in.HexCode != nil {
		color.HexCode = in.HexCode
	}
	if in.AdditionalPrice != nil {
		color.AdditionalPrice = *in.AdditionalPrice
	}
	if len(in.Photos) > 0 {
		color.Photos = in.Photos
	}
	if err := s.colors.Update(ctx, color); err != nil {
		return nil, notFound(err, "Color")
	}
	return color, nil
}

func (s *CatalogService) DeleteColor(ctx context.Context, id int64) error {
	return notFound(s.colors.Delete(ctx, id), "Color")
}

func (s *CatalogService) CreateModule(ctx context.Context, in ModuleInput) (*domain.Module, error) {
	if err := validateArticle(in.Name, in.Article, in.Price); err != nil {
		return nil, err
	}
	colors, err := s.resolveColors(ctx, in.ColorIDs)
	if err != nil {
		return nil, err
	}
	module := &domain.Module{
		Name:                in.Name,
		Article:             in.Article,
		Price:               in.Price,
		DiscountedPrice:     in.DiscountedPrice,
		TechnicalDetails:    in.TechnicalDetails,
		AssemblyInstruction: in.AssemblyInstruction,
		Photos:              in.Photos,
		Colors:              colors,
	}
	if err := s.modules.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// GetModule reads through the cache.
func (s *CatalogService) GetModule(ctx context.Context, id int64) (*domain.Module, error) {
	key := moduleKey(id)
	var cached domain.Module
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Module")
	}
	s.cacheSet(ctx, key, module)
	return module, nil
}

func (s *CatalogService) ListModules(ctx context.Context, filter repository.ModuleFilter) ([]domain.Module, error) {
	return s.modules.List(ctx, filter)
}

func (s *CatalogService) UpdateModule(ctx context.Context, id int64, in ModuleUpdate) (*domain.Module, error) {
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Module")
	}
	if in.Name != nil {
		module.Name = *in.Name
	}
	if in.Article != nil {
		module.Article = *in.Article
	}
	if in.Price != nil {
		module.Price = *in.Price
	}
	if in.DiscountedPrice != nil {
		module.DiscountedPrice = in.DiscountedPrice
	}
	if in.TechnicalDetails != nil {
		module.TechnicalDetails = in.TechnicalDetails
	}
	if in.AssemblyInstruction != nil {
		module.AssemblyInstruction = in.AssemblyInstruction
	}
	if len(in.Photos) > 0 {
		module.Photos = in.Photos
	}
	if in.ColorIDs != nil {
		if module.Colors, err = s.resolveColors(ctx, in.ColorIDs); err != nil {
			return nil, err
		}
	}
	if err := validateArticle(module.Name, module.Article, module.Price); err != nil {
		return nil, err
	}

	if err := s.modules.Update(ctx, module); err != nil {
		return nil, notFound(err, "Module")
	}
	s.cacheDelete(ctx, moduleKey(id))
	return module, nil
}

func (s *CatalogService) DeleteModule(ctx context.Context, id int64) error {
	if err := s.modules.Delete(ctx, id); err != nil {
		return notFound(err, "Module")
	}
	s.cacheDelete(ctx, moduleKey(id))
	return nil
}

func (s *CatalogService) CreateFurniture(ctx context.Context, in FurnitureInput) (*domain.Furniture, error) {
	if strings.TrimSpace(in.FurnitureType) == "" {
		return nil, apperrors.NewValidationError("furniture_type required", nil)
	}
	if err := validateArticle(in.Name, in.Article, in.Price); err != nil {
		return nil, err
	}
	colors, err := s.resolveColors(ctx, in.ColorIDs)
	if err != nil {
		return nil, err
	}
	item := &domain.Furniture{
		FurnitureType:            in.FurnitureType,
		Name:                     in.Name,
		Article:                  in.Article,
		Price:                    in.Price,
		DiscountedPrice:          in.DiscountedPrice,
		TechnicalCharacteristics: in.TechnicalCharacteristics,
		Model:                    in.Model,
		Photos:                   in.Photos,
		Colors:                   colors,
	}
	if err := s.furniture.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetFurniture reads through the cache.
func (s *CatalogService) GetFurniture(ctx context.Context, id int64) (*domain.Furniture, error) {
	key := furnitureKey(id)
	var cached domain.Furniture
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	item, err := s.furniture.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Furniture")
	}
	s.cacheSet(ctx, key, item)
	return item, nil
}

func (s *CatalogService) ListFurniture(ctx context.Context, filter repository.FurnitureFilter) ([]domain.Furniture, error) {
	return s.furniture.List(ctx, filter)
}

func (s *CatalogService) UpdateFurniture(ctx context.Context, id int64, in FurnitureUpdate) (*domain.Furniture, error) {
	item, err := s.furniture.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Furniture")
	}
	if in.FurnitureType != nil {
		item.FurnitureType = *in.FurnitureType
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Article != nil {
		item.Article = *in.Article
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.DiscountedPrice != nil {
		item.DiscountedPrice = in.DiscountedPrice
	}
	if in.TechnicalCharacteristics != nil {
		item.TechnicalCharacteristics = in.TechnicalCharacteristics
	}
	if in.Model != nil {
		item.Model = in.Model
	}
	if len(in.Photos) > 0 {
		item.Photos = in.Photos
	}
	if in.ColorIDs != nil {
		if item.Colors, err = s.resolveColors(ctx, in.ColorIDs); err != nil {
			return nil, err
		}
	}
	if err := validateArticle(item.Name, item.Article, item.Price); err != nil {
		return nil, err
	}

	if err := s.furniture.Update(ctx, item); err != nil {
		return nil, notFound(err, "Furniture")
	}
	s.cacheDelete(ctx, furnitureKey(id))
	return item, nil
}

func (s *CatalogService) DeleteFurniture(ctx context.Context, id int64) error {
	if err := s.furniture.Delete(ctx, id); err != nil {
		return notFound(err, "Furniture")
	}
	s.cacheDelete(ctx, furnitureKey(id))
	return nil
}

// resolveColors loads every referenced color or fails naming the first missing id.
func (s *CatalogService) resolveColors(ctx context.Context, ids []int64) ([]domain.Color, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	colors, err := s.colors.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(colors))
	for _, c := range colors {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperrors.NewNotFound("Color", map[string]any{"id": id})
		}
	}
	return colors, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) cacheDelete(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func validateArticle(name, article string, price float64) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(article) == "" {
		return apperrors.NewValidationError("name and article required", nil)
	}
	if price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	return nil
}

func moduleKey(id int64) string    { return "module:" + strconv.FormatInt(id, 10) }
func furnitureKey(id int64) string { return "furniture:" + strconv.FormatInt(id, 10) }

// uniqueIDs drops duplicates while keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

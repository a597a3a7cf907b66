package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejerf/abtime"
	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/api/http/handlers"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/config"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/observability"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/service"
	"github.com/spec-kit/furniture-store/internal/uploads"
)

// ServerDeps carries everything NewServer wires together.
type ServerDeps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Repos      repository.Set
	Cache      cache.Store
	Uploads    *uploads.Storage
	Dispatcher events.Dispatcher
	Hasher     *auth.Hasher
	// Clock drives token issuance and expiry; nil means wall time.
	Clock  abtime.AbstractTime
	Probes map[string]handlers.Pinger
}

// NewServer builds the services, handlers and routes into a ready fiber app.
func NewServer(deps ServerDeps) *fiber.App {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewHasher(cfg.Auth.BcryptCost)
	}
	repos := deps.Repos

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), deps.Clock)
	gate := auth.NewGate(auth.NewResolver(tokens), repos.Users,
		auth.GateOptions{AllowOrphanedTokens: cfg.Auth.AllowOrphanedTokens}, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      repos.Users,
		Hasher:     hasher,
		Tokens:     tokens,
		Admin:      auth.NewAdminGuard(cfg.Auth.AdminSecret),
		Dispatcher: deps.Dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(repos.Users, hasher, deps.Dispatcher, logger)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		Colors:    repos.Colors,
		Modules:   repos.Modules,
		Furniture: repos.Furniture,
		Cache:     deps.Cache,
		Logger:    logger,
	})
	cartService := service.NewCartService(repos.Carts, repos.Users, repos.Modules)
	orderService := service.NewOrderService(repos.Orders, repos.Users, repos.Modules, deps.Dispatcher, logger)
	contentService := service.NewContentService(repos.News)
	supportService := service.NewSupportService(repos.Support, repos.Users, deps.Dispatcher, logger)
	locatorService := service.NewStoreLocatorService(repos.Shops, repos.WhereToBuy)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Uploads.MaxBodySize,
		ErrorHandler: ErrorHandler(logger),
	})
	RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout())
	ServeUploads(app, deps.Uploads.URLPrefix(), deps.Uploads.Dir())

	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Metrics, deps.Probes, logger),
		Auth:         handlers.NewAuthHandler(authService),
		Users:        handlers.NewUsersHandler(userService),
		Orders:       handlers.NewOrdersHandler(orderService),
		Cart:         handlers.NewCartHandler(cartService),
		Catalog:      handlers.NewCatalogHandler(catalogService, deps.Uploads),
		News:         handlers.NewNewsHandler(contentService, deps.Uploads),
		Support:      handlers.NewSupportHandler(supportService),
		StoreLocator: handlers.NewStoreLocatorHandler(locatorService),
		Gate:         gate,
	})
	return app
}

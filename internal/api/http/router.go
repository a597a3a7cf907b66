package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/http/handlers"
	"github.com/spec-kit/furniture-store/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Orders       *handlers.OrdersHandler
	Cart         *handlers.CartHandler
	Catalog      *handlers.CatalogHandler
	News         *handlers.NewsHandler
	Support      *handlers.SupportHandler
	StoreLocator *handlers.StoreLocatorHandler
	Gate         *auth.Gate
}

// RegisterRoutes wires HTTP routes. Every gated route re-reads the caller's level.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	customer := cfg.Gate.Require(auth.LevelCustomer)
	moderator := cfg.Gate.Require(auth.LevelModerator)
	admin := cfg.Gate.Require(auth.LevelAdmin)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/elevate", cfg.Auth.Elevate)

	users := app.Group("/users")
	users.Post("/", admin, cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", admin, cfg.Users.Update)
	users.Delete("/:id", admin, cfg.Users.Delete)
	users.Get("/:user_id/cart", cfg.Cart.Get)
	users.Put("/:user_id/cart", customer, cfg.Cart.Update)
	users.Post("/:user_id/cart/modules/:module_id", customer, cfg.Cart.AddModule)
	users.Delete("/:user_id/cart/modules/:module_id", customer, cfg.Cart.RemoveModule)

	orders := app.Group("/orders")
	orders.Post("/", customer, cfg.Orders.Create)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Put("/:id", moderator, cfg.Orders.Update)
	orders.Delete("/:id", admin, cfg.Orders.Delete)

	colors := app.Group("/colors")
	colors.Post("/", admin, cfg.Catalog.CreateColor)
	colors.Get("/", cfg.Catalog.ListColors)
	colors.Get("/:id", cfg.Catalog.GetColor)
	colors.Put("/:id", admin, cfg.Catalog.UpdateColor)
	colors.Delete("/:id", admin, cfg.Catalog.DeleteColor)

	modules := app.Group("/modules")
	modules.Post("/", admin, cfg.Catalog.CreateModule)
	modules.Get("/", cfg.Catalog.ListModules)
	modules.Get("/:id", cfg.Catalog.GetModule)
	modules.Put("/:id", admin, cfg.Catalog.UpdateModule)
	modules.Delete("/:id", admin, cfg.Catalog.DeleteModule)

	furniture := app.Group("/furniture")
	furniture.Post("/", admin, cfg.Catalog.CreateFurniture)
	furniture.Get("/", cfg.Catalog.ListFurniture)
	furniture.Get("/:id", cfg.Catalog.GetFurniture)
	furniture.Put("/:id", admin, cfg.Catalog.UpdateFurniture)
	furniture.Delete("/:id", admin, cfg.Catalog.DeleteFurniture)

	news := app.Group("/news")
	news.Post("/", admin, cfg.News.Create)
	news.Get("/", cfg.News.List)
	news.Get("/:id", cfg.News.Get)
	news.Put("/:id", admin, cfg.News.Update)
	news.Delete("/:id", admin, cfg.News.Delete)

	support := app.Group("/support/requests")
	support.Post("/", cfg.Support.Create)
	support.Get("/", cfg.Support.List)
	support.Get("/:id", cfg.Support.Get)
	support.Put("/:id", moderator, cfg.Support.Update)
	support.Delete("/:id", admin, cfg.Support.Delete)

	shops := app.Group("/shops")
	shops.Post("/", admin, cfg.StoreLocator.CreateShop)
	shops.Get("/", cfg.StoreLocator.ListShops)
	shops.Get("/:id", cfg.StoreLocator.GetShop)
	shops.Put("/:id", admin, cfg.StoreLocator.UpdateShop)
	shops.Delete("/:id", admin, cfg.StoreLocator.DeleteShop)

	points := app.Group("/where-to-buy")
	points.Post("/", admin, cfg.StoreLocator.CreateWhereToBuy)
	points.Get("/", cfg.StoreLocator.ListWhereToBuy)
	points.Get("/:id", cfg.StoreLocator.GetWhereToBuy)
	points.Put("/:id", admin, cfg.StoreLocator.UpdateWhereToBuy)
	points.Delete("/:id", admin, cfg.StoreLocator.DeleteWhereToBuy)
}

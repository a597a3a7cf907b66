package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Set groups the repositories the services are built from.
type Set struct {
	Users      UserRepository
	Colors     ColorRepository
	Modules    ModuleRepository
	Furniture  FurnitureRepository
	Carts      CartRepository
	Orders     OrderRepository
	News       NewsRepository
	Support    SupportRepository
	Shops      ShopRepository
	WhereToBuy WhereToBuyRepository
}

// NewPostgresSet builds every repository over one pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Users:      NewUserRepository(pool),
		Colors:     NewColorRepository(pool),
		Modules:    NewModuleRepository(pool),
		Furniture:  NewFurnitureRepository(pool),
		Carts:      NewCartRepository(pool),
		Orders:     NewOrderRepository(pool),
		News:       NewNewsRepository(pool),
		Support:    NewSupportRepository(pool),
		Shops:      NewShopRepository(pool),
		WhereToBuy: NewWhereToBuyRepository(pool),
	}
}

// Package repository defines the storage contracts behind the dual-mode
// data layer. Each interface has a local (embedded sqlite) and a remote
// (backend REST) implementation; a Set bundles one family, chosen once per
// session.
package repository

import (
	"context"

	"aimaster-store/internal/model"
)

type CatalogRepository interface {
	// List returns the catalog newest-first.
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Insert(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type BannerRepository interface {
	ListActive(ctx context.Context) ([]model.Banner, error)
	// List returns every banner newest-first, for the back office.
	List(ctx context.Context) ([]model.Banner, error)
	Insert(ctx context.Context, banner *model.Banner) (*model.Banner, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Insert(ctx context.Context, order *model.Order) (*model.Order, error)
	// ListPaidByUser returns a user's paid orders with the product joined in.
	ListPaidByUser(ctx context.Context, userID string) ([]model.Order, error)
	// List returns all orders newest-first with products joined in.
	List(ctx context.Context) ([]model.Order, error)
	FindByPaymentRef(ctx context.Context, ref string) (*model.Order, error)
}

type ProfileRepository interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	// Upsert creates the profile if absent and treats a duplicate-key
	// outcome as success.
	Upsert(ctx context.Context, profile *model.Profile) error
}

// Set is one implementation family. A session holds exactly one Set for its
// whole lifetime.
type Set struct {
	Catalog  CatalogRepository
	Banners  BannerRepository
	Orders   OrderRepository
	Profiles ProfileRepository
}

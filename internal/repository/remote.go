package repository

import (
	"context"
	"fmt"
	"net/url"

	"aimaster-store/internal/client"
	"aimaster-store/internal/model"
)

// NewRemoteSet builds the backend-backed implementation family. The backend
// generates ids and timestamps; rows come back via return=representation.
func NewRemoteSet(backend client.Backend) *Set {
	return &Set{
		Catalog:  &remoteCatalogRepo{backend: backend},
		Banners:  &remoteBannerRepo{backend: backend},
		Orders:   &remoteOrderRepo{backend: backend},
		Profiles: &remoteProfileRepo{backend: backend},
	}
}

func eq(column, value string) string {
	return column + "=eq." + url.QueryEscape(value)
}

// first unwraps the single-row convention: queries carry limit=1 and decode
// into a slice.
func first[T any](rows []T, entity string) (*T, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, entity)
	}
	return &rows[0], nil
}

type remoteCatalogRepo struct {
	backend client.Backend
}

func (r *remoteCatalogRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.backend.Select(ctx, "products", "select=*&order=created_at.desc", &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *remoteCatalogRepo) Get(ctx context.Context, id string) (*model.Product, error) {
	var products []model.Product
	err := r.backend.Select(ctx, "products", "select=*&"+eq("id", id)+"&limit=1", &products)
	if err != nil {
		return nil, err
	}
	return first(products, "product")
}

func (r *remoteCatalogRepo) Insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	body := map[string]interface{}{
		"title":       product.Title,
		"description": product.Description,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"file_url":    product.FileURL,
	}
	var created []model.Product
	if err := r.backend.Insert(ctx, "products", body, &created); err != nil {
		return nil, err
	}
	return first(created, "product")
}

func (r *remoteCatalogRepo) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	changes := patch.Changes()
	if len(changes) == 0 {
		return r.Get(ctx, id)
	}
	var updated []model.Product
	if err := r.backend.Update(ctx, "products", eq("id", id), changes, &updated); err != nil {
		return nil, err
	}
	return first(updated, "product")
}

func (r *remoteCatalogRepo) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, "products", eq("id", id))
}

type remoteBannerRepo struct {
	backend client.Backend
}

func (r *remoteBannerRepo) ListActive(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.backend.Select(ctx, "banners", "select=*&active=eq.true", &banners)
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *remoteBannerRepo) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.backend.Select(ctx, "banners", "select=*&order=created_at.desc", &banners)
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *remoteBannerRepo) Insert(ctx context.Context, banner *model.Banner) (*model.Banner, error) {
	body := map[string]interface{}{
		"image_url": banner.ImageURL,
		"title":     banner.Title,
		"active":    banner.Active,
	}
	var created []model.Banner
	if err := r.backend.Insert(ctx, "banners", body, &created); err != nil {
		return nil, err
	}
	return first(created, "banner")
}

func (r *remoteBannerRepo) SetActive(ctx context.Context, id string, active bool) error {
	var updated []model.Banner
	return r.backend.Update(ctx, "banners", eq("id", id),
		map[string]interface{}{"active": active}, &updated)
}

func (r *remoteBannerRepo) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, "banners", eq("id", id))
}

type remoteOrderRepo struct {
	backend client.Backend
}

func (r *remoteOrderRepo) Insert(ctx context.Context, order *model.Order) (*model.Order, error) {
	body := map[string]interface{}{
		"user_id":           order.UserID,
		"product_id":        order.ProductID,
		"amount":            order.Amount,
		"status":            order.Status,
		"payment_reference": order.PaymentRef,
	}
	var created []model.Order
	if err := r.backend.Insert(ctx, "orders", body, &created); err != nil {
		return nil, err
	}
	return first(created, "order")
}

func (r *remoteOrderRepo) ListPaidByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	query := "select=*,product:products(*)&" + eq("user_id", userID) + "&status=eq.paid"
	if err := r.backend.Select(ctx, "orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *remoteOrderRepo) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	query := "select=*,product:products(*)&order=created_at.desc"
	if err := r.backend.Select(ctx, "orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *remoteOrderRepo) FindByPaymentRef(ctx context.Context, ref string) (*model.Order, error) {
	var orders []model.Order
	query := "select=*&" + eq("payment_reference", ref) + "&limit=1"
	if err := r.backend.Select(ctx, "orders", query, &orders); err != nil {
		return nil, err
	}
	return first(orders, "order")
}

type remoteProfileRepo struct {
	backend client.Backend
}

func (r *remoteProfileRepo) Get(ctx context.Context, id string) (*model.Profile, error) {
	var profiles []model.Profile
	err := r.backend.Select(ctx, "profiles", "select=*&"+eq("id", id)+"&limit=1", &profiles)
	if err != nil {
		return nil, err
	}
	return first(profiles, "profile")
}

func (r *remoteProfileRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	return r.backend.UpsertIgnoreDuplicates(ctx, "profiles", profile)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aimaster-store/internal/model"
)

// NewLocalSet builds the demo-store implementation family over the
// in-memory database.
func NewLocalSet(db *gorm.DB) *Set {
	return &Set{
		Catalog:  &localCatalogRepo{db: db},
		Banners:  &localBannerRepo{db: db},
		Orders:   &localOrderRepo{db: db},
		Profiles: &localProfileRepo{db: db},
	}
}

func mapGormErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", model.ErrNotFound, entity)
	}
	return err
}

type localCatalogRepo struct {
	db *gorm.DB
}

func (r *localCatalogRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *localCatalogRepo) Get(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, mapGormErr(err, "product")
	}
	return &product, nil
}

func (r *localCatalogRepo) Insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *localCatalogRepo) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	changes := patch.Changes()
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: product", model.ErrNotFound)
		}
	}
	return r.Get(ctx, id)
}

func (r *localCatalogRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Product{}).Error
}

type localBannerRepo struct {
	db *gorm.DB
}

func (r *localBannerRepo) ListActive(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *localBannerRepo) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *localBannerRepo) Insert(ctx context.Context, banner *model.Banner) (*model.Banner, error) {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *localBannerRepo) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Banner{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: banner", model.ErrNotFound)
	}
	return nil
}

func (r *localBannerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Banner{}).Error
}

type localOrderRepo struct {
	db *gorm.DB
}

func (r *localOrderRepo) Insert(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("Product").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *localOrderRepo) ListPaidByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Where("status = ?", model.OrderPaid).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *localOrderRepo) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *localOrderRepo) FindByPaymentRef(ctx context.Context, ref string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payment_ref = ?", ref).
		First(&order).Error
	if err != nil {
		return nil, mapGormErr(err, "order")
	}
	return &order, nil
}

type localProfileRepo struct {
	db *gorm.DB
}

func (r *localProfileRepo) Get(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, mapGormErr(err, "profile")
	}
	return &profile, nil
}

func (r *localProfileRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(profile).Error
}

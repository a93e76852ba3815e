package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/model"
	"aimaster-store/internal/repository"
	"aimaster-store/internal/session"
)

// StoreService is the storefront/back-office facade. Propagation policy:
// list reads absorb backend failures and come back empty so the storefront
// always renders; admin writes surface errors verbatim; order recording is
// a hard failure path because a paid-but-unrecorded purchase is worse than
// a visible error.
type StoreService interface {
	ActiveBanners(ctx context.Context, sess *session.Session) []model.Banner
	Products(ctx context.Context, sess *session.Session) []model.Product
	ProductByID(ctx context.Context, sess *session.Session, id string) (*model.Product, error)
	MyPurchases(ctx context.Context, sess *session.Session) []model.Order
	RecordOrder(ctx context.Context, sess *session.Session, req *dto.RecordOrderRequest) (*model.Order, error)

	AllBanners(ctx context.Context, sess *session.Session) []model.Banner
	AllOrders(ctx context.Context, sess *session.Session) []model.Order
	CreateProduct(ctx context.Context, sess *session.Session, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, sess *session.Session, id string, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, sess *session.Session, id string) error
	CreateBanner(ctx context.Context, sess *session.Session, req *dto.BannerRequest) (*model.Banner, error)
	SetBannerActive(ctx context.Context, sess *session.Session, id string, active bool) error
	DeleteBanner(ctx context.Context, sess *session.Session, id string) error
}

type storeServiceImpl struct {
	// defaultRepos serves anonymous storefront reads: remote when the
	// backend is configured, local otherwise.
	defaultRepos *repository.Set
	log          zerolog.Logger
}

func NewStoreService(defaultRepos *repository.Set, log zerolog.Logger) StoreService {
	return &storeServiceImpl{
		defaultRepos: defaultRepos,
		log:          log,
	}
}

// repos picks the session's repository family, falling back to the default
// family for anonymous requests. A signed-in session never switches
// families mid-flight.
func (s *storeServiceImpl) repos(sess *session.Session) *repository.Set {
	if sess != nil && sess.Repos != nil {
		return sess.Repos
	}
	return s.defaultRepos
}

func (s *storeServiceImpl) ActiveBanners(ctx context.Context, sess *session.Session) []model.Banner {
	banners, err := s.repos(sess).Banners.ListActive(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("banner read degraded to empty result")
		return []model.Banner{}
	}
	if banners == nil {
		banners = []model.Banner{}
	}
	return banners
}

func (s *storeServiceImpl) Products(ctx context.Context, sess *session.Session) []model.Product {
	products, err := s.repos(sess).Catalog.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog read degraded to empty result")
		return []model.Product{}
	}
	if products == nil {
		products = []model.Product{}
	}
	return products
}

func (s *storeServiceImpl) ProductByID(ctx context.Context, sess *session.Session, id string) (*model.Product, error) {
	product, err := s.repos(sess).Catalog.Get(ctx, id)
	if err != nil {
		// a broken backend reads the same as a missing product
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}
	return product, nil
}

func (s *storeServiceImpl) MyPurchases(ctx context.Context, sess *session.Session) []model.Order {
	orders, err := s.repos(sess).Orders.ListPaidByUser(ctx, sess.Profile.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.Profile.ID).
			Msg("purchase read degraded to empty result")
		return []model.Order{}
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders
}

func (s *storeServiceImpl) RecordOrder(ctx context.Context, sess *session.Session, req *dto.RecordOrderRequest) (*model.Order, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id is required", model.ErrValidation)
	}

	product, err := sess.Repos.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product for order: %w", err)
	}
	if req.Amount != product.Price {
		return nil, fmt.Errorf("%w: amount %d does not match product price %d",
			model.ErrValidation, req.Amount, product.Price)
	}
	if req.PaymentRef != "" {
		if _, err := sess.Repos.Orders.FindByPaymentRef(ctx, req.PaymentRef); err == nil {
			return nil, fmt.Errorf("%w: payment %s already recorded", model.ErrValidation, req.PaymentRef)
		}
	}

	order := &model.Order{
		UserID:     sess.Profile.ID,
		ProductID:  product.ID,
		Amount:     product.Price,
		Status:     model.OrderPaid,
		PaymentRef: req.PaymentRef,
	}
	created, err := sess.Repos.Orders.Insert(ctx, order)
	if err != nil {
		// no fallback here: surfacing the failure beats fabricating a
		// purchase record the user can never download against
		s.log.Error().Err(err).
			Str("user_id", sess.Profile.ID).
			Str("product_id", product.ID).
			Msg("order recording failed")
		return nil, fmt.Errorf("record order: %w", err)
	}

	s.log.Info().
		Str("order_id", created.ID).
		Str("user_id", created.UserID).
		Int64("amount", created.Amount).
		Msg("order recorded")
	return created, nil
}

func (s *storeServiceImpl) AllBanners(ctx context.Context, sess *session.Session) []model.Banner {
	banners, err := s.repos(sess).Banners.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("banner admin read degraded to empty result")
		return []model.Banner{}
	}
	if banners == nil {
		banners = []model.Banner{}
	}
	return banners
}

func (s *storeServiceImpl) AllOrders(ctx context.Context, sess *session.Session) []model.Order {
	orders, err := s.repos(sess).Orders.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("order admin read degraded to empty result")
		return []model.Order{}
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders
}

func (s *storeServiceImpl) CreateProduct(ctx context.Context, sess *session.Session, req *dto.ProductRequest) (*model.Product, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", model.ErrValidation)
	}
	return sess.Repos.Catalog.Insert(ctx, &model.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		FileURL:     req.FileURL,
	})
}

func (s *storeServiceImpl) UpdateProduct(ctx context.Context, sess *session.Session, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", model.ErrValidation)
	}
	return sess.Repos.Catalog.Update(ctx, id, patch)
}

func (s *storeServiceImpl) DeleteProduct(ctx context.Context, sess *session.Session, id string) error {
	return sess.Repos.Catalog.Delete(ctx, id)
}

func (s *storeServiceImpl) CreateBanner(ctx context.Context, sess *session.Session, req *dto.BannerRequest) (*model.Banner, error) {
	if req.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", model.ErrValidation)
	}
	return sess.Repos.Banners.Insert(ctx, &model.Banner{
		ImageURL: req.ImageURL,
		Title:    req.Title,
		Active:   req.Active,
	})
}

func (s *storeServiceImpl) SetBannerActive(ctx context.Context, sess *session.Session, id string, active bool) error {
	return sess.Repos.Banners.SetActive(ctx, id, active)
}

func (s *storeServiceImpl) DeleteBanner(ctx context.Context, sess *session.Session, id string) error {
	return sess.Repos.Banners.Delete(ctx, id)
}

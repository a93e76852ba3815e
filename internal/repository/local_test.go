package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimaster-store/internal/client"
	"aimaster-store/internal/model"
	"aimaster-store/internal/repository"
)

func newLocalSet(t *testing.T) *repository.Set {
	t.Helper()
	db, err := client.InitDemoDB()
	require.NoError(t, err)
	require.NoError(t, repository.SeedDemoData(db))
	return repository.NewLocalSet(db)
}

func TestLocalCatalogSeededNewestFirst(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	products, err := repos.Catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	product, err := repos.Catalog.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Ultimate AI Prompt Pack", product.Title)
	assert.Equal(t, int64(99900), product.Price)
}

func TestLocalCatalogInsertGeneratesID(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	created, err := repos.Catalog.Insert(ctx, &model.Product{
		Title: "New Pack",
		Price: 1000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repos.Catalog.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Pack", got.Title)
}

func TestLocalCatalogUpdatePartial(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	title := "Renamed"
	updated, err := repos.Catalog.Update(ctx, "1", model.ProductPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	// untouched fields survive
	assert.Equal(t, int64(99900), updated.Price)

	_, err = repos.Catalog.Update(ctx, "does-not-exist", model.ProductPatch{Title: &title})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLocalCatalogGetMissing(t *testing.T) {
	repos := newLocalSet(t)

	_, err := repos.Catalog.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLocalBannerActiveFilter(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	active, err := repos.Banners.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, repos.Banners.SetActive(ctx, "1", false))

	active, err = repos.Banners.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repos.Banners.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = repos.Banners.SetActive(ctx, "missing", true)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLocalOrderPaymentRefLookup(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	created, err := repos.Orders.Insert(ctx, &model.Order{
		UserID:     "user-123",
		ProductID:  "1",
		Amount:     99900,
		Status:     model.OrderPaid,
		PaymentRef: "pay_abc",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repos.Orders.FindByPaymentRef(ctx, "pay_abc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repos.Orders.FindByPaymentRef(ctx, "pay_other")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLocalPurchasesJoinProduct(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	_, err := repos.Orders.Insert(ctx, &model.Order{
		UserID:    "user-123",
		ProductID: "2",
		Amount:    249900,
		Status:    model.OrderPaid,
	})
	require.NoError(t, err)
	// pending orders stay out of the purchase list
	_, err = repos.Orders.Insert(ctx, &model.Order{
		UserID:    "user-123",
		ProductID: "1",
		Amount:    99900,
		Status:    model.OrderPending,
	})
	require.NoError(t, err)

	orders, err := repos.Orders.ListPaidByUser(ctx, "user-123")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Product)
	assert.Equal(t, "Stable Diffusion Model v2.5", orders[0].Product.Title)
}

func TestLocalProfileUpsertIdempotent(t *testing.T) {
	repos := newLocalSet(t)
	ctx := context.Background()

	profile := &model.Profile{ID: "u1", Email: "u1@example.com"}
	require.NoError(t, repos.Profiles.Upsert(ctx, profile))
	// second upsert with the same identity: no duplicate, no error
	require.NoError(t, repos.Profiles.Upsert(ctx, profile))

	got, err := repos.Profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", got.Email)

	_, err = repos.Profiles.Get(ctx, "u2")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

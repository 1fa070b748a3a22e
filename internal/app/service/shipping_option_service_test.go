package service

import (
	"context"
	"testing"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShippingOptionService(t *testing.T) ShippingOptionService {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return NewShippingOptionService(database, repository.NewShippingOptionRepository(database))
}

func TestShippingOptionServiceCreateWithPrices(t *testing.T) {
	svc := setupShippingOptionService(t)

	option, err := svc.Create(context.Background(), CreateShippingOptionInput{
		Name:        "Standard",
		CountryCode: "us",
		Prices: []ShippingPriceInput{
			{Amount: 500, Currency: "usd"},
			{Amount: 450, Currency: "eur"},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, option.ID)
	assert.Len(t, option.Prices, 2)

	found, err := svc.GetByID(context.Background(), option.ID)
	require.NoError(t, err)
	assert.Len(t, found.Prices, 2)
}

func TestShippingOptionServiceUpdateReplacesPrices(t *testing.T) {
	svc := setupShippingOptionService(t)
	ctx := context.Background()

	option, err := svc.Create(ctx, CreateShippingOptionInput{
		Name: "Standard",
		Prices: []ShippingPriceInput{
			{Amount: 500, Currency: "usd"},
			{Amount: 450, Currency: "eur"},
		},
	})
	require.NoError(t, err)

	err = svc.Update(ctx, option.ID, UpdateShippingOptionInput{
		Prices: []ShippingPriceInput{{Amount: 600, Currency: "usd"}},
	})
	require.NoError(t, err)

	updated, err := svc.GetByID(ctx, option.ID)
	require.NoError(t, err)
	require.Len(t, updated.Prices, 1)
	assert.Equal(t, int64(600), updated.Prices[0].Amount)
}

func TestShippingOptionServiceUpdateScalarsKeepsPrices(t *testing.T) {
	svc := setupShippingOptionService(t)
	ctx := context.Background()

	option, err := svc.Create(ctx, CreateShippingOptionInput{
		Name:   "Standard",
		Prices: []ShippingPriceInput{{Amount: 500, Currency: "usd"}},
	})
	require.NoError(t, err)

	newName := "Express"
	require.NoError(t, svc.Update(ctx, option.ID, UpdateShippingOptionInput{Name: &newName}))

	updated, err := svc.GetByID(ctx, option.ID)
	require.NoError(t, err)
	assert.Equal(t, "Express", updated.Name)
	assert.Len(t, updated.Prices, 1)
}

func TestShippingOptionServiceNotFound(t *testing.T) {
	svc := setupShippingOptionService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = svc.Update(ctx, 42, UpdateShippingOptionInput{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = svc.Delete(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestShippingOptionServiceDeleteHidesFromList(t *testing.T) {
	svc := setupShippingOptionService(t)
	ctx := context.Background()

	option, err := svc.Create(ctx, CreateShippingOptionInput{Name: "Standard"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, option.ID))

	options, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, options)
}

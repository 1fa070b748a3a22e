package service

import (
	"context"
	"testing"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingEvents captures event notifications for assertions.
type recordingEvents struct {
	created []uint
	updated []uint
	deleted []uint
}

func (r *recordingEvents) ProductCreated(id uint) { r.created = append(r.created, id) }
func (r *recordingEvents) ProductUpdated(id uint) { r.updated = append(r.updated, id) }
func (r *recordingEvents) ProductDeleted(id uint) { r.deleted = append(r.deleted, id) }

type productServiceFixture struct {
	db      *gorm.DB
	service ProductService
	events  *recordingEvents
}

func setupProductService(t *testing.T) *productServiceFixture {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	events := &recordingEvents{}
	priceRepo := repository.NewPriceRepository(database)
	svc := NewProductService(
		database,
		repository.NewProductRepository(database),
		repository.NewOptionRepository(database),
		repository.NewVariantRepository(database),
		repository.NewImageRepository(database),
		repository.NewTagRepository(database),
		repository.NewMaterialRepository(database),
		repository.NewCategoryRepository(database),
		repository.NewShippingOptionRepository(database),
		NewPricingService(database, priceRepo),
		events,
	)
	return &productServiceFixture{db: database, service: svc, events: events}
}

func (f *productServiceFixture) seedTag(t *testing.T, value string) uint {
	tag := model.Tag{Value: value}
	require.NoError(t, f.db.Create(&tag).Error)
	return tag.ID
}

func (f *productServiceFixture) seedMaterial(t *testing.T, value string) uint {
	material := model.Material{Value: value}
	require.NoError(t, f.db.Create(&material).Error)
	return material.ID
}

func (f *productServiceFixture) seedCategory(t *testing.T, name, slug string) uint {
	category := model.Category{Name: name, Slug: slug}
	require.NoError(t, f.db.Create(&category).Error)
	return category.ID
}

func (f *productServiceFixture) seedShippingOption(t *testing.T, name string) uint {
	option := model.ShippingOption{Name: name, CountryCode: "us"}
	require.NoError(t, f.db.Create(&option).Error)
	return option.ID
}

func (f *productServiceFixture) count(t *testing.T, value interface{}) int64 {
	var count int64
	require.NoError(t, f.db.Model(value).Count(&count).Error)
	return count
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateProductFullAggregate(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	tagID := f.seedTag(t, "summer")
	materialID := f.seedMaterial(t, "cotton")
	categoryID := f.seedCategory(t, "Shirts", "shirts")
	shippingID := f.seedShippingOption(t, "standard")

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:       "Heavyweight T-Shirt",
		Description: "Boxy fit, heavyweight cotton.",
		Status:      model.StatusPublished,
		Options: []OptionInput{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Images:            []string{"https://img.test/front.png", "https://img.test/back.png"},
		TagIDs:            []uint{tagID},
		MaterialIDs:       []uint{materialID},
		CategoryIDs:       []uint{categoryID},
		ShippingOptionIDs: []uint{shippingID},
		Variants: []VariantInput{
			{
				Title:    "Red / S",
				SKU:      "TS-RED-S",
				Quantity: 10,
				Options:  map[string]string{"Color": "Red", "Size": "S"},
				Prices: []PriceInput{
					{Amount: 2500, Currency: "usd"},
					{Amount: 2100, Currency: "usd", Type: model.PriceSale},
				},
			},
			{
				Title:       "Blue / M",
				SKU:         "TS-BLUE-M",
				Quantity:    4,
				ManageStock: boolPtr(false),
				Options:     map[string]string{"Color": "Blue", "Size": "M"},
				Prices:      []PriceInput{{Amount: 2500, Currency: "usd"}},
			},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Heavyweight T-Shirt", product.Title)
	assert.Equal(t, "heavyweight-t-shirt", product.Slug)
	assert.Equal(t, model.StatusPublished, product.Status)

	require.Len(t, product.Options, 2)
	assert.Len(t, product.Options[0].Values, 2)

	require.Len(t, product.Variants, 2)
	redSmall := product.Variants[0]
	assert.Equal(t, "TS-RED-S", redSmall.SKU)
	assert.True(t, redSmall.ManageStock)
	assert.Len(t, redSmall.OptionValues, 2)
	assert.Len(t, redSmall.Prices, 2)
	assert.False(t, product.Variants[1].ManageStock)

	require.Len(t, product.Images, 2)
	assert.Equal(t, 0, product.Images[0].Rank)
	assert.Equal(t, "https://img.test/front.png", product.Images[0].ImageURL)

	require.Len(t, product.Tags, 1)
	assert.Equal(t, "summer", product.Tags[0].Value)
	require.Len(t, product.Materials, 1)
	require.Len(t, product.Categories, 1)
	require.Len(t, product.ShippingOptions, 1)
}

func TestCreateProductRollsBackOnBadCategory(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, CreateProductInput{
		Title:       "Doomed",
		Options:     []OptionInput{{Name: "Color", Values: []string{"Red"}}},
		CategoryIDs: []uint{9999},
		Variants: []VariantInput{
			{Title: "Red", Options: map[string]string{"Color": "Red"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.CodeOf(err))

	// Nothing of the aggregate survives the rollback.
	assert.Equal(t, int64(0), f.count(t, &model.Product{}))
	assert.Equal(t, int64(0), f.count(t, &model.ProductOption{}))
	assert.Equal(t, int64(0), f.count(t, &model.ProductOptionValue{}))
	assert.Equal(t, int64(0), f.count(t, &model.ProductVariant{}))
}

func TestCreateProductSlugUniqueness(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, CreateProductInput{Title: "Shirt", Slug: "shirt"})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, CreateProductInput{Title: "Other Shirt", Slug: "shirt"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ProductSlugExists, apperrors.CodeOf(err))

	// Soft-deleting the holder frees the slug for reuse.
	require.NoError(t, f.service.Delete(ctx, first))

	second, err := f.service.Create(ctx, CreateProductInput{Title: "Other Shirt", Slug: "shirt"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCreateProductInvalidSlugRejected(t *testing.T) {
	f := setupProductService(t)

	_, err := f.service.Create(context.Background(), CreateProductInput{
		Title: "Shirt",
		Slug:  "Not A Slug!",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ValidationInvalidSlug, apperrors.CodeOf(err))
}

func TestCreateProductVariantsRequireOptions(t *testing.T) {
	f := setupProductService(t)

	_, err := f.service.Create(context.Background(), CreateProductInput{
		Title:    "Shirt",
		Variants: []VariantInput{{Title: "One"}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ProductVariantsNeedOptions, apperrors.CodeOf(err))
}

func TestCreateProductUnknownOptionValue(t *testing.T) {
	f := setupProductService(t)

	_, err := f.service.Create(context.Background(), CreateProductInput{
		Title:   "Shirt",
		Options: []OptionInput{{Name: "Color", Values: []string{"Red", "Blue"}}},
		Variants: []VariantInput{
			{Title: "Green", Options: map[string]string{"Color": "Green"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ProductUnknownOptionValue, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Green")

	assert.Equal(t, int64(0), f.count(t, &model.Product{}))
}

func TestCreateProductUnknownOptionName(t *testing.T) {
	f := setupProductService(t)

	_, err := f.service.Create(context.Background(), CreateProductInput{
		Title:   "Shirt",
		Options: []OptionInput{{Name: "Color", Values: []string{"Red"}}},
		Variants: []VariantInput{
			{Title: "Red", Options: map[string]string{"Material": "Red"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ProductUnknownOption, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Material")
}

func TestUpdateProductReplacesImages(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:  "Shirt",
		Images: []string{"https://img.test/a.png", "https://img.test/b.png"},
	})
	require.NoError(t, err)

	err = f.service.Update(ctx, id, UpdateProductInput{
		Images: []string{"https://img.test/c.png"},
	})
	require.NoError(t, err)

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, product.Images, 1)
	assert.Equal(t, "https://img.test/c.png", product.Images[0].ImageURL)
	assert.Equal(t, 0, product.Images[0].Rank)

	// Only the new row remains in the table.
	assert.Equal(t, int64(1), f.count(t, &model.ProductImage{}))
}

func TestUpdateProductNilImagesLeavesExisting(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:  "Shirt",
		Images: []string{"https://img.test/a.png"},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{
		Title: strPtr("Renamed Shirt"),
	}))

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shirt", product.Title)
	assert.Len(t, product.Images, 1)
}

func TestUpdateProductReplacesVariants(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:   "Shirt",
		Options: []OptionInput{{Name: "Color", Values: []string{"Red", "Blue"}}},
		Variants: []VariantInput{
			{Title: "Red", Options: map[string]string{"Color": "Red"}, Prices: []PriceInput{{Amount: 1000, Currency: "usd"}}},
			{Title: "Blue", Options: map[string]string{"Color": "Blue"}, Prices: []PriceInput{{Amount: 1000, Currency: "usd"}}},
		},
	})
	require.NoError(t, err)

	// The new set resolves against the product's existing options.
	err = f.service.Update(ctx, id, UpdateProductInput{
		Variants: []VariantInput{
			{Title: "Only Blue", Options: map[string]string{"Color": "Blue"}, Prices: []PriceInput{{Amount: 1200, Currency: "usd"}}},
		},
	})
	require.NoError(t, err)

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "Only Blue", product.Variants[0].Title)
	require.Len(t, product.Variants[0].Prices, 1)
	assert.Equal(t, int64(1200), product.Variants[0].Prices[0].Amount)

	// The old variants' rows are gone, links and prices included.
	assert.Equal(t, int64(1), f.count(t, &model.ProductVariant{}))
	assert.Equal(t, int64(1), f.count(t, &model.ProductVariantOption{}))
	assert.Equal(t, int64(1), f.count(t, &model.Price{}))
}

func TestUpdateProductEmptyVariantsClearsAll(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:   "Shirt",
		Options: []OptionInput{{Name: "Color", Values: []string{"Red"}}},
		Variants: []VariantInput{
			{Title: "Red", Options: map[string]string{"Color": "Red"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{
		Variants: []VariantInput{},
	}))

	assert.Equal(t, int64(0), f.count(t, &model.ProductVariant{}))
}

func TestUpdateProductLinksAreAdditive(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	firstTag := f.seedTag(t, "summer")
	secondTag := f.seedTag(t, "sale")

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:  "Shirt",
		TagIDs: []uint{firstTag},
	})
	require.NoError(t, err)

	// Clients send the full desired set, so the already-linked tag comes
	// along; the existing link must be a no-op, not a conflict.
	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{
		TagIDs: []uint{firstTag, secondTag},
	}))

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)

	// Tag links accumulate across updates; the first link is kept, once.
	require.Len(t, product.Tags, 2)
	values := []string{product.Tags[0].Value, product.Tags[1].Value}
	assert.Contains(t, values, "summer")
	assert.Contains(t, values, "sale")
	assert.Equal(t, int64(2), f.count(t, &model.ProductTag{}))
}

func TestUpdateProductRelinkingSameIDsIsIdempotent(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	tagID := f.seedTag(t, "summer")
	materialID := f.seedMaterial(t, "cotton")
	categoryID := f.seedCategory(t, "Shirts", "shirts")
	shippingID := f.seedShippingOption(t, "standard")

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:             "Shirt",
		TagIDs:            []uint{tagID},
		MaterialIDs:       []uint{materialID},
		CategoryIDs:       []uint{categoryID},
		ShippingOptionIDs: []uint{shippingID},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{
		TagIDs:            []uint{tagID},
		MaterialIDs:       []uint{materialID},
		CategoryIDs:       []uint{categoryID},
		ShippingOptionIDs: []uint{shippingID},
	}))

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, product.Tags, 1)
	require.Len(t, product.Materials, 1)
	require.Len(t, product.Categories, 1)
	require.Len(t, product.ShippingOptions, 1)
	assert.Equal(t, int64(1), f.count(t, &model.ProductTag{}))
	assert.Equal(t, int64(1), f.count(t, &model.ProductMaterial{}))
	assert.Equal(t, int64(1), f.count(t, &model.ProductCategory{}))
	assert.Equal(t, int64(1), f.count(t, &model.ProductShippingOption{}))
}

func TestUpdateProductNewOptionsExtendResolution(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{
		Title:   "Shirt",
		Options: []OptionInput{{Name: "Color", Values: []string{"Red"}}},
	})
	require.NoError(t, err)

	err = f.service.Update(ctx, id, UpdateProductInput{
		Options: []OptionInput{{Name: "Size", Values: []string{"S", "M"}}},
		Variants: []VariantInput{
			{Title: "Red / S", Options: map[string]string{"Color": "Red", "Size": "S"}},
		},
	})
	require.NoError(t, err)

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, product.Options, 2)
	require.Len(t, product.Variants, 1)
	assert.Len(t, product.Variants[0].OptionValues, 2)
}

func TestUpdateProductSlugConflict(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, CreateProductInput{Title: "First", Slug: "first"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, CreateProductInput{Title: "Second", Slug: "second"})
	require.NoError(t, err)

	err = f.service.Update(ctx, second, UpdateProductInput{Slug: strPtr("first")})
	require.Error(t, err)
	assert.Equal(t, apperrors.ProductSlugExists, apperrors.CodeOf(err))
}

func TestUpdateProductNotFound(t *testing.T) {
	f := setupProductService(t)

	err := f.service.Update(context.Background(), 42, UpdateProductInput{Title: strPtr("Nope")})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateProductScalarFields(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{Title: "Shirt"})
	require.NoError(t, err)

	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{
		Subtitle: strPtr("Limited"),
		Weight:   intPtr(300),
		Status:   func() *model.ProductStatus { s := model.StatusPublished; return &s }(),
	}))

	product, err := f.service.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Limited", product.Subtitle)
	require.NotNil(t, product.Weight)
	assert.Equal(t, 300, *product.Weight)
	assert.Equal(t, model.StatusPublished, product.Status)
}

func TestDeleteProductExcludedFromReads(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{Title: "Shirt"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, id))

	_, err = f.service.GetByID(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	products, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// The row itself is kept, only stamped.
	var raw model.Product
	require.NoError(t, f.db.Unscoped().First(&raw, id).Error)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestDeleteProductNotFound(t *testing.T) {
	f := setupProductService(t)

	err := f.service.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProductEventsFireOnceAfterCommit(t *testing.T) {
	f := setupProductService(t)
	ctx := context.Background()

	id, err := f.service.Create(ctx, CreateProductInput{Title: "Shirt"})
	require.NoError(t, err)
	require.Equal(t, []uint{id}, f.events.created)

	require.NoError(t, f.service.Update(ctx, id, UpdateProductInput{Title: strPtr("Renamed")}))
	require.Equal(t, []uint{id}, f.events.updated)

	require.NoError(t, f.service.Delete(ctx, id))
	require.Equal(t, []uint{id}, f.events.deleted)
}

func TestProductEventsSkippedOnRollback(t *testing.T) {
	f := setupProductService(t)

	_, err := f.service.Create(context.Background(), CreateProductInput{
		Title:  "Doomed",
		TagIDs: []uint{9999},
	})
	require.Error(t, err)

	assert.Empty(t, f.events.created)
}

package service

import (
	"context"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stackos/catalog-backend/pkg/logger"
	"github.com/stackos/catalog-backend/pkg/slug"
	"gorm.io/gorm"
)

// ProductService writes and reads the product aggregate: the root row plus
// options, variants, images and the links to tags, materials, categories
// and shipping options, all inside one transaction per operation.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (uint, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) error
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	optionRepo   repository.OptionRepository
	variantRepo  repository.VariantRepository
	imageRepo    repository.ImageRepository
	tagRepo      repository.TagRepository
	materialRepo repository.MaterialRepository
	categoryRepo repository.CategoryRepository
	shippingRepo repository.ShippingOptionRepository
	pricing      PricingService
	events       Events
}

func NewProductService(
	database *gorm.DB,
	productRepo repository.ProductRepository,
	optionRepo repository.OptionRepository,
	variantRepo repository.VariantRepository,
	imageRepo repository.ImageRepository,
	tagRepo repository.TagRepository,
	materialRepo repository.MaterialRepository,
	categoryRepo repository.CategoryRepository,
	shippingRepo repository.ShippingOptionRepository,
	pricing PricingService,
	events Events,
) ProductService {
	if events == nil {
		events = NewLogEvents()
	}
	return &productService{
		db:           database,
		productRepo:  productRepo,
		optionRepo:   optionRepo,
		variantRepo:  variantRepo,
		imageRepo:    imageRepo,
		tagRepo:      tagRepo,
		materialRepo: materialRepo,
		categoryRepo: categoryRepo,
		shippingRepo: shippingRepo,
		pricing:      pricing,
		events:       events,
	}
}

// optionValueRef is one entry of the per-operation resolution map: the id a
// value text received when it was inserted earlier in the same transaction.
type optionValueRef struct {
	id    uint
	value string
}

type optionResolution map[string][]optionValueRef

func (s *productService) Create(ctx context.Context, input CreateProductInput) (uint, error) {
	logger.Info("Creating product", map[string]interface{}{
		"title":    input.Title,
		"options":  len(input.Options),
		"variants": len(input.Variants),
	})

	if input.Slug != "" && !slug.IsValid(input.Slug) {
		return 0, apperrors.Invalidf(apperrors.ValidationInvalidSlug, "invalid slug %q", input.Slug)
	}
	if len(input.Variants) > 0 && len(input.Options) == 0 {
		return 0, apperrors.Invalidf(apperrors.ProductVariantsNeedOptions, "variants are not allowed without options")
	}

	var productID uint
	err := db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		productSlug := input.Slug
		if productSlug == "" {
			productSlug = slug.Slugify(input.Title)
		}
		if err := s.ensureSlugFree(ctx, productSlug); err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = model.StatusDraft
		}

		product := &model.Product{
			Status:        status,
			Title:         input.Title,
			Subtitle:      input.Subtitle,
			Description:   input.Description,
			Slug:          productSlug,
			Weight:        input.Weight,
			Height:        input.Height,
			Width:         input.Width,
			Depth:         input.Depth,
			Metadata:      input.Metadata,
			OriginCountry: input.OriginCountry,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.ID == 0 {
			return apperrors.Internalf("product creation returned no id")
		}
		productID = product.ID

		// Options first: variants resolve against the values inserted here.
		resolution, err := s.createOptions(ctx, product.ID, input.Options, optionResolution{})
		if err != nil {
			return err
		}

		// These branches are independent of each other; only variants
		// depend on the resolution map built above.
		if err := s.attachTags(ctx, product.ID, input.TagIDs); err != nil {
			return err
		}
		if err := s.attachMaterials(ctx, product.ID, input.MaterialIDs); err != nil {
			return err
		}
		if err := s.attachCategories(ctx, product.ID, input.CategoryIDs); err != nil {
			return err
		}
		if err := s.createImages(ctx, product.ID, input.Images); err != nil {
			return err
		}
		if err := s.createVariants(ctx, product.ID, input.Variants, resolution); err != nil {
			return err
		}

		if err := s.attachShippingOptions(ctx, product.ID, input.ShippingOptionIDs); err != nil {
			return err
		}

		db.AfterCommit(ctx, func() {
			s.events.ProductCreated(productID)
		})
		return nil
	})
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"title": input.Title,
		})
		return 0, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": productID,
	})
	return productID, nil
}

func (s *productService) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	if input.Slug != nil && !slug.IsValid(*input.Slug) {
		return apperrors.Invalidf(apperrors.ValidationInvalidSlug, "invalid slug %q", *input.Slug)
	}

	err := db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		existing, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFoundf(apperrors.ProductNotFound, "product with id %d not found", id)
			}
			return err
		}

		if len(input.Variants) > 0 && len(input.Options) == 0 && len(existing.Options) == 0 {
			return apperrors.Invalidf(apperrors.ProductVariantsNeedOptions, "variants are not allowed without options")
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Subtitle != nil {
			updates["subtitle"] = *input.Subtitle
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Slug != nil && *input.Slug != existing.Slug {
			if err := s.ensureSlugFree(ctx, *input.Slug); err != nil {
				return err
			}
			updates["slug"] = *input.Slug
		}
		if input.Status != nil {
			updates["status"] = *input.Status
		}
		if input.Weight != nil {
			updates["weight"] = *input.Weight
		}
		if input.Height != nil {
			updates["height"] = *input.Height
		}
		if input.Width != nil {
			updates["width"] = *input.Width
		}
		if input.Depth != nil {
			updates["depth"] = *input.Depth
		}
		if input.Metadata != nil {
			updates["metadata"] = input.Metadata
		}
		if input.OriginCountry != nil {
			updates["origin_country"] = *input.OriginCountry
		}
		if len(updates) > 0 {
			if err := s.productRepo.UpdateColumns(ctx, id, updates); err != nil {
				return err
			}
		}

		// Seed the resolution map from the options already on the product,
		// then overlay options created in this call. New options are added,
		// not merged with old ones.
		resolution := optionResolution{}
		for _, option := range existing.Options {
			for _, value := range option.Values {
				resolution[option.Name] = append(resolution[option.Name], optionValueRef{
					id:    value.ID,
					value: value.Value,
				})
			}
		}
		resolution, err = s.createOptions(ctx, id, input.Options, resolution)
		if err != nil {
			return err
		}

		// Variants and images are replace collections: drop the full set,
		// reinsert the new one.
		if input.Variants != nil {
			if err := s.variantRepo.DeleteByProductID(ctx, id); err != nil {
				return err
			}
			if err := s.createVariants(ctx, id, input.Variants, resolution); err != nil {
				return err
			}
		}
		if input.Images != nil {
			if err := s.imageRepo.DeleteByProductID(ctx, id); err != nil {
				return err
			}
			if err := s.createImages(ctx, id, input.Images); err != nil {
				return err
			}
		}

		// Association links are additive on update; stale links stay.
		if err := s.attachTags(ctx, id, input.TagIDs); err != nil {
			return err
		}
		if err := s.attachMaterials(ctx, id, input.MaterialIDs); err != nil {
			return err
		}
		if err := s.attachCategories(ctx, id, input.CategoryIDs); err != nil {
			return err
		}
		if err := s.attachShippingOptions(ctx, id, input.ShippingOptionIDs); err != nil {
			return err
		}

		db.AfterCommit(ctx, func() {
			s.events.ProductUpdated(id)
		})
		return nil
	})
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	var product *model.Product
	err := db.RunRead(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		found, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFoundf(apperrors.ProductNotFound, "product with id %d not found", id)
			}
			return err
		}
		product = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := db.RunRead(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		found, err := s.productRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		products = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	return db.RunInTransaction(ctx, s.db, func(ctx context.Context, _ *gorm.DB) error {
		if err := s.productRepo.SoftDelete(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFoundf(apperrors.ProductNotFound, "product with id %d not found", id)
			}
			return err
		}
		db.AfterCommit(ctx, func() {
			s.events.ProductDeleted(id)
		})
		return nil
	})
}

// ensureSlugFree fails when a non-deleted product already uses slugValue.
// Runs inside the write transaction; the check is a fast fail, racing
// creates still serialize on the store.
func (s *productService) ensureSlugFree(ctx context.Context, slugValue string) error {
	_, err := s.productRepo.FindBySlug(ctx, slugValue)
	if err == nil {
		return apperrors.Invalidf(apperrors.ProductSlugExists, "slug %q is already in use", slugValue)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return nil
}

// createOptions inserts the option groups with their values and records the
// generated value ids in the resolution map consumed by createVariants.
func (s *productService) createOptions(ctx context.Context, productID uint, inputs []OptionInput, resolution optionResolution) (optionResolution, error) {
	for _, input := range inputs {
		option := &model.ProductOption{
			ProductID: productID,
			Name:      input.Name,
		}
		for _, value := range input.Values {
			option.Values = append(option.Values, model.ProductOptionValue{Value: value})
		}
		if err := s.optionRepo.CreateWithValues(ctx, option); err != nil {
			return nil, err
		}
		for _, value := range option.Values {
			resolution[input.Name] = append(resolution[input.Name], optionValueRef{
				id:    value.ID,
				value: value.Value,
			})
		}
	}
	return resolution, nil
}

// createVariants inserts the variants, resolving each selection against the
// resolution map and creating prices through the pricing service inside the
// same ambient transaction.
func (s *productService) createVariants(ctx context.Context, productID uint, inputs []VariantInput, resolution optionResolution) error {
	for _, input := range inputs {
		manageStock := true
		if input.ManageStock != nil {
			manageStock = *input.ManageStock
		}
		variant := &model.ProductVariant{
			ProductID:   productID,
			Title:       input.Title,
			Description: input.Description,
			SKU:         input.SKU,
			Quantity:    input.Quantity,
			ManageStock: manageStock,
			Attributes:  input.Attributes,
		}
		if err := s.variantRepo.Create(ctx, variant); err != nil {
			return err
		}

		links := make([]model.ProductVariantOption, 0, len(input.Options))
		for name, value := range input.Options {
			refs, ok := resolution[name]
			if !ok {
				return apperrors.Invalidf(apperrors.ProductUnknownOption, "option %q not found", name)
			}
			var valueID uint
			for _, ref := range refs {
				if ref.value == value {
					valueID = ref.id
					break
				}
			}
			if valueID == 0 {
				return apperrors.Invalidf(apperrors.ProductUnknownOptionValue, "option value %q not found", value)
			}
			links = append(links, model.ProductVariantOption{
				ProductVariantID:     variant.ID,
				ProductOptionValueID: valueID,
			})
		}
		if err := s.variantRepo.CreateOptionLinks(ctx, links); err != nil {
			return err
		}

		if _, err := s.pricing.CreatePrices(ctx, variant.ID, input.Prices); err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) createImages(ctx context.Context, productID uint, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]model.ProductImage, 0, len(urls))
	for rank, url := range urls {
		images = append(images, model.ProductImage{
			ProductID: productID,
			ImageURL:  url,
			Rank:      rank,
		})
	}
	return s.imageRepo.CreateBatch(ctx, images)
}

// The attach helpers validate that every requested id exists as a
// non-deleted entity before inserting the links. Check and insert share the
// transaction, so a concurrent delete is still caught by the foreign key.

func (s *productService) attachTags(ctx context.Context, productID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tags, err := s.tagRepo.FindByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if missing := firstMissingID(tagIDs, tagIDSet(tags)); missing != 0 {
		return apperrors.Invalidf(apperrors.TagNotFound, "tag with id %d not found", missing)
	}
	return s.tagRepo.LinkProduct(ctx, productID, tagIDs)
}

func (s *productService) attachMaterials(ctx context.Context, productID uint, materialIDs []uint) error {
	if len(materialIDs) == 0 {
		return nil
	}
	materials, err := s.materialRepo.FindByIDs(ctx, materialIDs)
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(materials))
	for _, material := range materials {
		found[material.ID] = true
	}
	if missing := firstMissingID(materialIDs, found); missing != 0 {
		return apperrors.Invalidf(apperrors.MaterialNotFound, "material with id %d not found", missing)
	}
	return s.materialRepo.LinkProduct(ctx, productID, materialIDs)
}

func (s *productService) attachCategories(ctx context.Context, productID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(categories))
	for _, category := range categories {
		found[category.ID] = true
	}
	if missing := firstMissingID(categoryIDs, found); missing != 0 {
		return apperrors.Invalidf(apperrors.CategoryNotFound, "category with id %d not found", missing)
	}
	return s.categoryRepo.LinkProduct(ctx, productID, categoryIDs)
}

func (s *productService) attachShippingOptions(ctx context.Context, productID uint, optionIDs []uint) error {
	if len(optionIDs) == 0 {
		return nil
	}
	options, err := s.shippingRepo.FindByIDs(ctx, optionIDs)
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(options))
	for _, option := range options {
		found[option.ID] = true
	}
	if missing := firstMissingID(optionIDs, found); missing != 0 {
		return apperrors.Invalidf(apperrors.ShippingOptionNotFound, "shipping option with id %d not found", missing)
	}
	return s.shippingRepo.LinkProduct(ctx, productID, optionIDs)
}

func tagIDSet(tags []model.Tag) map[uint]bool {
	found := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}
	return found
}

// firstMissingID returns the first requested id absent from found, or 0.
func firstMissingID(requested []uint, found map[uint]bool) uint {
	for _, id := range requested {
		if !found[id] {
			return id
		}
	}
	return 0
}

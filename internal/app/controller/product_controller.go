package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/service"
	apperrors "github.com/stackos/catalog-backend/internal/errors"
	"github.com/stackos/catalog-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type OptionRequest struct {
	Name   string   `json:"name" binding:"required"`
	Values []string `json:"values" binding:"required,min=1"`
}

type PriceRequest struct {
	Amount   int64           `json:"amount" binding:"required,gt=0"`
	Currency string          `json:"currency" binding:"required,len=3"`
	Rules    model.JSONMap   `json:"rules"`
	Type     model.PriceType `json:"type"`
}

type VariantRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	SKU         string            `json:"sku"`
	Quantity    int               `json:"quantity" binding:"gte=0"`
	ManageStock *bool             `json:"manage_stock"`
	Attributes  model.JSONMap     `json:"attributes"`
	Options     map[string]string `json:"options"`
	Prices      []PriceRequest    `json:"prices"`
}

type CreateProductRequest struct {
	Title             string              `json:"title" binding:"required"`
	Subtitle          string              `json:"subtitle"`
	Description       string              `json:"description"`
	Slug              string              `json:"slug"`
	Status            model.ProductStatus `json:"status"`
	Weight            *int                `json:"weight"`
	Height            *int                `json:"height"`
	Width             *int                `json:"width"`
	Depth             *int                `json:"depth"`
	Metadata          model.JSONMap       `json:"metadata"`
	OriginCountry     string              `json:"origin_country"`
	Options           []OptionRequest     `json:"options"`
	Images            []string            `json:"images"`
	TagIDs            []uint              `json:"tag_ids"`
	MaterialIDs       []uint              `json:"material_ids"`
	CategoryIDs       []uint              `json:"category_ids"`
	Variants          []VariantRequest    `json:"variants"`
	ShippingOptionIDs []uint              `json:"shipping_option_ids"`
}

type UpdateProductRequest struct {
	Title             *string              `json:"title"`
	Subtitle          *string              `json:"subtitle"`
	Description       *string              `json:"description"`
	Slug              *string              `json:"slug"`
	Status            *model.ProductStatus `json:"status"`
	Weight            *int                 `json:"weight"`
	Height            *int                 `json:"height"`
	Width             *int                 `json:"width"`
	Depth             *int                 `json:"depth"`
	Metadata          model.JSONMap        `json:"metadata"`
	OriginCountry     *string              `json:"origin_country"`
	Options           []OptionRequest      `json:"options"`
	Images            []string             `json:"images"`
	TagIDs            []uint               `json:"tag_ids"`
	MaterialIDs       []uint               `json:"material_ids"`
	CategoryIDs       []uint               `json:"category_ids"`
	Variants          []VariantRequest     `json:"variants"`
	ShippingOptionIDs []uint               `json:"shipping_option_ids"`
}

// GetAllProducts returns all non-deleted products with their aggregates
// GET /api/v1/products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.List(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.Respond(c, err)
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a product with its full aggregate
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Warn("Failed to fetch product", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product together with its options, variants,
// prices, images and associations in one transaction
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.CreateProductInput{
		Title:             req.Title,
		Subtitle:          req.Subtitle,
		Description:       req.Description,
		Slug:              req.Slug,
		Status:            req.Status,
		Weight:            req.Weight,
		Height:            req.Height,
		Width:             req.Width,
		Depth:             req.Depth,
		Metadata:          req.Metadata,
		OriginCountry:     req.OriginCountry,
		Options:           toOptionInputs(req.Options),
		Images:            req.Images,
		TagIDs:            req.TagIDs,
		MaterialIDs:       req.MaterialIDs,
		CategoryIDs:       req.CategoryIDs,
		Variants:          toVariantInputs(req.Variants),
		ShippingOptionIDs: req.ShippingOptionIDs,
	}

	id, err := ctrl.productService.Create(c.Request.Context(), input)
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.Respond(c, err)
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct applies a partial update; variants and images, when
// present, replace the existing collections
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.UpdateProductInput{
		Title:             req.Title,
		Subtitle:          req.Subtitle,
		Description:       req.Description,
		Slug:              req.Slug,
		Status:            req.Status,
		Weight:            req.Weight,
		Height:            req.Height,
		Width:             req.Width,
		Depth:             req.Depth,
		Metadata:          req.Metadata,
		OriginCountry:     req.OriginCountry,
		Options:           toOptionInputs(req.Options),
		Images:            req.Images,
		TagIDs:            req.TagIDs,
		MaterialIDs:       req.MaterialIDs,
		CategoryIDs:       req.CategoryIDs,
		Variants:          toVariantInputs(req.Variants),
		ShippingOptionIDs: req.ShippingOptionIDs,
	}

	if err := ctrl.productService.Update(c.Request.Context(), id, input); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.Respond(c, err)
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		log.Warn("Failed to delete product", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

func toOptionInputs(reqs []OptionRequest) []service.OptionInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]service.OptionInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.OptionInput{
			Name:   req.Name,
			Values: req.Values,
		})
	}
	return inputs
}

func toVariantInputs(reqs []VariantRequest) []service.VariantInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]service.VariantInput, 0, len(reqs))
	for _, req := range reqs {
		prices := make([]service.PriceInput, 0, len(req.Prices))
		for _, price := range req.Prices {
			prices = append(prices, service.PriceInput{
				Amount:   price.Amount,
				Currency: price.Currency,
				Rules:    price.Rules,
				Type:     price.Type,
			})
		}
		inputs = append(inputs, service.VariantInput{
			Title:       req.Title,
			Description: req.Description,
			SKU:         req.SKU,
			Quantity:    req.Quantity,
			ManageStock: req.ManageStock,
			Attributes:  req.Attributes,
			Options:     req.Options,
			Prices:      prices,
		})
	}
	return inputs
}

// parseIDParam reads the :id path parameter; on failure it writes the 400
// response and returns ok=false.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id "+idStr)
		return 0, false
	}
	return uint(id), true
}

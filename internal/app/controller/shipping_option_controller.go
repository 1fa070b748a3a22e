package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/service"
	apperrors "github.com/stackos/catalog-backend/internal/errors"
	"github.com/stackos/catalog-backend/internal/middleware"
)

type ShippingOptionController struct {
	shippingService service.ShippingOptionService
}

func NewShippingOptionController(shippingService service.ShippingOptionService) *ShippingOptionController {
	return &ShippingOptionController{shippingService: shippingService}
}

type ShippingPriceRequest struct {
	Amount   int64         `json:"amount" binding:"required,gt=0"`
	Currency string        `json:"currency" binding:"required,len=3"`
	Rules    model.JSONMap `json:"rules"`
}

type CreateShippingOptionRequest struct {
	Name              string                 `json:"name" binding:"required"`
	PostalCode        string                 `json:"postal_code"`
	CountryCode       string                 `json:"country_code"`
	IsShippingProfile bool                   `json:"is_shipping_profile"`
	Prices            []ShippingPriceRequest `json:"prices"`
}

type UpdateShippingOptionRequest struct {
	Name              *string                `json:"name"`
	PostalCode        *string                `json:"postal_code"`
	CountryCode       *string                `json:"country_code"`
	IsShippingProfile *bool                  `json:"is_shipping_profile"`
	Prices            []ShippingPriceRequest `json:"prices"`
}

// ListShippingOptions returns all non-deleted shipping options with prices
// GET /api/v1/shipping-options
func (ctrl *ShippingOptionController) ListShippingOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	options, err := ctrl.shippingService.GetAll(c.Request.Context())
	if err != nil {
		log.Error("Failed to list shipping options", err, nil)
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipping_options": options,
		"count":            len(options),
	})
}

// GetShippingOptionByID returns a shipping option with prices
// GET /api/v1/shipping-options/:id
func (ctrl *ShippingOptionController) GetShippingOptionByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	option, err := ctrl.shippingService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipping_option": option,
	})
}

// CreateShippingOption creates a shipping option with its prices
// POST /api/v1/shipping-options
func (ctrl *ShippingOptionController) CreateShippingOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateShippingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid shipping option creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	option, err := ctrl.shippingService.Create(c.Request.Context(), service.CreateShippingOptionInput{
		Name:              req.Name,
		PostalCode:        req.PostalCode,
		CountryCode:       req.CountryCode,
		IsShippingProfile: req.IsShippingProfile,
		Prices:            toShippingPriceInputs(req.Prices),
	})
	if err != nil {
		log.Error("Failed to create shipping option", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"shipping_option": option,
	})
}

// UpdateShippingOption applies a partial update; prices, when present,
// replace the existing set
// PUT /api/v1/shipping-options/:id
func (ctrl *ShippingOptionController) UpdateShippingOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateShippingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid shipping option update request", map[string]interface{}{
			"shipping_option_id": id,
			"error":              err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.UpdateShippingOptionInput{
		Name:              req.Name,
		PostalCode:        req.PostalCode,
		CountryCode:       req.CountryCode,
		IsShippingProfile: req.IsShippingProfile,
	}
	if req.Prices != nil {
		input.Prices = toShippingPriceInputs(req.Prices)
	}

	if err := ctrl.shippingService.Update(c.Request.Context(), id, input); err != nil {
		apperrors.Respond(c, err)
		return
	}

	option, err := ctrl.shippingService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipping_option": option,
	})
}

// DeleteShippingOption soft-deletes a shipping option
// DELETE /api/v1/shipping-options/:id
func (ctrl *ShippingOptionController) DeleteShippingOption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.shippingService.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping option deleted",
	})
}

func toShippingPriceInputs(reqs []ShippingPriceRequest) []service.ShippingPriceInput {
	inputs := make([]service.ShippingPriceInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, service.ShippingPriceInput{
			Amount:   req.Amount,
			Currency: req.Currency,
			Rules:    req.Rules,
		})
	}
	return inputs
}

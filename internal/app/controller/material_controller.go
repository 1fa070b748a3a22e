package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/internal/app/service"
	apperrors "github.com/stackos/catalog-backend/internal/errors"
	"github.com/stackos/catalog-backend/internal/middleware"
)

type MaterialController struct {
	materialService service.MaterialService
}

func NewMaterialController(materialService service.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

type CreateMaterialRequest struct {
	Value string `json:"value" binding:"required"`
}

// ListMaterials returns all non-deleted materials
// GET /api/v1/materials
func (ctrl *MaterialController) ListMaterials(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	materials, err := ctrl.materialService.GetAll(c.Request.Context())
	if err != nil {
		log.Error("Failed to list materials", err, nil)
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"count":     len(materials),
	})
}

// GetMaterialByID returns a material
// GET /api/v1/materials/:id
func (ctrl *MaterialController) GetMaterialByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	material, err := ctrl.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"material": material,
	})
}

// CreateMaterial creates a material
// POST /api/v1/materials
func (ctrl *MaterialController) CreateMaterial(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid material creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	material, err := ctrl.materialService.Create(c.Request.Context(), service.CreateMaterialInput{Value: req.Value})
	if err != nil {
		log.Error("Failed to create material", err, map[string]interface{}{
			"value": req.Value,
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"material": material,
	})
}

// DeleteMaterial soft-deletes a material
// DELETE /api/v1/materials/:id
func (ctrl *MaterialController) DeleteMaterial(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.materialService.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Material deleted",
	})
}

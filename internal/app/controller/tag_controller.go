package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/internal/app/service"
	apperrors "github.com/stackos/catalog-backend/internal/errors"
	"github.com/stackos/catalog-backend/internal/middleware"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

type CreateTagRequest struct {
	Value string `json:"value" binding:"required"`
}

// ListTags returns all non-deleted tags
// GET /api/v1/tags
func (ctrl *TagController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.GetAll(c.Request.Context())
	if err != nil {
		log.Error("Failed to list tags", err, nil)
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// GetTagByID returns a tag
// GET /api/v1/tags/:id
func (ctrl *TagController) GetTagByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tag, err := ctrl.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag": tag,
	})
}

// CreateTag creates a tag; creating an existing value returns the current row
// POST /api/v1/tags
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tag creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	tag, err := ctrl.tagService.Create(c.Request.Context(), service.CreateTagInput{Value: req.Value})
	if err != nil {
		log.Error("Failed to create tag", err, map[string]interface{}{
			"value": req.Value,
		})
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tag": tag,
	})
}

// DeleteTag soft-deletes a tag
// DELETE /api/v1/tags/:id
func (ctrl *TagController) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.tagService.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag deleted",
	})
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/config"
	"github.com/stackos/catalog-backend/internal/app/controller"
	"github.com/stackos/catalog-backend/internal/middleware"
)

type Router struct {
	productController  *controller.ProductController
	tagController      *controller.TagController
	materialController *controller.MaterialController
	categoryController *controller.CategoryController
	shippingController *controller.ShippingOptionController
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	tagController *controller.TagController,
	materialController *controller.MaterialController,
	categoryController *controller.CategoryController,
	shippingController *controller.ShippingOptionController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		tagController:      tagController,
		materialController: materialController,
		categoryController: categoryController,
		shippingController: shippingController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Catalog API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:id", r.tagController.GetTagByID)
			tags.POST("", r.tagController.CreateTag)
			tags.DELETE("/:id", r.tagController.DeleteTag)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", r.materialController.ListMaterials)
			materials.GET("/:id", r.materialController.GetMaterialByID)
			materials.POST("", r.materialController.CreateMaterial)
			materials.DELETE("/:id", r.materialController.DeleteMaterial)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategoryByID)
			categories.POST("", r.categoryController.CreateCategory)
			categories.PUT("/:id", r.categoryController.UpdateCategory)
			categories.DELETE("/:id", r.categoryController.DeleteCategory)
		}

		shippingOptions := v1.Group("/shipping-options")
		{
			shippingOptions.GET("", r.shippingController.ListShippingOptions)
			shippingOptions.GET("/:id", r.shippingController.GetShippingOptionByID)
			shippingOptions.POST("", r.shippingController.CreateShippingOption)
			shippingOptions.PUT("/:id", r.shippingController.UpdateShippingOption)
			shippingOptions.DELETE("/:id", r.shippingController.DeleteShippingOption)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

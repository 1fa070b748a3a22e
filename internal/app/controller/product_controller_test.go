package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/app/service"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewOptionRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	imageRepo := repository.NewImageRepository(testDB)
	priceRepo := repository.NewPriceRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	materialRepo := repository.NewMaterialRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	shippingRepo := repository.NewShippingOptionRepository(testDB)

	productService := service.NewProductService(
		testDB,
		productRepo,
		optionRepo,
		variantRepo,
		imageRepo,
		tagRepo,
		materialRepo,
		categoryRepo,
		shippingRepo,
		service.NewPricingService(testDB, priceRepo),
		nil,
	)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", productController.GetAllProducts)
	router.GET("/products/:id", productController.GetProductByID)
	router.POST("/products", productController.CreateProduct)
	router.PUT("/products/:id", productController.UpdateProduct)
	router.DELETE("/products/:id", productController.DeleteProduct)

	return router, testDB
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProductController_CreateProduct_Success(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodPost, "/products", gin.H{
		"title": "Heavyweight T-Shirt",
		"options": []gin.H{
			{"name": "Color", "values": []string{"Red", "Blue"}},
		},
		"variants": []gin.H{
			{
				"title":   "Red",
				"options": gin.H{"Color": "Red"},
				"prices":  []gin.H{{"amount": 2500, "currency": "usd"}},
			},
		},
		"images": []string{"https://img.test/front.png"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "heavyweight-t-shirt", response.Product.Slug)
	assert.Len(t, response.Product.Variants, 1)
	assert.Len(t, response.Product.Images, 1)
}

func TestProductController_CreateProduct_ValidationError(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	// Variants without options is a domain rule violation -> 400 with a
	// stable error code.
	w := performRequest(router, http.MethodPost, "/products", gin.H{
		"title": "Shirt",
		"variants": []gin.H{
			{"title": "One"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PRODUCT_VARIANTS_NEED_OPTIONS", response["error"])
}

func TestProductController_CreateProduct_MissingTitle(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodPost, "/products", gin.H{
		"description": "no title",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodGet, "/products/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PRODUCT_NOT_FOUND", response["error"])
}

func TestProductController_GetProductByID_InvalidID(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodGet, "/products/not-a-number", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_UpdateProduct_ReplacesImages(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodPost, "/products", gin.H{
		"title":  "Shirt",
		"images": []string{"https://img.test/a.png", "https://img.test/b.png"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = performRequest(router, http.MethodPut, "/products/1", gin.H{
		"images": []string{"https://img.test/c.png"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Product.Images, 1)
	assert.Equal(t, "https://img.test/c.png", updated.Product.Images[0].ImageURL)
}

func TestProductController_DeleteProduct_ThenGone(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	w := performRequest(router, http.MethodPost, "/products", gin.H{
		"title": "Shirt",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodDelete, "/products/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["count"])
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /api/products?category=&search=
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var categoryID int64
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		categoryID = id
	}

	products := h.catalogService.Products(categoryID, c.Query("search"))
	c.JSON(http.StatusOK, products)
}

// GET /api/products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Featured())
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.catalogService.ProductDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GET /api/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Categories())
}

// PUT /api/products/:id/stock
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalogService.AdjustStock(id, req.Stock)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/health
func (h *ProductHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

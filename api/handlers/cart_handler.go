package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService) *CartHandler {
	return &CartHandler{cartService: cartService, catalogService: catalogService}
}

// GET /api/cart/:userId
// First access creates the cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.cartService.View(userID))
}

// POST /api/cart/add
// The product's current price is captured here as the line's priceAtMoment.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalogService.Product(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Quantity > product.Stock {
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
		return
	}

	cart := h.cartService.GetOrCreateCart(req.UserID)
	item, err := h.cartService.AddItem(cart.ID, req.ProductID, req.Quantity, product.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// PUT /api/cart/update/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, removed, err := h.cartService.UpdateQuantity(id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if removed {
		c.JSON(http.StatusOK, gin.H{"removed": true})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DELETE /api/cart/remove/:id
// The aggregate treats removal as idempotent; the API reports 404 when the
// line was already gone.
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.cartService.RemoveItem(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true})
}

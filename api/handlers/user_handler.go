package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

// UserHandler serves the address book and favorites.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/addresses/:userId
func (h *UserHandler) GetAddresses(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.userService.Addresses(userID))
}

// POST /api/addresses
func (h *UserHandler) CreateAddress(c *gin.Context) {
	var req models.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.userService.CreateAddress(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// GET /api/favorites/:userId
func (h *UserHandler) GetFavorites(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.userService.Favorites(userID))
}

// POST /api/favorites
func (h *UserHandler) AddFavorite(c *gin.Context) {
	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.userService.AddFavorite(req.UserID, req.ProductID))
}

// DELETE /api/favorites/:userId/:productId
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	h.userService.RemoveFavorite(userID, productID)
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// POST /api/coupons/validate
// Always 200; the body carries the valid flag and discount. The reason
// stays server-side.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.couponService.Validate(req.Code, req.UserID, req.Total, time.Now())
	c.JSON(http.StatusOK, result)
}

// POST /api/coupons/apply
func (h *CouponHandler) Apply(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.couponService.Apply(req.UserID, req.CouponID, req.OrderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": true})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// POST /api/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Add(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// POST /api/reviews/:id/helpful
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ReviewHelpfulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := h.reviewService.MarkHelpful(id, req.UserID, *req.IsHelpful)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vote)
}

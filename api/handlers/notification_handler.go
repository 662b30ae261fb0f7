package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /api/notifications/:userId?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	c.JSON(http.StatusOK, h.notificationService.List(userID, unreadOnly))
}

// POST /api/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n := h.notificationService.Notify(req.UserID, req.Type, req.Title, req.Message)
	c.JSON(http.StatusCreated, n)
}

// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}

// PUT /api/notifications/read-all/:userId
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	count := h.notificationService.MarkAllRead(userID)
	c.JSON(http.StatusOK, gin.H{"read": count})
}

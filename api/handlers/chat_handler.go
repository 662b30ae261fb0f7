package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mistica/internal/models"
	"mistica/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// POST /api/chat/sessions
func (h *ChatHandler) OpenSession(c *gin.Context) {
	var req models.OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.chatService.Open(req.UserID, req.Subject))
}

// GET /api/chat/sessions?userId=
func (h *ChatHandler) ListSessions(c *gin.Context) {
	var userID int64
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		userID = id
	}

	c.JSON(http.StatusOK, h.chatService.Sessions(userID))
}

// GET /api/chat/sessions/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	messages, err := h.chatService.Messages(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// POST /api/chat/sessions/:id/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chatService.Post(id, req.Sender, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// PUT /api/chat/sessions/:id/close
func (h *ChatHandler) CloseSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.chatService.Close(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closed": true})
}

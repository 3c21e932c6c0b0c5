package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tshirt-studio-backend/internal/middleware"
	"tshirt-studio-backend/internal/models"
)

type ChatHandler struct {
	store MessageStore
}

func NewChatHandler(store MessageStore) *ChatHandler {
	return &ChatHandler{store: store}
}

// Send godoc
// @Summary     Send a chat message
// @Description Records a message from the session user. Staff replies arrive through admin tooling.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Param       body body models.SendMessageRequest true "Message payload"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, models.Error("message content is required"))
		return
	}

	message, err := h.store.CreateMessage(userID, content, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to send message"))
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: messagePayload(message),
	})
}

// List godoc
// @Summary     List chat messages
// @Description Returns the session user's conversation, oldest first.
// @Tags        chat
// @Produce     json
// @Success     200 {object} models.MessageListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /chat/list [get]
func (h *ChatHandler) List(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	messages, err := h.store.ListMessages(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to list messages"))
		return
	}

	payloads := make([]models.MessagePayload, len(messages))
	for i := range messages {
		payloads[i] = messagePayload(&messages[i])
	}

	c.JSON(http.StatusOK, models.MessageListResponse{
		Status:   models.StatusSuccess,
		Messages: payloads,
	})
}

func messagePayload(message *models.Message) models.MessagePayload {
	return models.MessagePayload{
		ID:        message.ID.String(),
		Content:   message.Content,
		IsAdmin:   message.IsAdmin,
		CreatedAt: message.CreatedAt,
	}
}

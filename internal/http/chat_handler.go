package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-widget/internal/domain"
	"chat-widget/internal/service"
)

// ChatHandler atiende los endpoints que consume el widget.
type ChatHandler struct {
	logger       *zap.Logger
	conversation *service.ConversationService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, conversation *service.ConversationService) *ChatHandler {
	return &ChatHandler{
		logger:       logger,
		conversation: conversation,
	}
}

// Chat maneja POST /chat: {user_input, memory} -> {response, memory}.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request"})
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "User input is required"})
		return
	}

	entries, err := service.DecodeMemory(req.Memory)
	if err != nil {
		h.logger.Warn("invalid chat memory", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid memory"})
		return
	}

	text, mem, err := h.conversation.Reply(c.Request.Context(), req.UserInput, entries, req.MemSize)
	if err != nil {
		h.replyError(c, err)
		return
	}

	encoded, err := service.EncodeMemory(mem)
	if err != nil {
		h.logger.Error("encode memory failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "could not generate response"})
		return
	}

	c.JSON(http.StatusOK, domain.ChatResponse{Response: text, Memory: encoded})
}

// LegacyChat maneja POST /chat/legacy con user_input como formulario.
// No usa memoria: cada mensaje es una conversacion nueva.
func (h *ChatHandler) LegacyChat(c *gin.Context) {
	input := strings.TrimSpace(c.PostForm("user_input"))
	if input == "" {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "User input is required"})
		return
	}

	text, _, err := h.conversation.Reply(c.Request.Context(), input, nil, 0)
	if err != nil {
		h.replyError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.LegacyResponse{Response: text})
}

// Tools maneja GET /tools: nombre y descripcion de cada funcion disponible.
func (h *ChatHandler) Tools(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ToolsResponse{Tools: h.conversation.Tools()})
}

func (h *ChatHandler) replyError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "User input is required"})
		return
	}
	h.logger.Error("chat response failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "could not generate response"})
}

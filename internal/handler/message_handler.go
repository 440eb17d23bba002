package handler

import (
	"errors"
	"net/http"

	"whispr-server/internal/services"
	"whispr-server/internal/transport/httpdto"
	whispr_errors "whispr-server/pkg/errors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /api/message/send.
func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body", "INVALID_PAYLOAD"))
		return
	}

	session := services.SessionFromContext(c.Request.Context())
	msg, err := h.service.Send(c.Request.Context(), session, req.ChatID, req.Text)
	if err != nil {
		status, code := messageErrorStatus(err)
		message := err.Error()
		if code == "INTERNAL_ERROR" {
			_ = c.Error(err)
			message = "internal server error"
		}
		c.JSON(status, httpdto.NewErrorResponse(message, code))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msg))
}

func messageErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, whispr_errors.ErrInvalidPayload):
		return http.StatusBadRequest, "INVALID_PAYLOAD"
	case errors.Is(err, whispr_errors.ErrUnauthenticated),
		errors.Is(err, whispr_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, whispr_errors.ErrSenderNotFound):
		return http.StatusNotFound, "SENDER_NOT_FOUND"
	case errors.Is(err, whispr_errors.ErrDispatchFailed):
		return http.StatusInternalServerError, "DISPATCH_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

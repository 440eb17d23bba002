package handler

import (
	"errors"
	"net/http"

	"whispr-server/internal/services"
	"whispr-server/internal/transport/httpdto"
	whispr_errors "whispr-server/pkg/errors"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	service *services.FriendService
}

func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

// Add handles POST /api/friends/add. Schema failures are 422; every business
// rejection is a 400 with its own code, matching the web client's handling.
func (h *FriendHandler) Add(c *gin.Context) {
	var req httpdto.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpdto.NewErrorResponse("invalid request payload", "INVALID_PAYLOAD"))
		return
	}

	session := services.SessionFromContext(c.Request.Context())
	err := h.service.Submit(c.Request.Context(), session, req.Email)
	if err != nil {
		status, code := friendErrorStatus(err)
		message := err.Error()
		if code == "INVALID_REQUEST" {
			// Store and dispatch failures stay generic to the caller.
			_ = c.Error(err)
			message = "invalid request"
		}
		c.JSON(status, httpdto.NewErrorResponse(message, code))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse("OK"))
}

func friendErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, whispr_errors.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, whispr_errors.ErrInvalidPayload):
		return http.StatusUnprocessableEntity, "INVALID_PAYLOAD"
	case errors.Is(err, whispr_errors.ErrTargetNotFound):
		return http.StatusBadRequest, "TARGET_NOT_FOUND"
	case errors.Is(err, whispr_errors.ErrSelfRequest):
		return http.StatusBadRequest, "SELF_REQUEST"
	case errors.Is(err, whispr_errors.ErrDuplicateRequest):
		return http.StatusBadRequest, "DUPLICATE_REQUEST"
	case errors.Is(err, whispr_errors.ErrAlreadyFriends):
		return http.StatusBadRequest, "ALREADY_FRIENDS"
	default:
		return http.StatusBadRequest, "INVALID_REQUEST"
	}
}

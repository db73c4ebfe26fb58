package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/service"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

// UserService is implemented by *service.UserService
type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, id string, in service.ProfileInput) (*model.User, error)
	Update(ctx context.Context, id string, in service.ProfileInput) (*model.User, error)
}

type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, u, "")
}

// POST /api/users/me registers the profile for the token's user id.
func (h *UserHandler) Register(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Create(c.Request.Context(), c.GetString(ctxUserID), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, u, constants.MsgUserCreated)
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Update(c.Request.Context(), c.GetString(ctxUserID), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, u, constants.MsgUserUpdated)
}

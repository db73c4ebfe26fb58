package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/internal/service"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
	"github.com/Jayarmananan1994/notifyme/pkg/logger"
)

func respondOK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, model.APIResponse{Success: true, Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.APIResponse{Success: false, Error: message})
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.APIResponse{Success: false, Error: message})
}

// respondServiceError maps service sentinels onto status codes. Unknown errors are
// logged and hidden behind the generic message.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var verr *rule.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, model.APIResponse{Success: false, Error: verr.Error(), Data: verr.Problems})
	case errors.Is(err, service.ErrRuleNotFound), errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRuleLimitReached),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidPhone):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.WithTrace(c.Request.Context(), log).Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, constants.ErrMsgInternalServer)
	}
}

package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/internal/service"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

// RuleService is implemented by *service.RuleService
type RuleService interface {
	List(ctx context.Context, userID string) ([]*model.NotificationRule, error)
	Get(ctx context.Context, userID, id string) (*model.NotificationRule, error)
	Create(ctx context.Context, userID string, in service.RuleInput) (*model.NotificationRule, error)
	Update(ctx context.Context, userID, id string, in service.RuleInput) (*model.NotificationRule, error)
	Delete(ctx context.Context, userID, id string) error
	DryRun(ctx context.Context, userID string, email *model.EmailMessage) ([]rule.Match, error)
}

type RuleHandler struct {
	rules  RuleService
	logger *zap.Logger
}

func NewRuleHandler(rules RuleService, logger *zap.Logger) *RuleHandler {
	return &RuleHandler{rules: rules, logger: logger}
}

// GET /api/rules
func (h *RuleHandler) List(c *gin.Context) {
	rules, err := h.rules.List(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, rules, "")
}

// GET /api/rules/:id
func (h *RuleHandler) Get(c *gin.Context) {
	r, err := h.rules.Get(c.Request.Context(), c.GetString(ctxUserID), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, r, "")
}

// POST /api/rules
func (h *RuleHandler) Create(c *gin.Context) {
	var in service.RuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	r, err := h.rules.Create(c.Request.Context(), c.GetString(ctxUserID), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, r, constants.MsgRuleCreated)
}

// PUT /api/rules/:id
func (h *RuleHandler) Update(c *gin.Context) {
	var in service.RuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	r, err := h.rules.Update(c.Request.Context(), c.GetString(ctxUserID), c.Param("id"), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, r, constants.MsgRuleUpdated)
}

// DELETE /api/rules/:id
func (h *RuleHandler) Delete(c *gin.Context) {
	if err := h.rules.Delete(c.Request.Context(), c.GetString(ctxUserID), c.Param("id")); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, nil, constants.MsgRuleDeleted)
}

// POST /api/rules/evaluate runs the caller's rules against the posted email. Nothing is queued.
func (h *RuleHandler) Evaluate(c *gin.Context) {
	var email model.EmailMessage
	if err := c.ShouldBindJSON(&email); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	matches, err := h.rules.DryRun(c.Request.Context(), c.GetString(ctxUserID), &email)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, matches, "")
}

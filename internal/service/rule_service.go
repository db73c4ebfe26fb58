package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

// RuleStore is implemented by *repository.RuleRepository
type RuleStore interface {
	ListByUser(ctx context.Context, userID string) ([]*model.NotificationRule, error)
	FindByID(ctx context.Context, userID, id string) (*model.NotificationRule, error)
	CreateWithLimit(ctx context.Context, r *model.NotificationRule, maxRules int) error
	Update(ctx context.Context, r *model.NotificationRule) error
	Delete(ctx context.Context, userID, id string) error
}

// RuleInput is the client-editable part of a rule. Enabled defaults to true.
type RuleInput struct {
	Name       string                `json:"name"`
	Conditions []model.RuleCondition `json:"conditions"`
	Actions    []model.RuleAction    `json:"actions"`
	Enabled    *bool                 `json:"enabled"`
}

func (in RuleInput) apply(r *model.NotificationRule) {
	r.Name = in.Name
	r.Conditions = append([]model.RuleCondition(nil), in.Conditions...)
	r.Actions = append([]model.RuleAction(nil), in.Actions...)
	r.Enabled = true
	if in.Enabled != nil {
		r.Enabled = *in.Enabled
	}
}

type RuleService struct {
	store  RuleStore
	engine *rule.Engine
	logger *zap.Logger
}

func NewRuleService(store RuleStore, engine *rule.Engine, logger *zap.Logger) *RuleService {
	return &RuleService{store: store, engine: engine, logger: logger}
}

func (s *RuleService) List(ctx context.Context, userID string) ([]*model.NotificationRule, error) {
	rules, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []*model.NotificationRule{}
	}
	return rules, nil
}

func (s *RuleService) Get(ctx context.Context, userID, id string) (*model.NotificationRule, error) {
	r, err := s.store.FindByID(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRuleNotFound
	}
	return r, err
}

// Create sanitizes and validates in, then stores it subject to the per-user limit.
func (s *RuleService) Create(ctx context.Context, userID string, in RuleInput) (*model.NotificationRule, error) {
	r := &model.NotificationRule{ID: util.GenerateID(), UserID: userID}
	in.apply(r)

	rule.Sanitize(r)
	if err := rule.Validate(r); err != nil {
		return nil, err
	}

	if err := s.store.CreateWithLimit(ctx, r, constants.MaxRulesPerUser); err != nil {
		switch {
		case errors.Is(err, repository.ErrRuleLimitReached):
			return nil, ErrRuleLimitReached
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info("Rule created",
		zap.String("rule_id", r.ID),
		zap.String("user_id", userID),
		zap.Int("conditions", len(r.Conditions)),
	)
	return r, nil
}

// Update replaces the rule's editable fields.
func (s *RuleService) Update(ctx context.Context, userID, id string, in RuleInput) (*model.NotificationRule, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in.apply(existing)
	rule.Sanitize(existing)
	if err := rule.Validate(existing); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	s.logger.Info("Rule updated", zap.String("rule_id", id), zap.String("user_id", userID))
	return existing, nil
}

func (s *RuleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	s.logger.Info("Rule deleted", zap.String("rule_id", id), zap.String("user_id", userID))
	return nil
}

// DryRun evaluates the user's stored rules against email without queueing anything.
func (s *RuleService) DryRun(ctx context.Context, userID string, email *model.EmailMessage) ([]rule.Match, error) {
	rules, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches := s.engine.Evaluate(rules, email)
	if matches == nil {
		matches = []rule.Match{}
	}
	return matches, nil
}

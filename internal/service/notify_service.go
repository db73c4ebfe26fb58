package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/pkg/logger"
	"github.com/Jayarmananan1994/notifyme/pkg/metrics"
	"github.com/Jayarmananan1994/notifyme/pkg/trace"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

// EnabledRuleSource is implemented by *repository.RuleRepository
type EnabledRuleSource interface {
	ListEnabledByUser(ctx context.Context, userID string) ([]*model.NotificationRule, error)
}

// NotificationQueue is implemented by *repository.NotificationRepository
type NotificationQueue interface {
	QueueAll(ctx context.Context, notifications []*model.Notification, traceID string) (int, error)
}

// NotifyService turns an incoming email into queued WhatsApp notifications.
type NotifyService struct {
	users  UserStore
	rules  EnabledRuleSource
	queue  NotificationQueue
	engine *rule.Engine
	logger *zap.Logger
}

func NewNotifyService(users UserStore, rules EnabledRuleSource, queue NotificationQueue, engine *rule.Engine, logger *zap.Logger) *NotifyService {
	return &NotifyService{users: users, rules: rules, queue: queue, engine: engine, logger: logger}
}

// ProcessEmail evaluates the owner's enabled rules and queues one notification per
// enabled action of every matching rule. It returns how many were newly queued.
// Users without a WhatsApp number get nothing and no error.
func (s *NotifyService) ProcessEmail(ctx context.Context, userID string, email *model.EmailMessage) (int, error) {
	log := logger.WithTrace(ctx, s.logger).With(
		zap.String("user_id", userID),
		zap.String("email_id", email.ID),
	)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	if !user.HasWhatsApp() {
		log.Info("Skipping email, user has no WhatsApp number", zap.Error(ErrWhatsAppNotEnabled))
		return 0, nil
	}

	rules, err := s.rules.ListEnabledByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	matches := s.engine.Evaluate(rules, email)
	if len(matches) == 0 {
		log.Debug("No rule matched", zap.Int("rules", len(rules)))
		return 0, nil
	}

	var notifications []*model.Notification
	for _, m := range matches {
		for _, a := range m.Actions {
			notifications = append(notifications, &model.Notification{
				ID:        util.GenerateID(),
				UserID:    userID,
				RuleID:    m.RuleID,
				EmailID:   email.ID,
				ActionIdx: a.Index,
				Channel:   string(a.Type),
				Recipient: *user.WhatsAppNumber,
				Message:   a.Message,
				Status:    model.NotificationStatusQueued,
			})
		}
	}

	queued, err := s.queue.QueueAll(ctx, notifications, trace.FromContext(ctx))
	if err != nil {
		return 0, err
	}

	for i := 0; i < queued; i++ {
		metrics.IncrementNotificationQueued(string(model.ActionWhatsApp))
	}

	log.Info("Notifications queued",
		zap.Int("matched_rules", len(matches)),
		zap.Int("queued", queued),
	)
	return queued, nil
}

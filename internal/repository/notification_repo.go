package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	mqcontracts "github.com/Jayarmananan1994/notifyme/contracts/mq"
	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/mq"
	"github.com/Jayarmananan1994/notifyme/pkg/outbox"
)

const notificationAggregate = "notification"

type NotificationRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
}

func NewNotificationRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository) *NotificationRepository {
	return &NotificationRepository{db: db, outbox: outboxRepo}
}

// QueueAll inserts the notifications and one notification.requested outbox event per
// new row in a single transaction. Rows already present for (rule, email, action) are
// skipped, so a redelivered email queues nothing twice. Returns how many were queued.
func (r *NotificationRepository) QueueAll(ctx context.Context, notifications []*model.Notification, traceID string) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO notifications (id, user_id, rule_id, email_id, action_idx, channel, recipient, message, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (rule_id, email_id, action_idx) DO NOTHING
        RETURNING created_at
    `

	queued := 0
	for _, n := range notifications {
		err := tx.QueryRow(ctx, query,
			n.ID, n.UserID, n.RuleID, n.EmailID, n.ActionIdx, n.Channel, n.Recipient, n.Message, n.Status,
		).Scan(&n.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to insert notification: %w", err)
		}

		payload := mqcontracts.NotificationRequestedPayload{
			NotificationID: n.ID,
			UserID:         n.UserID,
			RuleID:         n.RuleID,
			EmailID:        n.EmailID,
			Channel:        n.Channel,
			Recipient:      n.Recipient,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
			TraceID:        traceID,
		}
		if err := outbox.InsertEventInTx(ctx, tx, r.outbox, notificationAggregate, n.ID, mq.RoutingKeyNotificationRequested, payload); err != nil {
			return 0, err
		}
		queued++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit notifications: %w", err)
	}
	return queued, nil
}

package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "github.com/Jayarmananan1994/notifyme/contracts/mq"
	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/logger"
	"github.com/Jayarmananan1994/notifyme/pkg/metrics"
	"github.com/Jayarmananan1994/notifyme/pkg/mq"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

const handlerName = "rules"

// EmailProcessor is implemented by *service.NotifyService
type EmailProcessor interface {
	ProcessEmail(ctx context.Context, userID string, email *model.EmailMessage) (int, error)
}

// EmailReceivedHandler runs the owner's rules for every email.received event.
type EmailReceivedHandler struct {
	processor  EmailProcessor
	deduper    *util.Deduper
	retries    *util.RetryCounter
	maxRetries int64
	logger     *zap.Logger
}

func NewEmailReceivedHandler(
	processor EmailProcessor,
	deduper *util.Deduper,
	retries *util.RetryCounter,
	maxRetries int64,
	logger *zap.Logger,
) *EmailReceivedHandler {
	return &EmailReceivedHandler{
		processor:  processor,
		deduper:    deduper,
		retries:    retries,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// HandleEmailReceived returns nil to ack, an mq.ErrDeadLetter wrap to park the message,
// or any other error to requeue it.
func (h *EmailReceivedHandler) HandleEmailReceived(ctx context.Context, raw json.RawMessage) error {
	log := logger.WithTrace(ctx, h.logger)

	var p mqcontracts.EmailReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		metrics.IncrementEmailProcessed("invalid")
		return fmt.Errorf("%w: decode email.received: %v", mq.ErrDeadLetter, err)
	}
	if p.EmailID == "" || p.UserID == "" {
		metrics.IncrementEmailProcessed("invalid")
		return fmt.Errorf("%w: email.received without email_id or user_id", mq.ErrDeadLetter)
	}

	log = log.With(zap.String("email_id", p.EmailID), zap.String("user_id", p.UserID))

	if !h.deduper.AcquireOnce(ctx, handlerName, p.EmailID) {
		metrics.IncrementEmailProcessed("duplicate")
		return nil
	}

	queued, err := h.processor.ProcessEmail(ctx, p.UserID, toEmail(p))
	if err != nil {
		return h.handleFailure(ctx, log, p.EmailID, err)
	}

	if err := h.retries.Reset(ctx, util.FormatRetryKey(handlerName, p.EmailID)); err != nil {
		log.Warn("Failed to reset retry counter", zap.Error(err))
	}

	metrics.IncrementEmailProcessed("processed")
	log.Info("Email processed", zap.Int("queued", queued))
	return nil
}

func (h *EmailReceivedHandler) handleFailure(ctx context.Context, log *zap.Logger, emailID string, err error) error {
	retryable, errType := util.IsRetryableError(err)
	// shutting down mid-message: let the broker redeliver it
	if ctx.Err() != nil {
		retryable = true
	}

	log = log.With(zap.String("error_type", errType), zap.Bool("retryable", retryable), zap.Error(err))

	if !retryable {
		metrics.IncrementEmailProcessed("failed")
		log.Error("Email processing failed, dropping event")
		return nil
	}

	detached := context.WithoutCancel(ctx)
	count, cerr := h.retries.IncrementAndGet(detached, util.FormatRetryKey(handlerName, emailID))
	if cerr != nil {
		log.Warn("Failed to increment retry counter", zap.NamedError("counter_error", cerr))
	}

	if !util.ShouldRetry(count, h.maxRetries, true) {
		metrics.IncrementEmailProcessed("dead_lettered")
		log.Error("Retries exhausted", zap.Int64("attempts", count))
		return fmt.Errorf("%w: %d attempts: %v", mq.ErrDeadLetter, count, err)
	}

	if rerr := h.deduper.Release(detached, handlerName, emailID); rerr != nil {
		log.Warn("Failed to release dedup key", zap.NamedError("release_error", rerr))
	}

	metrics.IncrementEmailProcessed("retried")
	log.Warn("Email processing failed, requeueing", zap.Int64("attempt", count))
	return err
}

func toEmail(p mqcontracts.EmailReceivedPayload) *model.EmailMessage {
	return &model.EmailMessage{
		ID:        p.EmailID,
		MessageID: p.MessageID,
		ThreadID:  p.ThreadID,
		Sender:    p.Sender,
		Subject:   p.Subject,
		Snippet:   p.Snippet,
		Body:      p.Body,
		Received:  p.ReceivedAt,
		Read:      p.Read,
		Labels:    p.Labels,
	}
}

package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "github.com/Jayarmananan1994/notifyme/contracts/mq"
	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/mq"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

type stubProcessor struct {
	calls  int
	emails []*model.EmailMessage
	errs   []error
}

func (s *stubProcessor) ProcessEmail(_ context.Context, _ string, email *model.EmailMessage) (int, error) {
	s.calls++
	s.emails = append(s.emails, email)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return 0, err
	}
	return 1, nil
}

func newHandler(t *testing.T, p EmailProcessor, maxRetries int64) (*EmailReceivedHandler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := NewEmailReceivedHandler(
		p,
		util.NewDeduper(rdb, time.Hour),
		util.NewRetryCounter(rdb, time.Hour),
		maxRetries,
		zap.NewNop(),
	)
	return h, mr
}

func payload(t *testing.T, p mqcontracts.EmailReceivedPayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}

func validPayload(t *testing.T) json.RawMessage {
	return payload(t, mqcontracts.EmailReceivedPayload{
		EmailID:    "email-1",
		UserID:     "user-1",
		Sender:     "alerts@bank.example",
		Subject:    "Low balance",
		Snippet:    "Your balance is low",
		ReceivedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	})
}

func TestHandleEmailReceived_ProcessesOnce(t *testing.T) {
	p := &stubProcessor{}
	h, _ := newHandler(t, p, 3)
	ctx := context.Background()

	require.NoError(t, h.HandleEmailReceived(ctx, validPayload(t)))
	require.NoError(t, h.HandleEmailReceived(ctx, validPayload(t)))

	assert.Equal(t, 1, p.calls)
	email := p.emails[0]
	assert.Equal(t, "email-1", email.ID)
	assert.Equal(t, "alerts@bank.example", email.Sender)
	assert.Equal(t, "Your balance is low", email.Content())
}

func TestHandleEmailReceived_MalformedPayloadIsDeadLettered(t *testing.T) {
	p := &stubProcessor{}
	h, _ := newHandler(t, p, 3)

	err := h.HandleEmailReceived(context.Background(), json.RawMessage(`{"email_id":`))
	assert.ErrorIs(t, err, mq.ErrDeadLetter)

	err = h.HandleEmailReceived(context.Background(), payload(t, mqcontracts.EmailReceivedPayload{EmailID: "email-1"}))
	assert.ErrorIs(t, err, mq.ErrDeadLetter)

	assert.Zero(t, p.calls)
}

func TestHandleEmailReceived_NonRetryableErrorIsAcked(t *testing.T) {
	p := &stubProcessor{errs: []error{errors.New("user not found")}}
	h, _ := newHandler(t, p, 3)

	assert.NoError(t, h.HandleEmailReceived(context.Background(), validPayload(t)))
	assert.Equal(t, 1, p.calls)
}

func TestHandleEmailReceived_RetriesThenDeadLetters(t *testing.T) {
	transient := errors.New("failed to connect: connection refused")
	p := &stubProcessor{errs: []error{transient, transient, transient}}
	h, mr := newHandler(t, p, 2)
	ctx := context.Background()

	err := h.HandleEmailReceived(ctx, validPayload(t))
	require.ErrorIs(t, err, transient)
	assert.NotErrorIs(t, err, mq.ErrDeadLetter)

	err = h.HandleEmailReceived(ctx, validPayload(t))
	require.ErrorIs(t, err, transient)

	err = h.HandleEmailReceived(ctx, validPayload(t))
	assert.ErrorIs(t, err, mq.ErrDeadLetter)
	assert.Equal(t, 3, p.calls)

	count, cerr := mr.Get(util.FormatRetryKey(handlerName, "email-1"))
	require.NoError(t, cerr)
	assert.Equal(t, "3", count)
}

func TestHandleEmailReceived_SuccessResetsRetryCounter(t *testing.T) {
	transient := errors.New("i/o timeout")
	p := &stubProcessor{errs: []error{transient}}
	h, mr := newHandler(t, p, 3)
	ctx := context.Background()

	require.Error(t, h.HandleEmailReceived(ctx, validPayload(t)))
	require.NoError(t, h.HandleEmailReceived(ctx, validPayload(t)))

	assert.Equal(t, 2, p.calls)
	assert.False(t, mr.Exists(util.FormatRetryKey(handlerName, "email-1")))
}

func TestHandleEmailReceived_CanceledContextRequeues(t *testing.T) {
	p := &stubProcessor{errs: []error{context.Canceled}}
	h, _ := newHandler(t, p, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.HandleEmailReceived(ctx, validPayload(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, mq.ErrDeadLetter)
}

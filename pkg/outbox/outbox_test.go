package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/pkg/trace"
)

type memoryStore struct {
	mu      sync.Mutex
	events  map[int64]*Event
	sent    []int64
	failed  []int64
	replays []int64
}

func newMemoryStore(events ...*Event) *memoryStore {
	s := &memoryStore{events: map[int64]*Event{}}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *memoryStore) GetPendingEvents(_ context.Context, limit int) ([]*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Event
	for _, e := range s.events {
		if e.Status == StatusPending && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryStore) GetFailedEvents(_ context.Context, limit int) ([]*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Event
	for _, e := range s.events {
		if e.Status == StatusFailed && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryStore) GetEventByID(_ context.Context, id int64) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (s *memoryStore) MarkAsSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id].Status = StatusSent
	s.sent = append(s.sent, id)
	return nil
}

func (s *memoryStore) MarkAsFailed(_ context.Context, id int64, maxRetries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.events[id]
	e.RetryCount++
	e.Status, e.NextRetryAt = nextAttempt(e.RetryCount, maxRetries, time.Now())
	s.failed = append(s.failed, id)
	return nil
}

func (s *memoryStore) ReplayEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.events[id]
	e.Status = StatusPending
	e.RetryCount = 0
	s.replays = append(s.replays, id)
	return nil
}

type recordingPublisher struct {
	err       error
	keys      []string
	traceIDs  []string
	published []any
}

func (p *recordingPublisher) PublishWithContext(ctx context.Context, routingKey string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.traceIDs = append(p.traceIDs, trace.FromContext(ctx))
	p.published = append(p.published, payload)
	return nil
}

func event(id int64, status string, payload string) *Event {
	return &Event{
		ID:            id,
		AggregateType: "notification",
		AggregateID:   "n-1",
		RoutingKey:    "notification.requested",
		Payload:       json.RawMessage(payload),
		Status:        status,
	}
}

func TestDispatcher_PublishesPendingAndMarksSent(t *testing.T) {
	store := newMemoryStore(event(1, StatusPending, `{"trace_id":"t-1","message":"hi"}`))
	pub := &recordingPublisher{}

	d := NewDispatcher(store, pub, zap.NewNop())
	d.processPendingEvents(context.Background())

	require.Len(t, pub.keys, 1)
	assert.Equal(t, "notification.requested", pub.keys[0])
	assert.Equal(t, "t-1", pub.traceIDs[0])
	assert.Equal(t, []int64{1}, store.sent)
	assert.Equal(t, StatusSent, store.events[1].Status)
}

func TestDispatcher_PublishFailureSchedulesRetry(t *testing.T) {
	store := newMemoryStore(event(1, StatusPending, `{}`))
	pub := &recordingPublisher{err: errors.New("channel closed")}

	d := NewDispatcher(store, pub, zap.NewNop()).WithMaxRetries(2)

	d.processPendingEvents(context.Background())
	assert.Equal(t, StatusPending, store.events[1].Status)
	assert.NotNil(t, store.events[1].NextRetryAt)

	d.processPendingEvents(context.Background())
	assert.Equal(t, StatusFailed, store.events[1].Status)
	assert.Nil(t, store.events[1].NextRetryAt)
}

func TestDispatcher_InvalidPayloadCountsAsFailure(t *testing.T) {
	store := newMemoryStore(event(1, StatusPending, `not json`))
	pub := &recordingPublisher{}

	NewDispatcher(store, pub, zap.NewNop()).processPendingEvents(context.Background())

	assert.Empty(t, pub.keys)
	assert.Equal(t, []int64{1}, store.failed)
}

func TestDispatcher_StartStopsOnCancel(t *testing.T) {
	store := newMemoryStore()
	d := NewDispatcher(store, &recordingPublisher{}, zap.NewNop()).WithInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestReplayService_ReplayFailedEvents(t *testing.T) {
	store := newMemoryStore(
		event(1, StatusFailed, `{"a":1}`),
		event(2, StatusSent, `{"b":2}`),
	)
	pub := &recordingPublisher{}

	n, err := NewReplayService(store, pub, zap.NewNop()).ReplayFailedEvents(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{1}, store.replays)
	assert.Equal(t, StatusSent, store.events[1].Status)
}

func TestReplayService_UnknownEvent(t *testing.T) {
	err := NewReplayService(newMemoryStore(), &recordingPublisher{}, zap.NewNop()).ReplayEvent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestNextAttempt(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	status, next := nextAttempt(2, 5, now)
	assert.Equal(t, StatusPending, status)
	require.NotNil(t, next)
	assert.Equal(t, now.Add(10*time.Second), *next)

	status, next = nextAttempt(5, 5, now)
	assert.Equal(t, StatusFailed, status)
	assert.Nil(t, next)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
)

type memRuleStore struct {
	mu    sync.Mutex
	rules []*model.NotificationRule
	err   error
}

func (m *memRuleStore) ListByUser(_ context.Context, userID string) ([]*model.NotificationRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.NotificationRule
	for _, r := range m.rules {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuleStore) ListEnabledByUser(ctx context.Context, userID string) ([]*model.NotificationRule, error) {
	all, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*model.NotificationRule
	for _, r := range all {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuleStore) FindByID(_ context.Context, userID, id string) (*model.NotificationRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rules {
		if r.ID == id && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRuleStore) CreateWithLimit(_ context.Context, r *model.NotificationRule, maxRules int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, existing := range m.rules {
		if existing.UserID == r.UserID {
			count++
		}
	}
	if count >= maxRules {
		return repository.ErrRuleLimitReached
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.rules = append(m.rules, r)
	return nil
}

func (m *memRuleStore) Update(_ context.Context, r *model.NotificationRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.rules {
		if existing.ID == r.ID && existing.UserID == r.UserID {
			r.UpdatedAt = time.Now()
			m.rules[i] = r
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memRuleStore) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rules {
		if r.ID == id && r.UserID == userID {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
	err   error
}

func newMemUserStore(users ...*model.User) *memUserStore {
	s := &memUserStore{users: map[string]*model.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) emailTaken(id, email string) bool {
	for _, u := range m.users {
		if u.Email == email && u.ID != id {
			return true
		}
	}
	return false
}

func (m *memUserStore) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; ok || m.emailTaken(u.ID, u.Email) {
		return repository.ErrEmailAlreadyTaken
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserStore) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if m.emailTaken(u.ID, u.Email) {
		return repository.ErrEmailAlreadyTaken
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

// memQueue mimics the unique (rule, email, action) constraint.
type memQueue struct {
	mu       sync.Mutex
	seen     map[string]bool
	queued   []*model.Notification
	traceIDs []string
	err      error
}

func newMemQueue() *memQueue { return &memQueue{seen: map[string]bool{}} }

func (q *memQueue) QueueAll(_ context.Context, notifications []*model.Notification, traceID string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return 0, q.err
	}
	n := 0
	for _, notif := range notifications {
		key := fmt.Sprintf("%s|%s|%d", notif.RuleID, notif.EmailID, notif.ActionIdx)
		if q.seen[key] {
			continue
		}
		q.seen[key] = true
		q.queued = append(q.queued, notif)
		q.traceIDs = append(q.traceIDs, traceID)
		n++
	}
	return n, nil
}

package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

// PollingInterval is the fixed delay between scheduled checks
const PollingInterval = 30 * time.Second

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Snapshot is the monitor state at one point in time. Health is set only in
// StateSuccess and Err only in StateFailure.
type Snapshot struct {
	State  State
	Health *model.HealthCheck
	Err    string
}

var (
	ErrAlreadyStarted = errors.New("monitor already started")
	ErrStopped        = errors.New("monitor stopped")
)

// Monitor polls a health endpoint on a fixed interval and on demand.
// Every trigger issues exactly one request; overlapping requests are not
// deduplicated and whichever response lands last wins.
type Monitor struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	snap    Snapshot
	subs    []chan Snapshot
	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
	stopped   bool
	responded bool

	wg sync.WaitGroup
}

// NewMonitor builds a monitor; interval <= 0 means PollingInterval.
func NewMonitor(fetcher Fetcher, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = PollingInterval
	}
	return &Monitor{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
		snap:     Snapshot{State: StateIdle},
	}
}

// Start issues the first request immediately and then one per interval until Stop
// or until parent is cancelled.
func (m *Monitor) Start(parent context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return ErrStopped
	}
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true
	m.ctx, m.cancel = context.WithCancel(parent)
	context.AfterFunc(m.ctx, m.Stop)

	m.triggerLocked("start")

	m.wg.Add(1)
	go m.loop()

	m.logger.Info("Health monitor started", zap.Duration("interval", m.interval))
	return nil
}

func (m *Monitor) loop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.trigger("tick")
		}
	}
}

// Refresh re-checks now, independent of the timer. It does nothing until the
// first response, success or failure, has arrived.
func (m *Monitor) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.responded {
		return
	}
	m.triggerLocked("refresh")
}

// Retry re-checks now after a failure.
func (m *Monitor) Retry() { m.trigger("retry") }

func (m *Monitor) trigger(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggerLocked(reason)
}

func (m *Monitor) triggerLocked(reason string) {
	if !m.started || m.stopped {
		return
	}

	m.setLocked(Snapshot{State: StateLoading})
	m.logger.Debug("Health check triggered", zap.String("reason", reason))

	m.wg.Add(1)
	go m.request(m.ctx)
}

func (m *Monitor) request(ctx context.Context) {
	defer m.wg.Done()

	hc, err := m.fetcher.Fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}
	m.responded = true
	if err != nil {
		m.setLocked(Snapshot{State: StateFailure, Err: err.Error()})
		return
	}
	m.setLocked(Snapshot{State: StateSuccess, Health: hc})
}

// Stop cancels the timer and any in-flight request, waits for them to finish and
// closes every subscriber channel. It is safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
	m.mu.Unlock()

	m.logger.Info("Health monitor stopped")
}

// Snapshot returns the current state
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Subscribe returns a channel that receives the current state and every later transition.
// A slow reader may miss intermediate states but its next receive is always the newest one.
// The channel is closed by Stop.
func (m *Monitor) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	ch <- m.snap
	if m.stopped {
		close(ch)
		return ch
	}
	m.subs = append(m.subs, ch)
	return ch
}

func (m *Monitor) setLocked(s Snapshot) {
	m.snap = s
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			// replace the unread state with the newer one
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/metrics"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

// Checker probes one dependency; nil means reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Reporter builds HealthCheck reports for this process.
// The database is the only critical dependency: gmail and whatsapp being unreachable
// shows up in services but leaves the overall status ok.
type Reporter struct {
	environment string
	startedAt   time.Time
	timeout     time.Duration

	database Checker
	gmail    Checker
	whatsapp Checker

	logger *zap.Logger
	now    func() time.Time
}

type ReporterOption func(*Reporter)

func WithDatabase(c Checker) ReporterOption { return func(r *Reporter) { r.database = c } }
func WithGmail(c Checker) ReporterOption    { return func(r *Reporter) { r.gmail = c } }
func WithWhatsApp(c Checker) ReporterOption { return func(r *Reporter) { r.whatsapp = c } }

// WithCheckTimeout bounds each dependency check; default 2s
func WithCheckTimeout(d time.Duration) ReporterOption { return func(r *Reporter) { r.timeout = d } }

func NewReporter(environment string, startedAt time.Time, logger *zap.Logger, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		environment: environment,
		startedAt:   startedAt,
		timeout:     2 * time.Second,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reporter) hasCheckers() bool {
	return r.database != nil || r.gmail != nil || r.whatsapp != nil
}

// Report runs the configured checks concurrently. Services is omitted when no checker is configured.
func (r *Reporter) Report(ctx context.Context) model.HealthCheck {
	now := r.now()
	report := model.HealthCheck{
		Status:      model.HealthStatusOK,
		Timestamp:   util.FormatDate(now),
		Uptime:      now.Sub(r.startedAt).Seconds(),
		Environment: r.environment,
	}

	if r.hasCheckers() {
		var dbErr, gmailErr, whatsappErr error

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { dbErr = r.run(gctx, "database", r.database); return nil })
		g.Go(func() error { gmailErr = r.run(gctx, "gmail", r.gmail); return nil })
		g.Go(func() error { whatsappErr = r.run(gctx, "whatsapp", r.whatsapp); return nil })
		_ = g.Wait()

		report.Services = &model.HealthServices{
			Database: serviceState(r.database, dbErr),
			Gmail:    serviceState(r.gmail, gmailErr),
			WhatsApp: serviceState(r.whatsapp, whatsappErr),
		}
		if r.database != nil && dbErr != nil {
			report.Status = model.HealthStatusError
		}
	}

	metrics.IncrementHealthCheck(report.Status)
	return report
}

func (r *Reporter) run(ctx context.Context, name string, c Checker) error {
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := c.Check(ctx); err != nil {
		r.logger.Warn("Health dependency unreachable",
			zap.String("service", name),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// serviceState: an unconfigured dependency is reported disconnected.
func serviceState(c Checker, err error) string {
	if c == nil || err != nil {
		return model.ServiceDisconnected
	}
	return model.ServiceConnected
}

package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

var (
	up   = CheckerFunc(func(context.Context) error { return nil })
	down = CheckerFunc(func(context.Context) error { return errors.New("unreachable") })
)

func fixedReporter(opts ...ReporterOption) *Reporter {
	started := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewReporter("production", started, zap.NewNop(), opts...)
	r.now = func() time.Time { return started.Add(time.Hour) }
	return r
}

func TestReporter_NoCheckers(t *testing.T) {
	hc := fixedReporter().Report(context.Background())

	assert.Equal(t, model.HealthStatusOK, hc.Status)
	assert.Equal(t, "2023-01-01T01:00:00.000Z", hc.Timestamp)
	assert.Equal(t, 3600.0, hc.Uptime)
	assert.Equal(t, "production", hc.Environment)
	assert.Nil(t, hc.Services)
}

func TestReporter_AllConnected(t *testing.T) {
	hc := fixedReporter(WithDatabase(up), WithGmail(up), WithWhatsApp(up)).Report(context.Background())

	assert.Equal(t, model.HealthStatusOK, hc.Status)
	require.NotNil(t, hc.Services)
	assert.Equal(t, model.HealthServices{
		Database: model.ServiceConnected,
		Gmail:    model.ServiceConnected,
		WhatsApp: model.ServiceConnected,
	}, *hc.Services)
}

func TestReporter_DatabaseDownIsError(t *testing.T) {
	hc := fixedReporter(WithDatabase(down), WithGmail(up), WithWhatsApp(up)).Report(context.Background())

	assert.Equal(t, model.HealthStatusError, hc.Status)
	assert.Equal(t, model.ServiceDisconnected, hc.Services.Database)
}

func TestReporter_ExternalDownStaysOK(t *testing.T) {
	hc := fixedReporter(WithDatabase(up), WithGmail(down)).Report(context.Background())

	assert.Equal(t, model.HealthStatusOK, hc.Status)
	assert.Equal(t, model.ServiceDisconnected, hc.Services.Gmail)
	assert.Equal(t, model.ServiceDisconnected, hc.Services.WhatsApp, "unconfigured reads as disconnected")
}

func TestReporter_CheckTimeout(t *testing.T) {
	slow := CheckerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	hc := fixedReporter(WithDatabase(slow), WithCheckTimeout(20*time.Millisecond)).Report(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, model.HealthStatusError, hc.Status)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPingChecker(t *testing.T) {
	assert.NoError(t, PingChecker(pingerFunc(func(context.Context) error { return nil })).Check(context.Background()))
	assert.Error(t, PingChecker(pingerFunc(func(context.Context) error { return errors.New("no pool") })).Check(context.Background()))
}

func TestHTTPProbe(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusBadRequest)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	probe := NewHTTPProbe(srv.URL, time.Second)
	assert.NoError(t, probe.Check(context.Background()), "4xx still proves reachability")

	status.Store(http.StatusBadGateway)
	assert.EqualError(t, probe.Check(context.Background()), "HTTP 502")
}

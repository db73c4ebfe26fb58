package health

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

func TestRender_Loading(t *testing.T) {
	assert.Equal(t, "Checking system health...", Render(Snapshot{State: StateLoading}, time.UTC))
	assert.Equal(t, "Checking system health...", Render(Snapshot{State: StateIdle}, time.UTC))
}

func TestRender_Failure(t *testing.T) {
	out := Render(Snapshot{State: StateFailure, Err: "HTTP 500"}, time.UTC)

	assert.Contains(t, out, "Health check failed: HTTP 500")
	assert.Contains(t, out, "[Retry]")
	assert.NotContains(t, out, "[Refresh]")
}

func TestRender_Success(t *testing.T) {
	hc := &model.HealthCheck{
		Status:      "ok",
		Uptime:      3600,
		Environment: "production",
		Timestamp:   "2023-01-01T00:00:00.000Z",
	}

	out := Render(Snapshot{State: StateSuccess, Health: hc}, time.UTC)

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{
		"System Status: OK",
		"Environment: production",
		"Uptime: 60 minutes",
		"Last checked: 12:00:00 AM",
		"[Refresh]",
	}, lines)
}

func TestRender_ErrorStatus(t *testing.T) {
	hc := &model.HealthCheck{Status: "error", Uptime: 59.9, Environment: "test", Timestamp: "2023-01-01T00:00:00.000Z"}

	out := Render(Snapshot{State: StateSuccess, Health: hc}, time.UTC)

	assert.Contains(t, out, "System Status: ERROR")
	assert.Contains(t, out, "Uptime: 0 minutes")
}

func TestRender_LocalTime(t *testing.T) {
	hc := &model.HealthCheck{Status: "ok", Timestamp: "2023-01-01T00:00:00.000Z"}
	loc := time.FixedZone("UTC+5:30", 5*3600+30*60)

	assert.Contains(t, Render(Snapshot{State: StateSuccess, Health: hc}, loc), "Last checked: 5:30:00 AM")
}

func TestRender_BadTimestamp(t *testing.T) {
	hc := &model.HealthCheck{Status: "ok", Timestamp: "yesterday"}
	assert.Contains(t, Render(Snapshot{State: StateSuccess, Health: hc}, time.UTC), "Last checked: Invalid Date")
}

func TestUptimeMinutes(t *testing.T) {
	assert.Equal(t, int64(0), UptimeMinutes(0))
	assert.Equal(t, int64(1), UptimeMinutes(119.99))
	assert.Equal(t, int64(60), UptimeMinutes(3600))
}

package health

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

const (
	LoadingText    = "Checking system health..."
	RetryControl   = "[Retry]"
	RefreshControl = "[Refresh]"

	lastCheckedLayout = "3:04:05 PM"
)

// Render draws the text view of a snapshot. Idle renders like Loading since no
// response has arrived yet. Timestamps are shown in loc.
func Render(s Snapshot, loc *time.Location) string {
	switch s.State {
	case StateFailure:
		return fmt.Sprintf("Health check failed: %s\n%s", s.Err, RetryControl)
	case StateSuccess:
		return renderHealth(s.Health, loc)
	default:
		return LoadingText
	}
}

func renderHealth(hc *model.HealthCheck, loc *time.Location) string {
	if hc == nil {
		return LoadingText
	}
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	fmt.Fprintf(&b, "System Status: %s\n", strings.ToUpper(hc.Status))
	fmt.Fprintf(&b, "Environment: %s\n", hc.Environment)
	fmt.Fprintf(&b, "Uptime: %d minutes\n", UptimeMinutes(hc.Uptime))
	fmt.Fprintf(&b, "Last checked: %s\n", lastChecked(hc.Timestamp, loc))
	b.WriteString(RefreshControl)
	return b.String()
}

// UptimeMinutes floors uptime seconds to whole minutes
func UptimeMinutes(uptime float64) int64 {
	return int64(math.Floor(uptime / 60))
}

func lastChecked(timestamp string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return "Invalid Date"
	}
	return t.In(loc).Format(lastCheckedLayout)
}

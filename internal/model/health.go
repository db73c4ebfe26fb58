package model

const (
	HealthStatusOK    = "ok"
	HealthStatusError = "error"

	ServiceConnected    = "connected"
	ServiceDisconnected = "disconnected"
)

// HealthServices reports reachability of each backing dependency
type HealthServices struct {
	Database string `json:"database"`
	Gmail    string `json:"gmail"`
	WhatsApp string `json:"whatsapp"`
}

type HealthCheck struct {
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	Uptime      float64         `json:"uptime"` // seconds
	Environment string          `json:"environment"`
	Services    *HealthServices `json:"services,omitempty"`
}

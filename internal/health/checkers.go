package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jayarmananan1994/notifyme/pkg/circuitbreaker"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker checks a database pool
func PingChecker(p Pinger) Checker {
	return CheckerFunc(p.Ping)
}

// HTTPProbe treats any response below 500 as reachable. Repeated failures open the
// breaker so a dead upstream does not cost a full timeout on every report.
type HTTPProbe struct {
	url     string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	return &HTTPProbe{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
	}
}

func (p *HTTPProbe) Check(ctx context.Context) error {
	return p.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if err != nil {
			return err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return nil
	})
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jayarmananan1994/notifyme/internal/health"
	"github.com/Jayarmananan1994/notifyme/internal/model"
)

var errUnhealthy = errors.New("system unhealthy")

func (a *app) healthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Inspect the API health endpoint",
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Fetch health once and exit non-zero unless the status is ok",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := health.NewClient(a.healthURL(), a.v.GetDuration(keyHealthTimeout))

			hc, err := client.Fetch(commandContext(cmd))
			snap := health.Snapshot{State: health.StateSuccess, Health: hc}
			if err != nil {
				snap = health.Snapshot{State: health.StateFailure, Err: err.Error()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), health.Render(snap, time.Local))

			if err != nil {
				return err
			}
			if hc.Status != model.HealthStatusOK {
				return errUnhealthy
			}
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Poll health and redraw on every change; press Enter to refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := health.NewClient(a.healthURL(), a.v.GetDuration(keyHealthTimeout))
			monitor := health.NewMonitor(client, a.v.GetDuration(keyHealthInterval), a.logger())
			updates := monitor.Subscribe()

			if err := monitor.Start(ctx); err != nil {
				return err
			}
			defer monitor.Stop()

			go readControls(cmd, monitor)

			out := cmd.OutOrStdout()
			for snap := range updates {
				fmt.Fprintf(out, "\n%s\n", health.Render(snap, time.Local))
			}
			return nil
		},
	}

	cmd.AddCommand(check, watch)
	return cmd
}

// readControls maps "r"/Enter to Refresh and "retry" to Retry until input ends.
func readControls(cmd *cobra.Command, m *health.Monitor) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "r", "refresh":
			m.Refresh()
		case "retry":
			m.Retry()
		}
	}
}

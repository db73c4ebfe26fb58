package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayarmananan1994/notifyme/pkg/db"
	"github.com/Jayarmananan1994/notifyme/pkg/mq"
	"github.com/Jayarmananan1994/notifyme/pkg/outbox"
)

func (a *app) outboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Operate on the notification outbox",
	}

	var (
		eventID int64
		failed  bool
		limit   int
	)
	replay := &cobra.Command{
		Use:   "replay",
		Short: "Republish one outbox event (--id) or every failed one (--failed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (eventID == 0) == !failed {
				return errors.New("pass exactly one of --id or --failed")
			}

			ctx := commandContext(cmd)
			log := a.logger()

			dbURL, err := a.databaseURL()
			if err != nil {
				return err
			}
			mqURL, err := a.mqURL()
			if err != nil {
				return err
			}

			pool, err := db.NewPool(ctx, dbURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			publisher, err := mq.NewPublisher(mqURL)
			if err != nil {
				return err
			}
			defer publisher.Close()

			replayer := outbox.NewReplayService(outbox.NewRepository(pool), publisher, log)
			out := cmd.OutOrStdout()

			if failed {
				n, err := replayer.ReplayFailedEvents(ctx, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "replayed %d failed events\n", n)
				return nil
			}

			if err := replayer.ReplayEvent(ctx, eventID); err != nil {
				return err
			}
			fmt.Fprintf(out, "replayed event %d\n", eventID)
			return nil
		},
	}
	replay.Flags().Int64Var(&eventID, "id", 0, "Outbox event id")
	replay.Flags().BoolVar(&failed, "failed", false, "Replay every failed event")
	replay.Flags().IntVar(&limit, "limit", 100, "Max events with --failed")

	cmd.AddCommand(replay)
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jayarmananan1994/notifyme/pkg/db"
)

func (a *app) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.databaseURL()
			if err != nil {
				return err
			}
			if err := db.RunMigrations(url, a.v.GetString(keyMigrations), a.logger()); err != nil {
				return err
			}
			return a.printVersion(cmd, url)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.databaseURL()
			if err != nil {
				return err
			}
			if err := db.RollbackMigration(url, a.v.GetString(keyMigrations), a.logger()); err != nil {
				return err
			}
			return a.printVersion(cmd, url)
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.databaseURL()
			if err != nil {
				return err
			}
			return a.printVersion(cmd, url)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func (a *app) printVersion(cmd *cobra.Command, url string) error {
	version, dirty, err := db.MigrationVersion(url, a.v.GetString(keyMigrations))
	if err != nil {
		return err
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, state)
	return nil
}

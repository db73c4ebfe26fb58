// Package cli implements notifyctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/config"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

const (
	keyAPIURL         = "api.url"
	keyHealthInterval = "health.interval"
	keyHealthTimeout  = "health.timeout"
	keyDatabaseURL    = "database.url"
	keyMigrations     = "database.migrations"
	keyMQURL          = "mq.url"
	keyVerbose        = "verbose"
)

type app struct {
	v *viper.Viper
}

// NewRootCommand builds a fresh command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "notifyctl",
		Short:         constants.AppName + " operator tool",
		Long:          constants.AppDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(keyAPIURL, "http://localhost:8080", "API base URL")
	flags.Duration(keyHealthInterval, 30*time.Second, "Health polling interval")
	flags.Duration(keyHealthTimeout, 5*time.Second, "Health request timeout")
	flags.String(keyDatabaseURL, "", "Database connection URL (default: from config/)")
	flags.String(keyMigrations, "file://migrations", "Migrations source URL")
	flags.String(keyMQURL, "", "RabbitMQ URL (default: from config/)")
	flags.Bool(keyVerbose, false, "Log to stderr")

	for _, key := range []string{keyAPIURL, keyHealthInterval, keyHealthTimeout, keyDatabaseURL, keyMigrations, keyMQURL, keyVerbose} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	a.v.SetEnvPrefix("NOTIFYCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.healthCommand(),
		a.rulesCommand(),
		a.migrateCommand(),
		a.outboxCommand(),
		a.idCommand(),
		a.versionCommand(),
	)
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) logger() *zap.Logger {
	if !a.v.GetBool(keyVerbose) {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (a *app) healthURL() string {
	return strings.TrimRight(a.v.GetString(keyAPIURL), "/") + constants.APIPrefix + constants.EndpointHealth
}

// serviceConfig loads config/ only when a flag or env var did not supply the value.
func (a *app) serviceConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(configEnv(), configDir())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *app) databaseURL() (string, error) {
	if url := a.v.GetString(keyDatabaseURL); url != "" {
		return url, nil
	}
	cfg, err := a.serviceConfig()
	if err != nil {
		return "", err
	}
	return cfg.DB.URL(), nil
}

func (a *app) mqURL() (string, error) {
	if url := a.v.GetString(keyMQURL); url != "" {
		return url, nil
	}
	cfg, err := a.serviceConfig()
	if err != nil {
		return "", err
	}
	return cfg.MQ.URL, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

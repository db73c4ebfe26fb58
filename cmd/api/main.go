package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/config"
	"github.com/Jayarmananan1994/notifyme/internal/health"
	"github.com/Jayarmananan1994/notifyme/internal/httpserver"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/internal/service"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
	"github.com/Jayarmananan1994/notifyme/pkg/db"
	pkglogger "github.com/Jayarmananan1994/notifyme/pkg/logger"
)

func main() {
	startedAt := time.Now()

	// Load config
	cfg := config.Load()

	logger := pkglogger.NewLogger(cfg.App.Environment)
	defer logger.Sync()

	logger.Info("Starting API server",
		zap.String("app", constants.AppName),
		zap.String("version", constants.AppVersion),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	dbConn, err := db.NewConnection(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	ruleRepo := repository.NewRuleRepository(dbConn)

	// Init Services
	engine := rule.NewEngine(logger)
	ruleService := service.NewRuleService(ruleRepo, engine, logger)
	userService := service.NewUserService(userRepo, logger)

	reporter := health.NewReporter(cfg.App.Environment, startedAt, logger,
		health.WithDatabase(health.PingChecker(dbConn)),
		health.WithGmail(health.NewHTTPProbe(cfg.Health.GmailProbeURL, cfg.Health.ProbeTimeout)),
		health.WithWhatsApp(health.NewHTTPProbe(cfg.Health.WhatsAppProbeURL, cfg.Health.ProbeTimeout)),
		health.WithCheckTimeout(cfg.Health.ProbeTimeout),
	)

	// Router
	router := httpserver.NewRouter(
		httpserver.NewHealthHandler(reporter),
		httpserver.NewRuleHandler(ruleService, logger),
		httpserver.NewUserHandler(userService, logger),
		httpserver.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		cfg.JWT.Secret,
		logger,
	)

	if err := httpserver.Serve(ctx, cfg.Server.Port, router.Engine, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("API server stopped")
}

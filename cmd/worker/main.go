package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jayarmananan1994/notifyme/internal/config"
	"github.com/Jayarmananan1994/notifyme/internal/mqhandler"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/internal/service"
	"github.com/Jayarmananan1994/notifyme/pkg/constants"
	"github.com/Jayarmananan1994/notifyme/pkg/db"
	pkglogger "github.com/Jayarmananan1994/notifyme/pkg/logger"
	"github.com/Jayarmananan1994/notifyme/pkg/mq"
	"github.com/Jayarmananan1994/notifyme/pkg/outbox"
	redisclient "github.com/Jayarmananan1994/notifyme/pkg/redis"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

const brokerCheckInterval = 5 * time.Second

func main() {
	// Load config
	cfg := config.Load()

	logger := pkglogger.NewLogger(cfg.App.Environment)
	defer logger.Sync()

	logger.Info("Starting worker service...",
		zap.String("app", constants.AppName),
		zap.String("version", constants.AppVersion),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	if err := redisclient.Ping(ctx, rdb); err != nil {
		logger.Warn("Redis unreachable, dedup will let duplicates through", zap.Error(err))
	}

	deduper := util.NewDeduperWithLogger(rdb, cfg.Worker.DedupTTL, logger)
	retries := util.NewRetryCounter(rdb, cfg.Worker.RetryTTL)

	// Init DB
	dbConn, err := db.NewConnection(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("Database connection established")

	// Init Repositories
	outboxRepo := outbox.NewRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)
	ruleRepo := repository.NewRuleRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn, outboxRepo)

	notifyService := service.NewNotifyService(userRepo, ruleRepo, notificationRepo, rule.NewEngine(logger), logger)
	handler := mqhandler.NewEmailReceivedHandler(notifyService, deduper, retries, cfg.Worker.MaxRetries, logger)

	// Init MQ Publisher (outbox + DLQ)
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	logger.Info("Initializing rules consumer", zap.String("queue", cfg.Worker.Queue))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.Worker.Queue, mq.RoutingKeyEmailReceived, logger)
	if err != nil {
		logger.Fatal("failed to init rules consumer", zap.Error(err))
	}
	defer consumer.Close()
	consumer.SetHandler(handler.HandleEmailReceived)
	consumer.SetDeadLetter(publisher)

	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, logger).
		WithInterval(cfg.Worker.OutboxInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := consumer.StartConsuming(gctx); err != nil {
			return err
		}
		if gctx.Err() == nil {
			return errors.New("rules consumer: delivery channel closed")
		}
		return nil
	})
	g.Go(func() error {
		dispatcher.Start(gctx)
		return nil
	})
	// exit on broker loss so the supervisor restarts us with fresh channels
	g.Go(func() error {
		for {
			if err := util.Delay(gctx, brokerCheckInterval); err != nil {
				return nil
			}
			if !publisher.IsConnected() {
				return errors.New("rabbitmq connection lost")
			}
		}
	})

	logger.Info("Worker is ready to process messages")

	if err := g.Wait(); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
	logger.Info("Worker stopped")
}

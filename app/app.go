package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/libsys/backend/config"
	"github.com/libsys/backend/internal/cache"
	"github.com/libsys/backend/internal/handler"
	"github.com/libsys/backend/internal/repository"
	"github.com/libsys/backend/internal/server"
	"github.com/libsys/backend/internal/service"
	"github.com/libsys/backend/migrations"
	"github.com/libsys/backend/pkg/kafka"
	"github.com/libsys/backend/pkg/logger"
	"github.com/libsys/backend/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "libsys")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo := repository.NewRepository(db, log)
	txm := postgres.NewTxManager(db)

	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("redis init", zap.Error(err))
	}
	catalogCache := cache.NewCatalogCache(rdb, cfg.Redis.TTL, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}

	dailyFine, err := decimal.NewFromString(cfg.Circulation.DailyFine)
	if err != nil {
		log.Fatal("daily fine", zap.Error(err))
	}
	svc := service.NewService(repo, txm, catalogCache, service.NewEnqueuer(producer),
		service.CirculationConfig{
			LoanDurationDays: cfg.Circulation.LoanDurationDays,
			MaxActiveLoans:   cfg.Circulation.MaxActiveLoans,
			DailyFine:        dailyFine,
		}, log)

	notifSvc := service.NewNotificationService(repo, service.NotificationConfig{
		DueSoonDays: cfg.Notifications.DueSoonDays,
		MaxPerRun:   cfg.Notifications.MaxPerRun,
	}, log)
	go notifSvc.RunScheduler(ctx, cfg.Notifications.SchedulerInterval)

	group, err := kafka.NewConsumerGroup(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewConsumerGroup", zap.Error(err))
	}
	go func() {
		if err := kafka.Consume(ctx, group, handler.NewConsumer(svc.RecordEvent, log), kafka.LoanEventsTopic); err != nil {
			log.Error("kafka.Consume", zap.Error(err))
		}
	}()

	h := handler.New(svc, notifSvc, handler.RateConfig{
		CreateLoanRequests: cfg.Circulation.CreateLoanRateRequests,
		CreateLoanWindow:   cfg.Circulation.CreateLoanRateWindow,
	}, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = group.Close(); err != nil {
		log.Error("consumer group close", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer close", zap.Error(err))
	}
	if err = rdb.Close(); err != nil {
		log.Error("redis close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

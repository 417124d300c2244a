package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/valuable-brands/backoffice/internal/app"
	"github.com/valuable-brands/backoffice/internal/awards"
	"github.com/valuable-brands/backoffice/internal/comms"
	"github.com/valuable-brands/backoffice/internal/crm"
	"github.com/valuable-brands/backoffice/internal/finance"
	financehttp "github.com/valuable-brands/backoffice/internal/finance/http"
	"github.com/valuable-brands/backoffice/internal/finance/report"
	jobmetrics "github.com/valuable-brands/backoffice/internal/jobs"
	"github.com/valuable-brands/backoffice/internal/members"
	"github.com/valuable-brands/backoffice/internal/observability"
	"github.com/valuable-brands/backoffice/internal/users"
	"github.com/valuable-brands/backoffice/jobs"
	gotenberg "github.com/valuable-brands/backoffice/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.Default().Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	pdfClient := gotenberg.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	financeCache := finance.NewCache(redisClient, 10*time.Minute)
	financeService, err := finance.NewService(finance.NewStaticDataset(), financeCache)
	if err != nil {
		logger.Error("finance dataset rejected", slog.Any("error", err))
		os.Exit(1)
	}
	reportBuilder := report.NewBuilder(cfg.CompanyName)
	financeHandler := financehttp.NewHandler(logger, financeService, reportBuilder, pdfClient)

	crmRepo := crm.NewMemoryRepository()
	crmService := crm.NewService(crmRepo)
	billingBuilder := crm.NewBillingBuilder(cfg.CompanyName)
	crmHandler := crm.NewHandler(logger, crmService, billingBuilder, pdfClient)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	commsService := comms.NewService(comms.NewMemoryTemplateRepository(), crmService, jobClient)
	commsHandler := comms.NewHandler(logger, commsService)

	awardsHandler := awards.NewHandler(logger, awards.NewService())

	membersService := members.NewService(members.NewPostgresRepository(dbpool))
	membersHandler := members.NewHandler(logger, membersService, cfg.IsDevelopment())

	usersService := users.NewService(users.NewPostgresRepository(dbpool))
	usersHandler := users.NewHandler(logger, usersService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()
	jobMetrics := jobmetrics.NewMetrics(metrics.Registerer())

	// The CRM store is in-process, so the reminder sweep must run here rather
	// than in the worker binary. The scheduler in cmd/worker enqueues it.
	mailer := comms.NewSMTPSender(comms.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)
	reminderJob := jobs.NewReminderScanJob(crmService, mailer, logger, jobMetrics)
	scanWorker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeReminderScan, Handler: reminderJob.Handle},
		},
		Queues: []string{jobs.QueueReminders},
	})
	if err != nil {
		logger.Error("init reminder worker", slog.Any("error", err))
		os.Exit(1)
	}
	go func() {
		if err := scanWorker.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("reminder worker", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		FinanceHandler: financeHandler,
		CRMHandler:     crmHandler,
		CommsHandler:   commsHandler,
		AwardsHandler:  awardsHandler,
		MembersHandler: membersHandler,
		UsersHandler:   usersHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

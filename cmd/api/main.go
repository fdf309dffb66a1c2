package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/config"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/admin"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/conversation"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/identity"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	appHTTP "github.com/cmlabs-hris/checkin-bot/internal/handler/http"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/telegram"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/cron"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/database"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/jwt"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/keylock"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/logger"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/messages"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/rabbitmq"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/sse"
	"github.com/cmlabs-hris/checkin-bot/internal/repository/memory"
	"github.com/cmlabs-hris/checkin-bot/internal/repository/postgresql"
	adminService "github.com/cmlabs-hris/checkin-bot/internal/service/admin"
	attendanceService "github.com/cmlabs-hris/checkin-bot/internal/service/attendance"
	chatService "github.com/cmlabs-hris/checkin-bot/internal/service/chat"
	conversationService "github.com/cmlabs-hris/checkin-bot/internal/service/conversation"
	locationService "github.com/cmlabs-hris/checkin-bot/internal/service/location"
	reportService "github.com/cmlabs-hris/checkin-bot/internal/service/report"
)

const (
	appName    = "checkin-bot"
	appVersion = "v1.0.0"
)

type repositories struct {
	identity   identity.IdentityRepository
	state      conversation.StateRepository
	attendance attendance.AttendanceRepository
	location   location.LocationRepository
	transactor admin.Transactor
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, logger.Config{
		App:     appName,
		Version: appVersion,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos repositories
	switch cfg.Storage.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		repos = repositories{
			identity:   postgresql.NewIdentityRepository(db),
			state:      postgresql.NewStateRepository(db),
			attendance: postgresql.NewAttendanceRepository(db, cfg.App.Timezone),
			location:   postgresql.NewLocationRepository(db, cfg.App.Timezone),
			transactor: postgresql.NewTransactor(db),
		}
	case "memory":
		slog.Warn("using in-memory storage, data is lost on restart")
		repos = repositories{
			identity:   memory.NewIdentityRepository(),
			state:      memory.NewStateRepository(),
			attendance: memory.NewAttendanceRepository(),
			location:   memory.NewLocationRepository(),
		}
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	publishers := attendance.Publishers{sse.NewAttendanceFeed(hub)}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := rabbitmq.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, rabbitmq.NewAttendancePublisher(amqpPublisher, cfg.AMQP.Exchange))
	}

	catalog, err := messages.New(cfg.App.Locales)
	if err != nil {
		return err
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	onboardingSvc := conversationService.NewConversationService(repos.identity, repos.state, conversationService.Config{
		EmployeeIDMinDigits: cfg.Attendance.EmployeeIDMinDigits,
		EmployeeIDMaxDigits: cfg.Attendance.EmployeeIDMaxDigits,
		StateTTL:            cfg.Conversation.StateTTL,
	})
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.location, repos.state, publishers, attendanceService.Config{
		Location:          cfg.App.Timezone,
		GeofenceEnabled:   cfg.Geofence.Enabled,
		Sites:             cfg.Geofence.Sites,
		RadiusMeters:      cfg.Geofence.RadiusMeters,
		AuditRejected:     cfg.Geofence.AuditRejected,
		MaxSampleAge:      cfg.Geofence.MaxSampleAge,
		CheckoutThreshold: cfg.Attendance.CheckoutThreshold,
	})
	locationSvc := locationService.NewLocationService(repos.location, repos.identity, cfg.App.Timezone, nil)
	reportSvc := reportService.NewReportService(repos.attendance, repos.location, cfg.App.Timezone)
	adminSvc := adminService.NewAdminService(repos.identity, repos.state, repos.attendance, repos.location, repos.transactor, JWTService,
		adminService.Credentials{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash})
	dispatcher := chatService.NewDispatcher(repos.identity, onboardingSvc, attendanceSvc, keylock.New(), cfg.Attendance.CheckoutThreshold)

	scheduler := cron.NewScheduler(cfg.App.Timezone)
	if err := cron.NewConversationJobs(onboardingSvc).RegisterJobs(scheduler, cfg.Conversation.CleanupSpec); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(telegram.Config{
			Token:       cfg.Telegram.Token,
			PollTimeout: cfg.Telegram.PollTimeout,
		}, telegram.NewHandler(dispatcher, locationSvc, catalog))
		if err != nil {
			return err
		}
		go bot.Start()
		defer bot.Stop()
	}

	router := appHTTP.NewRouter(log, JWTService, cfg.App.AllowedOrigins, appHTTP.Handlers{
		Webhook:    appHTTP.NewWebhookHandler(dispatcher, locationSvc, catalog),
		Admin:      appHTTP.NewAdminHandler(adminSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Feed:       appHTTP.NewFeedHandler(hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Type, "locales", catalog.Locales())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

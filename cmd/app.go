// Package cmd wires configuration, persistence, services and the HTTP
// server into a runnable application.
package cmd

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"remindly/api"
	apiclient "remindly/api/client"
	apiemailconfig "remindly/api/emailconfig"
	apinotification "remindly/api/notification"
	apireminder "remindly/api/reminder"
	appclient "remindly/application/client"
	appemailconfig "remindly/application/emailconfig"
	appnotification "remindly/application/notification"
	appreminder "remindly/application/reminder"
	"remindly/config"
	"remindly/domain/client"
	"remindly/domain/emailconfig"
	"remindly/domain/notification"
	"remindly/domain/reminder"
	"remindly/domain/shared"
	"remindly/infrastructure/persistence/mocks"
	"remindly/infrastructure/persistence/mysql"
	"remindly/infrastructure/persistence/retry"
	"remindly/pkg/logger"
)

// App is the assembled application: HTTP server plus the background
// outbox worker when running on MySQL.
type App struct {
	cfg    *config.Config
	db     *gorm.DB
	bus    *shared.EventBus
	server *http.Server
	worker *mysql.OutboxWorker
}

type repositories struct {
	clients       client.Repository
	emailConfigs  emailconfig.Repository
	reminders     reminder.Repository
	notifications notification.Repository
	uowFactory    shared.UnitOfWorkFactory
}

// NewApp builds the application for the configured persistence backend.
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type))

	bus := shared.NewEventBus()

	app := &App{cfg: cfg, bus: bus}

	var repos repositories
	switch cfg.Database.Type {
	case "mysql":
		db, err := app.openDatabase()
		if err != nil {
			return nil, err
		}
		app.db = db
		repos = mysqlRepositories(db, bus, cfg)

		worker, err := mysql.NewOutboxWorker(
			mysql.NewOutboxRepository(db),
			&mysql.LoggingOutboxPublisher{},
			cfg.Outbox.PollInterval,
			cfg.Outbox.BatchSize,
			cfg.Outbox.MaxRetries,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create outbox worker: %w", err)
		}
		app.worker = worker
	default:
		logger.Info("using in-memory persistence layer")
		repos = mockRepositories(bus)
	}

	clientService := appclient.NewApplicationService(repos.clients, repos.uowFactory)
	emailConfigService := appemailconfig.NewApplicationService(repos.emailConfigs, repos.reminders, repos.uowFactory)
	reminderService := appreminder.NewApplicationService(repos.reminders, repos.clients, repos.emailConfigs, repos.uowFactory)
	notificationService := appnotification.NewApplicationService(repos.notifications, repos.reminders, repos.clients, repos.uowFactory)

	router := api.NewRouter(cfg, app.db, api.Controllers{
		Client:       apiclient.NewController(clientService),
		EmailConfig:  apiemailconfig.NewController(emailConfigService),
		Reminder:     apireminder.NewController(reminderService),
		Notification: apinotification.NewController(notificationService),
	})

	app.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return app, nil
}

func (a *App) openDatabase() (*gorm.DB, error) {
	db, err := mysql.Open(&a.cfg.Database, logger.NewGormLoggerAdapter(gormLogLevel(a.cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	logger.Info("connected to MySQL")

	if a.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}
	return db, nil
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.Log.Level == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

func mysqlRepositories(db *gorm.DB, bus *shared.EventBus, cfg *config.Config) repositories {
	return repositories{
		clients:       mysql.NewClientRepository(db),
		emailConfigs:  mysql.NewEmailConfigurationRepository(db),
		reminders:     mysql.NewReminderRepository(db),
		notifications: mysql.NewNotificationRepository(db),
		uowFactory:    mysql.NewUnitOfWorkFactory(db, bus, retry.FromAppConfig(cfg)),
	}
}

func mockRepositories(bus *shared.EventBus) repositories {
	return repositories{
		clients:       mocks.NewMockClientRepository(),
		emailConfigs:  mocks.NewMockEmailConfigurationRepository(),
		reminders:     mocks.NewMockReminderRepository(),
		notifications: mocks.NewMockNotificationRepository(),
		uowFactory:    mocks.NewMockUnitOfWorkFactory(bus),
	}
}

// EventBus exposes the in-process bus so callers can subscribe handlers
// before Run.
func (a *App) EventBus() *shared.EventBus {
	return a.bus
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// The outbox worker, when present, runs alongside the server and stops
// with the same context.
func (a *App) Run(ctx context.Context) error {
	if a.worker != nil {
		go func() {
			if err := a.worker.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("outbox worker exited", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	_ = logger.Sync()
	return nil
}

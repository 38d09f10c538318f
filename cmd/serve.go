package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	addAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/add_availability"
	checkCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/check_calendar"
	deleteCalendarSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/delete_calendar_settings"
	getAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_availability"
	getCalendarSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_calendar_settings"
	listCalendarSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/list_calendar_settings"
	removeAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/remove_availability"
	updateCalendarSettingsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_calendar_settings"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/eventbus"
	sellerServiceClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	settingsService "github.com/m04kA/SMC-CalendarService/internal/service/settings"
	addAvailabilityUC "github.com/m04kA/SMC-CalendarService/internal/usecase/add_availability"
	removeAvailabilityUC "github.com/m04kA/SMC-CalendarService/internal/usecase/remove_availability"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/locker"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "config.toml", "Path to the TOML configuration file")
}

// publisher то, что use case'ы публикуют, плюс закрытие соединения
type publisher interface {
	PublishAvailabilityChanged(ctx context.Context, event eventbus.AvailabilityChanged) error
	Close() error
}

// calendarLocker общий интерфейс local и redis локеров
type calendarLocker interface {
	Acquire(ctx context.Context, key string) (locker.Release, error)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from %s", serveConfigPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New()
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка только прокидывает вызовы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	sellerClient := sellerServiceClient.NewClient(
		cfg.SellerService.URL,
		time.Duration(cfg.SellerService.Timeout)*time.Second,
		log.With("sellerservice"),
	)
	log.Info("SellerService client initialized (url=%s, timeout=%ds)", cfg.SellerService.URL, cfg.SellerService.Timeout)

	// Блокировки календарей
	calLocker, closeLocker, err := newLocker(cmd.Context(), cfg.Locker, log)
	if err != nil {
		return err
	}
	defer closeLocker()

	// Публикация изменений
	var pub publisher = eventbus.NoopPublisher{}
	if cfg.Events.Enabled {
		natsCfg := eventbus.DefaultNATSConfig()
		natsCfg.URL = cfg.Events.NATSURL
		natsCfg.SubjectPrefix = cfg.Events.SubjectPrefix
		natsPub, err := eventbus.NewNATSPublisher(natsCfg, log.With("eventbus"))
		if err != nil {
			return fmt.Errorf("connect events: %w", err)
		}
		pub = natsPub
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	recorder := metrics.NewCalendarRecorder(metricsCollector, cfg.Metrics.ServiceName)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(slotRepository, sellerClient, log)
	settingsSvc := settingsService.NewService(settingsRepository, sellerClient, settingsService.Defaults{
		StepMinutes:        cfg.Calendar.StepMinutes,
		MinDurationMinutes: cfg.Calendar.MinDurationMinutes,
		HorizonDays:        cfg.Calendar.HorizonDays,
	}, log)

	// Инициализируем use cases
	addAvailabilityUseCase := addAvailabilityUC.NewUseCase(
		slotRepository,
		settingsRepository,
		sellerClient,
		calLocker,
		pub,
		recorder,
		txMgr,
		addAvailabilityUC.Defaults{
			StepMinutes:        cfg.Calendar.StepMinutes,
			MinDurationMinutes: cfg.Calendar.MinDurationMinutes,
			HorizonDays:        cfg.Calendar.HorizonDays,
		},
		log,
	)
	removeAvailabilityUseCase := removeAvailabilityUC.NewUseCase(
		slotRepository,
		bookingRepository,
		sellerClient,
		calLocker,
		pub,
		recorder,
		txMgr,
		log,
	)

	// Инициализируем handlers
	addAvailability := addAvailabilityHandler.NewHandler(addAvailabilityUseCase, log)
	removeAvailability := removeAvailabilityHandler.NewHandler(removeAvailabilityUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	checkCalendar := checkCalendarHandler.NewHandler(availabilitySvc, log)
	getCalendarSettings := getCalendarSettingsHandler.NewHandler(settingsSvc, log)
	listCalendarSettings := listCalendarSettingsHandler.NewHandler(settingsSvc, log)
	updateCalendarSettings := updateCalendarSettingsHandler.NewHandler(settingsSvc, log)
	deleteCalendarSettings := deleteCalendarSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/calendar-settings",
		getCalendarSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календарь адреса (для менеджеров) ---
	protected.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability",
		addAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability/remove",
		removeAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}/addresses/{addressId}/availability/check",
		checkCalendar.Handle).Methods(http.MethodGet)

	// --- Настройки календаря ---
	protected.HandleFunc("/companies/{companyId}/calendar-settings/all",
		listCalendarSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/calendar-settings",
		updateCalendarSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/companies/{companyId}/calendar-settings",
		deleteCalendarSettings.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// newLocker создает локер по конфигурации и функцию его закрытия
func newLocker(ctx context.Context, cfg config.LockerConfig, log *logger.Logger) (calendarLocker, func(), error) {
	wait := time.Duration(cfg.WaitSeconds) * time.Second

	if cfg.Backend != config.LockerBackendRedis {
		log.Info("Using in-process calendar locks")
		return locker.NewLocal(wait), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}

	log.Info("Using redis calendar locks at %s", cfg.RedisAddr)
	l := locker.NewRedis(client, locker.RedisConfig{
		Lease: time.Duration(cfg.LeaseSeconds) * time.Second,
		Wait:  wait,
	})
	return l, func() {
		if err := client.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}, nil
}

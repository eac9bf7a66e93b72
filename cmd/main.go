package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	checkAvailabilityHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/check_availability"
	composeBookingRequestHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/compose_booking_request"
	getAvailabilityGridHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/get_availability_grid"
	getSnapshotStatusHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/get_snapshot_status"
	importOverridesHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/import_overrides"
	listFacilityHoldsHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/list_facility_holds"
	listPrivateEventsHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/list_private_events"
	refreshSnapshotHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/refresh_snapshot"
	resetOverridesHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/reset_overrides"
	setFacilityHoldHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/set_facility_hold"
	setPrivateEventHandler "github.com/aceboy1016/ishihara-booking/internal/api/handlers/set_private_event"
	"github.com/aceboy1016/ishihara-booking/internal/api/middleware"
	"github.com/aceboy1016/ishihara-booking/internal/config"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
	overridesRepo "github.com/aceboy1016/ishihara-booking/internal/infra/storage/overrides"
	snapshotStore "github.com/aceboy1016/ishihara-booking/internal/infra/storage/snapshot"
	"github.com/aceboy1016/ishihara-booking/internal/integrations/calendarsource"
	"github.com/aceboy1016/ishihara-booking/internal/refresher"
	overridesService "github.com/aceboy1016/ishihara-booking/internal/service/overrides"
	snapshotService "github.com/aceboy1016/ishihara-booking/internal/service/snapshot"
	checkAvailabilityUC "github.com/aceboy1016/ishihara-booking/internal/usecase/check_availability"
	composeBookingRequestUC "github.com/aceboy1016/ishihara-booking/internal/usecase/compose_booking_request"
	getAvailabilityGridUC "github.com/aceboy1016/ishihara-booking/internal/usecase/get_availability_grid"
	"github.com/aceboy1016/ishihara-booking/pkg/dbmetrics"
	"github.com/aceboy1016/ishihara-booking/pkg/logger"
	"github.com/aceboy1016/ishihara-booking/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config.toml")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ishihara-booking...")
	log.Info("Configuration loaded from %s", *configPath)

	rules, err := cfg.BusinessRules()
	if err != nil {
		log.Fatal("Invalid business rules: %v", err)
	}
	feeds, err := cfg.Feeds()
	if err != nil {
		log.Fatal("Invalid calendar feeds: %v", err)
	}
	log.Info("Business rules: timezone=%s, locations=%d, holidays=%d, feeds=%d",
		rules.Timezone, len(rules.Locations), rules.Holidays.Len(), len(feeds))

	// Метрики собираются всегда, наружу отдаются только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозиторий ручных настроек (с метриками или без)
	var overrideRepository *overridesRepo.Repository
	if cfg.Metrics.Enabled {
		if err := metricsCollector.RegisterDBStats(db, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register connection pool metrics: %v", err)
		}
		overrideRepository = overridesRepo.NewRepository(dbmetrics.Wrap(db, metricsCollector))
		log.Info("Database metrics collection started")
	} else {
		overrideRepository = overridesRepo.NewRepository(db)
	}

	// Движок доступности
	availabilityEngine, err := engine.New(rules)
	if err != nil {
		log.Fatal("Failed to initialize availability engine: %v", err)
	}

	// Источник календарей и снимок
	icsClient := calendarsource.NewClient(time.Duration(cfg.Calendar.Timeout)*time.Second, log)
	source, err := calendarsource.NewSource(icsClient, feeds, rules.Locations, rules.Timezone, cfg.Calendar.WindowDays, log)
	if err != nil {
		log.Fatal("Failed to initialize calendar source: %v", err)
	}
	snapshots := snapshotStore.NewHolder()

	// Инициализируем сервисы
	snapshotSvc := snapshotService.NewService(source, snapshots, metricsCollector, log)
	overridesSvc := overridesService.NewService(overrideRepository, snapshots, availabilityEngine, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		availabilityEngine,
		snapshots,
		overrideRepository,
		metricsCollector,
		log,
	)
	getAvailabilityGridUseCase := getAvailabilityGridUC.NewUseCase(
		availabilityEngine,
		snapshots,
		overrideRepository,
		log,
	)
	composeBookingRequestUseCase := composeBookingRequestUC.NewUseCase(
		availabilityEngine,
		snapshots,
		overrideRepository,
		metricsCollector,
		cfg.Trainer.Name,
		log,
	)

	// Периодическое обновление снимка; первое обновление выполняется сразу
	snapshotRefresher, err := refresher.New(
		snapshotSvc,
		cfg.Calendar.Refresh,
		rules.Timezone,
		time.Duration(cfg.Calendar.RefreshTimeout)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize snapshot refresher: %v", err)
	}
	snapshotRefresher.Start()

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailabilityGrid := getAvailabilityGridHandler.NewHandler(getAvailabilityGridUseCase, rules.Timezone, log)
	composeBookingRequest := composeBookingRequestHandler.NewHandler(composeBookingRequestUseCase, log)
	listPrivateEvents := listPrivateEventsHandler.NewHandler(overridesSvc, log)
	setPrivateEvent := setPrivateEventHandler.NewHandler(overridesSvc, log)
	listFacilityHolds := listFacilityHoldsHandler.NewHandler(overridesSvc, log)
	setFacilityHold := setFacilityHoldHandler.NewHandler(overridesSvc, log)
	importOverrides := importOverridesHandler.NewHandler(overridesSvc, log)
	resetOverrides := resetOverridesHandler.NewHandler(overridesSvc, log)
	getSnapshotStatus := getSnapshotStatusHandler.NewHandler(snapshotSvc, log)
	refreshSnapshot := refreshSnapshotHandler.NewHandler(snapshotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogging(log))
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	api.HandleFunc("/locations/{locationId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/availability-grid", getAvailabilityGrid.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-requests", composeBookingRequest.Handle).Methods(http.MethodPost)

	// --- Ручные настройки администратора ---
	api.HandleFunc("/overrides/private-events", listPrivateEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/overrides/private-events/{eventId}", setPrivateEvent.Handle).Methods(http.MethodPut)
	api.HandleFunc("/overrides/facility-holds", listFacilityHolds.Handle).Methods(http.MethodGet)
	api.HandleFunc("/overrides/facility-holds/{eventId}", setFacilityHold.Handle).Methods(http.MethodPut)
	api.HandleFunc("/overrides/{kind}", importOverrides.Handle).Methods(http.MethodPut)
	api.HandleFunc("/overrides/{kind}", resetOverrides.Handle).Methods(http.MethodDelete)

	// --- Снимок календарей ---
	api.HandleFunc("/snapshot", getSnapshotStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/snapshot/refresh", refreshSnapshot.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	snapshotRefresher.Stop(shutdownCtx)
	log.Info("Snapshot refresher stopped")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

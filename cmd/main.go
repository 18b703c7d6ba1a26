package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getNextSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_next_slots"
	getParticipantBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_participant_bookings"
	getSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_slots"
	rescheduleBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/resource"
	eventsClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	slotsService "github.com/m04kA/SMC-ScheduleService/internal/service/slots"
	checkAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	getNextSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_next_slots"
	getSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем клиент стока событий (если включен)
	var events *eventsClient.Client
	if cfg.Events.Enabled {
		events = eventsClient.NewClient(
			cfg.Events.URL,
			time.Duration(cfg.Events.Timeout)*time.Second,
			log,
		)
		log.Info("Events client initialized (url=%s timeout=%ds)", cfg.Events.URL, cfg.Events.Timeout)
	}

	// События опциональны: при выключенном стоке публикация пропускается
	var (
		bookingEvents    bookingsService.EventPublisher
		createEvents     createBookingUC.EventPublisher
		rescheduleEvents rescheduleBookingUC.EventPublisher
	)
	if events != nil {
		bookingEvents = events
		createEvents = events
		rescheduleEvents = events
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		resourceRepository *resourceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	resourcesSvc := resourcesService.NewService(resourceRepository, log)
	availabilitySvc := availabilityService.NewService(bookingRepository, log)
	slotsSvc := slotsService.NewService(bookingRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		resourcesSvc,
		bookingEvents,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resourcesSvc,
		availabilitySvc,
		slotsSvc,
		createEvents,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		resourcesSvc,
		availabilitySvc,
		rescheduleEvents,
		txMgr,
		log,
	)
	getSlotsUseCase := getSlotsUC.NewUseCase(resourcesSvc, slotsSvc, log)
	getNextSlotsUseCase := getNextSlotsUC.NewUseCase(resourcesSvc, slotsSvc, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(resourcesSvc, availabilitySvc, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getNextSlots := getNextSlotsHandler.NewHandler(getNextSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getParticipantBookings := getParticipantBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты ресурса на дату
	api.HandleFunc("/resources/{resourceId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Ближайшие свободные слоты ресурса
	api.HandleFunc("/resources/{resourceId}/next-slots", getNextSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности произвольного интервала
	api.HandleFunc("/resources/{resourceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования или вступление в групповое
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение бронирования (только администратор)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования или собственного участия
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// История бронирований участника
	protected.HandleFunc("/participants/{participantId}/bookings", getParticipantBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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
}

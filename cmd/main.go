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

	cancelBookingHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/create_booking"
	createTurfHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/create_turf"
	getAvailableSlotsHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/get_owner_bookings"
	getTurfHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/get_turf"
	getUserBookingsHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/get_user_bookings"
	listCitiesHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/list_cities"
	listTurfsHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/list_turfs"
	toggleSportHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/toggle_sport"
	toggleTurfHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/toggle_turf"
	updateSportHoursHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/update_sport_hours"
	updateSportPricingHandler "github.com/m04kA/Turf-BookingService/internal/api/handlers/update_sport_pricing"
	"github.com/m04kA/Turf-BookingService/internal/api/middleware"
	"github.com/m04kA/Turf-BookingService/internal/config"
	bookingRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/Turf-BookingService/internal/infra/storage/turf"
	bookingsService "github.com/m04kA/Turf-BookingService/internal/service/bookings"
	turfsService "github.com/m04kA/Turf-BookingService/internal/service/turfs"
	createBookingUC "github.com/m04kA/Turf-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/Turf-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/Turf-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Turf-BookingService/pkg/logger"
	"github.com/m04kA/Turf-BookingService/pkg/metrics"
	"github.com/m04kA/Turf-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Turf-BookingService/pkg/txmanager"
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

	log.Info("Starting Turf-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		turfRepository    *turfRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		turfRepository = turfRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		turfRepository = turfRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		turfRepository,
		log,
	)
	turfSvc := turfsService.NewService(
		turfRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		turfRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		turfRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	createTurf := createTurfHandler.NewHandler(turfSvc, log)
	getTurf := getTurfHandler.NewHandler(turfSvc, log)
	listTurfs := listTurfsHandler.NewHandler(turfSvc, log)
	listCities := listCitiesHandler.NewHandler(turfSvc, log)
	toggleTurf := toggleTurfHandler.NewHandler(turfSvc, log)
	toggleSport := toggleSportHandler.NewHandler(turfSvc, log)
	updateSportHours := updateSportHoursHandler.NewHandler(turfSvc, log)
	updateSportPricing := updateSportPricingHandler.NewHandler(turfSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Каталог турфов
	api.HandleFunc("/turfs", listTurfs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/turfs/{turfId}", getTurf.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cities", listCities.Handle).Methods(http.MethodGet)

	// Доступные слоты для бронирования
	api.HandleFunc("/turfs/{turfId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление турфами (для владельцев) ---
	// Бронирования всех турфов владельца
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// Создание турфа
	protected.HandleFunc("/turfs", createTurf.Handle).Methods(http.MethodPost)

	// Включение/выключение турфа
	protected.HandleFunc("/turfs/{turfId}/active", toggleTurf.Handle).Methods(http.MethodPatch)

	// Управление видом спорта: часы работы, тарифы, доступность
	protected.HandleFunc("/turfs/{turfId}/sports/{sportName}/hours", updateSportHours.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turfs/{turfId}/sports/{sportName}/pricing", updateSportPricing.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turfs/{turfId}/sports/{sportName}/availability", toggleSport.Handle).Methods(http.MethodPatch)

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

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

	cancelAppointmentHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/create_appointment"
	createScheduleWindowHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/create_schedule_window"
	deleteScheduleWindowHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/delete_schedule_window"
	findAvailabilityHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/find_availability"
	getAppointmentHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/get_client_appointments"
	getSalonAppointmentsHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/get_salon_appointments"
	listScheduleWindowsHandler "github.com/m04kA/SBS-SalonService/internal/api/handlers/list_schedule_windows"
	"github.com/m04kA/SBS-SalonService/internal/api/middleware"
	"github.com/m04kA/SBS-SalonService/internal/config"
	appointmentRepo "github.com/m04kA/SBS-SalonService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SBS-SalonService/internal/infra/storage/schedule"
	clientServiceClient "github.com/m04kA/SBS-SalonService/internal/integrations/clientservice"
	salonServiceClient "github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
	appointmentsService "github.com/m04kA/SBS-SalonService/internal/service/appointments"
	scheduleService "github.com/m04kA/SBS-SalonService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SBS-SalonService/internal/usecase/create_appointment"
	findAvailabilityUC "github.com/m04kA/SBS-SalonService/internal/usecase/find_availability"
	"github.com/m04kA/SBS-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SBS-SalonService/pkg/logger"
	"github.com/m04kA/SBS-SalonService/pkg/metrics"
	"github.com/m04kA/SBS-SalonService/pkg/rediscache"
	"github.com/m04kA/SBS-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SBS-SalonService/pkg/txmanager"
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

	log.Info("Starting SBS-SalonService...")
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

	// Инициализируем интеграционных клиентов
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (SalonService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Подключаем кэш справочных данных (если включен)
	var refCache *rediscache.Cache
	if cfg.Redis.Enabled {
		refCache, err = rediscache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer refCache.Close()

		salonClient = salonClient.WithCache(refCache)
		log.Info("Reference data cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		salonClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	findAvailabilityUseCase := findAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		salonClient,
		findAvailabilityUC.Config{
			SlotDurationMinutes: cfg.Scheduling.SlotDurationMinutes,
			MaxLookaheadDays:    cfg.Scheduling.MaxLookaheadDays,
			MaxQualifyingDays:   cfg.Scheduling.MaxQualifyingDays,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		salonClient,
		clientClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	findAvailability := findAvailabilityHandler.NewHandler(findAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createScheduleWindow := createScheduleWindowHandler.NewHandler(scheduleSvc, log)
	listScheduleWindows := listScheduleWindowsHandler.NewHandler(scheduleSvc, log)
	deleteScheduleWindow := deleteScheduleWindowHandler.NewHandler(scheduleSvc, log)

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

	public := api.PathPrefix("").Subrouter()

	// Публичные эндпоинты доступны без X-User-ID, поэтому ограничиваем их по IP
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		public.Use(rateLimiter.Limit())
		log.Info("Rate limiting enabled for public routes (rps=%.1f, burst=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Поиск доступных слотов для записи
	public.HandleFunc("/salons/{salonId}/availability",
		findAvailability.Handle).Methods(http.MethodGet)

	// Окна рабочих часов салона
	public.HandleFunc("/salons/{salonId}/schedule-windows",
		listScheduleWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список записей салона
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)

	// Создание окна рабочих часов
	protected.HandleFunc("/salons/{salonId}/schedule-windows", createScheduleWindow.Handle).Methods(http.MethodPost)

	// Удаление окна рабочих часов
	protected.HandleFunc("/schedule-windows/{windowId}", deleteScheduleWindow.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновую чистку rate limiter
	if rateLimiter != nil {
		rateLimiter.Close()
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

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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/auth"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	catalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/catalog"
	clientsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/clients"
	closuresHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/closures"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	getAllAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_all_appointments"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getDaysStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_days_status"
	getFirstAvailableHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_first_available"
	getMyAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_my_appointments"
	getSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_settings"
	manageAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/manage_appointments"
	notificationPreferencesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/notification_preferences"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_appointment"
	updateSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	settingsCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/settings"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	closureRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/closure"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	settingsService "github.com/m04kA/SMC-SalonBooking/internal/service/settings"
	usersService "github.com/m04kA/SMC-SalonBooking/internal/service/users"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const (
	dbStatsInterval      = 15 * time.Second
	rateLimitVisitorTTL  = 10 * time.Minute
	rateLimitCleanupTick = time.Minute
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Фоновые задачи (метрики пула, очистка лимитера) останавливаются закрытием канала
	stopCh := make(chan struct{})

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if metricsCollector != nil {
		go metricsCollector.CollectDBStats(db, dbStatsInterval, stopCh)
		log.Info("Database metrics collection started")
	}

	// Кэш настроек в Redis (опционален)
	cache := settingsCache.NewCache(nil, 0)
	if cfg.Redis.Enabled {
		if client := settingsCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); client != nil {
			defer client.Close()
			cache = settingsCache.NewCache(client, time.Duration(cfg.Redis.SettingsTTL)*time.Second)
			log.Info("Settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SettingsTTL)
		} else {
			log.Warn("Redis %s is unavailable, settings cache disabled", cfg.Redis.Addr)
		}
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	closureRepository := closureRepo.NewRepository(db)
	settingsRepository := settingsRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Аутентификация
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cache, log)
	availabilitySvc := availabilityService.NewService(
		appointmentRepository,
		catalogRepository,
		closureRepository,
		settingsSvc,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, closureRepository, log)
	usersSvc := usersService.NewService(userRepository, hasher, tokens, cfg.Auth.AutoApprove, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		userRepository,
		availabilitySvc,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		availabilitySvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	authH := authHandler.NewHandler(usersSvc, log)
	catalogH := catalogHandler.NewHandler(catalogSvc, log)
	closuresH := closuresHandler.NewHandler(catalogSvc, log)
	clientsH := clientsHandler.NewHandler(usersSvc, log)
	notificationPreferencesH := notificationPreferencesHandler.NewHandler(usersSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	getDaysStatus := getDaysStatusHandler.NewHandler(availabilitySvc, log)
	getFirstAvailable := getFirstAvailableHandler.NewHandler(availabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAllAppointments := getAllAppointmentsHandler.NewHandler(appointmentsSvc, log)
	manageAppointments := manageAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Регистрация и вход (с ограничением частоты) ---
	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimitVisitorTTL)
		go limiter.Run(rateLimitCleanupTick, stopCh)
		authRoutes.Use(limiter.Middleware)
		log.Info("Rate limit enabled for /api/auth (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	authRoutes.HandleFunc("/register", authH.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authH.Login).Methods(http.MethodPost)

	// --- Справочники ---
	api.HandleFunc("/services", catalogH.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/staff", catalogH.ListStaff).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/closures", closuresH.List).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/days-status", getDaysStatus.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/first", getFirstAvailable.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens))

	protected.HandleFunc("/auth/me", authH.Me).Methods(http.MethodGet)

	// --- Записи клиента ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/my", getMyAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Настройки уведомлений ---
	protected.HandleFunc("/user/notification-preferences", notificationPreferencesH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/user/notification-preferences", notificationPreferencesH.Update).Methods(http.MethodPut)

	// ============================================================
	// ADMIN ROUTES (Bearer токен администратора)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Admin)

	// --- Записи ---
	admin.HandleFunc("/appointments", getAllAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/manual", createAppointment.HandleManual).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{appointmentId}/confirm", manageAppointments.Confirm).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}", rescheduleAppointment.HandleAdmin).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}", manageAppointments.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments-cancelled/all", manageAppointments.DeleteCancelled).Methods(http.MethodDelete)

	// --- Клиенты ---
	admin.HandleFunc("/clients", clientsH.List).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{userId}/approve", clientsH.Approve).Methods(http.MethodPatch)
	admin.HandleFunc("/clients/{userId}/revoke", clientsH.Revoke).Methods(http.MethodPatch)

	// --- Услуги и мастера ---
	admin.HandleFunc("/services", catalogH.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", catalogH.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", catalogH.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/staff", catalogH.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}", catalogH.UpdateStaff).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}", catalogH.DeleteStaff).Methods(http.MethodDelete)

	// --- Настройки и закрытия ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/closures", closuresH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/closures/{closureId}", closuresH.Delete).Methods(http.MethodDelete)

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
	close(stopCh)

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

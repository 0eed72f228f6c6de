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

	cancelReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/cancel_reservation"
	confirmPaymentHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/confirm_payment"
	createReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/health"
	listReservationsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/list_reservations"
	listSlotsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/list_slots"
	listStationsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/list_stations"
	loginHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/logout"
	signupHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/signup"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChargingService/internal/config"
	"github.com/m04kA/SMC-ChargingService/internal/infra/revocation"
	paymentRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/station"
	userRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/qrcode"
	authService "github.com/m04kA/SMC-ChargingService/internal/service/auth"
	availabilityService "github.com/m04kA/SMC-ChargingService/internal/service/availability"
	carpoolService "github.com/m04kA/SMC-ChargingService/internal/service/carpool"
	notificationsService "github.com/m04kA/SMC-ChargingService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-ChargingService/internal/service/reservations"
	stationsService "github.com/m04kA/SMC-ChargingService/internal/service/stations"
	cancelReservationUC "github.com/m04kA/SMC-ChargingService/internal/usecase/cancel_reservation"
	confirmPaymentUC "github.com/m04kA/SMC-ChargingService/internal/usecase/confirm_payment"
	createReservationUC "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/logger"
	"github.com/m04kA/SMC-ChargingService/pkg/metrics"
	"github.com/m04kA/SMC-ChargingService/pkg/txmanager"
)

// EventPublisher публикатор событий с закрытием соединения
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.ReservationEvent) error
	Close() error
}

// RevocationStore хранилище отозванных токенов
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Mailer отправщик писем
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

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

	log.Info("Starting SMC-ChargingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking time zone: %v", err)
	}

	// Инициализируем метрики (если включены); nil отключает запись во всех компонентах
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	stationRepository := stationRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Хранилище отозванных токенов
	var revocations RevocationStore = revocation.NoopStore{}
	if cfg.Redis.Enabled {
		redisClient, err := revocation.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		revocations = revocation.NewRedisStore(redisClient, cfg.Redis.Prefix)
		log.Info("Token revocation store connected (redis=%s)", cfg.Redis.Addr)
	}

	// Публикация доменных событий
	var publisher EventPublisher = eventbus.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := eventbus.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Почта: SMTP или запись писем в лог
	var mailSender Mailer = mailer.NewLogSender(log)
	if cfg.Mail.Enabled {
		mailSender = mailer.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
		log.Info("SMTP mailer configured (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		log.Warn("Mail disabled, emails are written to the log")
	}

	qrEncoder := qrcode.NewEncoder(cfg.Booking.QRSize)

	// Инициализируем сервисы
	authSvc := authService.NewService(
		userRepository,
		revocations,
		txMgr,
		log,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL(),
		cfg.Auth.BcryptCost,
	)
	stationSvc := stationsService.NewService(stationRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, qrEncoder, location, log)
	availabilitySvc := availabilityService.NewService(reservationRepository)
	carpoolSvc := carpoolService.NewService(reservationRepository)
	notificationSvc := notificationsService.NewService(mailSender, location)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(createReservationUC.Deps{
		SlotRepo:        stationRepository,
		UserRepo:        userRepository,
		ReservationRepo: reservationRepository,
		PaymentRepo:     paymentRepository,
		Availability:    availabilitySvc,
		Carpool:         carpoolSvc,
		Notifier:        notificationSvc,
		QREncoder:       qrEncoder,
		Publisher:       publisher,
		Metrics:         metricsCollector,
		TxManager:       txMgr,
		Logger:          log,
	}, location, cfg.Booking.PricePerHour)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		stationRepository,
		notificationSvc,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		reservationRepository,
		paymentRepository,
		publisher,
		metricsCollector,
		txMgr,
		log,
		cfg.Booking.PricePerHour,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(db, log)
	signup := signupHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)
	listStations := listStationsHandler.NewHandler(stationSvc, log)
	listSlots := listSlotsHandler.NewHandler(stationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, stopCh)
		authRoutes.Use(limiter.Middleware(log))
		log.Info("Rate limit on /auth enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	authRoutes.HandleFunc("/signup", signup.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)
	authRoutes.Handle("/logout", middleware.Auth(authSvc, log)(http.HandlerFunc(logout.Handle))).Methods(http.MethodPost)

	// Список станций со слотами
	api.HandleFunc("/stations", listStations.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// Слоты для формы бронирования
	protected.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Симуляция оплаты
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/payment", confirmPayment.Handle).Methods(http.MethodPost)

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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор статистики пула и очистку лимитера
	close(stopCh)

	log.Info("Server stopped gracefully")
}

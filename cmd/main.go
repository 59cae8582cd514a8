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
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	addAddressHandler "github.com/vgcman16/CleanMate/internal/api/handlers/add_address"
	addPaymentMethodHandler "github.com/vgcman16/CleanMate/internal/api/handlers/add_payment_method"
	cancelBookingHandler "github.com/vgcman16/CleanMate/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/vgcman16/CleanMate/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/vgcman16/CleanMate/internal/api/handlers/create_booking"
	createPaymentIntentHandler "github.com/vgcman16/CleanMate/internal/api/handlers/create_payment_intent"
	createServiceHandler "github.com/vgcman16/CleanMate/internal/api/handlers/create_service"
	getAvailableSlotsHandler "github.com/vgcman16/CleanMate/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/vgcman16/CleanMate/internal/api/handlers/get_booking"
	getProfileHandler "github.com/vgcman16/CleanMate/internal/api/handlers/get_profile"
	getServiceHandler "github.com/vgcman16/CleanMate/internal/api/handlers/get_service"
	getUserBookingsHandler "github.com/vgcman16/CleanMate/internal/api/handlers/get_user_bookings"
	listPaymentMethodsHandler "github.com/vgcman16/CleanMate/internal/api/handlers/list_payment_methods"
	listServicesHandler "github.com/vgcman16/CleanMate/internal/api/handlers/list_services"
	resetPasswordHandler "github.com/vgcman16/CleanMate/internal/api/handlers/reset_password"
	setDefaultAddressHandler "github.com/vgcman16/CleanMate/internal/api/handlers/set_default_address"
	signInHandler "github.com/vgcman16/CleanMate/internal/api/handlers/sign_in"
	signOutHandler "github.com/vgcman16/CleanMate/internal/api/handlers/sign_out"
	signUpHandler "github.com/vgcman16/CleanMate/internal/api/handlers/sign_up"
	stripeWebhookHandler "github.com/vgcman16/CleanMate/internal/api/handlers/stripe_webhook"
	updateBookingStatusHandler "github.com/vgcman16/CleanMate/internal/api/handlers/update_booking_status"
	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/config"
	"github.com/vgcman16/CleanMate/internal/domain"
	catalogStore "github.com/vgcman16/CleanMate/internal/infra/docstore/catalog"
	profileStore "github.com/vgcman16/CleanMate/internal/infra/docstore/profile"
	"github.com/vgcman16/CleanMate/internal/infra/events"
	"github.com/vgcman16/CleanMate/internal/infra/idempotency"
	bookingRepo "github.com/vgcman16/CleanMate/internal/infra/storage/booking"
	"github.com/vgcman16/CleanMate/internal/infra/storage/migrations"
	paymentIntentRepo "github.com/vgcman16/CleanMate/internal/infra/storage/paymentintent"
	"github.com/vgcman16/CleanMate/internal/integrations/firebaseauth"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	bookingsService "github.com/vgcman16/CleanMate/internal/service/bookings"
	catalogService "github.com/vgcman16/CleanMate/internal/service/catalog"
	paymentsService "github.com/vgcman16/CleanMate/internal/service/payments"
	sessionService "github.com/vgcman16/CleanMate/internal/service/session"
	confirmPaymentUC "github.com/vgcman16/CleanMate/internal/usecase/confirm_payment"
	createBookingUC "github.com/vgcman16/CleanMate/internal/usecase/create_booking"
	createPaymentIntentUC "github.com/vgcman16/CleanMate/internal/usecase/create_payment_intent"
	getAvailableSlotsUC "github.com/vgcman16/CleanMate/internal/usecase/get_available_slots"
	reconcilePaymentUC "github.com/vgcman16/CleanMate/internal/usecase/reconcile_payment"
	"github.com/vgcman16/CleanMate/pkg/dbmetrics"
	"github.com/vgcman16/CleanMate/pkg/logger"
	"github.com/vgcman16/CleanMate/pkg/metrics"
	"github.com/vgcman16/CleanMate/pkg/txmanager"
)

// eventPublisher издатель событий бронирований (RabbitMQ или заглушка)
type eventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CLEANMATE_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting CleanMate...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}

	// Метрики собираются всегда, endpoint публикуется только если включен
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	// ============================================================
	// POSTGRES (бронирования, платежные намерения)
	// ============================================================

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	intentRepository := paymentIntentRepo.NewRepository(wrappedDB)

	// ============================================================
	// MONGO (каталог услуг, профили)
	// ============================================================

	connectCtx, cancelConnect := context.WithTimeout(context.Background(),
		time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err == nil {
		err = mongoClient.Ping(connectCtx, readpref.Primary())
	}
	cancelConnect()
	if err != nil {
		log.Fatal("Failed to connect to mongo: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn("Failed to disconnect from mongo: %v", err)
		}
	}()
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	log.Info("Successfully connected to mongo (db=%s)", cfg.Mongo.Database)

	// ============================================================
	// REDIS (дедупликация webhook событий)
	// ============================================================

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	// Redis не обязателен: при недоступности события обрабатываются без дедупликации
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis is unavailable (addr=%s): %v", cfg.Redis.Addr, err)
	}
	eventDedup := idempotency.NewStore(redisClient, "cleanmate:webhook",
		time.Duration(cfg.Redis.IdempotencyTTL)*time.Hour)

	// ============================================================
	// RABBITMQ (события бронирований)
	// ============================================================

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// ============================================================
	// ВНЕШНИЕ СЕРВИСЫ
	// ============================================================

	authClient, err := firebaseauth.NewClient(context.Background(), firebaseauth.Config{
		ProjectID:       cfg.Firebase.ProjectID,
		CredentialsFile: cfg.Firebase.CredentialsFile,
		WebAPIKey:       cfg.Firebase.WebAPIKey,
		Timeout:         time.Duration(cfg.Firebase.RequestTimeout) * time.Second,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize auth provider: %v", err)
	}
	authClient.WithMetrics(metricsCollector)

	stripeTimeout := time.Duration(cfg.Stripe.RequestTimeout) * time.Second
	paymentClient := stripe.NewClient(stripe.Config{
		SecretKey:         cfg.Stripe.SecretKey,
		WebhookSecret:     cfg.Stripe.WebhookSecret,
		Timeout:           stripeTimeout,
		MaxNetworkRetries: int64(cfg.Stripe.Retries),
	}, log).WithMetrics(metricsCollector)
	log.Info("Integration clients initialized (firebase project=%s, stripe timeout=%s)",
		cfg.Firebase.ProjectID, stripeTimeout)

	// ============================================================
	// СЕРВИСЫ И USE CASES
	// ============================================================

	catalogSvc := catalogService.NewService(catalogStore.NewStore(mongoDB), log)
	sessionSvc := sessionService.NewService(authClient, profileStore.NewStore(mongoDB), log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, publisher, metricsCollector, log)
	paymentsSvc := paymentsService.NewService(paymentClient, sessionSvc, log)

	unsubscribeSessions := sessionSvc.Subscribe(func(c sessionService.Change) {
		log.Debug("Session change: type=%s, user_id=%s", c.Type, c.UserID)
	})
	defer unsubscribeSessions()

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		sessionSvc,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalogSvc, log)

	reconcilePaymentUseCase := reconcilePaymentUC.NewUseCase(
		intentRepository,
		bookingRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	createPaymentIntentUseCase := createPaymentIntentUC.NewUseCase(
		bookingRepository,
		intentRepository,
		paymentClient,
		sessionSvc,
		stripeTimeout,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		intentRepository,
		bookingRepository,
		paymentClient,
		reconcilePaymentUseCase,
		stripeTimeout,
		log,
	)

	// Живой снимок каталога
	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()
	go catalogSvc.Listen(listenCtx)

	// ============================================================
	// HANDLERS
	// ============================================================

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)

	signUp := signUpHandler.NewHandler(sessionSvc, log)
	signIn := signInHandler.NewHandler(sessionSvc, log)
	signOut := signOutHandler.NewHandler(sessionSvc, log)
	resetPassword := resetPasswordHandler.NewHandler(sessionSvc, log)
	getProfile := getProfileHandler.NewHandler(sessionSvc, log)
	addAddress := addAddressHandler.NewHandler(sessionSvc, log)
	setDefaultAddress := setDefaultAddressHandler.NewHandler(sessionSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	createPaymentIntent := createPaymentIntentHandler.NewHandler(createPaymentIntentUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	listPaymentMethods := listPaymentMethodsHandler.NewHandler(paymentsSvc, log)
	addPaymentMethod := addPaymentMethodHandler.NewHandler(paymentsSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(paymentClient, reconcilePaymentUseCase, eventDedup, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	// Вход, регистрация и сброс пароля ограничены по частоте запросов с одного IP
	limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).
		WithTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		log.Fatal("Failed to configure rate limiter: %v", err)
	}
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(limiter.Middleware(log))
	authRoutes.HandleFunc("/sign-up", signUp.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/sign-in", signIn.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/reset-password", resetPassword.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <ID token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessionSvc, log))

	// --- Сессия и профиль ---
	protected.HandleFunc("/auth/sign-out", signOut.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/profile", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/profile/addresses", addAddress.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/profile/addresses/{addressId}/default", setDefaultAddress.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payment-intent", createPaymentIntent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payment-intents/{intentId}/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payment-methods", listPaymentMethods.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payment-methods", addPaymentMethod.Handle).Methods(http.MethodPost)

	// ============================================================
	// INTERNAL ROUTES (X-Internal-Token)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalToken(cfg.Server.InternalToken, log))
	internal.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	internal.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)

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
	stopListening()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminBookingsHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/admin_bookings"
	adminCatalogHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/admin_catalog"
	authSessionHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/auth_session"
	cancelBookingHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_booking"
	getMonthCalendarHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_month_calendar"
	getRosterHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_roster"
	getUserBookingsHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_user_bookings"
	getWeekScheduleHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/get_week_schedule"
	healthHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/health"
	listClassesHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/list_classes"
	payBookingHandler "github.com/m04kA/StudioBookingService/internal/api/handlers/pay_booking"
	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	"github.com/m04kA/StudioBookingService/internal/config"
	"github.com/m04kA/StudioBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/booking"
	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	"github.com/m04kA/StudioBookingService/internal/infra/storage/schema"
	slotRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/user"
	"github.com/m04kA/StudioBookingService/internal/integrations/africastalking"
	"github.com/m04kA/StudioBookingService/internal/integrations/emailjs"
	"github.com/m04kA/StudioBookingService/internal/integrations/mpesa"
	"github.com/m04kA/StudioBookingService/internal/integrations/stripe"
	"github.com/m04kA/StudioBookingService/internal/notifications"
	authService "github.com/m04kA/StudioBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/StudioBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/StudioBookingService/internal/service/catalog"
	paymentsService "github.com/m04kA/StudioBookingService/internal/service/payments"
	slotsService "github.com/m04kA/StudioBookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/StudioBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/StudioBookingService/internal/usecase/get_available_slots"
	getMonthCalendarUC "github.com/m04kA/StudioBookingService/internal/usecase/get_month_calendar"
	getWeekScheduleUC "github.com/m04kA/StudioBookingService/internal/usecase/get_week_schedule"
	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/StudioBookingService/pkg/logger"
	"github.com/m04kA/StudioBookingService/pkg/metrics"
	"github.com/m04kA/StudioBookingService/pkg/psqlbuilder"
	"github.com/m04kA/StudioBookingService/pkg/simpletxmanager"
	"github.com/m04kA/StudioBookingService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level,
		logger.WithFormat(cfg.Logs.Format),
		logger.WithService(cfg.Metrics.ServiceName),
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting StudioBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Warn("Timezone fallback to local: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (driver=%s)", cfg.Database.Driver)

	if cfg.Database.Driver == "sqlite3" {
		if err := schema.ApplySQLite(context.Background(), db); err != nil {
			log.Fatal("Failed to apply sqlite schema: %v", err)
		}
		log.Info("SQLite schema applied (path=%s)", cfg.Database.Path)
	}

	qb := psqlbuilder.ForDriver(cfg.Database.Driver)

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    createBookingUC.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor, qb)
	classRepository := classRepo.NewRepository(executor, qb)
	slotRepository := slotRepo.NewRepository(executor, qb)
	userRepository := userRepo.NewRepository(executor, qb)

	// Redis: кэш слотов и отозванные сессии. Без Redis всё хранится в памяти процесса.
	var (
		redisClient *redis.Client
		slotCache   slotsService.SlotCache
		denylist    authService.Denylist
	)
	slotTTL := time.Duration(cfg.Redis.SlotTTL) * time.Second
	if cfg.Redis.Enabled {
		redisClient = cache.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(pingCtx, redisClient); err != nil {
			log.Warn("Redis is unavailable, cache will be degraded: %v", err)
		}
		cancel()

		slotCache = cache.NewRedisSlotCache(redisClient, slotTTL)
		denylist = cache.NewRedisDenylist(redisClient)
		log.Info("Redis cache enabled (addr=%s, slot_ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotTTL)
	} else {
		slotCache = cache.NewMemorySlotCache(slotTTL)
		denylist = cache.NewMemoryDenylist()
		log.Info("Redis disabled, using in-memory cache")
	}

	// Интеграционные клиенты. Пустой адрес или ключ шлюза оплаты = демо-режим.
	paymentsTimeout := time.Duration(cfg.Payments.Timeout) * time.Second
	var (
		mpesaClient  paymentsService.MpesaClient
		stripeClient paymentsService.StripeClient
	)
	if cfg.Payments.MpesaURL != "" {
		mpesaClient = mpesa.NewClient(cfg.Payments.MpesaURL, cfg.Payments.MpesaAuthToken, paymentsTimeout, log)
	} else {
		log.Warn("M-Pesa gateway is not configured, running in demo mode")
	}
	if cfg.Payments.StripeSecretKey != "" {
		stripeClient = stripe.NewClient(cfg.Payments.StripeURL, cfg.Payments.StripeSecretKey, paymentsTimeout, log)
	} else {
		log.Warn("Stripe is not configured, running in demo mode")
	}

	// Уведомления о новой записи
	notifier, stopNotifier := newNotifier(cfg.Notifications, metricsCollector, log)
	defer stopNotifier()

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(slotRepository, slotCache, metricsCollector, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		metricsCollector,
		location,
		cfg.Booking.DefaultCapacity,
		log,
	)
	catalogSvc := catalogService.NewService(classRepository, slotRepository, slotsSvc, log)
	authSvc := authService.NewService(
		userRepository,
		authService.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDuration()),
		denylist,
		log,
		authService.Options{
			BcryptCost:  cfg.Auth.BcryptCost,
			AdminEmails: cfg.Auth.AdminEmails,
		},
	)
	paymentsSvc := paymentsService.NewService(
		bookingRepository,
		mpesaClient,
		stripeClient,
		metricsCollector,
		log,
		paymentsService.Options{
			AccountRefPrefix: cfg.Payments.AccountRefPrefix,
			Currency:         cfg.Payments.Currency,
			PollInterval:     time.Duration(cfg.Payments.PollInterval) * time.Second,
			PollAttempts:     cfg.Payments.PollAttempts,
		},
	)

	// Прогреваем кэш слотов; при ошибке первый запрос загрузит его сам
	if err := slotsSvc.Refresh(context.Background()); err != nil {
		log.Warn("Initial slot cache refresh failed: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		classRepository,
		slotRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
		createBookingUC.Options{
			DefaultCapacity: cfg.Booking.DefaultCapacity,
			StrictCapacity:  cfg.Booking.StrictCapacity,
			Location:        location,
		},
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotsSvc,
		bookingRepository,
		location,
		log,
		getAvailableSlotsUC.Options{
			DefaultCapacity:    cfg.Booking.DefaultCapacity,
			CalendarCategories: cfg.Booking.CalendarCategories,
		},
	)
	getWeekScheduleUseCase := getWeekScheduleUC.NewUseCase(slotsSvc, location, log)
	getMonthCalendarUseCase := getMonthCalendarUC.NewUseCase(slotsSvc, cfg.Booking.CalendarCategories, location, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getWeekSchedule := getWeekScheduleHandler.NewHandler(getWeekScheduleUseCase, log)
	getMonthCalendar := getMonthCalendarHandler.NewHandler(getMonthCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRoster := getRosterHandler.NewHandler(bookingSvc, log)
	adminBookings := adminBookingsHandler.NewHandler(bookingSvc, log)
	listClasses := listClassesHandler.NewHandler(catalogSvc, log)
	adminCatalog := adminCatalogHandler.NewHandler(catalogSvc, log)
	payBooking := payBookingHandler.NewHandler(paymentsSvc, cfg.Payments.CallbackSecret, log)
	authSession := authSessionHandler.NewHandler(authSvc, log)

	healthChecks := map[string]healthHandler.Pinger{"database": db}
	if redisClient != nil {
		healthChecks["redis"] = healthHandler.PingFunc(func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		})
	}
	health := healthHandler.NewHandler(healthChecks, 3*time.Second, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Ограничение частоты на ручки записи и входа
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies, log)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		go limiter.RunCleanup(middleware.DefaultSweepInterval, stopMetricsCh)
		mw := limiter.Middleware()
		limit = func(h http.HandlerFunc) http.Handler { return mw(h) }
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог классов
	api.HandleFunc("/classes", listClasses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/classes/{classId}", listClasses.HandleGet).Methods(http.MethodGet)

	// Расписание и свободные места
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/days/{date}", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/month", getMonthCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/week", getWeekSchedule.Handle).Methods(http.MethodGet)

	// Регистрация и вход
	api.Handle("/auth/signup", limit(authSession.SignUp)).Methods(http.MethodPost)
	api.Handle("/auth/signin", limit(authSession.SignIn)).Methods(http.MethodPost)

	// Колбэк шлюза M-Pesa (проверяется общий секрет)
	api.HandleFunc("/payments/mpesa/callback", payBooking.MpesaCallback).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	// Запись и отмена от имени студии
	admin.HandleFunc("/bookings", createBooking.HandleAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/mark-paid", adminBookings.MarkPaid).Methods(http.MethodPost)
	admin.HandleFunc("/occurrences/cancel", adminBookings.CancelOccurrence).Methods(http.MethodPost)

	// Список записавшихся на день
	admin.HandleFunc("/roster", getRoster.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/roster/export", getRoster.HandleExport).Methods(http.MethodGet)

	// Каталог классов и расписание
	admin.HandleFunc("/classes", adminCatalog.ListClasses).Methods(http.MethodGet)
	admin.HandleFunc("/classes", adminCatalog.CreateClass).Methods(http.MethodPost)
	admin.HandleFunc("/classes/{classId}", adminCatalog.UpdateClass).Methods(http.MethodPut)
	admin.HandleFunc("/slots", adminCatalog.ListSlots).Methods(http.MethodGet)
	admin.HandleFunc("/slots", adminCatalog.CreateSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", adminCatalog.UpdateSlot).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/my-bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Оплата ---
	protected.Handle("/bookings/{bookingId}/payments/mpesa", limit(payBooking.Mpesa)).Methods(http.MethodPost)
	protected.Handle("/bookings/{bookingId}/payments/stripe", limit(payBooking.Stripe)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payments/status", payBooking.Status).Methods(http.MethodGet)

	// --- Сессия и профиль ---
	protected.HandleFunc("/auth/me", authSession.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/me", authSession.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/auth/signout", authSession.SignOut).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool и очистку лимитеров
	close(stopMetricsCh)

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

// openDatabase открывает соединение, настраивает пул и проверяет доступность БД
func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// newNotifier выбирает доставку уведомлений по режиму из конфигурации.
// Возвращаемая функция дожидается фоновых отправок и закрывает соединения.
func newNotifier(cfg config.NotificationsConfig, m *metrics.Metrics, log *logger.Logger) (createBookingUC.Notifier, func()) {
	timeout := time.Duration(cfg.Timeout) * time.Second

	switch cfg.Mode {
	case "queue":
		publisher := notifications.NewQueuePublisher(cfg.AMQPURL, cfg.Queue, log)
		log.Info("Notifications are published to queue %q", cfg.Queue)
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				log.Warn("Failed to close notification publisher: %v", err)
			}
		}
	case "disabled":
		log.Info("Notifications are disabled")
		return notifications.NewDisabled(log), func() {}
	default:
		sender := newSender(cfg, timeout, m, log)
		dispatcher := notifications.NewDirectDispatcher(sender, timeout, log)
		log.Info("Notifications are sent directly")
		return dispatcher, dispatcher.Wait
	}
}

// newSender отправитель письма клиенту и SMS оператору
func newSender(cfg config.NotificationsConfig, timeout time.Duration, m *metrics.Metrics, log *logger.Logger) *notifications.Sender {
	email := emailjs.NewClient(emailjs.Config{
		URL:        cfg.EmailJS.URL,
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
		PublicKey:  cfg.EmailJS.PublicKey,
		PrivateKey: cfg.EmailJS.PrivateKey,
	}, timeout, log)
	sms := africastalking.NewClient(africastalking.Config{
		URL:      cfg.AfricasTalking.URL,
		Username: cfg.AfricasTalking.Username,
		APIKey:   cfg.AfricasTalking.APIKey,
		SenderID: cfg.AfricasTalking.SenderID,
	}, timeout, log)

	return notifications.NewSender(email, sms, cfg.OperatorPhone, m, log)
}

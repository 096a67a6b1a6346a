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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	applySlotConfigHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/apply_slot_config"
	createBookingHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/create_booking"
	emergencyStopHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/emergency_stop"
	getBookingHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/get_client_bookings"
	getDeviceBookingsHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/get_device_bookings"
	getSlotConfigHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/get_slot_config"
	getSlotsHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/get_slots"
	listSlotConfigsHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/list_slot_configs"
	registerSlotConfigHandler "github.com/m04kA/DOOH-InventoryService/internal/api/handlers/register_slot_config"
	"github.com/m04kA/DOOH-InventoryService/internal/api/middleware"
	"github.com/m04kA/DOOH-InventoryService/internal/config"
	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/fixtures"
	bookingRepo "github.com/m04kA/DOOH-InventoryService/internal/infra/storage/booking"
	deviceRepo "github.com/m04kA/DOOH-InventoryService/internal/infra/storage/device"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	slotConfigRepo "github.com/m04kA/DOOH-InventoryService/internal/infra/storage/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/catalog"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/playback"
	bookingsService "github.com/m04kA/DOOH-InventoryService/internal/service/bookings"
	lifecycleService "github.com/m04kA/DOOH-InventoryService/internal/service/lifecycle"
	slotConfigService "github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	slotGridService "github.com/m04kA/DOOH-InventoryService/internal/service/slotgrid"
	validatorService "github.com/m04kA/DOOH-InventoryService/internal/service/validator"
	createBookingUC "github.com/m04kA/DOOH-InventoryService/internal/usecase/create_booking"
	emergencyStopUC "github.com/m04kA/DOOH-InventoryService/internal/usecase/emergency_stop"
	getSlotsUC "github.com/m04kA/DOOH-InventoryService/internal/usecase/get_slots"
	"github.com/m04kA/DOOH-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
	"github.com/m04kA/DOOH-InventoryService/pkg/metrics"
	"github.com/m04kA/DOOH-InventoryService/pkg/txmanager"
)

// ledger журнал загрузки слотов: memory.Ledger или postgres-репозиторий
type ledger interface {
	Reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Release(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
}

type configStore interface {
	Create(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error)
	GetByID(ctx context.Context, id int64) (*domain.SlotConfiguration, error)
	List(ctx context.Context) ([]*domain.SlotConfiguration, error)
}

type deviceStore interface {
	Create(ctx context.Context, device *domain.Device) (*domain.Device, error)
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	UpdateSlotConfig(ctx context.Context, deviceID, configID int64) error
}

// contentCatalog источник медиафайлов и плейлистов
type contentCatalog interface {
	GetMediaItem(ctx context.Context, id int64) (*domain.MediaItem, error)
	GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error)
}

type commander interface {
	Send(ctx context.Context, cmd playback.Command) error
}

type storage struct {
	ledger  ledger
	configs configStore
	devices deviceStore
	db      *sql.DB
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

	log.Info("Starting DOOH-InventoryService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	// Метрики собираются всегда, наружу отдаются только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
	}
	stopBackgroundCh := make(chan struct{})

	// Хранилище
	store, err := openStorage(cfg, metricsCollector, stopBackgroundCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	if store.db != nil {
		defer store.db.Close()
	}

	if cfg.Storage.SeedDemo {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := fixtures.Seed(seedCtx, store.configs, store.devices, log); err != nil {
			log.Fatal("Failed to seed demo data: %v", err)
		}
		cancel()
	}

	// Интеграции: каталог контента и управление воспроизведением
	var contentSource contentCatalog
	if cfg.Catalog.URL != "" {
		contentSource = catalog.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
		log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	} else {
		contentSource = fixtures.Catalog()
		log.Warn("Catalog URL is empty, using built-in catalog")
	}

	var playbackControl commander
	if cfg.Playback.URL != "" {
		playbackControl = playback.NewClient(cfg.Playback.URL, time.Duration(cfg.Playback.Timeout)*time.Second, cfg.Playback.Retries, log)
		log.Info("Playback client initialized (url=%s, timeout=%ds, retries=%d)",
			cfg.Playback.URL, cfg.Playback.Timeout, cfg.Playback.Retries)
	} else {
		playbackControl = playback.NewLogSink(log)
		log.Warn("Playback URL is empty, stop commands will only be logged")
	}

	// Инициализируем сервисы
	slotConfigSvc := slotConfigService.NewService(store.configs, store.devices, store.ledger, log)
	slotGridSvc := slotGridService.NewService(slotConfigSvc)
	validatorSvc := validatorService.NewService(contentSource)
	bookingSvc := bookingsService.NewService(store.ledger, log)
	lifecycleSvc := lifecycleService.NewService(
		store.ledger,
		metricsCollector,
		lifecycleService.RealTimeProvider{},
		time.Duration(cfg.Lifecycle.RunTimeout)*time.Second,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.ledger,
		validatorSvc,
		slotConfigSvc,
		metricsCollector,
		cfg.Booking.ReserveTimeout(),
		log,
	)
	emergencyStopUseCase := emergencyStopUC.NewUseCase(store.ledger, playbackControl, metricsCollector, log)
	getSlotsUseCase := getSlotsUC.NewUseCase(slotGridSvc, store.ledger, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	emergencyStop := emergencyStopHandler.NewHandler(emergencyStopUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getDeviceBookings := getDeviceBookingsHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	registerSlotConfig := registerSlotConfigHandler.NewHandler(slotConfigSvc, log)
	listSlotConfigs := listSlotConfigsHandler.NewHandler(slotConfigSvc, log)
	getSlotConfig := getSlotConfigHandler.NewHandler(slotConfigSvc, log)
	applySlotConfig := applySlotConfigHandler.NewHandler(slotConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		go limiter.RunCleanup(time.Minute, stopBackgroundCh)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f req/s, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Шаблоны слотов ---
	api.HandleFunc("/slot-configurations", registerSlotConfig.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slot-configurations", listSlotConfigs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slot-configurations/{id}", getSlotConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/devices/{deviceId}/slot-configuration", applySlotConfig.Handle).Methods(http.MethodPut)

	// --- Сетка слотов и загрузка ---
	api.HandleFunc("/slots/{deviceId}", getSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/slots/{deviceId}/{date}/{hour}/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/emergency-stop", emergencyStop.Handle).Methods(http.MethodPost)
	api.HandleFunc("/devices/{deviceId}/bookings", getDeviceBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}).Handler(r)

	// Фоновый перевод статусов
	if cfg.Lifecycle.Enabled {
		if err := lifecycleSvc.Start(cfg.Lifecycle.Schedule); err != nil {
			log.Fatal("Failed to start lifecycle job: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	lifecycleSvc.Stop(shutdownCtx)

	// Останавливаем сбор метрик пула и очистку лимитера
	close(stopBackgroundCh)

	log.Info("Server stopped gracefully")
}

// openStorage создает хранилище по storage.driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Info("Using in-memory storage")
		return &storage{
			ledger:  memory.NewLedger(),
			configs: memory.NewSlotConfigRepository(),
			devices: memory.NewDeviceRepository(),
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Plain(db)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	return &storage{
		ledger:  bookingRepo.NewRepository(wrappedDB, txMgr),
		configs: slotConfigRepo.NewRepository(wrappedDB),
		devices: deviceRepo.NewRepository(wrappedDB),
		db:      db,
	}, nil
}

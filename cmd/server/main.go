package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketly.backend/internal/config"
	"marketly.backend/internal/infrastructure/notify"
	"marketly.backend/internal/infrastructure/repositories"
	"marketly.backend/internal/interfaces/http/handlers"
	"marketly.backend/internal/interfaces/http/middleware"
	"marketly.backend/internal/usecases"
	"marketly.backend/pkg/jwt"
	"marketly.backend/pkg/logger"
	"marketly.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	statusLogRepo := repositories.NewMerchantStatusLogRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	orderRepo := repositories.NewServiceOrderRepository(db)
	feeRepo := repositories.NewPlatformFeeRepository(db)
	outboxRepo := repositories.NewNotificationOutboxRepository(db)
	uow := repositories.NewUnitOfWork(db)

	notifier := notify.NewRedisNotifier(redis.GetClient())

	// Usecases
	feeCalc := usecases.NewFeeCalculator(feeRepo)
	merchantUsecase := usecases.NewMerchantUsecase(merchantRepo, statusLogRepo, userRepo, outboxRepo, uow, notifier)
	onboardingUsecase := usecases.NewOnboardingUsecase(merchantRepo, userRepo)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, serviceRepo, merchantRepo, feeCalc, uow)
	reservationUsecase := usecases.NewReservationUsecase(reservationRepo, serviceRepo, merchantRepo, feeCalc, uow)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, serviceRepo, merchantRepo, feeCalc, uow)
	platformFeeUsecase := usecases.NewPlatformFeeUsecase(feeRepo)

	// Handlers
	merchantHandler := handlers.NewMerchantHandler(merchantUsecase, onboardingUsecase)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)
	reservationHandler := handlers.NewReservationHandler(reservationUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	platformFeeHandler := handlers.NewPlatformFeeHandler(platformFeeUsecase)

	// Re-enqueue notifications stranded by a crash before the last shutdown
	if err := merchantUsecase.DispatchPendingNotifications(context.Background()); err != nil {
		log.Printf("⚠️ Could not redeliver pending notifications: %v", err)
	}

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		merchantHandler:    merchantHandler,
		bookingHandler:     bookingHandler,
		reservationHandler: reservationHandler,
		orderHandler:       orderHandler,
		platformFeeHandler: platformFeeHandler,
		authMiddleware:     authMiddleware,
	})

	log.Printf("🚀 Marketly Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

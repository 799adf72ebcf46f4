package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"strmly.backend/internal/config"
	"strmly.backend/internal/infrastructure/models"
	"strmly.backend/internal/infrastructure/notifications"
	"strmly.backend/internal/infrastructure/repositories"
	"strmly.backend/internal/interfaces/http/handlers"
	"strmly.backend/internal/interfaces/http/middleware"
	"strmly.backend/internal/usecases"
	"strmly.backend/pkg/jwt"
	"strmly.backend/pkg/logger"
	"strmly.backend/pkg/redis"
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
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	connectNATS = notifications.Connect
	runServer   = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB    = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(
			&models.User{},
			&models.Wallet{},
			&models.WalletTransaction{},
			&models.WalletTransfer{},
			&models.UserAccess{},
			&models.Video{},
			&models.Series{},
			&models.Comment{},
		); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Connect the event sink. An empty NATS URL disables publishing.
	var sink notifications.Sink = notifications.NoopSink{}
	nc, err := connectNATS(cfg.NATS.URL)
	if err != nil {
		logger.Warn(context.Background(), "NATS unavailable, transfer events disabled", zap.Error(err))
	} else if nc != nil {
		defer nc.Close()
		sink = notifications.NewNATSSink(nc)
		logger.Info(context.Background(), "NATS connected", zap.String("url", cfg.NATS.URL))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	grantRepo := repositories.NewAccessGrantRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	seriesRepo := repositories.NewSeriesRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, ledgerRepo, transferRepo)
	transferUsecase := usecases.NewTransferUsecase(walletRepo, ledgerRepo, transferRepo, grantRepo, videoRepo, seriesRepo, commentRepo, userRepo, uow, sink, cfg.Wallet)
	accessUsecase := usecases.NewAccessUsecase(grantRepo, videoRepo, seriesRepo, cfg.Wallet)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	giftHandler := handlers.NewGiftHandler(transferUsecase)
	purchaseHandler := handlers.NewPurchaseHandler(transferUsecase, accessUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		walletHandler:   walletHandler,
		giftHandler:     giftHandler,
		purchaseHandler: purchaseHandler,
		authMiddleware:  middleware.AuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
	}()

	// Start server
	log.Printf("STRMLY backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

package app

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "stockroom/docs"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handlers"
	"stockroom/internal/logger"
	"stockroom/internal/middleware"
	"stockroom/internal/pdf"
	"stockroom/internal/repositories"
	"stockroom/internal/routes"
	"stockroom/internal/services"
)

type App struct {
	Config *config.Config
	DB     *sql.DB
	Router *gin.Engine
}

// New opens and migrates the database and wires repositories, services and
// handlers into a gin router. The caller owns Close.
func New(cfg *config.Config) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	// === DB ===
	db, err := database.OpenAndMigrate(context.Background(), cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	productRepo := repositories.NewProductRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.SuppressSend,
	)
	userService := services.NewUserService(userRepo, authService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService, cfg.Reset.CodeTTL)
	productService := services.NewProductService(productRepo)
	reportService := services.NewReportService(productRepo, pdf.NewReportGenerator(cfg.Reports.FontPath))

	// === Handlers ===
	productHandler := handlers.NewProductHandler(productService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	authHandler := handlers.NewAuthHandler(userService, authService)
	healthHandler := handlers.NewHealthHandler(db)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		accessLog(zap.L()),
		ginzap.RecoveryWithZap(zap.L(), true),
		corsMiddleware(cfg.CORS.AllowOrigins),
	)

	routes.SetupRoutes(
		router,
		productHandler,
		resetHandler,
		authHandler,
		healthHandler,
		reportHandler,
		middleware.AuthMiddleware(authService),
	)

	return &App{Config: cfg, DB: db, Router: router}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

func Run() {
	cfg := config.LoadConfig()

	log, err := logger.Setup(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	a, err := New(cfg)
	if err != nil {
		log.Fatal("Failed to start", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server starting", zap.String("addr", listenAddr), zap.String("db_driver", cfg.Database.Driver))
	if err := a.Router.Run(listenAddr); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/healthz"},
		Context: func(c *gin.Context) []zapcore.Field {
			fields := []zapcore.Field{}
			if v := c.GetString(middleware.CtxRequestID); v != "" {
				fields = append(fields, zap.String("request_id", v))
			}
			return fields
		},
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

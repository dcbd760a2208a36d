package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	_ "github.com/franciscosanchezn/gin-momo-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-momo-api/internal/auth"
	"github.com/franciscosanchezn/gin-momo-api/internal/config"
	"github.com/franciscosanchezn/gin-momo-api/internal/controllers"
	"github.com/franciscosanchezn/gin-momo-api/internal/database"
	"github.com/franciscosanchezn/gin-momo-api/internal/middleware"
	"github.com/franciscosanchezn/gin-momo-api/internal/routes"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Momo Storefront API
// @version 1.0
// @description Menu, cart, checkout and order tracking for a momo restaurant
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a session or OAuth2 token.
func main() {
	// Load environment variables
	loadDotenvFile()

	configuration := loadConfig()
	setUpLogger(configuration)

	// Prices serialize as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := setupDatabase(ctx, configuration)
	oauth := auth.NewOAuthService(db, configuration.JWTSecret, configuration.ClientTokenTTL)
	router := setupRouter(db, oauth, configuration)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", configuration.Host, configuration.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		purgeExpiredTokens(ctx, oauth.Tokens(), configuration.TokenPurgeInterval)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("Server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Application terminated with error")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger uses JSON output and LOG_LEVEL, falling back to a level derived from APP_ENV
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	if level, err := log.ParseLevel(conf.LogLevel); err == nil {
		log.SetLevel(level)
		return
	}
	switch conf.AppEnv {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects, migrates the schema and seeds the menu on an empty catalog
func setupDatabase(ctx context.Context, conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(ctx, database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if conf.SeedMenu {
		_, err := database.SeedMenu(ctx, db)
		checkPanicErr(err)
	}
	return db
}

// setupRouter wires services and controllers into the Gin router
func setupRouter(db *gorm.DB, oauth *auth.OAuthService, conf *config.Config) *gin.Engine {
	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userService := services.NewUserService(db)
	mailer := services.NewLogMailer(conf.ClientOrigin, log.StandardLogger())
	authService := services.NewAuthService(db, userService, mailer, conf.AdminEmails, conf.ResetTokenTTL)
	sessions := auth.NewSessionManager(conf.JWTSecret, conf.SessionTTL, auth.DefaultSessionCookie, conf.SecureCookies())

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	routes.SetupRoutes(router, routes.Handlers{
		Auth:          controllers.NewAuthController(authService, userService, sessions),
		Menu:          controllers.NewMenuController(services.NewMenuService(db)),
		Cart:          controllers.NewCartController(services.NewCartService(db)),
		Order:         controllers.NewOrderController(services.NewOrderService(db)),
		Notification:  controllers.NewNotificationController(services.NewNotificationService(db)),
		User:          controllers.NewUserController(userService),
		Client:        controllers.NewClientController(services.NewClientService(db)),
		OAuth:         oauth,
		Sessions:      sessions,
		Users:         userService,
		EnableSwagger: !conf.IsProduction(),
	})
	return router
}

// purgeExpiredTokens deletes expired OAuth2 tokens until ctx is done
func purgeExpiredTokens(ctx context.Context, tokens *auth.GormTokenStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := tokens.PurgeExpired(ctx, now)
			if err != nil {
				log.WithError(err).Warn("Failed to purge expired tokens")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Info("Purged expired tokens")
			}
		}
	}
}

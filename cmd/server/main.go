package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/recipebox/backend/internal/application/catalog"
	identityapp "github.com/recipebox/backend/internal/application/identity"
	ledgerapp "github.com/recipebox/backend/internal/application/ledger"
	recipeapp "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/application/shoppinglist"
	"github.com/recipebox/backend/internal/infrastructure/auth"
	"github.com/recipebox/backend/internal/infrastructure/config"
	"github.com/recipebox/backend/internal/infrastructure/event"
	"github.com/recipebox/backend/internal/infrastructure/logger"
	"github.com/recipebox/backend/internal/infrastructure/persistence"
	"github.com/recipebox/backend/internal/infrastructure/printing"
	"github.com/recipebox/backend/internal/infrastructure/storage"
	"github.com/recipebox/backend/internal/interfaces/http/handler"
	"github.com/recipebox/backend/internal/interfaces/http/middleware"
	"github.com/recipebox/backend/internal/interfaces/http/router"
)

//	@title			RecipeBox API
//	@version		1.0
//	@description	Recipe sharing platform backend: recipes, favorites, subscriptions, and shopping lists

//	@contact.name	API Support
//	@contact.url	https://github.com/recipebox/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RecipeBox backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	shortLinkRepo := persistence.NewGormShortLinkRepository(db.DB)
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)

	// Token blacklist for logout and token rotation.
	// Redis keeps revocations shared across instances; outside production a
	// single-process in-memory fallback is acceptable.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Object storage for recipe images and avatars
	objectStorage, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	log.Info("Object storage ready", zap.String("provider", cfg.Storage.Provider))

	// PDF rendering for shopping-list export
	templates, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load print templates", zap.Error(err))
	}
	pdfRenderer := printing.NewChromedpRenderer(cfg.Printing, log)
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Recipe deletion and image replacement -> stored image cleanup
	imageCleanupHandler := recipeapp.NewImageCleanupHandler(objectStorage, log)
	eventBus.Subscribe(imageCleanupHandler, imageCleanupHandler.EventTypes()...)

	// Wildcard activity trail in the structured log
	eventBus.Subscribe(event.NewActivityLogHandler(log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Per-user lock registry shared by cart mutations and export
	userLocks := ledgerapp.NewUserLocks()

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, objectStorage, log)
	subscriptionService := ledgerapp.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo, log)
	ingredientService := catalogapp.NewIngredientService(ingredientRepo, log)
	tagService := catalogapp.NewTagService(tagRepo, log)
	recipeService := recipeapp.NewRecipeService(
		recipeRepo, shortLinkRepo, ingredientRepo, tagRepo, userRepo,
		favoriteRepo, cartRepo, subscriptionRepo, objectStorage, eventBus, log)
	favoriteService := ledgerapp.NewFavoriteService(favoriteRepo, recipeRepo, log)
	cartService := ledgerapp.NewCartService(cartRepo, recipeRepo, userLocks, log)
	exportService := shoppinglist.NewExportService(cartRepo, recipeRepo, userRepo, templates, pdfRenderer, userLocks, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, subscriptionService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	tagHandler := handler.NewTagHandler(tagService)
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, cartService, exportService, cfg.App.BaseURL)
	shortLinkHandler := handler.NewShortLinkHandler(recipeService, cfg.App.BaseURL)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Short links redirect to the recipe page
	engine.GET("/s/:code", shortLinkHandler.Resolve)

	// Serve uploaded media directly when using local storage
	if cfg.Storage.Provider == "local" {
		engine.Static("/media", cfg.Storage.LocalPath)
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	jwtCfg.Logger = log
	jwtRequired := middleware.JWTAuthMiddlewareWithConfig(jwtCfg)
	jwtOptional := middleware.OptionalJWTAuthMiddleware(jwtService)

	// Credential endpoints get a tighter rate limit than the rest of the API
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Auth domain: registration, login, token refresh are public
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)

	authProtectedRoutes := router.NewDomainGroup("auth-protected", "/auth")
	authProtectedRoutes.Use(jwtRequired)
	authProtectedRoutes.POST("/logout", authHandler.Logout)

	// User profiles are public reads; the viewer flag comes from the
	// optional token
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(jwtOptional)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)

	userProtectedRoutes := router.NewDomainGroup("users-protected", "/users")
	userProtectedRoutes.Use(jwtRequired)
	userProtectedRoutes.GET("/me", authHandler.GetCurrentUser)
	userProtectedRoutes.POST("/set_password", authHandler.ChangePassword)
	userProtectedRoutes.PUT("/me/avatar", userHandler.SetAvatar)
	userProtectedRoutes.DELETE("/me/avatar", userHandler.DeleteAvatar)
	userProtectedRoutes.GET("/subscriptions", userHandler.GetSubscriptions)
	userProtectedRoutes.POST("/:id/subscribe", userHandler.Subscribe)
	userProtectedRoutes.DELETE("/:id/subscribe", userHandler.Unsubscribe)

	// Recipe reads are public with viewer-dependent flags
	recipeRoutes := router.NewDomainGroup("recipes", "/recipes")
	recipeRoutes.Use(jwtOptional)
	recipeRoutes.GET("", recipeHandler.List)
	recipeRoutes.GET("/:id", recipeHandler.GetByID)
	recipeRoutes.GET("/:id/get-link", recipeHandler.GetLink)

	recipeProtectedRoutes := router.NewDomainGroup("recipes-protected", "/recipes")
	recipeProtectedRoutes.Use(jwtRequired)
	recipeProtectedRoutes.POST("", recipeHandler.Create)
	recipeProtectedRoutes.GET("/download_shopping_cart", recipeHandler.DownloadShoppingCart)
	recipeProtectedRoutes.PATCH("/:id", recipeHandler.Update)
	recipeProtectedRoutes.DELETE("/:id", recipeHandler.Delete)
	recipeProtectedRoutes.POST("/:id/favorite", recipeHandler.Favorite)
	recipeProtectedRoutes.DELETE("/:id/favorite", recipeHandler.Unfavorite)
	recipeProtectedRoutes.POST("/:id/shopping_cart", recipeHandler.AddToShoppingCart)
	recipeProtectedRoutes.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromShoppingCart)

	// Catalog domain: ingredient and tag reference data, public
	ingredientRoutes := router.NewDomainGroup("ingredients", "/ingredients")
	ingredientRoutes.GET("", ingredientHandler.List)
	ingredientRoutes.GET("/:id", ingredientHandler.GetByID)

	tagRoutes := router.NewDomainGroup("tags", "/tags")
	tagRoutes.GET("", tagHandler.List)
	tagRoutes.GET("/:id", tagHandler.GetByID)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(authProtectedRoutes).
		Register(userRoutes).
		Register(userProtectedRoutes).
		Register(recipeRoutes).
		Register(recipeProtectedRoutes).
		Register(ingredientRoutes).
		Register(tagRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexta-backend-go/internal/api"
	"nexta-backend-go/internal/config"
	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/middleware"
	"nexta-backend-go/pkg/cache"
	"nexta-backend-go/pkg/messagequeue"
	"nexta-backend-go/pkg/objectstore"
	"nexta-backend-go/pkg/overpass"
	serverapi "nexta-backend-go/pkg/api"
)

func main() {
	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	release := strings.EqualFold(appConfig.GinMode, "release")
	var zapLogger *zap.Logger
	if release {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- 3. Initialize Firebase Admin SDK ---
	initCtx, cancelInit := context.WithTimeout(ctx, 15*time.Second)
	defer cancelInit()
	clients, err := db.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	store, err := db.NewStore(appConfig, clients, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize document store", zap.Error(err))
	}

	// --- 4. Supporting infrastructure ---
	var objects objectstore.Store
	var localObjects *objectstore.MemoryStore
	if clients.Storage != nil {
		bucket, err := clients.Storage.Bucket(appConfig.StorageBucket)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to open storage bucket", zap.Error(err))
		}
		objects = objectstore.NewGCSStore(bucket, appConfig.StorageBucket, appConfig.SignedURLTTL, zapLogger)
	} else {
		zapLogger.Warn("STORAGE_BUCKET is not configured; uploads are kept in memory")
		localObjects = objectstore.NewMemoryStore("/objects/")
		objects = localObjects
	}

	var urlCache cache.Cache
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		}, zapLogger)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		urlCache = redisCache
	} else {
		urlCache = cache.NewMemoryCache()
	}

	var events core.EventPublisher
	if appConfig.RabbitMQURL != "" {
		queue, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL}, zapLogger)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer queue.Close()
		events = core.NewQueuePublisher(queue, appConfig.NotificationsQueue)
	} else {
		zapLogger.Warn("RABBITMQ_URL is not configured; workflow events are only logged")
		events = core.NewLogPublisher(zapLogger)
	}

	// --- 5. Initialize Repositories ---
	userRepo := db.NewUserRepository(store)
	profileRepo := db.NewProfileRepository(store)
	jobRepo := db.NewJobRepository(store)
	applicationRepo := db.NewApplicationRepository(store)
	cartRepo := db.NewCartRepository(store)
	bookingRepo := db.NewBookingRepository(store)
	auditRepo := db.NewAuditRepository(store)

	// --- 6. Initialize Services ---
	auditService := core.NewAuditService(auditRepo)
	urls := core.NewURLResolver(objects, urlCache, appConfig.URLCacheTTL, zapLogger)
	places := overpass.NewClient(appConfig.OverpassURL, appConfig.OverpassRPS, 30*time.Second)

	services := api.Services{
		Users:        core.NewUserService(userRepo, auditService, zapLogger),
		Profiles:     core.NewProfileService(userRepo, profileRepo, objects, urls, auditService, zapLogger),
		Jobs:         core.NewJobService(userRepo, profileRepo, jobRepo, auditService, zapLogger),
		Applications: core.NewApplicationService(userRepo, profileRepo, applicationRepo, urls, auditService, events, zapLogger),
		Cart:         core.NewCartService(userRepo, profileRepo, cartRepo, urls, zapLogger),
		Bookings:     core.NewBookingService(userRepo, bookingRepo, auditService, events, zapLogger),
		Catalog:      core.NewCatalogService(userRepo, profileRepo, jobRepo, urls, zapLogger),
		Places:       core.NewPlacesService(places, urlCache, zapLogger),
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Setup Gin HTTP Engine ---
	if release {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}
	router.Use(middleware.NewRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst).Middleware())

	authMW := middleware.NewAuthMiddleware(clients.Auth, zapLogger)
	var opener api.ObjectOpener
	if localObjects != nil {
		opener = localObjects
	}
	handlers := api.NewHandlers(services, authMW, opener, zapLogger)

	// --- 8. Serve until SIGINT/SIGTERM ---
	if err := serverapi.Serve(ctx, fmt.Sprintf(":%s", appConfig.Port), router, handlers, 10*time.Second, zapLogger); err != nil {
		zapLogger.Fatal("HTTP server failed", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/starterkit/webapi/internal/api"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/core/service"
	"github.com/starterkit/webapi/internal/infrastructure/db/memory"
	"github.com/starterkit/webapi/internal/infrastructure/db/mongo"
	"github.com/starterkit/webapi/internal/infrastructure/session"
	"github.com/starterkit/webapi/internal/pkg/config"
	"github.com/starterkit/webapi/internal/pkg/i18n"
	"github.com/starterkit/webapi/pkg/logger"
)

// @title        Web API Starter Kit
// @version      1.0.0
// @description  CRUD starter API with session and client-credential authentication, localization and an admin dashboard.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tr, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		log.Fatal().Err(err).Msg("loading translation catalogs")
	}

	ctx := context.Background()

	// --- Storage backend ---
	var (
		userRepo ports.UserRepository
		itemRepo ports.ItemRepository
		appRepo  ports.ClientAppRepository
		mongoDB  *gomongo.Database
	)
	switch cfg.StoreDriver {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to mongodb")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		mongoDB = db
		userRepo = mongo.NewUserRepository(db)
		itemRepo = mongo.NewItemRepository(db)
		appRepo = mongo.NewClientAppRepository(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")
	default:
		users := memory.NewUserRepository()
		items := memory.NewItemRepository()
		if err := memory.Seed(ctx, users, items); err != nil {
			log.Fatal().Err(err).Msg("seeding in-memory store")
		}
		userRepo = users
		itemRepo = items
		appRepo = memory.NewClientAppRepository()
		log.Info().Msg("using in-memory store with seed data")
	}

	// --- Session backend ---
	var (
		sessionStore ports.SessionStore
		redisClient  *goredis.Client
	)
	switch cfg.SessionBackend {
	case "redis":
		rdb, err := session.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to redis")
		}
		defer func() { _ = rdb.Close() }()

		redisClient = rdb
		sessionStore = session.NewRedisStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	default:
		sessionStore = session.NewMemoryStore()
		log.Info().Msg("using in-memory session store")
	}

	// --- Services ---
	userService := service.NewUserService(userRepo, itemRepo, log)
	itemService := service.NewItemService(itemRepo, userRepo, log)
	appService := service.NewClientAppService(appRepo, log)
	tokenService := service.NewTokenService(appRepo, cfg.JWTSecret, log)
	sessionService := service.NewSessionService(userRepo, sessionStore, cfg.SessionTTL, log)

	e, err := api.NewRouter(api.Dependencies{
		Users:      userService,
		Items:      itemService,
		ClientApps: appService,
		Tokens:     tokenService,
		Sessions:   sessionService,
		Translator: tr,
		Mongo:      mongoDB,
		Redis:      redisClient,
		Env:        cfg.Env,
		Log:        log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}

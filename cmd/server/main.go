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

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/teamroster/employee-directory/internal/api"
	"github.com/teamroster/employee-directory/internal/api/handler"
	"github.com/teamroster/employee-directory/internal/core/ports"
	"github.com/teamroster/employee-directory/internal/core/service"
	"github.com/teamroster/employee-directory/internal/infrastructure/db/memory"
	"github.com/teamroster/employee-directory/internal/infrastructure/db/mongo"
	"github.com/teamroster/employee-directory/internal/infrastructure/db/redis"
	"github.com/teamroster/employee-directory/internal/infrastructure/queue"
	"github.com/teamroster/employee-directory/internal/infrastructure/roster"
	"github.com/teamroster/employee-directory/internal/pkg/config"
	"github.com/teamroster/employee-directory/pkg/logger"
)

const (
	devJWTSecret    = "development-only-secret"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "employee-directory",
	})

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	// --- External connections ---
	var (
		rdb    *goredis.Client
		mdb    *gomongo.Database
		pingers = map[string]handler.Pinger{}
	)

	if cfg.StorageBackend == config.BackendRedis {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		pingers["redis"] = redis.NewKVStore(client)
	}

	if cfg.StorageBackend == config.BackendMongo || cfg.PromotionBackend == config.BackendMongo {
		db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "employee-directory",
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(context.Background(), db); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		mdb = db
		pingers["mongodb"] = mongo.NewKVStore(db)
	}

	// --- Storage ---
	var store ports.KeyValueStore
	switch cfg.StorageBackend {
	case config.BackendRedis:
		store = redis.NewKVStore(rdb)
	case config.BackendMongo:
		store = mongo.NewKVStore(mdb)
	default:
		store = memory.NewKVStore()
	}

	var promotions ports.PromotionRepository
	if cfg.PromotionBackend == config.BackendMongo {
		repo := mongo.NewPromotionRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("promotion indexes: %w", err)
		}
		promotions = repo
	} else {
		promotions = memory.NewPromotionRepository()
	}

	var cache ports.PageCache
	if rdb != nil {
		cache = redis.NewPageCache(rdb)
	}

	source := roster.NewClient(cfg.Roster.BaseURL, cfg.Roster.Timeout)
	pingers["roster"] = source

	// --- Core services ---
	gate, err := service.NewSessionGate(store, service.DemoAccounts, log.With().Str("component", "session").Logger())
	if err != nil {
		return fmt.Errorf("session gate: %w", err)
	}
	go gate.Rehydrate(ctx)

	bookmarks := service.NewBookmarkService(ctx, store, log.With().Str("component", "bookmarks").Logger())

	directory := service.NewRosterService(source, cache, service.NewDirectoryFilter(), service.RosterOptions{
		PageSize: cfg.Roster.PageSize,
		CacheTTL: cfg.Roster.CacheTTL,
	}, log.With().Str("component", "roster").Logger())

	promotionService := service.NewPromotionService(directory, promotions, log.With().Str("component", "promotions").Logger())
	dispatcher := queue.NewDispatcher(cfg.Promotions.Workers, promotionService, log.With().Str("component", "dispatcher").Logger())
	dispatcher.Start(ctx)

	go func() {
		if err := directory.LoadNext(ctx); err != nil {
			log.Warn().Err(err).Msg("initial roster load failed")
		}
	}()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Gate:       gate,
		Tokens:     service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Directory:  directory,
		Bookmarks:  bookmarks,
		Promotions: promotionService,
		Queue:      dispatcher,
		Pingers:    pingers,
		JWTSecret:  cfg.JWTSecret,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).
			Str("storage", cfg.StorageBackend).Str("promotions", cfg.PromotionBackend).
			Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return nil
}

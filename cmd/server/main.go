// Command server runs the Townboard HTTP API.
//
// @title                       Townboard API
// @version                     1.0
// @description                 Event feed and community boards for the Bow Valley.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/rs/zerolog"

	_ "github.com/townboard/townboard-api/docs"
	"github.com/townboard/townboard-api/internal/api"
	"github.com/townboard/townboard-api/internal/core/ports"
	"github.com/townboard/townboard-api/internal/core/service"
	"github.com/townboard/townboard-api/internal/infrastructure/config"
	"github.com/townboard/townboard-api/internal/infrastructure/db/memory"
	mongodb "github.com/townboard/townboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/townboard/townboard-api/internal/infrastructure/db/redis"
	"github.com/townboard/townboard-api/internal/infrastructure/http/handlers"
	"github.com/townboard/townboard-api/pkg/logger"
)

type repositories struct {
	users  ports.UserRepository
	events ports.EventRepository
	posts  ports.PostRepository
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "townboard-api",
	})
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store).Msg("starting")

	probes := make(map[string]handlers.Pinger)
	var repos repositories
	var cleanup []func(context.Context) error

	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		cleanup = append(cleanup, client.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("creating indexes")
		}
		repos = repositories{
			users:  mongodb.NewUserRepository(db),
			events: mongodb.NewEventRepository(db),
			posts:  mongodb.NewPostRepository(db),
		}
		probes["mongodb"] = handlers.MongoPinger(db)
	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		repos = repositories{
			users:  memory.NewUserRepository(),
			events: memory.NewEventRepository(),
			posts:  memory.NewPostRepository(),
		}
	}

	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		cleanup = append(cleanup, func(context.Context) error { return rdb.Close() })
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Auth.MaxLoginAttempts, cfg.Auth.LoginWindow)
		probes["redis"] = handlers.RedisPinger(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set; login throttling disabled")
	}

	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	markup := service.NewMarkupGuard()

	e := api.NewRouter(api.Deps{
		Auth:           service.NewAuthService(repos.users, tokens, limiter, component(log, "auth")),
		Events:         service.NewEventService(repos.events, markup, cfg.Location(), component(log, "events")),
		Community:      service.NewCommunityService(repos.posts, repos.users, markup, component(log, "community")),
		Verifier:       tokens,
		Logger:         log,
		Probes:         probes,
		MetricsEnabled: true,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	for _, fn := range cleanup {
		if err := fn(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("closing dependency")
		}
	}

	log.Info().Msg("server stopped")
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

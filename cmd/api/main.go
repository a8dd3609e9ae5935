package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	_ "github.com/photogram/photogram-api/docs"
	"github.com/photogram/photogram-api/internal/api"
	"github.com/photogram/photogram-api/internal/api/handler"
	"github.com/photogram/photogram-api/internal/core/service"
	mongostore "github.com/photogram/photogram-api/internal/infrastructure/db/mongo"
	redisstore "github.com/photogram/photogram-api/internal/infrastructure/db/redis"
	"github.com/photogram/photogram-api/internal/infrastructure/graphql"
	"github.com/photogram/photogram-api/internal/infrastructure/queue"
	"github.com/photogram/photogram-api/internal/infrastructure/storage/minio"
	"github.com/photogram/photogram-api/internal/pkg/config"
	"github.com/photogram/photogram-api/pkg/logger"
)

const (
	serviceName     = "photogram-api"
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

// @title        Photogram API
// @version      1.0
// @description  Sign-up flow and social mutations for Photogram.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: serviceName,
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

// run wires the service and blocks until a stop signal. Every early return
// still runs the deferred disconnects.
func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Credential store ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	credentials := mongostore.NewAuthRepository(db)
	if err := credentials.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}

	// --- Username cache ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Media bucket ---
	media, err := minio.NewMediaStore(ctx, minio.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
		PublicURL: cfg.Minio.PublicURL,
	})
	if err != nil {
		return err
	}

	// --- GraphQL store ---
	graph := graphql.NewClient(graphql.Config{
		Endpoint:    cfg.GraphQL.Endpoint,
		AdminSecret: cfg.GraphQL.AdminSecret,
		Timeout:     cfg.GraphQL.Timeout,
	}, logger.Component("graphql"))

	// --- Services ---
	checker := service.NewCachedUsernameChecker(graph, redisstore.NewUsernameCache(rdb, cfg.SignUp.UsernameCacheTTL), logger.Component("usernames"))
	authService := service.NewAuthService(credentials, graph, cfg.JWTSecret, tokenTTL, cfg.SignUp.DefaultAvatarURL, logger.Component("auth"))
	signUpService := service.NewSignUpService(checker, authService, cfg.SignUp.SessionTTL, logger.Component("signup"))
	postService := service.NewPostService(graph, media, logger.Component("posts"))

	// --- Background workers ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	dispatcher := queue.NewDispatcher(cfg.DispatcherWorkers, postService, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	var sweeper sync.WaitGroup
	sweeper.Add(1)
	go func() {
		defer sweeper.Done()
		signUpService.RunSweeper(workerCtx, cfg.SignUp.SweepInterval)
	}()

	e := api.NewRouter(api.Dependencies{
		SignUp:    signUpService,
		Auth:      authService,
		Posts:     postService,
		Usernames: checker,
		Reactions: dispatcher,
		Probes: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"minio":   media.Ping,
			"graphql": graph.Ping,
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutCtx)
	})

	err = g.Wait()

	cancelWorkers()
	dispatcher.Wait()
	sweeper.Wait()
	log.Info().Msg("bye")
	return err
}

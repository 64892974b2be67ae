package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/dblab/twitterclone/internal/api/http"
	"github.com/dblab/twitterclone/internal/api/http/handlers"
	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/events"
	"github.com/dblab/twitterclone/internal/observability"
	"github.com/dblab/twitterclone/internal/persistence"
	"github.com/dblab/twitterclone/internal/repository"
	"github.com/dblab/twitterclone/internal/service"
	"github.com/dblab/twitterclone/internal/worker"
)

const searchCachePrefix = "explore:"

func newServeCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(parent context.Context, rt *cliState) error {
	cfg, logger := rt.cfg, rt.logger

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenValidity())
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}
	authn := auth.NewCredentialAuthenticator(codec, nil)
	resolver := auth.NewRequestIdentityResolver(authn, cfg.Auth.BearerPrefix, logger, metrics)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifier := worker.NewNotificationWorker(
		cfg.Notification.QueueSize,
		worker.LogDeliverers(logger, cfg.Notification.EmailFrom, cfg.Notification.WebhookURL),
		logger,
	)
	notifier.Start(ctx)
	defer notifier.Stop()
	service.NewNotificationService(dispatcher, notifier, logger, cfg.Notification).RegisterHandlers()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	tweetRepo := repository.NewTweetRepository(pool)
	followRepo := repository.NewFollowRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	exploreRepo := repository.NewExploreRepository(pool)

	authService := service.NewAuthService(service.AuthDependencies{
		AccountRepo:   accountRepo,
		Authenticator: authn,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	tweetService := service.NewTweetService(service.TweetDependencies{
		TweetRepo:   tweetRepo,
		FollowRepo:  followRepo,
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
	})
	followService := service.NewFollowService(service.FollowDependencies{
		FollowRepo:  followRepo,
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
	})
	favoriteService := service.NewFavoriteService(service.FavoriteDependencies{
		FavoriteRepo: favoriteRepo,
		TweetRepo:    tweetRepo,
		AccountRepo:  accountRepo,
		Dispatcher:   dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		TweetRepo:   tweetRepo,
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
	})
	exploreService := service.NewExploreService(service.ExploreDependencies{
		ExploreRepo: exploreRepo,
		AccountRepo: accountRepo,
		TweetRepo:   tweetRepo,
		Cache:       persistence.NewSearchCache(redis.Client, searchCachePrefix),
		CacheTTL:    cfg.Explore.CacheTTL(),
		Recorder:    metrics,
		Logger:      logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.AllowedOrigins(),
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Users:     handlers.NewUsersHandler(authService),
		Tweets:    handlers.NewTweetsHandler(tweetService),
		Follows:   handlers.NewFollowsHandler(followService),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		Comments:  handlers.NewCommentsHandler(commentService),
		Explores:  handlers.NewExploresHandler(exploreService),
		Identity:  auth.NewIdentityMiddleware(resolver, nil),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}

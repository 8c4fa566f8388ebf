package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/domain/comment"
	"tubetweet-server/internal/domain/dashboard"
	"tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/domain/playlist"
	"tubetweet-server/internal/domain/subscription"
	"tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/domain/user"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/infrastructure/auth"
	"tubetweet-server/internal/infrastructure/database"
	"tubetweet-server/internal/infrastructure/logger"
	"tubetweet-server/internal/infrastructure/observability"
	commentrepo "tubetweet-server/internal/infrastructure/repository/comment"
	dashboardrepo "tubetweet-server/internal/infrastructure/repository/dashboard"
	likerepo "tubetweet-server/internal/infrastructure/repository/like"
	playlistrepo "tubetweet-server/internal/infrastructure/repository/playlist"
	subscriptionrepo "tubetweet-server/internal/infrastructure/repository/subscription"
	tweetrepo "tubetweet-server/internal/infrastructure/repository/tweet"
	userrepo "tubetweet-server/internal/infrastructure/repository/user"
	videorepo "tubetweet-server/internal/infrastructure/repository/video"
	"tubetweet-server/internal/infrastructure/storage"
	"tubetweet-server/internal/interfaces/httpserver"
	"tubetweet-server/internal/interfaces/httpserver/handlers"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var mediaStore video.Storage
	if cfg.IsLocalStorage() {
		mediaStore, err = storage.NewLocalStorage(cfg, log)
	} else {
		mediaStore, err = storage.NewS3Storage(ctx, cfg, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	tokens := auth.NewTokenManager(cfg)

	users := userrepo.NewRepository(db)
	videos := videorepo.NewRepository(db)
	tweets := tweetrepo.NewRepository(db)
	comments := commentrepo.NewRepository(db)
	likes := likerepo.NewRepository(db)
	playlists := playlistrepo.NewRepository(db)
	subscriptions := subscriptionrepo.NewRepository(db)
	dashboards := dashboardrepo.NewRepository(db)

	services := handlers.Services{
		User:         user.NewService(users, tokens, subscriptions, log),
		Video:        video.NewService(cfg, videos, mediaStore, log),
		Tweet:        tweet.NewService(tweets, log),
		Comment:      comment.NewService(comments, videos, log),
		Like:         like.NewService(likes, likerepo.NewTargetChecker(videos, comments, tweets), log),
		Playlist:     playlist.NewService(playlists, videos, log),
		Subscription: subscription.NewService(subscriptions, users, log),
		Dashboard:    dashboard.NewService(dashboards, videos, log),
	}

	httpServer := httpserver.New(cfg, log, services, mediaStore, tokens)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

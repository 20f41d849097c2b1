// Command api serves the posts API.
//
//	@title						Posts API
//	@version					1.0
//	@description				Posts, users, votes and bearer-token authentication.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	_ "github.com/inkwell/posts-api/docs"
	"github.com/inkwell/posts-api/internal/api"
	"github.com/inkwell/posts-api/internal/core/ports"
	"github.com/inkwell/posts-api/internal/core/service"
	"github.com/inkwell/posts-api/internal/core/usecase"
	"github.com/inkwell/posts-api/internal/infrastructure/config"
	redisstore "github.com/inkwell/posts-api/internal/infrastructure/db/redis"
	"github.com/inkwell/posts-api/internal/infrastructure/http/handlers"
	"github.com/inkwell/posts-api/internal/pkg/password"
	"github.com/inkwell/posts-api/internal/pkg/token"
	"github.com/inkwell/posts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("api exited")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options come from config, so fall back to defaults here.
		logger.Init(logger.Options{Service: "posts-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "posts-api",
	})

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	checks := []handlers.Check{st.check}

	var cache ports.UserCache
	if cfg.Redis.Enabled {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}()
		cache = redisstore.NewUserCache(client, cfg.Token.TTL())
		checks = append(checks, handlers.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	tokens, err := token.NewJWTProvider(cfg.Token.SigningKey, cfg.Token.Algorithm, cfg.Token.TTL())
	if err != nil {
		return err
	}
	hasher := password.NewHasher(bcrypt.DefaultCost)

	userSvc := service.NewUserService(st.users, hasher, log)
	authSvc := service.NewAuthService(st.users, hasher, log)
	postSvc := service.NewPostService(st.posts, cfg.Pagination.MaxSize, log)
	voteSvc := service.NewVoteService(st.posts, st.votes, log)

	e := api.NewRouter(api.Deps{
		Logger:          log,
		Auth:            usecase.NewAuth(authSvc, userSvc, tokens, cache, log),
		Users:           usecase.NewUsers(userSvc),
		Posts:           usecase.NewPosts(postSvc),
		Votes:           usecase.NewVotes(voteSvc),
		DefaultPageSize: cfg.Pagination.DefaultSize,
		LoginRateLimit:  cfg.LoginRateLimit,
		ReadinessChecks: checks,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(e.Shutdown, log)
	})
	return g.Wait()
}

func shutdown(fn func(context.Context) error, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("http server shutting down")
	return fn(ctx)
}

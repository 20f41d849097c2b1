package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/ports"
	"github.com/inkwell/posts-api/internal/infrastructure/config"
	mongostore "github.com/inkwell/posts-api/internal/infrastructure/db/mongo"
	"github.com/inkwell/posts-api/internal/infrastructure/db/postgres"
	"github.com/inkwell/posts-api/internal/infrastructure/http/handlers"
)

// store bundles the repositories of whichever backend STORE_DRIVER selects.
type store struct {
	users ports.UserRepository
	posts ports.PostRepository
	votes ports.VoteRepository
	check handlers.Check
	close func(ctx context.Context)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Str("driver", config.DriverPostgres).Msg("store ready")

	return &store{
		users: postgres.NewUserRepository(pool),
		posts: postgres.NewPostRepository(pool),
		votes: postgres.NewVoteRepository(pool),
		check: handlers.Check{Name: "postgres", Ping: pool.Ping},
		close: func(context.Context) { pool.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("driver", config.DriverMongo).Str("database", cfg.Mongo.Database).Msg("store ready")

	return &store{
		users: mongostore.NewUserRepository(db),
		posts: mongostore.NewPostRepository(db, log),
		votes: mongostore.NewVoteRepository(db),
		check: handlers.Check{
			Name: "mongo",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_SIGNING_KEY": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, "posts_api", cfg.Mongo.Database)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "HS256", cfg.Token.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL())
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Equal(t, 100, cfg.Pagination.MaxSize)
	assert.Equal(t, 20, cfg.LoginRateLimit)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"TOKEN_SIGNING_KEY": "secret",
		"TOKEN_ALGORITHM":   "HS512",
		"TOKEN_TTL_MINUTES": "5",
		"STORE_DRIVER":      "mongo",
		"REDIS_ENABLED":     "false",
		"REDIS_PASSWORD":    "pw",
		"DEFAULT_PAGE_SIZE": "3",
		"MAX_PAGE_SIZE":     "7",
	}))
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.Token.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.Token.TTL())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Pagination.DefaultSize)
	assert.Equal(t, 7, cfg.Pagination.MaxSize)
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing key", map[string]string{}, "TOKEN_SIGNING_KEY"},
		{"rsa algorithm", map[string]string{"TOKEN_SIGNING_KEY": "k", "TOKEN_ALGORITHM": "RS256"}, "TOKEN_ALGORITHM"},
		{"zero ttl", map[string]string{"TOKEN_SIGNING_KEY": "k", "TOKEN_TTL_MINUTES": "0"}, "TOKEN_TTL_MINUTES"},
		{"unknown driver", map[string]string{"TOKEN_SIGNING_KEY": "k", "STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"default above max", map[string]string{"TOKEN_SIGNING_KEY": "k", "DEFAULT_PAGE_SIZE": "50", "MAX_PAGE_SIZE": "20"}, "DEFAULT_PAGE_SIZE"},
		{"negative rate limit", map[string]string{"TOKEN_SIGNING_KEY": "k", "LOGIN_RATE_LIMIT": "-1"}, "LOGIN_RATE_LIMIT"},
		{"bad integer", map[string]string{"TOKEN_SIGNING_KEY": "k", "MAX_PAGE_SIZE": "many"}, "MAX_PAGE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

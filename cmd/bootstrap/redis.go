package bootstrap

import (
	"context"

	"appointment-engine/internal/handler/middleware"
	"appointment-engine/internal/infra/redisstore"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			redisstore.NewOAuthStateStore,
			fx.As(new(commands.OAuthStateStore)),
		),
		fx.Annotate(
			NewAgentRateLimiter,
			fx.As(new(middleware.RateLimiter)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	rdb, cleanup, err := redisstore.Connect(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return rdb, nil
}

func NewAgentRateLimiter(rdb *redis.Client, cfg config.Config) *redisstore.RateLimiter {
	return redisstore.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, "rl:agent")
}

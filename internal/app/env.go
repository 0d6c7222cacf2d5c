package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/migrate"
	"github.com/MrSnakeDoc/marks/internal/redis"
	"github.com/MrSnakeDoc/marks/internal/service"
	"github.com/MrSnakeDoc/marks/internal/store"
	"github.com/MrSnakeDoc/marks/internal/store/memory"
	"github.com/MrSnakeDoc/marks/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/marks/internal/store/redis"
)

// Env is the storage and service graph shared by the server and the CLI
// commands that write data.
type Env struct {
	StoreName string
	Health    store.Pinger
	Cache     *redisstore.Store // nil when Redis is not configured

	Auth        *service.AuthService
	Bookmarks   *service.BookmarkService
	Collections *service.CollectionService

	closers []func()
}

// Open selects the store backend, connects the optional Redis cache and
// builds the services on top of them.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (_ *Env, err error) {
	env := &Env{StoreName: cfg.Store}
	log = log.With(logger.String("store", cfg.Store))
	defer func() {
		if err != nil {
			env.Close()
		}
	}()

	var (
		bookmarks   store.Bookmarks
		collections store.Collections
		users       store.Users
	)

	switch cfg.Store {
	case config.StorePostgres:
		if cfg.AutoMigrate {
			log.Info("applying database migrations")
			if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		env.closers = append(env.closers, db.Close)
		env.Health = db
		bookmarks = postgres.NewBookmarkRepo(db)
		collections = postgres.NewCollectionRepo(db)
		users = postgres.NewUserRepo(db)
		log.Info("postgres store ready")

	case config.StoreMemory:
		db := memory.New()
		env.Health = db
		bookmarks = memory.NewBookmarkRepo(db)
		collections = memory.NewCollectionRepo(db)
		users = memory.NewUserRepo(db)
		log.Warn("using the in-memory store, data is lost on exit")

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	var (
		cache service.SearchCache
		deny  service.Denylist = service.NewMemoryDenylist()
	)
	if cfg.RedisAddr != "" {
		client, err := connectRedis(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		env.closers = append(env.closers, func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis", logger.Error(err))
			}
		})
		env.Cache = redisstore.NewStore(client, cfg.SearchCacheTTL)
		cache = env.Cache
		deny = env.Cache
		log.Info("redis search cache and token denylist enabled")
	} else {
		log.Info("redis not configured, searches are uncached and revoked tokens are kept in process")
	}

	env.Collections = service.NewCollectionService(collections, cache, log)
	env.Bookmarks = service.NewBookmarkService(bookmarks, env.Collections, cache, log)
	env.Auth = service.NewAuthService(users, []byte(cfg.JWTSecret), cfg.TokenTTL, deny)
	return env, nil
}

// Close releases the store and Redis connections.
func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

func connectRedis(ctx context.Context, cfg *config.Config, log logger.Logger) (*goredis.Client, error) {
	return redis.New(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, log)
}

package app

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    logger.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := NewPostgres(cfg.PG)
	if err != nil {
		return nil, err
	}
	a.db = db

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.redis = rdb

	version, err := runMigrations(cfg.PG)
	if err != nil {
		a.redis.Close()
		a.db.Close()
		return nil, err
	}
	log.Info("migrations applied", "dir", cfg.PG.MigrationsDir, "version", version)

	a.router = newRouter(cfg, log, a.db, a.redis)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("redis close", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	return nil
}

// NewPostgres opens and pings a pool. The task CLI shares it with the server.
func NewPostgres(pg config.PGConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = pg.MaxConns
	cfg.MinConns = pg.MinConns
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// runMigrations applies pending goose migrations and returns the resulting schema version.
func runMigrations(pg config.PGConfig) (int64, error) {
	db, err := goose.OpenDBWithDriver("pgx", pg.DSN)
	if err != nil {
		return 0, fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, pg.MigrationsDir); err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return version, nil
}

func newRouter(cfg config.Config, log logger.Logger, db *pgxpool.Pool, rdb *redis.Client) *gin.Engine {
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, cfg, log, db, rdb)
	return r
}

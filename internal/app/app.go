// Package app assembles the ledger from configuration. The server and the CLI
// share it so both talk to the same backend the same way.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/handler"
	"github.com/iho/fundledger/internal/adapter/repository/file"
	postgresRepo "github.com/iho/fundledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fundledger/internal/adapter/repository/redis"
	"github.com/iho/fundledger/internal/adapter/repository/sqlite"
	"github.com/iho/fundledger/internal/adapter/storage/s3"
	"github.com/iho/fundledger/internal/infrastructure/config"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
	"github.com/iho/fundledger/internal/infrastructure/redis"
	"github.com/iho/fundledger/internal/usecase"
)

// App is a wired ledger with its optional collaborators.
type App struct {
	Config  *config.Config
	Store   usecase.Store
	Facade  *usecase.Facade
	Metrics *metrics.Metrics

	// Pool is set for the postgres backend only.
	Pool *pgxpool.Pool
	// Redis is nil when REDIS_URL is empty.
	Redis *goredis.Client
	// Checks are the readiness dependencies.
	Checks []handler.Check

	closers []func()
}

// New opens the configured backend and wires the facade. reg may be nil.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{Config: cfg}

	if err := a.openStore(ctx, log); err != nil {
		a.Close()
		return nil, err
	}

	facadeCfg := usecase.FacadeConfig{
		IDGen:                 postgresRepo.NewEventIDGenerator(),
		StatsCacheTTL:         cfg.StatsCacheTTL,
		BackupPrefix:          cfg.S3Prefix,
		RejectDuplicateTxHash: cfg.RejectDuplicateTxHash,
		Logger:                log,
	}

	if reg != nil {
		a.Metrics = metrics.New(reg)
		facadeCfg.Metrics = a.Metrics
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = client
		a.closers = append(a.closers, func() { client.Close() })
		a.Checks = append(a.Checks, handler.Check{
			Name:   "redis",
			Pinger: handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
		})
		facadeCfg.Cache = redisRepo.NewCache(client)
		log.Info().Msg("connected to redis")
	}

	if cfg.S3Bucket != "" {
		objects, err := s3.New(ctx, s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		facadeCfg.Backups = objects
	}

	a.Facade = usecase.NewFacade(a.Store, facadeCfg)

	return a, nil
}

func (a *App) openStore(ctx context.Context, log zerolog.Logger) error {
	cfg := a.Config

	switch cfg.StoreDriver {
	case config.StoreFile:
		store, err := file.Open(cfg.DataFile)
		if err != nil {
			return err
		}
		a.Store = store.Repositories()
		log.Info().Str("path", cfg.DataFile).Msg("using file ledger store")

	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return err
		}
		a.Store = store.Repositories()
		a.closers = append(a.closers, func() { store.Close() })
		a.Checks = append(a.Checks, handler.Check{Name: "sqlite", Pinger: store})
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite ledger store")

	case config.StorePostgres:
		if cfg.MigrateOnStart {
			if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
				return err
			}
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return err
		}
		a.Pool = pool
		a.closers = append(a.closers, pool.Close)
		a.Checks = append(a.Checks, handler.Check{Name: "postgres", Pinger: pool})
		a.Store = usecase.Store{
			TxManager:   postgresRepo.NewTxManager(pool),
			Funds:       postgresRepo.NewFundRepository(pool),
			Investments: postgresRepo.NewInvestmentRepository(pool),
			Swaps:       postgresRepo.NewSwapRepository(pool),
			Sequences:   postgresRepo.NewSequenceRepository(),
			Outbox:      postgresRepo.NewOutboxRepository(pool),
			Retrier:     postgresRepo.NewRetrier(log),
		}
		log.Info().Msg("connected to postgres")

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

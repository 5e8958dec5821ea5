package main

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cart-manager/internal/config"
	"github.com/nikolayk812/cart-manager/internal/logger"
	"github.com/nikolayk812/cart-manager/internal/migrations"
	"github.com/nikolayk812/cart-manager/internal/port"
	"github.com/nikolayk812/cart-manager/internal/repository"
	"github.com/redis/go-redis/v9"
)

// openStore connects the cart store selected by cfg.Store.Driver. The
// returned func releases the connection.
func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (port.CartRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		if cfg.Postgres.RunMigrations {
			version, err := migrations.Up(cfg.Postgres.URL)
			if err != nil {
				return nil, nil, fmt.Errorf("migrations.Up: %w", err)
			}
			log.Infof("postgres schema at version %d", version)
		}

		pool, err := repository.ConnectPostgres(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.ConnectPostgres: %w", err)
		}

		return repository.NewCart(pool), pool.Close, nil

	case config.StoreRedis:
		client, err := repository.ConnectRedis(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("repository.ConnectRedis: %w", err)
		}

		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warnf("redis close: %v", err)
			}
		}

		return repository.NewRedisCart(client, cfg.Redis.CartTTL), closeFn, nil

	case config.StoreMongo:
		db, err := repository.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.ConnectMongo: %w", err)
		}

		closeFn := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Warnf("mongo disconnect: %v", err)
			}
		}

		return repository.NewMongoCart(db), closeFn, nil
	}

	return nil, nil, fmt.Errorf("store driver[%s] is not supported", cfg.Store.Driver)
}

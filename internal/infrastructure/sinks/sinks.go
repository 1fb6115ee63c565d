// Package sinks connects the flight event sinks enabled in the configuration
// and registers them on a dispatcher.
package sinks

import (
	"context"

	"flightdesk-service/internal/infrastructure/broker"
	"flightdesk-service/internal/infrastructure/config"
	"flightdesk-service/internal/infrastructure/persistence"
	eventRepo "flightdesk-service/internal/interface/repository"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
)

// Closer releases the connections opened by Register
type Closer func(ctx context.Context)

// Register connects every configured sink and adds it to d. A sink that
// cannot be reached is logged and skipped; the desk runs without it.
func Register(ctx context.Context, cfg *config.Config, d *usecase.EventDispatcher, log logger.Logger) Closer {
	var closers []func(ctx context.Context)

	if cfg.ActionLogFile != "" {
		repo, err := eventRepo.NewFileFlightEventRepository(cfg.ActionLogFile)
		if err != nil {
			log.Warn("Action log file disabled", "path", cfg.ActionLogFile, "error", err)
		} else {
			d.AddSink("file", repo)
			closers = append(closers, func(context.Context) { repo.Close() })
		}
	}

	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		db, err := persistence.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Warn("MongoDB sink disabled", "error", err)
		} else {
			repo, err := eventRepo.NewMongoFlightEventRepository(ctx, db)
			if err != nil {
				log.Warn("MongoDB sink disabled", "error", err)
			} else {
				d.AddSink("mongodb", repo)
			}
			closers = append(closers, func(ctx context.Context) {
				if err := db.Client().Disconnect(ctx); err != nil {
					log.Error("MongoDB disconnect error", "error", err)
				}
			})
		}
	}

	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		db, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI)
		if err != nil {
			log.Warn("PostgreSQL sink disabled", "error", err)
		} else {
			repo, err := eventRepo.NewGormFlightEventRepository(db)
			if err != nil {
				log.Warn("PostgreSQL sink disabled", "error", err)
			} else {
				d.AddSink("postgres", repo)
			}
			closers = append(closers, func(context.Context) {
				if err := persistence.ClosePostgresDB(db); err != nil {
					log.Error("PostgreSQL close error", "error", err)
				}
			})
		}
	}

	if cfg.RedisAddr != "" {
		log.Info("Connecting to Redis", "addr", cfg.RedisAddr)
		client, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("Redis sink disabled", "error", err)
		} else {
			d.AddSink("redis", eventRepo.NewRedisFlightEventRepository(client, cfg.RedisActionKey))
			closers = append(closers, func(context.Context) {
				if err := client.Close(); err != nil {
					log.Error("Redis close error", "error", err)
				}
			})
		}
	}

	if cfg.AMQPURL != "" {
		log.Info("Connecting to RabbitMQ")
		conn, err := broker.Dial(cfg.AMQPURL)
		if err != nil {
			log.Warn("RabbitMQ sink disabled", "error", err)
		} else {
			repo, err := eventRepo.NewAMQPFlightEventRepository(conn.Channel, cfg.AMQPExchange)
			if err != nil {
				log.Warn("RabbitMQ sink disabled", "error", err)
			} else {
				d.AddSink("rabbitmq", repo)
			}
			closers = append(closers, func(context.Context) {
				if err := conn.Close(); err != nil {
					log.Error("RabbitMQ close error", "error", err)
				}
			})
		}
	}

	return func(ctx context.Context) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i](ctx)
		}
	}
}

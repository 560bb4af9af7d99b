package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bootstrap holds every process-wide resource. Redis, RabbitMQ, and MongoDB
// are nil unless the selected delivery mode or the delivery log needs them.
type Bootstrap struct {
	Router         *chi.Mux
	Logger         *zap.Logger
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	MongoDB        *mongo.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop, when set, is called during Shutdown to stop the queue
	// drain worker before connections close.
	WorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		log.Println("Successfully stopped delivery worker")
	}

	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closed Redis")
	}

	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closed RabbitMQ")
	}

	if b.MongoDB != nil {
		if err := b.MongoDB.Disconnect(ctx); err != nil {
			return err
		}
		log.Println("Successfully closed MongoDB")
	}

	if err := b.Logger.Sync(); err != nil {
		return err
	}
	return nil
}

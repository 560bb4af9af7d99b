package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/delivery/http/controllers"
	"oneroom-connector/internal/app/delivery/http/middlewares"
	"oneroom-connector/internal/app/delivery/http/routers"
	"oneroom-connector/internal/app/drivers/database"
	"oneroom-connector/internal/app/drivers/logger"
	"oneroom-connector/internal/app/drivers/messaging"
	"oneroom-connector/internal/app/services/core/deliveries"
	"oneroom-connector/internal/app/services/core/events"
	"oneroom-connector/internal/app/services/shared/deliveryqueue"
	"oneroom-connector/internal/app/services/shared/dispatcher"
	"oneroom-connector/internal/app/services/shared/locker"
	redisrepo "oneroom-connector/internal/app/services/shared/redis"
	"oneroom-connector/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	chiRouter := chi.NewRouter()
	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during resource shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig
	driverConfig := bootstrap.DriverConfig
	zapLogger := bootstrap.Logger

	// Delivery log is persisted only when Mongo is configured.
	var deliveryLogRepo contracts.DeliveryLogRepository
	if driverConfig.MongoDB.Host != "" {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		deliveryLogRepo = deliveries.NewMongoDeliveryLogRepository(bootstrap.MongoDB, driverConfig.MongoDB.DbName)
	}

	directDispatcher := dispatcher.NewWebhookDispatcher(internalConfig.Webhook, zapLogger)

	// Queue mode routes events through RabbitMQ; a locked background worker
	// drains them with the direct dispatcher.
	eventDispatcher := directDispatcher
	if internalConfig.Webhook.DeliveryMode == constvars.DeliveryModeQueue {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
		queue, err := deliveryqueue.NewService(bootstrap.RabbitMQ, zapLogger, internalConfig.Webhook.MaxQueue)
		if err != nil {
			log.Fatalf("Failed to initialize delivery queue: %v", err)
		}
		eventDispatcher = deliveryqueue.NewQueuedDispatcher(queue, zapLogger)

		bootstrap.Redis = database.NewRedisClient(driverConfig)
		redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
		lockService := locker.NewLockService(redisRepository, zapLogger)

		worker := deliveries.NewWorker(zapLogger, internalConfig.Webhook, lockService, queue, directDispatcher, deliveryLogRepo)
		bootstrap.WorkerStop = worker.Start(context.Background())
	}

	eventUsecase := events.NewEventUsecase(internalConfig.Webhook, eventDispatcher, deliveryLogRepo, zapLogger)
	eventController := controllers.NewEventController(zapLogger, eventUsecase, validator.New())

	var deliveryController *controllers.DeliveryController
	if deliveryLogRepo != nil {
		deliveryUsecase := deliveries.NewDeliveryUsecase(deliveryLogRepo, zapLogger)
		deliveryController = controllers.NewDeliveryController(zapLogger, deliveryUsecase)
	}

	mw := middlewares.NewMiddlewares(zapLogger)
	routers.SetupRoutes(bootstrap.Router, internalConfig, mw, eventController, deliveryController)
}

package database

import (
	"context"
	"fmt"
	"log"

	"oneroom-connector/internal/app/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	connectionString := fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(connectionString))
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	if err := client.Ping(context.TODO(), nil); err != nil {
		log.Fatalf("Failed to ping mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

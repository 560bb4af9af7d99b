package deliveries

import (
	"context"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const deliveryCollection = "deliveries"

type mongoDeliveryLogRepository struct {
	collection *mongo.Collection
}

// NewMongoDeliveryLogRepository persists delivery records in the deliveries
// collection of the configured database.
func NewMongoDeliveryLogRepository(client *mongo.Client, dbName string) contracts.DeliveryLogRepository {
	return &mongoDeliveryLogRepository{
		collection: client.Database(dbName).Collection(deliveryCollection),
	}
}

func (r *mongoDeliveryLogRepository) Insert(ctx context.Context, record *models.DeliveryRecord) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *mongoDeliveryLogRepository) FindByEventID(ctx context.Context, eventID string) ([]models.DeliveryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	records := make([]models.DeliveryRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, nil
}

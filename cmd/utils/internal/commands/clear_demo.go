package commands

import (
	"context"
	"fmt"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ClearDemo removes the documents recorded by the seed marker, then the
// marker itself. Data created outside seed-demo is left alone.
func ClearDemo(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	logger.Info("Starting demo data cleanup...")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")
	db := client.Database(dbName)

	seedsCollection := db.Collection("_seeds")

	var marker struct {
		IDs map[string][]uuid.UUID `bson:"ids"`
	}
	err = seedsCollection.FindOne(ctx, bson.M{"_id": seedMarker}).Decode(&marker)
	if err != nil {
		logger.Info("No demo seed marker found, nothing to clear")
		return nil
	}

	for collection, ids := range marker.IDs {
		if len(ids) == 0 {
			continue
		}
		result, err := db.Collection(collection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return fmt.Errorf("delete demo documents from %s: %w", collection, err)
		}
		logger.Infof("Deleted %d demo documents from %s", result.DeletedCount, collection)
	}

	if _, err := seedsCollection.DeleteOne(ctx, bson.M{"_id": seedMarker}); err != nil {
		return fmt.Errorf("delete seed marker: %w", err)
	}
	logger.Info("Cleared demo seed marker")
	return nil
}

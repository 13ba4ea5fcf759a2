package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/brigadeclub/brigade/cmd/utils/internal/seeding"
)

const seedMarker = "demo_brigade_v1"

// SeedDemo loads a small demo data set: stations, tables, staff, recipes and
// control points. Seeding is idempotent; a marker document keeps it from
// running twice.
func SeedDemo(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	logger.Info("Starting demo seeding process...")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")
	db := client.Database(dbName)

	seedsCollection := db.Collection("_seeds")
	count, err := seedsCollection.CountDocuments(ctx, bson.M{"_id": seedMarker})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}
	if count > 0 {
		logger.Info("Demo seeds already applied, skipping")
		return nil
	}

	seeded, err := seeding.Apply(ctx, db)
	if err != nil {
		return fmt.Errorf("apply demo seeds: %w", err)
	}

	// The marker records every seeded id so clear-demo can remove exactly
	// what seed-demo created.
	_, err = seedsCollection.InsertOne(ctx, bson.M{
		"_id":         seedMarker,
		"description": "Demo kitchen: stations, floor tables, staff accounts, recipes and HACCP control points",
		"applied_at":  time.Now().UTC(),
		"ids":         seeded,
	})
	if err != nil {
		logger.Infof("Failed to mark seed as applied: %v", err)
	}

	for collection, ids := range seeded {
		logger.Infof("Seeded %d documents into %s", len(ids), collection)
	}
	return nil
}

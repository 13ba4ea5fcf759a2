// Package seeding loads a small, coherent demo restaurant: a kitchen line,
// a dining floor, the brigade roster, a handful of recipes and the HACCP
// control points that watch over them.
package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Apply seeds every demo collection and returns the inserted ids keyed by
// collection name so the caller can record them for later cleanup.
func Apply(ctx context.Context, db *mongo.Database) (map[string][]uuid.UUID, error) {
	seeded := make(map[string][]uuid.UUID)

	stationIDs, err := SeedStations(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("seed stations: %w", err)
	}
	seeded["stations"] = stationIDs

	tableIDs, err := SeedTables(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("seed tables: %w", err)
	}
	seeded["tables"] = tableIDs

	userIDs, err := SeedUsers(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	seeded["users"] = userIDs

	recipeIDs, err := SeedRecipes(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("seed recipes: %w", err)
	}
	seeded["recipes"] = recipeIDs

	pointIDs, err := SeedControlPoints(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("seed control points: %w", err)
	}
	seeded["control_points"] = pointIDs

	return seeded, nil
}

func insertAll[T interface{ GetID() uuid.UUID }](ctx context.Context, collection *mongo.Collection, docs []T) ([]uuid.UUID, error) {
	payload := make([]interface{}, 0, len(docs))
	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, doc)
		ids = append(ids, doc.GetID())
	}

	if _, err := collection.InsertMany(ctx, payload); err != nil {
		return nil, err
	}
	return ids, nil
}

package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/inventory"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type ItemRepo struct {
	collection *mongo.Collection
}

func NewItemRepo(db *mongo.Database) *ItemRepo {
	return &ItemRepo{
		collection: db.Collection("inventory_items"),
	}
}

func (r *ItemRepo) Create(ctx context.Context, item *inventory.Item) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return createErr("inventory item", err)
	}
	return nil
}

func (r *ItemRepo) Get(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, getErr("inventory item", err)
	}
	return &item, nil
}

func (r *ItemRepo) List(ctx context.Context) ([]*inventory.Item, error) {
	return r.find(ctx, bson.M{})
}

func (r *ItemRepo) ListByCategory(ctx context.Context, category string) ([]*inventory.Item, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*inventory.Item, error) {
	return r.find(ctx, bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$reorder_level"}}})
}

func (r *ItemRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*inventory.Item, error) {
	return r.find(ctx, bson.M{"expires_at": bson.M{"$exists": true, "$lt": cutoff}})
}

func (r *ItemRepo) Save(ctx context.Context, item *inventory.Item) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": item.ID}, bson.M{"$set": item})
	if err != nil {
		return saveErr("inventory item", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("inventory item")
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete inventory item", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("inventory item")
	}
	return nil
}

func (r *ItemRepo) find(ctx context.Context, query bson.M) ([]*inventory.Item, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list inventory items", err)
	}
	defer cursor.Close(ctx)

	result := make([]*inventory.Item, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode inventory items", err)
	}
	return result, nil
}

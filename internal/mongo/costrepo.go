package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brigadeclub/brigade/internal/costs"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type CostRepo struct {
	collection *mongo.Collection
}

func NewCostRepo(db *mongo.Database) *CostRepo {
	return &CostRepo{
		collection: db.Collection("costs"),
	}
}

func (r *CostRepo) Create(ctx context.Context, cost *costs.Cost) error {
	if _, err := r.collection.InsertOne(ctx, cost); err != nil {
		return createErr("cost", err)
	}
	return nil
}

func (r *CostRepo) Get(ctx context.Context, id uuid.UUID) (*costs.Cost, error) {
	var cost costs.Cost
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cost); err != nil {
		return nil, getErr("cost", err)
	}
	return &cost, nil
}

func (r *CostRepo) List(ctx context.Context) ([]*costs.Cost, error) {
	return r.find(ctx, bson.M{})
}

func (r *CostRepo) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]*costs.Cost, error) {
	return r.find(ctx, bson.M{"cost_center_id": centerID})
}

func (r *CostRepo) ListByCategory(ctx context.Context, category string) ([]*costs.Cost, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *CostRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*costs.Cost, error) {
	return r.find(ctx, bson.M{"incurred_at": bson.M{"$gte": from, "$lt": to}})
}

func (r *CostRepo) Save(ctx context.Context, cost *costs.Cost) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": cost.ID}, bson.M{"$set": cost})
	if err != nil {
		return saveErr("cost", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("cost")
	}
	return nil
}

func (r *CostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete cost", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("cost")
	}
	return nil
}

func (r *CostRepo) find(ctx context.Context, query bson.M) ([]*costs.Cost, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list costs", err)
	}
	defer cursor.Close(ctx)

	result := make([]*costs.Cost, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode costs", err)
	}
	return result, nil
}

type CostCenterRepo struct {
	collection *mongo.Collection
}

func NewCostCenterRepo(db *mongo.Database) *CostCenterRepo {
	return &CostCenterRepo{
		collection: db.Collection("cost_centers"),
	}
}

func (r *CostCenterRepo) Create(ctx context.Context, center *costs.CostCenter) error {
	if _, err := r.collection.InsertOne(ctx, center); err != nil {
		return createErr("cost center", err)
	}
	return nil
}

func (r *CostCenterRepo) Get(ctx context.Context, id uuid.UUID) (*costs.CostCenter, error) {
	var center costs.CostCenter
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&center); err != nil {
		return nil, getErr("cost center", err)
	}
	return &center, nil
}

func (r *CostCenterRepo) List(ctx context.Context) ([]*costs.CostCenter, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fail.FromErr("cannot list cost centers", err)
	}
	defer cursor.Close(ctx)

	result := make([]*costs.CostCenter, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode cost centers", err)
	}
	return result, nil
}

func (r *CostCenterRepo) Save(ctx context.Context, center *costs.CostCenter) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": center.ID}, bson.M{"$set": center})
	if err != nil {
		return saveErr("cost center", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("cost center")
	}
	return nil
}

func (r *CostCenterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete cost center", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("cost center")
	}
	return nil
}

type RecipeCostRepo struct {
	collection *mongo.Collection
}

func NewRecipeCostRepo(db *mongo.Database) *RecipeCostRepo {
	return &RecipeCostRepo{
		collection: db.Collection("recipe_costs"),
	}
}

// EnsureIndexes creates the unique index on recipe_id: one cost breakdown
// per recipe.
func (r *RecipeCostRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "recipe_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fail.FromErr("cannot create recipe cost index", err)
	}
	return nil
}

func (r *RecipeCostRepo) Create(ctx context.Context, recipeCost *costs.RecipeCost) error {
	if _, err := r.collection.InsertOne(ctx, recipeCost); err != nil {
		return createErr("recipe cost", err)
	}
	return nil
}

func (r *RecipeCostRepo) Get(ctx context.Context, id uuid.UUID) (*costs.RecipeCost, error) {
	var recipeCost costs.RecipeCost
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipeCost); err != nil {
		return nil, getErr("recipe cost", err)
	}
	return &recipeCost, nil
}

func (r *RecipeCostRepo) GetByRecipe(ctx context.Context, recipeID uuid.UUID) (*costs.RecipeCost, error) {
	var recipeCost costs.RecipeCost
	if err := r.collection.FindOne(ctx, bson.M{"recipe_id": recipeID}).Decode(&recipeCost); err != nil {
		return nil, getErr("recipe cost", err)
	}
	return &recipeCost, nil
}

func (r *RecipeCostRepo) List(ctx context.Context) ([]*costs.RecipeCost, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fail.FromErr("cannot list recipe costs", err)
	}
	defer cursor.Close(ctx)

	result := make([]*costs.RecipeCost, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode recipe costs", err)
	}
	return result, nil
}

func (r *RecipeCostRepo) Save(ctx context.Context, recipeCost *costs.RecipeCost) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeCost.ID}, bson.M{"$set": recipeCost})
	if err != nil {
		return saveErr("recipe cost", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("recipe cost")
	}
	return nil
}

func (r *RecipeCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete recipe cost", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("recipe cost")
	}
	return nil
}

package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/menu"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type RecipeRepo struct {
	collection *mongo.Collection
}

func NewRecipeRepo(db *mongo.Database) *RecipeRepo {
	return &RecipeRepo{
		collection: db.Collection("recipes"),
	}
}

func (r *RecipeRepo) Create(ctx context.Context, recipe *menu.Recipe) error {
	if _, err := r.collection.InsertOne(ctx, recipe); err != nil {
		return createErr("recipe", err)
	}
	return nil
}

func (r *RecipeRepo) Get(ctx context.Context, id uuid.UUID) (*menu.Recipe, error) {
	var recipe menu.Recipe
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		return nil, getErr("recipe", err)
	}
	return &recipe, nil
}

func (r *RecipeRepo) List(ctx context.Context) ([]*menu.Recipe, error) {
	return r.find(ctx, bson.M{})
}

func (r *RecipeRepo) ListByCategory(ctx context.Context, category string) ([]*menu.Recipe, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *RecipeRepo) ListByTag(ctx context.Context, tag string) ([]*menu.Recipe, error) {
	return r.find(ctx, bson.M{"dietary_tags": tag})
}

func (r *RecipeRepo) Save(ctx context.Context, recipe *menu.Recipe) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipe.ID}, bson.M{"$set": recipe})
	if err != nil {
		return saveErr("recipe", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("recipe")
	}
	return nil
}

func (r *RecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete recipe", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("recipe")
	}
	return nil
}

func (r *RecipeRepo) find(ctx context.Context, query bson.M) ([]*menu.Recipe, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list recipes", err)
	}
	defer cursor.Close(ctx)

	result := make([]*menu.Recipe, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode recipes", err)
	}
	return result, nil
}

package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brigadeclub/brigade/internal/staff"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique index on email. Emails are normalized
// before write, so the index sees one casing per address.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fail.FromErr("cannot create user email index", err)
	}
	return nil
}

func (r *UserRepo) Create(ctx context.Context, user *staff.User) error {
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return createErr("user", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*staff.User, error) {
	var user staff.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, getErr("user", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*staff.User, error) {
	var user staff.User
	if err := r.collection.FindOne(ctx, bson.M{"email": staff.NormalizeEmail(email)}).Decode(&user); err != nil {
		return nil, getErr("user", err)
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*staff.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*staff.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *UserRepo) Save(ctx context.Context, user *staff.User) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": user})
	if err != nil {
		return saveErr("user", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("user")
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete user", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("user")
	}
	return nil
}

func (r *UserRepo) find(ctx context.Context, query bson.M) ([]*staff.User, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list users", err)
	}
	defer cursor.Close(ctx)

	result := make([]*staff.User, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode users", err)
	}
	return result, nil
}

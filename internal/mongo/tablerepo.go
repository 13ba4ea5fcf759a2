package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brigadeclub/brigade/internal/tables"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type TableRepo struct {
	collection *mongo.Collection
}

func NewTableRepo(db *mongo.Database) *TableRepo {
	return &TableRepo{
		collection: db.Collection("tables"),
	}
}

// EnsureIndexes creates the unique index on table number. The index is what
// makes duplicate numbers surface as Conflict on create and renumber.
func (r *TableRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fail.FromErr("cannot create table number index", err)
	}
	return nil
}

func (r *TableRepo) Create(ctx context.Context, table *tables.Table) error {
	if _, err := r.collection.InsertOne(ctx, table); err != nil {
		return createErr("table", err)
	}
	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*tables.Table, error) {
	var table tables.Table
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&table); err != nil {
		return nil, getErr("table", err)
	}
	return &table, nil
}

func (r *TableRepo) GetByNumber(ctx context.Context, number string) (*tables.Table, error) {
	var table tables.Table
	if err := r.collection.FindOne(ctx, bson.M{"number": number}).Decode(&table); err != nil {
		return nil, getErr("table", err)
	}
	return &table, nil
}

func (r *TableRepo) List(ctx context.Context) ([]*tables.Table, error) {
	return r.find(ctx, bson.M{})
}

func (r *TableRepo) ListByStatus(ctx context.Context, status string) ([]*tables.Table, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *TableRepo) ListBySection(ctx context.Context, section string) ([]*tables.Table, error) {
	return r.find(ctx, bson.M{"section": section})
}

func (r *TableRepo) Save(ctx context.Context, table *tables.Table) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": table.ID}, bson.M{"$set": table})
	if err != nil {
		return saveErr("table", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("table")
	}
	return nil
}

func (r *TableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete table", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("table")
	}
	return nil
}

func (r *TableRepo) find(ctx context.Context, query bson.M) ([]*tables.Table, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list tables", err)
	}
	defer cursor.Close(ctx)

	result := make([]*tables.Table, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode tables", err)
	}
	return result, nil
}

type ReservationRepo struct {
	collection *mongo.Collection
}

func NewReservationRepo(db *mongo.Database) *ReservationRepo {
	return &ReservationRepo{
		collection: db.Collection("reservations"),
	}
}

func (r *ReservationRepo) Create(ctx context.Context, reservation *tables.Reservation) error {
	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return createErr("reservation", err)
	}
	return nil
}

func (r *ReservationRepo) Get(ctx context.Context, id uuid.UUID) (*tables.Reservation, error) {
	var reservation tables.Reservation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		return nil, getErr("reservation", err)
	}
	return &reservation, nil
}

func (r *ReservationRepo) List(ctx context.Context) ([]*tables.Reservation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReservationRepo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]*tables.Reservation, error) {
	return r.find(ctx, bson.M{"table_id": tableID})
}

func (r *ReservationRepo) Save(ctx context.Context, reservation *tables.Reservation) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": reservation.ID}, bson.M{"$set": reservation})
	if err != nil {
		return saveErr("reservation", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("reservation")
	}
	return nil
}

func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete reservation", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("reservation")
	}
	return nil
}

func (r *ReservationRepo) find(ctx context.Context, query bson.M) ([]*tables.Reservation, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list reservations", err)
	}
	defer cursor.Close(ctx)

	result := make([]*tables.Reservation, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode reservations", err)
	}
	return result, nil
}

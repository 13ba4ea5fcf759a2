package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/kitchen"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type StationRepo struct {
	collection *mongo.Collection
}

func NewStationRepo(db *mongo.Database) *StationRepo {
	return &StationRepo{
		collection: db.Collection("stations"),
	}
}

func (r *StationRepo) Create(ctx context.Context, station *kitchen.Station) error {
	if _, err := r.collection.InsertOne(ctx, station); err != nil {
		return createErr("station", err)
	}
	return nil
}

func (r *StationRepo) Get(ctx context.Context, id uuid.UUID) (*kitchen.Station, error) {
	var station kitchen.Station
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&station); err != nil {
		return nil, getErr("station", err)
	}
	return &station, nil
}

func (r *StationRepo) List(ctx context.Context) ([]*kitchen.Station, error) {
	return r.find(ctx, bson.M{})
}

func (r *StationRepo) ListByType(ctx context.Context, stationType string) ([]*kitchen.Station, error) {
	return r.find(ctx, bson.M{"type": stationType})
}

func (r *StationRepo) Save(ctx context.Context, station *kitchen.Station) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": station.ID}, bson.M{"$set": station})
	if err != nil {
		return saveErr("station", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("station")
	}
	return nil
}

func (r *StationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete station", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("station")
	}
	return nil
}

func (r *StationRepo) find(ctx context.Context, query bson.M) ([]*kitchen.Station, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list stations", err)
	}
	defer cursor.Close(ctx)

	result := make([]*kitchen.Station, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode stations", err)
	}
	return result, nil
}

type TimerRepo struct {
	collection *mongo.Collection
}

func NewTimerRepo(db *mongo.Database) *TimerRepo {
	return &TimerRepo{
		collection: db.Collection("timers"),
	}
}

func (r *TimerRepo) Create(ctx context.Context, timer *kitchen.Timer) error {
	if _, err := r.collection.InsertOne(ctx, timer); err != nil {
		return createErr("timer", err)
	}
	return nil
}

func (r *TimerRepo) Get(ctx context.Context, id uuid.UUID) (*kitchen.Timer, error) {
	var timer kitchen.Timer
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&timer); err != nil {
		return nil, getErr("timer", err)
	}
	return &timer, nil
}

func (r *TimerRepo) List(ctx context.Context) ([]*kitchen.Timer, error) {
	return r.find(ctx, bson.M{})
}

func (r *TimerRepo) ListByStation(ctx context.Context, stationID kitchen.StationID) ([]*kitchen.Timer, error) {
	return r.find(ctx, bson.M{"station_id": stationID})
}

func (r *TimerRepo) ListByStatus(ctx context.Context, status string) ([]*kitchen.Timer, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *TimerRepo) Save(ctx context.Context, timer *kitchen.Timer) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": timer.ID}, bson.M{"$set": timer})
	if err != nil {
		return saveErr("timer", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("timer")
	}
	return nil
}

func (r *TimerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete timer", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("timer")
	}
	return nil
}

func (r *TimerRepo) find(ctx context.Context, query bson.M) ([]*kitchen.Timer, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list timers", err)
	}
	defer cursor.Close(ctx)

	result := make([]*kitchen.Timer, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode timers", err)
	}
	return result, nil
}

package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/foodsafety"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type TemperatureLogRepo struct {
	collection *mongo.Collection
}

func NewTemperatureLogRepo(db *mongo.Database) *TemperatureLogRepo {
	return &TemperatureLogRepo{
		collection: db.Collection("temperature_logs"),
	}
}

func (r *TemperatureLogRepo) Create(ctx context.Context, log *foodsafety.TemperatureLog) error {
	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		return createErr("temperature log", err)
	}
	return nil
}

func (r *TemperatureLogRepo) Get(ctx context.Context, id uuid.UUID) (*foodsafety.TemperatureLog, error) {
	var log foodsafety.TemperatureLog
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log); err != nil {
		return nil, getErr("temperature log", err)
	}
	return &log, nil
}

func (r *TemperatureLogRepo) List(ctx context.Context) ([]*foodsafety.TemperatureLog, error) {
	return r.find(ctx, bson.M{})
}

func (r *TemperatureLogRepo) ListByLocation(ctx context.Context, location string) ([]*foodsafety.TemperatureLog, error) {
	return r.find(ctx, bson.M{"location": location})
}

func (r *TemperatureLogRepo) ListSince(ctx context.Context, since time.Time) ([]*foodsafety.TemperatureLog, error) {
	return r.find(ctx, bson.M{"recorded_at": bson.M{"$gte": since}})
}

func (r *TemperatureLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete temperature log", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("temperature log")
	}
	return nil
}

func (r *TemperatureLogRepo) find(ctx context.Context, query bson.M) ([]*foodsafety.TemperatureLog, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list temperature logs", err)
	}
	defer cursor.Close(ctx)

	result := make([]*foodsafety.TemperatureLog, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode temperature logs", err)
	}
	return result, nil
}

type ViolationRepo struct {
	collection *mongo.Collection
}

func NewViolationRepo(db *mongo.Database) *ViolationRepo {
	return &ViolationRepo{
		collection: db.Collection("violations"),
	}
}

func (r *ViolationRepo) Create(ctx context.Context, violation *foodsafety.Violation) error {
	if _, err := r.collection.InsertOne(ctx, violation); err != nil {
		return createErr("violation", err)
	}
	return nil
}

func (r *ViolationRepo) Get(ctx context.Context, id uuid.UUID) (*foodsafety.Violation, error) {
	var violation foodsafety.Violation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&violation); err != nil {
		return nil, getErr("violation", err)
	}
	return &violation, nil
}

func (r *ViolationRepo) List(ctx context.Context) ([]*foodsafety.Violation, error) {
	return r.find(ctx, bson.M{})
}

func (r *ViolationRepo) ListOpen(ctx context.Context) ([]*foodsafety.Violation, error) {
	return r.find(ctx, bson.M{"resolved": false})
}

func (r *ViolationRepo) ListBySeverity(ctx context.Context, sev string) ([]*foodsafety.Violation, error) {
	return r.find(ctx, bson.M{"severity": sev})
}

func (r *ViolationRepo) Save(ctx context.Context, violation *foodsafety.Violation) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": violation.ID}, bson.M{"$set": violation})
	if err != nil {
		return saveErr("violation", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("violation")
	}
	return nil
}

func (r *ViolationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete violation", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("violation")
	}
	return nil
}

func (r *ViolationRepo) find(ctx context.Context, query bson.M) ([]*foodsafety.Violation, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list violations", err)
	}
	defer cursor.Close(ctx)

	result := make([]*foodsafety.Violation, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode violations", err)
	}
	return result, nil
}

type ControlPointRepo struct {
	collection *mongo.Collection
}

func NewControlPointRepo(db *mongo.Database) *ControlPointRepo {
	return &ControlPointRepo{
		collection: db.Collection("control_points"),
	}
}

func (r *ControlPointRepo) Create(ctx context.Context, point *foodsafety.ControlPoint) error {
	if _, err := r.collection.InsertOne(ctx, point); err != nil {
		return createErr("control point", err)
	}
	return nil
}

func (r *ControlPointRepo) Get(ctx context.Context, id uuid.UUID) (*foodsafety.ControlPoint, error) {
	var point foodsafety.ControlPoint
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&point); err != nil {
		return nil, getErr("control point", err)
	}
	return &point, nil
}

func (r *ControlPointRepo) List(ctx context.Context) ([]*foodsafety.ControlPoint, error) {
	return r.find(ctx, bson.M{})
}

// ListDue fetches active points and filters by cadence in memory. Due-ness
// depends on now minus last check, which does not index well.
func (r *ControlPointRepo) ListDue(ctx context.Context, now time.Time) ([]*foodsafety.ControlPoint, error) {
	active, err := r.find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}

	due := make([]*foodsafety.ControlPoint, 0, len(active))
	for _, point := range active {
		if point.CheckDue(now) {
			due = append(due, point)
		}
	}
	return due, nil
}

func (r *ControlPointRepo) Save(ctx context.Context, point *foodsafety.ControlPoint) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": point.ID}, bson.M{"$set": point})
	if err != nil {
		return saveErr("control point", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("control point")
	}
	return nil
}

func (r *ControlPointRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete control point", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("control point")
	}
	return nil
}

func (r *ControlPointRepo) find(ctx context.Context, query bson.M) ([]*foodsafety.ControlPoint, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list control points", err)
	}
	defer cursor.Close(ctx)

	result := make([]*foodsafety.ControlPoint, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode control points", err)
	}
	return result, nil
}

type AuditRepo struct {
	collection *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) *AuditRepo {
	return &AuditRepo{
		collection: db.Collection("audits"),
	}
}

func (r *AuditRepo) Create(ctx context.Context, audit *foodsafety.Audit) error {
	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		return createErr("audit", err)
	}
	return nil
}

func (r *AuditRepo) Get(ctx context.Context, id uuid.UUID) (*foodsafety.Audit, error) {
	var audit foodsafety.Audit
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit); err != nil {
		return nil, getErr("audit", err)
	}
	return &audit, nil
}

func (r *AuditRepo) List(ctx context.Context) ([]*foodsafety.Audit, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fail.FromErr("cannot list audits", err)
	}
	defer cursor.Close(ctx)

	result := make([]*foodsafety.Audit, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode audits", err)
	}
	return result, nil
}

func (r *AuditRepo) Save(ctx context.Context, audit *foodsafety.Audit) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": audit.ID}, bson.M{"$set": audit})
	if err != nil {
		return saveErr("audit", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("audit")
	}
	return nil
}

func (r *AuditRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete audit", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("audit")
	}
	return nil
}

package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/analytics"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type MetricRepo struct {
	collection *mongo.Collection
}

func NewMetricRepo(db *mongo.Database) *MetricRepo {
	return &MetricRepo{
		collection: db.Collection("kitchen_metrics"),
	}
}

func (r *MetricRepo) Create(ctx context.Context, metric *analytics.KitchenMetric) error {
	if _, err := r.collection.InsertOne(ctx, metric); err != nil {
		return createErr("metric", err)
	}
	return nil
}

func (r *MetricRepo) Get(ctx context.Context, id uuid.UUID) (*analytics.KitchenMetric, error) {
	var metric analytics.KitchenMetric
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&metric); err != nil {
		return nil, getErr("metric", err)
	}
	return &metric, nil
}

func (r *MetricRepo) List(ctx context.Context) ([]*analytics.KitchenMetric, error) {
	return r.find(ctx, bson.M{})
}

func (r *MetricRepo) ListByStation(ctx context.Context, stationID uuid.UUID) ([]*analytics.KitchenMetric, error) {
	return r.find(ctx, bson.M{"station_id": stationID})
}

func (r *MetricRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*analytics.KitchenMetric, error) {
	return r.find(ctx, bson.M{"recorded_at": bson.M{"$gte": from, "$lt": to}})
}

func (r *MetricRepo) Save(ctx context.Context, metric *analytics.KitchenMetric) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": metric.ID}, bson.M{"$set": metric})
	if err != nil {
		return saveErr("metric", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("metric")
	}
	return nil
}

func (r *MetricRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete metric", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("metric")
	}
	return nil
}

func (r *MetricRepo) find(ctx context.Context, query bson.M) ([]*analytics.KitchenMetric, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list metrics", err)
	}
	defer cursor.Close(ctx)

	result := make([]*analytics.KitchenMetric, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode metrics", err)
	}
	return result, nil
}

type OrderAnalyticsRepo struct {
	collection *mongo.Collection
}

func NewOrderAnalyticsRepo(db *mongo.Database) *OrderAnalyticsRepo {
	return &OrderAnalyticsRepo{
		collection: db.Collection("order_analytics"),
	}
}

func (r *OrderAnalyticsRepo) Create(ctx context.Context, stats *analytics.OrderAnalytics) error {
	if _, err := r.collection.InsertOne(ctx, stats); err != nil {
		return createErr("order analytics record", err)
	}
	return nil
}

func (r *OrderAnalyticsRepo) Get(ctx context.Context, id uuid.UUID) (*analytics.OrderAnalytics, error) {
	var stats analytics.OrderAnalytics
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stats); err != nil {
		return nil, getErr("order analytics record", err)
	}
	return &stats, nil
}

func (r *OrderAnalyticsRepo) List(ctx context.Context) ([]*analytics.OrderAnalytics, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderAnalyticsRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*analytics.OrderAnalytics, error) {
	return r.find(ctx, bson.M{"period_start": bson.M{"$gte": from, "$lt": to}})
}

func (r *OrderAnalyticsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete order analytics record", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("order analytics record")
	}
	return nil
}

func (r *OrderAnalyticsRepo) find(ctx context.Context, query bson.M) ([]*analytics.OrderAnalytics, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list order analytics records", err)
	}
	defer cursor.Close(ctx)

	result := make([]*analytics.OrderAnalytics, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode order analytics records", err)
	}
	return result, nil
}

type StaffAnalyticsRepo struct {
	collection *mongo.Collection
}

func NewStaffAnalyticsRepo(db *mongo.Database) *StaffAnalyticsRepo {
	return &StaffAnalyticsRepo{
		collection: db.Collection("staff_analytics"),
	}
}

func (r *StaffAnalyticsRepo) Create(ctx context.Context, stats *analytics.StaffPerformanceAnalytics) error {
	if _, err := r.collection.InsertOne(ctx, stats); err != nil {
		return createErr("staff analytics record", err)
	}
	return nil
}

func (r *StaffAnalyticsRepo) Get(ctx context.Context, id uuid.UUID) (*analytics.StaffPerformanceAnalytics, error) {
	var stats analytics.StaffPerformanceAnalytics
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stats); err != nil {
		return nil, getErr("staff analytics record", err)
	}
	return &stats, nil
}

func (r *StaffAnalyticsRepo) List(ctx context.Context) ([]*analytics.StaffPerformanceAnalytics, error) {
	return r.find(ctx, bson.M{})
}

func (r *StaffAnalyticsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*analytics.StaffPerformanceAnalytics, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListByRole is not served: role is not stored on performance records.
func (r *StaffAnalyticsRepo) ListByRole(ctx context.Context, role string) ([]*analytics.StaffPerformanceAnalytics, error) {
	return nil, fail.ErrUnsupported
}

func (r *StaffAnalyticsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete staff analytics record", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("staff analytics record")
	}
	return nil
}

func (r *StaffAnalyticsRepo) find(ctx context.Context, query bson.M) ([]*analytics.StaffPerformanceAnalytics, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fail.FromErr("cannot list staff analytics records", err)
	}
	defer cursor.Close(ctx)

	result := make([]*analytics.StaffPerformanceAnalytics, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode staff analytics records", err)
	}
	return result, nil
}

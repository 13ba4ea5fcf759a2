package mongo

import (
	"context"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brigadeclub/brigade/internal/orders"
	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
	"github.com/brigadeclub/brigade/pkg/fail"
)

type OrderRepo struct {
	collection *mongo.Collection
	logger     aqm.Logger
}

func NewOrderRepo(db *mongo.Database, logger aqm.Logger) *OrderRepo {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &OrderRepo{
		collection: db.Collection("orders"),
		logger:     logger,
	}
}

func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) error {
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return createErr("order", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, getErr("order", err)
	}
	return &order, nil
}

func (r *OrderRepo) List(ctx context.Context, filter orders.OrderFilter) ([]*orders.Order, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.StationID != nil {
		query["station_id"] = *filter.StationID
	}

	opts := options.Find()
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fail.FromErr("cannot list orders", err)
	}
	defer cursor.Close(ctx)

	result := make([]*orders.Order, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode orders", err)
	}
	return result, nil
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*orders.Order, error) {
	return r.List(ctx, orders.OrderFilter{Status: &status})
}

func (r *OrderRepo) ListByStation(ctx context.Context, stationID orders.StationID) ([]*orders.Order, error) {
	return r.List(ctx, orders.OrderFilter{StationID: &stationID})
}

func (r *OrderRepo) Save(ctx context.Context, order *orders.Order) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": order})
	if err != nil {
		return saveErr("order", err)
	}
	if result.MatchedCount == 0 {
		return notFoundErr("order")
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fail.FromErr("cannot delete order", err)
	}
	if result.DeletedCount == 0 {
		return notFoundErr("order")
	}
	return nil
}

// Watch subscribes to the collection's change stream and re-lists the open
// order set on every emission. The channel closes when ctx is cancelled or
// the stream ends.
func (r *OrderRepo) Watch(ctx context.Context) (<-chan []*orders.Order, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fail.FromErr("cannot watch orders", err)
	}

	ch := make(chan []*orders.Order, 1)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			open, err := r.openOrders(ctx)
			if err != nil {
				r.logger.Error("cannot list open orders after change event", "error", err)
				continue
			}
			select {
			case ch <- open:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (r *OrderRepo) openOrders(ctx context.Context) ([]*orders.Order, error) {
	query := bson.M{"status": bson.M{"$nin": bson.A{
		orderstatus.Statuses.Completed.Code(),
		orderstatus.Statuses.Cancelled.Code(),
	}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fail.FromErr("cannot list open orders", err)
	}
	defer cursor.Close(ctx)

	result := make([]*orders.Order, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fail.FromErr("cannot decode open orders", err)
	}
	return result, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

type OrderRepository struct {
	Col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{Col: db.Collection("orders")}
}

// Insert persists a new order and backfills the surrogate id.
func (r *OrderRepository) Insert(ctx context.Context, o *entity.Order) error {
	res, err := r.Col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

// FindByOrderID looks up by the business id. A missing document is
// (nil, nil) so callers can chain lookups.
func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	var o entity.Order
	err := r.Col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var o entity.Order
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusGuard applies the status patch only while the order still
// holds the status observed by the caller. (nil, nil) means a
// concurrent writer moved it first.
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, id primitive.ObjectID, from, to entity.OrderStatus) (*entity.Order, error) {
	var o entity.Order
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]entity.Order, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := make([]entity.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.Col.CountDocuments(ctx, filter)
}

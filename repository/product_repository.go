package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

type ProductRepository struct {
	Col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{Col: db.Collection("products")}
}

// FindByRef resolves a product by the reference an order item carries.
// A ref that is not a valid ObjectID, or that matches nothing, yields
// (nil, nil) — order creation treats that as a missing catalog entry.
func (r *ProductRepository) FindByRef(ctx context.Context, ref string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return nil, nil
	}

	var p entity.Product
	err = r.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *entity.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.Col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := make([]entity.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

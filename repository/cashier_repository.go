package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

type CashierRepository struct {
	Col *mongo.Collection
}

func NewCashierRepository(db *mongo.Database) *CashierRepository {
	return &CashierRepository{Col: db.Collection("cashiers")}
}

func (r *CashierRepository) FindByUserName(ctx context.Context, userName string) (*entity.Cashier, error) {
	var c entity.Cashier
	err := r.Col.FindOne(ctx, bson.M{"userName": userName}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetSession replaces the cashier's session (nil clears it) and returns
// the document as it was before the write, so callers can report the
// previous session. (nil, nil) when the cashier does not exist.
func (r *CashierRepository) SetSession(ctx context.Context, userName string, session *string) (*entity.Cashier, error) {
	set := bson.M{"updatedAt": time.Now()}
	unset := bson.M{}
	if session != nil {
		set["currentSession"] = *session
	} else {
		unset["currentSession"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var before entity.Cashier
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"userName": userName},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &before, nil
}

// AppendStatusLog pushes one audit entry onto the cashier document.
func (r *CashierRepository) AppendStatusLog(ctx context.Context, userName string, log entity.StatusUpdateLog) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"userName": userName},
		bson.M{
			"$push": bson.M{"statusUpdateLogs": log},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}

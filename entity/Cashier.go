package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusUpdateLog is one audit entry pushed onto the acting cashier's
// document for every status-update attempt, successful or not.
type StatusUpdateLog struct {
	OrderKey        string      `bson:"orderKey" json:"orderKey"`
	RequestedStatus string      `bson:"requestedStatus" json:"requestedStatus"`
	PreviousStatus  OrderStatus `bson:"previousStatus,omitempty" json:"previousStatus,omitempty"`
	Success         bool        `bson:"success" json:"success"`
	Reason          string      `bson:"reason,omitempty" json:"reason,omitempty"`
	At              time.Time   `bson:"at" json:"at"`
}

type Cashier struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	UserName         string             `bson:"userName" json:"userName"`
	Password         string             `bson:"password" json:"-"`
	Role             Role               `bson:"role" json:"role"`
	CurrentSession   *string            `bson:"currentSession,omitempty" json:"currentSession,omitempty"`
	StatusUpdateLogs []StatusUpdateLog  `bson:"statusUpdateLogs,omitempty" json:"statusUpdateLogs,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

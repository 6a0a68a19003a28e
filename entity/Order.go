package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Line1      string `bson:"line1" json:"line1"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// Customer is the contact snapshot embedded in each order.
// UserID is nil for guest orders.
type Customer struct {
	UserID  *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name    string              `bson:"name" json:"name"`
	Email   string              `bson:"email" json:"email"`
	Phone   string              `bson:"phone" json:"phone"`
	Address Address             `bson:"address" json:"address"`
}

// OrderItem snapshots product name/image at creation time so the order
// stays readable after catalog changes.
type OrderItem struct {
	ProductID    string  `bson:"productId" json:"productId"`
	ProductName  string  `bson:"productName" json:"productName"`
	ProductImage string  `bson:"productImage" json:"productImage"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	Price        float64 `bson:"price" json:"price"`
	Subtotal     float64 `bson:"subtotal" json:"subtotal"`
}

type PaymentLink struct {
	LinkID      string `bson:"linkId" json:"linkId"`
	CheckoutURL string `bson:"checkoutUrl" json:"checkoutUrl"`
	Reference   string `bson:"reference" json:"reference"`
	Status      string `bson:"status" json:"status"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	Customer      Customer           `bson:"customer" json:"customer"`
	Items         []OrderItem        `bson:"items" json:"items"`
	DeliveryType  DeliveryType       `bson:"deliveryType" json:"deliveryType"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee   float64            `bson:"deliveryFee" json:"deliveryFee"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Currency      string             `bson:"currency" json:"currency"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentLink   *PaymentLink       `bson:"paymentLink,omitempty" json:"paymentLink,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

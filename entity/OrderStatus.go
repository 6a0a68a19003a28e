package entity

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"  // cash orders start here
	StatusProcessing OrderStatus = "processing" // online orders start here
	StatusReceived   OrderStatus = "received"
	StatusPreparing  OrderStatus = "preparing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// FulfilmentSequence is the forward path a status update may walk, one
// step at a time.
var FulfilmentSequence = []OrderStatus{
	StatusPending, StatusReceived, StatusPreparing, StatusShipped, StatusDelivered,
}

// RequestableStatuses are the values a status-update request may carry.
var RequestableStatuses = []OrderStatus{
	StatusPending, StatusReceived, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled,
}

// Requestable reports whether s is a value a caller may ask to move an
// order to.
func (s OrderStatus) Requestable() bool {
	for _, v := range RequestableStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// SequenceIndex returns the position of s on the fulfilment path, or -1
// if s is not on it. The creation statuses confirmed and processing rank
// with pending, so a fresh order's first fulfilment step is "received".
func (s OrderStatus) SequenceIndex() int {
	if s == StatusConfirmed || s == StatusProcessing {
		return 0
	}
	for i, v := range FulfilmentSequence {
		if s == v {
			return i
		}
	}
	return -1
}

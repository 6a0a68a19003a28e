package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/cache"
	"github.com/lamji/crud-api-mern-sub001/pkg/paymongo"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/utils"
)

const (
	orderCacheTTL    = time.Hour
	listCacheTTL     = 5 * time.Minute
	listCachePattern = "orders:list:*"
)

// OrderStore is the slice of the orders collection the service needs.
// Lookups return (nil, nil) on a miss.
type OrderStore interface {
	Insert(ctx context.Context, o *entity.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	UpdateStatusGuard(ctx context.Context, id primitive.ObjectID, from, to entity.OrderStatus) (*entity.Order, error)
	List(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]entity.Order, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type ProductCatalog interface {
	FindByRef(ctx context.Context, ref string) (*entity.Product, error)
}

type PaymentLinker interface {
	CreateLink(ctx context.Context, amount int64, description, remarks string) (*paymongo.Link, error)
}

// StatusFeed receives successful status changes; implementations must
// not block.
type StatusFeed interface {
	PublishStatus(orderID string, status entity.OrderStatus, at time.Time)
}

type OrderService struct {
	Store    OrderStore
	Products ProductCatalog
	Cashiers CashierStore
	Cache    cache.Cache
	Payments PaymentLinker
	Feed     StatusFeed
	Log      *zap.SugaredLogger

	DefaultDeliveryFee float64
	Currency           string
}

func NewOrderService(
	store OrderStore,
	products ProductCatalog,
	cashiers CashierStore,
	c cache.Cache,
	payments PaymentLinker,
	log *zap.SugaredLogger,
	defaultDeliveryFee float64,
	currency string,
) *OrderService {
	return &OrderService{
		Store:              store,
		Products:           products,
		Cashiers:           cashiers,
		Cache:              c,
		Payments:           payments,
		Log:                log,
		DefaultDeliveryFee: defaultDeliveryFee,
		Currency:           currency,
	}
}

// ----- DTOs from Controller -----

type AddressIn struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type CustomerIn struct {
	UserID  string     `json:"userId"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone"`
	Address *AddressIn `json:"address"`
}

type OrderItemIn struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderReq struct {
	Customer      *CustomerIn   `json:"customer"`
	Items         []OrderItemIn `json:"items"`
	DeliveryType  string        `json:"deliveryType"`
	PaymentMethod string        `json:"paymentMethod"`
	DeliveryFee   *float64      `json:"deliveryFee"`
}

// PaymentLinkSummary reports link amounts in major currency units.
type PaymentLinkSummary struct {
	LinkID      string  `json:"linkId"`
	CheckoutURL string  `json:"checkoutUrl"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	Fee         float64 `json:"fee"`
	NetAmount   float64 `json:"netAmount"`
}

type CreateOrderRes struct {
	Order       *entity.Order
	PaymentLink *PaymentLinkSummary
}

// ----- Create -----

func (s *OrderService) Create(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error) {
	if req.Customer == nil {
		return nil, resp.NewError(400, "customer is required")
	}
	if len(req.Items) == 0 {
		return nil, resp.NewError(400, "items is required")
	}
	deliveryType := entity.DeliveryType(req.DeliveryType)
	if !deliveryType.Valid() {
		return nil, resp.NewError(400, "deliveryType must be pickup or delivery")
	}
	paymentMethod := entity.PaymentMethod(req.PaymentMethod)
	if !paymentMethod.Valid() {
		return nil, resp.NewError(400, "paymentMethod must be cash or online")
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		return nil, resp.NewError(400, "customer phone is required")
	}
	if req.Customer.Address == nil {
		return nil, resp.NewError(400, "customer address is required")
	}

	deliveryFee := 0.0
	if deliveryType == entity.DeliveryDelivery {
		if req.DeliveryFee != nil {
			if *req.DeliveryFee < 0 {
				return nil, resp.NewError(400, "deliveryFee must be a non-negative number")
			}
			deliveryFee = *req.DeliveryFee
		} else {
			deliveryFee = s.DefaultDeliveryFee
		}
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	subtotal := 0.0
	for _, it := range req.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, resp.NewError(400, "every item needs a productId")
		}
		if it.Quantity <= 0 {
			return nil, resp.NewError(400, "item quantity must be a positive integer")
		}
		if it.Price < 0 {
			return nil, resp.NewError(400, "item price must be non-negative")
		}

		// Missing catalog entries are non-fatal: fall back to a
		// placeholder so stale carts can still check out.
		name := "Product " + it.ProductID
		image := ""
		product, err := s.Products.FindByRef(ctx, it.ProductID)
		if err != nil {
			s.Log.Warnw("catalog lookup failed", "productId", it.ProductID, "err", err)
		}
		if product != nil {
			name = product.Name
			image = product.Image
		}

		line := float64(it.Quantity) * it.Price
		subtotal += line
		items = append(items, entity.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  name,
			ProductImage: image,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Subtotal:     line,
		})
	}

	now := time.Now()
	order := &entity.Order{
		OrderID:       utils.NewOrderID(),
		Customer:      buildCustomer(req.Customer),
		Items:         items,
		DeliveryType:  deliveryType,
		PaymentMethod: paymentMethod,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		TotalAmount:   subtotal + deliveryFee,
		Currency:      s.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var summary *PaymentLinkSummary
	if paymentMethod == entity.PayOnline {
		amount := int64(math.Round(order.TotalAmount * 100))
		link, err := s.Payments.CreateLink(ctx, amount, "Payment for "+order.OrderID, order.OrderID)
		if err != nil {
			// The order is never persisted on provider failure; the
			// draft goes back to the caller for inspection.
			order.Status = entity.StatusPending
			order.PaymentStatus = entity.PaymentPending
			return nil, &resp.APIError{
				Status:  400,
				Message: "payment link creation failed: " + err.Error(),
				Payload: map[string]any{"order": order},
			}
		}
		order.Status = entity.StatusProcessing
		order.PaymentStatus = entity.PaymentPending
		order.PaymentLink = &entity.PaymentLink{
			LinkID:      link.ID,
			CheckoutURL: link.CheckoutURL,
			Reference:   link.Reference,
			Status:      link.Status,
		}
		summary = &PaymentLinkSummary{
			LinkID:      link.ID,
			CheckoutURL: link.CheckoutURL,
			Reference:   link.Reference,
			Amount:      float64(link.Amount) / 100,
			Fee:         float64(link.Fee) / 100,
			NetAmount:   float64(link.Amount-link.Fee) / 100,
		}
	} else {
		order.Status = entity.StatusConfirmed
		order.PaymentStatus = entity.PaymentPendingPayment
	}

	if err := s.Store.Insert(ctx, order); err != nil {
		return nil, err
	}
	s.cacheOrder(ctx, order)

	return &CreateOrderRes{Order: order, PaymentLink: summary}, nil
}

func buildCustomer(in *CustomerIn) entity.Customer {
	out := entity.Customer{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
		Address: entity.Address{
			Line1:      in.Address.Line1,
			City:       in.Address.City,
			State:      in.Address.State,
			PostalCode: in.Address.PostalCode,
			Country:    in.Address.Country,
		},
	}
	if oid, err := primitive.ObjectIDFromHex(in.UserID); err == nil {
		out.UserID = &oid
	}
	return out
}

// ----- Read path -----

func orderCacheKey(orderID string) string { return "order:" + orderID }

// GetOrder is the read-through single-order lookup. The second return
// value tags where the snapshot came from: "cache" or "database".
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*entity.Order, string, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, "", resp.NewError(400, "order id is required")
	}

	key := orderCacheKey(orderID)
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Log.Warnw("cache get failed", "key", key, "err", err)
	}
	if ok {
		var o entity.Order
		if json.Unmarshal([]byte(raw), &o) == nil {
			return &o, "cache", nil
		}
	}

	o, err := s.Store.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if o == nil {
		return nil, "", resp.NewError(404, "order not found")
	}
	s.cacheOrder(ctx, o)
	return o, "database", nil
}

func (s *OrderService) cacheOrder(ctx context.Context, o *entity.Order) {
	raw, err := json.Marshal(o)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, orderCacheKey(o.OrderID), string(raw), orderCacheTTL); err != nil {
		s.Log.Warnw("cache set failed", "key", orderCacheKey(o.OrderID), "err", err)
	}
}

// ----- List -----

type ListQuery struct {
	Page      int
	Limit     int
	Status    string
	Customer  string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

func (q ListQuery) normalized() ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 10
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	return q
}

// cacheKey is a pure function of every query parameter, so identical
// queries share an entry and any differing parameter misses.
func (q ListQuery) cacheKey() string {
	return fmt.Sprintf("orders:list:page=%d&limit=%d&status=%s&customer=%s&startDate=%s&endDate=%s&sortBy=%s&sortOrder=%s",
		q.Page, q.Limit, q.Status, q.Customer, q.StartDate, q.EndDate, q.SortBy, q.SortOrder)
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type OrderPage struct {
	Orders     []entity.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

var sortFields = map[string]string{
	"createdAt":   "createdAt",
	"updatedAt":   "updatedAt",
	"totalAmount": "totalAmount",
	"status":      "status",
	"orderId":     "orderId",
}

func (s *OrderService) ListOrders(ctx context.Context, q ListQuery) (*OrderPage, error) {
	q = q.normalized()

	key := q.cacheKey()
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Log.Warnw("cache get failed", "key", key, "err", err)
	}
	if ok {
		var page OrderPage
		if json.Unmarshal([]byte(raw), &page) == nil {
			return &page, nil
		}
	}

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Customer != "" {
		filter["customer.name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Customer), Options: "i"}
	}
	created := bson.M{}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			return nil, resp.NewError(400, "invalid startDate")
		}
		created["$gte"] = t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			return nil, resp.NewError(400, "invalid endDate")
		}
		created["$lt"] = t // end of range is exclusive
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	sortField, known := sortFields[q.SortBy]
	if !known {
		sortField = "createdAt"
	}
	dir := -1
	if q.SortOrder == "asc" {
		dir = 1
	}

	total, err := s.Store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	skip := int64((q.Page - 1) * q.Limit)
	orders, err := s.Store.List(ctx, filter, bson.D{{Key: sortField, Value: dir}}, skip, int64(q.Limit))
	if err != nil {
		return nil, err
	}

	page := &OrderPage{
		Orders: orders,
		Pagination: Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}

	if encoded, err := json.Marshal(page); err == nil {
		if err := s.Cache.Set(ctx, key, string(encoded), listCacheTTL); err != nil {
			s.Log.Warnw("cache set failed", "key", key, "err", err)
		}
	}
	return page, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
)

func deliveryReq() *CreateOrderReq {
	return &CreateOrderReq{
		Customer: &CustomerIn{
			Name:  "Juan Dela Cruz",
			Email: "juan@example.com",
			Phone: "09171234567",
			Address: &AddressIn{
				Line1: "123 Rizal St", City: "Quezon City", State: "NCR",
				PostalCode: "1100", Country: "PH",
			},
		},
		Items: []OrderItemIn{
			{ProductID: "p-espresso", Quantity: 3, Price: 100},
			{ProductID: "p-muffin", Quantity: 1, Price: 50},
		},
		DeliveryType:  "delivery",
		PaymentMethod: "cash",
	}
}

var orderIDPattern = regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{9}$`)

func TestCreateOrderTotalsWithDefaultFee(t *testing.T) {
	env := newTestEnv()

	out, err := env.svc.Create(context.Background(), deliveryReq())
	require.NoError(t, err)

	o := out.Order
	assert.Equal(t, 350.0, o.Subtotal)
	assert.Equal(t, 50.0, o.DeliveryFee)
	assert.Equal(t, 400.0, o.TotalAmount)
	assert.Equal(t, "PHP", o.Currency)
	assert.Regexp(t, orderIDPattern, o.OrderID)
	assert.Equal(t, entity.StatusConfirmed, o.Status)
	assert.Equal(t, entity.PaymentPendingPayment, o.PaymentStatus)
	assert.Nil(t, o.PaymentLink)

	for _, it := range o.Items {
		assert.Equal(t, float64(it.Quantity)*it.Price, it.Subtotal)
	}

	// creation populates the single-order cache
	_, cached, _ := env.cache.Get(context.Background(), "order:"+o.OrderID)
	assert.True(t, cached)
}

func TestCreateOrderPickupHasNoFee(t *testing.T) {
	env := newTestEnv()
	req := deliveryReq()
	req.DeliveryType = "pickup"

	out, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Order.DeliveryFee)
	assert.Equal(t, 350.0, out.Order.TotalAmount)
}

func TestCreateOrderExplicitFee(t *testing.T) {
	env := newTestEnv()
	req := deliveryReq()
	fee := 75.0
	req.DeliveryFee = &fee

	out, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 75.0, out.Order.DeliveryFee)
	assert.Equal(t, 425.0, out.Order.TotalAmount)
}

func TestCreateOrderRejectsNegativeFee(t *testing.T) {
	env := newTestEnv()
	req := deliveryReq()
	fee := -1.0
	req.DeliveryFee = &fee

	_, err := env.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, apiStatus(t, err))
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateOrderReq)
	}{
		{"missing customer", func(r *CreateOrderReq) { r.Customer = nil }},
		{"missing items", func(r *CreateOrderReq) { r.Items = nil }},
		{"missing phone", func(r *CreateOrderReq) { r.Customer.Phone = " " }},
		{"missing address", func(r *CreateOrderReq) { r.Customer.Address = nil }},
		{"bad delivery type", func(r *CreateOrderReq) { r.DeliveryType = "teleport" }},
		{"bad payment method", func(r *CreateOrderReq) { r.PaymentMethod = "barter" }},
		{"zero quantity", func(r *CreateOrderReq) { r.Items[0].Quantity = 0 }},
		{"negative price", func(r *CreateOrderReq) { r.Items[0].Price = -5 }},
		{"missing product ref", func(r *CreateOrderReq) { r.Items[0].ProductID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			req := deliveryReq()
			tc.mutate(req)

			_, err := env.svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, 400, apiStatus(t, err))
			assert.Equal(t, 0, len(env.store.byID), "nothing may be persisted")
		})
	}
}

func TestCreateOrderOnlineAttachesPaymentLink(t *testing.T) {
	env := newTestEnv()
	env.payments.link.Amount = 40000
	env.payments.link.Fee = 1000
	req := deliveryReq()
	req.PaymentMethod = "online"

	out, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	o := out.Order
	assert.Equal(t, entity.StatusProcessing, o.Status)
	assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
	require.NotNil(t, o.PaymentLink)
	assert.Equal(t, "link_abc", o.PaymentLink.LinkID)
	assert.Equal(t, "https://pay.test/link_abc", o.PaymentLink.CheckoutURL)

	require.NotNil(t, out.PaymentLink)
	assert.Equal(t, 400.0, out.PaymentLink.Amount)
	assert.Equal(t, 10.0, out.PaymentLink.Fee)
	assert.Equal(t, 390.0, out.PaymentLink.NetAmount)
	assert.Equal(t, 1, env.payments.calls)
}

func TestCreateOrderProviderFailureNotPersisted(t *testing.T) {
	env := newTestEnv()
	env.payments.err = errors.New("amount below minimum")
	req := deliveryReq()
	req.PaymentMethod = "online"

	_, err := env.svc.Create(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := err.(*resp.APIError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "amount below minimum")
	assert.NotNil(t, apiErr.Payload["order"], "draft goes back to the caller")
	assert.Equal(t, 0, len(env.store.byID), "order must not be persisted")
}

func TestCreateOrderCatalogFallback(t *testing.T) {
	env := newTestEnv()
	env.catalog.products["p-espresso"] = &entity.Product{Name: "Espresso", Image: "espresso.png"}

	out, err := env.svc.Create(context.Background(), deliveryReq())
	require.NoError(t, err)

	assert.Equal(t, "Espresso", out.Order.Items[0].ProductName)
	assert.Equal(t, "espresso.png", out.Order.Items[0].ProductImage)
	// unknown ref still checks out with a placeholder
	assert.Equal(t, "Product p-muffin", out.Order.Items[1].ProductName)
	assert.Equal(t, "", out.Order.Items[1].ProductImage)
}

func TestGetOrderRequiresID(t *testing.T) {
	env := newTestEnv()
	_, _, err := env.svc.GetOrder(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, 400, apiStatus(t, err))
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv()
	_, _, err := env.svc.GetOrder(context.Background(), "ORD-nope")
	require.Error(t, err)
	assert.Equal(t, 404, apiStatus(t, err))
}

func TestGetOrderReadThrough(t *testing.T) {
	env := newTestEnv()
	o := seedOrder(env.store, entity.StatusPending)

	first, source, err := env.svc.GetOrder(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "database", source)
	assert.Equal(t, o.OrderID, first.OrderID)

	second, source, err := env.svc.GetOrder(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "cache", source)
	assert.Equal(t, o.OrderID, second.OrderID)
}

func TestListOrdersPagination(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 25; i++ {
		seedOrder(env.store, entity.StatusPending)
	}

	out, err := env.svc.ListOrders(context.Background(), ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, len(out.Orders))
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}, out.Pagination)
}

func TestListOrdersCacheKeyIsDeterministic(t *testing.T) {
	env := newTestEnv()
	seedOrder(env.store, entity.StatusPending)

	q := ListQuery{Page: 1, Limit: 10, Status: "pending", SortBy: "createdAt", SortOrder: "desc"}
	_, err := env.svc.ListOrders(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, env.store.countCalls)

	// identical query → served from cache, store untouched
	_, err = env.svc.ListOrders(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, env.store.countCalls)

	// any differing parameter → a fresh lookup
	q.Status = "received"
	_, err = env.svc.ListOrders(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, env.store.countCalls)
}

func TestListOrdersRejectsBadDates(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.ListOrders(context.Background(), ListQuery{StartDate: "yesterday"})
	require.Error(t, err)
	assert.Equal(t, 400, apiStatus(t, err))
}

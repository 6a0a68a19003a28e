package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
)

// UpdateStatus moves an order along the fulfilment sequence (or to
// cancelled) on behalf of cashierUserName. Every attempt, successful or
// not, is audited onto the cashier's document.
func (s *OrderService) UpdateStatus(ctx context.Context, orderKey, requested, cashierUserName string) (*entity.Order, error) {
	requestedStatus := entity.OrderStatus(requested)
	if !requestedStatus.Requestable() {
		reason := fmt.Sprintf("invalid status %q: valid values are %s", requested, requestableList())
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, Reason: reason, At: time.Now(),
		})
		return nil, resp.NewError(400, reason)
	}

	order, err := s.resolveOrder(ctx, orderKey)
	if err != nil {
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, Reason: err.Error(), At: time.Now(),
		})
		return nil, err
	}
	if order == nil {
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, Reason: "order not found", At: time.Now(),
		})
		return nil, resp.NewError(404, "order not found")
	}

	if err := validateTransition(order.Status, requestedStatus); err != nil {
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, PreviousStatus: order.Status,
			Reason: err.Error(), At: time.Now(),
		})
		return nil, resp.NewError(400, err.Error())
	}

	// Conditional patch: the filter re-checks the status we validated
	// against, so a concurrent writer surfaces as zero matches instead
	// of a silently skipped step.
	updated, err := s.Store.UpdateStatusGuard(ctx, order.ID, order.Status, requestedStatus)
	if err != nil {
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, PreviousStatus: order.Status,
			Reason: err.Error(), At: time.Now(),
		})
		return nil, err
	}
	if updated == nil {
		reason := "order was updated concurrently, retry"
		s.audit(cashierUserName, entity.StatusUpdateLog{
			OrderKey: orderKey, RequestedStatus: requested, PreviousStatus: order.Status,
			Reason: reason, At: time.Now(),
		})
		return nil, resp.NewError(409, reason)
	}

	s.invalidateOrderCaches(ctx, updated.OrderID)
	s.audit(cashierUserName, entity.StatusUpdateLog{
		OrderKey: orderKey, RequestedStatus: requested, PreviousStatus: order.Status,
		Success: true, At: time.Now(),
	})
	if s.Feed != nil {
		s.Feed.PublishStatus(updated.OrderID, updated.Status, updated.UpdatedAt)
	}
	return updated, nil
}

// resolveOrder tries the surrogate id first when the key parses as one,
// then falls back to the business id.
func (s *OrderService) resolveOrder(ctx context.Context, key string) (*entity.Order, error) {
	if oid, err := primitive.ObjectIDFromHex(key); err == nil {
		o, err := s.Store.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if o != nil {
			return o, nil
		}
	}
	return s.Store.FindByOrderID(ctx, key)
}

func validateTransition(current, requested entity.OrderStatus) error {
	if requested == entity.StatusCancelled {
		if current == entity.StatusDelivered {
			return errors.New("cannot cancel a delivered order")
		}
		return nil
	}
	if requested == current {
		// Idempotent re-application.
		return nil
	}
	if current == entity.StatusCancelled {
		return errors.New("cannot update a cancelled order")
	}

	currentIdx := current.SequenceIndex()
	requestedIdx := requested.SequenceIndex()
	if currentIdx == -1 || requestedIdx != currentIdx+1 {
		return fmt.Errorf("cannot move from %s to %s: status must advance one step along %s",
			current, requested, sequenceList())
	}
	return nil
}

// invalidateOrderCaches drops the single-order entry and every cached
// list page; list entries are keyed by arbitrary filter combinations
// and cannot be targeted individually.
func (s *OrderService) invalidateOrderCaches(ctx context.Context, orderID string) {
	if err := s.Cache.Invalidate(ctx, orderCacheKey(orderID)); err != nil {
		s.Log.Warnw("cache invalidate failed", "key", orderCacheKey(orderID), "err", err)
	}
	if err := s.Cache.Invalidate(ctx, listCachePattern); err != nil {
		s.Log.Warnw("cache invalidate failed", "pattern", listCachePattern, "err", err)
	}
}

// audit records a status-update attempt on the cashier document without
// holding up the response. Failures are logged and dropped.
func (s *OrderService) audit(cashierUserName string, log entity.StatusUpdateLog) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Cashiers.AppendStatusLog(ctx, cashierUserName, log); err != nil {
			s.Log.Warnw("audit log write failed",
				"cashier", cashierUserName, "orderKey", log.OrderKey, "err", err)
		}
	}()
}

func requestableList() string {
	parts := make([]string, len(entity.RequestableStatuses))
	for i, v := range entity.RequestableStatuses {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func sequenceList() string {
	parts := make([]string, len(entity.FulfilmentSequence))
	for i, v := range entity.FulfilmentSequence {
		parts[i] = string(v)
	}
	return strings.Join(parts, " -> ")
}

// Package ordering implements the order placement workflow and the
// read-only reports over committed orders.
package ordering

import (
	"context"
	"fmt"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/logger"
	"orderdesk/internal/storage"
	"orderdesk/internal/validation"
)

// Service orchestrates the placement transaction and the reports. All
// storage access goes through the injected store; the service holds no
// connection state of its own.
type Service struct {
	store storage.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewService(store storage.Store, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// PlaceOrder resolves the customer, prices the requested items, and writes
// the order with its line items inside one transaction. Any failure rolls
// everything back; no partial order is ever visible.
func (s *Service) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlaceOrderResult, error) {
	requestID := logger.NewRequestID()

	if err := validation.PlaceOrder(&req); err != nil {
		s.log.Debug("order_rejected", requestID, err.Error())
		return domain.PlaceOrderResult{}, err
	}

	var result domain.PlaceOrderResult
	err := s.store.WithinTx(ctx, func(tx storage.Tx) error {
		customer, err := s.resolveCustomer(ctx, tx, req)
		if err != nil {
			return err
		}

		total, err := priceItems(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		orderDate := s.now().UTC().Format("2006-01-02")
		orderID, err := tx.InsertOrder(ctx, customer.ID, total, orderDate)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, line := range req.Items {
			if _, err := tx.InsertOrderItem(ctx, orderID, line.MenuItemID, line.Quantity); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		result = domain.PlaceOrderResult{
			OrderID:    orderID,
			CustomerID: customer.ID,
			Total:      total,
		}
		return nil
	})
	if err != nil {
		s.log.Error("order_rollback", requestID, "Order placement rolled back", err)
		return domain.PlaceOrderResult{}, err
	}

	s.log.Info("order_placed", requestID,
		fmt.Sprintf("Order %d placed for customer %d, total %s", result.OrderID, result.CustomerID, result.Total))
	return result, nil
}

// resolveCustomer finds the customer by id or phone, inserting a new row on
// a phone miss. Phone is the natural key; placing two orders from the same
// phone never creates a second customer. A duplicate-phone insert racing
// another placement surfaces as a conflict without aborting the transaction
// (the store inserts with ON CONFLICT DO NOTHING), so the row the other
// writer won is looked up and reused. A conflict whose row then cannot be
// found propagates to the caller.
func (s *Service) resolveCustomer(ctx context.Context, tx storage.Tx, req domain.PlaceOrderRequest) (domain.Customer, error) {
	if req.CustomerID > 0 {
		return tx.CustomerByID(ctx, req.CustomerID)
	}

	info := *req.Customer
	customer, err := tx.CustomerByPhone(ctx, info.Phone)
	if err == nil {
		return customer, nil
	}
	if !domain.IsNotFound(err) {
		return domain.Customer{}, err
	}

	id, err := tx.InsertCustomer(ctx, info)
	if err != nil {
		if domain.IsConflict(err) {
			// Another writer inserted this phone between our lookup and
			// insert; resolve against their row.
			winner, lookupErr := tx.CustomerByPhone(ctx, info.Phone)
			if domain.IsNotFound(lookupErr) {
				return domain.Customer{}, err
			}
			if lookupErr != nil {
				return domain.Customer{}, lookupErr
			}
			return winner, nil
		}
		return domain.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return domain.Customer{ID: id, Name: info.Name, Email: info.Email, Phone: info.Phone}, nil
}

// priceItems totals the requested lines in cents. Any missing menu item
// aborts the whole placement.
func priceItems(ctx context.Context, tx storage.Tx, items []domain.LineItem) (domain.Cents, error) {
	var total domain.Cents
	for _, line := range items {
		menuItem, err := tx.MenuItemByID(ctx, line.MenuItemID)
		if err != nil {
			return 0, err
		}
		total += menuItem.Price.Mul(line.Quantity)
	}
	return total, nil
}

// Package storage defines the capability surface the ordering workflow
// consumes, plus its PostgreSQL and in-memory implementations.
package storage

import (
	"context"

	"orderdesk/internal/domain"
)

// Queries is the read-only surface, valid both on the store itself and
// inside a transaction.
type Queries interface {
	CustomerByID(ctx context.Context, id int64) (domain.Customer, error)
	CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	MenuItemByID(ctx context.Context, id int64) (domain.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	OrderByID(ctx context.Context, id int64) (domain.Order, error)
	OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ItemsForOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	TotalSalesForDay(ctx context.Context, date string) (domain.Cents, error)
}

// Tx is the scope handed to a transactional function: the reads plus
// exactly the writes the placement workflow performs.
type Tx interface {
	Queries
	InsertCustomer(ctx context.Context, c domain.CustomerInfo) (int64, error)
	InsertOrder(ctx context.Context, customerID int64, total domain.Cents, date string) (int64, error)
	InsertOrderItem(ctx context.Context, orderID, menuItemID int64, quantity int) (int64, error)
}

// Store is the full capability surface: reads, single-entity maintenance
// writes, and atomic multi-statement execution via WithinTx.
type Store interface {
	Queries
	InsertCustomer(ctx context.Context, c domain.CustomerInfo) (int64, error)
	UpdateCustomer(ctx context.Context, id int64, c domain.CustomerInfo) error
	DeleteCustomer(ctx context.Context, id int64) error
	InsertMenuItem(ctx context.Context, name string, price domain.Cents) (int64, error)
	UpdateMenuItem(ctx context.Context, id int64, name string, price domain.Cents) error
	DeleteMenuItem(ctx context.Context, id int64) error

	// WithinTx runs fn inside a single transaction. A non-nil error from fn
	// rolls back every write fn performed.
	WithinTx(ctx context.Context, fn func(Tx) error) error
}

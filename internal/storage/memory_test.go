package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestMemoryCustomerUniquePhone(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
	require.NoError(t, err)

	_, err = store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Other Jane", Email: "other@example.com", Phone: "111"})
	assert.True(t, domain.IsConflict(err))

	customers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestMemoryUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	id, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
	require.NoError(t, err)
	otherID, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Joe", Email: "joe@example.com", Phone: "222"})
	require.NoError(t, err)

	require.NoError(t, store.UpdateCustomer(ctx, id, domain.CustomerInfo{Name: "Jane Q", Email: "jane@example.com", Phone: "111"}))
	updated, err := store.CustomerByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q", updated.Name)

	// Taking another customer's phone violates the unique constraint.
	err = store.UpdateCustomer(ctx, otherID, domain.CustomerInfo{Name: "Joe", Email: "joe@example.com", Phone: "111"})
	assert.True(t, domain.IsConflict(err))

	assert.True(t, domain.IsNotFound(store.UpdateCustomer(ctx, 999, domain.CustomerInfo{Name: "X", Email: "x@example.com", Phone: "333"})))
}

func TestMemoryMenuItemUniqueName(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.InsertMenuItem(ctx, "Burger", 1099)
	require.NoError(t, err)
	_, err = store.InsertMenuItem(ctx, "Burger", 999)
	assert.True(t, domain.IsConflict(err))

	_, err = store.InsertMenuItem(ctx, "Free Lunch", 0)
	assert.True(t, domain.IsConflict(err))
}

func TestMemoryDeleteRespectsForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	custID, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
	require.NoError(t, err)
	itemID, err := store.InsertMenuItem(ctx, "Burger", 1099)
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(tx Tx) error {
		orderID, err := tx.InsertOrder(ctx, custID, 1099, "2024-06-28")
		if err != nil {
			return err
		}
		_, err = tx.InsertOrderItem(ctx, orderID, itemID, 1)
		return err
	})
	require.NoError(t, err)

	assert.True(t, domain.IsConflict(store.DeleteCustomer(ctx, custID)))
	assert.True(t, domain.IsConflict(store.DeleteMenuItem(ctx, itemID)))
	assert.True(t, domain.IsNotFound(store.DeleteMenuItem(ctx, 999)))
}

func TestMemoryWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(tx Tx) error {
		if _, err := tx.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	customers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestMemoryWithinTxCommits(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var custID int64
	err := store.WithinTx(ctx, func(tx Tx) error {
		var err error
		custID, err = tx.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
		return err
	})
	require.NoError(t, err)

	customer, err := store.CustomerByID(ctx, custID)
	require.NoError(t, err)
	assert.Equal(t, "111", customer.Phone)
}

func TestMemoryInsertOrderRequiresCustomer(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	err := store.WithinTx(ctx, func(tx Tx) error {
		_, err := tx.InsertOrder(ctx, 42, 1099, "2024-06-28")
		return err
	})
	assert.True(t, domain.IsConflict(err))
}

func TestMemoryOrdersForCustomerOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	custID, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
	require.NoError(t, err)

	var ids []int64
	err = store.WithinTx(ctx, func(tx Tx) error {
		for _, date := range []string{"2024-06-01", "2024-06-03", "2024-06-03"} {
			id, err := tx.InsertOrder(ctx, custID, 1000, date)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	require.NoError(t, err)

	orders, err := store.OrdersForCustomer(ctx, custID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	// Latest date first; the newer insert wins the same-date tie.
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}

func TestMemoryTotalSalesForDay(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	custID, err := store.InsertCustomer(ctx, domain.CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "111"})
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(tx Tx) error {
		if _, err := tx.InsertOrder(ctx, custID, 2198, "2024-06-28"); err != nil {
			return err
		}
		_, err := tx.InsertOrder(ctx, custID, 1299, "2024-06-28")
		return err
	})
	require.NoError(t, err)

	total, err := store.TotalSalesForDay(ctx, "2024-06-28")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(3497), total)

	empty, err := store.TotalSalesForDay(ctx, "2024-06-29")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(0), empty)
}

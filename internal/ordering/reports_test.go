package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func setDay(svc *Service, date string) {
	day, _ := time.Parse("2006-01-02", date)
	svc.now = func() time.Time { return day }
}

func TestOrdersForCustomerMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	setDay(svc, "2024-06-01")
	first, err := svc.PlaceOrder(ctx, janeRequest(domain.LineItem{MenuItemID: 1, Quantity: 1}))
	require.NoError(t, err)

	setDay(svc, "2024-06-03")
	second, err := svc.PlaceOrder(ctx, janeRequest(domain.LineItem{MenuItemID: 2, Quantity: 1}))
	require.NoError(t, err)

	orders, err := svc.OrdersForCustomer(ctx, first.CustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].ID)
	assert.Equal(t, "2024-06-03", orders[0].Date)
	assert.Equal(t, first.OrderID, orders[1].ID)
	assert.Equal(t, "2024-06-01", orders[1].Date)
}

func TestOrdersForCustomerEmptyAndInvalid(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	custID, err := store.InsertCustomer(ctx, domain.CustomerInfo{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "9876543210",
	})
	require.NoError(t, err)

	orders, err := svc.OrdersForCustomer(ctx, custID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.OrdersForCustomer(ctx, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestTotalSalesForDay(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	setDay(svc, "2024-06-28")
	// 10.99 x 2 = 21.98 and 12.99: the day totals 34.97.
	_, err := svc.PlaceOrder(ctx, janeRequest(domain.LineItem{MenuItemID: 1, Quantity: 2}))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, janeRequest(domain.LineItem{MenuItemID: 2, Quantity: 1}))
	require.NoError(t, err)

	total, err := svc.TotalSalesForDay(ctx, "2024-06-28")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(3497), total)
	assert.Equal(t, "34.97", total.String())

	empty, err := svc.TotalSalesForDay(ctx, "2024-06-29")
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(0), empty)

	_, err = svc.TotalSalesForDay(ctx, "June 28th")
	assert.True(t, domain.IsValidation(err))
}

func TestSuggestMenuItemsRanking(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	// History favors Burger(4), Pizza(3), Fries(2), Soda(1); only the top
	// three come back.
	_, err := svc.PlaceOrder(ctx, janeRequest(
		domain.LineItem{MenuItemID: 1, Quantity: 3},
		domain.LineItem{MenuItemID: 2, Quantity: 3},
	))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, janeRequest(
		domain.LineItem{MenuItemID: 1, Quantity: 1},
		domain.LineItem{MenuItemID: 3, Quantity: 2},
		domain.LineItem{MenuItemID: 4, Quantity: 1},
	))
	require.NoError(t, err)

	suggestions, err := svc.SuggestMenuItems(ctx, "9876543210")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Burger", suggestions[0].Name)
	assert.Equal(t, "Pizza", suggestions[1].Name)
	assert.Equal(t, "French Fries", suggestions[2].Name)
}

func TestSuggestMenuItemsTieBreakByLowestID(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	_, err := svc.PlaceOrder(ctx, janeRequest(
		domain.LineItem{MenuItemID: 4, Quantity: 2},
		domain.LineItem{MenuItemID: 2, Quantity: 2},
		domain.LineItem{MenuItemID: 3, Quantity: 2},
		domain.LineItem{MenuItemID: 1, Quantity: 2},
	))
	require.NoError(t, err)

	suggestions, err := svc.SuggestMenuItems(ctx, "9876543210")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	// All quantities equal: lower menu item ids win.
	assert.Equal(t, int64(1), suggestions[0].ID)
	assert.Equal(t, int64(2), suggestions[1].ID)
	assert.Equal(t, int64(3), suggestions[2].ID)
}

func TestSuggestMenuItemsShortHistory(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	_, err := svc.PlaceOrder(ctx, janeRequest(domain.LineItem{MenuItemID: 2, Quantity: 1}))
	require.NoError(t, err)

	suggestions, err := svc.SuggestMenuItems(ctx, "9876543210")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Pizza", suggestions[0].Name)
}

func TestSuggestMenuItemsUnknownPhone(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedMenu(t, store)

	_, err := svc.SuggestMenuItems(ctx, "0000000000")
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.SuggestMenuItems(ctx, "")
	assert.True(t, domain.IsValidation(err))
}

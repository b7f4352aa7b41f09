package ordering

import (
	"context"
	"sort"

	"orderdesk/internal/domain"
	"orderdesk/internal/validation"
)

// suggestionLimit caps how many menu items a recommendation returns.
const suggestionLimit = 3

// OrdersForCustomer returns the customer's orders, most recent date first,
// higher id first among same-date orders. A customer with no orders gets an
// empty list, not an error.
func (s *Service) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	if customerID <= 0 {
		return nil, domain.ValidationError{
			Field:   "customer_id",
			Message: "customer id must be positive",
		}
	}
	return s.store.OrdersForCustomer(ctx, customerID)
}

// TotalSalesForDay sums order totals for one calendar date. Days without
// orders report zero.
func (s *Service) TotalSalesForDay(ctx context.Context, date string) (domain.Cents, error) {
	if err := validation.Date(date); err != nil {
		return 0, err
	}
	return s.store.TotalSalesForDay(ctx, date)
}

// SuggestMenuItems recommends up to three menu items for the customer with
// the given phone, ranked by total quantity across their whole order
// history. Equal quantities rank by lower menu item id.
func (s *Service) SuggestMenuItems(ctx context.Context, phone string) ([]domain.MenuItem, error) {
	if phone == "" {
		return nil, domain.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		}
	}

	customer, err := s.store.CustomerByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.OrdersForCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	quantities := make(map[int64]int)
	for _, order := range orders {
		items, err := s.store.ItemsForOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			quantities[item.MenuItemID] += item.Quantity
		}
	}

	ranked := make([]int64, 0, len(quantities))
	for id := range quantities {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if quantities[ranked[i]] != quantities[ranked[j]] {
			return quantities[ranked[i]] > quantities[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > suggestionLimit {
		ranked = ranked[:suggestionLimit]
	}

	suggestions := make([]domain.MenuItem, 0, len(ranked))
	for _, id := range ranked {
		menuItem, err := s.store.MenuItemByID(ctx, id)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, menuItem)
	}
	return suggestions, nil
}

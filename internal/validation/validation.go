package validation

import (
	"fmt"
	"regexp"
	"time"

	"orderdesk/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// PlaceOrder checks a placement request before it reaches storage.
func PlaceOrder(req *domain.PlaceOrderRequest) error {
	if req.CustomerID > 0 && req.Customer != nil {
		return domain.ValidationError{
			Field:   "customer",
			Message: "provide either customer_id or customer details, not both",
		}
	}

	if req.CustomerID <= 0 {
		if req.Customer == nil {
			return domain.ValidationError{
				Field:   "customer",
				Message: "customer_id or customer details are required",
			}
		}
		if err := Customer(*req.Customer); err != nil {
			return err
		}
	}

	if len(req.Items) == 0 {
		return domain.ValidationError{
			Field:   "items",
			Message: "at least one item is required",
		}
	}

	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return domain.ValidationError{
				Field:   fmt.Sprintf("items[%d].menu_item_id", i),
				Message: "menu item id must be positive",
			}
		}
		if item.Quantity < 1 {
			return domain.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			}
		}
	}

	return nil
}

// Customer checks contact details for a new or returning customer.
func Customer(c domain.CustomerInfo) error {
	if c.Name == "" {
		return domain.ValidationError{
			Field:   "customer.name",
			Message: "name is required",
		}
	}
	if !emailPattern.MatchString(c.Email) {
		return domain.ValidationError{
			Field:   "customer.email",
			Message: "email is not a valid address",
		}
	}
	if c.Phone == "" {
		return domain.ValidationError{
			Field:   "customer.phone",
			Message: "phone is required",
		}
	}
	return nil
}

// MenuItem checks a menu entry before it is written.
func MenuItem(name string, price domain.Cents) error {
	if name == "" {
		return domain.ValidationError{
			Field:   "menu_item.name",
			Message: "name is required",
		}
	}
	if price <= 0 {
		return domain.ValidationError{
			Field:   "menu_item.price",
			Message: "price must be positive",
		}
	}
	return nil
}

// Date checks a calendar date in YYYY-MM-DD form.
func Date(s string) error {
	if !datePattern.MatchString(s) {
		return domain.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return domain.ValidationError{
			Field:   "date",
			Message: "date is not a valid calendar date",
		}
	}
	return nil
}

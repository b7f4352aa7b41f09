package domain

// Customer is a restaurant customer. Phone is the natural key: lookups
// resolve customers by phone, and the store enforces its uniqueness.
type Customer struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
}

// MenuItem is a priced menu entry, read-only from the workflow's
// perspective.
type MenuItem struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Price Cents  `db:"price_cents"`
}

// Order is a committed order. Total is computed by the placement workflow,
// never supplied by the caller. Date is a calendar date in YYYY-MM-DD form.
type Order struct {
	ID         int64  `db:"id"`
	CustomerID int64  `db:"customer_id"`
	Total      Cents  `db:"total_cents"`
	Date       string `db:"order_date"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID         int64 `db:"id"`
	OrderID    int64 `db:"order_id"`
	MenuItemID int64 `db:"menu_item_id"`
	Quantity   int   `db:"quantity"`
}

// CustomerInfo describes a customer by contact details, used when placing
// an order without a known customer id.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// LineItem is one requested (menu item, quantity) pair.
type LineItem struct {
	MenuItemID int64
	Quantity   int
}

// PlaceOrderRequest is the input to the placement workflow. Exactly one of
// CustomerID (> 0) or Customer identifies the customer.
type PlaceOrderRequest struct {
	CustomerID int64
	Customer   *CustomerInfo
	Items      []LineItem
}

// PlaceOrderResult reports a committed order.
type PlaceOrderResult struct {
	OrderID    int64
	CustomerID int64
	Total      Cents
}

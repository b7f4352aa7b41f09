package storage

import (
	"context"
	"sort"
	"sync"

	"orderdesk/internal/domain"
)

// Memory implements Store over in-process maps. It mirrors the relational
// constraints (unique phone, unique menu name, foreign keys, positivity
// checks) so workflow code behaves the same as against Postgres. WithinTx
// runs against a copy of the state and installs the copy only on success,
// which gives real rollback semantics.
type Memory struct {
	mu    sync.Mutex
	state *memoryState
}

var (
	_ Store = (*Memory)(nil)
	_ Tx    = (*memSession)(nil)
)

func NewMemory() *Memory {
	return &Memory{state: newMemoryState()}
}

func (m *Memory) WithinTx(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	scratch := m.state.clone()
	if err := fn(&memSession{state: scratch}); err != nil {
		return err
	}
	m.state = scratch
	return nil
}

func (m *Memory) CustomerByID(ctx context.Context, id int64) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).CustomerByID(ctx, id)
}

func (m *Memory) CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).CustomerByPhone(ctx, phone)
}

func (m *Memory) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).ListCustomers(ctx)
}

func (m *Memory) MenuItemByID(ctx context.Context, id int64) (domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).MenuItemByID(ctx, id)
}

func (m *Memory) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).ListMenuItems(ctx)
}

func (m *Memory) OrderByID(ctx context.Context, id int64) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).OrderByID(ctx, id)
}

func (m *Memory) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).OrdersForCustomer(ctx, customerID)
}

func (m *Memory) ItemsForOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).ItemsForOrder(ctx, orderID)
}

func (m *Memory) TotalSalesForDay(ctx context.Context, date string) (domain.Cents, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).TotalSalesForDay(ctx, date)
}

func (m *Memory) InsertCustomer(ctx context.Context, c domain.CustomerInfo) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).InsertCustomer(ctx, c)
}

func (m *Memory) UpdateCustomer(ctx context.Context, id int64, c domain.CustomerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).UpdateCustomer(ctx, id, c)
}

func (m *Memory) DeleteCustomer(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).DeleteCustomer(ctx, id)
}

func (m *Memory) InsertMenuItem(ctx context.Context, name string, price domain.Cents) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).InsertMenuItem(ctx, name, price)
}

func (m *Memory) UpdateMenuItem(ctx context.Context, id int64, name string, price domain.Cents) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).UpdateMenuItem(ctx, id, name, price)
}

func (m *Memory) DeleteMenuItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memSession{state: m.state}).DeleteMenuItem(ctx, id)
}

type memoryState struct {
	customers  map[int64]domain.Customer
	menuItems  map[int64]domain.MenuItem
	orders     map[int64]domain.Order
	orderItems map[int64]domain.OrderItem
	lastID     map[string]int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		customers:  make(map[int64]domain.Customer),
		menuItems:  make(map[int64]domain.MenuItem),
		orders:     make(map[int64]domain.Order),
		orderItems: make(map[int64]domain.OrderItem),
		lastID:     make(map[string]int64),
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.menuItems {
		c.menuItems[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range s.lastID {
		c.lastID[k] = v
	}
	return c
}

func (s *memoryState) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

// memSession implements the query and write surface over a memoryState.
// Locking is the caller's concern.
type memSession struct {
	state *memoryState
}

func (s *memSession) CustomerByID(ctx context.Context, id int64) (domain.Customer, error) {
	c, ok := s.state.customers[id]
	if !ok {
		return domain.Customer{}, domain.NotFoundError{Entity: "customer", Key: id}
	}
	return c, nil
}

func (s *memSession) CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	for _, c := range s.state.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return domain.Customer{}, domain.NotFoundError{Entity: "customer", Key: phone}
}

func (s *memSession) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(s.state.customers))
	for _, c := range s.state.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memSession) MenuItemByID(ctx context.Context, id int64) (domain.MenuItem, error) {
	mi, ok := s.state.menuItems[id]
	if !ok {
		return domain.MenuItem{}, domain.NotFoundError{Entity: "menu item", Key: id}
	}
	return mi, nil
}

func (s *memSession) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, 0, len(s.state.menuItems))
	for _, mi := range s.state.menuItems {
		out = append(out, mi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memSession) OrderByID(ctx context.Context, id int64) (domain.Order, error) {
	o, ok := s.state.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFoundError{Entity: "order", Key: id}
	}
	return o, nil
}

func (s *memSession) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.state.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	// Most recent date first; id descending breaks same-date ties.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memSession) ItemsForOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, it := range s.state.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memSession) TotalSalesForDay(ctx context.Context, date string) (domain.Cents, error) {
	var total domain.Cents
	for _, o := range s.state.orders {
		if o.Date == date {
			total += o.Total
		}
	}
	return total, nil
}

func (s *memSession) InsertCustomer(ctx context.Context, c domain.CustomerInfo) (int64, error) {
	for _, existing := range s.state.customers {
		if existing.Phone == c.Phone {
			return 0, domain.ConflictError{
				Constraint: "customers_phone_key",
				Message:    "duplicate phone " + c.Phone,
			}
		}
	}
	id := s.state.nextID("customers")
	s.state.customers[id] = domain.Customer{ID: id, Name: c.Name, Email: c.Email, Phone: c.Phone}
	return id, nil
}

func (s *memSession) UpdateCustomer(ctx context.Context, id int64, c domain.CustomerInfo) error {
	if _, ok := s.state.customers[id]; !ok {
		return domain.NotFoundError{Entity: "customer", Key: id}
	}
	for otherID, existing := range s.state.customers {
		if otherID != id && existing.Phone == c.Phone {
			return domain.ConflictError{
				Constraint: "customers_phone_key",
				Message:    "duplicate phone " + c.Phone,
			}
		}
	}
	s.state.customers[id] = domain.Customer{ID: id, Name: c.Name, Email: c.Email, Phone: c.Phone}
	return nil
}

func (s *memSession) DeleteCustomer(ctx context.Context, id int64) error {
	if _, ok := s.state.customers[id]; !ok {
		return domain.NotFoundError{Entity: "customer", Key: id}
	}
	for _, o := range s.state.orders {
		if o.CustomerID == id {
			return domain.ConflictError{
				Constraint: "orders_customer_id_fkey",
				Message:    "customer is referenced by orders",
			}
		}
	}
	delete(s.state.customers, id)
	return nil
}

func (s *memSession) InsertMenuItem(ctx context.Context, name string, price domain.Cents) (int64, error) {
	if price <= 0 {
		return 0, domain.ConflictError{
			Constraint: "menu_items_price_cents_check",
			Message:    "price must be positive",
		}
	}
	for _, existing := range s.state.menuItems {
		if existing.Name == name {
			return 0, domain.ConflictError{
				Constraint: "menu_items_name_key",
				Message:    "duplicate menu item " + name,
			}
		}
	}
	id := s.state.nextID("menu_items")
	s.state.menuItems[id] = domain.MenuItem{ID: id, Name: name, Price: price}
	return id, nil
}

func (s *memSession) UpdateMenuItem(ctx context.Context, id int64, name string, price domain.Cents) error {
	if _, ok := s.state.menuItems[id]; !ok {
		return domain.NotFoundError{Entity: "menu item", Key: id}
	}
	if price <= 0 {
		return domain.ConflictError{
			Constraint: "menu_items_price_cents_check",
			Message:    "price must be positive",
		}
	}
	for otherID, existing := range s.state.menuItems {
		if otherID != id && existing.Name == name {
			return domain.ConflictError{
				Constraint: "menu_items_name_key",
				Message:    "duplicate menu item " + name,
			}
		}
	}
	s.state.menuItems[id] = domain.MenuItem{ID: id, Name: name, Price: price}
	return nil
}

func (s *memSession) DeleteMenuItem(ctx context.Context, id int64) error {
	if _, ok := s.state.menuItems[id]; !ok {
		return domain.NotFoundError{Entity: "menu item", Key: id}
	}
	for _, it := range s.state.orderItems {
		if it.MenuItemID == id {
			return domain.ConflictError{
				Constraint: "order_items_menu_item_id_fkey",
				Message:    "menu item is referenced by order items",
			}
		}
	}
	delete(s.state.menuItems, id)
	return nil
}

func (s *memSession) InsertOrder(ctx context.Context, customerID int64, total domain.Cents, date string) (int64, error) {
	if _, ok := s.state.customers[customerID]; !ok {
		return 0, domain.ConflictError{
			Constraint: "orders_customer_id_fkey",
			Message:    "customer does not exist",
		}
	}
	if total <= 0 {
		return 0, domain.ConflictError{
			Constraint: "orders_total_cents_check",
			Message:    "total must be positive",
		}
	}
	id := s.state.nextID("orders")
	s.state.orders[id] = domain.Order{ID: id, CustomerID: customerID, Total: total, Date: date}
	return id, nil
}

func (s *memSession) InsertOrderItem(ctx context.Context, orderID, menuItemID int64, quantity int) (int64, error) {
	if _, ok := s.state.orders[orderID]; !ok {
		return 0, domain.ConflictError{
			Constraint: "order_items_order_id_fkey",
			Message:    "order does not exist",
		}
	}
	if _, ok := s.state.menuItems[menuItemID]; !ok {
		return 0, domain.ConflictError{
			Constraint: "order_items_menu_item_id_fkey",
			Message:    "menu item does not exist",
		}
	}
	if quantity <= 0 {
		return 0, domain.ConflictError{
			Constraint: "order_items_quantity_check",
			Message:    "quantity must be positive",
		}
	}
	id := s.state.nextID("order_items")
	s.state.orderItems[id] = domain.OrderItem{ID: id, OrderID: orderID, MenuItemID: menuItemID, Quantity: quantity}
	return id, nil
}

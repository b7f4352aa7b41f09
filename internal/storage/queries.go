package storage

// Customer queries
const (
	selectCustomerByIDSQL = `
		SELECT id, name, email, phone FROM customers WHERE id = $1`

	selectCustomerByPhoneSQL = `
		SELECT id, name, email, phone FROM customers WHERE phone = $1`

	selectCustomersSQL = `
		SELECT id, name, email, phone FROM customers ORDER BY id`

	// DO NOTHING keeps a duplicate-phone insert from aborting the enclosing
	// transaction; the missing RETURNING row is reported as a conflict.
	insertCustomerSQL = `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO NOTHING
		RETURNING id`

	updateCustomerSQL = `
		UPDATE customers SET name = $1, email = $2, phone = $3 WHERE id = $4`

	deleteCustomerSQL = `
		DELETE FROM customers WHERE id = $1`
)

// Menu item queries
const (
	selectMenuItemByIDSQL = `
		SELECT id, name, price_cents FROM menu_items WHERE id = $1`

	selectMenuItemsSQL = `
		SELECT id, name, price_cents FROM menu_items ORDER BY id`

	insertMenuItemSQL = `
		INSERT INTO menu_items (name, price_cents)
		VALUES ($1, $2)
		RETURNING id`

	updateMenuItemSQL = `
		UPDATE menu_items SET name = $1, price_cents = $2 WHERE id = $3`

	deleteMenuItemSQL = `
		DELETE FROM menu_items WHERE id = $1`
)

// Order queries
const (
	selectOrderByIDSQL = `
		SELECT id, customer_id, total_cents, order_date FROM orders WHERE id = $1`

	selectOrdersForCustomerSQL = `
		SELECT id, customer_id, total_cents, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC`

	selectItemsForOrderSQL = `
		SELECT id, order_id, menu_item_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	selectTotalSalesForDaySQL = `
		SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE order_date = $1`

	insertOrderSQL = `
		INSERT INTO orders (customer_id, total_cents, order_date)
		VALUES ($1, $2, $3)
		RETURNING id`

	insertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
)

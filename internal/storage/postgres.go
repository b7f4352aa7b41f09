package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"orderdesk/internal/database"
	"orderdesk/internal/domain"
)

// pgQuerier is the query surface shared by the pool and by pgx.Tx, so the
// same session code serves both.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Store = (*Postgres)(nil)
	_ Tx    = (*pgSession)(nil)
)

// Postgres implements Store over a pgx connection pool.
type Postgres struct {
	pgSession
	db *database.DB
}

func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{
		pgSession: pgSession{q: db.Pool},
		db:        db,
	}
}

// WithinTx runs fn inside a single database transaction; fn's error rolls
// the transaction back.
func (p *Postgres) WithinTx(ctx context.Context, fn func(Tx) error) error {
	err := pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		return fn(&pgSession{q: tx})
	})
	if err != nil {
		return mapPgError("transaction", err)
	}
	return nil
}

// pgSession implements the query and write surface over either the pool or
// an open transaction.
type pgSession struct {
	q pgQuerier
}

func (s *pgSession) CustomerByID(ctx context.Context, id int64) (domain.Customer, error) {
	return collectOne[domain.Customer](ctx, s.q, "customer", id, selectCustomerByIDSQL, id)
}

func (s *pgSession) CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	return collectOne[domain.Customer](ctx, s.q, "customer", phone, selectCustomerByPhoneSQL, phone)
}

func (s *pgSession) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return collectAll[domain.Customer](ctx, s.q, "customer", selectCustomersSQL)
}

func (s *pgSession) MenuItemByID(ctx context.Context, id int64) (domain.MenuItem, error) {
	return collectOne[domain.MenuItem](ctx, s.q, "menu item", id, selectMenuItemByIDSQL, id)
}

func (s *pgSession) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return collectAll[domain.MenuItem](ctx, s.q, "menu item", selectMenuItemsSQL)
}

func (s *pgSession) OrderByID(ctx context.Context, id int64) (domain.Order, error) {
	return collectOne[domain.Order](ctx, s.q, "order", id, selectOrderByIDSQL, id)
}

func (s *pgSession) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return collectAll[domain.Order](ctx, s.q, "order", selectOrdersForCustomerSQL, customerID)
}

func (s *pgSession) ItemsForOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return collectAll[domain.OrderItem](ctx, s.q, "order item", selectItemsForOrderSQL, orderID)
}

func (s *pgSession) TotalSalesForDay(ctx context.Context, date string) (domain.Cents, error) {
	var total int64
	err := s.q.QueryRow(ctx, selectTotalSalesForDaySQL, date).Scan(&total)
	if err != nil {
		return 0, mapPgError("order", err)
	}
	return domain.Cents(total), nil
}

func (s *pgSession) InsertCustomer(ctx context.Context, c domain.CustomerInfo) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, insertCustomerSQL, c.Name, c.Email, c.Phone).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ConflictError{
				Constraint: "customers_phone_key",
				Message:    "duplicate phone " + c.Phone,
			}
		}
		return 0, mapPgError("customer", err)
	}
	return id, nil
}

func (s *pgSession) UpdateCustomer(ctx context.Context, id int64, c domain.CustomerInfo) error {
	return execExpectingRow(ctx, s.q, "customer", id, updateCustomerSQL, c.Name, c.Email, c.Phone, id)
}

func (s *pgSession) DeleteCustomer(ctx context.Context, id int64) error {
	return execExpectingRow(ctx, s.q, "customer", id, deleteCustomerSQL, id)
}

func (s *pgSession) InsertMenuItem(ctx context.Context, name string, price domain.Cents) (int64, error) {
	return insertReturningID(ctx, s.q, "menu item", insertMenuItemSQL, name, int64(price))
}

func (s *pgSession) UpdateMenuItem(ctx context.Context, id int64, name string, price domain.Cents) error {
	return execExpectingRow(ctx, s.q, "menu item", id, updateMenuItemSQL, name, int64(price), id)
}

func (s *pgSession) DeleteMenuItem(ctx context.Context, id int64) error {
	return execExpectingRow(ctx, s.q, "menu item", id, deleteMenuItemSQL, id)
}

func (s *pgSession) InsertOrder(ctx context.Context, customerID int64, total domain.Cents, date string) (int64, error) {
	return insertReturningID(ctx, s.q, "order", insertOrderSQL, customerID, int64(total), date)
}

func (s *pgSession) InsertOrderItem(ctx context.Context, orderID, menuItemID int64, quantity int) (int64, error) {
	return insertReturningID(ctx, s.q, "order item", insertOrderItemSQL, orderID, menuItemID, quantity)
}

// collectOne runs a single-row query and maps it onto T by column name.
func collectOne[T any](ctx context.Context, q pgQuerier, entity string, key any, sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, mapPgError(entity, err)
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, domain.NotFoundError{Entity: entity, Key: key}
		}
		return zero, mapPgError(entity, err)
	}
	return v, nil
}

// collectAll runs a multi-row query and maps each row onto T by column name.
func collectAll[T any](ctx context.Context, q pgQuerier, entity string, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(entity, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapPgError(entity, err)
	}
	return items, nil
}

func insertReturningID(ctx context.Context, q pgQuerier, entity string, sql string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, mapPgError(entity, err)
	}
	return id, nil
}

func execExpectingRow(ctx context.Context, q pgQuerier, entity string, key any, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapPgError(entity, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError{Entity: entity, Key: key}
	}
	return nil
}

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapPgError translates driver errors into the domain taxonomy. Errors
// already belonging to the taxonomy pass through unchanged.
func mapPgError(op string, err error) error {
	var (
		ve domain.ValidationError
		nf domain.NotFoundError
		ce domain.ConflictError
		se domain.StorageError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ce) || errors.As(err, &se) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return domain.ConflictError{
				Constraint: pgErr.ConstraintName,
				Message:    pgErr.Message,
			}
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFoundError{Entity: op, Key: "?"}
	}

	return domain.StorageError{Op: op, Err: err}
}

// Package store implements order persistence on the embedded database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fotokiosk/kiosk/internal/model"
)

// CreateOrder inserts a new order and returns the stored record.
// A missing ID is generated; status defaults to pending.
func CreateOrder(ctx context.Context, db *sql.DB, order model.Order) (*model.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = model.StatusPending
	}

	items, err := model.MarshalItems(order.Items)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO orders (id, client_name, client_email, items, status) VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.ClientName, order.ClientEmail, items, string(order.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return GetOrder(ctx, db, order.ID)
}

// GetOrder returns an order by ID, or nil if it does not exist.
func GetOrder(ctx context.Context, db *sql.DB, id string) (*model.Order, error) {
	order := &model.Order{}
	var clientEmail sql.NullString
	var items string
	var filesCopied int

	err := db.QueryRowContext(ctx,
		`SELECT id, client_name, client_email, items, status, files_copied, created_at, updated_at
		 FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.ClientName, &clientEmail, &items, &order.Status,
		&filesCopied, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}

	order.ClientEmail = clientEmail.String
	order.FilesCopied = filesCopied != 0
	order.Items, err = model.UnmarshalItems(items)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}
	return order, nil
}

// ListOrders returns all orders, newest first, optionally filtered by status.
func ListOrders(ctx context.Context, db *sql.DB, status model.OrderStatus) ([]model.Order, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, client_name, client_email, items, status, files_copied, created_at, updated_at
			 FROM orders WHERE status = ? ORDER BY created_at DESC`, string(status),
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, client_name, client_email, items, status, files_copied, created_at, updated_at
			 FROM orders ORDER BY created_at DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		var clientEmail sql.NullString
		var items string
		var filesCopied int
		if err := rows.Scan(&order.ID, &order.ClientName, &clientEmail, &items, &order.Status,
			&filesCopied, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		order.ClientEmail = clientEmail.String
		order.FilesCopied = filesCopied != 0
		order.Items, err = model.UnmarshalItems(items)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", order.ID, err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus sets an order's status. Transition legality is checked
// by the caller against the model's state machine.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, id string, status model.OrderStatus) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// MarkFilesCopied atomically flips the dispatch idempotency flag. It
// returns true only for the caller that actually flipped it; a false
// result means another dispatch already delivered this order. The
// conditional WHERE clause is the cross-process gate, replacing the
// racy read-flag-then-write pattern.
func MarkFilesCopied(ctx context.Context, db *sql.DB, id string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE orders SET files_copied = 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND files_copied = 0`, id,
	)
	if err != nil {
		return false, fmt.Errorf("marking order %s files copied: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking order %s files copied: %w", id, err)
	}
	return n > 0, nil
}

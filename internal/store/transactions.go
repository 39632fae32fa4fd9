package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RagzJ/Event-Management/internal/model"
)

// CreateTransaction converts a user's stock request into a pending
// transaction, decrementing the item's quantity in the same database
// transaction. The decrement is a single conditional update, so two
// concurrent requests can never both succeed past the available stock: the
// first statement in the transaction is a write, which serializes writers on
// the item row instead of racing a read against a later write.
//
// The total price is the item's price at this instant times the quantity, a
// frozen snapshot that later price edits never touch. Rejecting the
// transaction afterwards does not return the stock.
func CreateTransaction(ctx context.Context, db *sql.DB, userID, itemID int64, quantity int) (*model.Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Conditional decrement: zero rows affected means either a missing item
	// or not enough stock, never an oversell.
	result, err := tx.ExecContext(ctx,
		`UPDATE items SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND quantity >= ?`,
		quantity, itemID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("decrementing stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking stock decrement: %w", err)
	}
	if affected == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("requesting item %d: %w", itemID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("checking item: %w", err)
		}
		return nil, fmt.Errorf("requesting %d of item %d: %w", quantity, itemID, ErrInsufficientStock)
	}

	// Snapshot price and vendor inside the same transaction.
	var price decimal.Decimal
	var vendorID int64
	err = tx.QueryRowContext(ctx,
		`SELECT price, vendor_id FROM items WHERE id = ?`, itemID,
	).Scan(&price, &vendorID)
	if err != nil {
		return nil, fmt.Errorf("reading item snapshot: %w", err)
	}

	total := price.Mul(decimal.NewFromInt(int64(quantity)))

	result, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, item_id, vendor_id, quantity, total_price, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, itemID, vendorID, quantity, total, model.TransactionPending,
	)
	if err != nil {
		return nil, fmt.Errorf("recording transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	id, _ := result.LastInsertId()
	return GetTransaction(ctx, db, id)
}

// GetTransaction returns a transaction by ID.
func GetTransaction(ctx context.Context, db *sql.DB, id int64) (*model.Transaction, error) {
	t := &model.Transaction{}
	var vendorName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT t.id, t.user_id, t.item_id, t.vendor_id, t.quantity, t.total_price, t.status, t.requested_at,
		        i.name AS item_name, v.company_name AS vendor_name, u.username
		 FROM transactions t
		 JOIN items i ON i.id = t.item_id
		 JOIN users v ON v.id = t.vendor_id
		 JOIN users u ON u.id = t.user_id
		 WHERE t.id = ?`, id,
	).Scan(&t.ID, &t.UserID, &t.ItemID, &t.VendorID, &t.Quantity, &t.TotalPrice, &t.Status, &t.RequestedAt,
		&t.ItemName, &vendorName, &t.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	t.VendorName = vendorName.String
	return t, nil
}

// ListTransactions returns transactions, optionally filtered by requesting
// user or by vendor. Zero filters list everything (administrator reports).
func ListTransactions(ctx context.Context, db *sql.DB, userID, vendorID int64) ([]model.Transaction, error) {
	query := `SELECT t.id, t.user_id, t.item_id, t.vendor_id, t.quantity, t.total_price, t.status, t.requested_at,
	                 i.name AS item_name, v.company_name AS vendor_name, u.username
	          FROM transactions t
	          JOIN items i ON i.id = t.item_id
	          JOIN users v ON v.id = t.vendor_id
	          JOIN users u ON u.id = t.user_id
	          WHERE 1=1`
	var args []any

	if userID > 0 {
		query += ` AND t.user_id = ?`
		args = append(args, userID)
	}
	if vendorID > 0 {
		query += ` AND t.vendor_id = ?`
		args = append(args, vendorID)
	}

	query += ` ORDER BY t.requested_at DESC, t.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var vendorName sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.ItemID, &t.VendorID, &t.Quantity, &t.TotalPrice, &t.Status, &t.RequestedAt,
			&t.ItemName, &vendorName, &t.Username); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.VendorName = vendorName.String
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// SetTransactionStatus overwrites a transaction's status with any value from
// the known status set. No ordering is enforced between statuses and stock is
// not touched; the decrement already happened at request time, so a rejection
// here is purely informational.
func SetTransactionStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if !model.ValidTransactionStatus(status) {
		return fmt.Errorf("setting status %q: %w", status, ErrInvalidStatus)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting transaction status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("setting status of transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RagzJ/Event-Management/internal/model"
)

// CreateItem creates a new catalog item owned by the given vendor.
func CreateItem(ctx context.Context, db *sql.DB, vendorID int64, name, description string, price decimal.Decimal, quantity int) (*model.Item, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (vendor_id, name, description, price, quantity) VALUES (?, ?, ?, ?, ?)`,
		vendorID, name, description, price, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, photoMime, vendorName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.vendor_id, i.name, i.description, i.photo_mime, i.price, i.quantity,
		        i.created_at, i.updated_at, v.company_name AS vendor_name
		 FROM items i
		 JOIN users v ON v.id = i.vendor_id
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.VendorID, &item.Name, &description, &photoMime,
		&item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt, &vendorName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.PhotoMime = photoMime.String
	item.VendorName = vendorName.String
	return item, nil
}

// ListVendorItems returns all items owned by a vendor.
func ListVendorItems(ctx context.Context, db *sql.DB, vendorID int64) ([]model.Item, error) {
	return listItems(ctx, db,
		`SELECT i.id, i.vendor_id, i.name, i.description, i.photo_mime, i.price, i.quantity,
		        i.created_at, i.updated_at, v.company_name AS vendor_name
		 FROM items i
		 JOIN users v ON v.id = i.vendor_id
		 WHERE i.vendor_id = ? ORDER BY i.name`, vendorID)
}

// ListAvailableItems returns items with stock remaining, for user requests.
func ListAvailableItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	return listItems(ctx, db,
		`SELECT i.id, i.vendor_id, i.name, i.description, i.photo_mime, i.price, i.quantity,
		        i.created_at, i.updated_at, v.company_name AS vendor_name
		 FROM items i
		 JOIN users v ON v.id = i.vendor_id
		 WHERE i.quantity > 0 ORDER BY i.name`)
}

// ListAllItems returns every item, for administrative overviews.
func ListAllItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	return listItems(ctx, db,
		`SELECT i.id, i.vendor_id, i.name, i.description, i.photo_mime, i.price, i.quantity,
		        i.created_at, i.updated_at, v.company_name AS vendor_name
		 FROM items i
		 JOIN users v ON v.id = i.vendor_id
		 ORDER BY i.name`)
}

func listItems(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, photoMime, vendorName sql.NullString
		if err := rows.Scan(&item.ID, &item.VendorID, &item.Name, &description, &photoMime,
			&item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt, &vendorName); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.PhotoMime = photoMime.String
		item.VendorName = vendorName.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's listing fields, scoped to the owning vendor
// so one vendor can never edit another's stock.
func UpdateItem(ctx context.Context, db *sql.DB, id, vendorID int64, name, description string, price decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND vendor_id = ?`,
		name, description, price, quantity, id, vendorID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("updating item %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetItemPhoto stores an item's photo, scoped to the owning vendor.
func SetItemPhoto(ctx context.Context, db *sql.DB, id, vendorID int64, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND vendor_id = ?`,
		photo, mime, id, vendorID,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("setting photo for item %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a catalog item owned by a single vendor.
// Quantity is the currently available stock and never goes below zero.
type Item struct {
	ID          int64           `json:"id"`
	VendorID    int64           `json:"vendor_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PhotoMime   string          `json:"photo_mime,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Joined fields (not always populated).
	VendorName string `json:"vendor_name,omitempty"`
}

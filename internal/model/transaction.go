package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a user's accepted stock request. The user, item and
// vendor references are fixed at creation, and TotalPrice is the item price
// at request time multiplied by the quantity; later price changes never
// touch it. Only the status field changes afterwards.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ItemID      int64           `json:"item_id"`
	VendorID    int64           `json:"vendor_id"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      string          `json:"status"`
	RequestedAt time.Time       `json:"requested_at"`

	// Joined fields (not always populated).
	ItemName   string `json:"item_name,omitempty"`
	VendorName string `json:"vendor_name,omitempty"`
	Username   string `json:"username,omitempty"`
}

// Transaction statuses. Transitions are administrator-driven and
// unconstrained: any status may be overwritten with any other.
const (
	TransactionPending   = "pending"
	TransactionApproved  = "approved"
	TransactionRejected  = "rejected"
	TransactionCompleted = "completed"
)

// ValidTransactionStatus reports whether s is one of the known statuses.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TransactionPending, TransactionApproved, TransactionRejected, TransactionCompleted:
		return true
	}
	return false
}

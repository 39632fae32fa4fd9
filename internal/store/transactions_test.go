package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RagzJ/Event-Management/internal/db"
	"github.com/RagzJ/Event-Management/internal/model"
)

func TestCreateTransactionSnapshot(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10.0"), 5)

	tr, err := CreateTransaction(ctx, database, user.ID, item.ID, 3)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if tr.Status != model.TransactionPending {
		t.Errorf("expected pending status, got %q", tr.Status)
	}
	if !tr.TotalPrice.Equal(decimal.RequireFromString("30.0")) {
		t.Errorf("expected total 30.0, got %s", tr.TotalPrice)
	}
	if tr.VendorID != vendor.ID {
		t.Errorf("expected vendor %d denormalized, got %d", vendor.ID, tr.VendorID)
	}
	if tr.ItemName != "Chair" || tr.Username != "alice" {
		t.Errorf("expected joined names, got %+v", tr)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 2 {
		t.Errorf("expected quantity 2 after request, got %d", got.Quantity)
	}
}

func TestCreateTransactionPriceFrozen(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 10)

	tr, err := CreateTransaction(ctx, database, user.ID, item.ID, 2)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	// Vendor reprices after the request; the recorded total must not move.
	if err := UpdateItem(ctx, database, item.ID, vendor.ID, "Chair", "", decimal.RequireFromString("99"), 8); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetTransaction(ctx, database, tr.ID)
	if !got.TotalPrice.Equal(decimal.RequireFromString("20")) {
		t.Errorf("total price changed after reprice: %s", got.TotalPrice)
	}
}

func TestCreateTransactionInsufficientStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)

	_, err := CreateTransaction(ctx, database, user.ID, item.ID, 6)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// Stock untouched, nothing recorded.
	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 5 {
		t.Errorf("expected quantity unchanged at 5, got %d", got.Quantity)
	}
	list, _ := ListTransactions(ctx, database, 0, 0)
	if len(list) != 0 {
		t.Errorf("expected no transactions, got %d", len(list))
	}
}

func TestCreateTransactionExactStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)

	if _, err := CreateTransaction(ctx, database, user.ID, item.ID, 5); err != nil {
		t.Fatalf("CreateTransaction for full stock: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", got.Quantity)
	}

	// Now empty: the next request fails.
	if _, err := CreateTransaction(ctx, database, user.ID, item.ID, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock on empty stock, got %v", err)
	}
}

func TestCreateTransactionMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, database, "alice")

	_, err := CreateTransaction(ctx, database, user.ID, 9999, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTransactionInvalidQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)

	for _, qty := range []int{0, -1} {
		if _, err := CreateTransaction(ctx, database, user.ID, item.ID, qty); err == nil {
			t.Errorf("expected error for quantity %d", qty)
		}
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 5 {
		t.Errorf("expected stock unchanged, got %d", got.Quantity)
	}
}

func TestConcurrentRequestsNeverOversell(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)

	// Two concurrent requests for 3 each against stock 5: exactly one may
	// succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CreateTransaction(ctx, database, user.ID, item.ID, 3)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one success and one stock failure, got %d/%d", succeeded, insufficient)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 2 {
		t.Errorf("expected final quantity 2, got %d", got.Quantity)
	}
}

func TestSetTransactionStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)
	tr, _ := CreateTransaction(ctx, database, user.ID, item.ID, 1)

	// Any status can overwrite any other, including going backwards.
	for _, status := range []string{
		model.TransactionApproved,
		model.TransactionCompleted,
		model.TransactionPending,
		model.TransactionRejected,
	} {
		if err := SetTransactionStatus(ctx, database, tr.ID, status); err != nil {
			t.Fatalf("SetTransactionStatus(%q): %v", status, err)
		}
		got, _ := GetTransaction(ctx, database, tr.ID)
		if got.Status != status {
			t.Errorf("expected status %q, got %q", status, got.Status)
		}
	}

	// Idempotent when repeated.
	if err := SetTransactionStatus(ctx, database, tr.ID, model.TransactionRejected); err != nil {
		t.Errorf("repeated SetTransactionStatus: %v", err)
	}

	// Rejection does not restock.
	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 4 {
		t.Errorf("rejection must not restock: expected 4, got %d", got.Quantity)
	}
}

func TestSetTransactionStatusInvalid(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	user := createTestUser(t, database, "alice")
	item, _ := CreateItem(ctx, database, vendor.ID, "Chair", "", decimal.RequireFromString("10"), 5)
	tr, _ := CreateTransaction(ctx, database, user.ID, item.ID, 1)

	if err := SetTransactionStatus(ctx, database, tr.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetTransactionStatusNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	err := SetTransactionStatus(context.Background(), database, 9999, model.TransactionApproved)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListTransactionsFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	acme := createTestVendor(t, database, "acme")
	globex := createTestVendor(t, database, "globex")
	alice := createTestUser(t, database, "alice")
	bob := createTestUser(t, database, "bob")

	chair, _ := CreateItem(ctx, database, acme.ID, "Chair", "", decimal.RequireFromString("10"), 10)
	table, _ := CreateItem(ctx, database, globex.ID, "Table", "", decimal.RequireFromString("25"), 10)

	CreateTransaction(ctx, database, alice.ID, chair.ID, 1)
	CreateTransaction(ctx, database, alice.ID, table.ID, 2)
	CreateTransaction(ctx, database, bob.ID, chair.ID, 3)

	all, _ := ListTransactions(ctx, database, 0, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(all))
	}

	byUser, _ := ListTransactions(ctx, database, alice.ID, 0)
	if len(byUser) != 2 {
		t.Errorf("expected 2 transactions for alice, got %d", len(byUser))
	}

	byVendor, _ := ListTransactions(ctx, database, 0, acme.ID)
	if len(byVendor) != 2 {
		t.Errorf("expected 2 transactions for acme, got %d", len(byVendor))
	}
}

package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RagzJ/Event-Management/internal/db"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")

	item, err := CreateItem(ctx, database, vendor.ID, "Chair", "Folding chair", decimal.RequireFromString("12.50"), 40)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Chair" || item.Quantity != 40 {
		t.Errorf("unexpected item: %+v", item)
	}
	if !item.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected price 12.50, got %s", item.Price)
	}
	if item.VendorName != "acme Ltd" {
		t.Errorf("expected joined vendor name, got %q", item.VendorName)
	}
}

func TestCreateItemRejectsNegative(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")

	if _, err := CreateItem(ctx, database, vendor.ID, "Bad", "", decimal.RequireFromString("-1"), 1); err == nil {
		t.Error("expected error for negative price")
	}
	if _, err := CreateItem(ctx, database, vendor.ID, "Bad", "", decimal.RequireFromString("1"), -1); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 9999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestListAvailableItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")

	CreateItem(ctx, database, vendor.ID, "In stock", "", decimal.RequireFromString("5"), 3)
	CreateItem(ctx, database, vendor.ID, "Sold out", "", decimal.RequireFromString("5"), 0)

	available, err := ListAvailableItems(ctx, database)
	if err != nil {
		t.Fatalf("ListAvailableItems: %v", err)
	}
	if len(available) != 1 || available[0].Name != "In stock" {
		t.Errorf("expected only the in-stock item, got %+v", available)
	}

	all, _ := ListAllItems(ctx, database)
	if len(all) != 2 {
		t.Errorf("expected 2 items overall, got %d", len(all))
	}
}

func TestListVendorItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	acme := createTestVendor(t, database, "acme")
	other := createTestVendor(t, database, "globex")

	CreateItem(ctx, database, acme.ID, "Widget", "", decimal.RequireFromString("1"), 1)
	CreateItem(ctx, database, other.ID, "Gadget", "", decimal.RequireFromString("1"), 1)

	items, err := ListVendorItems(ctx, database, acme.ID)
	if err != nil {
		t.Fatalf("ListVendorItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Widget" {
		t.Errorf("expected only acme's item, got %+v", items)
	}
}

func TestUpdateItemScopedToVendor(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	acme := createTestVendor(t, database, "acme")
	other := createTestVendor(t, database, "globex")

	item, _ := CreateItem(ctx, database, acme.ID, "Widget", "", decimal.RequireFromString("2"), 5)

	// Owner can restock and reprice.
	err := UpdateItem(ctx, database, item.ID, acme.ID, "Widget", "v2", decimal.RequireFromString("3"), 10)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 10 || !got.Price.Equal(decimal.RequireFromString("3")) {
		t.Errorf("update not applied: %+v", got)
	}

	// Another vendor cannot touch it.
	err = UpdateItem(ctx, database, item.ID, other.ID, "Hijacked", "", decimal.RequireFromString("0"), 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign vendor, got %v", err)
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	vendor := createTestVendor(t, database, "acme")
	item, _ := CreateItem(ctx, database, vendor.ID, "Photo Item", "", decimal.RequireFromString("1"), 1)

	photo := []byte("fake jpeg data")
	if err := SetItemPhoto(ctx, database, item.ID, vendor.ID, photo, "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if !bytes.Equal(data, photo) || mime != "image/jpeg" {
		t.Errorf("photo round-trip failed: %d bytes, mime %q", len(data), mime)
	}

	// Foreign vendor cannot set a photo.
	other := createTestVendor(t, database, "globex")
	if err := SetItemPhoto(ctx, database, item.ID, other.ID, photo, "image/jpeg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign vendor, got %v", err)
	}
}

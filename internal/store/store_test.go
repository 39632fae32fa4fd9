package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/RagzJ/Event-Management/internal/model"
)

// Shared fixtures for store tests.

func createTestVendor(t *testing.T, db *sql.DB, username string) *model.User {
	t.Helper()
	vendor, err := CreateUser(context.Background(), db, model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         model.RoleVendor,
		CompanyName:  username + " Ltd",
	})
	if err != nil {
		t.Fatalf("creating test vendor: %v", err)
	}
	return vendor
}

func createTestUser(t *testing.T, db *sql.DB, username string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), db, model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

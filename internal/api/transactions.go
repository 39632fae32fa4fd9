package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RagzJ/Event-Management/internal/model"
	"github.com/RagzJ/Event-Management/internal/store"
)

// TransactionsHandler handles stock requests and their reconciliation.
type TransactionsHandler struct {
	DB *sql.DB
}

type requestItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/transactions: a user requests quantity of an
// item. Stock is committed here; a later rejection does not return it.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req requestItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ItemID <= 0 || req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "item_id and quantity are required and must be positive")
		return
	}

	actor := GetActor(r.Context())
	transaction, err := store.CreateTransaction(r.Context(), h.DB, actor.ID, req.ItemID, req.Quantity)
	if err != nil {
		storeError(w, err, "failed to request item")
		return
	}

	slog.Info("item requested", "user", actor.Name, "item", transaction.ItemName,
		"quantity", transaction.Quantity, "total", transaction.TotalPrice)
	jsonResponse(w, http.StatusCreated, transaction)
}

// List handles GET /api/transactions. Users see their own orders, vendors
// see sales against their stock, and administrators see everything.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var userID, vendorID int64
	switch actor.Role {
	case model.RoleUser:
		userID = actor.ID
	case model.RoleVendor:
		vendorID = actor.ID
	case model.RoleAdmin:
		// No filter: the full report.
	default:
		jsonError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	transactions, err := store.ListTransactions(r.Context(), h.DB, userID, vendorID)
	if err != nil {
		slog.Error("listing transactions", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, transactions)
}

// SetStatus handles PUT /api/transactions/{id}/status: the administrator
// overwrites a transaction's status with any value from the status set.
func (h *TransactionsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetTransactionStatus(r.Context(), h.DB, id, req.Status); err != nil {
		storeError(w, err, "failed to update status")
		return
	}

	transaction, _ := store.GetTransaction(r.Context(), h.DB, id)
	actor := GetActor(r.Context())
	slog.Info("transaction status updated", "admin", actor.Name,
		"transaction_id", id, "status", req.Status)
	jsonResponse(w, http.StatusOK, transaction)
}

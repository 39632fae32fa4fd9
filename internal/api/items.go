package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/RagzJ/Event-Management/internal/imaging"
	"github.com/RagzJ/Event-Management/internal/model"
	"github.com/RagzJ/Event-Management/internal/store"
)

// ItemsHandler handles catalog endpoints. Listing the catalog is open to any
// authenticated actor; creating and editing items is vendor-only and scoped
// to the vendor's own stock.
type ItemsHandler struct {
	DB *sql.DB
}

type itemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Catalog handles GET /api/catalog: items with stock remaining.
func (h *ItemsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListAvailableItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("listing catalog", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list catalog")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// ListAll handles GET /api/reports/items: every item regardless of stock.
func (h *ItemsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListAllItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("listing all items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// List handles GET /api/items: the calling vendor's own items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())
	items, err := store.ListVendorItems(r.Context(), h.DB, actor.ID)
	if err != nil {
		slog.Error("listing vendor items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.Price.IsNegative() || req.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "price and quantity must not be negative")
		return
	}

	actor := GetActor(r.Context())
	item, err := store.CreateItem(r.Context(), h.DB, actor.ID, req.Name, req.Description, req.Price, req.Quantity)
	if err != nil {
		storeError(w, err, "failed to create item")
		return
	}

	slog.Info("item created", "vendor", actor.Name, "item", item.Name,
		"price", item.Price, "quantity", item.Quantity)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("getting item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}: reprice, restock, or edit the listing.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.Price.IsNegative() || req.Quantity < 0 {
		jsonError(w, http.StatusBadRequest, "price and quantity must not be negative")
		return
	}

	actor := GetActor(r.Context())
	if err := store.UpdateItem(r.Context(), h.DB, id, actor.ID, req.Name, req.Description, req.Price, req.Quantity); err != nil {
		storeError(w, err, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	slog.Info("item updated", "vendor", actor.Name, "item", req.Name)
	jsonResponse(w, http.StatusOK, item)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxBytes)

	photo, err := imaging.Normalize(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor := GetActor(r.Context())
	if err := store.SetItemPhoto(r.Context(), h.DB, id, actor.ID, photo.Data, photo.MIME); err != nil {
		storeError(w, err, "failed to save photo")
		return
	}

	slog.Info("item photo uploaded", "vendor", actor.Name, "item_id", id, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("getting item photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

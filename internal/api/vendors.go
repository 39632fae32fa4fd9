package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/RagzJ/Event-Management/internal/model"
	"github.com/RagzJ/Event-Management/internal/store"
)

// VendorsHandler handles vendor maintenance endpoints (admin only). Vendors
// are accounts with role 'vendor' and a company profile.
type VendorsHandler struct {
	DB *sql.DB
}

type createVendorRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type updateVendorRequest struct {
	Username    string `json:"username"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// List handles GET /api/vendors.
func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := store.ListUsersByRole(r.Context(), h.DB, model.RoleVendor)
	if err != nil {
		slog.Error("listing vendors", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list vendors")
		return
	}
	if vendors == nil {
		vendors = []model.User{}
	}
	jsonResponse(w, http.StatusOK, vendors)
}

// Create handles POST /api/vendors.
func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.CompanyName == "" {
		jsonError(w, http.StatusBadRequest, "username, password, and company name required")
		return
	}

	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	vendor, err := store.CreateUser(r.Context(), h.DB, model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleVendor,
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		jsonError(w, http.StatusConflict, "username already exists")
		return
	}

	actor := GetActor(r.Context())
	slog.Info("vendor created", "admin", actor.Name, "vendor", vendor.Username, "company", vendor.CompanyName)
	jsonResponse(w, http.StatusCreated, vendor)
}

// Get handles GET /api/vendors/{id}.
func (h *VendorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	vendor, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("getting vendor", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get vendor")
		return
	}
	if vendor == nil || vendor.Role != model.RoleVendor {
		jsonError(w, http.StatusNotFound, "vendor not found")
		return
	}

	jsonResponse(w, http.StatusOK, vendor)
}

// Update handles PUT /api/vendors/{id}.
func (h *VendorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	var req updateVendorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.CompanyName == "" {
		jsonError(w, http.StatusBadRequest, "username and company name required")
		return
	}

	err = store.UpdateUser(r.Context(), h.DB, id, model.User{
		Username:    req.Username,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		storeError(w, err, "failed to update vendor")
		return
	}

	vendor, _ := store.GetUser(r.Context(), h.DB, id)
	actor := GetActor(r.Context())
	slog.Info("vendor updated", "admin", actor.Name, "vendor", req.Username)
	jsonResponse(w, http.StatusOK, vendor)
}

// Delete handles DELETE /api/vendors/{id}.
func (h *VendorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete vendor")
		return
	}

	actor := GetActor(r.Context())
	slog.Info("vendor deleted", "admin", actor.Name, "target_id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "vendor deleted"})
}

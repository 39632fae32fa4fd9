package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RagzJ/Event-Management/internal/model"
	"github.com/RagzJ/Event-Management/internal/store"
)

// MembershipsHandler handles membership maintenance endpoints (admin only).
type MembershipsHandler struct {
	DB *sql.DB
}

type createMembershipRequest struct {
	UserID   int64  `json:"user_id"`
	Duration string `json:"duration"`
}

type updateMembershipRequest struct {
	Duration string `json:"duration"`
	Cancel   bool   `json:"cancel"`
}

// List handles GET /api/memberships.
func (h *MembershipsHandler) List(w http.ResponseWriter, r *http.Request) {
	memberships, err := store.ListMemberships(r.Context(), h.DB)
	if err != nil {
		slog.Error("listing memberships", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	if memberships == nil {
		memberships = []model.Membership{}
	}
	jsonResponse(w, http.StatusOK, memberships)
}

// Create handles POST /api/memberships.
func (h *MembershipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMembershipRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID <= 0 || req.Duration == "" {
		jsonError(w, http.StatusBadRequest, "user_id and duration required")
		return
	}

	membership, err := store.CreateMembership(r.Context(), h.DB, req.UserID, req.Duration)
	if err != nil {
		storeError(w, err, "failed to create membership")
		return
	}

	actor := GetActor(r.Context())
	slog.Info("membership created", "admin", actor.Name,
		"member", membership.Username, "duration", membership.Duration)
	jsonResponse(w, http.StatusCreated, membership)
}

// Update handles PUT /api/memberships/{id}.
func (h *MembershipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid membership id")
		return
	}

	var req updateMembershipRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Duration == "" {
		jsonError(w, http.StatusBadRequest, "duration required")
		return
	}

	membership, err := store.UpdateMembership(r.Context(), h.DB, id, req.Duration, req.Cancel)
	if err != nil {
		storeError(w, err, "failed to update membership")
		return
	}

	actor := GetActor(r.Context())
	slog.Info("membership updated", "admin", actor.Name, "member", membership.Username,
		"duration", membership.Duration, "status", membership.Status)
	jsonResponse(w, http.StatusOK, membership)
}

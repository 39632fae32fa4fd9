package api

import (
	"database/sql"
	"net/http"

	"github.com/RagzJ/Event-Management/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	vendorsHandler := &VendorsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	membershipsHandler := &MembershipsHandler{DB: db}
	transactionsHandler := &TransactionsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireVendor := RequireRole(model.RoleVendor)
	requireUser := RequireRole(model.RoleUser)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// User maintenance (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Vendor maintenance (admin only).
	mux.Handle("GET /api/vendors", authMW(requireAdmin(http.HandlerFunc(vendorsHandler.List))))
	mux.Handle("POST /api/vendors", authMW(requireAdmin(http.HandlerFunc(vendorsHandler.Create))))
	mux.Handle("GET /api/vendors/{id}", authMW(requireAdmin(http.HandlerFunc(vendorsHandler.Get))))
	mux.Handle("PUT /api/vendors/{id}", authMW(requireAdmin(http.HandlerFunc(vendorsHandler.Update))))
	mux.Handle("DELETE /api/vendors/{id}", authMW(requireAdmin(http.HandlerFunc(vendorsHandler.Delete))))

	// Memberships (admin only).
	mux.Handle("GET /api/memberships", authMW(requireAdmin(http.HandlerFunc(membershipsHandler.List))))
	mux.Handle("POST /api/memberships", authMW(requireAdmin(http.HandlerFunc(membershipsHandler.Create))))
	mux.Handle("PUT /api/memberships/{id}", authMW(requireAdmin(http.HandlerFunc(membershipsHandler.Update))))

	// Stock report (admin only): every item, including sold-out ones.
	mux.Handle("GET /api/reports/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.ListAll))))

	// Catalog: any authenticated actor can browse.
	mux.Handle("GET /api/catalog", authMW(http.HandlerFunc(itemsHandler.Catalog)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))

	// Items: vendors manage their own stock.
	mux.Handle("GET /api/items", authMW(requireVendor(http.HandlerFunc(itemsHandler.List))))
	mux.Handle("POST /api/items", authMW(requireVendor(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("PUT /api/items/{id}", authMW(requireVendor(http.HandlerFunc(itemsHandler.Update))))
	mux.Handle("PUT /api/items/{id}/photo", authMW(requireVendor(http.HandlerFunc(itemsHandler.UploadPhoto))))

	// Transactions: users request stock; listing is role-scoped; the
	// administrator reconciles statuses.
	mux.Handle("POST /api/transactions", authMW(requireUser(http.HandlerFunc(transactionsHandler.Create))))
	mux.Handle("GET /api/transactions", authMW(http.HandlerFunc(transactionsHandler.List)))
	mux.Handle("PUT /api/transactions/{id}/status", authMW(requireAdmin(http.HandlerFunc(transactionsHandler.SetStatus))))

	return mux
}

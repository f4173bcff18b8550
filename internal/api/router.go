package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/najdeno/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Health/stats probe used by the front end landing page.
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		count, err := store.CountItems(r.Context(), db)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		jsonOK(w, http.StatusOK, map[string]any{"itemsCount": count})
	})

	// Accounts and sessions.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Items: reads are public, mutations require the owner.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/history", itemsHandler.GetHistory)
	mux.HandleFunc("GET /api/items/{id}/photo", itemsHandler.GetPhoto)
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("PATCH /api/items/{id}/status", authMW(http.HandlerFunc(itemsHandler.SetStatus)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))

	return CORSMiddleware(mux)
}

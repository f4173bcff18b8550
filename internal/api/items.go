package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles report CRUD and lifecycle endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

const maxQueryLength = 80

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ListFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Query:    q.Get("q"),
	}

	var errs []model.FieldError
	if filter.Category != "" && !model.ValidCategory(filter.Category) {
		errs = append(errs, model.FieldError{Field: "category", Msg: "must be Lost or Found"})
	}
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		errs = append(errs, model.FieldError{Field: "status", Msg: "must be Active, Claimed or Resolved"})
	}
	if len(filter.Query) > maxQueryLength {
		errs = append(errs, model.FieldError{Field: "q", Msg: "must be at most 80 characters"})
	}
	if len(errs) > 0 {
		jsonFieldErrors(w, errs)
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonOK(w, http.StatusOK, map[string]any{"items": items})
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"item": item})
}

// Create handles POST /api/items. The authenticated caller becomes the owner.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var in model.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := model.ValidateItem(in, false); len(errs) > 0 {
		jsonFieldErrors(w, errs)
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, in, claims.UID, claims.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item created", "referenceCode", item.ReferenceCode, "category", item.Category, "owner", item.OwnerEmail)
	jsonOK(w, http.StatusCreated, map[string]any{"item": item})
}

// Update handles PUT /api/items/{id}, owner only. Category and reference code
// are immutable; update payloads carry neither.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var in model.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := model.ValidateItem(in, true); len(errs) > 0 {
		jsonFieldErrors(w, errs)
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, r.PathValue("id"), claims.UID, in)
	if err != nil {
		itemStoreError(w, err, "failed to update item")
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{"item": item})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/items/{id}/status, owner only. Any of the
// three statuses is accepted as the target; clients typically send
// model.NextStatus of the current one.
func (h *ItemsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !model.ValidStatus(req.Status) {
		jsonFieldErrors(w, []model.FieldError{{Field: "status", Msg: "must be Active, Claimed or Resolved"}})
		return
	}

	item, err := store.SetItemStatus(r.Context(), h.DB, r.PathValue("id"), claims.UID, req.Status)
	if err != nil {
		itemStoreError(w, err, "failed to update status")
		return
	}

	jsonOK(w, http.StatusOK, map[string]any{"item": item})
}

// Delete handles DELETE /api/items/{id}, owner only. Permanent; the item's
// reference code is never reissued.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteItem(r.Context(), h.DB, r.PathValue("id"), claims.UID); err != nil {
		itemStoreError(w, err, "failed to delete item")
		return
	}

	jsonOK(w, http.StatusOK, nil)
}

// GetHistory handles GET /api/items/{id}/history.
func (h *ItemsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	events, err := store.GetItemHistory(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item history")
		return
	}
	if events == nil {
		events = []model.StatusEvent{}
	}
	jsonOK(w, http.StatusOK, map[string]any{"events": events})
}

// UploadPhoto handles PUT /api/items/{id}/photo, owner only.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.DB, r.PathValue("id"), claims.UID, photo.Data, photo.MIME); err != nil {
		itemStoreError(w, err, "failed to save photo")
		return
	}

	jsonOK(w, http.StatusOK, nil)
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
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

// itemStoreError maps store sentinels onto the REST error contract.
func itemStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, store.ErrForbidden):
		jsonError(w, http.StatusForbidden, "forbidden")
	default:
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}

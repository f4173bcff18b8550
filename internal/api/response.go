package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonOK writes a success envelope ({"ok": true, ...extra}).
func jsonOK(w http.ResponseWriter, status int, extra map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	jsonResponse(w, status, body)
}

// jsonError writes a failure envelope with a human-readable message.
func jsonError(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, map[string]any{"ok": false, "msg": msg})
}

// jsonFieldErrors writes a 400 with one entry per invalid field.
func jsonFieldErrors(w http.ResponseWriter, errs []model.FieldError) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{"ok": false, "errors": errs})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

package userstore

import (
	"encoding/json"
	"net/http"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// Sync handles POST /api/sync: upsert the caller's record keyed by its
// subscription endpoint.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	var in model.UserRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	if err := in.Subscription.Validate(); err != nil {
		writeErr(w, 400, "missing subscription")
		return
	}
	if in.Tasks == nil {
		in.Tasks = []model.TaskSnapshot{}
	}

	if err := h.repo.Set(in.Subscription.UserKey(), in); err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

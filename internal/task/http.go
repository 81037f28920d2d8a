package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

var timeNow = time.Now

// Handler serves the task CRUD surface and the completion toggle.
type Handler struct {
	repo     Repo
	defaults model.Escalation
	now      func() string // today's ISO date; injectable for tests
}

func NewHandler(repo Repo, defaults model.Escalation) *Handler {
	return &Handler{repo: repo, defaults: defaults}
}

// SetToday overrides the "today" date source (tests only).
func (h *Handler) SetToday(fn func() string) { h.now = fn }

func (h *Handler) today() string {
	if h.now != nil {
		return h.now()
	}
	return model.DateOf(timeNow())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

type upsertInput struct {
	Title           string           `json:"title"`
	DueTime         string           `json:"dueTime"`
	Recurrence      model.Recurrence `json:"recurrence,omitempty"`
	Priority        model.Priority   `json:"priority,omitempty"`
	IntervalMinutes int              `json:"intervalMinutes,omitempty"`
	MaxSteps        int              `json:"maxSteps,omitempty"`
}

// TasksRoot handles /api/tasks (collection).
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ts, err := h.repo.GetAll(r.Context())
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, ts)

	case http.MethodPost:
		var in upsertInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}

		esc := h.defaults
		if in.IntervalMinutes > 0 {
			esc.IntervalMinutes = in.IntervalMinutes
		}
		if in.MaxSteps > 0 {
			esc.MaxSteps = in.MaxSteps
		}

		t := model.NewTask(in.Title, in.DueTime, esc)
		if in.Recurrence != "" {
			t.Recurrence = in.Recurrence
		}
		if in.Priority != "" {
			t.Priority = in.Priority
		}
		if err := t.Validate(); err != nil {
			writeErr(w, 400, err.Error())
			return
		}

		created, err := h.repo.Upsert(r.Context(), t)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, created)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// TasksSub handles /api/tasks/{id} and /api/tasks/{id}/toggle.
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := model.TaskID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			t, err := h.repo.Get(r.Context(), id)
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, t)

		case http.MethodPatch:
			var p Patch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			t, err := h.repo.Get(r.Context(), id)
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			applyPatch(&t, p)
			if err := t.Validate(); err != nil {
				writeErr(w, 400, err.Error())
				return
			}
			updated, err := h.repo.Upsert(r.Context(), t)
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, updated)

		case http.MethodDelete:
			err := h.repo.Delete(r.Context(), id)
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			writeJSON(w, 200, map[string]any{"ok": true})

		default:
			writeErr(w, 405, "method not allowed")
		}
		return
	}

	// /api/tasks/{id}/toggle
	if len(parts) == 2 && parts[1] == "toggle" {
		if r.Method != http.MethodPost {
			writeErr(w, 405, "method not allowed")
			return
		}
		var in struct {
			Date string `json:"date,omitempty"`
		}
		if r.Body != nil {
			_ = decodeJSON(r, &in)
		}
		date := strings.TrimSpace(in.Date)
		if date == "" {
			date = h.today()
		}

		t, err := h.repo.Get(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}

		// Alert state is untouched here; the engine reclaims stale entries
		// on its next tick.
		completed := t.ToggleCompleted(date)
		updated, err := h.repo.Upsert(r.Context(), t)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{
			"ok":        true,
			"task":      updated,
			"date":      date,
			"completed": completed,
		})
		return
	}

	writeErr(w, 404, "not found")
}

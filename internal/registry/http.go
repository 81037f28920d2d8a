package registry

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
)

type Handler struct {
	repo   Repo
	sender push.Sender
	logger *log.Logger
}

func NewHandler(repo Repo, sender push.Sender, logger *log.Logger) *Handler {
	return &Handler{repo: repo, sender: sender, logger: logger}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// Subscribe handles POST /api/subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	var in struct {
		Subscription *model.Subscription `json:"subscription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	if in.Subscription == nil || in.Subscription.Validate() != nil {
		writeErr(w, 400, "missing subscription")
		return
	}

	if _, err := h.repo.Add(*in.Subscription); err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 201, map[string]any{"ok": true})
}

type pushResult struct {
	Endpoint string `json:"endpoint"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// PushAll handles POST /api/push-all: fan a payload out to every stored
// subscription, continuing past individual failures. Gone subscriptions are
// purged from the registry as a side effect.
func (h *Handler) PushAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	if h.sender == nil {
		writeErr(w, 503, "push not configured")
		return
	}

	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}
	if in.Title == "" {
		in.Title = "Reminder"
	}
	if in.Body == "" {
		in.Body = "You have a task due."
	}
	payload := model.PushPayload{Title: in.Title, Body: in.Body}

	subs, err := h.repo.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	results := make([]pushResult, 0, len(subs))
	for _, sub := range subs {
		err := h.sender.Send(r.Context(), sub, payload)
		if err == nil {
			results = append(results, pushResult{Endpoint: sub.Endpoint, OK: true})
			continue
		}
		if errors.Is(err, push.ErrSubscriptionGone) {
			if rmErr := h.repo.Remove(sub.Endpoint); rmErr != nil && h.logger != nil {
				h.logger.Printf("[registry] purge %s: %v", sub.Endpoint, rmErr)
			}
		}
		results = append(results, pushResult{Endpoint: sub.Endpoint, OK: false, Error: err.Error()})
	}

	writeJSON(w, 200, map[string]any{"results": results})
}

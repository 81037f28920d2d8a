// Package digest is the server-side fallback reminder: a scheduled scan
// over synced user records that sends one aggregated push per user with due
// work. It recomputes due-ness independently from the client engine and has
// no escalation levels.
package digest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
	"github.com/Arslan1Ali/Daily-Reminder/internal/userstore"
)

type Clock interface {
	Now() time.Time
}

type Job struct {
	Users  userstore.Repo
	Sender push.Sender
	Clock  Clock
	Logger *log.Logger
}

// Run scans every stored user record and pushes one "Task Reminder" per
// user that has at least one due, incomplete task. A gone subscription
// deletes the owning record; any other failure is logged and the scan
// continues. Returns the number of notifications sent.
func (j Job) Run(ctx context.Context) (int, error) {
	keys, err := j.Users.Keys()
	if err != nil {
		return 0, err
	}

	clock := model.TimeOfDay(j.now())
	sent := 0

	for _, key := range keys {
		rec, err := j.Users.Get(key)
		if err != nil {
			continue
		}
		if rec.Subscription.Validate() != nil || len(rec.Tasks) == 0 {
			continue
		}

		titles := dueTitles(rec.Tasks, clock)
		if len(titles) == 0 {
			continue
		}

		payload := model.PushPayload{
			Title: "Task Reminder",
			Body:  "You have due tasks: " + strings.Join(titles, ", "),
			Tag:   "daily-reminder",
		}

		err = j.Sender.Send(ctx, rec.Subscription, payload)
		if err == nil {
			sent++
			continue
		}
		if errors.Is(err, push.ErrSubscriptionGone) {
			if delErr := j.Users.Delete(key); delErr != nil {
				j.logf("delete %s: %v", key, delErr)
			}
			continue
		}
		j.logf("push %s: %v", key, err)
	}

	return sent, nil
}

func dueTitles(tasks []model.TaskSnapshot, clock string) []string {
	var titles []string
	for _, t := range tasks {
		if t.CompletedToday || t.DueTime == "" {
			continue
		}
		if t.DueTime <= clock {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

func (j Job) now() time.Time {
	if j.Clock == nil {
		return time.Now()
	}
	return j.Clock.Now()
}

func (j Job) logf(format string, args ...any) {
	if j.Logger == nil {
		return
	}
	j.Logger.Printf("[digest] "+format, args...)
}

// HTTP handles POST /api/cron, the external trigger for the same scan.
func (j Job) HTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(405)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "method not allowed"})
		return
	}

	sent, err := j.Run(r.Context())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err != nil {
		w.WriteHeader(500)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}
	w.WriteHeader(200)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":           true,
		"notificationsSent": sent,
	})
}

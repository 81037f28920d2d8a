package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/Arslan1Ali/Daily-Reminder/internal/config"
	"github.com/Arslan1Ali/Daily-Reminder/internal/digest"
	"github.com/Arslan1Ali/Daily-Reminder/internal/httpmw"
	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
	"github.com/Arslan1Ali/Daily-Reminder/internal/registry"
	"github.com/Arslan1Ali/Daily-Reminder/internal/task"
	"github.com/Arslan1Ali/Daily-Reminder/internal/userstore"
)

type Options struct {
	Config   *config.Config
	Tasks    task.Repo
	Registry registry.Repo
	Users    userstore.Repo
	Sender   push.Sender // nil when VAPID keys are unset
	Digest   digest.Job
	Logger   *log.Logger
}

// NewHandler composes the full HTTP surface behind the middleware chain.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Tasks == nil || opts.Registry == nil || opts.Users == nil {
		return nil, errors.New("task, registry and user repos are required")
	}

	mux := http.NewServeMux()
	rr := &RouteRegistry{}

	taskHandler := task.NewHandler(opts.Tasks, model.Escalation{
		IntervalMinutes: opts.Config.Engine.Defaults.IntervalMinutes,
		MaxSteps:        opts.Config.Engine.Defaults.MaxSteps,
	})
	regHandler := registry.NewHandler(opts.Registry, opts.Sender, opts.Logger)
	syncHandler := userstore.NewHandler(opts.Users)

	Handle(mux, rr, "GET,POST /api/tasks", "list or create tasks", taskHandler.TasksRoot)
	Handle(mux, rr, "ANY /api/tasks/", "get, patch, delete or toggle one task", taskHandler.TasksSub)
	Handle(mux, rr, "POST /api/subscribe", "store a push subscription", regHandler.Subscribe)
	Handle(mux, rr, "POST /api/push-all", "push a payload to every subscription", regHandler.PushAll)
	Handle(mux, rr, "POST /api/sync", "sync a user's subscription and task snapshots", syncHandler.Sync)
	Handle(mux, rr, "POST /api/cron", "run the digest scan now", opts.Digest.HTTP)
	Handle(mux, rr, "GET /api/routes", "list mounted routes", rr.RoutesHandler)

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Arslan1Ali/Daily-Reminder/internal/alertstate"
	"github.com/Arslan1Ali/Daily-Reminder/internal/config"
	"github.com/Arslan1Ali/Daily-Reminder/internal/digest"
	"github.com/Arslan1Ali/Daily-Reminder/internal/engine"
	"github.com/Arslan1Ali/Daily-Reminder/internal/notify"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
	"github.com/Arslan1Ali/Daily-Reminder/internal/registry"
	"github.com/Arslan1Ali/Daily-Reminder/internal/server"
	"github.com/Arslan1Ali/Daily-Reminder/internal/task"
	"github.com/Arslan1Ali/Daily-Reminder/internal/userstore"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := log.New(os.Stdout, "", 0)

	if err := run(*configPath, logger); err != nil {
		logger.Fatalf("server: %v", err)
	}
}

func run(configPath string, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var taskRepo task.Repo
	switch cfg.Data.Storage {
	case "sqlite":
		repo, err := task.NewSQLiteRepo(cfg.Data.Dir)
		if err != nil {
			return err
		}
		defer repo.Close()
		taskRepo = repo
	default:
		repo, err := task.NewFileRepo(cfg.Data.Dir)
		if err != nil {
			return err
		}
		taskRepo = repo
	}

	stateStore, err := alertstate.NewFileStore(cfg.Data.Dir)
	if err != nil {
		return err
	}
	regRepo, err := registry.NewFileRepo(cfg.Data.Dir)
	if err != nil {
		return err
	}
	userRepo, err := userstore.NewFileRepo(cfg.Data.Dir)
	if err != nil {
		return err
	}

	var sender push.Sender
	if cfg.Push.VAPIDPublic != "" && cfg.Push.VAPIDPrivate != "" {
		sender, err = push.NewWebPush(cfg.Push.VAPIDPublic, cfg.Push.VAPIDPrivate, cfg.Push.Contact)
		if err != nil {
			return err
		}
	} else {
		logger.Print("[server] VAPID keys not set; web push disabled")
	}

	var channels []notify.Dispatcher
	if cfg.Notify.Desktop {
		channels = append(channels, notify.NewDesktop())
	}
	if cfg.Notify.Speech.Enabled {
		channels = append(channels, notify.NewSpeech(cfg.Notify.Speech.Command))
	}

	eng := engine.Engine{
		Tasks:      taskRepo,
		States:     stateStore,
		Dispatcher: notify.NewMulti(10*time.Second, channels...),
		Clock:      engine.RealClock{},
		Logger:     logger,
	}
	ticker := &engine.Ticker{
		Engine:   eng,
		Interval: time.Duration(cfg.Engine.TickSeconds) * time.Second,
		Logger:   logger,
	}
	go ticker.Run(ctx)

	job := digest.Job{Users: userRepo, Sender: sender, Logger: logger}
	if cfg.Digest.Enabled && sender != nil {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Digest.Schedule, func() {
			sent, err := job.Run(ctx)
			if err != nil {
				logger.Printf("[digest] scan failed: %v", err)
				return
			}
			if sent > 0 {
				logger.Printf("[digest] sent %d reminders", sent)
			}
		}); err != nil {
			return fmt.Errorf("bad digest schedule %q: %w", cfg.Digest.Schedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	handler, err := server.NewHandler(server.Options{
		Config:   cfg,
		Tasks:    taskRepo,
		Registry: regRepo,
		Users:    userRepo,
		Sender:   sender,
		Digest:   job,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("[server] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/namankhandelwal900-boop/trackify/internal/adminui"
	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/config"
	"github.com/namankhandelwal900-boop/trackify/internal/httpapi"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
	"github.com/namankhandelwal900-boop/trackify/internal/store/csvfile"
	"github.com/namankhandelwal900-boop/trackify/internal/webui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	users := csvfile.NewUsersStore(cfg.UsersFile(), logger)
	activity := csvfile.NewActivityStore(cfg.ActivityFile(), logger)
	goals := csvfile.NewGoalsStore(cfg.GoalsFile(), logger)

	authSvc := &service.AuthService{
		Users:             users,
		AutoApproveDomain: config.AutoApproveDomain,
		AutoApproveAll:    cfg.AutoApproveAll,
	}
	adminSvc := &service.AdminService{Users: users}
	activitySvc := &service.ActivityService{Store: activity}
	goalSvc := &service.GoalService{Store: goals}

	sessions := session.NewRegistry(cfg.SessionTTL)
	codec := auth.NewCookieCodec([]byte(cfg.CookieSecret))

	webRouter := webui.New(webui.Opts{
		Logger:       logger,
		Auth:         authSvc,
		Activity:     activitySvc,
		Goals:        goalSvc,
		Sessions:     sessions,
		CookieCodec:  codec,
		CookieSecure: cfg.IsProd(),
		SessionTTL:   cfg.SessionTTL,
		AdminEmail:   cfg.AdminEmail,
	})

	adminRouter := adminui.New(adminui.Opts{
		Logger:      logger,
		Admin:       adminSvc,
		Sessions:    sessions,
		CookieCodec: codec,
		AdminEmail:  cfg.AdminEmail,
	})

	apiRouter := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:       logger,
		IsProd:       cfg.IsProd(),
		Auth:         authSvc,
		Admin:        adminSvc,
		Sessions:     sessions,
		CookieCodec:  codec,
		CookieSecure: cfg.IsProd(),
		SessionTTL:   cfg.SessionTTL,
		AdminEmail:   cfg.AdminEmail,
	})

	ui := http.NewServeMux()
	ui.Handle("/", webRouter)
	ui.Handle("/admin", adminRouter)
	ui.Handle("/admin/", adminRouter)

	var uiHandler http.Handler = ui
	uiHandler = httpapi.RequestLogger(logger)(uiHandler)
	uiHandler = httpapi.RequestID()(uiHandler)
	uiHandler = httpapi.Recoverer(logger, cfg.IsProd())(uiHandler)

	root := http.NewServeMux()
	root.Handle("/", uiHandler)
	root.Handle("/healthz", apiRouter)
	root.Handle("/v1/", apiRouter)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr, "data_dir", cfg.DataDir)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

package cmd

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/statussaver/internal/config"
	"github.com/VoxDroid/statussaver/internal/db"
	"github.com/VoxDroid/statussaver/internal/prefs"
	"github.com/VoxDroid/statussaver/internal/saver"
	"github.com/VoxDroid/statussaver/internal/statuses"
	"github.com/VoxDroid/statussaver/internal/telemetry"
	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

// app bundles the controller with the resources backing its adapters.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	db       *sql.DB
	repo     *prefs.Repository
	prefs    *adapters.PreferenceStoreImpl
	recorder *telemetry.Recorder
	ctrl     *modelpkg.Controller
}

// newApp loads config, opens the database and wires a controller. Logs go
// to logOut.
func newApp(logOut io.Writer, tab modelpkg.Tab) (*app, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: settings.Level()}))

	dbConn, err := db.InitDB()
	if err != nil {
		return nil, err
	}
	scanner := &statuses.Scanner{DefaultDir: settings.StatusDir, FallbackSubdirs: settings.FallbackSubdirs}
	repo := prefs.NewRepository(dbConn)
	prefStore := adapters.NewPreferenceStore(repo)
	rec := telemetry.NewRecorder(dbConn)

	ctrl := modelpkg.New(
		adapters.NewStatusSource(scanner),
		adapters.NewMediaSaver(saver.New(settings.SaveDir)),
		prefStore,
		adapters.NewTelemetry(rec),
		modelpkg.WithLogger(logger),
		modelpkg.WithEventBuffer(settings.EventBuffer),
		modelpkg.WithDiscardStaleFetches(settings.DiscardStaleFetches),
		modelpkg.WithInitialState(modelpkg.UIState{SelectedTab: tab}),
	)
	return &app{settings: settings, logger: logger, db: dbConn, repo: repo, prefs: prefStore, recorder: rec, ctrl: ctrl}, nil
}

// Close disposes the controller, then the database it writes to.
func (a *app) Close() error {
	cerr := a.ctrl.Close()
	return errors.Join(cerr, a.db.Close())
}

// location resolves --dir, falling back to the persisted location and its
// fallback mode. An explicit --fallback overrides the stored mode. An empty
// result lets the scanner use status_dir from config.
func (a *app) location(ctx context.Context, cmd *cobra.Command) (adapters.Locator, bool, error) {
	fallback, _ := cmd.Flags().GetBool("fallback")
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return adapters.Locator(dir), fallback, nil
	}
	if err := a.ctrl.RestoreLocator(ctx); err != nil {
		return "", fallback, err
	}
	loc := a.ctrl.State().Location
	if loc != "" && !cmd.Flags().Changed("fallback") {
		stored, err := a.repo.GetBool(prefs.KeyLastFallback)
		if err != nil {
			return "", fallback, err
		}
		fallback = stored
	}
	return loc, fallback, nil
}

// fetch waits for a fetch of loc and, once it succeeded, stores the
// fallback mode next to the location the controller persisted.
func (a *app) fetch(ctx context.Context, loc adapters.Locator, fallback bool) (modelpkg.UIState, error) {
	s, err := awaitFetch(ctx, a.ctrl, fetchRequest(loc, fallback))
	if err != nil {
		return s, err
	}
	a.rememberFallback(fallback)
	return s, nil
}

// rememberFallback persists the fallback mode; failures only reach the log.
func (a *app) rememberFallback(fallback bool) {
	if err := a.repo.SetBool(prefs.KeyLastFallback, fallback); err != nil {
		a.logger.Warn("persist fallback mode failed", "fallback", fallback, "err", err)
	}
}

// logEvent records CLI analytics; failures only reach the log.
func (a *app) logEvent(ctx context.Context, name string, params map[string]string) {
	if err := a.ctrl.Telemetry().LogEvent(ctx, name, params); err != nil {
		a.logger.Warn("record analytics event", "name", name, "err", err)
	}
}

// awaitFetch submits req and waits until its result is committed. A fetch
// failure notification is returned as an error.
func awaitFetch(ctx context.Context, ctrl *modelpkg.Controller, req modelpkg.RequestFetch) (modelpkg.UIState, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	states := ctrl.ObserveState(ctx)
	events := ctrl.ObserveEvents(ctx)
	before := ctrl.State().FetchSeq
	if err := ctrl.Submit(req); err != nil {
		return modelpkg.UIState{}, err
	}
	for {
		select {
		case s, ok := <-states:
			if !ok {
				return modelpkg.UIState{}, modelpkg.ErrClosed
			}
			if s.FetchSeq > before && !s.Loading {
				return s, nil
			}
		case ev, ok := <-events:
			if !ok {
				return modelpkg.UIState{}, modelpkg.ErrClosed
			}
			if n, isNote := ev.(modelpkg.Notify); isNote && n.Level == modelpkg.LevelError {
				return ctrl.State(), errors.New(n.Message)
			}
		case <-ctx.Done():
			return modelpkg.UIState{}, ctx.Err()
		}
	}
}

func tabFor(cmd *cobra.Command) modelpkg.Tab {
	if videos, _ := cmd.Flags().GetBool("videos"); videos {
		return modelpkg.TabVideos
	}
	return modelpkg.TabImages
}

func fetchRequest(loc adapters.Locator, fallback bool) modelpkg.RequestFetch {
	return modelpkg.RequestFetch{Location: loc, UsesFallback: fallback}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/kanaflash/internal/app"
	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/config"
	"github.com/abhisek/kanaflash/internal/kv"
	"github.com/abhisek/kanaflash/internal/logging"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/snapshot"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/abhisek/kanaflash/internal/study"
	"github.com/spf13/cobra"
)

// runtime holds everything a command needs once config, logging and
// storage are up.
type runtime struct {
	cfg     config.Config
	log     *slog.Logger
	history store.SessionRepo
	tracker *progress.Tracker
	ctrl    *study.Controller
	closers []io.Closer
}

// Close releases the store and log file in reverse order of opening.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i].Close()
	}
}

// openRuntime loads config, sets up logging, opens the store and builds
// the study controller with restored view state. When the database cannot
// be opened it falls back to an in-memory store without history.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)

	rt := &runtime{cfg: cfg, log: logger, closers: []io.Closer{logCloser}}

	var backing kv.Store
	dbPath, err := resolveDBPath(cmd, cfg)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			rt.closers = append(rt.closers, st)
			rt.history = st.SessionRepo()
			backing = st.KV()
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Database unavailable:", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved this run.")
		logger.Warn("falling back to in-memory store", "err", err)
		backing = kv.NewMemory()
	}

	rt.tracker = progress.New(ctx, backing, progress.WithLogger(logger))

	mode, err := session.ParseMode(cfg.DefaultMode)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.ctrl = study.New(study.Options{
		Catalog:      catalog.Default(),
		Tracker:      rt.tracker,
		Deck:         session.NewDeck(),
		Channels:     study.NewChannels(backing, snapshot.WithTTL(cfg.SnapshotTTL), snapshot.WithLogger(logger)),
		History:      rt.history,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
		Shuffle:      cfg.Shuffle,
		DefaultMode:  mode,
	})
	rt.ctrl.Restore(ctx)
	return rt, nil
}

// launch adjusts the controller before the TUI starts.
type launch struct {
	prepare    func(ctx context.Context, ctrl *study.Controller) error
	startStudy bool
}

// runApp opens the runtime and launches the TUI.
func runApp(cmd *cobra.Command, l launch) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if l.prepare != nil {
		if err := l.prepare(cmd.Context(), rt.ctrl); err != nil {
			return err
		}
	}

	return app.Run(app.Options{
		Controller:   rt.ctrl,
		HistoryLimit: rt.cfg.HistoryLimit,
		StartStudy:   l.startStudy,
	})
}

// Package bot wires the assistant together: configuration, persistence
// backend, dialog engine, dispatcher, notifier and the HTTP gateway. It also
// owns process lifecycle (signals, the notifier ticker, graceful shutdown).
package bot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/config"
	"github.com/dmitrijs2005/teambot/internal/bot/dialog"
	"github.com/dmitrijs2005/teambot/internal/bot/dispatcher"
	"github.com/dmitrijs2005/teambot/internal/bot/notifier"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/teambot/internal/bot/store"
	"github.com/dmitrijs2005/teambot/internal/bot/transport/httpapi"
	"github.com/dmitrijs2005/teambot/internal/clockx"
	"github.com/dmitrijs2005/teambot/internal/logging"
)

// App is the assembled process.
type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	dispatcher *dispatcher.Dispatcher
	notifier   *notifier.Notifier
	gateway    *httpapi.Server
}

// NewApp builds the application from configuration: opens the selected
// database backend, runs migrations, and constructs every component with its
// dependencies injected explicitly.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var repos repomanager.RepositoryManager
	var driverName string
	switch cfg.DatabaseDriver {
	case "postgres":
		repos = repomanager.NewPostgresRepositoryManager()
		driverName = "pgx"
	case "sqlite":
		repos = repomanager.NewSQLiteRepositoryManager()
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.DatabaseDriver)
	}

	db, err := sql.Open(driverName, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	clock := clockx.RealClock{}
	st := store.New(db, repos, clock)

	outbox := httpapi.NewOutbox()
	engine := dialog.NewEngine(st)
	disp := dispatcher.New(st, engine, outbox, logger)

	recipients := cfg.DigestRecipients
	ntf := notifier.New(st, outbox, clock, func(ctx context.Context) ([]string, error) {
		return recipients, nil
	}, logger)

	gateway := httpapi.NewServer(cfg.EndpointAddrHTTP, disp, outbox, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		dispatcher: disp,
		notifier:   ntf,
		gateway:    gateway,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runNotifierLoop triggers the notifier on the configured interval until ctx
// is cancelled. The notifier itself knows nothing about scheduling.
func (app *App) runNotifierLoop(ctx context.Context) {
	ticker := time.NewTicker(app.config.NotifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := app.notifier.RunOnce(ctx); err != nil {
				app.logger.Error(ctx, "notifier run failed", "error", err.Error())
			}
		}
	}
}

// Run starts the gateway and the notifier loop and blocks until shutdown.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.gateway.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runNotifierLoop(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}

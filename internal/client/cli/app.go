package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/api"
	"github.com/dmitrijs2005/authflow/internal/client/config"
	"github.com/dmitrijs2005/authflow/internal/client/flow"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/client/storage"
	"github.com/dmitrijs2005/authflow/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	ctrl     *flow.Controller
	api      api.Client
	store    session.Store
	notifier notify.Notifier
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	// secretsFromReader reads passwords as plain lines when stdin is not
	// a terminal.
	secretsFromReader bool

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the session store named by the config, builds the HTTP
// backend client and wires both into a flow controller reading stdin.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	client, err := api.NewHTTPClient(c.ServerBaseURL, c.APIPrefix,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app := newApp(c, client, store, logger, os.Stdin, os.Stdout)
	app.secretsFromReader = !term.IsTerminal(int(os.Stdin.Fd()))
	return app, nil
}

func newApp(c *config.Config, client api.Client, store session.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	n := notify.NewWriter(out)
	ctrl := flow.New(client, store, n,
		flow.WithLogger(logger.With("component", "flow")),
		flow.WithResendSeconds(c.ResendSeconds()),
	)
	return &App{
		config:   c,
		ctrl:     ctrl,
		api:      client,
		store:    store,
		notifier: n,
		log:      logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// openStore returns the session store selected by c.SessionBackend.
func openStore(ctx context.Context, c *config.Config) (session.Store, error) {
	switch c.SessionBackend {
	case config.SessionMemory:
		return session.NewMemoryStore(), nil
	case config.SessionRedis:
		client, err := session.ConnectRedis(ctx, session.RedisConfig{
			Addr: c.RedisAddr,
			DB:   c.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, c.RedisPrefix, 0), nil
	case config.SessionSQLite, "":
		db, err := storage.Open(ctx, c.SessionDBPath)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		return session.NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run resumes a saved flow if there is one and serves the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if ok, err := a.ctrl.Resume(ctx); err != nil {
		a.log.Warn(ctx, "resume flow", "error", err)
	} else if ok {
		fmt.Fprintf(a.out, "Resuming at %s\n", a.ctrl.Route())
	}

	fmt.Fprintln(a.out, "Welcome to authflow CLI (type 'help' for commands)")

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops the flow controller and releases the session store.
func (a *App) Close() error {
	a.ctrl.Close()
	return a.store.Close()
}

// StartOnlineStatusWatcher probes the backend right away and then every
// interval until ctx ends, switching Mode as reachability changes.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.api.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// report shows errors the flow controller does not announce itself.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, flow.ErrInvalidState),
		errors.Is(err, flow.ErrBusy),
		errors.Is(err, flow.ErrUnknownRoute),
		errors.Is(err, flow.ErrMissingUsername),
		errors.Is(err, flow.ErrMissingPhone),
		errors.Is(err, errEmptyInput):
		a.notifier.Error(err.Error())
	case errors.Is(err, io.EOF):
		a.notifier.Error("input closed")
	}
	return err
}

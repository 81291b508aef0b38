package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/roomsync/internal/client/api"
	"github.com/dmitrijs2005/roomsync/internal/client/config"
	"github.com/dmitrijs2005/roomsync/internal/client/credentials"
	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/probe"
	"github.com/dmitrijs2005/roomsync/internal/client/services"
	"github.com/dmitrijs2005/roomsync/internal/client/session"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/client/strategy"
	"github.com/dmitrijs2005/roomsync/internal/logging"
)

// App is the interactive client. It owns the device store, the session
// service and the session context.
type App struct {
	log     logging.Logger
	svc     services.SessionService
	sess    *session.Context
	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

// NewApp opens the device store and wires the API client, backend probe,
// both strategies and the session context.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	kv, closeFn, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	client := api.New(api.Options{
		BaseURL:         cfg.BaseURL,
		AnonKey:         cfg.AnonKey,
		RequestTimeout:  cfg.RequestTimeout,
		RetryMaxElapsed: cfg.RetryMaxElapsed,
	}, log)

	creds := credentials.NewStore(kv)
	svc := services.NewSessionService(
		probe.New(client, cfg.ProbeTimeout, log),
		strategy.NewRemote(client),
		strategy.NewLocal(creds, kv, log),
		creds,
		kv,
		log,
	)

	return newApp(svc, session.New(svc, kv, log), bufio.NewReader(os.Stdin), os.Stdout, log, closeFn), nil
}

func newApp(svc services.SessionService, sess *session.Context, reader *bufio.Reader, out io.Writer, log logging.Logger, closeFn func() error) *App {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &App{log: log, svc: svc, sess: sess, reader: reader, out: out, closeFn: closeFn}
}

func (a *App) isLoggedIn() bool {
	return a.sess.Snapshot().Authenticated()
}

// getStatus renders the prompt prefix: the signed-in user and, when the
// backend is unreachable, an offline marker.
func (a *App) getStatus() string {
	snap := a.sess.Snapshot()

	who := "guest"
	if snap.User != nil {
		who = snap.User.Name
		if who == "" {
			who = snap.User.Phone
		}
		if snap.Status == session.StatusProfileIncomplete {
			who += "*"
		}
	}

	if a.svc.Mode() == models.ModeLocal {
		return who + " [offline/local mode]"
	}
	return who
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run restores the persisted session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.closeFn(); err != nil {
			a.log.Error(ctx, "close storage", "err", err)
		}
	}()

	a.sess.Restore(ctx)

	unsubscribe := a.sess.Subscribe(func(s session.Snapshot) {
		a.log.Debug(ctx, "session changed", "status", s.Status.String(), "mode", string(s.Mode))
	})
	defer unsubscribe()

	a.println("roomsync: type 'help' for commands")
	if a.svc.Mode() == models.ModeLocal {
		a.println("Server unreachable, working in offline/local mode.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

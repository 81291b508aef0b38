package cli

import (
	"context"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
)

// Status prints the session status and the signed-in user.
func (a *App) Status(ctx context.Context) error {
	snap := a.sess.Snapshot()
	a.println("Status:", snap.Status.String())
	if snap.User != nil {
		a.println("User:", snap.User.Name, "("+snap.User.Phone+")")
		a.println("Favorites:", len(snap.Favorites), "Viewed:", len(snap.Viewed))
	}
	return a.ShowMode(ctx)
}

func (a *App) ShowMode(ctx context.Context) error {
	if a.svc.Mode() == models.ModeLocal {
		a.println("Mode: local (offline, data stays on this device)")
	} else {
		a.println("Mode: remote")
	}
	return nil
}

// Recheck probes the backend again and reports the resulting mode.
func (a *App) Recheck(ctx context.Context) error {
	if a.svc.RecheckBackend(ctx) {
		a.println("Server reachable.")
	} else {
		a.println("Server unreachable.")
	}
	return a.ShowMode(ctx)
}

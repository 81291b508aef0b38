package cli

import (
	"context"
	"strings"
)

// Favorite toggles roomID in the favorites list.
func (a *App) Favorite(ctx context.Context, roomID string) error {
	on, err := a.sess.ToggleFavorite(ctx, roomID)
	if err != nil {
		return err
	}
	if on {
		a.println("Added", roomID, "to favorites.")
	} else {
		a.println("Removed", roomID, "from favorites.")
	}
	return nil
}

// View records roomID as viewed.
func (a *App) View(ctx context.Context, roomID string) error {
	if err := a.sess.MarkAsViewed(ctx, roomID); err != nil {
		return err
	}
	a.println("Viewed", roomID)
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	a.printIDs("Favorites", a.sess.Snapshot().Favorites)
	return nil
}

func (a *App) Viewed(ctx context.Context) error {
	a.printIDs("Viewed", a.sess.Snapshot().Viewed)
	return nil
}

// Sync reloads both collections from the active backend.
func (a *App) Sync(ctx context.Context) error {
	if err := a.sess.LoadCollections(ctx); err != nil {
		return err
	}
	snap := a.sess.Snapshot()
	a.println("Synced:", len(snap.Favorites), "favorites,", len(snap.Viewed), "viewed")
	return nil
}

func (a *App) printIDs(title string, ids []string) {
	if len(ids) == 0 {
		a.println(title + ": none")
		return
	}
	a.println(title+":", strings.Join(ids, ", "))
}

package session

import (
	"context"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
)

// LoadCollections fetches favorites and viewed for the signed-in user. When
// the remote backend fails, the lists stored on the device are used instead.
func (c *Context) LoadCollections(ctx context.Context) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	st := c.active(ctx)

	favs, err := st.Favorites(ctx, sess)
	if err != nil && st.Mode() == models.ModeRemote {
		c.log.Warn(ctx, "remote favorites unavailable, using device copy", "err", err)
		favs, err = storage.LoadIDs(ctx, c.kv, storage.FavoritesKey(sess.User.ID))
	}
	if err != nil {
		return err
	}

	viewed, err := st.Viewed(ctx, sess)
	if err != nil && st.Mode() == models.ModeRemote {
		c.log.Warn(ctx, "remote viewed list unavailable, using device copy", "err", err)
		viewed, err = storage.LoadIDs(ctx, c.kv, storage.ViewedKey(sess.User.ID))
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.sameUserLocked(sess.User.ID) {
		c.favorites = models.UniqueIDs(favs)
		c.viewed = models.UniqueIDs(viewed)
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// ToggleFavorite flips roomID's membership and returns the new membership.
// On success the favorites become the backend's canonical list. On failure
// nothing changes and the error is returned.
func (c *Context) ToggleFavorite(ctx context.Context, roomID string) (bool, error) {
	c.mu.Lock()
	sess, err := c.sessionLocked()
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	on := !models.ContainsID(c.favorites, roomID)
	c.mu.Unlock()

	ids, err := c.active(ctx).SetFavorite(ctx, sess, roomID, on)
	if err != nil {
		c.log.Warn(ctx, "toggle favorite failed", "room", roomID, "err", err)
		return !on, err
	}

	c.mu.Lock()
	if c.sameUserLocked(sess.User.ID) {
		c.favorites = models.UniqueIDs(ids)
	}
	c.mu.Unlock()
	c.notify()
	return on, nil
}

// MarkAsViewed records roomID. An id already in the viewed list returns
// immediately without contacting the backend.
func (c *Context) MarkAsViewed(ctx context.Context, roomID string) error {
	c.mu.Lock()
	sess, err := c.sessionLocked()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if models.ContainsID(c.viewed, roomID) {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	ids, err := c.active(ctx).MarkViewed(ctx, sess, roomID)
	if err != nil {
		c.log.Warn(ctx, "mark viewed failed", "room", roomID, "err", err)
		return err
	}

	c.mu.Lock()
	if c.sameUserLocked(sess.User.ID) {
		c.viewed = models.UniqueIDs(ids)
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/client/strategy"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/logging"
)

// Service is the subset of services.SessionService the context needs.
type Service interface {
	SignOut(ctx context.Context, token string)
	Mode() models.Mode
	Strategy(ctx context.Context) strategy.Strategy
}

type Context struct {
	svc Service
	kv  storage.Store
	log logging.Logger

	mu        sync.Mutex
	loading   bool
	mode      models.Mode
	user      *models.User
	token     string
	favorites []string
	viewed    []string

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(svc Service, kv storage.Store, log logging.Logger) *Context {
	return &Context{
		svc:       svc,
		kv:        kv,
		log:       log,
		loading:   true,
		mode:      svc.Mode(),
		favorites: []string{},
		viewed:    []string{},
		subs:      make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Context) snapshotLocked() Snapshot {
	s := Snapshot{
		AccessToken: c.token,
		Mode:        c.mode,
		Favorites:   slices.Clone(c.favorites),
		Viewed:      slices.Clone(c.viewed),
	}
	if c.user != nil {
		u := c.user.Clone()
		s.User = &u
	}

	switch {
	case c.loading:
		s.Status = StatusLoading
	case c.user == nil || c.token == "":
		s.Status = StatusUnauthenticated
	case c.user.ProfileCompleted:
		s.Status = StatusProfileComplete
	default:
		s.Status = StatusProfileIncomplete
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Context) Subscribe(fn func(Snapshot)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Context) notify() {
	snap := c.Snapshot()

	c.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// session returns the current session, or ErrNotAuthenticated.
func (c *Context) session() (models.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked()
}

func (c *Context) sessionLocked() (models.Session, error) {
	if c.user == nil || c.token == "" {
		return models.Session{}, common.ErrNotAuthenticated
	}
	u := c.user.Clone()
	return models.Session{User: &u, AccessToken: c.token}, nil
}

// sameUserLocked reports whether userID is still the signed-in user.
func (c *Context) sameUserLocked(userID string) bool {
	return c.user != nil && c.user.ID == userID
}

// active picks the current backend and records its mode for snapshots.
func (c *Context) active(ctx context.Context) strategy.Strategy {
	st := c.svc.Strategy(ctx)
	c.mu.Lock()
	c.mode = st.Mode()
	c.mu.Unlock()
	return st
}

func (c *Context) resetLocked() {
	c.user = nil
	c.token = ""
	c.favorites = []string{}
	c.viewed = []string{}
}

// Restore rehydrates the persisted session. In remote mode the token is
// then validated: any non-2xx reply discards the session, a network
// failure keeps it. In local mode the session is trusted as is.
// Collections are loaded for a surviving session.
func (c *Context) Restore(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	sess, err := storage.LoadSession(ctx, c.kv)
	if err != nil {
		c.log.Warn(ctx, "discarding unreadable persisted session", "err", err)
		c.clearPersisted(ctx)
	}

	if sess.Valid() {
		c.mu.Lock()
		c.user = sess.User
		c.token = sess.AccessToken
		c.mu.Unlock()

		c.validate(ctx, sess)
	}

	if _, err := c.session(); err == nil {
		if err := c.LoadCollections(ctx); err != nil {
			c.log.Warn(ctx, "failed to load collections", "err", err)
		}
	}

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
	c.notify()
}

func (c *Context) validate(ctx context.Context, sess models.Session) {
	st := c.active(ctx)
	if st.Mode() == models.ModeLocal {
		return
	}

	user, err := st.Validate(ctx, sess)
	switch {
	case err == nil:
		c.mu.Lock()
		if c.sameUserLocked(user.ID) {
			c.user = &user
		}
		c.mu.Unlock()
		c.persistUser(ctx)

	case rejected(err):
		c.log.Info(ctx, "persisted session rejected by backend", "user", sess.User.ID, "err", err)
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		c.clearPersisted(ctx)

	default:
		c.log.Warn(ctx, "could not validate session, keeping it", "err", err)
	}
}

// rejected reports whether the backend answered a validation request with
// anything but success. Transport failures and cancellations are not
// answers.
func rejected(err error) bool {
	if errors.Is(err, common.ErrNetworkUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var re *common.RemoteError
	return errors.As(err, &re) || errors.Is(err, common.ErrUnauthorized)
}

// SignIn installs an already authenticated session. It makes no network
// call; collections start empty until LoadCollections.
func (c *Context) SignIn(ctx context.Context, user models.User, token string) error {
	if user.ID == "" || token == "" {
		return fmt.Errorf("sign in: %w", common.ErrMissingFields)
	}
	u := user.Clone()

	c.mu.Lock()
	c.user = &u
	c.token = token
	c.loading = false
	c.favorites = []string{}
	c.viewed = []string{}
	c.mu.Unlock()

	err := storage.SaveSession(ctx, c.kv, models.Session{User: &u, AccessToken: token})
	c.notify()
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

// SignOut never fails. The remote call is best effort; local state and the
// persisted session are always cleared.
func (c *Context) SignOut(ctx context.Context) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	c.svc.SignOut(ctx, token)

	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()

	c.clearPersisted(ctx)
	c.notify()
}

// CompleteProfile merges fields into the signed-in user, marks the profile
// complete and persists the user. A session with a local token also writes
// the fields to the device's credential record; remote writes go through
// SubmitProfile.
func (c *Context) CompleteProfile(ctx context.Context, fields map[string]any) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	if models.IsLocalToken(sess.AccessToken) {
		if st := c.active(ctx); st.Mode() == models.ModeLocal {
			if _, err := st.CompleteProfile(ctx, sess, fields); err != nil {
				return err
			}
		}
	}
	return c.applyProfile(ctx, fields)
}

func (c *Context) applyProfile(ctx context.Context, fields map[string]any) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	u := c.user.Clone()
	u.Merge(fields)
	u.ProfileCompleted = true
	c.user = &u
	c.mu.Unlock()

	err := c.persistUser(ctx)
	c.notify()
	return err
}

// SubmitProfile validates fields, writes them through the active backend
// and then applies them to the in-memory and persisted user.
func (c *Context) SubmitProfile(ctx context.Context, fields map[string]any) error {
	if err := models.ValidateProfile(fields); err != nil {
		return err
	}
	sess, err := c.session()
	if err != nil {
		return err
	}
	if _, err := c.active(ctx).CompleteProfile(ctx, sess, fields); err != nil {
		return err
	}
	return c.applyProfile(ctx, fields)
}

// UpdateProfile changes the display name and phone through the active
// backend and applies the result.
func (c *Context) UpdateProfile(ctx context.Context, name, phone string) error {
	if name == "" || phone == "" {
		return common.ErrMissingFields
	}
	sess, err := c.session()
	if err != nil {
		return err
	}

	updated, err := c.active(ctx).UpdateProfile(ctx, sess, name, phone)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if !c.sameUserLocked(sess.User.ID) {
		c.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	u := c.user.Clone()
	u.Name = updated.Name
	u.Phone = updated.Phone
	c.user = &u
	c.mu.Unlock()

	err = c.persistUser(ctx)
	c.notify()
	return err
}

// Profile returns the full stored profile from the active backend.
func (c *Context) Profile(ctx context.Context) (map[string]any, error) {
	sess, err := c.session()
	if err != nil {
		return nil, err
	}
	return c.active(ctx).Profile(ctx, sess)
}

func (c *Context) persistUser(ctx context.Context) error {
	c.mu.Lock()
	sess, err := c.sessionLocked()
	c.mu.Unlock()
	if err != nil {
		return nil
	}
	if err := storage.SaveSession(ctx, c.kv, sess); err != nil {
		c.log.Error(ctx, "failed to persist session", "err", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (c *Context) clearPersisted(ctx context.Context) {
	if err := storage.ClearSession(ctx, c.kv); err != nil {
		c.log.Error(ctx, "failed to clear persisted session", "err", err)
	}
}

package strategy

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/client/credentials"
	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/logging"
)

// Local serves every operation from the device. It is the authority for its
// own data, so collections are read-modify-written as whole lists.
type Local struct {
	creds *credentials.Store
	kv    storage.Store
	log   logging.Logger
	now   func() time.Time
}

func NewLocal(creds *credentials.Store, kv storage.Store, log logging.Logger) *Local {
	return &Local{creds: creds, kv: kv, log: log, now: time.Now}
}

func (l *Local) Mode() models.Mode { return models.ModeLocal }

// SignIn seeds the demo account into an empty store before looking up phone.
func (l *Local) SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error) {
	if err := l.ensureDemo(ctx); err != nil {
		return models.AuthResponse{}, err
	}

	rec, err := l.creds.FindByPhone(ctx, phone)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if rec == nil {
		return models.AuthResponse{}, common.ErrPhoneNotRegistered
	}
	if rec.Password != password {
		return models.AuthResponse{}, common.ErrWrongPassword
	}

	return models.AuthResponse{
		User:        rec.Public(),
		AccessToken: models.NewLocalToken(rec.ID, l.now()),
	}, nil
}

func (l *Local) SignUp(ctx context.Context, name, phone, password string) (models.AuthResponse, error) {
	if err := l.ensureDemo(ctx); err != nil {
		return models.AuthResponse{}, err
	}

	_, err := l.creds.Create(ctx, models.LocalCredentialRecord{
		User:     models.User{Name: name, Phone: phone},
		Password: password,
	})
	if err != nil {
		return models.AuthResponse{}, err
	}
	return l.SignIn(ctx, phone, password)
}

// SignOut has nothing to invalidate on the device.
func (l *Local) SignOut(context.Context, string) error { return nil }

// Validate trusts the restored session; there is no authority to ask.
func (l *Local) Validate(_ context.Context, sess models.Session) (models.User, error) {
	if !sess.Valid() {
		return models.User{}, common.ErrUnauthorized
	}
	return sess.User.Clone(), nil
}

func (l *Local) Favorites(ctx context.Context, sess models.Session) ([]string, error) {
	return storage.LoadIDs(ctx, l.kv, storage.FavoritesKey(sess.User.ID))
}

func (l *Local) SetFavorite(ctx context.Context, sess models.Session, roomID string, on bool) ([]string, error) {
	key := storage.FavoritesKey(sess.User.ID)
	ids, err := storage.LoadIDs(ctx, l.kv, key)
	if err != nil {
		return nil, err
	}
	if on {
		ids = models.WithID(ids, roomID)
	} else {
		ids = models.WithoutID(ids, roomID)
	}
	if err := storage.SaveIDs(ctx, l.kv, key, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *Local) Viewed(ctx context.Context, sess models.Session) ([]string, error) {
	return storage.LoadIDs(ctx, l.kv, storage.ViewedKey(sess.User.ID))
}

func (l *Local) MarkViewed(ctx context.Context, sess models.Session, roomID string) ([]string, error) {
	key := storage.ViewedKey(sess.User.ID)
	ids, err := storage.LoadIDs(ctx, l.kv, key)
	if err != nil {
		return nil, err
	}
	if models.ContainsID(ids, roomID) {
		return ids, nil
	}
	ids = models.WithID(ids, roomID)
	if err := storage.SaveIDs(ctx, l.kv, key, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CompleteProfile stores fields on the local record and marks it complete.
func (l *Local) CompleteProfile(ctx context.Context, sess models.Session, fields map[string]any) (map[string]any, error) {
	update := maps.Clone(fields)
	if update == nil {
		update = make(map[string]any)
	}
	update[models.FieldProfileCompleted] = true

	rec, err := l.creds.Update(ctx, sess.User.ID, update)
	if err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return rec.Public().Fields(), nil
}

func (l *Local) UpdateProfile(ctx context.Context, sess models.Session, name, phone string) (models.User, error) {
	rec, err := l.creds.Update(ctx, sess.User.ID, map[string]any{
		models.FieldName:  name,
		models.FieldPhone: phone,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return rec.Public(), nil
}

func (l *Local) Profile(ctx context.Context, sess models.Session) (map[string]any, error) {
	rec, err := l.creds.Read(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("local user %s: %w", sess.User.ID, common.ErrNotFound)
	}
	return rec.Public().Fields(), nil
}

func (l *Local) ensureDemo(ctx context.Context) error {
	seeded, err := l.creds.InitializeDemoAccount(ctx)
	if err != nil {
		return err
	}
	if seeded {
		l.log.Info(ctx, "seeded local demo account", "phone", credentials.DemoPhone)
	}
	return nil
}

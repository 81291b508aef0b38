package strategy

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/common"
)

// RemoteAPI is the subset of api.Client used by Remote.
type RemoteAPI interface {
	SignUp(ctx context.Context, name, phone, password string) (models.User, error)
	SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error)
	Session(ctx context.Context, token string) (models.User, error)
	SignOut(ctx context.Context, token string) error
	CompleteProfile(ctx context.Context, token string, fields map[string]any) (map[string]any, error)
	UpdateProfile(ctx context.Context, token, name, phone string) (models.User, error)
	Profile(ctx context.Context, token string) (map[string]any, error)
	Favorites(ctx context.Context, token string) ([]string, error)
	AddFavorite(ctx context.Context, token, roomID string) ([]string, error)
	RemoveFavorite(ctx context.Context, token, roomID string) ([]string, error)
	Viewed(ctx context.Context, token string) ([]string, error)
	AddViewed(ctx context.Context, token, roomID string) ([]string, error)
}

type Remote struct {
	api RemoteAPI
}

func NewRemote(api RemoteAPI) *Remote {
	return &Remote{api: api}
}

func (r *Remote) Mode() models.Mode { return models.ModeRemote }

func (r *Remote) SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error) {
	return r.api.SignIn(ctx, phone, password)
}

// SignUp never yields a session by itself; a sign-in failure after a
// successful create leaves the account in place.
func (r *Remote) SignUp(ctx context.Context, name, phone, password string) (models.AuthResponse, error) {
	if _, err := r.api.SignUp(ctx, name, phone, password); err != nil {
		return models.AuthResponse{}, err
	}
	resp, err := r.api.SignIn(ctx, phone, password)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", common.ErrAccountCreated, err)
	}
	return resp, nil
}

func (r *Remote) SignOut(ctx context.Context, token string) error {
	return r.api.SignOut(ctx, token)
}

func (r *Remote) Validate(ctx context.Context, sess models.Session) (models.User, error) {
	return r.api.Session(ctx, sess.AccessToken)
}

func (r *Remote) Favorites(ctx context.Context, sess models.Session) ([]string, error) {
	return r.api.Favorites(ctx, sess.AccessToken)
}

func (r *Remote) SetFavorite(ctx context.Context, sess models.Session, roomID string, on bool) ([]string, error) {
	if on {
		return r.api.AddFavorite(ctx, sess.AccessToken, roomID)
	}
	return r.api.RemoveFavorite(ctx, sess.AccessToken, roomID)
}

func (r *Remote) Viewed(ctx context.Context, sess models.Session) ([]string, error) {
	return r.api.Viewed(ctx, sess.AccessToken)
}

func (r *Remote) MarkViewed(ctx context.Context, sess models.Session, roomID string) ([]string, error) {
	return r.api.AddViewed(ctx, sess.AccessToken, roomID)
}

func (r *Remote) CompleteProfile(ctx context.Context, sess models.Session, fields map[string]any) (map[string]any, error) {
	return r.api.CompleteProfile(ctx, sess.AccessToken, fields)
}

func (r *Remote) UpdateProfile(ctx context.Context, sess models.Session, name, phone string) (models.User, error) {
	return r.api.UpdateProfile(ctx, sess.AccessToken, name, phone)
}

func (r *Remote) Profile(ctx context.Context, sess models.Session) (map[string]any, error) {
	return r.api.Profile(ctx, sess.AccessToken)
}

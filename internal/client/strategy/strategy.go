// Package strategy implements the per-backend behavior of the session layer.
// Remote talks to the HTTP backend, Local to the device store. Callers pick
// one through the probe and never branch on the mode themselves.
package strategy

import (
	"context"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
)

type Strategy interface {
	Mode() models.Mode

	SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error)
	// SignUp creates the account and then signs in with the same credentials.
	SignUp(ctx context.Context, name, phone, password string) (models.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	// Validate confirms a restored session is still usable and returns the
	// current user.
	Validate(ctx context.Context, sess models.Session) (models.User, error)

	Favorites(ctx context.Context, sess models.Session) ([]string, error)
	// SetFavorite adds or removes roomID and returns the canonical list.
	SetFavorite(ctx context.Context, sess models.Session, roomID string, on bool) ([]string, error)
	Viewed(ctx context.Context, sess models.Session) ([]string, error)
	// MarkViewed records roomID and returns the canonical list.
	MarkViewed(ctx context.Context, sess models.Session, roomID string) ([]string, error)

	CompleteProfile(ctx context.Context, sess models.Session, fields map[string]any) (map[string]any, error)
	UpdateProfile(ctx context.Context, sess models.Session, name, phone string) (models.User, error)
	Profile(ctx context.Context, sess models.Session) (map[string]any, error)
}

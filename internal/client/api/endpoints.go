package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/common"
)

var errUnhealthy = errors.New("unexpected health payload")

// Health issues a single GET /health and succeeds only on {"status":"ok"}.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/health", out: &out}); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("%w: status %q", errUnhealthy, out.Status)
	}
	return nil
}

type signUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SignUp creates the account. It does not return a session.
func (c *Client) SignUp(ctx context.Context, name, phone, password string) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/signup",
		token:  c.anonKey,
		in:     signUpRequest{Name: name, Phone: phone, Password: password},
		out:    &out,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("sign up: %w", err)
	}
	return out.User, nil
}

type signInRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session. Every non-2xx reply is
// reported as common.ErrInvalidCredentials.
func (c *Client) SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/signin",
		token:  c.anonKey,
		in:     signInRequest{Phone: phone, Password: password},
		out:    &out,
		kind:   common.ErrInvalidCredentials,
	})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("sign in: %w", err)
	}
	if out.AccessToken == "" || out.User.ID == "" {
		return models.AuthResponse{}, fmt.Errorf("sign in: %w: empty session", common.ErrRequestFailed)
	}
	return out, nil
}

// Session validates token and returns the current user. A {"user":null}
// reply is reported as common.ErrUnauthorized.
func (c *Client) Session(ctx context.Context, token string) (models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/auth/session", token: token, out: &out, retry: true})
	if err != nil {
		return models.User{}, fmt.Errorf("session: %w", err)
	}
	if out.User == nil {
		return models.User{}, fmt.Errorf("session: %w", common.ErrUnauthorized)
	}
	return *out.User, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/signout", token: token, out: &out}); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CompleteProfile stores the profile fields and marks the profile complete.
func (c *Client) CompleteProfile(ctx context.Context, token string, fields map[string]any) (map[string]any, error) {
	var out struct {
		Profile map[string]any `json:"profile"`
	}
	err := c.do(ctx, call{method: http.MethodPost, path: "/user/complete-profile", token: token, in: fields, out: &out})
	if err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return out.Profile, nil
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile changes the display name and phone.
func (c *Client) UpdateProfile(ctx context.Context, token, name, phone string) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/user/profile",
		token:  token,
		in:     updateProfileRequest{Name: name, Phone: phone},
		out:    &out,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return out.User, nil
}

// Profile returns the full stored profile.
func (c *Client) Profile(ctx context.Context, token string) (map[string]any, error) {
	var out struct {
		Profile map[string]any `json:"profile"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/user/profile-full", token: token, out: &out, retry: true})
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return out.Profile, nil
}

type favoritesResponse struct {
	Favorites []string `json:"favorites"`
}

type viewedResponse struct {
	Viewed []string `json:"viewed"`
}

func (c *Client) Favorites(ctx context.Context, token string) ([]string, error) {
	var out favoritesResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/favorites", token: token, out: &out, retry: true}); err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}
	return nonNil(out.Favorites), nil
}

// AddFavorite returns the canonical favorites after adding roomID.
func (c *Client) AddFavorite(ctx context.Context, token, roomID string) ([]string, error) {
	var out favoritesResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: roomPath("/favorites", roomID), token: token, out: &out}); err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return nonNil(out.Favorites), nil
}

// RemoveFavorite returns the canonical favorites after removing roomID.
func (c *Client) RemoveFavorite(ctx context.Context, token, roomID string) ([]string, error) {
	var out favoritesResponse
	if err := c.do(ctx, call{method: http.MethodDelete, path: roomPath("/favorites", roomID), token: token, out: &out}); err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return nonNil(out.Favorites), nil
}

func (c *Client) Viewed(ctx context.Context, token string) ([]string, error) {
	var out viewedResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/viewed", token: token, out: &out, retry: true}); err != nil {
		return nil, fmt.Errorf("viewed: %w", err)
	}
	return nonNil(out.Viewed), nil
}

// AddViewed returns the canonical viewed list after recording roomID.
func (c *Client) AddViewed(ctx context.Context, token, roomID string) ([]string, error) {
	var out viewedResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: roomPath("/viewed", roomID), token: token, out: &out}); err != nil {
		return nil, fmt.Errorf("add viewed: %w", err)
	}
	return nonNil(out.Viewed), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

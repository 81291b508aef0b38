package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
)

const (
	KeyCurrentUser = "currentUser"
	KeyAccessToken = "accessToken"
	KeyLocalUsers  = "localUsers"
)

func FavoritesKey(userID string) string { return "favorites_" + userID }

func ViewedKey(userID string) string { return "viewed_" + userID }

var errCorruptSession = errors.New("corrupt persisted session")

// LoadSession reads the persisted current session. A missing half yields an
// empty session. A user that cannot be decoded is reported as an error
// together with an empty session.
func LoadSession(ctx context.Context, s Store) (models.Session, error) {
	token, err := s.Get(ctx, KeyAccessToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	var user models.User
	found, err := GetJSON(ctx, s, KeyCurrentUser, &user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", errCorruptSession, err)
	}
	if !found || len(token) == 0 {
		return models.Session{}, nil
	}
	if user.ID == "" {
		return models.Session{}, fmt.Errorf("%w: user without id", errCorruptSession)
	}

	return models.Session{User: &user, AccessToken: string(token)}, nil
}

// SaveSession overwrites both session keys together.
func SaveSession(ctx context.Context, s Store, sess models.Session) error {
	if !sess.Valid() {
		return errors.New("save session: user and token are required")
	}
	data, err := sess.User.MarshalJSON()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return SetAll(ctx, s, map[string][]byte{
		KeyCurrentUser: data,
		KeyAccessToken: []byte(sess.AccessToken),
	})
}

// ClearSession removes both session keys.
func ClearSession(ctx context.Context, s Store) error {
	return DeleteAll(ctx, s, KeyCurrentUser, KeyAccessToken)
}

// LoadIDs reads a JSON string array. An absent key yields an empty slice.
func LoadIDs(ctx context.Context, s Store, key string) ([]string, error) {
	ids := []string{}
	if _, err := GetJSON(ctx, s, key, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SaveIDs writes ids as a JSON string array.
func SaveIDs(ctx context.Context, s Store, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return SetJSON(ctx, s, key, ids)
}

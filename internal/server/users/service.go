// Package users implements accounts, profiles and the per-user room
// collections of the development server on top of the profile store.
package users

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/server/profilestore"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service serializes read-modify-write cycles on the store with one mutex.
type Service struct {
	mu    sync.Mutex
	store profilestore.Store
	cost  int
	now   func() time.Time
}

func NewService(store profilestore.Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost, now: time.Now}
}

// SignUp creates an account and returns the public profile.
func (s *Service) SignUp(ctx context.Context, name, phone, password string) (map[string]any, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.store.Get(ctx, authKey(phone))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicatePhone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.NewString()
	now := s.now().UTC()
	profile := map[string]any{
		fieldID:               id,
		fieldName:             name,
		fieldPhone:            phone,
		fieldProfileCompleted: false,
		fieldCreatedAt:        now,
		fieldUpdatedAt:        now,
	}

	if err := profilestore.SetJSON(ctx, s.store, userKey(id), profile); err != nil {
		return nil, err
	}
	if err := profilestore.SetJSON(ctx, s.store, authKey(phone), account{UserID: id, PasswordHash: hash}); err != nil {
		return nil, err
	}
	return s.profileLocked(ctx, id)
}

// Authenticate checks the credentials. Unknown phone and wrong password are
// both reported as ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var acc account
	ok, err := profilestore.GetJSON(ctx, s.store, authKey(strings.TrimSpace(phone)), &acc)
	if err != nil {
		return nil, err
	}
	if !ok || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.profileLocked(ctx, acc.UserID)
}

// Profile returns the full stored profile of id.
func (s *Service) Profile(ctx context.Context, id string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLocked(ctx, id)
}

func (s *Service) profileLocked(ctx context.Context, id string) (map[string]any, error) {
	var p map[string]any
	ok, err := profilestore.GetJSON(ctx, s.store, userKey(id), &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return p, nil
}

// CompleteProfile merges fields into the profile and marks it complete.
// The id, phone and timestamps cannot be overwritten this way.
func (s *Service) CompleteProfile(ctx context.Context, id string, fields map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profileLocked(ctx, id)
	if err != nil {
		return nil, err
	}

	update := maps.Clone(fields)
	for _, k := range []string{fieldID, fieldPhone, fieldCreatedAt, fieldUpdatedAt} {
		delete(update, k)
	}
	maps.Copy(p, update)
	p[fieldProfileCompleted] = true
	p[fieldUpdatedAt] = s.now().UTC()

	if err := profilestore.SetJSON(ctx, s.store, userKey(id), p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile changes name and phone. Moving onto a phone that belongs to
// another account fails with ErrDuplicatePhone.
func (s *Service) UpdateProfile(ctx context.Context, id, name, phone string) (map[string]any, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, common.ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profileLocked(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPhone, _ := p[fieldPhone].(string)
	if phone != oldPhone {
		var acc account
		taken, err := profilestore.GetJSON(ctx, s.store, authKey(phone), &acc)
		if err != nil {
			return nil, err
		}
		if taken && acc.UserID != id {
			return nil, common.ErrDuplicatePhone
		}

		ok, err := profilestore.GetJSON(ctx, s.store, authKey(oldPhone), &acc)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("account for %s: %w", id, common.ErrNotFound)
		}
		if err := profilestore.SetJSON(ctx, s.store, authKey(phone), acc); err != nil {
			return nil, err
		}
		if err := s.store.Delete(ctx, authKey(oldPhone)); err != nil {
			return nil, err
		}
	}

	p[fieldName] = name
	p[fieldPhone] = phone
	p[fieldUpdatedAt] = s.now().UTC()
	if err := profilestore.SetJSON(ctx, s.store, userKey(id), p); err != nil {
		return nil, err
	}
	return p, nil
}

// Favorites returns the user's favorite room ids in insertion order.
func (s *Service) Favorites(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(ctx, favoritesKey(id))
}

func (s *Service) AddFavorite(ctx context.Context, id, roomID string) ([]string, error) {
	return s.modify(ctx, favoritesKey(id), func(ids []string) []string {
		if slices.Contains(ids, roomID) {
			return ids
		}
		return append(ids, roomID)
	})
}

func (s *Service) RemoveFavorite(ctx context.Context, id, roomID string) ([]string, error) {
	return s.modify(ctx, favoritesKey(id), func(ids []string) []string {
		return slices.DeleteFunc(ids, func(v string) bool { return v == roomID })
	})
}

func (s *Service) Viewed(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(ctx, viewedKey(id))
}

// AddViewed records roomID once; repeated views keep the first position.
func (s *Service) AddViewed(ctx context.Context, id, roomID string) ([]string, error) {
	return s.modify(ctx, viewedKey(id), func(ids []string) []string {
		if slices.Contains(ids, roomID) {
			return ids
		}
		return append(ids, roomID)
	})
}

func (s *Service) listLocked(ctx context.Context, key string) ([]string, error) {
	ids := []string{}
	if _, err := profilestore.GetJSON(ctx, s.store, key, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Service) modify(ctx context.Context, key string, fn func([]string) []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.listLocked(ctx, key)
	if err != nil {
		return nil, err
	}
	ids = fn(ids)
	if err := profilestore.SetJSON(ctx, s.store, key, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

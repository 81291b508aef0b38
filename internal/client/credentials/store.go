// Package credentials is the on-device account list used in local mode.
//
// Records live as one JSON array under the localUsers key and are rewritten
// as a whole on every change. Passwords are stored in plaintext.
package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/google/uuid"
)

// Demo account seeded into an empty store.
const (
	DemoUserID   = "demo-user-001"
	DemoName     = "Nguyễn Văn An"
	DemoPhone    = "0909123456"
	DemoPassword = "123456"
)

// Onboarding credentials advertised to users. They do not match the seeded
// demo record.
const (
	AdvertisedDemoPhone    = "0123456789"
	AdvertisedDemoPassword = "demo123"
)

type Store struct {
	// mu serializes read-modify-write cycles within this process only.
	mu  sync.Mutex
	kv  storage.Store
	now func() time.Time
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// DemoCredentials returns the advertised onboarding pair.
func (s *Store) DemoCredentials() models.Credentials {
	return models.Credentials{Phone: AdvertisedDemoPhone, Password: AdvertisedDemoPassword}
}

// InitializeDemoAccount seeds the demo record when the store is empty. It
// reports whether a record was written.
func (s *Store) InitializeDemoAccount(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if len(records) > 0 {
		return false, nil
	}

	now := s.now()
	demo := models.LocalCredentialRecord{
		User: models.User{
			ID:    DemoUserID,
			Name:  DemoName,
			Phone: DemoPhone,
		},
		Password:  DemoPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, []models.LocalCredentialRecord{demo}); err != nil {
		return false, err
	}
	return true, nil
}

// IsEmpty reports whether no record has been stored yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return len(records) == 0, nil
}

// FindByPhone returns nil when no record has that phone.
func (s *Store) FindByPhone(ctx context.Context, phone string) (*models.LocalCredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexBy(records, func(r models.LocalCredentialRecord) bool { return r.Phone == phone }); i >= 0 {
		return &records[i], nil
	}
	return nil, nil
}

// Read returns nil when userID is unknown.
func (s *Store) Read(ctx context.Context, userID string) (*models.LocalCredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexBy(records, func(r models.LocalCredentialRecord) bool { return r.ID == userID }); i >= 0 {
		return &records[i], nil
	}
	return nil, nil
}

// Create appends rec, assigning an id and timestamps when missing.
func (s *Store) Create(ctx context.Context, rec models.LocalCredentialRecord) (models.LocalCredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return models.LocalCredentialRecord{}, err
	}
	if indexBy(records, func(r models.LocalCredentialRecord) bool { return r.Phone == rec.Phone }) >= 0 {
		return models.LocalCredentialRecord{}, common.ErrDuplicatePhone
	}

	if rec.ID == "" {
		rec.ID = "local-" + uuid.NewString()
	}
	now := s.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	if err := s.save(ctx, append(records, rec)); err != nil {
		return models.LocalCredentialRecord{}, err
	}
	return rec, nil
}

// Update merges fields into the record and stamps UpdatedAt. A phone change
// onto a phone owned by another record fails with ErrDuplicatePhone.
func (s *Store) Update(ctx context.Context, userID string, fields map[string]any) (models.LocalCredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return models.LocalCredentialRecord{}, err
	}
	i := indexBy(records, func(r models.LocalCredentialRecord) bool { return r.ID == userID })
	if i < 0 {
		return models.LocalCredentialRecord{}, fmt.Errorf("local user %s: %w", userID, common.ErrNotFound)
	}

	if phone, ok := fields[models.FieldPhone].(string); ok && phone != records[i].Phone {
		if indexBy(records, func(r models.LocalCredentialRecord) bool { return r.Phone == phone }) >= 0 {
			return models.LocalCredentialRecord{}, common.ErrDuplicatePhone
		}
	}

	rec := records[i]
	rec.User = rec.User.Clone()
	rec.Merge(fields)
	rec.UpdatedAt = s.now()
	records[i] = rec

	if err := s.save(ctx, records); err != nil {
		return models.LocalCredentialRecord{}, err
	}
	return rec, nil
}

func (s *Store) load(ctx context.Context) ([]models.LocalCredentialRecord, error) {
	var records []models.LocalCredentialRecord
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyLocalUsers, &records); err != nil {
		return nil, fmt.Errorf("load local users: %w", err)
	}
	return records, nil
}

func (s *Store) save(ctx context.Context, records []models.LocalCredentialRecord) error {
	if err := storage.SetJSON(ctx, s.kv, storage.KeyLocalUsers, records); err != nil {
		return fmt.Errorf("save local users: %w", err)
	}
	return nil
}

func indexBy(records []models.LocalCredentialRecord, match func(models.LocalCredentialRecord) bool) int {
	for i := range records {
		if match(records[i]) {
			return i
		}
	}
	return -1
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	fieldPassword  = "password"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// LocalCredentialRecord is an account stored on the device for local mode.
// The password is kept in plaintext; the record is a convenience for offline
// use and not a security boundary.
type LocalCredentialRecord struct {
	User
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns the user without the password.
func (r LocalCredentialRecord) Public() User {
	return r.User.Clone()
}

func (r LocalCredentialRecord) MarshalJSON() ([]byte, error) {
	m := r.User.Fields()
	m[fieldPassword] = r.Password
	m[fieldCreatedAt] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	m[fieldUpdatedAt] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return json.Marshal(m)
}

func (r *LocalCredentialRecord) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	var rec LocalCredentialRecord
	if s, ok := m[fieldPassword].(string); ok {
		rec.Password = s
	}
	for key, dst := range map[string]*time.Time{fieldCreatedAt: &rec.CreatedAt, fieldUpdatedAt: &rec.UpdatedAt} {
		s, ok := m[key].(string)
		if !ok || s == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		*dst = t
	}
	delete(m, fieldPassword)
	delete(m, fieldCreatedAt)
	delete(m, fieldUpdatedAt)

	rec.User = userFromMap(m)
	*r = rec
	return nil
}

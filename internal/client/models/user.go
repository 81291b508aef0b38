package models

import (
	"encoding/json"
	"maps"
)

// Mode is the backend a session operates against.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// JSON keys for the typed user fields.
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldPhone            = "phone"
	FieldProfileCompleted = "profileCompleted"
)

// User is the public identity of an account. It never carries a password.
type User struct {
	ID               string
	Name             string
	Phone            string
	ProfileCompleted bool

	// Profile holds the remaining attributes (age, gender, occupation,
	// lifestyle, personality, preferences, university, yearOfStudy, ...).
	Profile map[string]any
}

// Clone returns a copy whose Profile map can be modified independently.
func (u User) Clone() User {
	u.Profile = maps.Clone(u.Profile)
	return u
}

// Merge applies fields on top of u. Known keys update the typed fields; the
// id is never changed; everything else lands in Profile.
func (u *User) Merge(fields map[string]any) {
	for k, v := range fields {
		switch k {
		case FieldID:
		case FieldName:
			if s, ok := v.(string); ok {
				u.Name = s
			}
		case FieldPhone:
			if s, ok := v.(string); ok {
				u.Phone = s
			}
		case FieldProfileCompleted:
			if b, ok := v.(bool); ok {
				u.ProfileCompleted = b
			}
		default:
			if u.Profile == nil {
				u.Profile = make(map[string]any)
			}
			u.Profile[k] = v
		}
	}
}

// Fields returns the flat representation of u.
func (u User) Fields() map[string]any {
	m := make(map[string]any, len(u.Profile)+4)
	maps.Copy(m, u.Profile)
	m[FieldID] = u.ID
	m[FieldName] = u.Name
	m[FieldPhone] = u.Phone
	m[FieldProfileCompleted] = u.ProfileCompleted
	return m
}

func userFromMap(m map[string]any) User {
	var u User
	if s, ok := m[FieldID].(string); ok {
		u.ID = s
	}
	delete(m, FieldID)
	u.Merge(m)
	return u
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Fields())
}

func (u *User) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*u = userFromMap(m)
	return nil
}

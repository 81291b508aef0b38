package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/common"
)

// AuthResponse is what a successful sign-in or sign-up yields in either mode.
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Session is the authenticated identity persisted on the device.
type Session struct {
	User        *User
	AccessToken string
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.User != nil && s.AccessToken != ""
}

// Credentials is a phone/password pair.
type Credentials struct {
	Phone    string
	Password string
}

// NewLocalToken synthesizes a local-mode access token. It only marks that a
// session exists and carries no cryptographic guarantee.
func NewLocalToken(userID string, now time.Time) string {
	return fmt.Sprintf("%s%s-%d", common.LocalTokenPrefix, userID, now.UnixMilli())
}

// IsLocalToken reports whether token was produced by NewLocalToken.
func IsLocalToken(token string) bool {
	return strings.HasPrefix(token, common.LocalTokenPrefix)
}

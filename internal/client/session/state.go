// Package session holds the process-wide session state of the client: the
// signed-in user, the access token and the favorites and viewed collections.
//
// Context never makes a network call while holding its lock. Two concurrent
// mutations of the same collection race; the response that arrives last
// replaces the collection.
package session

import (
	"slices"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
)

type Status int

const (
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusProfileIncomplete
	StatusProfileComplete
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusProfileIncomplete:
		return "profile-incomplete"
	case StatusProfileComplete:
		return "profile-complete"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Status      Status
	User        *models.User
	AccessToken string
	Mode        models.Mode
	Favorites   []string
	Viewed      []string
}

func (s Snapshot) Authenticated() bool {
	return s.Status == StatusProfileIncomplete || s.Status == StatusProfileComplete
}

func (s Snapshot) IsFavorite(roomID string) bool {
	return slices.Contains(s.Favorites, roomID)
}

func (s Snapshot) IsViewed(roomID string) bool {
	return slices.Contains(s.Viewed, roomID)
}

package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/server/profilestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *profilestore.MemoryStore) {
	t.Helper()
	store := profilestore.NewMemoryStore()
	s := NewService(store)
	s.cost = bcrypt.MinCost
	return s, store
}

func TestSignUpThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)

	p, err := s.SignUp(ctx, "Mai", "0911", "pw")
	require.NoError(t, err)
	id, _ := p["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Mai", p["name"])
	assert.Equal(t, false, p["profileCompleted"])

	got, err := s.Authenticate(ctx, "0911", "pw")
	require.NoError(t, err)
	assert.Equal(t, id, got["id"])

	var acc account
	ok, err := profilestore.GetJSON(ctx, store, "auth:0911", &acc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, []byte("pw"), acc.PasswordHash)
}

func TestSignUp_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.SignUp(ctx, "", "0911", "pw")
	require.ErrorIs(t, err, common.ErrMissingFields)

	_, err = s.SignUp(ctx, "A", "0911", "pw")
	require.NoError(t, err)
	_, err = s.SignUp(ctx, "B", "0911", "other")
	require.ErrorIs(t, err, common.ErrDuplicatePhone)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	_, err := s.SignUp(ctx, "A", "0911", "pw")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "0911", "nope")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "0000", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestCompleteProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	p, err := s.SignUp(ctx, "A", "0911", "pw")
	require.NoError(t, err)
	id := p["id"].(string)

	out, err := s.CompleteProfile(ctx, id, map[string]any{
		"gender": "female",
		"age":    22,
		"id":     "hijack",
		"phone":  "0000",
	})
	require.NoError(t, err)
	assert.Equal(t, id, out["id"])
	assert.Equal(t, "0911", out["phone"])
	assert.Equal(t, true, out["profileCompleted"])

	full, err := s.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "female", full["gender"])
	assert.EqualValues(t, 22, full["age"])

	_, err = s.CompleteProfile(ctx, "ghost", map[string]any{})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile_MovesPhone(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	a, err := s.SignUp(ctx, "A", "0911", "pw")
	require.NoError(t, err)
	_, err = s.SignUp(ctx, "B", "0922", "pw")
	require.NoError(t, err)
	id := a["id"].(string)

	_, err = s.UpdateProfile(ctx, id, "A", "0922")
	require.ErrorIs(t, err, common.ErrDuplicatePhone)

	p, err := s.UpdateProfile(ctx, id, "Anh", "0933")
	require.NoError(t, err)
	assert.Equal(t, "Anh", p["name"])
	assert.Equal(t, "0933", p["phone"])

	_, err = s.Authenticate(ctx, "0933", "pw")
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "0911", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	favs, err := s.Favorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, favs)

	_, err = s.AddFavorite(ctx, "u1", "r1")
	require.NoError(t, err)
	favs, err = s.AddFavorite(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, favs, "adding twice is idempotent")

	favs, err = s.AddFavorite(ctx, "u1", "r2")
	require.NoError(t, err)
	favs, err = s.RemoveFavorite(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, favs)

	_, err = s.AddViewed(ctx, "u1", "r9")
	require.NoError(t, err)
	viewed, err := s.AddViewed(ctx, "u1", "r9")
	require.NoError(t, err)
	assert.Equal(t, []string{"r9"}, viewed)

	other, err := s.Viewed(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

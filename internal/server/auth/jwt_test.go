package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/server/profilestore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	a, err := GenerateToken("u", secret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("u", secret, time.Hour)
	require.NoError(t, err)

	ca, err := ParseToken(a, secret)
	require.NoError(t, err)
	cb, err := ParseToken(b, secret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, secret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u",
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestTokens_Revoke(t *testing.T) {
	ctx := context.Background()
	store := profilestore.NewMemoryStore()
	tokens := NewTokens(store, "secret", time.Hour)

	tok, err := tokens.Issue("u1")
	require.NoError(t, err)

	claims, err := tokens.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	require.NoError(t, tokens.Revoke(ctx, claims))

	_, err = tokens.Verify(ctx, tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, ok, err := store.Get(ctx, "revoked:"+claims.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

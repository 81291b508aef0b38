package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/server/profilestore"
)

type revocation struct {
	RevokedAt time.Time `json:"revokedAt"`
}

func revokedKey(jti string) string { return "revoked:" + jti }

// Tokens issues access tokens and tracks revoked ones in the profile store.
type Tokens struct {
	store     profilestore.Store
	jwtSecret []byte
	validity  time.Duration
	now       func() time.Time
}

func NewTokens(store profilestore.Store, secretKey string, validity time.Duration) *Tokens {
	return &Tokens{store: store, jwtSecret: []byte(secretKey), validity: validity, now: time.Now}
}

func (t *Tokens) Issue(userID string) (string, error) {
	return GenerateToken(userID, t.jwtSecret, t.validity)
}

// Verify parses token and rejects revoked ones with ErrInvalidToken.
func (t *Tokens) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := ParseToken(token, t.jwtSecret)
	if err != nil {
		return nil, err
	}

	_, revoked, err := t.store.Get(ctx, revokedKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke marks the verified token's jti as revoked.
func (t *Tokens) Revoke(ctx context.Context, claims *Claims) error {
	return profilestore.SetJSON(ctx, t.store, revokedKey(claims.ID), revocation{RevokedAt: t.now().UTC()})
}

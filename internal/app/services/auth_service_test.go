package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcommunity/platform/internal/pkg/apperrors"
)

type fakeTokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*fakeTokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*fakeTokenRecord)}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	s.tokens[token] = &fakeTokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	rec, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if rec.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if rec.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return rec.userID, rec.expiry, nil
}

func (s *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	rec, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rec.revoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, rec := range s.tokens {
		if rec.userID == userID {
			rec.revoked = true
		}
	}
	return nil
}

func TestLogoutRevokesAllUserSessions(t *testing.T) {
	store := newFakeTokenStore()
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	// Two sessions for the same user, one for somebody else
	require.NoError(t, store.CreateToken(ctx, "laptop", 7, expiry))
	require.NoError(t, store.CreateToken(ctx, "phone", 7, expiry))
	require.NoError(t, store.CreateToken(ctx, "other-user", 8, expiry))

	svc := NewAuthService(nil, store, nil, nil)
	require.NoError(t, svc.Logout(ctx, "laptop"))

	_, _, err := store.GetTokenByValue(ctx, "laptop")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	_, _, err = store.GetTokenByValue(ctx, "phone")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Unrelated sessions stay valid
	userID, _, err := store.GetTokenByValue(ctx, "other-user")
	require.NoError(t, err)
	assert.Equal(t, int64(8), userID)
}

func TestLogoutUnknownTokenSucceeds(t *testing.T) {
	svc := NewAuthService(nil, newFakeTokenStore(), nil, nil)

	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestLogoutRevokedTokenSucceeds(t *testing.T) {
	store := newFakeTokenStore()
	ctx := context.Background()

	require.NoError(t, store.CreateToken(ctx, "stale", 7, time.Now().Add(time.Hour)))
	require.NoError(t, store.RevokeToken(ctx, "stale"))

	svc := NewAuthService(nil, store, nil, nil)
	assert.NoError(t, svc.Logout(ctx, "stale"))
}

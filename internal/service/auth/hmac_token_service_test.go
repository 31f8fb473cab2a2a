package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisaverysecurekeythatislongerthan32characters"

func newTestService(t *testing.T, now time.Time) *hmacTokenService {
	t.Helper()
	svc, err := NewTokenService(config.AuthConfig{
		SessionSecret:        testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	s := svc.(*hmacTokenService)
	s.timeFunc = func() time.Time { return now }
	return s
}

func TestNewTokenService_WeakSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{SessionSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s := newTestService(t, now)
	sessionID := uuid.New()

	token, err := s.GenerateToken(context.Background(), sessionID)
	require.NoError(t, err)

	claims, err := s.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, now, claims.IssuedAt.UTC())
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(t, now)
	token, err := issuer.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	otherKey := newTestService(t, now)
	otherKey.signingKey = []byte("adifferentsecretthatisalsolongerthan32chars")

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": uuid.New().String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		service *hmacTokenService
		token   string
		wantErr error
	}{
		{
			name:    "missing",
			service: issuer,
			token:   "",
			wantErr: ErrMissingToken,
		},
		{
			name:    "malformed",
			service: issuer,
			token:   "not.a.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong key",
			service: otherKey,
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "unsigned",
			service: issuer,
			token:   noneToken,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired beyond skew",
			service: newTestService(t, now.Add(time.Hour+3*time.Minute)),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "issued in the future beyond skew",
			service: newTestService(t, now.Add(-5*time.Minute)),
			token:   token,
			wantErr: ErrTokenNotYetValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.service.ValidateToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateToken_WithinClockSkew(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	token, err := newTestService(t, now).GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = newTestService(t, now.Add(time.Hour+time.Minute)).ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}
